package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sasha-s/go-deadlock"
	"github.com/sirupsen/logrus"
)

const defaultLogFile = "vnc-launcher.log"

var (
	mu           deadlock.Mutex
	traceEnabled bool
	logPath      = defaultLogFile
	openFile     = func(path string) (io.WriteCloser, error) {
		return os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	}
)

// Error writes err to the shared log file.
func Error(err error) {
	if err == nil {
		return
	}
	mu.Lock()
	path := logPath
	mu.Unlock()

	write(path, &logrus.TextFormatter{DisableColors: true, FullTimestamp: true}, func(l *logrus.Logger) {
		l.WithError(err).Error("launcher error")
	})
}

// SetTraceEnabled toggles emission of structured trace entries.
func SetTraceEnabled(enabled bool) {
	mu.Lock()
	traceEnabled = enabled
	mu.Unlock()
}

// TraceEnabled reports whether Trace writes anything.
func TraceEnabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return traceEnabled
}

// Trace appends a structured JSON entry to the shared log when tracing is enabled.
func Trace(event string, payload interface{}) {
	mu.Lock()
	enabled := traceEnabled
	path := logPath
	mu.Unlock()
	if !enabled {
		return
	}

	write(path, &logrus.JSONFormatter{}, func(l *logrus.Logger) {
		entry := l.WithField("event", event)
		if payload != nil {
			entry = entry.WithField("payload", payload)
		}
		entry.Trace(event)
	})
}

func write(path string, formatter logrus.Formatter, emit func(*logrus.Logger)) {
	f, err := openFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging failed: %v\n", err)
		return
	}
	defer f.Close()

	l := logrus.New()
	l.SetOutput(f)
	l.SetFormatter(formatter)
	l.SetLevel(logrus.TraceLevel)
	emit(l)
}

// Configure sets the log destination. Empty values fall back to the default
// path. Directories are created automatically when missing.
func Configure(path string) {
	mu.Lock()
	defer mu.Unlock()
	if strings.TrimSpace(path) == "" {
		logPath = defaultLogFile
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "unable to create log directory: %v\n", err)
		logPath = defaultLogFile
		return
	}
	logPath = path
}

// Path returns the current log destination.
func Path() string {
	mu.Lock()
	defer mu.Unlock()
	return logPath
}
