package main

import (
	"fmt"
	"os"
	"os/exec"

	"golang.org/x/term"

	"github.com/atomicstack/vnc-launcher/internal/app"
	"github.com/atomicstack/vnc-launcher/internal/config"
	"github.com/atomicstack/vnc-launcher/internal/logging"
	"github.com/atomicstack/vnc-launcher/internal/logging/events"
	"github.com/atomicstack/vnc-launcher/internal/session"
)

func main() {
	cfg := config.MustLoad()
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	logging.Configure(cfg.Logging.FilePath)
	logging.SetTraceEnabled(cfg.Logging.Trace)

	tty := probeTerminal()
	events.App.Start(startupTracePayload(cfg, tty))
	if !tty.interactive() {
		fmt.Fprintln(os.Stderr, "vnc-launcher needs an interactive terminal on stdin and stdout")
		os.Exit(2)
	}
	if _, err := lookupViewer(cfg.App.Viewer); err != nil {
		logging.Error(err)
		fmt.Fprintf(os.Stderr, "Warning: %v; connecting will fail until it is installed\n", err)
	}

	if err := app.Run(cfg.App); err != nil {
		logging.Error(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// lookupViewer resolves the viewer command on PATH.
func lookupViewer(opts session.Options) (string, error) {
	path, err := exec.LookPath(opts.Command)
	if err != nil {
		return "", fmt.Errorf("viewer %q not found: %w", opts.Command, err)
	}
	return path, nil
}

// startupTracePayload records what the launcher resolved at startup: the
// settings file, the viewer it will run and the menu tuning.
func startupTracePayload(cfg config.Config, tty ttyDetails) map[string]interface{} {
	settings := map[string]interface{}{"path": cfg.App.SettingsPath}
	if _, err := os.Stat(cfg.App.SettingsPath); err == nil {
		settings["exists"] = true
	} else {
		settings["exists"] = false
	}

	viewer := map[string]interface{}{
		"command": cfg.App.Viewer.Command,
		"args":    cfg.App.Viewer.Args,
	}
	if path, err := lookupViewer(cfg.App.Viewer); err == nil {
		viewer["resolved"] = path
	} else {
		viewer["lookupError"] = err.Error()
	}

	dismiss := "menu default"
	if cfg.App.DismissInterval > 0 {
		dismiss = cfg.App.DismissInterval.String()
	}

	return map[string]interface{}{
		"argv":       cfg.Args,
		"configFile": cfg.Flags["config"],
		"settings":   settings,
		"viewer":     viewer,
		"menu": map[string]interface{}{
			"alwaysShowPopup": cfg.App.AlwaysShowPopup,
			"dismiss":         dismiss,
			"bold":            cfg.App.Bold,
		},
		"logging": map[string]interface{}{
			"file":  cfg.Logging.FilePath,
			"trace": cfg.Logging.Trace,
		},
		"tty": tty,
	}
}

type ttyDetails struct {
	Detected *ttyDetected     `json:"detected,omitempty"`
	Probes   []ttyProbeResult `json:"probes"`
}

type ttyDetected struct {
	Source string `json:"source"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type ttyProbeResult struct {
	Name       string `json:"name"`
	IsTerminal bool   `json:"is_terminal"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	Error      string `json:"error,omitempty"`
}

// interactive reports whether the program can read input from and draw to
// a terminal. Stderr may be redirected.
func (d ttyDetails) interactive() bool {
	in, out := false, false
	for _, p := range d.Probes {
		switch p.Name {
		case "stdin":
			in = p.IsTerminal
		case "stdout":
			out = p.IsTerminal
		}
	}
	return in && out
}

func probeTerminal() ttyDetails {
	return probeFiles(map[string]*os.File{"stdin": os.Stdin, "stdout": os.Stdout, "stderr": os.Stderr})
}

// probeFiles checks each named descriptor for a terminal and its size, in
// stdin, stdout, stderr order.
func probeFiles(files map[string]*os.File) ttyDetails {
	var details ttyDetails
	for _, name := range []string{"stdin", "stdout", "stderr"} {
		f, ok := files[name]
		if !ok || f == nil {
			continue
		}
		entry := ttyProbeResult{Name: name}
		fd := int(f.Fd())
		if term.IsTerminal(fd) {
			entry.IsTerminal = true
			if width, height, err := term.GetSize(fd); err == nil {
				entry.Width, entry.Height = width, height
				if details.Detected == nil {
					details.Detected = &ttyDetected{Source: name, Width: width, Height: height}
				}
			} else {
				entry.Error = err.Error()
			}
		}
		details.Probes = append(details.Probes, entry)
	}
	return details
}
