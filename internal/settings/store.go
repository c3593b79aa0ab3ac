// Package settings persists launcher preferences in an INI file.
package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sasha-s/go-deadlock"
	"gopkg.in/ini.v1"

	"github.com/atomicstack/vnc-launcher/internal/logging/events"
)

// Store is a sectioned key/value file. An empty section name selects the
// unnamed default section. Every mutation is written back immediately.
type Store struct {
	path string

	mu   deadlock.Mutex
	file *ini.File
}

// Open loads path, or starts empty when the file does not exist yet.
func Open(path string) (*Store, error) {
	s := &Store{path: path}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		s.file = ini.Empty()
	} else {
		f, err := ini.Load(path)
		if err != nil {
			return nil, fmt.Errorf("load settings %s: %w", path, err)
		}
		s.file = f
	}
	events.Settings.Load(path, len(s.file.Sections()))
	return s, nil
}

func (s *Store) Path() string { return s.path }

func sectionName(section string) string {
	if section == "" {
		return ini.DefaultSection
	}
	return section
}

func (s *Store) key(key, section string) *ini.Key {
	sec, err := s.file.GetSection(sectionName(section))
	if err != nil || !sec.HasKey(key) {
		return nil
	}
	return sec.Key(key)
}

// Read returns the value of key, or "" when it is missing.
func (s *Store) Read(key, section string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if k := s.key(key, section); k != nil {
		return k.String()
	}
	return ""
}

// ReadInt returns key parsed as an integer, or fallback.
func (s *Store) ReadInt(key, section string, fallback int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if k := s.key(key, section); k != nil {
		return k.MustInt(fallback)
	}
	return fallback
}

// ReadBool returns key parsed as a boolean, or fallback.
func (s *Store) ReadBool(key, section string, fallback bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if k := s.key(key, section); k != nil {
		return k.MustBool(fallback)
	}
	return fallback
}

// KeyExists reports whether key holds a non-empty value.
func (s *Store) KeyExists(key, section string) bool {
	return s.Read(key, section) != ""
}

// Write stores value under key, formatted with fmt.Sprint.
func (s *Store) Write(key string, value any, section string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.set(key, fmt.Sprint(value), section)
	events.Settings.Save(s.path, sectionName(section), key)
	return s.save()
}

func (s *Store) set(key, value, section string) {
	s.file.Section(sectionName(section)).Key(key).SetValue(value)
}

func (s *Store) DeleteKey(key, section string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sec, err := s.file.GetSection(sectionName(section))
	if err != nil {
		return nil
	}
	sec.DeleteKey(key)
	return s.save()
}

func (s *Store) DeleteSection(section string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.file.DeleteSection(sectionName(section))
	return s.save()
}

func (s *Store) save() error {
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create settings dir: %w", err)
		}
	}
	if err := s.file.SaveTo(s.path); err != nil {
		return fmt.Errorf("save settings %s: %w", s.path, err)
	}
	return nil
}
