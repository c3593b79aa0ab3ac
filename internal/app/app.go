package app

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/vnc-launcher/internal/flatmenu"
	"github.com/atomicstack/vnc-launcher/internal/logging/events"
	"github.com/atomicstack/vnc-launcher/internal/session"
	"github.com/atomicstack/vnc-launcher/internal/settings"
	"github.com/atomicstack/vnc-launcher/internal/ui"
)

// Config describes user-provided application options.
type Config struct {
	SettingsPath    string
	Width           int
	Height          int
	AlwaysShowPopup bool
	DismissInterval time.Duration
	Bold            bool
	Palette         flatmenu.Palette
	Viewer          session.Options
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	store, err := settings.Open(cfg.SettingsPath)
	if err != nil {
		return fmt.Errorf("open settings: %w", err)
	}
	sess := session.NewProcess(cfg.Viewer)
	defer sess.Close()

	model := ui.NewModel(ui.Options{
		Width:           cfg.Width,
		Height:          cfg.Height,
		AlwaysShowPopup: cfg.AlwaysShowPopup,
		DismissInterval: cfg.DismissInterval,
		Bold:            cfg.Bold,
		Palette:         cfg.Palette,
		Session:         sess,
		Settings:        store,
	})
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err = program.Run()
	events.App.Quit(quitReason(err))
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

func quitReason(err error) string {
	switch {
	case err == nil:
		return "exit"
	case errors.Is(err, tea.ErrProgramKilled):
		return "killed"
	default:
		return err.Error()
	}
}
