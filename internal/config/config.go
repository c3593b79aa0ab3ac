package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/atomicstack/vnc-launcher/internal/app"
	"github.com/atomicstack/vnc-launcher/internal/session"
	"github.com/atomicstack/vnc-launcher/internal/theme"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

// File is the optional TOML configuration file.
type File struct {
	Viewer struct {
		Command string   `toml:"command"`
		Args    []string `toml:"args"`
	} `toml:"viewer"`
	Menu struct {
		AlwaysShowPopup *bool `toml:"always_show_popup"`
		DismissMS       int   `toml:"dismiss_ms"`
		Bold            bool  `toml:"bold"`
	} `toml:"menu"`
	Palette map[string]string `toml:"palette"`
}

const (
	envSettings        = "RFB_LAUNCHER_SETTINGS"
	envConfig          = "RFB_LAUNCHER_CONFIG"
	envViewer          = "RFB_LAUNCHER_VIEWER"
	envWidth           = "RFB_LAUNCHER_WIDTH"
	envHeight          = "RFB_LAUNCHER_HEIGHT"
	envAlwaysShowPopup = "RFB_LAUNCHER_ALWAYS_SHOW_POPUP"
	envDismissMS       = "RFB_LAUNCHER_DISMISS_MS"
	envTrace           = "RFB_LAUNCHER_TRACE"
	envLogFile         = "RFB_LAUNCHER_LOG_FILE"

	defaultViewer = "vncviewer"
)

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("vnc-launcher", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	settingsPath := fs.String("settings", envOrDefault(env, envSettings, defaultSettingsPath()), "path to the INI settings file")
	configPath := fs.String("config", envOrDefault(env, envConfig, ""), "path to an optional TOML config file")
	viewer := fs.String("viewer", envOrDefault(env, envViewer, ""), "viewer executable launched on connect")
	width := fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)")
	alwaysShow := fs.Bool("always-show-popup", envOrBool(env, envAlwaysShowPopup, false), "open menu bar popups on hover instead of click")
	dismissMS := fs.Int("dismiss-ms", envOrInt(env, envDismissMS, 0), "milliseconds before an abandoned menu closes (0 uses the default)")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}
	if *dismissMS < 0 {
		return Config{}, fmt.Errorf("dismiss-ms must be >= 0 (got %d)", *dismissMS)
	}

	var file File
	if *configPath != "" {
		if _, err := toml.DecodeFile(*configPath, &file); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", *configPath, err)
		}
	}
	explicit := explicitFlags(fs, env)

	if *viewer == "" {
		*viewer = file.Viewer.Command
	}
	if *viewer == "" {
		*viewer = defaultViewer
	}
	if !explicit["always-show-popup"] && file.Menu.AlwaysShowPopup != nil {
		*alwaysShow = *file.Menu.AlwaysShowPopup
	}
	// Zero leaves each menu on its own default interval.
	if *dismissMS == 0 && file.Menu.DismissMS > 0 {
		*dismissMS = file.Menu.DismissMS
	}

	palette, err := theme.ApplyHex(theme.MenuPalette(), file.Palette)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", *configPath, err)
	}

	cfg := Config{
		App: app.Config{
			SettingsPath:    *settingsPath,
			Width:           *width,
			Height:          *height,
			AlwaysShowPopup: *alwaysShow,
			DismissInterval: time.Duration(*dismissMS) * time.Millisecond,
			Bold:            file.Menu.Bold,
			Palette:         palette,
			Viewer: session.Options{
				Command:         *viewer,
				Args:            append([]string(nil), file.Viewer.Args...),
				ConnectInterval: session.DefaultConnectInterval,
			},
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Flags: map[string]string{
			"settings":        *settingsPath,
			"config":          *configPath,
			"viewer":          *viewer,
			"width":           strconv.Itoa(*width),
			"height":          strconv.Itoa(*height),
			"alwaysShowPopup": strconv.FormatBool(*alwaysShow),
			"dismissMS":       strconv.Itoa(*dismissMS),
			"trace":           strconv.FormatBool(*trace),
			"logFile":         *logFile,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

// explicitFlags returns the flags given on the command line or through
// their environment variable. Those win over the config file.
func explicitFlags(fs *flag.FlagSet, env map[string]string) map[string]bool {
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if v, ok := env[envAlwaysShowPopup]; ok && strings.TrimSpace(v) != "" {
		set["always-show-popup"] = true
	}
	return set
}

func defaultSettingsPath() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return "vnc-launcher.ini"
	}
	return filepath.Join(dir, "vnc-launcher", "launcher.ini")
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate ensures required minimum configuration is present.
func Validate(cfg Config) error {
	if strings.TrimSpace(cfg.App.SettingsPath) == "" {
		return fmt.Errorf("settings path must not be empty")
	}
	if strings.TrimSpace(cfg.App.Viewer.Command) == "" {
		return fmt.Errorf("viewer command must not be empty")
	}
	return nil
}
