// Package config loads and saves ~/.greetdeck/config.toml.
package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/greetdeck/greetdeck/internal/greeting"
)

const (
	BackendLocal = "local"
	BackendGRPC  = "grpc"

	DefaultTitle      = "greetdeck"
	DefaultTheme      = "auto"
	DefaultWidth      = 800
	DefaultHeight     = 600
	DefaultServerAddr = "127.0.0.1:1420"
	DefaultLogLevel   = "info"
)

// ErrMissingAddress is returned when the grpc backend has no address configured.
var ErrMissingAddress = errors.New("greeting.address is required for the grpc backend")

// Config is the whole config.toml.
type Config struct {
	Window   WindowConfig   `toml:"window"`
	Greeting GreetingConfig `toml:"greeting"`
	Server   ServerConfig   `toml:"server"`
	Log      LogConfig      `toml:"log"`
}

// WindowConfig holds the desktop window geometry.
type WindowConfig struct {
	Title  string `toml:"title"`
	Theme  string `toml:"theme"`  // "dark", "light", or "auto"
	Width  int    `toml:"width"`  // 320-3840
	Height int    `toml:"height"` // 240-2160
}

// GreetingConfig selects the greet backend.
type GreetingConfig struct {
	Backend  string `toml:"backend"`  // "local" or "grpc"
	Template string `toml:"template"` // local backend only, must contain {name}
	Address  string `toml:"address"`  // grpc backend only
}

// ServerConfig configures browser mode.
type ServerConfig struct {
	Addr    string `toml:"addr"`
	Metrics bool   `toml:"metrics"`
}

// LogConfig configures the shared logger.
type LogConfig struct {
	Level string `toml:"level"` // trace, debug, info, warning, error
	File  string `toml:"file"`  // empty writes to stdout
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  DefaultTitle,
			Theme:  DefaultTheme,
			Width:  DefaultWidth,
			Height: DefaultHeight,
		},
		Greeting: GreetingConfig{
			Backend:  BackendLocal,
			Template: greeting.DefaultTemplate,
		},
		Server: ServerConfig{
			Addr: DefaultServerAddr,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
	}
}

// Manager reads and writes one config file.
type Manager struct {
	configPath string
}

// NewManager returns a manager for ~/.greetdeck/config.toml.
func NewManager() *Manager {
	home, _ := os.UserHomeDir()
	return NewManagerAt(filepath.Join(home, ".greetdeck", "config.toml"))
}

// NewManagerAt returns a manager for the given path.
func NewManagerAt(path string) *Manager {
	return &Manager{configPath: path}
}

// Path returns the config file location.
func (m *Manager) Path() string {
	return m.configPath
}

// Load reads the config file. A missing or unparsable file yields the
// defaults; out-of-range values are reset or clamped.
func (m *Manager) Load() (*Config, error) {
	data, err := os.ReadFile(m.configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return Default(), nil // Return defaults on parse error
	}

	normalize(cfg)
	return cfg, nil
}

// Validate reports configuration that cannot be fixed up by defaults.
func (c *Config) Validate() error {
	if c.Greeting.Backend == BackendGRPC && c.Greeting.Address == "" {
		return ErrMissingAddress
	}
	return nil
}

func normalize(cfg *Config) {
	if strings.TrimSpace(cfg.Window.Title) == "" {
		cfg.Window.Title = DefaultTitle
	}
	theme := strings.ToLower(strings.TrimSpace(cfg.Window.Theme))
	switch theme {
	case "dark", "light", "auto":
		// Valid
	default:
		theme = DefaultTheme
	}
	cfg.Window.Theme = theme

	cfg.Window.Width = clamp(cfg.Window.Width, DefaultWidth, 320, 3840)
	cfg.Window.Height = clamp(cfg.Window.Height, DefaultHeight, 240, 2160)

	backend := strings.ToLower(strings.TrimSpace(cfg.Greeting.Backend))
	switch backend {
	case BackendLocal, BackendGRPC:
		// Valid
	default:
		backend = BackendLocal
	}
	cfg.Greeting.Backend = backend

	if !strings.Contains(cfg.Greeting.Template, "{name}") {
		cfg.Greeting.Template = greeting.DefaultTemplate
	}

	if cfg.Server.Addr == "" {
		cfg.Server.Addr = DefaultServerAddr
	}

	level := strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	switch level {
	case "trace", "debug", "info", "warning", "error":
		// Valid
	default:
		level = DefaultLogLevel
	}
	cfg.Log.Level = level
}

// clamp applies def for zero and bounds everything else to [lo, hi].
func clamp(v, def, lo, hi int) int {
	switch {
	case v == 0:
		return def
	case v < lo:
		return lo
	case v > hi:
		return hi
	}
	return v
}

// Save writes cfg, preserving sections this package does not know about.
func (m *Manager) Save(cfg *Config) error {
	existingData, _ := os.ReadFile(m.configPath)

	var existing map[string]interface{}
	if len(existingData) > 0 {
		if err := toml.Unmarshal(existingData, &existing); err != nil {
			existing = make(map[string]interface{})
		}
	} else {
		existing = make(map[string]interface{})
	}

	existing["window"] = map[string]interface{}{
		"title":  cfg.Window.Title,
		"theme":  cfg.Window.Theme,
		"width":  cfg.Window.Width,
		"height": cfg.Window.Height,
	}
	existing["greeting"] = map[string]interface{}{
		"backend":  cfg.Greeting.Backend,
		"template": cfg.Greeting.Template,
		"address":  cfg.Greeting.Address,
	}
	existing["server"] = map[string]interface{}{
		"addr":    cfg.Server.Addr,
		"metrics": cfg.Server.Metrics,
	}
	existing["log"] = map[string]interface{}{
		"level": cfg.Log.Level,
		"file":  cfg.Log.File,
	}

	if err := os.MkdirAll(filepath.Dir(m.configPath), 0700); err != nil {
		return err
	}

	var buf bytes.Buffer
	if len(existingData) == 0 {
		buf.WriteString("# greetdeck configuration\n\n")
	}
	if err := toml.NewEncoder(&buf).Encode(existing); err != nil {
		return err
	}

	return os.WriteFile(m.configPath, buf.Bytes(), 0600)
}
