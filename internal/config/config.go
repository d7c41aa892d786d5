package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Logging   LoggingConfig   `toml:"logging"`
	Loop      LoopConfig      `toml:"loop"`
	Scripting ScriptingConfig `toml:"scripting"`
	Data      DataConfig      `toml:"data"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

type LoopConfig struct {
	TickRate time.Duration `toml:"tick_rate"`
	MaxTicks int           `toml:"max_ticks"` // 0 = run until signalled
}

type ScriptingConfig struct {
	Enabled   bool   `toml:"enabled"`
	Dir       string `toml:"dir"`
	HotReload bool   `toml:"hot_reload"`
}

type DataConfig struct {
	Templates string        `toml:"templates"` // YAML template file, empty = none
	Spawn     []SpawnConfig `toml:"spawn"`
}

// SpawnConfig asks the driver to instantiate Count entities from Template at
// startup. Name is optional; with Count > 1 every entity gets the same name.
type SpawnConfig struct {
	Template string `toml:"template"`
	Name     string `toml:"name"`
	Count    int    `toml:"count"`
}

// Load reads a TOML file and overlays it on the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault behaves like Load but returns the defaults when path does
// not exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return defaults(), nil
	}
	return cfg, err
}

// Parse decodes TOML bytes on top of the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return defaults()
}

func (c *Config) Validate() error {
	if c.Loop.TickRate <= 0 {
		return fmt.Errorf("loop.tick_rate must be positive, got %s", c.Loop.TickRate)
	}
	if c.Loop.MaxTicks < 0 {
		return fmt.Errorf("loop.max_ticks must not be negative, got %d", c.Loop.MaxTicks)
	}
	if c.Scripting.Enabled && c.Scripting.Dir == "" {
		return errors.New("scripting.dir is required when scripting is enabled")
	}
	for i, s := range c.Data.Spawn {
		if s.Template == "" {
			return fmt.Errorf("data.spawn[%d]: template is required", i)
		}
		if s.Count < 0 {
			return fmt.Errorf("data.spawn[%d]: count must not be negative, got %d", i, s.Count)
		}
	}
	if len(c.Data.Spawn) > 0 && c.Data.Templates == "" {
		return errors.New("data.spawn requires data.templates")
	}
	return nil
}

func defaults() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Loop: LoopConfig{
			TickRate: 50 * time.Millisecond,
		},
		Scripting: ScriptingConfig{
			Enabled: false,
			Dir:     "scripts",
		},
	}
}
