package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"

	"github.com/hupe1980/stagekit/core"
	"github.com/hupe1980/stagekit/logging"
	"github.com/hupe1980/stagekit/module"
)

// Config describes one application run.
type Config struct {
	Width   int
	Height  int
	Log     LogConfig
	Modules []ModuleConfig
}

// LogConfig selects the logger.
type LogConfig struct {
	// Level is debug, info, warn or error.
	Level string
	// Format is text, json or console.
	Format string
}

// ModuleConfig names a subsystem to register and its options.
type ModuleConfig struct {
	Name    string
	Options map[string]any
}

type fileConfig struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
	Log    struct {
		Level  string `toml:"level"`
		Format string `toml:"format"`
	} `toml:"log"`
	Modules []struct {
		Name    string         `toml:"name"`
		Options map[string]any `toml:"options"`
	} `toml:"modules"`
}

type envConfig struct {
	Width     int      `env:"STAGEKIT_WIDTH"`
	Height    int      `env:"STAGEKIT_HEIGHT"`
	LogLevel  string   `env:"STAGEKIT_LOG_LEVEL"`
	LogFormat string   `env:"STAGEKIT_LOG_FORMAT"`
	Modules   []string `env:"STAGEKIT_MODULES" envSeparator:","`
}

// Default returns an 800x600 run with text logging at info level and no
// modules.
func Default() Config {
	return Config{
		Width:  800,
		Height: 600,
		Log:    LogConfig{Level: "info", Format: "text"},
	}
}

// Load reads a TOML file over the defaults. Keys absent from the file keep
// their default.
func Load(path string) (Config, error) {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	return fromFile(raw, meta)
}

// Decode parses TOML text over the defaults.
func Decode(data string) (Config, error) {
	var raw fileConfig
	meta, err := toml.Decode(data, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return fromFile(raw, meta)
}

func fromFile(raw fileConfig, meta toml.MetaData) (Config, error) {
	cfg := Default()
	if meta.IsDefined("width") {
		cfg.Width = raw.Width
	}
	if meta.IsDefined("height") {
		cfg.Height = raw.Height
	}
	if meta.IsDefined("log", "level") {
		cfg.Log.Level = strings.TrimSpace(raw.Log.Level)
	}
	if meta.IsDefined("log", "format") {
		cfg.Log.Format = strings.TrimSpace(raw.Log.Format)
	}
	for _, m := range raw.Modules {
		cfg.Modules = append(cfg.Modules, ModuleConfig{Name: strings.TrimSpace(m.Name), Options: m.Options})
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			// Module options are free-form.
			if len(k) > 0 && k[0] == "modules" {
				continue
			}
			keys = append(keys, k.String())
		}
		if len(keys) > 0 {
			return Config{}, fmt.Errorf("%w: unknown keys %s", core.ErrConfiguration, strings.Join(keys, ", "))
		}
	}
	return cfg, cfg.Validate()
}

// ParseEnv overlays STAGEKIT_* environment variables on cfg. STAGEKIT_MODULES
// replaces the module list, keeping options of modules that stay listed.
func ParseEnv(cfg *Config) error {
	e := envConfig{
		Width:     cfg.Width,
		Height:    cfg.Height,
		LogLevel:  cfg.Log.Level,
		LogFormat: cfg.Log.Format,
		Modules:   cfg.ModuleNames(),
	}
	if err := env.Parse(&e); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	cfg.Width = e.Width
	cfg.Height = e.Height
	cfg.Log.Level = e.LogLevel
	cfg.Log.Format = e.LogFormat

	options := make(map[string]map[string]any, len(cfg.Modules))
	for _, m := range cfg.Modules {
		options[m.Name] = m.Options
	}
	modules := make([]ModuleConfig, 0, len(e.Modules))
	for _, name := range e.Modules {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		modules = append(modules, ModuleConfig{Name: name, Options: options[name]})
	}
	cfg.Modules = modules
	return cfg.Validate()
}

// ModuleNames returns the configured module names in order.
func (c Config) ModuleNames() []string {
	names := make([]string, 0, len(c.Modules))
	for _, m := range c.Modules {
		names = append(names, m.Name)
	}
	return names
}

// Validate checks dimensions, logging and module names.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return core.Errorf(core.ErrConfiguration, "invalid size %dx%d", c.Width, c.Height)
	}
	if _, ok := logging.ParseLevel(c.Log.Level); !ok {
		return core.Errorf(core.ErrConfiguration, "unknown log level %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "json", "console":
	default:
		return core.Errorf(core.ErrConfiguration, "unknown log format %q", c.Log.Format)
	}
	seen := map[string]bool{}
	for _, m := range c.Modules {
		if m.Name == "" {
			return core.Errorf(core.ErrConfiguration, "module without name")
		}
		if seen[m.Name] {
			return core.Errorf(core.ErrConfiguration, "module %s listed twice", m.Name)
		}
		seen[m.Name] = true
	}
	return nil
}

// Logger builds the configured logger writing to out.
func (c Config) Logger(out io.Writer) logging.Logger {
	level, _ := logging.ParseLevel(c.Log.Level)
	if c.Log.Format == "console" {
		return logging.NewConsoleLogger(out, "stagekit", level)
	}
	return logging.NewLogger(&logging.LoggerConfig{
		Level:     level,
		Format:    c.Log.Format,
		Output:    out,
		Component: "stagekit",
	})
}

// Apply registers every configured module on reg. Names are resolved through
// known; module options are passed to the factory as a single map argument.
func Apply(reg *module.Registry, cfg Config, known map[string]*module.Definition) error {
	for _, m := range cfg.Modules {
		def, ok := known[m.Name]
		if !ok {
			return core.Errorf(core.ErrConfiguration, "unknown module %q", m.Name)
		}
		var args []any
		if len(m.Options) > 0 {
			args = append(args, m.Options)
		}
		if err := reg.Register(def, args...); err != nil {
			return fmt.Errorf("register %s: %w", m.Name, err)
		}
	}
	return nil
}
