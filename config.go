package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"ledbar/apa102"
)

// DefaultConfigPath is searched when no -config flag is given. A
// missing file there is fine, every field has a default.
const DefaultConfigPath = "ledbar.toml"

const defaultColor = "#ff0000"

// Flags carries the parsed command line into the rest of the app.
type Flags struct {
	ConfigPath string
	Demo       bool
	NoEmbed    bool
}

// BuildInfo is stamped in by the linker at release time.
type BuildInfo struct {
	Version    string
	CommitHash string
	BuildTime  time.Time
}

type envConfig struct {
	Host     string `env:"HOST" envDefault:"127.0.0.1"`
	Port     string `env:"PORT" envDefault:"8102"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

type tomlConfig struct {
	Chip        string   `toml:"chip"`
	DataLine    *int     `toml:"data_line"`
	ClockLine   *int     `toml:"clock_line"`
	ClearOnExit *bool    `toml:"clear_on_exit"`
	Brightness  *float64 `toml:"brightness"`
	Color       string   `toml:"color"`
	DataDir     string   `toml:"data_dir"`
}

type Config struct {
	fs    LedbarFS
	flags Flags
	env   envConfig
	toml  tomlConfig

	color   apa102.RGB
	dataDir string
}

// NewConfig loads the toml config file and the environment. The getenv
// func is injected so tests can fake the environment.
func NewConfig(fs LedbarFS, flags Flags, getenv func(string) string) (*Config, error) {
	c := &Config{fs: fs, flags: flags}

	environ := map[string]string{}
	for _, key := range []string{"HOST", "PORT", "LOG_LEVEL"} {
		if value := getenv(key); value != "" {
			environ[key] = value
		}
	}
	if err := env.Parse(&c.env, env.Options{Environment: environ}); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	path := flags.ConfigPath
	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath
	}

	raw, err := afero.ReadFile(fs, path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(raw, &c.toml); err != nil {
			return nil, fmt.Errorf("parsing config file %q: %w", path, err)
		}
	case !explicit && errors.Is(err, afero.ErrFileNotFound):
		// No file at the default path, defaults cover everything
	default:
		return nil, fmt.Errorf("reading config file %q: %w", path, err)
	}

	hex := c.toml.Color
	if hex == "" {
		hex = defaultColor
	}
	parsed, err := colorful.Hex(hex)
	if err != nil {
		return nil, fmt.Errorf("invalid color %q in config: %w", hex, err)
	}
	r, g, b := parsed.RGB255()
	c.color = apa102.RGB{R: r, G: g, B: b}

	dataDir, err := c.resolveDataDir()
	if err != nil {
		return nil, err
	}
	c.dataDir = dataDir

	return c, nil
}

func (c *Config) resolveDataDir() (string, error) {
	dir := c.toml.DataDir
	if dir == "" || strings.HasPrefix(dir, "~/") {
		home, err := c.fs.HomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving data dir: %w", err)
		}
		if dir == "" {
			return filepath.Join(home, ".ledbar"), nil
		}
		return filepath.Join(home, dir[2:]), nil
	}
	if !filepath.IsAbs(dir) {
		return c.fs.Abs(dir)
	}
	return dir, nil
}

func (c *Config) Address() string {
	return fmt.Sprintf("%s:%s", c.env.Host, c.env.Port)
}

func (c *Config) LogLevel() (zerolog.Level, error) {
	return zerolog.ParseLevel(strings.ToLower(c.env.LogLevel))
}

func (c *Config) Chip() string {
	if c.toml.Chip == "" {
		return "gpiochip0"
	}
	return c.toml.Chip
}

func (c *Config) DataLine() int {
	if c.toml.DataLine == nil {
		return 23
	}
	return *c.toml.DataLine
}

func (c *Config) ClockLine() int {
	if c.toml.ClockLine == nil {
		return 24
	}
	return *c.toml.ClockLine
}

func (c *Config) ClearOnExit() bool {
	if c.toml.ClearOnExit == nil {
		return true
	}
	return *c.toml.ClearOnExit
}

// Brightness is the default brightness fraction for surfaces that do
// not specify one.
func (c *Config) Brightness() float64 {
	if c.toml.Brightness == nil {
		return apa102.DefaultBrightness
	}
	return *c.toml.Brightness
}

// Color is the default animation color.
func (c *Config) Color() apa102.RGB {
	return c.color
}

func (c *Config) DataDir() string {
	return c.dataDir
}
