// Package config resolves CLI settings from an optional vdom.yaml or
// vdom.toml, a .env file, and VDOM_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"golang.org/x/mod/modfile"
	"gopkg.in/yaml.v3"
)

// Environment overrides, applied after the config file.
const (
	EnvLogLevel  = "VDOM_LOG_LEVEL"
	EnvContainer = "VDOM_CONTAINER"
)

// Config files looked up in the project root, in order.
var configFiles = []string{"vdom.yaml", "vdom.toml"}

// Config represents the optional vdom.yaml / vdom.toml configuration.
type Config struct {
	Log    LogConfig    `yaml:"log" toml:"log"`
	Render RenderConfig `yaml:"render" toml:"render"`
	// Source is the file the config was read from, empty when none exists.
	Source string `yaml:"-" toml:"-"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	Level   string `yaml:"level,omitempty" toml:"level"`
	Verbose bool   `yaml:"verbose,omitempty" toml:"verbose"`
}

// RenderConfig contains rendering settings.
type RenderConfig struct {
	Container string `yaml:"container,omitempty" toml:"container"`
	Pretty    bool   `yaml:"pretty,omitempty" toml:"pretty"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Root string
	// Project is the module path of the enclosing Go module, or the
	// directory name outside a module.
	Project   string
	LogLevel  zerolog.Level
	Verbose   bool
	Container string
	Pretty    bool
	Source    string
}

// LoadOptional reads vdom.yaml or vdom.toml from dir if present.
func LoadOptional(dir string) (*Config, error) {
	for _, name := range configFiles {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}

		var cfg Config
		if strings.HasSuffix(name, ".toml") {
			meta, err := toml.Decode(string(data), &cfg)
			if err != nil {
				return nil, fmt.Errorf("failed to parse %s: %w", name, err)
			}
			if undecoded := meta.Undecoded(); len(undecoded) > 0 {
				return nil, fmt.Errorf("failed to parse %s: unknown key %s", name, undecoded[0])
			}
		} else if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", name, err)
		}
		cfg.Source = path
		return &cfg, nil
	}
	return &Config{}, nil
}

// Resolve loads .env and the config file from dir (if present), applies
// environment overrides and resolves defaults. Variables already set in the
// environment win over .env entries.
func Resolve(dir string) (*Resolved, error) {
	if err := godotenv.Load(filepath.Join(dir, ".env")); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}

	levelName := strings.TrimSpace(cfg.Log.Level)
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		levelName = v
	}
	level := zerolog.WarnLevel
	if levelName != "" {
		level, err = zerolog.ParseLevel(strings.ToLower(levelName))
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q", levelName)
		}
	}

	container := strings.TrimSpace(cfg.Render.Container)
	if v := strings.TrimSpace(os.Getenv(EnvContainer)); v != "" {
		container = v
	}
	if container == "" {
		container = "root"
	}
	if strings.ContainsAny(container, " #.") {
		return nil, fmt.Errorf("render.container must be a plain element id (got %q)", container)
	}

	return &Resolved{
		Root:      dir,
		Project:   projectName(dir),
		LogLevel:  level,
		Verbose:   cfg.Log.Verbose,
		Container: container,
		Pretty:    cfg.Render.Pretty,
		Source:    cfg.Source,
	}, nil
}

// FindProjectRoot walks up from the current directory to find go.mod. It
// falls back to the current directory when no module encloses it.
func FindProjectRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}

	dir := cwd
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return cwd, nil
		}
		dir = parent
	}
}

func projectName(dir string) string {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err == nil {
		if path := modfile.ModulePath(data); path != "" {
			return path
		}
	}
	return filepath.Base(dir)
}
