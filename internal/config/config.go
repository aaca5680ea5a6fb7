// Package config loads settings for the todos command.
//
// Sources, lowest priority first:
//
//  1. Defaults
//  2. User config file ($XDG_CONFIG_HOME/todos/config.toml or the OS equivalent)
//  3. Project config file (.todos.toml in the working directory)
//  4. The file named by -config
//  5. Environment variables (TODOS_*)
//  6. Command-line flags
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// Backends the todo list can be stored in.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

const (
	DefaultBackend  = BackendFile
	DefaultKey      = "todos"
	DefaultLogLevel = "warn"
	DefaultTheme    = "classic"

	ProjectConfigFile = ".todos.toml"
)

// Config holds every setting.
type Config struct {
	// Backend is one of file, sqlite or memory.
	Backend string `toml:"backend"`
	// DataDir holds todos.json (file) or todos.db (sqlite). Empty means the
	// working directory.
	DataDir string `toml:"data_dir"`
	// Key is the slot name the list is stored under.
	Key      string `toml:"key"`
	LogLevel string `toml:"log_level"`
	Theme    string `toml:"theme"`
	// Watch makes the TUI refresh when another process rewrites the list.
	Watch bool `toml:"watch"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Backend:  DefaultBackend,
		Key:      DefaultKey,
		LogLevel: DefaultLogLevel,
		Theme:    DefaultTheme,
	}
}

// Load registers the config flags on fs, parses args, and layers every
// source over the defaults. It returns the arguments left after the flags.
func Load(fs *flag.FlagSet, args []string) (*Config, []string, error) {
	if fs == nil {
		fs = flag.NewFlagSet("todos", flag.ContinueOnError)
	}
	var fv flagValues
	fv.register(fs)
	if err := fs.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("parsing flags: %w", err)
	}

	cfg := Default()

	if p := userConfigFile(); p != "" {
		if err := loadFileIfExists(&cfg, p); err != nil {
			return nil, nil, fmt.Errorf("loading user config file %s: %w", p, err)
		}
	}
	if err := loadFileIfExists(&cfg, ProjectConfigFile); err != nil {
		return nil, nil, fmt.Errorf("loading project config file %s: %w", ProjectConfigFile, err)
	}
	if fv.configFile != "" {
		if _, err := toml.DecodeFile(fv.configFile, &cfg); err != nil {
			return nil, nil, fmt.Errorf("loading config file %s: %w", fv.configFile, err)
		}
	}

	if err := loadFromEnv(&cfg); err != nil {
		return nil, nil, err
	}
	fv.apply(fs, &cfg)

	cfg.DataDir = expandHome(cfg.DataDir)
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	return &cfg, fs.Args(), nil
}

// Validate rejects settings the rest of the program can't act on.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendFile, BackendSQLite, BackendMemory:
	default:
		return fmt.Errorf("unknown backend %q (want file, sqlite or memory)", c.Backend)
	}
	if strings.TrimSpace(c.Key) == "" {
		return errors.New("key must not be empty")
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	return nil
}

func loadFileIfExists(cfg *Config, path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	_, err := toml.DecodeFile(path, cfg)
	return err
}

func userConfigFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "todos", "config.toml")
}

// loadFromEnv overrides cfg from TODOS_* variables.
func loadFromEnv(cfg *Config) error {
	if v := os.Getenv("TODOS_BACKEND"); v != "" {
		cfg.Backend = v
	}
	if v := os.Getenv("TODOS_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("TODOS_KEY"); v != "" {
		cfg.Key = v
	}
	if v := os.Getenv("TODOS_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("TODOS_THEME"); v != "" {
		cfg.Theme = v
	}
	if v := os.Getenv("TODOS_WATCH"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("TODOS_WATCH: %w", err)
		}
		cfg.Watch = b
	}
	return nil
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return p
		}
		return filepath.Join(home, strings.TrimPrefix(p, "~"))
	}
	return p
}
