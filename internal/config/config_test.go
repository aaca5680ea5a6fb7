package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the user config dir and working directory at empty temp
// dirs and clears TODOS_* variables.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	for _, k := range []string{"TODOS_BACKEND", "TODOS_DATA_DIR", "TODOS_KEY", "TODOS_LOG_LEVEL", "TODOS_THEME", "TODOS_WATCH"} {
		t.Setenv(k, "")
	}
	wd := t.TempDir()
	t.Chdir(wd)
	return wd
}

func newFlagSet() *flag.FlagSet {
	return flag.NewFlagSet("todos", flag.ContinueOnError)
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, rest, err := Load(newFlagSet(), []string{"ls"})
	require.NoError(t, err)
	assert.Equal(t, Default(), *cfg)
	assert.Equal(t, []string{"ls"}, rest)
}

func TestLoadLayering(t *testing.T) {
	wd := isolate(t)

	userDir := filepath.Join(os.Getenv("XDG_CONFIG_HOME"), "todos")
	require.NoError(t, os.MkdirAll(userDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(userDir, "config.toml"),
		[]byte("backend = \"sqlite\"\ntheme = \"neon\"\nkey = \"user-key\"\n"), 0o644))

	require.NoError(t, os.WriteFile(filepath.Join(wd, ProjectConfigFile),
		[]byte("key = \"project-key\"\nlog_level = \"info\"\n"), 0o644))

	t.Setenv("TODOS_LOG_LEVEL", "debug")
	t.Setenv("TODOS_WATCH", "true")

	cfg, rest, err := Load(newFlagSet(), []string{"-theme", "mono", "add", "milk"})
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Backend, "user file")
	assert.Equal(t, "project-key", cfg.Key, "project file beats user file")
	assert.Equal(t, "debug", cfg.LogLevel, "env beats files")
	assert.Equal(t, "mono", cfg.Theme, "flag beats everything")
	assert.True(t, cfg.Watch)
	assert.Equal(t, []string{"add", "milk"}, rest)
}

func TestLoadExplicitConfigFile(t *testing.T) {
	isolate(t)
	p := filepath.Join(t.TempDir(), "custom.toml")
	require.NoError(t, os.WriteFile(p, []byte("backend = \"memory\"\n"), 0o644))

	cfg, _, err := Load(newFlagSet(), []string{"-config", p})
	require.NoError(t, err)
	assert.Equal(t, BackendMemory, cfg.Backend)

	_, _, err = Load(newFlagSet(), []string{"-config", filepath.Join(t.TempDir(), "missing.toml")})
	assert.Error(t, err)
}

func TestLoadBadToml(t *testing.T) {
	wd := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(wd, ProjectConfigFile), []byte("backend = "), 0o644))

	_, _, err := Load(newFlagSet(), nil)
	assert.Error(t, err)
}

func TestLoadBadEnvBool(t *testing.T) {
	isolate(t)
	t.Setenv("TODOS_WATCH", "maybe")

	_, _, err := Load(newFlagSet(), nil)
	assert.Error(t, err)
}

func TestLoadExpandsHome(t *testing.T) {
	isolate(t)

	cfg, _, err := Load(newFlagSet(), []string{"-data-dir", "~/todos"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(os.Getenv("HOME"), "todos"), cfg.DataDir)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"sqlite", func(c *Config) { c.Backend = BackendSQLite }, false},
		{"bad backend", func(c *Config) { c.Backend = "redis" }, true},
		{"empty key", func(c *Config) { c.Key = " " }, true},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }, true},
		{"upper level", func(c *Config) { c.LogLevel = "DEBUG" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
