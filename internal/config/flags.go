package config

import "flag"

// flagValues collects flag values; only flags set on the command line
// override the other sources.
type flagValues struct {
	configFile string
	backend    string
	dataDir    string
	key        string
	logLevel   string
	theme      string
	watch      bool
}

func (fv *flagValues) register(fs *flag.FlagSet) {
	fs.StringVar(&fv.configFile, "config", "", "path to a TOML config file")
	fs.StringVar(&fv.backend, "backend", "", "storage backend: file, sqlite or memory")
	fs.StringVar(&fv.dataDir, "data-dir", "", "directory holding the todo list")
	fs.StringVar(&fv.key, "key", "", "slot name the list is stored under")
	fs.StringVar(&fv.logLevel, "log-level", "", "log level: debug, info, warn or error")
	fs.StringVar(&fv.theme, "theme", "", "output theme: classic, neon or mono")
	fs.BoolVar(&fv.watch, "watch", false, "refresh the TUI when the list changes on disk")
}

func (fv *flagValues) apply(fs *flag.FlagSet, cfg *Config) {
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "backend":
			cfg.Backend = fv.backend
		case "data-dir":
			cfg.DataDir = fv.dataDir
		case "key":
			cfg.Key = fv.key
		case "log-level":
			cfg.LogLevel = fv.logLevel
		case "theme":
			cfg.Theme = fv.theme
		case "watch":
			cfg.Watch = fv.watch
		}
	})
}
