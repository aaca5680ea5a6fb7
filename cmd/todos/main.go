package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/Makepad-fr/todos/internal/app"
	"github.com/Makepad-fr/todos/internal/cli"
	"github.com/Makepad-fr/todos/internal/config"
	"github.com/Makepad-fr/todos/internal/logging"
	"github.com/Makepad-fr/todos/internal/tui"
	"github.com/Makepad-fr/todos/internal/ui"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(argv []string) int {
	// Root flags (apply to every subcommand)
	fs := flag.NewFlagSet("todos", flag.ContinueOnError)
	fs.Usage = func() { cli.PrintHelp(os.Stderr) }
	groupPending := fs.Bool("group", false, "group output by active/completed")

	cfg, args, err := config.Load(fs, argv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		ui.Fail(os.Stderr, err.Error())
		return 2
	}

	ui.SetTheme(cfg.Theme)
	logger := logging.New(os.Stderr, cfg.LogLevel)

	// Hand the remaining args to the CLI runner.
	if len(args) == 0 {
		cli.PrintHelp(os.Stdout)
		return 2
	}

	a, err := app.Open(*cfg, logger)
	if err != nil {
		ui.Fail(os.Stderr, err.Error())
		return 1
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.Warn("closing storage", "err", err)
		}
	}()

	code := cli.Run(a, args, cli.Options{
		Group: *groupPending,
		Interactive: func(a *app.App) error {
			return tui.Run(a, tui.Options{Watch: cfg.Watch})
		},
	})
	if code != 0 {
		fmt.Fprintln(os.Stderr)
	}
	return code
}
