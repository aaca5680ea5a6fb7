package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/Makepad-fr/todos/internal/app"
	"github.com/Makepad-fr/todos/internal/filter"
	"github.com/Makepad-fr/todos/internal/todo"
	"github.com/Makepad-fr/todos/internal/ui"
)

// Options tune output behavior from root flags.
type Options struct {
	Group bool // list grouped by active/completed
	Out   io.Writer
	Err   io.Writer
	// Interactive runs the full-screen view; nil disables the tui subcommand.
	Interactive func(*app.App) error
}

func (o *Options) defaults() {
	if o.Out == nil {
		o.Out = os.Stdout
	}
	if o.Err == nil {
		o.Err = os.Stderr
	}
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(a *app.App, args []string, opt Options) int {
	opt.defaults()
	r := runner{app: a, opt: opt}

	if len(args) == 0 {
		PrintHelp(opt.Out)
		return 2
	}
	cmd, rest := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp(opt.Out)
		return 0

	case "ls":
		if len(rest) > 1 {
			return r.usage("usage: todos ls [all|active|completed]")
		}
		f := filter.All
		if len(rest) == 1 {
			var err error
			if f, err = filter.Parse(rest[0]); err != nil {
				return r.usage("ls: " + err.Error())
			}
		}
		return r.list(f)

	case "add":
		if len(rest) == 0 {
			return r.usage("usage: todos add <label...>")
		}
		return r.add(strings.Join(rest, " "))

	case "done":
		if len(rest) != 1 {
			return r.usage("usage: todos done <index>")
		}
		idx, code := r.index("done", rest[0])
		if code != 0 {
			return code
		}
		return r.result(a.ToggleTodo(idx), "toggled")

	case "edit":
		if len(rest) < 2 {
			return r.usage("usage: todos edit <index> <label...>")
		}
		idx, code := r.index("edit", rest[0])
		if code != 0 {
			return code
		}
		return r.result(a.EditTodo(idx, strings.Join(rest[1:], " ")), "edited")

	case "rm":
		if len(rest) != 1 {
			return r.usage("usage: todos rm <index>")
		}
		idx, code := r.index("rm", rest[0])
		if code != 0 {
			return code
		}
		return r.result(a.RemoveTodo(idx), "removed")

	case "check-all":
		if len(rest) > 1 {
			return r.usage("usage: todos check-all [true|false]")
		}
		done := !a.AllCompleted()
		if len(rest) == 1 {
			b, err := strconv.ParseBool(rest[0])
			if err != nil {
				return r.usage("check-all: not a boolean: " + rest[0])
			}
			done = b
		}
		msg := "all marked completed"
		if !done {
			msg = "all marked active"
		}
		return r.result(a.CheckAllTodo(done), msg)

	case "clear":
		n := a.CompletedCount()
		return r.result(a.ClearCompleted(), fmt.Sprintf("cleared %d completed", n))

	case "tui":
		if opt.Interactive == nil {
			return r.usage("tui: not available")
		}
		if err := opt.Interactive(a); err != nil {
			ui.Fail(opt.Err, "tui: "+err.Error())
			return 1
		}
		return 0
	}

	ui.Fail(opt.Err, "unknown subcommand: "+cmd)
	fmt.Fprintln(opt.Err)
	PrintHelp(opt.Err)
	return 2
}

func PrintHelp(w io.Writer) {
	fmt.Fprint(w, `todos - keep a todo list

Usage:
  todos [flags] <subcommand> [args]

Subcommands:
  add <label...>          Add a new todo (label can be multiple words)
  ls [filter]             List todos; filter is all, active or completed
  done <index>            Toggle completion of the todo at 1-based index
  edit <index> <label...> Replace the label of the todo at 1-based index
  rm <index>              Remove the todo at 1-based index
  check-all [true|false]  Mark every todo completed (or active)
  clear                   Remove completed todos
  tui                     Interactive list

Flags:
  -backend file|sqlite|memory   Where the list is stored
  -data-dir <dir>               Directory holding the list
  -config <file>                TOML config file
  -group                        Group ls output by active/completed

Examples:
  todos add "Buy milk"
  todos ls active
  todos done 2
  todos rm 3
`)
}

type runner struct {
	app *app.App
	opt Options
}

func (r runner) usage(msg string) int {
	ui.Fail(r.opt.Err, msg)
	return 2
}

// index parses a 1-based index from the command line into a list index.
func (r runner) index(cmd, arg string) (int, int) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, r.usage(cmd + ": not a number: " + arg)
	}
	return n - 1, 0
}

// result reports the outcome of a mutation.
func (r runner) result(err error, okMsg string) int {
	if err == nil {
		ui.OK(r.opt.Out, okMsg)
		return 0
	}
	var ie *todo.IndexError
	if errors.As(err, &ie) {
		ui.Fail(r.opt.Err, fmt.Sprintf("index out of range: have %d, got %d", ie.Len, ie.Index+1))
		fmt.Fprintln(r.opt.Err, ui.Dim("Hint: run `todos ls` to see valid indexes"))
		return 2
	}
	ui.Fail(r.opt.Err, err.Error())
	return 1
}

func (r runner) add(label string) int {
	return r.result(r.app.AddTodo(label), "added")
}
