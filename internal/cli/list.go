package cli

import (
	"fmt"

	"github.com/Makepad-fr/todos/internal/filter"
	"github.com/Makepad-fr/todos/internal/ui"
)

const maxLabelWidth = 80

func (r runner) list(f filter.Filter) int {
	r.app.SetFilter(f)
	t := ui.Current()

	done, left := r.app.CompletedCount(), r.app.ItemsLeft()
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		ui.C(t.Title, "Todos"),
		ui.C(t.Success, t.SymDone), done,
		ui.C(t.Pending, t.SymUnchecked), left,
		ui.C(t.Accent, "Total"), r.app.Len(),
	)

	titles := make([]string, 0, len(filter.Filters))
	for _, ff := range filter.Filters {
		titles = append(titles, ff.Title())
	}

	lines := []string{
		header,
		ui.C(t.Muted, ui.ProgressBar(done, done+left, 28)),
		ui.FilterBar(titles, f.Title()),
		"",
	}
	entries := r.app.Entries()
	if r.opt.Group && f == filter.All {
		lines = append(lines, groupLines(entries)...)
	} else {
		lines = append(lines, flatLines(entries)...)
	}
	lines = append(lines, "")

	footer := ui.ItemsLeft(left)
	if done > 0 {
		footer += "  " + ui.C(t.Muted, "clear completed: `todos clear`")
	}
	lines = append(lines, footer)
	ui.Panel(r.opt.Out, lines)
	return 0
}

func flatLines(entries []filter.Entry) []string {
	t := ui.Current()
	if len(entries) == 0 {
		return []string{ui.C(t.Muted, "no todos")}
	}
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		color := t.Muted
		if e.Todo.IsCompleted {
			color = t.Success
		}
		label := []rune(e.Todo.Label)
		if len(label) > maxLabelWidth {
			label = append(label[:maxLabelWidth-3], []rune("...")...)
		}
		out = append(out, fmt.Sprintf("%s %s %s",
			ui.Dim(fmt.Sprintf("%2d.", e.Index+1)), ui.C(color, t.Box(e.Todo.IsCompleted)), string(label)))
	}
	return out
}

func groupLines(entries []filter.Entry) []string {
	var active, completed []filter.Entry
	for _, e := range entries {
		if e.Todo.IsCompleted {
			completed = append(completed, e)
		} else {
			active = append(active, e)
		}
	}
	t := ui.Current()
	section := func(title string, es []filter.Entry) []string {
		lines := []string{ui.C(t.Accent, title)}
		if len(es) == 0 {
			return append(lines, ui.C(t.Muted, "(none)"))
		}
		return append(lines, flatLines(es)...)
	}
	lines := section("Active", active)
	lines = append(lines, "")
	return append(lines, section("Completed", completed)...)
}
