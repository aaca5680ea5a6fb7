// Package tui is the interactive full-screen todo view.
package tui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Makepad-fr/todos/internal/app"
	"github.com/Makepad-fr/todos/internal/filter"
	"github.com/Makepad-fr/todos/internal/ui"
)

// ReloadMsg asks the view to re-read the list from storage.
type ReloadMsg struct{}

type mode int

const (
	modeBrowse mode = iota
	modeAdd
	modeEdit
)

// listItem adapts a filtered entry to bubbles/list.Item.
type listItem struct {
	filter.Entry
}

func (i listItem) Title() string       { return i.Todo.Label }
func (i listItem) Description() string { return "" }
func (i listItem) FilterValue() string { return i.Todo.Label }

// itemDelegate renders one todo per line.
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}
	box := ui.MutedStyle.Render(ui.Current().Box(false))
	label := it.Todo.Label
	if it.Todo.IsCompleted {
		box = ui.SuccessStyle.Render(ui.Current().Box(true))
		label = ui.DoneStyle.Render(label)
	}
	prefix := "  "
	if index == m.Index() {
		prefix = ui.SelectedStyle.Render("> ")
	}
	fmt.Fprintf(w, "%s%s %s", prefix, box, label)
}

type keyMap struct {
	toggle, add, edit, remove, checkAll, clear, filter, quit key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		toggle:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
		add:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		edit:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		remove:   key.NewBinding(key.WithKeys("d", "x"), key.WithHelp("d", "remove")),
		checkAll: key.NewBinding(key.WithKeys("A"), key.WithHelp("A", "check all")),
		clear:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear completed")),
		filter:   key.NewBinding(key.WithKeys("f", "1", "2", "3"), key.WithHelp("f/1/2/3", "filter")),
		quit:     key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) bindings() []key.Binding {
	return []key.Binding{k.toggle, k.add, k.edit, k.remove, k.checkAll, k.clear, k.filter}
}

// Model is the bubbletea model. Every intent is forwarded to the App, which
// persists it before the next render.
type Model struct {
	app  *app.App
	list list.Model
	ti   textinput.Model
	keys keyMap

	mode     mode
	editID   string // id of the todo being edited
	checkAll bool   // state of the check-all toggle, flipped on each press
	errMsg   string

	width, height int
}

// New builds the view over a.
func New(a *app.App) Model {
	keys := newKeyMap()

	l := list.New(nil, itemDelegate{}, 80, 20)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = ui.TitleStyle
	l.Styles.HelpStyle = ui.HelpStyle
	l.Styles.PaginationStyle = ui.HelpStyle
	l.AdditionalShortHelpKeys = keys.bindings
	l.AdditionalFullHelpKeys = keys.bindings

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "What needs to be done?"
	ti.CharLimit = 200

	m := Model{
		app:      a,
		list:     l,
		ti:       ti,
		keys:     keys,
		checkAll: a.AllCompleted(),
		width:    80,
		height:   24,
	}
	m.refresh()
	return m
}

// Options tune Run.
type Options struct {
	// Watch refreshes the view when another process rewrites the list.
	Watch bool
}

// Run starts the program and blocks until the user quits.
func Run(a *app.App, opts Options) error {
	p := tea.NewProgram(New(a), tea.WithAltScreen())
	if opts.Watch {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		if err := a.Watch(ctx, func() { p.Send(ReloadMsg{}) }); err != nil {
			return err
		}
	}
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil
	case ReloadMsg:
		m.report(m.app.Reload())
		m.refresh()
		return m, nil
	}

	switch m.mode {
	case modeAdd, modeEdit:
		return m.updateInput(msg)
	}

	if k, ok := msg.(tea.KeyMsg); ok {
		m.errMsg = ""
		switch {
		case key.Matches(k, m.keys.quit):
			return m, tea.Quit
		case key.Matches(k, m.keys.toggle):
			if idx, ok := m.selected(); ok {
				m.report(m.app.ToggleTodo(idx))
				m.refresh()
			}
			return m, nil
		case key.Matches(k, m.keys.remove):
			if idx, ok := m.selected(); ok {
				m.report(m.app.RemoveTodo(idx))
				m.refresh()
			}
			return m, nil
		case key.Matches(k, m.keys.checkAll):
			m.checkAll = !m.checkAll
			m.report(m.app.CheckAllTodo(m.checkAll))
			m.refresh()
			return m, nil
		case key.Matches(k, m.keys.clear):
			m.report(m.app.ClearCompleted())
			m.refresh()
			return m, nil
		case key.Matches(k, m.keys.filter):
			m.app.SetFilter(nextFilter(m.app.Filter(), k.String()))
			m.refresh()
			m.list.Select(0)
			return m, nil
		case key.Matches(k, m.keys.add):
			m.mode = modeAdd
			m.ti.SetValue("")
			m.ti.Placeholder = "What needs to be done?"
			m.resize()
			return m, m.ti.Focus()
		case key.Matches(k, m.keys.edit):
			if it, ok := m.list.SelectedItem().(listItem); ok {
				id, err := m.app.IDAt(it.Index)
				if err != nil {
					m.report(err)
					return m, nil
				}
				m.mode = modeEdit
				m.editID = id
				m.ti.SetValue(it.Todo.Label)
				m.ti.CursorEnd()
				m.ti.Placeholder = "Edit todo..."
				m.resize()
				return m, m.ti.Focus()
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// updateInput handles keys while the add/edit line is open. Enter or tab
// (leaving the field) commits, esc cancels.
func (m Model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "enter", "tab":
			label := m.ti.Value()
			adding := m.mode == modeAdd
			if adding {
				m.report(m.app.AddTodo(label))
			} else {
				m.report(m.app.EditTodoByID(m.editID, label))
			}
			m.closeInput()
			m.refresh()
			if adding {
				m.selectIndex(m.app.Len() - 1)
			}
			return m, nil
		case "esc":
			m.closeInput()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

func (m *Model) closeInput() {
	m.mode = modeBrowse
	m.ti.SetValue("")
	m.ti.Blur()
	m.resize()
}

// selected returns the full-list index of the highlighted todo.
func (m Model) selected() (int, bool) {
	it, ok := m.list.SelectedItem().(listItem)
	if !ok {
		return 0, false
	}
	return it.Index, true
}

// selectIndex highlights the todo at full-list index idx if it is visible.
func (m *Model) selectIndex(idx int) {
	for i, it := range m.list.Items() {
		if li, ok := it.(listItem); ok && li.Index == idx {
			m.list.Select(i)
			return
		}
	}
}

func (m *Model) report(err error) {
	if err != nil {
		m.errMsg = err.Error()
	}
}

// refresh rebuilds the list from the app's current filtered view.
func (m *Model) refresh() {
	entries := m.app.Entries()
	items := make([]list.Item, 0, len(entries))
	for _, e := range entries {
		items = append(items, listItem{Entry: e})
	}
	m.list.SetItems(items)
	if n := len(items); n > 0 && m.list.Index() >= n {
		m.list.Select(n - 1)
	}

	done, left := m.app.CompletedCount(), m.app.ItemsLeft()
	m.list.Title = fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		ui.TitleStyle.Render("Todos"),
		ui.SuccessStyle.Render("✔"), done,
		ui.PendingStyle.Render("•"), left,
		ui.AccentStyle.Render("Total"), m.app.Len(),
	)
	m.checkAll = m.app.AllCompleted()
}

func (m *Model) resize() {
	h := m.height - 6
	if m.mode != modeBrowse {
		h -= 4
	}
	if h < 3 {
		h = 3
	}
	w := m.width - 4
	if w < 20 {
		w = 20
	}
	m.list.SetSize(w, h)
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.list.View())
	b.WriteString("\n")
	b.WriteString(m.footer())

	if m.mode != modeBrowse {
		title := "Add todo"
		if m.mode == modeEdit {
			title = "Edit todo"
		}
		b.WriteString("\n")
		b.WriteString(ui.BorderStyle.Render(title + "\n" + m.ti.View()))
	}
	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(ui.ErrorStyle.Render("✖ " + m.errMsg))
	}
	return ui.BorderStyle.Render(b.String())
}

func (m Model) footer() string {
	tabs := make([]string, 0, len(filter.Filters))
	for _, f := range filter.Filters {
		if f == m.app.Filter() {
			tabs = append(tabs, ui.ActiveTab.Render(f.Title()))
		} else {
			tabs = append(tabs, ui.MutedStyle.Render(f.Title()))
		}
	}
	parts := []string{
		ui.ItemsLeft(m.app.ItemsLeft()),
		strings.Join(tabs, "  "),
	}
	if m.app.CompletedCount() > 0 {
		parts = append(parts, ui.MutedStyle.Render("c: clear completed"))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, strings.Join(parts, "    "))
}

func nextFilter(cur filter.Filter, k string) filter.Filter {
	switch k {
	case "1":
		return filter.All
	case "2":
		return filter.Active
	case "3":
		return filter.Completed
	}
	return cur.Next()
}
