package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/nibzard/tasklist/internal/render"
	"github.com/nibzard/tasklist/internal/todo"
)

// Placeholder is shown in the empty input.
const Placeholder = "Add a new task"

// listTop is the screen line of the first task row: title, input, blank.
const listTop = 3

type focus int

const (
	focusInput focus = iota
	focusList
)

// Option configures a Model.
type Option func(*Model)

// WithLogger sets the logger used for UI events.
func WithLogger(logger *log.Logger) Option {
	return func(m *Model) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithRenderer binds the view styles to r.
func WithRenderer(r *lipgloss.Renderer) Option {
	return func(m *Model) {
		m.renderer = r
	}
}

// WithStartupError shows err in the status line when the view opens. A
// *todo.LoadError is shown as a warning.
func WithStartupError(err error) Option {
	return func(m *Model) {
		if err == nil {
			return
		}
		var loadErr *todo.LoadError
		if errors.As(err, &loadErr) {
			msg := "Stored tasks were unreadable, starting empty"
			if loadErr.Backup != "" {
				msg += fmt.Sprintf(" (copy kept in %q)", loadErr.Backup)
			}
			m.setStatus(msg, true)
			return
		}
		m.setStatus("Error: "+err.Error(), true)
	}
}

// WithShowIDs prints task ids in the list.
func WithShowIDs(show bool) Option {
	return func(m *Model) {
		m.showIDs = show
	}
}

// Model is the interactive task list. Every key press or click that changes
// the list goes through the store, and View rebuilds the screen from the
// store's current tasks.
type Model struct {
	ctx      context.Context
	store    *todo.Store
	logger   *log.Logger
	renderer *lipgloss.Renderer
	styles   render.Styles
	title    lipgloss.Style
	statusOK lipgloss.Style
	errStyle lipgloss.Style

	input textinput.Model
	keys  keyMap
	help  help.Model

	focus     focus
	cursor    int
	width     int
	showIDs   bool
	status    string
	statusErr bool
}

// NewModel creates a model over a restored store.
func NewModel(ctx context.Context, store *todo.Store, opts ...Option) *Model {
	input := textinput.New()
	input.Placeholder = Placeholder
	input.Prompt = "> "
	input.Focus()

	m := &Model{
		ctx:    ctx,
		store:  store,
		logger: log.New(io.Discard),
		input:  input,
		keys:   defaultKeyMap(),
		help:   help.New(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.renderer == nil {
		m.renderer = lipgloss.DefaultRenderer()
	}
	m.styles = render.DefaultStyles(m.renderer)
	m.title = m.renderer.NewStyle().Bold(true)
	m.statusOK = m.renderer.NewStyle().Foreground(lipgloss.Color("#2e7d32"))
	m.errStyle = m.renderer.NewStyle().Foreground(lipgloss.Color("#f44336"))
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		m.input.Width = max(msg.Width-lipgloss.Width(m.input.Prompt)-1, 0)
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Bindings active in both focus modes come first so the text input
	// never sees them.
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "ctrl+a":
		m.selectAll()
		return m, nil
	case "ctrl+d":
		m.deleteAll()
		return m, nil
	}
	if key.Matches(msg, m.keys.Focus) {
		return m, m.switchFocus()
	}

	if m.focus == focusInput {
		if key.Matches(msg, m.keys.Add) {
			m.add()
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Toggle):
		if id, ok := m.selectedID(); ok {
			m.toggle(id)
		}
	case key.Matches(msg, m.keys.Delete):
		if id, ok := m.selectedID(); ok {
			m.delete(id)
		}
	case key.Matches(msg, m.keys.SelectAll):
		m.selectAll()
	case key.Matches(msg, m.keys.DeleteAll):
		m.deleteAll()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

// handleMouse maps a left click to the row under it. Clicking a checkbox
// toggles, clicking the delete control deletes, anywhere else on the row
// moves the cursor there.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.moveCursor(-1)
		return
	case tea.MouseButtonWheelDown:
		m.moveCursor(1)
		return
	case tea.MouseButtonLeft:
	default:
		return
	}
	if msg.Action != tea.MouseActionPress {
		return
	}

	rows := render.Rows(m.store.Tasks(), m.renderOptions())
	idx := msg.Y - listTop
	if idx < 0 || idx >= len(rows) {
		return
	}
	row := rows[idx]
	switch {
	case row.Checkbox.Contains(msg.X):
		m.toggle(row.ID)
	case row.Delete.Contains(msg.X):
		m.delete(row.ID)
	default:
		m.cursor = idx
		if m.focus != focusList {
			m.switchFocus()
		}
	}
}

func (m *Model) switchFocus() tea.Cmd {
	if m.focus == focusInput {
		m.focus = focusList
		m.input.Blur()
		m.clampCursor()
		return nil
	}
	m.focus = focusInput
	return m.input.Focus()
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
}

func (m *Model) clampCursor() {
	n := m.store.Len()
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) selectedID() (int64, bool) {
	tasks := m.store.Tasks()
	if m.cursor < 0 || m.cursor >= len(tasks) {
		return 0, false
	}
	return tasks[m.cursor].ID, true
}

func (m *Model) add() {
	task, ok, err := m.store.Add(m.ctx, m.input.Value())
	if !ok {
		return
	}
	m.input.Reset()
	if err != nil {
		m.fail(err)
		return
	}
	m.logger.Info("added task", "id", task.ID)
	m.setStatus(fmt.Sprintf("Added %q", task.Text), false)
}

func (m *Model) toggle(id int64) {
	found, err := m.store.Toggle(m.ctx, id)
	if err != nil {
		m.fail(err)
		return
	}
	task, ok := m.store.Get(id)
	if !found || !ok {
		return
	}
	m.logger.Info("toggled task", "id", id, "completed", task.Completed)
	if task.Completed {
		m.setStatus(fmt.Sprintf("Completed %q", task.Text), false)
	} else {
		m.setStatus(fmt.Sprintf("Reopened %q", task.Text), false)
	}
}

func (m *Model) delete(id int64) {
	task, _ := m.store.Get(id)
	found, err := m.store.Delete(m.ctx, id)
	m.clampCursor()
	if err != nil {
		m.fail(err)
		return
	}
	if !found {
		return
	}
	m.logger.Info("deleted task", "id", id)
	m.setStatus(fmt.Sprintf("Deleted %q", task.Text), false)
}

func (m *Model) selectAll() {
	if err := m.store.SelectAll(m.ctx); err != nil {
		m.fail(err)
		return
	}
	n := m.store.Len()
	m.logger.Info("completed all tasks", "count", n)
	m.setStatus(fmt.Sprintf("Marked %s done", plural(n, "task")), false)
}

func (m *Model) deleteAll() {
	n := m.store.Len()
	err := m.store.DeleteAll(m.ctx)
	m.clampCursor()
	if err != nil {
		m.fail(err)
		return
	}
	m.logger.Info("deleted all tasks", "count", n)
	m.setStatus(fmt.Sprintf("Deleted %s", plural(n, "task")), false)
}

func (m *Model) fail(err error) {
	m.logger.Error("task operation failed", "err", err)
	m.setStatus("Error: "+err.Error(), true)
}

func (m *Model) setStatus(msg string, isErr bool) {
	m.status = msg
	m.statusErr = isErr
}

func (m *Model) renderOptions() render.Options {
	opts := render.Options{
		Styles:  m.styles,
		Width:   m.width,
		ShowIDs: m.showIDs,
	}
	if m.focus == focusList {
		if id, ok := m.selectedID(); ok {
			opts.Selected = id
			opts.HasSelected = true
		}
	}
	return opts
}

// View implements tea.Model. The task area is rebuilt from the store on
// every call.
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(m.title.Render("Tasks") + "\n")
	b.WriteString(m.input.View() + "\n\n")
	b.WriteString(render.Render(m.store.Tasks(), m.renderOptions()) + "\n\n")

	open, done := m.store.Counts()
	b.WriteString(fmt.Sprintf("%d open, %d done\n", open, done))
	if m.status != "" {
		style := m.statusOK
		if m.statusErr {
			style = m.errStyle
		}
		b.WriteString(style.Render(m.status) + "\n")
	}
	b.WriteString("\n" + m.help.View(m.keys) + "\n")
	return b.String()
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
