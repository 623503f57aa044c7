// Package render turns a task list into terminal rows.
package render

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nibzard/tasklist/internal/todo"
)

// Cell labels.
const (
	CheckboxOpen = "[ ]"
	CheckboxDone = "[x]"
	DeleteLabel  = "[Delete]"
	EmptyMessage = "No tasks yet. Type one above and press enter."

	markerWidth = 2
)

// Styles holds the lipgloss styles used for each cell.
type Styles struct {
	Marker       lipgloss.Style
	Checkbox     lipgloss.Style
	CheckboxDone lipgloss.Style
	ID           lipgloss.Style
	Text         lipgloss.Style
	TextDone     lipgloss.Style
	Delete       lipgloss.Style
	Empty        lipgloss.Style
}

// DefaultStyles returns the standard palette bound to r. A nil r uses the
// default lipgloss renderer.
func DefaultStyles(r *lipgloss.Renderer) Styles {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return Styles{
		Marker:       r.NewStyle().Bold(true).Foreground(lipgloss.Color("#7d56f4")),
		Checkbox:     r.NewStyle(),
		CheckboxDone: r.NewStyle().Foreground(lipgloss.Color("#2e7d32")),
		ID:           r.NewStyle().Foreground(lipgloss.Color("#666666")),
		Text:         r.NewStyle(),
		TextDone:     r.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("#999999")),
		Delete:       r.NewStyle().Bold(true).Foreground(lipgloss.Color("#f44336")),
		Empty:        r.NewStyle().Italic(true).Foreground(lipgloss.Color("#999999")),
	}
}

// Options controls row layout.
type Options struct {
	Styles Styles

	// Selected is the id of the row under the cursor. It only applies
	// when HasSelected is set, since 0 is a valid id.
	Selected    int64
	HasSelected bool

	// Width right-aligns the delete control at this many cells. Zero places
	// it right after the text.
	Width int

	// ShowIDs prints each task's id between the checkbox and the text.
	ShowIDs bool
}

// Span is a half-open range of cell columns.
type Span struct {
	Start, End int
}

// Contains reports whether column x falls inside the span.
func (s Span) Contains(x int) bool {
	return x >= s.Start && x < s.End
}

// Row is one rendered task, tagged with its id. Checkbox and Delete give the
// columns of the two controls so clicks can be mapped back to the task.
type Row struct {
	ID       int64
	Line     string
	Checkbox Span
	Delete   Span
}

// Rows renders one row per task, in order.
func Rows(tasks []todo.Task, opts Options) []Row {
	rows := make([]Row, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, row(t, opts))
	}
	return rows
}

// Render rebuilds the whole list view. The output depends only on tasks
// and opts.
func Render(tasks []todo.Task, opts Options) string {
	if len(tasks) == 0 {
		return opts.Styles.Empty.Render(EmptyMessage)
	}
	rows := Rows(tasks, opts)
	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = r.Line
	}
	return strings.Join(lines, "\n")
}

func row(t todo.Task, opts Options) Row {
	s := opts.Styles
	var b strings.Builder
	col := 0

	marker := strings.Repeat(" ", markerWidth)
	if opts.HasSelected && t.ID == opts.Selected {
		marker = s.Marker.Render(">") + " "
	}
	b.WriteString(marker)
	col += markerWidth

	box, boxStyle := CheckboxOpen, s.Checkbox
	if t.Completed {
		box, boxStyle = CheckboxDone, s.CheckboxDone
	}
	checkbox := Span{Start: col, End: col + lipgloss.Width(box)}
	b.WriteString(boxStyle.Render(box))
	b.WriteByte(' ')
	col = checkbox.End + 1

	if opts.ShowIDs {
		id := strconv.FormatInt(t.ID, 10)
		b.WriteString(s.ID.Render(id))
		b.WriteByte(' ')
		col += len(id) + 1
	}

	textStyle := s.Text
	if t.Completed {
		textStyle = s.TextDone
	}
	text := todo.CleanText(t.Text)
	b.WriteString(textStyle.Render(text))
	col += lipgloss.Width(text)

	gap := 1
	deleteWidth := lipgloss.Width(DeleteLabel)
	if opts.Width > 0 {
		if pad := opts.Width - col - deleteWidth; pad > gap {
			gap = pad
		}
	}
	b.WriteString(strings.Repeat(" ", gap))
	col += gap

	del := Span{Start: col, End: col + deleteWidth}
	b.WriteString(s.Delete.Render(DeleteLabel))

	return Row{ID: t.ID, Line: b.String(), Checkbox: checkbox, Delete: del}
}
