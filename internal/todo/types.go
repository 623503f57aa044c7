// Package todo holds the task list, its write-through store and the
// persisted-state codec.
package todo

import (
	"fmt"
	"strings"
	"unicode"
)

// Task represents a single entry in the task list.
type Task struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// String renders a task for log output.
func (t Task) String() string {
	mark := " "
	if t.Completed {
		mark = "x"
	}
	return fmt.Sprintf("[%s] %d %s", mark, t.ID, t.Text)
}

// List is an ordered sequence of tasks in insertion order.
// Ids are unique within a list.
type List struct {
	tasks []Task
}

// NewList returns a list holding a copy of tasks.
func NewList(tasks []Task) *List {
	l := &List{}
	l.Replace(tasks)
	return l
}

// Len returns the number of tasks.
func (l *List) Len() int {
	return len(l.tasks)
}

// Tasks returns a copy of the tasks in order.
func (l *List) Tasks() []Task {
	out := make([]Task, len(l.tasks))
	copy(out, l.tasks)
	return out
}

// Get returns a task by ID.
func (l *List) Get(id int64) (Task, bool) {
	if i := l.index(id); i >= 0 {
		return l.tasks[i], true
	}
	return Task{}, false
}

// Replace swaps the whole list for a copy of tasks.
func (l *List) Replace(tasks []Task) {
	l.tasks = make([]Task, len(tasks))
	copy(l.tasks, tasks)
}

// CleanText replaces control characters such as newlines and tabs with
// spaces, so a task always occupies a single screen line.
func CleanText(text string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, text)
}

// Add cleans and trims text and appends a new incomplete task with the given
// id. Blank text is ignored and reported with ok == false.
func (l *List) Add(id int64, text string) (task Task, ok bool) {
	text = strings.TrimSpace(CleanText(text))
	if text == "" {
		return Task{}, false
	}
	task = Task{ID: id, Text: text}
	l.tasks = append(l.tasks, task)
	return task, true
}

// Toggle flips the completion flag of the task with the given id.
func (l *List) Toggle(id int64) bool {
	i := l.index(id)
	if i < 0 {
		return false
	}
	l.tasks[i].Completed = !l.tasks[i].Completed
	return true
}

// Delete removes the task with the given id.
func (l *List) Delete(id int64) bool {
	i := l.index(id)
	if i < 0 {
		return false
	}
	l.tasks = append(l.tasks[:i], l.tasks[i+1:]...)
	return true
}

// CompleteAll marks every task completed.
func (l *List) CompleteAll() {
	for i := range l.tasks {
		l.tasks[i].Completed = true
	}
}

// Clear removes every task.
func (l *List) Clear() {
	l.tasks = l.tasks[:0]
}

// MaxID returns the largest id in the list, or 0 when empty.
func (l *List) MaxID() int64 {
	var max int64
	for _, t := range l.tasks {
		if t.ID > max {
			max = t.ID
		}
	}
	return max
}

// Counts returns the number of open and completed tasks.
func (l *List) Counts() (open, done int) {
	for _, t := range l.tasks {
		if t.Completed {
			done++
		} else {
			open++
		}
	}
	return open, done
}

func (l *List) index(id int64) int {
	for i := range l.tasks {
		if l.tasks[i].ID == id {
			return i
		}
	}
	return -1
}
