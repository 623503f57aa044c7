package todo

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultKey is the storage slot holding the serialized list.
const DefaultKey = "todos"

// CorruptSuffix is appended to the key when a malformed payload is backed up.
const CorruptSuffix = ".corrupt"

// Backend is the key-value facility the store persists into.
type Backend interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
}

// LoadError reports persisted state that could not be restored.
// The store falls back to an empty list; the error is recoverable.
type LoadError struct {
	Key    string
	Backup string // key holding a copy of the bad payload, empty if the copy failed
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("restore %q: %v", e.Key, e.Err)
}

// Unwrap returns the underlying error.
func (e *LoadError) Unwrap() error {
	return e.Err
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLogger sets the logger used for store events.
func WithLogger(logger *log.Logger) StoreOption {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock sets the clock ids are derived from.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		s.ids = NewIDSource(now)
	}
}

// Store owns the task list and writes it through to a Backend after every
// mutation. It is not safe for concurrent use; callers drive it from a single
// event loop.
type Store struct {
	backend Backend
	key     string
	list    *List
	ids     *IDSource
	logger  *log.Logger
}

// NewStore creates a store with an empty list. Call Restore to load
// persisted state.
func NewStore(backend Backend, key string, opts ...StoreOption) *Store {
	if key == "" {
		key = DefaultKey
	}
	s := &Store{
		backend: backend,
		key:     key,
		list:    &List{},
		ids:     NewIDSource(nil),
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Key returns the storage slot name.
func (s *Store) Key() string {
	return s.key
}

// Tasks returns a snapshot of the list in order.
func (s *Store) Tasks() []Task {
	return s.list.Tasks()
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	return s.list.Len()
}

// Get returns a task by ID.
func (s *Store) Get(id int64) (Task, bool) {
	return s.list.Get(id)
}

// Counts returns the number of open and completed tasks.
func (s *Store) Counts() (open, done int) {
	return s.list.Counts()
}

// Restore replaces the list with the persisted state. An absent slot leaves
// the list empty. A malformed payload also leaves it empty, is copied to
// key+CorruptSuffix and is reported as a *LoadError.
func (s *Store) Restore(ctx context.Context) error {
	s.list.Clear()

	raw, found, err := s.backend.Get(ctx, s.key)
	if err != nil {
		return fmt.Errorf("read tasks: %w", err)
	}
	if !found {
		s.logger.Debug("no persisted tasks", "key", s.key)
		return nil
	}

	tasks, err := Decode([]byte(raw))
	if err != nil {
		loadErr := &LoadError{Key: s.key, Err: err}
		backup := s.key + CorruptSuffix
		if setErr := s.backend.Set(ctx, backup, raw); setErr != nil {
			s.logger.Error("back up corrupt tasks", "key", backup, "err", setErr)
		} else {
			loadErr.Backup = backup
		}
		s.logger.Warn("persisted tasks are malformed, starting empty", "key", s.key, "backup", loadErr.Backup, "err", err)
		return loadErr
	}

	s.list.Replace(tasks)
	s.ids.Observe(s.list.MaxID())
	s.logger.Debug("restored tasks", "key", s.key, "count", len(tasks))
	return nil
}

// Persist writes the whole list to the backend, replacing prior contents.
func (s *Store) Persist(ctx context.Context) error {
	data, err := Encode(s.list.Tasks())
	if err != nil {
		return err
	}
	if err := s.backend.Set(ctx, s.key, string(data)); err != nil {
		s.logger.Error("persist tasks", "key", s.key, "err", err)
		return fmt.Errorf("persist tasks: %w", err)
	}
	return nil
}

// Add appends a task built from text. Blank text is ignored: ok is false and
// nothing is persisted.
func (s *Store) Add(ctx context.Context, text string) (task Task, ok bool, err error) {
	task, ok = s.list.Add(s.ids.Next(), text)
	if !ok {
		return Task{}, false, nil
	}
	s.logger.Debug("added task", "id", task.ID)
	return task, true, s.Persist(ctx)
}

// Toggle flips the completion flag of a task. An unknown id changes nothing
// and reports found == false.
func (s *Store) Toggle(ctx context.Context, id int64) (found bool, err error) {
	found = s.list.Toggle(id)
	s.logger.Debug("toggled task", "id", id, "found", found)
	return found, s.Persist(ctx)
}

// Delete removes a task. An unknown id changes nothing and reports
// found == false.
func (s *Store) Delete(ctx context.Context, id int64) (found bool, err error) {
	found = s.list.Delete(id)
	s.logger.Debug("deleted task", "id", id, "found", found)
	return found, s.Persist(ctx)
}

// SelectAll marks every task completed.
func (s *Store) SelectAll(ctx context.Context) error {
	s.list.CompleteAll()
	s.logger.Debug("completed all tasks", "count", s.list.Len())
	return s.Persist(ctx)
}

// DeleteAll empties the list.
func (s *Store) DeleteAll(ctx context.Context) error {
	n := s.list.Len()
	s.list.Clear()
	s.logger.Debug("deleted all tasks", "count", n)
	return s.Persist(ctx)
}
