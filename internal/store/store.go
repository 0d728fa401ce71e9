// Package store owns the ordered task collection for one session. Every
// mutation is written through the persistence gateway before it returns.
//
// Blank text and unknown ids are silent no-ops reported through the bool
// results. Out-of-range reorder indices return ErrInvalidIndex and leave the
// store untouched. A failed save never rolls back the in-memory change; the
// error wraps ErrPersist so callers can surface it as a warning.
package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/sandeepkv93/taskpad/internal/model"
	"github.com/sandeepkv93/taskpad/internal/storage"
)

var (
	ErrInvalidIndex = model.ErrInvalidIndex
	ErrPersist      = errors.New("store: persistence failed")
)

// Draft holds the user input for a new task.
type Draft struct {
	Text     string
	Due      string
	Priority model.Priority
}

// Patch is a partial update. A nil field means "leave unchanged"; an empty
// Due clears the due date.
type Patch struct {
	Text     *string
	Due      *string
	Priority *model.Priority
}

type Store struct {
	gw     storage.Gateway
	tasks  []model.Task
	theme  model.Theme
	now    func() time.Time
	newID  func() string
	logger *log.Logger
	// dirty is set while the last save failed and the gateway is behind memory.
	dirty bool
}

type Option func(*Store)

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithIDFunc(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

func WithLogger(l *log.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// Open builds a store from the gateway's persisted state. Load failures and
// invalid records are logged and skipped; Open only fails on a nil gateway.
func Open(ctx context.Context, gw storage.Gateway, opts ...Option) (*Store, error) {
	if gw == nil {
		return nil, errors.New("store: nil gateway")
	}
	s := &Store{
		gw:    gw,
		theme: model.ThemeLight,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}

	records, err := gw.LoadTasks(ctx)
	if err != nil {
		s.logger.Warn("load tasks failed, starting empty", "err", err)
		records = nil
	}
	s.tasks = s.fromRecords(records)

	theme, err := gw.LoadTheme(ctx)
	if err != nil {
		s.logger.Warn("load theme failed", "err", err)
	} else if parsed, perr := model.ParseTheme(theme); perr == nil {
		s.theme = parsed
	} else {
		s.logger.Warn("ignoring stored theme", "theme", theme)
	}
	s.logger.Debug("store opened", "tasks", len(s.tasks), "theme", s.theme)
	return s, nil
}

// Close retries a pending save, if any, and releases the gateway.
func (s *Store) Close(ctx context.Context) error {
	var saveErr error
	if s.dirty {
		saveErr = s.persist(ctx)
	}
	closeErr := s.gw.Close()
	return errors.Join(saveErr, closeErr)
}

// Dirty reports whether the last save failed.
func (s *Store) Dirty() bool {
	return s.dirty
}

// Snapshot returns a copy of the tasks in store order.
func (s *Store) Snapshot() []model.Task {
	return slices.Clone(s.tasks)
}

func (s *Store) Len() int {
	return len(s.tasks)
}

func (s *Store) Get(id string) (model.Task, bool) {
	i := s.IndexOf(id)
	if i < 0 {
		return model.Task{}, false
	}
	return s.tasks[i], true
}

// IndexOf returns the store position of id, or -1.
func (s *Store) IndexOf(id string) int {
	return slices.IndexFunc(s.tasks, func(t model.Task) bool { return t.ID == id })
}

// Resolve finds a task by exact id or by a unique id prefix.
func (s *Store) Resolve(ref string) (model.Task, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return model.Task{}, false
	}
	if t, ok := s.Get(ref); ok {
		return t, true
	}
	var found model.Task
	matches := 0
	for _, t := range s.tasks {
		if strings.HasPrefix(t.ID, ref) {
			found = t
			matches++
		}
	}
	return found, matches == 1
}

// Add prepends a new task. Blank text is a no-op.
func (s *Store) Add(ctx context.Context, d Draft) (model.Task, bool, error) {
	text := strings.TrimSpace(d.Text)
	if text == "" {
		return model.Task{}, false, nil
	}
	priority := d.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}
	due := strings.TrimSpace(d.Due)
	t := model.Task{
		ID:        s.uniqueID(),
		Text:      text,
		Due:       due,
		Priority:  priority,
		CreatedAt: s.now(),
	}
	if err := t.Validate(); err != nil {
		return model.Task{}, false, err
	}
	s.tasks = slices.Insert(s.tasks, 0, t)
	s.logger.Debug("task added", "id", t.ID)
	return t, true, s.persist(ctx)
}

// Update applies p to the task with id. Unknown ids and blank text are no-ops.
// Only the supplied fields are validated, so a loaded task with damaged
// fields can still be edited.
func (s *Store) Update(ctx context.Context, id string, p Patch) (bool, error) {
	i := s.IndexOf(id)
	if i < 0 {
		return false, nil
	}
	next := s.tasks[i]
	if p.Text != nil {
		text := strings.TrimSpace(*p.Text)
		if text == "" {
			return false, nil
		}
		next.Text = text
	}
	if p.Due != nil {
		due := strings.TrimSpace(*p.Due)
		if err := model.ValidateDue(due); err != nil {
			return false, err
		}
		next.Due = due
	}
	if p.Priority != nil {
		if !p.Priority.IsValid() {
			return false, fmt.Errorf("%w: %q", model.ErrInvalidPriority, *p.Priority)
		}
		next.Priority = *p.Priority
	}
	s.tasks[i] = next
	s.logger.Debug("task updated", "id", id)
	return true, s.persist(ctx)
}

func (s *Store) ToggleCompleted(ctx context.Context, id string) (bool, error) {
	i := s.IndexOf(id)
	if i < 0 {
		return false, nil
	}
	s.tasks[i].Completed = !s.tasks[i].Completed
	s.logger.Debug("task toggled", "id", id, "completed", s.tasks[i].Completed)
	return true, s.persist(ctx)
}

// Remove deletes the task with id. Callers obtain confirmation first; see
// RemoveConfirmed.
func (s *Store) Remove(ctx context.Context, id string) (bool, error) {
	i := s.IndexOf(id)
	if i < 0 {
		return false, nil
	}
	s.tasks = slices.Delete(s.tasks, i, i+1)
	s.logger.Debug("task removed", "id", id)
	return true, s.persist(ctx)
}

// Clear removes every task. Callers obtain confirmation first; see
// ClearConfirmed.
func (s *Store) Clear(ctx context.Context) (bool, error) {
	changed := len(s.tasks) > 0
	s.tasks = nil
	s.logger.Debug("tasks cleared")
	return changed, s.persist(ctx)
}

// Reorder moves the task at from to position to of the remaining sequence.
func (s *Store) Reorder(ctx context.Context, from, to int) error {
	next, err := model.Move(s.tasks, from, to)
	if err != nil {
		return err
	}
	s.tasks = next
	s.logger.Debug("task moved", "from", from, "to", to)
	return s.persist(ctx)
}

func (s *Store) Theme() model.Theme {
	return s.theme
}

func (s *Store) SetTheme(ctx context.Context, th model.Theme) error {
	if !th.IsValid() {
		return fmt.Errorf("%w: %q", model.ErrInvalidTheme, th)
	}
	s.theme = th
	if err := s.gw.SaveTheme(ctx, string(th)); err != nil {
		s.logger.Warn("save theme failed", "err", err)
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return nil
}

func (s *Store) ToggleTheme(ctx context.Context) (model.Theme, error) {
	next := s.theme.Toggle()
	return next, s.SetTheme(ctx, next)
}

func (s *Store) persist(ctx context.Context) error {
	if err := s.gw.SaveTasks(ctx, toRecords(s.tasks)); err != nil {
		s.dirty = true
		s.logger.Warn("save tasks failed", "err", err, "tasks", len(s.tasks))
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	s.dirty = false
	return nil
}

func (s *Store) uniqueID() string {
	for attempt := 0; attempt < 16; attempt++ {
		id := s.newID()
		if id != "" && s.IndexOf(id) < 0 {
			return id
		}
	}
	// A misbehaving id source must not stall the session.
	for {
		if id := uuid.NewString(); s.IndexOf(id) < 0 {
			return id
		}
	}
}
