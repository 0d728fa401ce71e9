package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidPriority = errors.New("model: invalid task priority")
	ErrInvalidDue      = errors.New("model: invalid due date")
	ErrInvalidFilter   = errors.New("model: invalid filter")
	ErrInvalidSort     = errors.New("model: invalid sort mode")
	ErrInvalidTheme    = errors.New("model: invalid theme")
)

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

func (p Priority) IsValid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

// Rank orders priorities high(1) < medium(2) < low(3). Unknown values sort last.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	default:
		return 4
	}
}

// Next cycles high -> medium -> low -> high.
func (p Priority) Next() Priority {
	switch p {
	case PriorityHigh:
		return PriorityMedium
	case PriorityMedium:
		return PriorityLow
	default:
		return PriorityHigh
	}
}

// ParsePriority accepts any case; the empty string means medium.
func ParsePriority(raw string) (Priority, error) {
	v := strings.ToLower(strings.TrimSpace(raw))
	if v == "" {
		return PriorityMedium, nil
	}
	p := Priority(v)
	if !p.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidPriority, raw)
	}
	return p, nil
}

type Filter string

const (
	FilterAll       Filter = "all"
	FilterPending   Filter = "pending"
	FilterCompleted Filter = "completed"
	FilterOverdue   Filter = "overdue"
)

var Filters = []Filter{FilterAll, FilterPending, FilterCompleted, FilterOverdue}

func (f Filter) IsValid() bool {
	switch f {
	case FilterAll, FilterPending, FilterCompleted, FilterOverdue:
		return true
	default:
		return false
	}
}

func (f Filter) Next() Filter {
	return cycle(Filters, f)
}

func ParseFilter(raw string) (Filter, error) {
	f := Filter(strings.ToLower(strings.TrimSpace(raw)))
	if !f.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidFilter, raw)
	}
	return f, nil
}

type SortMode string

const (
	SortDefault  SortMode = "default"
	SortPriority SortMode = "priority"
	SortDue      SortMode = "due"
	SortManual   SortMode = "manual"
)

var SortModes = []SortMode{SortDefault, SortPriority, SortDue, SortManual}

func (s SortMode) IsValid() bool {
	switch s {
	case SortDefault, SortPriority, SortDue, SortManual:
		return true
	default:
		return false
	}
}

func (s SortMode) Next() SortMode {
	return cycle(SortModes, s)
}

func ParseSortMode(raw string) (SortMode, error) {
	s := SortMode(strings.ToLower(strings.TrimSpace(raw)))
	if !s.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidSort, raw)
	}
	return s, nil
}

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

func (t Theme) IsValid() bool {
	return t == ThemeLight || t == ThemeDark
}

func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

func ParseTheme(raw string) (Theme, error) {
	t := Theme(strings.ToLower(strings.TrimSpace(raw)))
	if !t.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidTheme, raw)
	}
	return t, nil
}

type Task struct {
	ID        string
	Text      string
	Due       string
	Priority  Priority
	Completed bool
	CreatedAt time.Time
}

// HasDue reports whether a due date is set.
func (t Task) HasDue() bool {
	return t.Due != ""
}

// IsOverdue reports whether the task is open and its due date is strictly before today.
func (t Task) IsOverdue(today time.Time) bool {
	if t.Completed || !t.HasDue() {
		return false
	}
	if _, ok := ParseDate(t.Due); !ok {
		return false
	}
	// Both sides are zero-padded calendar dates, so string order is date order.
	return t.Due < FormatDate(today)
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: task id is required")
	}
	if strings.TrimSpace(t.Text) == "" {
		return errors.New("model: task text is required")
	}
	if !t.Priority.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, t.Priority)
	}
	if err := ValidateDue(t.Due); err != nil {
		return err
	}
	if t.CreatedAt.IsZero() {
		return errors.New("model: task created_at is required")
	}
	return nil
}

func cycle[T comparable](all []T, cur T) T {
	for i, v := range all {
		if v == cur {
			return all[(i+1)%len(all)]
		}
	}
	return all[0]
}
