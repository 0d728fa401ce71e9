// Package query derives the displayed task list from a store snapshot.
package query

import (
	"slices"
	"strings"
	"time"

	"github.com/sandeepkv93/taskpad/internal/model"
)

// noDueSentinel makes tasks without a due date sort after every dated task.
const noDueSentinel = "9999-12-31"

type Query struct {
	Filter model.Filter
	Search string
	Sort   model.SortMode
}

func Default() Query {
	return Query{Filter: model.FilterAll, Sort: model.SortDefault}
}

// Visible applies filter, then search, then sort. The input slice is never modified.
func Visible(tasks []model.Task, q Query, today time.Time) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	needle := strings.ToLower(q.Search)
	for _, t := range tasks {
		if !matchesFilter(t, q.Filter, today) {
			continue
		}
		if needle != "" && !matchesSearch(t, needle) {
			continue
		}
		out = append(out, t)
	}
	sortTasks(out, q.Sort)
	return out
}

func matchesFilter(t model.Task, f model.Filter, today time.Time) bool {
	switch f {
	case model.FilterPending:
		return !t.Completed
	case model.FilterCompleted:
		return t.Completed
	case model.FilterOverdue:
		return t.IsOverdue(today)
	default:
		return true
	}
}

// matchesSearch expects an already lowercased needle. Due and priority are
// matched raw, without lowercasing.
func matchesSearch(t model.Task, needle string) bool {
	return strings.Contains(strings.ToLower(t.Text), needle) ||
		strings.Contains(t.Due, needle) ||
		strings.Contains(string(t.Priority), needle)
}

func sortTasks(tasks []model.Task, mode model.SortMode) {
	switch mode {
	case model.SortManual:
		return
	case model.SortPriority:
		slices.SortStableFunc(tasks, func(a, b model.Task) int {
			if d := a.Priority.Rank() - b.Priority.Rank(); d != 0 {
				return d
			}
			return a.CreatedAt.Compare(b.CreatedAt)
		})
	case model.SortDue:
		slices.SortStableFunc(tasks, func(a, b model.Task) int {
			if c := strings.Compare(dueKey(a), dueKey(b)); c != 0 {
				return c
			}
			// A literal 9999-12-31 still sorts ahead of an absent date.
			switch {
			case a.HasDue() && !b.HasDue():
				return -1
			case !a.HasDue() && b.HasDue():
				return 1
			}
			return 0
		})
	default:
		slices.SortStableFunc(tasks, func(a, b model.Task) int {
			return b.CreatedAt.Compare(a.CreatedAt)
		})
	}
}

func dueKey(t model.Task) string {
	if t.Due == "" {
		return noDueSentinel
	}
	return t.Due
}
