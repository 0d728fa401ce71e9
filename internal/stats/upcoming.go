package stats

import (
	"slices"
	"time"

	"github.com/sandeepkv93/taskpad/internal/model"
)

const UpcomingDays = 7

// Upcoming is the display order of the next seven calendar dates. It is
// session state only and is rebuilt from the current date on startup.
type Upcoming struct {
	days []string
}

type DayCount struct {
	Date    string
	Pending int
}

func NewUpcoming(today time.Time) Upcoming {
	return Upcoming{days: model.NextDays(today, UpcomingDays)}
}

func (u Upcoming) Days() []string {
	return slices.Clone(u.days)
}

func (u Upcoming) Len() int {
	return len(u.days)
}

// Reorder returns a copy with the date at from moved to position to.
func (u Upcoming) Reorder(from, to int) (Upcoming, error) {
	days, err := model.Move(u.days, from, to)
	if err != nil {
		return u, err
	}
	return Upcoming{days: days}, nil
}

// Counts returns, in display order, the number of open tasks due on each date.
func (u Upcoming) Counts(tasks []model.Task) []DayCount {
	pending := make(map[string]int, len(u.days))
	for _, t := range tasks {
		if !t.Completed && t.Due != "" {
			pending[t.Due]++
		}
	}
	out := make([]DayCount, 0, len(u.days))
	for _, d := range u.days {
		out = append(out, DayCount{Date: d, Pending: pending[d]})
	}
	return out
}
