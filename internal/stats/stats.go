// Package stats computes aggregate progress figures and chart series over the
// full, unfiltered task snapshot.
package stats

import (
	"math"
	"time"

	"github.com/sandeepkv93/taskpad/internal/model"
)

const (
	BucketCompleted = "Completed"
	BucketPending   = "Pending"
	BucketOverdue   = "Overdue"
)

type Summary struct {
	Total           int
	Completed       int
	Overdue         int
	ProgressPercent int
}

// Pending is the residual of total minus completed minus overdue, so a task is
// never counted in two buckets.
func (s Summary) Pending() int {
	return s.Total - s.Completed - s.Overdue
}

type Bucket struct {
	Name  string
	Value int
}

// Buckets returns the status breakdown in chart order. The values sum to Total.
func (s Summary) Buckets() []Bucket {
	return []Bucket{
		{Name: BucketCompleted, Value: s.Completed},
		{Name: BucketPending, Value: s.Pending()},
		{Name: BucketOverdue, Value: s.Overdue},
	}
}

func Compute(tasks []model.Task, today time.Time) Summary {
	var s Summary
	s.Total = len(tasks)
	for _, t := range tasks {
		if t.Completed {
			s.Completed++
		}
		if t.IsOverdue(today) {
			s.Overdue++
		}
	}
	if s.Total > 0 {
		s.ProgressPercent = int(math.Round(float64(s.Completed) / float64(s.Total) * 100))
	}
	return s
}
