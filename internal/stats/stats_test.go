package stats

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandeepkv93/taskpad/internal/model"
)

var today = time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

func task(id, due string, completed bool) model.Task {
	return model.Task{ID: id, Text: id, Due: due, Priority: model.PriorityMedium, Completed: completed, CreatedAt: today}
}

func TestComputeEmpty(t *testing.T) {
	s := Compute(nil, today)
	assert.Equal(t, Summary{}, s)
	assert.Equal(t, 0, s.Pending())
}

func TestComputeCountsAndProgress(t *testing.T) {
	tasks := []model.Task{
		task("a", "2024-01-01", false),
		task("b", "2024-01-01", true),
		task("c", "2024-06-01", false),
		task("d", "", true),
		task("e", "", false),
		task("f", "2024-05-31", false),
	}
	s := Compute(tasks, today)
	assert.Equal(t, 6, s.Total)
	assert.Equal(t, 2, s.Completed)
	assert.Equal(t, 2, s.Overdue)
	assert.Equal(t, 2, s.Pending())
	assert.Equal(t, 33, s.ProgressPercent)
}

func TestProgressRoundsHalfUp(t *testing.T) {
	tasks := []model.Task{task("a", "", true), task("b", "", false), task("c", "", false), task("d", "", false),
		task("e", "", false), task("f", "", false), task("g", "", false), task("h", "", false)}
	// 1/8 = 12.5%
	assert.Equal(t, 13, Compute(tasks, today).ProgressPercent)
}

func TestBucketsSumToTotal(t *testing.T) {
	combos := [][]model.Task{
		nil,
		{task("a", "2024-01-01", false)},
		{task("a", "2024-01-01", true), task("b", "2024-01-01", false), task("c", "", false)},
		{task("a", "", true), task("b", "", true)},
	}
	for _, tasks := range combos {
		s := Compute(tasks, today)
		sum := 0
		for _, b := range s.Buckets() {
			assert.GreaterOrEqual(t, b.Value, 0)
			sum += b.Value
		}
		assert.Equal(t, s.Total, sum)
	}
	names := []string{}
	for _, b := range Compute(nil, today).Buckets() {
		names = append(names, b.Name)
	}
	assert.Equal(t, []string{BucketCompleted, BucketPending, BucketOverdue}, names)
}

func TestScenarioSingleOverdue(t *testing.T) {
	tasks := []model.Task{{ID: "x", Text: "A", Due: "2024-01-01", Priority: model.PriorityLow, CreatedAt: today}}
	assert.Equal(t, 1, Compute(tasks, today).Overdue)
}

func TestUpcomingCountsOpenTasksPerDay(t *testing.T) {
	u := NewUpcoming(today)
	require.Equal(t, []string{"2024-06-01", "2024-06-02", "2024-06-03", "2024-06-04", "2024-06-05", "2024-06-06", "2024-06-07"}, u.Days())

	tasks := []model.Task{
		task("a", "2024-06-01", false),
		task("b", "2024-06-01", true),
		task("c", "2024-06-03", false),
		task("d", "2024-06-03", false),
		task("e", "2024-06-08", false),
		task("f", "", false),
	}
	counts := u.Counts(tasks)
	require.Len(t, counts, UpcomingDays)
	assert.Equal(t, DayCount{Date: "2024-06-01", Pending: 1}, counts[0])
	assert.Equal(t, DayCount{Date: "2024-06-02", Pending: 0}, counts[1])
	assert.Equal(t, DayCount{Date: "2024-06-03", Pending: 2}, counts[2])
}

func TestUpcomingReorderIsCopyOnWrite(t *testing.T) {
	u := NewUpcoming(today)
	moved, err := u.Reorder(0, 6)
	require.NoError(t, err)
	assert.Equal(t, "2024-06-01", u.Days()[0], "original order untouched")
	assert.Equal(t, "2024-06-02", moved.Days()[0])
	assert.Equal(t, "2024-06-01", moved.Days()[6])

	counts := moved.Counts([]model.Task{task("a", "2024-06-01", false)})
	assert.Equal(t, DayCount{Date: "2024-06-01", Pending: 1}, counts[6])

	_, err = u.Reorder(0, 7)
	assert.True(t, errors.Is(err, model.ErrInvalidIndex))
}
