package views

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandeepkv93/taskpad/internal/model"
	"github.com/sandeepkv93/taskpad/internal/stats"
)

func TestRenderTaskListMarksCursorAndOverdue(t *testing.T) {
	st := StylesFor(model.ThemeLight)
	created := time.Date(2024, 6, 1, 9, 0, 0, 0, time.Local)
	items := []TaskItemData{
		NewTaskItem(model.Task{ID: "a1", Text: "Buy milk", Due: "2024-05-31", Priority: model.PriorityHigh, CreatedAt: created}, true),
		NewTaskItem(model.Task{ID: "b2", Text: "Call mom", Priority: model.PriorityLow, Completed: true, CreatedAt: created}, false),
	}
	out := RenderTaskList(TaskListData{Items: items, Cursor: 1, Total: 2, Focused: true}, st)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "Buy milk")
	assert.Contains(t, lines[0], "HIGH")
	assert.Contains(t, lines[0], "overdue")
	assert.Contains(t, lines[1], "> ")
	assert.Contains(t, lines[1], "[x]")
}

func TestRenderTaskListEmptyStates(t *testing.T) {
	st := StylesFor(model.ThemeDark)
	assert.Contains(t, RenderTaskList(TaskListData{}, st), "No tasks yet")
	assert.Contains(t, RenderTaskList(TaskListData{Total: 3}, st), "No tasks match")
}

func TestSegmentWidthsFillBar(t *testing.T) {
	s := stats.Summary{Total: 8, Completed: 1, Overdue: 1}
	widths := segmentWidths(s.Buckets(), s.Total, 30)
	sum := 0
	for _, w := range widths {
		assert.Positive(t, w)
		sum += w
	}
	assert.Equal(t, 30, sum)

	widths = segmentWidths(stats.Summary{Total: 2, Completed: 0, Overdue: 2}.Buckets(), 2, 10)
	assert.Equal(t, []int{0, 0, 10}, widths)
}

func TestRenderOverviewLegend(t *testing.T) {
	out := RenderOverview(stats.Summary{Total: 3, Completed: 1, Overdue: 1, ProgressPercent: 33}, 20, StylesFor(model.ThemeLight))
	assert.Contains(t, out, "Completed")
	assert.Contains(t, out, "Pending")
	assert.Contains(t, out, "Overdue")
}

func TestRenderUpcomingLabels(t *testing.T) {
	days := []stats.DayCount{{Date: "2024-06-01", Pending: 0}, {Date: "2024-06-02", Pending: 3}}
	out := RenderUpcoming(UpcomingData{Days: days, Focused: true, Selected: 1}, StylesFor(model.ThemeDark))
	assert.Contains(t, out, "06-01")
	assert.Contains(t, out, "06-02")
	assert.Contains(t, out, "3")
}

func TestBarHeight(t *testing.T) {
	assert.Equal(t, 0, barHeight(0, 5))
	assert.Equal(t, 1, barHeight(1, 100))
	assert.Equal(t, MaxBarHeight, barHeight(4, 4))
}

func TestRenderControlsShowsActiveFilter(t *testing.T) {
	out := RenderControls(ControlsData{Filter: model.FilterOverdue, Sort: model.SortDue, Search: "milk"}, StylesFor(model.ThemeLight))
	assert.Contains(t, out, "[Overdue]")
	assert.Contains(t, out, "sort: due")
	assert.Contains(t, out, "milk")
}

func TestRenderMarkdownFallsBackOnEmpty(t *testing.T) {
	assert.Equal(t, "", RenderMarkdown("  ", model.ThemeDark))
	assert.Contains(t, RenderMarkdown("# Keys", model.ThemeLight), "Keys")
}

func TestPaletteFollowsTheme(t *testing.T) {
	assert.Equal(t, lightPalette, PaletteFor(model.ThemeLight))
	assert.Equal(t, darkPalette, PaletteFor(model.ThemeDark))
	assert.Equal(t, lightPalette, PaletteFor(model.Theme("")))
}
