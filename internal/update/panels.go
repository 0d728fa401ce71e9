package update

import (
	"fmt"

	"github.com/sandeepkv93/taskpad/internal/model"
	"github.com/sandeepkv93/taskpad/internal/views"
)

func (m Model) View() string {
	if m.Quitting {
		return ""
	}
	theme := m.store.Theme()
	st := views.StylesFor(theme)
	return views.RenderApp(views.AppData{
		Theme:     theme,
		Header:    fmt.Sprintf("Task Manager | %d tasks | theme: %s", m.summary.Total, theme),
		Stats:     views.RenderStats(m.summary, st),
		Controls:  m.renderControls(st),
		Progress:  views.RenderProgress(m.progressBar.ViewAs(float64(m.summary.ProgressPercent)/100), m.summary.ProgressPercent, st),
		List:      m.renderTaskList(st),
		Overview:  views.RenderOverview(m.summary, m.chartWidth(), st),
		Upcoming:  m.renderUpcoming(st),
		Overlay:   m.renderOverlay(st),
		Status:    m.Status.Text,
		StatusErr: m.Status.IsError,
		Footer:    m.renderShortHelp(),
	})
}

// chartWidth sizes the status bar chart to a third of the window.
func (m Model) chartWidth() int {
	return min(max(m.width/3, 20), 48)
}

func (m Model) renderControls(st views.Styles) string {
	return views.RenderControls(views.ControlsData{
		Filter:      m.Query.Filter,
		Sort:        m.Query.Sort,
		Search:      m.Query.Search,
		SearchInput: m.searchInput.View(),
		Searching:   m.Mode == ModeSearch,
	}, st)
}

func (m Model) renderTaskList(st views.Styles) string {
	today := m.now()
	items := make([]views.TaskItemData, 0, len(m.visible))
	for _, t := range m.visible {
		items = append(items, views.NewTaskItem(t, t.IsOverdue(today)))
	}
	return views.RenderTaskList(views.TaskListData{
		Items:    items,
		Cursor:   m.Cursor,
		Total:    m.summary.Total,
		Focused:  m.Mode != ModeChart,
		Detailed: m.Detailed,
	}, st)
}

func (m Model) renderUpcoming(st views.Styles) string {
	return views.RenderUpcoming(views.UpcomingData{
		Days:     m.Upcoming.Counts(m.store.Snapshot()),
		Focused:  m.Mode == ModeChart,
		Selected: m.ChartCursor,
	}, st)
}

func (m Model) renderOverlay(st views.Styles) string {
	switch m.Mode {
	case ModeAdd, ModeEdit:
		title := "New task"
		if m.Mode == ModeEdit {
			title = "Edit task"
		}
		return views.RenderEditor(views.EditorData{
			Title:     title,
			TextView:  m.textInput.View(),
			DueView:   m.dueInput.View(),
			Priority:  m.editorPriority(),
			Field:     m.Editor.Field,
			ErrorText: m.Editor.Err,
		}, st)
	case ModeConfirm:
		return views.RenderConfirm(m.Confirm.Prompt, st)
	case ModePalette:
		return views.RenderCommandPalette(true, m.commandInput.View()) + "\n" + st.Muted.Render(PaletteCommands())
	}
	return m.renderHelpIfVisible()
}

func (m Model) editorPriority() model.Priority {
	if m.Editor.Priority == "" {
		return model.PriorityMedium
	}
	return m.Editor.Priority
}
