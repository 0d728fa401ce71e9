package update

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/taskpad/internal/model"
	"github.com/sandeepkv93/taskpad/internal/store"
)

// DayChangedMsg fires after local midnight so overdue flags and the
// upcoming window follow the calendar.
type DayChangedMsg struct{}

func (m Model) Init() tea.Cmd {
	return m.waitForNextDay()
}

func (m Model) waitForNextDay() tea.Cmd {
	now := m.now()
	next := model.DateOnly(now).AddDate(0, 0, 1)
	return tea.Tick(next.Sub(now)+time.Second, func(time.Time) tea.Msg { return DayChangedMsg{} })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = typed.Width
		m.helpModel.Width = typed.Width
		return m, nil
	case tea.KeyMsg:
		if typed.String() == "ctrl+c" {
			m.Quitting = true
			return m, tea.Quit
		}
		switch m.Mode {
		case ModeAdd, ModeEdit:
			return m.handleEditorKey(typed), nil
		case ModeSearch:
			return m.handleSearchKey(typed), nil
		case ModeConfirm:
			return m.handleConfirmKey(typed), nil
		case ModePalette:
			return m.handlePaletteKey(typed), nil
		case ModeChart:
			return m.handleChartKey(typed), nil
		default:
			return m.handleListKey(typed)
		}
	case DayChangedMsg:
		m.refresh()
		return m, m.waitForNextDay()
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.Quit):
		m.Quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.Keys.Up):
		if m.Cursor > 0 {
			m.Cursor--
		}
	case key.Matches(msg, m.Keys.Down):
		if m.Cursor < len(m.visible)-1 {
			m.Cursor++
		}
	case key.Matches(msg, m.Keys.Details):
		m.Detailed = !m.Detailed
	case key.Matches(msg, m.Keys.Toggle):
		m = m.toggleSelected()
	case key.Matches(msg, m.Keys.Add):
		m = m.openEditor(ModeAdd)
	case key.Matches(msg, m.Keys.Edit):
		m = m.openEditor(ModeEdit)
	case key.Matches(msg, m.Keys.Delete):
		if t, ok := m.selected(); ok {
			m = m.askRemove(t.ID)
		}
	case key.Matches(msg, m.Keys.Clear):
		m = m.askClear()
	case key.Matches(msg, m.Keys.MoveUp):
		m = m.moveSelected(-1)
	case key.Matches(msg, m.Keys.MoveDown):
		m = m.moveSelected(1)
	case key.Matches(msg, m.Keys.Filter):
		m.Query.Filter = m.Query.Filter.Next()
		m.refresh()
		m.Status = StatusBar{Text: fmt.Sprintf("filter: %s", m.Query.Filter)}
	case key.Matches(msg, m.Keys.Sort):
		m.Query.Sort = m.Query.Sort.Next()
		m.refresh()
		m.Status = StatusBar{Text: fmt.Sprintf("sort: %s", m.Query.Sort)}
	case key.Matches(msg, m.Keys.Search):
		m = m.openSearch()
	case key.Matches(msg, m.Keys.Theme):
		th, err := m.store.ToggleTheme(m.ctx)
		m = m.reportMutation(true, err, fmt.Sprintf("theme: %s", th), "")
	case key.Matches(msg, m.Keys.Chart):
		m.Mode = ModeChart
		m.Status = StatusBar{Text: "chart focused: h/l select, H/L move, tab back"}
	case key.Matches(msg, m.Keys.Palette):
		m = m.openPalette()
	case key.Matches(msg, m.Keys.Help):
		m.HelpVisible = !m.HelpVisible
	}
	return m, nil
}

func (m Model) toggleSelected() Model {
	t, ok := m.selected()
	if !ok {
		m.Status = StatusBar{Text: "no task selected"}
		return m
	}
	changed, err := m.store.ToggleCompleted(m.ctx, t.ID)
	verb := "completed"
	if t.Completed {
		verb = "reopened"
	}
	return m.reportMutation(changed, err, fmt.Sprintf("%s: %s", verb, t.Text), "task no longer exists")
}

// moveSelected swaps the selected task with its visible neighbour in store
// order. Only manual sort shows store order, so other modes refuse.
func (m Model) moveSelected(delta int) Model {
	if m.Query.Sort != model.SortManual {
		m.Status = StatusBar{Text: "switch to manual sort to reorder tasks"}
		return m
	}
	t, ok := m.selected()
	if !ok {
		return m
	}
	target := m.Cursor + delta
	if target < 0 || target >= len(m.visible) {
		m.Status = StatusBar{Text: "already at the edge"}
		return m
	}
	from := m.store.IndexOf(t.ID)
	to := m.store.IndexOf(m.visible[target].ID)
	err := m.store.Reorder(m.ctx, from, to)
	m = m.reportMutation(err == nil || isPersistErr(err), err, fmt.Sprintf("moved: %s", t.Text), "")
	m.selectID(t.ID)
	return m
}

// reportMutation refreshes derived state and sets the status line. A
// persistence failure keeps the change and shows a warning.
func (m Model) reportMutation(changed bool, err error, okText, noopText string) Model {
	m.refresh()
	switch {
	case isPersistErr(err):
		m.LastError = err
		m.Status = StatusBar{Text: "warning: not saved: " + err.Error(), IsError: true}
	case err != nil:
		m.LastError = err
		m.Status = StatusBar{Text: err.Error(), IsError: true}
	case !changed:
		m.Status = StatusBar{Text: noopText}
	default:
		m.Status = StatusBar{Text: okText}
	}
	return m
}

func isPersistErr(err error) bool {
	return errors.Is(err, store.ErrPersist)
}
