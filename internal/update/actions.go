package update

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/taskpad/internal/store"
)

func (m Model) openSearch() Model {
	m.Mode = ModeSearch
	m.prevSearch = m.Query.Search
	m.searchInput.SetValue(m.Query.Search)
	m.searchInput.Focus()
	return m
}

// handleSearchKey filters live while typing. Enter keeps the query, esc
// restores the previous one.
func (m Model) handleSearchKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "enter":
		m.Mode = ModeList
		m.searchInput.Blur()
		if m.Query.Search == "" {
			m.Status = StatusBar{Text: "search cleared"}
		} else {
			m.Status = StatusBar{Text: fmt.Sprintf("search: %q (%d match)", m.Query.Search, len(m.visible))}
		}
		return m
	case "esc":
		m.Mode = ModeList
		m.searchInput.Blur()
		m.Query.Search = m.prevSearch
		m.refresh()
		return m
	}
	if text, ok := typedText(msg); ok {
		m.searchInput.SetValue(m.searchInput.Value() + text)
	} else {
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		_ = cmd
	}
	m.Query.Search = m.searchInput.Value()
	m.refresh()
	return m
}

func (m Model) askRemove(id string) Model {
	t, ok := m.store.Get(id)
	if !ok {
		m.Status = StatusBar{Text: "task no longer exists"}
		return m
	}
	m.Mode = ModeConfirm
	m.Confirm = ConfirmState{
		Prompt: fmt.Sprintf("%s %q", store.RemovePrompt, t.Text),
		run: func(c store.Confirmer) (bool, error) {
			return m.store.RemoveConfirmed(m.ctx, id, c)
		},
		done: fmt.Sprintf("deleted: %s", t.Text),
	}
	return m
}

func (m Model) askClear() Model {
	if m.store.Len() == 0 {
		m.Status = StatusBar{Text: "nothing to clear"}
		return m
	}
	m.Mode = ModeConfirm
	m.Confirm = ConfirmState{
		Prompt: fmt.Sprintf("%s (%d tasks)", store.ClearPrompt, m.store.Len()),
		run: func(c store.Confirmer) (bool, error) {
			return m.store.ClearConfirmed(m.ctx, c)
		},
		done: "all tasks cleared",
	}
	return m
}

// handleConfirmKey answers the pending prompt. Only y accepts.
func (m Model) handleConfirmKey(msg tea.KeyMsg) Model {
	yes := strings.EqualFold(msg.String(), "y")
	pending := m.Confirm
	m.Mode = ModeList
	m.Confirm = ConfirmState{}
	if pending.run == nil {
		return m
	}
	changed, err := pending.run(store.ConfirmFunc(func(string) (bool, error) { return yes, nil }))
	if !yes && err == nil {
		m.refresh()
		m.Status = StatusBar{Text: "cancelled"}
		return m
	}
	return m.reportMutation(changed, err, pending.done, "task no longer exists")
}

func (m Model) handleChartKey(msg tea.KeyMsg) Model {
	switch {
	case key.Matches(msg, chartExit):
		m.Mode = ModeList
		m.Status = StatusBar{}
	case key.Matches(msg, chartLeft):
		if m.ChartCursor > 0 {
			m.ChartCursor--
		}
	case key.Matches(msg, chartRight):
		if m.ChartCursor < m.Upcoming.Len()-1 {
			m.ChartCursor++
		}
	case key.Matches(msg, chartMoveLeft):
		m = m.moveDay(-1)
	case key.Matches(msg, chartMoveRight):
		m = m.moveDay(1)
	}
	return m
}

// moveDay reorders the upcoming chart for this session only.
func (m Model) moveDay(delta int) Model {
	to := m.ChartCursor + delta
	next, err := m.Upcoming.Reorder(m.ChartCursor, to)
	if err != nil {
		m.Status = StatusBar{Text: "already at the edge"}
		return m
	}
	m.Upcoming = next
	m.ChartCursor = to
	return m
}
