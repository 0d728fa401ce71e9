package update

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/taskpad/internal/commands"
	"github.com/sandeepkv93/taskpad/internal/model"
	"github.com/sandeepkv93/taskpad/internal/store"
)

func (m Model) openPalette() Model {
	m.Mode = ModePalette
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Focus()
	m.Status = StatusBar{Text: "command palette active"}
	return m
}

func (m Model) handlePaletteKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.Mode = ModeList
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Blur()
		m.Status = StatusBar{Text: "command palette closed"}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		m = m.executePaletteCommand()
	default:
		if text, ok := typedText(msg); ok {
			m.commandInput.SetValue(m.commandInput.Value() + text)
			m.Palette.Input = m.commandInput.Value()
			return m
		}
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		_ = cmd
		m.Palette.Input = m.commandInput.Value()
	}
	return m
}

func (m Model) executePaletteCommand() Model {
	raw := strings.TrimSpace(m.Palette.Input)
	m.Mode = ModeList
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()

	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}

	// Handlers mutate next; destructive commands switch it into confirm mode.
	next := m
	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			t, changed, err := next.store.Add(next.ctx, store.Draft{Text: a.Text, Due: a.Due, Priority: a.Priority})
			next = next.reportMutation(changed, err, fmt.Sprintf("added: %s", t.Text), "")
			next.selectID(t.ID)
			return commands.Result{Message: next.Status.Text}, nil
		},
		Edit: func(e commands.EditArgs) (commands.Result, error) {
			t, err := next.resolveTarget(e.Target)
			if err != nil {
				return commands.Result{}, err
			}
			changed, err := next.store.Update(next.ctx, t.ID, store.Patch{Text: e.Text, Due: e.Due, Priority: e.Priority})
			next = next.reportMutation(changed, err, fmt.Sprintf("updated: %s", t.Text), "task unchanged")
			return commands.Result{Message: next.Status.Text}, nil
		},
		Done: func(a commands.TargetArgs) (commands.Result, error) {
			t, err := next.resolveTarget(a.Target)
			if err != nil {
				return commands.Result{}, err
			}
			changed, err := next.store.ToggleCompleted(next.ctx, t.ID)
			verb := "completed"
			if t.Completed {
				verb = "reopened"
			}
			next = next.reportMutation(changed, err, fmt.Sprintf("%s: %s", verb, t.Text), "task no longer exists")
			return commands.Result{Message: next.Status.Text}, nil
		},
		Delete: func(a commands.TargetArgs) (commands.Result, error) {
			t, err := next.resolveTarget(a.Target)
			if err != nil {
				return commands.Result{}, err
			}
			next = next.askRemove(t.ID)
			return commands.Result{Message: next.Confirm.Prompt}, nil
		},
		Clear: func() (commands.Result, error) {
			next = next.askClear()
			return commands.Result{Message: next.Status.Text}, nil
		},
		Filter: func(a commands.FilterArgs) (commands.Result, error) {
			next.Query.Filter = a.Filter
			next.refresh()
			return commands.Result{Message: fmt.Sprintf("filter: %s", a.Filter)}, nil
		},
		Sort: func(a commands.SortArgs) (commands.Result, error) {
			next.Query.Sort = a.Sort
			next.refresh()
			return commands.Result{Message: fmt.Sprintf("sort: %s", a.Sort)}, nil
		},
		Search: func(a commands.SearchArgs) (commands.Result, error) {
			next.Query.Search = a.Query
			next.refresh()
			if a.Query == "" {
				return commands.Result{Message: "search cleared"}, nil
			}
			return commands.Result{Message: fmt.Sprintf("search: %q (%d match)", a.Query, len(next.visible))}, nil
		},
		Theme: func(a commands.ThemeArgs) (commands.Result, error) {
			th := a.Theme
			var err error
			if th == "" {
				th, err = next.store.ToggleTheme(next.ctx)
			} else {
				err = next.store.SetTheme(next.ctx, th)
			}
			next = next.reportMutation(true, err, fmt.Sprintf("theme: %s", th), "")
			return commands.Result{Message: next.Status.Text}, nil
		},
		Move: func(a commands.MoveArgs) (commands.Result, error) {
			err := next.store.Reorder(next.ctx, a.From, a.To)
			if err != nil && !isPersistErr(err) {
				return commands.Result{}, &commands.CommandError{
					Code:    commands.ErrCodeInvalidArgument,
					Message: fmt.Sprintf("positions must be between 1 and %d", next.store.Len()),
				}
			}
			next = next.reportMutation(true, err, fmt.Sprintf("moved task %d to %d", a.From+1, a.To+1), "")
			return commands.Result{Message: next.Status.Text}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}
	if next.Mode != ModeConfirm && !next.Status.IsError {
		next.Status = StatusBar{Text: res.Message}
	}
	return next
}

// resolveTarget accepts "#N" for the Nth visible task, otherwise an id or a
// unique id prefix.
func (m Model) resolveTarget(ref string) (model.Task, error) {
	if pos, ok := strings.CutPrefix(ref, "#"); ok {
		n, err := strconv.Atoi(pos)
		if err != nil || n < 1 || n > len(m.visible) {
			return model.Task{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("no visible task %s", ref)}
		}
		return m.visible[n-1], nil
	}
	t, ok := m.store.Resolve(ref)
	if !ok {
		return model.Task{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("no task matches %q", ref)}
	}
	return t, nil
}
