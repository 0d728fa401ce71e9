package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/taskpad/internal/model"
	"github.com/sandeepkv93/taskpad/internal/store"
)

func (m Model) openEditor(mode Mode) Model {
	m.Editor = EditorState{Priority: model.PriorityMedium}
	m.textInput.SetValue("")
	m.dueInput.SetValue("")
	if mode == ModeEdit {
		t, ok := m.selected()
		if !ok {
			m.Status = StatusBar{Text: "no task selected"}
			return m
		}
		m.Editor.TaskID = t.ID
		m.Editor.Priority = t.Priority
		m.textInput.SetValue(t.Text)
		m.dueInput.SetValue(t.Due)
	}
	m.Mode = mode
	m.focusEditorField(fieldText)
	return m
}

func (m *Model) focusEditorField(field int) {
	m.Editor.Field = field
	m.textInput.Blur()
	m.dueInput.Blur()
	switch field {
	case fieldText:
		m.textInput.Focus()
	case fieldDue:
		m.dueInput.Focus()
	}
}

func (m Model) handleEditorKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.Mode = ModeList
		m.Editor = EditorState{}
		m.Status = StatusBar{Text: "edit cancelled"}
		return m
	case "enter":
		return m.saveEditor()
	case "tab", "down":
		m.focusEditorField((m.Editor.Field + 1) % fieldCount)
		return m
	case "shift+tab", "up":
		m.focusEditorField((m.Editor.Field + fieldCount - 1) % fieldCount)
		return m
	}

	if m.Editor.Field == fieldPriority {
		switch msg.String() {
		case " ", "right", "l":
			m.Editor.Priority = m.Editor.Priority.Next()
		case "left", "h":
			m.Editor.Priority = m.Editor.Priority.Next().Next()
		case "1":
			m.Editor.Priority = model.PriorityHigh
		case "2":
			m.Editor.Priority = model.PriorityMedium
		case "3":
			m.Editor.Priority = model.PriorityLow
		}
		return m
	}

	input := &m.textInput
	if m.Editor.Field == fieldDue {
		input = &m.dueInput
	}
	if text, ok := typedText(msg); ok {
		input.SetValue(input.Value() + text)
		return m
	}
	var cmd tea.Cmd
	*input, cmd = input.Update(msg)
	_ = cmd
	return m
}

func (m Model) saveEditor() Model {
	text := m.textInput.Value()
	due := m.dueInput.Value()
	if err := model.ValidateDue(due); err != nil {
		m.Editor.Err = fmt.Sprintf("due date must be %s", model.DateLayout)
		return m
	}

	if m.Mode == ModeAdd {
		t, changed, err := m.store.Add(m.ctx, store.Draft{Text: text, Due: due, Priority: m.Editor.Priority})
		if err != nil && !isPersistErr(err) {
			m.Editor.Err = err.Error()
			return m
		}
		m.Mode = ModeList
		m.Editor = EditorState{}
		m = m.reportMutation(changed, err, fmt.Sprintf("added: %s", t.Text), "nothing to add: task text is empty")
		if changed {
			m.selectID(t.ID)
		}
		return m
	}

	prio := m.Editor.Priority
	id := m.Editor.TaskID
	changed, err := m.store.Update(m.ctx, id, store.Patch{Text: &text, Due: &due, Priority: &prio})
	if err != nil && !isPersistErr(err) {
		m.Editor.Err = err.Error()
		return m
	}
	m.Mode = ModeList
	m.Editor = EditorState{}
	m = m.reportMutation(changed, err, "task updated", "task unchanged: text cannot be empty")
	m.selectID(id)
	return m
}

// typedText returns literal text typed by the user.
func typedText(msg tea.KeyMsg) (string, bool) {
	switch msg.Type {
	case tea.KeyRunes:
		return string(msg.Runes), true
	case tea.KeySpace:
		return " ", true
	}
	return "", false
}
