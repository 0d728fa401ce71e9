package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sandeepkv93/taskpad/internal/model"
	"github.com/sandeepkv93/taskpad/internal/stats"
)

type TaskItemData struct {
	ID        string
	Text      string
	Due       string
	Priority  model.Priority
	Completed bool
	Overdue   bool
	CreatedAt string
}

type TaskListData struct {
	Items    []TaskItemData
	Cursor   int
	Total    int
	Focused  bool
	Detailed bool
}

type ControlsData struct {
	Filter      model.Filter
	Sort        model.SortMode
	Search      string
	SearchInput string
	Searching   bool
}

type EditorData struct {
	Title     string
	TextView  string
	DueView   string
	Priority  model.Priority
	Field     int
	ErrorText string
}

type UpcomingData struct {
	Days     []stats.DayCount
	Focused  bool
	Selected int
}

// MaxBarHeight caps the upcoming chart height in rows.
const MaxBarHeight = 6

func NewTaskItem(t model.Task, overdue bool) TaskItemData {
	return TaskItemData{
		ID:        t.ID,
		Text:      t.Text,
		Due:       t.Due,
		Priority:  t.Priority,
		Completed: t.Completed,
		Overdue:   overdue,
		CreatedAt: t.CreatedAt.Local().Format("2006-01-02 15:04"),
	}
}

func RenderStats(s stats.Summary, st Styles) string {
	card := func(title string, n int) string {
		return lipgloss.JoinVertical(lipgloss.Left, st.Muted.Render(title), st.Header.Render(fmt.Sprintf("%d", n)))
	}
	cards := []string{
		card("Total", s.Total),
		card("Completed", s.Completed),
		card("Overdue", s.Overdue),
	}
	gap := "    "
	return lipgloss.JoinHorizontal(lipgloss.Top, cards[0], gap, cards[1], gap, cards[2])
}

func RenderControls(data ControlsData, st Styles) string {
	filters := make([]string, 0, len(model.Filters))
	for _, f := range model.Filters {
		label := capitalize(string(f))
		if f == data.Filter {
			filters = append(filters, st.Selected.Render("["+label+"]"))
		} else {
			filters = append(filters, st.Muted.Render(" "+label+" "))
		}
	}
	search := data.Search
	if data.Searching {
		search = data.SearchInput
	}
	if search == "" && !data.Searching {
		search = st.Muted.Render("(none)")
	}
	return fmt.Sprintf("%s\nsort: %s | search: %s", strings.Join(filters, " "), data.Sort, search)
}

func RenderProgress(bar string, pct int, st Styles) string {
	return fmt.Sprintf("%s\n%s %s", bar, st.Muted.Render("Progress"), st.Text.Render(fmt.Sprintf("%d%%", pct)))
}

func RenderTaskList(data TaskListData, st Styles) string {
	if len(data.Items) == 0 {
		if data.Total == 0 {
			return st.Muted.Render("No tasks yet. Press [a] to add one.")
		}
		return st.Muted.Render("No tasks match the current filter.")
	}
	var b strings.Builder
	for i, item := range data.Items {
		cursor := "  "
		if data.Focused && i == data.Cursor {
			cursor = st.Selected.Render("> ")
		}
		check := "[ ]"
		if item.Completed {
			check = "[x]"
		}
		text := st.Text.Render(item.Text)
		if item.Completed {
			text = st.Done.Render(item.Text)
		}
		b.WriteString(fmt.Sprintf("%s%2d %s %s %s", cursor, i+1, check, text, PriorityBadge(item.Priority, st)))
		if item.Due != "" {
			due := "due " + item.Due
			if item.Overdue {
				b.WriteString(" " + st.Overdue.Render(due+" (overdue)"))
			} else {
				b.WriteString(" " + st.Muted.Render(due))
			}
		}
		if data.Detailed && data.Focused && i == data.Cursor {
			b.WriteString("\n      " + st.Muted.Render(fmt.Sprintf("id %s | added %s", shortID(item.ID), item.CreatedAt)))
		}
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func PriorityBadge(p model.Priority, st Styles) string {
	color := st.Palette.Low
	switch p {
	case model.PriorityHigh:
		color = st.Palette.High
	case model.PriorityMedium:
		color = st.Palette.Medium
	}
	return lipgloss.NewStyle().Bold(true).Foreground(color).Render(strings.ToUpper(string(p)))
}

// RenderOverview draws the status breakdown as a stacked bar with a legend.
func RenderOverview(s stats.Summary, width int, st Styles) string {
	var b strings.Builder
	b.WriteString(st.Header.Render("Task Overview") + "\n")
	buckets := s.Buckets()
	if s.Total == 0 {
		b.WriteString(st.Muted.Render(strings.Repeat("░", width)) + "\n")
	} else {
		segments := segmentWidths(buckets, s.Total, width)
		for i, w := range segments {
			b.WriteString(lipgloss.NewStyle().Foreground(st.Palette.Buckets[i]).Render(strings.Repeat("█", w)))
		}
		b.WriteString("\n")
	}
	for i, bucket := range buckets {
		swatch := lipgloss.NewStyle().Foreground(st.Palette.Buckets[i]).Render("■")
		b.WriteString(fmt.Sprintf("%s %-9s %d\n", swatch, bucket.Name, bucket.Value))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// segmentWidths splits width across buckets proportionally. Every non-empty
// bucket gets at least one cell and the widths sum to width.
func segmentWidths(buckets []stats.Bucket, total, width int) []int {
	out := make([]int, len(buckets))
	if total <= 0 || width <= 0 {
		return out
	}
	used := 0
	largest := 0
	for i, bucket := range buckets {
		if bucket.Value <= 0 {
			continue
		}
		w := bucket.Value * width / total
		if w == 0 {
			w = 1
		}
		out[i] = w
		used += w
		if bucket.Value > buckets[largest].Value {
			largest = i
		}
	}
	out[largest] += width - used
	if out[largest] < 0 {
		out[largest] = 0
	}
	return out
}

// RenderUpcoming draws one vertical bar per day with its MM-DD label and
// pending count. Empty days keep a stub so the column stays visible.
func RenderUpcoming(data UpcomingData, st Styles) string {
	maxCount := 0
	for _, d := range data.Days {
		maxCount = max(maxCount, d.Pending)
	}
	columns := make([]string, 0, len(data.Days))
	for i, d := range data.Days {
		h := barHeight(d.Pending, maxCount)
		rows := make([]string, MaxBarHeight)
		for r := range rows {
			if MaxBarHeight-r <= h {
				rows[r] = "███"
			} else {
				rows[r] = "   "
			}
		}
		if d.Pending == 0 {
			rows[MaxBarHeight-1] = "▁▁▁"
		}
		barStyle := lipgloss.NewStyle().Foreground(st.Palette.Bar)
		labelStyle := st.Text
		if data.Focused && i == data.Selected {
			barStyle = barStyle.Foreground(st.Palette.Accent)
			labelStyle = st.Selected
		}
		label := d.Date
		if len(label) >= 10 {
			label = label[5:]
		}
		col := lipgloss.JoinVertical(lipgloss.Center,
			barStyle.Render(strings.Join(rows, "\n")),
			labelStyle.Render(label),
			labelStyle.Render(fmt.Sprintf("%d", d.Pending)),
		)
		columns = append(columns, lipgloss.NewStyle().Width(6).Align(lipgloss.Center).Render(col))
	}
	title := st.Header.Render("Upcoming Tasks (Next 7 Days)")
	body := lipgloss.JoinHorizontal(lipgloss.Bottom, columns...)
	panel := st.Panel
	if data.Focused {
		panel = st.Focused
	}
	return panel.Render(title + "\n" + body)
}

func barHeight(count, maxCount int) int {
	if count <= 0 || maxCount <= 0 {
		return 0
	}
	h := count * MaxBarHeight / maxCount
	return max(h, 1)
}

func RenderEditor(data EditorData, st Styles) string {
	label := func(i int, name string) string {
		if i == data.Field {
			return st.Selected.Render("> " + name)
		}
		return st.Muted.Render("  " + name)
	}
	var b strings.Builder
	b.WriteString(st.Header.Render(data.Title) + "\n")
	b.WriteString(label(0, "text:     ") + data.TextView + "\n")
	b.WriteString(label(1, "due:      ") + data.DueView + "\n")
	b.WriteString(label(2, "priority: ") + PriorityBadge(data.Priority, st) + st.Muted.Render("  (space/←/→ to change)") + "\n")
	if data.ErrorText != "" {
		b.WriteString(st.Error.Render(data.ErrorText) + "\n")
	}
	b.WriteString(st.Muted.Render("[tab] next field  [enter] save  [esc] cancel"))
	return b.String()
}

func RenderConfirm(prompt string, st Styles) string {
	return st.Header.Render(prompt) + " " + st.Muted.Render("[y/N]")
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: %s", input)
}

func RenderHelpPanel(bindingsView, markdown string) string {
	return strings.TrimSpace(bindingsView + "\n\n" + markdown)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
