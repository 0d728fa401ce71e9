package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/sandeepkv93/taskpad/internal/model"
)

type AppData struct {
	Theme     model.Theme
	Header    string
	Stats     string
	Controls  string
	Progress  string
	List      string
	Overview  string
	Upcoming  string
	Overlay   string
	Status    string
	StatusErr bool
	Footer    string
}

// Palette holds the colors for one theme. Bucket colors follow chart order:
// completed, pending, overdue.
type Palette struct {
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Accent  lipgloss.Color
	Bar     lipgloss.Color
	Buckets [3]lipgloss.Color
	High    lipgloss.Color
	Medium  lipgloss.Color
	Low     lipgloss.Color
}

var (
	lightPalette = Palette{
		Text:    lipgloss.Color("#1f2937"),
		Muted:   lipgloss.Color("#6b7280"),
		Accent:  lipgloss.Color("#7c3aed"),
		Bar:     lipgloss.Color("#3b82f6"),
		Buckets: [3]lipgloss.Color{"#60a5fa", "#fbbf24", "#ef4444"},
		High:    lipgloss.Color("#ef4444"),
		Medium:  lipgloss.Color("#f59e0b"),
		Low:     lipgloss.Color("#10b981"),
	}
	darkPalette = Palette{
		Text:    lipgloss.Color("#f3f4f6"),
		Muted:   lipgloss.Color("#9ca3af"),
		Accent:  lipgloss.Color("#a78bfa"),
		Bar:     lipgloss.Color("#60a5fa"),
		Buckets: [3]lipgloss.Color{"#3b82f6", "#f59e0b", "#dc2626"},
		High:    lipgloss.Color("#dc2626"),
		Medium:  lipgloss.Color("#f59e0b"),
		Low:     lipgloss.Color("#34d399"),
	}
)

func PaletteFor(th model.Theme) Palette {
	if th == model.ThemeDark {
		return darkPalette
	}
	return lightPalette
}

// Styles are the lipgloss styles derived from a palette.
type Styles struct {
	Palette  Palette
	Header   lipgloss.Style
	Text     lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style
	Done     lipgloss.Style
	Overdue  lipgloss.Style
	Status   lipgloss.Style
	Error    lipgloss.Style
	Panel    lipgloss.Style
	Focused  lipgloss.Style
}

func StylesFor(th model.Theme) Styles {
	p := PaletteFor(th)
	panel := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.Muted).Padding(0, 1)
	return Styles{
		Palette:  p,
		Header:   lipgloss.NewStyle().Bold(true).Foreground(p.Accent),
		Text:     lipgloss.NewStyle().Foreground(p.Text),
		Muted:    lipgloss.NewStyle().Foreground(p.Muted),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(p.Accent),
		Done:     lipgloss.NewStyle().Strikethrough(true).Foreground(p.Muted),
		Overdue:  lipgloss.NewStyle().Foreground(p.Buckets[2]),
		Status:   lipgloss.NewStyle().Foreground(p.Low),
		Error:    lipgloss.NewStyle().Foreground(p.High),
		Panel:    panel,
		Focused:  panel.BorderForeground(p.Accent),
	}
}

const (
	leftWidth  = 58
	rightWidth = 40
)

func RenderApp(data AppData) string {
	st := StylesFor(data.Theme)

	leftParts := []string{data.Stats, data.Controls, data.Progress, data.List}
	left := st.Panel.Width(leftWidth).Render(joinNonEmpty(leftParts, "\n\n"))
	right := lipgloss.JoinVertical(lipgloss.Left,
		st.Panel.Width(rightWidth).Render(data.Overview),
		data.Upcoming,
	)
	row := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	status := st.Status.Render(data.Status)
	if data.StatusErr {
		status = st.Error.Render(data.Status)
	}

	lines := []string{st.Header.Render(data.Header), row}
	if data.Overlay != "" {
		lines = append(lines, st.Focused.Render(data.Overlay))
	}
	if data.Status != "" {
		lines = append(lines, status)
	}
	if data.Footer != "" {
		lines = append(lines, st.Muted.Render(data.Footer))
	}
	return strings.Join(lines, "\n")
}

func RenderMarkdown(md string, th model.Theme) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	style := "light"
	if th == model.ThemeDark {
		style = "dark"
	}
	out, err := glamour.Render(md, style)
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}

func joinNonEmpty(parts []string, sep string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
