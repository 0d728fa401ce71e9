package update

import (
	"strings"

	"github.com/sandeepkv93/taskpad/internal/commands"
	"github.com/sandeepkv93/taskpad/internal/views"
)

const paletteHelp = `## Command palette

| command | effect |
| --- | --- |
| ` + "`add <text> [due:YYYY-MM-DD] [p:high|medium|low]`" + ` | add a task |
| ` + "`edit <ref> [text] [due:…|due:none] [p:…]`" + ` | change a task |
| ` + "`done <ref>`" + ` | toggle completion |
| ` + "`delete <ref>`" + ` | delete after confirmation |
| ` + "`clear`" + ` | delete all after confirmation |
| ` + "`filter all|pending|completed|overdue`" + ` | filter the list |
| ` + "`sort default|priority|due|manual`" + ` | sort the list |
| ` + "`search [text]`" + ` | search; empty clears |
| ` + "`theme [light|dark]`" + ` | set or toggle theme |
| ` + "`move <from> <to>`" + ` | reorder by store position |

A ` + "`<ref>`" + ` is ` + "`#N`" + ` for the Nth visible task, or a task id prefix.
`

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return m.renderHelpView()
}

func (m Model) renderHelpView() string {
	hm := m.helpModel
	hm.ShowAll = true
	return views.RenderHelpPanel(hm.View(m.Keys.help()), views.RenderMarkdown(paletteHelp, m.store.Theme()))
}

func (m Model) renderShortHelp() string {
	return m.helpModel.View(m.Keys.help())
}

// PaletteCommands lists the palette verbs for completion hints.
func PaletteCommands() string {
	names := make([]string, 0, len(commands.Types))
	for _, t := range commands.Types {
		names = append(names, string(t))
	}
	return strings.Join(names, " ")
}
