package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"hnterm/tui/common"
)

type helpSection struct {
	title    string
	bindings []key.Binding
}

func (a App) viewHelp() string {
	sections := []helpSection{
		{"Story list", []key.Binding{
			a.keys.Up, a.keys.Down, a.keys.NextPage, a.keys.PrevPage,
			a.keys.Top, a.keys.New, a.keys.Best,
			a.keys.Comments, a.keys.Open, a.keys.Refresh,
		}},
		{"Discussion", []key.Binding{
			a.keys.Expand, a.keys.CollapseThread,
			a.keys.First, a.keys.Last, a.keys.Back,
		}},
		{"General", []key.Binding{
			a.keys.Help, a.keys.Quit,
		}},
	}

	var b strings.Builder
	b.WriteString(common.HelpTitleStyle.Render("Keyboard shortcuts"))
	b.WriteString("\n")
	for _, s := range sections {
		b.WriteString("\n")
		b.WriteString(common.MetaStyle.Render(s.title))
		b.WriteString("\n")
		for _, bind := range s.bindings {
			h := bind.Help()
			b.WriteString(fmt.Sprintf("  %s %s\n",
				common.HelpKeyStyle.Render(fmt.Sprintf("%-10s", h.Key)),
				common.HelpDescStyle.Render(h.Desc)))
		}
	}
	b.WriteString("\n")
	b.WriteString(common.DimStyle.Render("press any key to close"))
	return b.String()
}
