package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type helpItem struct {
	key  string
	desc string
}

type helpSection struct {
	title string
	items []helpItem
}

// renderHelp renders the keyboard reference overlay.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()

	sections := []helpSection{
		{
			title: "Browse",
			items: []helpItem{
				{"j/k", "Move up/down"},
				{"g/G", "Go to top/bottom"},
				{"enter", "Open movie details"},
				{"f", "Cycle filter dimension"},
				{"[/]", "Previous/next filter value"},
				{"r", "Refresh"},
			},
		},
		{
			title: "Details",
			items: []helpItem{
				{"j/k", "Scroll"},
				{"ctrl+d/u", "Half page down/up"},
				{"esc", "Back to browse"},
			},
		},
		{
			title: "Account",
			items: []helpItem{
				{"s", "Sign in / register"},
				{"o", "Sign out"},
				{"x", "Clear error messages"},
			},
		},
		{
			title: "General",
			items: []helpItem{
				{"T", "Toggle theme"},
				{"h/?", "Toggle help"},
				{"e/ctrl+c", "Quit"},
			},
		},
	}

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Keyboard Shortcuts"))
	b.WriteString("\n")

	for _, section := range sections {
		b.WriteString("\n")
		b.WriteString(styles.AccentText.Render(section.title))
		b.WriteString("\n")
		for _, item := range section.items {
			line := "  " + styles.WarningText.Render(fmt.Sprintf("%-10s", item.key)) +
				" " + styles.MutedText.Render(item.desc)
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("Press any key to close"))

	content := styles.Panel.Render(b.String())
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	return content
}
