package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader renders the top status line: logo, session state, and any
// pending error banner.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()

	logo := styles.Logo.Render("MARQUEE")

	var session string
	switch {
	case m.snapshot.Session.Loading:
		session = styles.MutedText.Render(m.loading.View() + " signing in")
	case m.snapshot.Session.Authenticated:
		name := "account"
		if p := m.snapshot.Session.Profile; p != nil && p.Username != "" {
			name = p.Username
		}
		session = styles.SuccessText.Render("● " + name)
	default:
		session = styles.MutedText.Render("○ signed out")
	}

	left := lipgloss.JoinHorizontal(lipgloss.Center, logo, "  ", session)

	if banner := m.errorBanner(); banner != "" {
		msg := styles.DangerText.Render(truncate(banner, max(0, m.width-lipgloss.Width(left)-4)))
		return styles.Header.Width(m.width).Render(left + "  " + msg)
	}
	return styles.Header.Width(m.width).Render(left)
}

// errorBanner returns the most relevant error message for the header, or
// empty when nothing is wrong.
func (m Model) errorBanner() string {
	if err := m.snapshot.Session.Err; err != "" {
		return err
	}
	switch m.currentView {
	case ViewDetail:
		if err := m.snapshot.MovieDetails.Err; err != "" {
			return err
		}
	default:
		if err := m.activeList().Err; err != "" {
			return err
		}
	}
	if err := m.snapshot.Taxonomy.Err; err != "" {
		return err
	}
	return ""
}

// renderCommandBar renders the second header line listing the key bindings
// that matter for the current view.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles()

	var cmds []string
	switch m.currentView {
	case ViewBrowse:
		cmds = append(cmds, "j/k move", "enter details", "f filter", "[/] value", "r refresh")
	case ViewDetail:
		cmds = append(cmds, "j/k scroll", "esc back")
	case ViewSignIn:
		cmds = append(cmds, "tab next field", "esc cancel")
	}
	if m.snapshot.Session.Authenticated {
		cmds = append(cmds, "o sign out")
	} else {
		cmds = append(cmds, "s sign in")
	}
	cmds = append(cmds, "T theme", "? help", "e quit")

	bar := fmt.Sprintf("[%s]", strings.Join(cmds, "  "))
	return styles.Footer.Width(m.width).Render(bar)
}
