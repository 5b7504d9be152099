package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) initDetailViewport() {
	m.detailViewport = viewport.New(m.width, m.detailHeight())
}

func (m *Model) resizeDetailViewport() {
	m.detailViewport.Width = m.width
	m.detailViewport.Height = m.detailHeight()
}

func (m Model) detailHeight() int {
	h := m.height - 4
	if h < 1 {
		return 1
	}
	return h
}

// updateDetailViewport rebuilds the detail content from the snapshot.
func (m *Model) updateDetailViewport() {
	if !m.ready {
		return
	}
	m.detailViewport.SetContent(m.detailContent())
}

// handleDetailKey processes keyboard input for the detail view.
func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		m.detailViewport.LineDown(1)
	case "k", "up":
		m.detailViewport.LineUp(1)
	case "ctrl+d":
		m.detailViewport.HalfViewDown()
	case "ctrl+u":
		m.detailViewport.HalfViewUp()
	case "g", "home":
		m.detailViewport.GotoTop()
	case "G", "end":
		m.detailViewport.GotoBottom()
	}
	return m, nil
}

func (m Model) renderDetail() string {
	return m.detailViewport.View()
}

func (m Model) detailContent() string {
	styles := m.theme.Styles()
	details := m.snapshot.MovieDetails

	if details.Loading && details.Movie == nil {
		return styles.MutedText.Render("Fetching movie...")
	}
	if details.Movie == nil {
		return styles.MutedText.Render("No movie selected.")
	}

	movie := *details.Movie
	var b strings.Builder

	b.WriteString(styles.AccentText.Render(movie.Title()))
	if details.Loading {
		b.WriteString("  " + m.loading.View())
	}
	b.WriteString("\n\n")

	meta := []string{}
	if cert := movie.Certificate(); cert != "" {
		meta = append(meta, cert)
	}
	if d, ok := movie.DurationMinutes(); ok && d > 0 {
		meta = append(meta, formatDuration(d))
	}
	if rel := movie.ReleaseDate(); rel != "" {
		meta = append(meta, rel)
	}
	if rating, ok := movie.AvgRating(); ok && rating > 0 {
		meta = append(meta, fmt.Sprintf("★ %s", formatRating(rating)))
	}
	if len(meta) > 0 {
		b.WriteString(styles.MutedText.Render(strings.Join(meta, "  ·  ")))
		b.WriteString("\n\n")
	}

	if desc := movie.Description(); desc != "" {
		b.WriteString(styles.Text.Render(desc))
		b.WriteString("\n\n")
	}

	writeNames := func(label string, names []string) {
		if len(names) == 0 {
			return
		}
		b.WriteString(styles.MutedText.Render(label + ": "))
		b.WriteString(styles.Text.Render(strings.Join(names, ", ")))
		b.WriteString("\n")
	}
	writeNames("Genres", movie.Genres())
	writeNames("Formats", movie.Formats())
	writeNames("Languages", movie.Languages())

	b.WriteString("\n")
	ratings := m.snapshot.RatingCount
	switch {
	case ratings.Loading:
		b.WriteString(styles.MutedText.Render("Ratings: fetching..."))
	case ratings.Err != "":
		b.WriteString(styles.WarningText.Render("Ratings: " + ratings.Err))
	default:
		b.WriteString(styles.MutedText.Render(fmt.Sprintf("Ratings: %d", ratings.Count)))
	}
	b.WriteString("\n")

	if poster := resolvePosterURL(m.baseURL, movie.PosterRef()); poster != "" {
		b.WriteString(styles.MutedText.Render("Poster: "))
		b.WriteString(styles.Text.Render(poster))
		b.WriteString("\n")
	}

	return styles.Panel.Width(max(20, m.width-2)).Render(b.String())
}
