package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kmoretti/marquee/internal/dispatch"
	"github.com/kmoretti/marquee/internal/state"
)

// activeList returns the movie slice the current filter selects.
func (m Model) activeList() state.MovieListState {
	switch m.filterMode {
	case FilterGenre:
		return m.snapshot.MoviesByGenre
	case FilterFormat:
		return m.snapshot.MoviesByFormat
	case FilterLanguage:
		return m.snapshot.MoviesByLanguage
	default:
		return m.snapshot.MovieList
	}
}

// filterValues returns the taxonomy values for the current filter
// dimension; nil when unfiltered.
func (m Model) filterValues() []string {
	switch m.filterMode {
	case FilterGenre:
		return m.snapshot.Taxonomy.Genres
	case FilterFormat:
		return m.snapshot.Taxonomy.Formats
	case FilterLanguage:
		return m.snapshot.Taxonomy.Languages
	default:
		return nil
	}
}

// filterLabel returns the display label for the active filter.
func (m Model) filterLabel() string {
	values := m.filterValues()
	var dim string
	switch m.filterMode {
	case FilterGenre:
		dim = "Genre"
	case FilterFormat:
		dim = "Format"
	case FilterLanguage:
		dim = "Language"
	default:
		return "All"
	}
	if len(values) == 0 {
		return dim + ": none available"
	}
	return fmt.Sprintf("%s: %s", dim, values[m.filterIdx%len(values)])
}

// handleBrowseKey processes keyboard input for the browse view.
func (m Model) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	movies := m.activeList().Movies

	switch msg.String() {
	case "j", "down":
		if m.selectedRow < len(movies)-1 {
			m.selectedRow++
		}
	case "k", "up":
		if m.selectedRow > 0 {
			m.selectedRow--
		}
	case "g", "home":
		m.selectedRow = 0
	case "G", "end":
		if len(movies) > 0 {
			m.selectedRow = len(movies) - 1
		}
	case "f":
		return m.cycleFilter()
	case "]":
		return m.cycleFilterValue(1)
	case "[":
		return m.cycleFilterValue(-1)
	case "enter":
		return m.openDetail()
	}

	return m, nil
}

// cycleFilter advances the filter dimension and refetches the catalog slice
// it selects.
func (m Model) cycleFilter() (tea.Model, tea.Cmd) {
	switch m.filterMode {
	case FilterAll:
		m.filterMode = FilterGenre
	case FilterGenre:
		m.filterMode = FilterFormat
	case FilterFormat:
		m.filterMode = FilterLanguage
	default:
		m.filterMode = FilterAll
	}
	m.filterIdx = 0
	m.selectedRow = 0
	return m, m.refreshCatalog()
}

// cycleFilterValue moves within the current dimension's taxonomy values.
func (m Model) cycleFilterValue(step int) (tea.Model, tea.Cmd) {
	values := m.filterValues()
	if len(values) == 0 {
		return m, nil
	}
	m.filterIdx = ((m.filterIdx+step)%len(values) + len(values)) % len(values)
	m.selectedRow = 0
	return m, m.refreshCatalog()
}

// refreshCatalog re-runs the fetch behind the current filter selection.
func (m Model) refreshCatalog() tea.Cmd {
	values := m.filterValues()
	var value string
	if len(values) > 0 {
		value = values[m.filterIdx%len(values)]
	}

	mode := m.filterMode
	return m.dispatchCmd(func(d *dispatch.Dispatcher) {
		switch mode {
		case FilterGenre:
			if value != "" {
				d.GetMoviesByGenre(m.ctx, value)
			}
		case FilterFormat:
			if value != "" {
				d.GetMoviesByFormat(m.ctx, value)
			}
		case FilterLanguage:
			if value != "" {
				d.GetMoviesByLanguage(m.ctx, value)
			}
		default:
			d.GetAllMovies(m.ctx)
		}
		d.GetTaxonomy(m.ctx)
	})
}

// openDetail loads the selected movie into the detail view.
func (m Model) openDetail() (tea.Model, tea.Cmd) {
	movies := m.activeList().Movies
	if m.selectedRow >= len(movies) {
		return m, nil
	}
	id := movies[m.selectedRow].ID()
	m.detailID = id
	m.currentView = ViewDetail
	return m, m.dispatchCmd(func(d *dispatch.Dispatcher) {
		d.GetMovieByID(m.ctx, id)
		d.GetRatingsCount(m.ctx, id)
	})
}

// clampSelection keeps the cursor inside the (possibly shrunken) list.
func (m *Model) clampSelection() {
	movies := m.activeList().Movies
	if m.selectedRow >= len(movies) {
		m.selectedRow = max(0, len(movies)-1)
	}
}

// renderBrowse renders the catalog list.
func (m Model) renderBrowse() string {
	styles := m.theme.Styles()
	list := m.activeList()

	var b strings.Builder

	title := fmt.Sprintf("Movies — %s", m.filterLabel())
	if list.Loading {
		title += "  " + m.loading.View()
	}
	b.WriteString(styles.AccentText.Render(title))
	b.WriteString("\n\n")

	if len(list.Movies) == 0 {
		if list.Loading {
			b.WriteString(styles.MutedText.Render("Fetching movies..."))
		} else {
			b.WriteString(styles.MutedText.Render("No movies to show."))
		}
		return b.String()
	}

	visible := m.visibleRows()
	start := 0
	if m.selectedRow >= visible {
		start = m.selectedRow - visible + 1
	}
	end := min(len(list.Movies), start+visible)

	for i := start; i < end; i++ {
		movie := list.Movies[i]
		rating, _ := movie.AvgRating()
		duration, _ := movie.DurationMinutes()
		line := fmt.Sprintf("%-40s  %-6s  %4s  %s",
			truncate(movie.Title(), 40),
			movie.Certificate(),
			formatRating(rating),
			formatDuration(duration),
		)
		if i == m.selectedRow {
			b.WriteString(styles.Selected.Width(m.width).Render("▸ " + line))
		} else {
			b.WriteString(styles.Text.Render("  " + line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render(fmt.Sprintf("%d of %d", m.selectedRow+1, len(list.Movies))))

	return b.String()
}

// visibleRows returns how many list rows fit under the two header lines.
func (m Model) visibleRows() int {
	rows := m.height - 6
	if rows < 1 {
		return 1
	}
	return rows
}
