package ui

import (
	"fmt"
	"strconv"
	"strings"
)

// resolvePosterURL turns a poster reference from the API into something a
// browser could open. Data URLs and absolute URLs pass through untouched;
// server-relative paths are joined to the API base.
func resolvePosterURL(baseURL, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	if strings.HasPrefix(ref, "data:image/") {
		return ref
	}
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") || strings.HasPrefix(ref, "blob:") {
		return ref
	}

	base := strings.TrimRight(baseURL, "/")
	if strings.HasPrefix(ref, "/") {
		if base == "" {
			return ref
		}
		return base + ref
	}
	if base == "" {
		return "/" + ref
	}
	return base + "/" + ref
}

// formatDuration renders minutes as "2h 15m".
func formatDuration(minutes int) string {
	if minutes <= 0 {
		return ""
	}
	hours := minutes / 60
	mins := minutes % 60
	if hours == 0 {
		return fmt.Sprintf("%dm", mins)
	}
	return fmt.Sprintf("%dh %dm", hours, mins)
}

// formatRating renders an average rating with one decimal, empty when the
// movie has none.
func formatRating(rating float64) string {
	if rating <= 0 {
		return ""
	}
	return strconv.FormatFloat(rating, 'f', 1, 64)
}

// truncate shortens s to at most width runes, ellipsized.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(runes[:width-1]) + "…"
}
