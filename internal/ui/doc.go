// Package ui implements the Bubble Tea terminal interface for Marquee.
//
// # Overview
//
// The UI is a single Bubble Tea program with four views. Browse shows the
// movie catalog as a selectable list with server-side filtering by genre,
// format, or language. Detail shows everything the API knows about one
// movie, including its rating count and resolved poster URL. SignIn embeds
// a huh form for login and registration. Help is a keyboard reference
// overlay drawn over whichever view is active.
//
// # Data Flow
//
// The model never calls the HTTP client directly. Key handlers return
// tea.Cmd closures that invoke dispatcher methods; each dispatcher method
// folds its outcome into the store and the command resolves to a
// refreshMsg, at which point the model reads a fresh store snapshot and
// re-renders. All remote failures arrive as normalized message strings on
// the snapshot, so the view layer never inspects errors.
//
// # Theming
//
// Two themes ship, dark and light. "T" cycles between them and persists
// the choice through the prefs package so the next launch starts with the
// same theme.
package ui
