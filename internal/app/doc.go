// Package app wires the Marquee components together.
//
// Bootstrap builds the full dependency chain in order: configuration (file
// plus environment), the persisted credential, the Habitat HTTP client, the
// state store seeded from the stored token, and the dispatcher. The same
// Env backs both the TUI and the one-shot CLI commands, so every entry
// point sees identical wiring.
package app
