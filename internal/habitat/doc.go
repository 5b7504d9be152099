// Package habitat implements the HTTP client for the Habitat movie API.
package habitat
