package state

import (
	"github.com/kmoretti/marquee/internal/habitat"
	"github.com/kmoretti/marquee/internal/token"
)

// SessionState is the authenticated-identity slice.
type SessionState struct {
	Token         string
	Profile       *token.Profile
	Authenticated bool
	Loading       bool
	Err           string
}

// MovieListState backs a collection fetch: the full catalog or one of the
// server-side filter dimensions.
type MovieListState struct {
	Loading bool
	Movies  []habitat.Movie
	Err     string
}

// MovieDetailsState backs the single-movie fetch.
type MovieDetailsState struct {
	Loading bool
	Movie   *habitat.Movie
	Err     string
}

// MutationState backs create/update/delete. Done reports that the most
// recent mutation of this kind completed successfully; it is reset when a
// new one begins.
type MutationState struct {
	Loading bool
	Done    bool
	Movie   *habitat.Movie
	Err     string
}

// RatingCountState backs the per-movie rating count lookup.
type RatingCountState struct {
	Loading bool
	Count   int
	Err     string
}

// TaxonomyState backs the genre/format/language lookups feeding the filter
// UI.
type TaxonomyState struct {
	Loading   bool
	Genres    []string
	Formats   []string
	Languages []string
	Err       string
}

// Snapshot aggregates every slice. Returned by value with defensive copies.
type Snapshot struct {
	Session          SessionState
	MovieList        MovieListState
	MovieDetails     MovieDetailsState
	MoviesByGenre    MovieListState
	MoviesByFormat   MovieListState
	MoviesByLanguage MovieListState
	MovieCreate      MutationState
	MovieUpdate      MutationState
	MovieDelete      MutationState
	RatingCount      RatingCountState
	Taxonomy         TaxonomyState
}
