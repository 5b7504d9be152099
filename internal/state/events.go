package state

import "github.com/kmoretti/marquee/internal/token"

// EventType identifies a state transition. Each remote operation owns a
// request/success/failure triple; a handful of local events round out the
// set.
type EventType int

const (
	// Session events.
	LoginRequest EventType = iota
	LoginSuccess
	LoginFailure
	RegisterRequest
	RegisterSuccess
	RegisterFailure
	Logout
	ClearAuthError

	// Catalog fetches.
	MovieListRequest
	MovieListSuccess
	MovieListFailure
	MovieDetailsRequest
	MovieDetailsSuccess
	MovieDetailsFailure
	MoviesByGenreRequest
	MoviesByGenreSuccess
	MoviesByGenreFailure
	MoviesByFormatRequest
	MoviesByFormatSuccess
	MoviesByFormatFailure
	MoviesByLanguageRequest
	MoviesByLanguageSuccess
	MoviesByLanguageFailure

	// Mutations.
	MovieCreateRequest
	MovieCreateSuccess
	MovieCreateFailure
	MovieUpdateRequest
	MovieUpdateSuccess
	MovieUpdateFailure
	MovieDeleteRequest
	MovieDeleteSuccess
	MovieDeleteFailure

	// Ratings and taxonomy lookups.
	RatingCountRequest
	RatingCountSuccess
	RatingCountFailure
	TaxonomyRequest
	TaxonomySuccess
	TaxonomyFailure

	ClearMovieError
)

// Event is a single occurrence applied to the store. Payload shape depends
// on the type: success events carry the fetched data, failure events carry a
// normalized message string, request events carry nothing.
type Event struct {
	Type    EventType
	Payload any
}

// AuthPayload accompanies LoginSuccess and RegisterSuccess.
type AuthPayload struct {
	Token   string
	Profile *token.Profile
}

// TaxonomyPayload accompanies TaxonomySuccess.
type TaxonomyPayload struct {
	Genres    []string
	Formats   []string
	Languages []string
}
