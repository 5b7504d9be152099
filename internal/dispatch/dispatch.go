// Package dispatch implements one asynchronous task per remote use case.
// Each method emits a request event, performs a single HTTP call, and emits
// either a success or a normalized failure event into the store. Failures
// are always converted to state; nothing here returns a raw error to the
// view layer, and nothing retries.
package dispatch

import (
	"context"
	"log"
	"strings"

	"github.com/kmoretti/marquee/internal/errfmt"
	"github.com/kmoretti/marquee/internal/habitat"
	"github.com/kmoretti/marquee/internal/state"
	"github.com/kmoretti/marquee/internal/token"
)

// CredentialWriter persists and clears the bearer credential. Implemented by
// *creds.Store.
type CredentialWriter interface {
	Save(token string) error
	Clear() error
}

// Dispatcher performs remote operations against the Habitat API and folds
// their outcomes into the store.
type Dispatcher struct {
	client habitat.Service
	store  *state.Store
	creds  CredentialWriter
}

// New builds a Dispatcher. creds may be nil when persistence is unwanted
// (tests).
func New(client habitat.Service, store *state.Store, creds CredentialWriter) *Dispatcher {
	return &Dispatcher{client: client, store: store, creds: creds}
}

// Login exchanges credentials for a bearer token, persisting it on success.
func (d *Dispatcher) Login(ctx context.Context, email, password string) {
	d.store.Dispatch(state.Event{Type: state.LoginRequest})

	res, err := d.client.Login(ctx, habitat.Credentials{Email: email, Password: password})
	if err != nil {
		d.store.Dispatch(state.Event{Type: state.LoginFailure, Payload: errfmt.Auth(err, "Login failed")})
		return
	}

	d.persistToken(res.Token)
	d.store.Dispatch(state.Event{
		Type:    state.LoginSuccess,
		Payload: state.AuthPayload{Token: res.Token, Profile: profileFrom(res)},
	})
}

// Register creates an account; the backend logs the new user straight in.
func (d *Dispatcher) Register(ctx context.Context, username, email, password string) {
	d.store.Dispatch(state.Event{Type: state.RegisterRequest})

	res, err := d.client.Register(ctx, habitat.Credentials{Username: username, Email: email, Password: password})
	if err != nil {
		d.store.Dispatch(state.Event{Type: state.RegisterFailure, Payload: errfmt.Auth(err, "Registration failed")})
		return
	}

	d.persistToken(res.Token)
	d.store.Dispatch(state.Event{
		Type:    state.RegisterSuccess,
		Payload: state.AuthPayload{Token: res.Token, Profile: profileFrom(res)},
	})
}

// Logout is local-only: it clears durable storage and resets the session
// slice. No network call is issued.
func (d *Dispatcher) Logout() {
	if d.creds != nil {
		if err := d.creds.Clear(); err != nil {
			log.Printf("clear credential: %v", err)
		}
	}
	d.store.Dispatch(state.Event{Type: state.Logout})
}

// CompleteExternalLogin accepts a token delivered out-of-band by the OAuth2
// redirect flow and treats it as a login success.
func (d *Dispatcher) CompleteExternalLogin(tok string) {
	tok = strings.TrimSpace(tok)
	if tok == "" {
		d.store.Dispatch(state.Event{Type: state.LoginFailure, Payload: "OAuth login failed: missing token."})
		return
	}
	d.persistToken(tok)
	d.store.Dispatch(state.Event{
		Type:    state.LoginSuccess,
		Payload: state.AuthPayload{Token: tok, Profile: token.Derive(tok)},
	})
}

// GetAllMovies fetches the full catalog.
func (d *Dispatcher) GetAllMovies(ctx context.Context) {
	d.fetchCollection(ctx, state.MovieListRequest, state.MovieListSuccess, state.MovieListFailure,
		"Failed to fetch movies", d.client.FetchAllMovies)
}

// GetMovieByID fetches a single movie.
func (d *Dispatcher) GetMovieByID(ctx context.Context, id int64) {
	d.store.Dispatch(state.Event{Type: state.MovieDetailsRequest})

	movie, err := d.client.FetchMovieByID(ctx, id)
	if err != nil {
		d.store.Dispatch(state.Event{Type: state.MovieDetailsFailure, Payload: errfmt.Movie(err, "Failed to fetch movie")})
		return
	}
	d.store.Dispatch(state.Event{Type: state.MovieDetailsSuccess, Payload: movie})
}

// GetMoviesByGenre fetches movies filtered server-side by genre.
func (d *Dispatcher) GetMoviesByGenre(ctx context.Context, name string) {
	d.fetchCollection(ctx, state.MoviesByGenreRequest, state.MoviesByGenreSuccess, state.MoviesByGenreFailure,
		"Failed to fetch movies by genre", func(ctx context.Context) ([]habitat.Movie, error) {
			return d.client.FetchMoviesByGenre(ctx, name)
		})
}

// GetMoviesByFormat fetches movies filtered server-side by format.
func (d *Dispatcher) GetMoviesByFormat(ctx context.Context, name string) {
	d.fetchCollection(ctx, state.MoviesByFormatRequest, state.MoviesByFormatSuccess, state.MoviesByFormatFailure,
		"Failed to fetch movies by format", func(ctx context.Context) ([]habitat.Movie, error) {
			return d.client.FetchMoviesByFormat(ctx, name)
		})
}

// GetMoviesByLanguage fetches movies filtered server-side by language.
func (d *Dispatcher) GetMoviesByLanguage(ctx context.Context, name string) {
	d.fetchCollection(ctx, state.MoviesByLanguageRequest, state.MoviesByLanguageSuccess, state.MoviesByLanguageFailure,
		"Failed to fetch movies by language", func(ctx context.Context) ([]habitat.Movie, error) {
			return d.client.FetchMoviesByLanguage(ctx, name)
		})
}

// AddMovie creates a movie.
func (d *Dispatcher) AddMovie(ctx context.Context, movie habitat.Movie) {
	d.mutate(ctx, state.MovieCreateRequest, state.MovieCreateSuccess, state.MovieCreateFailure,
		"Failed to add movie", func(ctx context.Context) (*habitat.Movie, error) {
			return d.client.AddMovie(ctx, movie)
		})
}

// UpdateMovie updates a movie.
func (d *Dispatcher) UpdateMovie(ctx context.Context, movie habitat.Movie) {
	d.mutate(ctx, state.MovieUpdateRequest, state.MovieUpdateSuccess, state.MovieUpdateFailure,
		"Failed to update movie", func(ctx context.Context) (*habitat.Movie, error) {
			return d.client.UpdateMovie(ctx, movie)
		})
}

// DeleteMovie removes a movie by id.
func (d *Dispatcher) DeleteMovie(ctx context.Context, id int64) {
	d.mutate(ctx, state.MovieDeleteRequest, state.MovieDeleteSuccess, state.MovieDeleteFailure,
		"Failed to delete movie", func(ctx context.Context) (*habitat.Movie, error) {
			return nil, d.client.DeleteMovie(ctx, id)
		})
}

// GetRatingsCount fetches the rating count for a movie.
func (d *Dispatcher) GetRatingsCount(ctx context.Context, movieID int64) {
	d.store.Dispatch(state.Event{Type: state.RatingCountRequest})

	count, err := d.client.FetchRatingCount(ctx, movieID)
	if err != nil {
		d.store.Dispatch(state.Event{Type: state.RatingCountFailure, Payload: errfmt.Movie(err, "Failed to fetch ratings count")})
		return
	}
	d.store.Dispatch(state.Event{Type: state.RatingCountSuccess, Payload: count})
}

// GetTaxonomy fetches the genre/format/language lookups that drive the
// filter UI. The three endpoints succeed or fail as a unit.
func (d *Dispatcher) GetTaxonomy(ctx context.Context) {
	d.store.Dispatch(state.Event{Type: state.TaxonomyRequest})

	genres, err := d.client.FetchGenres(ctx)
	if err != nil {
		d.store.Dispatch(state.Event{Type: state.TaxonomyFailure, Payload: errfmt.Movie(err, "Failed to fetch filters")})
		return
	}
	formats, err := d.client.FetchFormats(ctx)
	if err != nil {
		d.store.Dispatch(state.Event{Type: state.TaxonomyFailure, Payload: errfmt.Movie(err, "Failed to fetch filters")})
		return
	}
	languages, err := d.client.FetchLanguages(ctx)
	if err != nil {
		d.store.Dispatch(state.Event{Type: state.TaxonomyFailure, Payload: errfmt.Movie(err, "Failed to fetch filters")})
		return
	}

	d.store.Dispatch(state.Event{
		Type:    state.TaxonomySuccess,
		Payload: state.TaxonomyPayload{Genres: genres, Formats: formats, Languages: languages},
	})
}

// ClearAuthError drops any stale session error message.
func (d *Dispatcher) ClearAuthError() {
	d.store.Dispatch(state.Event{Type: state.ClearAuthError})
}

// ClearMovieErrors drops stale error messages on every movie slice.
func (d *Dispatcher) ClearMovieErrors() {
	d.store.Dispatch(state.Event{Type: state.ClearMovieError})
}

func (d *Dispatcher) fetchCollection(ctx context.Context, request, success, failure state.EventType, fallback string, fetch func(context.Context) ([]habitat.Movie, error)) {
	d.store.Dispatch(state.Event{Type: request})

	movies, err := fetch(ctx)
	if err != nil {
		d.store.Dispatch(state.Event{Type: failure, Payload: errfmt.Movie(err, fallback)})
		return
	}
	d.store.Dispatch(state.Event{Type: success, Payload: movies})
}

func (d *Dispatcher) mutate(ctx context.Context, request, success, failure state.EventType, fallback string, run func(context.Context) (*habitat.Movie, error)) {
	d.store.Dispatch(state.Event{Type: request})

	movie, err := run(ctx)
	if err != nil {
		d.store.Dispatch(state.Event{Type: failure, Payload: errfmt.Movie(err, fallback)})
		return
	}
	d.store.Dispatch(state.Event{Type: success, Payload: movie})
}

func (d *Dispatcher) persistToken(tok string) {
	if d.creds == nil || strings.TrimSpace(tok) == "" {
		return
	}
	if err := d.creds.Save(tok); err != nil {
		log.Printf("persist credential: %v", err)
	}
}

func profileFrom(res habitat.AuthResponse) *token.Profile {
	if res.User != nil {
		return &token.Profile{Username: res.User.Username, Email: res.User.Email, Name: res.User.Name}
	}
	return token.Derive(res.Token)
}
