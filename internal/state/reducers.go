package state

import "github.com/kmoretti/marquee/internal/habitat"

// message extracts a failure payload. Failure events always carry a
// normalized string; anything else degrades to empty.
func message(payload any) string {
	s, _ := payload.(string)
	return s
}

func reduceSession(s SessionState, ev Event) SessionState {
	switch ev.Type {
	case LoginRequest, RegisterRequest:
		s.Loading = true
		s.Err = ""
	case LoginSuccess, RegisterSuccess:
		payload, _ := ev.Payload.(AuthPayload)
		s.Loading = false
		s.Token = payload.Token
		s.Profile = payload.Profile
		s.Authenticated = payload.Token != ""
		s.Err = ""
	case LoginFailure, RegisterFailure:
		// A failed attempt leaves no credential behind, keeping the
		// authenticated-iff-token invariant intact.
		s.Loading = false
		s.Token = ""
		s.Profile = nil
		s.Authenticated = false
		s.Err = message(ev.Payload)
	case Logout:
		s = SessionState{}
	case ClearAuthError:
		s.Err = ""
	}
	return s
}

// reduceMovies folds one collection slice. The same shape backs the full
// catalog and each server-side filter dimension, so the event triple is a
// parameter.
func reduceMovies(s MovieListState, ev Event, request, success, failure EventType) MovieListState {
	switch ev.Type {
	case request:
		s.Loading = true
		s.Err = ""
	case success:
		movies, _ := ev.Payload.([]habitat.Movie)
		if movies == nil {
			movies = []habitat.Movie{}
		}
		s.Loading = false
		s.Movies = movies
		s.Err = ""
	case failure:
		s.Loading = false
		s.Err = message(ev.Payload)
	case ClearMovieError:
		s.Err = ""
	}
	return s
}

func reduceMovieDetails(s MovieDetailsState, ev Event) MovieDetailsState {
	switch ev.Type {
	case MovieDetailsRequest:
		s.Loading = true
		s.Err = ""
	case MovieDetailsSuccess:
		movie, _ := ev.Payload.(*habitat.Movie)
		s.Loading = false
		s.Movie = movie
		s.Err = ""
	case MovieDetailsFailure:
		s.Loading = false
		s.Err = message(ev.Payload)
	case ClearMovieError:
		s.Err = ""
	}
	return s
}

func reduceMutation(s MutationState, ev Event, request, success, failure EventType) MutationState {
	switch ev.Type {
	case request:
		s.Loading = true
		s.Done = false
		s.Err = ""
	case success:
		movie, _ := ev.Payload.(*habitat.Movie)
		s.Loading = false
		s.Done = true
		s.Movie = movie
		s.Err = ""
	case failure:
		s.Loading = false
		s.Err = message(ev.Payload)
	case ClearMovieError:
		s.Err = ""
	}
	return s
}

func reduceRatingCount(s RatingCountState, ev Event) RatingCountState {
	switch ev.Type {
	case RatingCountRequest:
		s.Loading = true
		s.Err = ""
	case RatingCountSuccess:
		count, _ := ev.Payload.(int)
		s.Loading = false
		s.Count = count
		s.Err = ""
	case RatingCountFailure:
		s.Loading = false
		s.Err = message(ev.Payload)
	case ClearMovieError:
		s.Err = ""
	}
	return s
}

func reduceTaxonomy(s TaxonomyState, ev Event) TaxonomyState {
	switch ev.Type {
	case TaxonomyRequest:
		s.Loading = true
		s.Err = ""
	case TaxonomySuccess:
		payload, _ := ev.Payload.(TaxonomyPayload)
		s.Loading = false
		s.Genres = payload.Genres
		s.Formats = payload.Formats
		s.Languages = payload.Languages
		s.Err = ""
	case TaxonomyFailure:
		s.Loading = false
		s.Err = message(ev.Payload)
	case ClearMovieError:
		s.Err = ""
	}
	return s
}

// reduce applies the event to every slice. Each slice reducer ignores events
// it does not recognize, so a single pass is safe.
func reduce(s Snapshot, ev Event) Snapshot {
	s.Session = reduceSession(s.Session, ev)
	s.MovieList = reduceMovies(s.MovieList, ev, MovieListRequest, MovieListSuccess, MovieListFailure)
	s.MovieDetails = reduceMovieDetails(s.MovieDetails, ev)
	s.MoviesByGenre = reduceMovies(s.MoviesByGenre, ev, MoviesByGenreRequest, MoviesByGenreSuccess, MoviesByGenreFailure)
	s.MoviesByFormat = reduceMovies(s.MoviesByFormat, ev, MoviesByFormatRequest, MoviesByFormatSuccess, MoviesByFormatFailure)
	s.MoviesByLanguage = reduceMovies(s.MoviesByLanguage, ev, MoviesByLanguageRequest, MoviesByLanguageSuccess, MoviesByLanguageFailure)
	s.MovieCreate = reduceMutation(s.MovieCreate, ev, MovieCreateRequest, MovieCreateSuccess, MovieCreateFailure)
	s.MovieUpdate = reduceMutation(s.MovieUpdate, ev, MovieUpdateRequest, MovieUpdateSuccess, MovieUpdateFailure)
	s.MovieDelete = reduceMutation(s.MovieDelete, ev, MovieDeleteRequest, MovieDeleteSuccess, MovieDeleteFailure)
	s.RatingCount = reduceRatingCount(s.RatingCount, ev)
	s.Taxonomy = reduceTaxonomy(s.Taxonomy, ev)
	return s
}
