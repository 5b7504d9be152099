package state

import (
	"sync"

	"github.com/kmoretti/marquee/internal/habitat"
	"github.com/kmoretti/marquee/internal/token"
)

// Store coordinates concurrent access to the snapshot. Construct one with
// NewStore at application start and pass it to whatever needs it; the zero
// value is also usable for tests.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// NewStore builds a store whose session slice is bootstrapped from a
// persisted bearer credential, when one exists.
func NewStore(persistedToken string) *Store {
	store := &Store{}
	if persistedToken != "" {
		store.snapshot.Session = SessionState{
			Token:         persistedToken,
			Profile:       token.Derive(persistedToken),
			Authenticated: true,
		}
	}
	return store
}

// Dispatch applies an event to every slice under the write lock.
func (s *Store) Dispatch(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = reduce(s.snapshot, ev)
}

// Snapshot returns a copy of the current state. Collection slices are cloned
// so callers cannot mutate stored data.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.MovieList.Movies = cloneMovies(snap.MovieList.Movies)
	snap.MoviesByGenre.Movies = cloneMovies(snap.MoviesByGenre.Movies)
	snap.MoviesByFormat.Movies = cloneMovies(snap.MoviesByFormat.Movies)
	snap.MoviesByLanguage.Movies = cloneMovies(snap.MoviesByLanguage.Movies)
	snap.Taxonomy.Genres = cloneStrings(snap.Taxonomy.Genres)
	snap.Taxonomy.Formats = cloneStrings(snap.Taxonomy.Formats)
	snap.Taxonomy.Languages = cloneStrings(snap.Taxonomy.Languages)
	return snap
}

func cloneMovies(movies []habitat.Movie) []habitat.Movie {
	if movies == nil {
		return nil
	}
	dup := make([]habitat.Movie, len(movies))
	copy(dup, movies)
	return dup
}

func cloneStrings(values []string) []string {
	if values == nil {
		return nil
	}
	dup := make([]string, len(values))
	copy(dup, values)
	return dup
}
