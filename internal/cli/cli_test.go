package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmoretti/marquee/internal/habitat"
)

// pointAt directs bootstrap at a test server with throwaway config and
// credential paths.
func pointAt(t *testing.T, serverURL string) {
	t.Helper()
	dir := t.TempDir()

	oldAPI, oldConfig, oldCreds, oldJSON := apiURL, configPath, credsPath, jsonOutput
	t.Cleanup(func() {
		apiURL, configPath, credsPath, jsonOutput = oldAPI, oldConfig, oldCreds, oldJSON
	})

	apiURL = serverURL
	configPath = filepath.Join(dir, "config.toml")
	credsPath = filepath.Join(dir, "credential")
	jsonOutput = false
}

func TestRunMoviesList(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/movies/getall", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"movieId":1,"movieName":"Inception","certificate":"PG-13","avgRating":4.5}]`))
	}))
	defer server.Close()
	pointAt(t, server.URL)

	var buf bytes.Buffer
	code := runMoviesList(context.Background(), &buf)

	assert.Equal(t, 0, code)
	assert.Contains(t, buf.String(), "Inception")
	assert.Contains(t, buf.String(), "PG-13")
}

func TestRunMoviesListJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"movieId":1,"movieName":"Inception"}]`))
	}))
	defer server.Close()
	pointAt(t, server.URL)
	jsonOutput = true

	var buf bytes.Buffer
	code := runMoviesList(context.Background(), &buf)

	require.Equal(t, 0, code)
	var parsed []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &parsed))
	require.Len(t, parsed, 1)
	assert.Equal(t, "Inception", parsed[0]["movieName"])
}

func TestRunMoviesListGenreFilter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/movies/genre/Action", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()
	pointAt(t, server.URL)

	oldGenre := filterGenre
	t.Cleanup(func() { filterGenre = oldGenre })
	filterGenre = "Action"

	var buf bytes.Buffer
	code := runMoviesList(context.Background(), &buf)

	assert.Equal(t, 0, code)
	assert.Contains(t, buf.String(), "No movies found")
}

func TestRunMoviesListServerDown(t *testing.T) {
	pointAt(t, "http://127.0.0.1:1")

	var buf bytes.Buffer
	code := runMoviesList(context.Background(), &buf)

	assert.Equal(t, 1, code)
	assert.Contains(t, buf.String(), "Unable to reach the server")
}

func TestRunLoginFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/login", r.URL.Path)
		// No Authorization header on the public auth path.
		assert.Empty(t, r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()
	pointAt(t, server.URL)

	oldEmail, oldPassword := authEmail, authPassword
	t.Cleanup(func() { authEmail, authPassword = oldEmail, oldPassword })
	authEmail = "u@v.com"
	authPassword = "wrong"

	var buf bytes.Buffer
	code := runLogin(context.Background(), &buf)

	assert.Equal(t, 1, code)
	assert.Contains(t, buf.String(), "Invalid email or password.")
}

func TestRunRatings(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/ratings/count/7", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`42`))
	}))
	defer server.Close()
	pointAt(t, server.URL)

	var buf bytes.Buffer
	code := runRatings(context.Background(), "7", &buf)

	assert.Equal(t, 0, code)
	assert.Equal(t, "42", strings.TrimSpace(buf.String()))
}

func TestRunTaxonomy(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/genres/getall":
			_, _ = w.Write([]byte(`[{"name":"Action"},{"name":"Drama"}]`))
		case "/format/getall":
			_, _ = w.Write([]byte(`[{"name":"2D"}]`))
		case "/language/getall":
			_, _ = w.Write([]byte(`[{"name":"English"}]`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()
	pointAt(t, server.URL)

	var buf bytes.Buffer
	code := runTaxonomy(context.Background(), &buf)

	assert.Equal(t, 0, code)
	assert.Contains(t, buf.String(), "Action, Drama")
	assert.Contains(t, buf.String(), "2D")
	assert.Contains(t, buf.String(), "English")
}

func TestTaxonomyCommandRegistered(t *testing.T) {
	cmd, _, err := rootCmd.Find([]string{"taxonomy"})
	require.NoError(t, err)
	assert.Equal(t, "taxonomy", cmd.Name())

	// filters is kept as an alias.
	alias, _, err := rootCmd.Find([]string{"filters"})
	require.NoError(t, err)
	assert.Equal(t, cmd, alias)
}

func TestParseMovieID(t *testing.T) {
	id, err := parseMovieID("12")
	require.NoError(t, err)
	assert.Equal(t, int64(12), id)

	for _, bad := range []string{"", "abc", "0", "-3"} {
		_, err := parseMovieID(bad)
		assert.Error(t, err, "id %q", bad)
	}
}

func TestMovieFromFlags(t *testing.T) {
	oldTitle, oldGenres := movieTitle, movieGenres
	t.Cleanup(func() { movieTitle, movieGenres = oldTitle, oldGenres })
	movieTitle = "Dune"
	movieGenres = []string{"Sci-Fi", "Drama"}

	movie := movieFromFlags(9)

	data, err := json.Marshal(movie)
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.Equal(t, "Dune", parsed["movieName"])
	assert.EqualValues(t, 9, parsed["movieId"])

	genres, ok := parsed["genres"].([]any)
	require.True(t, ok)
	require.Len(t, genres, 2)
	assert.Equal(t, map[string]any{"name": "Sci-Fi"}, genres[0])
}

func TestFormatMovieDetail(t *testing.T) {
	movie := habitat.NewMovie(map[string]any{
		"movieId":          float64(3),
		"movieName":        "Arrival",
		"movieDescription": "First contact.",
		"certificate":      "PG-13",
		"avgRating":        float64(4.5),
		"durationMinutes":  float64(116),
		"languages":        []any{map[string]any{"name": "English"}},
	})

	out := formatMovieDetail(movie)

	assert.Contains(t, out, "Arrival (id 3)")
	assert.Contains(t, out, "First contact.")
	assert.Contains(t, out, "Certificate:  PG-13")
	assert.Contains(t, out, "Rating:       4.5")
	assert.Contains(t, out, "Duration:     116m")
	assert.Contains(t, out, "Languages:    English")
}

func TestFormatMovieDetailOmitsAbsentNumbers(t *testing.T) {
	movie := habitat.NewMovie(map[string]any{
		"movieId":   float64(4),
		"movieName": "Sparse",
	})

	out := formatMovieDetail(movie)

	assert.NotContains(t, out, "Rating:")
	assert.NotContains(t, out, "Duration:")
}

func TestFormatMovieLine(t *testing.T) {
	movie := habitat.NewMovie(map[string]any{
		"movieId":     float64(8),
		"movieName":   "Heat",
		"certificate": "R",
		"avgRating":   float64(4.25),
	})

	line := formatMovieLine(movie)

	assert.Contains(t, line, "Heat")
	assert.Contains(t, line, "R")
	assert.Contains(t, line, "4.2")

	bare := formatMovieLine(habitat.NewMovie(map[string]any{"movieId": float64(9), "movieName": "Bare"}))
	assert.NotContains(t, bare, "0.0")
}

func TestFormatNameList(t *testing.T) {
	assert.Contains(t, formatNameList("Genres", nil), "(none)")
	assert.Contains(t, formatNameList("Genres", []string{"Action", "Drama"}), "Action, Drama")
}
