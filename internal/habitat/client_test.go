package habitat

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type staticCreds string

func (s staticCreds) Token() string { return string(s) }

func TestParseBaseURL_Normalizes(t *testing.T) {
	u, err := parseBaseURL("example.com:9090")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" {
		t.Fatalf("scheme = %q, want http", u.Scheme)
	}
	if u.Host != "example.com:9090" {
		t.Fatalf("host = %q", u.Host)
	}

	u, err = parseBaseURL("https://api.example.com/base?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Path != "" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}

	if _, err := parseBaseURL("  "); err == nil {
		t.Fatal("parseBaseURL accepted empty input")
	}
}

func TestClient_AttachesBearerOnProtectedPathsOnly(t *testing.T) {
	t.Parallel()

	headers := map[string]string{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		headers[r.URL.Path] = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/auth/login":
			_, _ = w.Write([]byte(`"tok-123"`))
		default:
			_, _ = w.Write([]byte(`[]`))
		}
	}))
	defer server.Close()

	client, err := NewClient(server.URL, staticCreds("stored-token"))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	if _, err := client.Login(context.Background(), Credentials{Email: "u@v.com", Password: "pw"}); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if _, err := client.FetchAllMovies(context.Background()); err != nil {
		t.Fatalf("FetchAllMovies: %v", err)
	}

	if got := headers["/auth/login"]; got != "" {
		t.Fatalf("login carried Authorization %q, want none", got)
	}
	if got := headers["/movies/getall"]; got != "Bearer stored-token" {
		t.Fatalf("getall Authorization = %q, want bearer", got)
	}
}

func TestClient_FetchesEndpoints(t *testing.T) {
	t.Parallel()

	var gotMethod, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/movies/get/7":
			_ = json.NewEncoder(w).Encode(map[string]any{"movieId": 7, "movieName": "Dune"})
		case "/movies/genre/Sci%20Fi", "/movies/genre/Sci Fi":
			_, _ = w.Write([]byte(`[{"movieId":1}]`))
		case "/ratings/count/7":
			_, _ = w.Write([]byte(`42`))
		case "/genres/getall":
			_, _ = w.Write([]byte(`[{"name":"Drama"},"Action",{"genreName":"Horror"}]`))
		case "/movies/delete/7":
			_, _ = w.Write([]byte(`"deleted"`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	client, err := NewClient(server.URL, nil)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	ctx := context.Background()

	movie, err := client.FetchMovieByID(ctx, 7)
	if err != nil {
		t.Fatalf("FetchMovieByID: %v", err)
	}
	if movie.Title() != "Dune" || movie.ID() != 7 {
		t.Fatalf("movie = %q id %d", movie.Title(), movie.ID())
	}

	movies, err := client.FetchMoviesByGenre(ctx, "Sci Fi")
	if err != nil {
		t.Fatalf("FetchMoviesByGenre: %v", err)
	}
	if len(movies) != 1 || movies[0].ID() != 1 {
		t.Fatalf("movies = %#v", movies)
	}

	count, err := client.FetchRatingCount(ctx, 7)
	if err != nil {
		t.Fatalf("FetchRatingCount: %v", err)
	}
	if count != 42 {
		t.Fatalf("count = %d, want 42", count)
	}

	genres, err := client.FetchGenres(ctx)
	if err != nil {
		t.Fatalf("FetchGenres: %v", err)
	}
	want := []string{"Drama", "Action", "Horror"}
	if len(genres) != len(want) {
		t.Fatalf("genres = %v, want %v", genres, want)
	}
	for i := range want {
		if genres[i] != want[i] {
			t.Fatalf("genres[%d] = %q, want %q", i, genres[i], want[i])
		}
	}

	if err := client.DeleteMovie(ctx, 7); err != nil {
		t.Fatalf("DeleteMovie: %v", err)
	}
	if gotMethod != http.MethodDelete || gotPath != "/movies/delete/7" {
		t.Fatalf("last request %s %s", gotMethod, gotPath)
	}
}

func TestClient_NonOKStatusYieldsAPIError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error":"Email already exists"}`))
	}))
	defer server.Close()

	client, err := NewClient(server.URL, nil)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	_, err = client.Register(context.Background(), Credentials{Email: "u@v.com"})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error %v is not an *APIError", err)
	}
	if apiErr.StatusCode != http.StatusConflict {
		t.Fatalf("status = %d, want 409", apiErr.StatusCode)
	}
	if apiErr.Text() != "Email already exists" {
		t.Fatalf("text = %q", apiErr.Text())
	}
}

func TestClient_TransportErrorIsNotAPIError(t *testing.T) {
	t.Parallel()

	// Nothing listens here.
	client, err := NewClient("http://127.0.0.1:1", nil)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	_, err = client.FetchAllMovies(context.Background())
	if err == nil {
		t.Fatal("expected transport error")
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		t.Fatalf("transport failure decoded as APIError: %v", err)
	}
}

func TestAuthorizationURL(t *testing.T) {
	client, err := NewClient("http://habitat.example", nil)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	got := client.AuthorizationURL("google")
	if got != "http://habitat.example/oauth2/authorization/google" {
		t.Fatalf("AuthorizationURL = %q", got)
	}
}
