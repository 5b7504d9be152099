package habitat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// CredentialSource supplies the bearer credential attached to protected
// requests. Implementations read persisted storage; the client never writes
// it back.
type CredentialSource interface {
	Token() string
}

// Service defines the operations the Habitat backend exposes. Implemented by
// *Client; useful as a seam for tests.
type Service interface {
	Login(ctx context.Context, creds Credentials) (AuthResponse, error)
	Register(ctx context.Context, creds Credentials) (AuthResponse, error)
	FetchAllMovies(ctx context.Context) ([]Movie, error)
	FetchMovieByID(ctx context.Context, id int64) (*Movie, error)
	FetchMoviesByGenre(ctx context.Context, name string) ([]Movie, error)
	FetchMoviesByFormat(ctx context.Context, name string) ([]Movie, error)
	FetchMoviesByLanguage(ctx context.Context, name string) ([]Movie, error)
	AddMovie(ctx context.Context, movie Movie) (*Movie, error)
	UpdateMovie(ctx context.Context, movie Movie) (*Movie, error)
	DeleteMovie(ctx context.Context, id int64) error
	FetchRatingCount(ctx context.Context, movieID int64) (int, error)
	FetchGenres(ctx context.Context) ([]string, error)
	FetchFormats(ctx context.Context) ([]string, error)
	FetchLanguages(ctx context.Context) ([]string, error)
}

// Ensure Client implements Service at compile time.
var _ Service = (*Client)(nil)

// Client talks to the Habitat HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	creds     CredentialSource
	userAgent string
}

const (
	defaultUserAgent = "marquee/0.1"
	requestTimeout   = 10 * time.Second
)

// NewClient builds a Client for the given base URL. creds may be nil for a
// client that only performs public calls.
func NewClient(baseURL string, creds CredentialSource) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		creds:     creds,
		userAgent: defaultUserAgent,
	}, nil
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, creds Credentials) (AuthResponse, error) {
	var payload AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", creds, &payload); err != nil {
		return AuthResponse{}, err
	}
	return payload, nil
}

// Register creates an account; the backend returns a bearer token on success.
func (c *Client) Register(ctx context.Context, creds Credentials) (AuthResponse, error) {
	var payload AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", creds, &payload); err != nil {
		return AuthResponse{}, err
	}
	return payload, nil
}

// FetchAllMovies retrieves the full catalog.
func (c *Client) FetchAllMovies(ctx context.Context) ([]Movie, error) {
	var payload []Movie
	if err := c.do(ctx, http.MethodGet, "/movies/getall", nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// FetchMovieByID retrieves a single movie.
func (c *Client) FetchMovieByID(ctx context.Context, id int64) (*Movie, error) {
	var payload Movie
	path := "/movies/get/" + strconv.FormatInt(id, 10)
	if err := c.do(ctx, http.MethodGet, path, nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// FetchMoviesByGenre retrieves movies filtered server-side by genre.
func (c *Client) FetchMoviesByGenre(ctx context.Context, name string) ([]Movie, error) {
	return c.fetchFiltered(ctx, "/movies/genre/", name)
}

// FetchMoviesByFormat retrieves movies filtered server-side by format.
func (c *Client) FetchMoviesByFormat(ctx context.Context, name string) ([]Movie, error) {
	return c.fetchFiltered(ctx, "/movies/format/", name)
}

// FetchMoviesByLanguage retrieves movies filtered server-side by language.
func (c *Client) FetchMoviesByLanguage(ctx context.Context, name string) ([]Movie, error) {
	return c.fetchFiltered(ctx, "/movies/language/", name)
}

func (c *Client) fetchFiltered(ctx context.Context, prefix, name string) ([]Movie, error) {
	var payload []Movie
	if err := c.do(ctx, http.MethodGet, prefix+url.PathEscape(name), nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// AddMovie creates a movie and returns the stored record.
func (c *Client) AddMovie(ctx context.Context, movie Movie) (*Movie, error) {
	var payload Movie
	if err := c.do(ctx, http.MethodPost, "/movies/add", movie, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// UpdateMovie updates a movie and returns the stored record.
func (c *Client) UpdateMovie(ctx context.Context, movie Movie) (*Movie, error) {
	var payload Movie
	if err := c.do(ctx, http.MethodPut, "/movies/update", movie, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// DeleteMovie removes a movie by id.
func (c *Client) DeleteMovie(ctx context.Context, id int64) error {
	path := "/movies/delete/" + strconv.FormatInt(id, 10)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// FetchRatingCount retrieves the number of ratings recorded for a movie.
func (c *Client) FetchRatingCount(ctx context.Context, movieID int64) (int, error) {
	var payload int
	path := "/ratings/count/" + strconv.FormatInt(movieID, 10)
	if err := c.do(ctx, http.MethodGet, path, nil, &payload); err != nil {
		return 0, err
	}
	return payload, nil
}

// FetchGenres retrieves genre names for the filter UI.
func (c *Client) FetchGenres(ctx context.Context) ([]string, error) {
	return c.fetchNames(ctx, "/genres/getall")
}

// FetchFormats retrieves format names for the filter UI.
func (c *Client) FetchFormats(ctx context.Context) ([]string, error) {
	return c.fetchNames(ctx, "/format/getall")
}

// FetchLanguages retrieves language names for the filter UI.
func (c *Client) FetchLanguages(ctx context.Context) ([]string, error) {
	return c.fetchNames(ctx, "/language/getall")
}

func (c *Client) fetchNames(ctx context.Context, path string) ([]string, error) {
	var payload []namedEntry
	if err := c.do(ctx, http.MethodGet, path, nil, &payload); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(payload))
	for _, entry := range payload {
		if entry.Name != "" {
			names = append(names, entry.Name)
		}
	}
	return names, nil
}

// AuthorizationURL returns the external identity provider redirect URL for
// the given provider. The browser flow itself happens outside this process.
func (c *Client) AuthorizationURL(provider string) string {
	rel := &url.URL{Path: "/oauth2/authorization/" + url.PathEscape(provider)}
	return c.baseURL.ResolveReference(rel).String()
}

// publicPath reports whether a path belongs to the authentication bootstrap
// surface, which must never carry a stale credential.
func publicPath(path string) bool {
	return strings.HasPrefix(path, "/auth/") || strings.HasPrefix(path, "/oauth2/")
}

func (c *Client) do(ctx context.Context, method, path string, body, dest any) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	rel := &url.URL{Path: path}
	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	if !publicPath(path) && c.creds != nil {
		if token := strings.TrimSpace(c.creds.Token()); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		return newAPIError(resp.StatusCode, raw)
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, fmt.Errorf("api base URL is empty")
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api base URL %q: %w", raw, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
