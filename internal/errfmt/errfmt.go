// Package errfmt converts remote operation failures into stable, user-facing
// messages. Normalization is per domain: the auth normalizer rewrites common
// backend phrasings into friendlier ones, the movie normalizer passes the
// server's message through.
package errfmt

import (
	"errors"
	"net/http"
	"strings"

	"github.com/kmoretti/marquee/internal/habitat"
)

// ConnectivityMessage is returned whenever the server could not be reached
// at all, regardless of the underlying error text.
const ConnectivityMessage = "Unable to reach the server. Please check your connection and try again."

// Auth normalizes an authentication failure. fallback is used when the
// server sent a response with no recognizable message.
func Auth(err error, fallback string) string {
	if err == nil {
		return nonEmpty("", fallback)
	}

	var apiErr *habitat.APIError
	if !errors.As(err, &apiErr) {
		return ConnectivityMessage
	}

	if apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden {
		return "Invalid email or password."
	}

	message := apiErr.Text()
	lowered := strings.ToLower(message)

	switch {
	case strings.Contains(lowered, "invalid credentials"),
		strings.Contains(lowered, "bad credentials"):
		return "Invalid email or password."
	case strings.Contains(lowered, "user not exists"),
		strings.Contains(lowered, "user not found"):
		return "No account found with that email. Please register first."
	case strings.Contains(lowered, "email") && strings.Contains(lowered, "exist"):
		return "Email already exists."
	case strings.Contains(lowered, "username") && strings.Contains(lowered, "exist"):
		return "Username already exists."
	}

	return nonEmpty(message, fallback)
}

// Movie normalizes a movie-domain failure: the extracted server message is
// passed through verbatim, with no rewrites.
func Movie(err error, fallback string) string {
	if err == nil {
		return nonEmpty("", fallback)
	}

	var apiErr *habitat.APIError
	if !errors.As(err, &apiErr) {
		return ConnectivityMessage
	}

	return nonEmpty(apiErr.Text(), fallback)
}

func nonEmpty(message, fallback string) string {
	if trimmed := strings.TrimSpace(message); trimmed != "" {
		return trimmed
	}
	if trimmed := strings.TrimSpace(fallback); trimmed != "" {
		return trimmed
	}
	return "Request failed"
}
