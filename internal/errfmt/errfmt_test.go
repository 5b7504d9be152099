package errfmt

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kmoretti/marquee/internal/habitat"
)

func apiErr(status int, body string) error {
	return fmt.Errorf("register: %w", &habitat.APIError{StatusCode: status, Reason: body})
}

func TestAuth_NoResponseMeansConnectivity(t *testing.T) {
	err := errors.New("dial tcp 127.0.0.1:1: connection refused")
	assert.Equal(t, ConnectivityMessage, Auth(err, "Login failed"))
	assert.Equal(t, ConnectivityMessage, Movie(err, "Failed to fetch movies"))
}

func TestAuth_UnauthorizedAlwaysGeneric(t *testing.T) {
	got := Auth(apiErr(401, "token subsystem exploded"), "Login failed")
	assert.Equal(t, "Invalid email or password.", got)

	got = Auth(apiErr(403, ""), "Login failed")
	assert.Equal(t, "Invalid email or password.", got)
}

func TestAuth_SubstringRewrites(t *testing.T) {
	cases := map[string]string{
		"Invalid Credentials provided": "Invalid email or password.",
		"Bad credentials":              "Invalid email or password.",
		"user not exists":              "No account found with that email. Please register first.",
		"User not found in db":         "No account found with that email. Please register first.",
		"Email already exists":         "Email already exists.",
		"that username exists already": "Username already exists.",
	}
	for body, want := range cases {
		assert.Equal(t, want, Auth(apiErr(409, body), "Login failed"), "body %q", body)
	}
}

func TestAuth_PassthroughAndFallback(t *testing.T) {
	assert.Equal(t, "quota exceeded", Auth(apiErr(429, "quota exceeded"), "Login failed"))
	assert.Equal(t, "Login failed", Auth(apiErr(500, ""), "Login failed"))
	assert.Equal(t, "Request failed", Auth(apiErr(500, ""), ""))
}

func TestMovie_NoRewrites(t *testing.T) {
	// The same body an auth call would rewrite passes through verbatim here.
	assert.Equal(t, "Email already exists", Movie(apiErr(409, "Email already exists"), "Failed to add movie"))
	assert.Equal(t, "Failed to fetch movies", Movie(apiErr(500, ""), "Failed to fetch movies"))
}

func TestNormalizersNeverReturnEmpty(t *testing.T) {
	assert.NotEmpty(t, Auth(nil, ""))
	assert.NotEmpty(t, Movie(nil, ""))
	assert.NotEmpty(t, Auth(apiErr(500, ""), ""))
	assert.NotEmpty(t, Movie(apiErr(500, ""), ""))
}
