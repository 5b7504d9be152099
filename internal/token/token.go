// Package token derives a display profile from a bearer credential's
// embedded claims, without verifying anything. The backend remains the sole
// authority for authorization; this exists only so the UI can show a name
// without a server round-trip.
package token

import (
	"encoding/base64"
	"encoding/json"
	"strings"
)

// Profile is the minimal identity reconstructed from a credential.
type Profile struct {
	Username string
	Email    string
	Name     string
}

// Claim name candidates, in resolution order.
var (
	usernameClaims = []string{"username", "preferred_username", "user_name", "login"}
	nameClaims     = []string{"name", "full_name"}
)

// Derive parses a three-part dot-delimited credential and resolves profile
// fields from its claim set. It returns nil when the credential cannot be
// parsed or yields no username, email, or name. It never fails loudly.
func Derive(credential string) *Profile {
	parts := strings.Split(strings.TrimSpace(credential), ".")
	if len(parts) != 3 {
		return nil
	}

	decoded, err := decodeSegment(parts[1])
	if err != nil {
		return nil
	}

	var claims map[string]any
	if err := json.Unmarshal(decoded, &claims); err != nil {
		return nil
	}

	username := firstClaim(claims, usernameClaims)
	name := firstClaim(claims, nameClaims)

	email, _ := claims["email"].(string)
	email = strings.TrimSpace(email)
	if email == "" {
		// Some providers put the email in the subject claim.
		if sub, ok := claims["sub"].(string); ok && strings.Contains(sub, "@") {
			email = strings.TrimSpace(sub)
		}
	}

	if username == "" && email != "" {
		// The whole claim serves as username when it carries no "@".
		username, _, _ = strings.Cut(email, "@")
	}

	if username == "" && email == "" && name == "" {
		return nil
	}
	return &Profile{Username: username, Email: email, Name: name}
}

// decodeSegment decodes URL-safe base64 with padding correction, tolerating
// the standard alphabet as well.
func decodeSegment(segment string) ([]byte, error) {
	normalized := strings.NewReplacer("+", "-", "/", "_").Replace(segment)
	normalized = strings.TrimRight(normalized, "=")
	return base64.RawURLEncoding.DecodeString(normalized)
}

func firstClaim(claims map[string]any, names []string) string {
	for _, name := range names {
		if value, ok := claims[name].(string); ok {
			if trimmed := strings.TrimSpace(value); trimmed != "" {
				return trimmed
			}
		}
	}
	return ""
}
