package habitat

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Movie is an externally defined record. Backends spell its fields several
// different ways, so the raw object is kept and every accessor probes an
// ordered list of candidate names. Accessors are total: missing or oddly
// typed fields degrade to zero values, never to an error.
type Movie struct {
	fields map[string]any
}

// NewMovie builds a movie from explicit fields, for create/update requests.
func NewMovie(fields map[string]any) Movie {
	if fields == nil {
		fields = map[string]any{}
	}
	return Movie{fields: fields}
}

func (m *Movie) UnmarshalJSON(data []byte) error {
	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err != nil {
		// Not an object; keep the movie empty rather than failing the
		// whole collection decode.
		m.fields = nil
		return nil
	}
	m.fields = obj
	return nil
}

func (m Movie) MarshalJSON() ([]byte, error) {
	if m.fields == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(m.fields)
}

// Candidate field names per logical attribute, in resolution order.
var (
	idKeys    = []string{"movieId", "movie_id", "id"}
	titleKeys = []string{"title", "name", "movieName", "movieTitle", "movie_name", "movie_title"}
	descKeys  = []string{"movieDescription", "movie_description", "description", "overview"}
	posterKeys = []string{
		"moviePoster", "movie_poster",
		"posterUrl", "posterURL", "poster_url",
		"posterPath", "poster_path",
		"posterImage", "poster_image",
		"poster",
		"imageUrl", "imageURL", "image_url",
		"imagePath", "image_path",
		"image",
		"thumbnailUrl", "thumbnailURL", "thumbnail_url",
		"thumbnailPath", "thumbnail_path",
		"thumbnail",
		"coverUrl", "coverURL", "cover_url",
		"coverPath", "cover_path",
		"cover",
		"posterBase64", "poster_base64",
	}
	certificateKeys = []string{"certificate", "certification", "ageRating", "ratingCertificate", "ua"}
	ratingKeys      = []string{"avgRating", "averageRating", "rating", "imdbRating", "avg_rating"}
	durationKeys    = []string{"durationMinutes", "duration_minutes", "duration"}
	releaseKeys     = []string{"releaseDate", "release_date"}

	languageListKeys = []string{"languages", "languageList", "availableLanguages"}
	languageKeys     = []string{"language", "languageName", "movieLanguage"}
	genreListKeys    = []string{"genres", "genreList"}
	genreKeys        = []string{"genre", "genreName", "movieGenre"}
	formatListKeys   = []string{"formats", "formatList"}
	formatKeys       = []string{"format", "formatName", "movieFormat"}
)

// ID returns the movie identifier, or 0 when none is present.
func (m Movie) ID() int64 {
	n, _ := firstNumber(m.fields, idKeys)
	return int64(n)
}

// Title resolves a display title, synthesizing one from the id as a last
// resort so a card is never rendered nameless.
func (m Movie) Title() string {
	if title := firstString(m.fields, titleKeys); title != "" {
		return title
	}
	if id := m.ID(); id > 0 {
		return fmt.Sprintf("Movie #%d", id)
	}
	return "Untitled"
}

func (m Movie) Description() string {
	return firstString(m.fields, descKeys)
}

// PosterRef returns the raw poster reference (URL, path, or base64 blob)
// without interpreting it. Resolution against the API base is a display
// concern and lives with the view helpers.
func (m Movie) PosterRef() string {
	return firstString(m.fields, posterKeys)
}

func (m Movie) Certificate() string {
	return firstString(m.fields, certificateKeys)
}

// AvgRating reports the average rating and whether one was present.
func (m Movie) AvgRating() (float64, bool) {
	return firstNumber(m.fields, ratingKeys)
}

// DurationMinutes reports the runtime and whether one was present.
func (m Movie) DurationMinutes() (int, bool) {
	n, ok := firstNumber(m.fields, durationKeys)
	return int(n), ok
}

func (m Movie) ReleaseDate() string {
	return firstString(m.fields, releaseKeys)
}

// Languages returns language names from either a list-valued field or a
// singular one.
func (m Movie) Languages() []string {
	return nameList(m.fields, languageListKeys, languageKeys)
}

func (m Movie) Genres() []string {
	return nameList(m.fields, genreListKeys, genreKeys)
}

func (m Movie) Formats() []string {
	return nameList(m.fields, formatListKeys, formatKeys)
}

// firstString resolves the first present, non-empty string-convertible value
// among the candidate keys.
func firstString(fields map[string]any, keys []string) string {
	for _, key := range keys {
		value, ok := fields[key]
		if !ok {
			continue
		}
		switch v := value.(type) {
		case string:
			if trimmed := strings.TrimSpace(v); trimmed != "" {
				return trimmed
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return ""
}

// firstNumber resolves the first numeric (or numeric-string) value among the
// candidate keys.
func firstNumber(fields map[string]any, keys []string) (float64, bool) {
	for _, key := range keys {
		value, ok := fields[key]
		if !ok || value == nil {
			continue
		}
		switch v := value.(type) {
		case float64:
			return v, true
		case string:
			if n, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
				return n, true
			}
		}
	}
	return 0, false
}

// nameList resolves a list attribute: the list-valued candidates win, with
// elements that are either bare strings or objects carrying a name field;
// otherwise a singular candidate yields a one-element list.
func nameList(fields map[string]any, listKeys, singularKeys []string) []string {
	for _, key := range listKeys {
		raw, ok := fields[key].([]any)
		if !ok {
			continue
		}
		var names []string
		for _, entry := range raw {
			if name := entryName(entry); name != "" {
				names = append(names, name)
			}
		}
		if len(names) > 0 {
			return names
		}
	}
	if single := firstString(fields, singularKeys); single != "" {
		return []string{single}
	}
	return nil
}

var entryNameKeys = []string{"name", "genreName", "languageName", "formatName", "value"}

func entryName(entry any) string {
	switch v := entry.(type) {
	case string:
		return strings.TrimSpace(v)
	case map[string]any:
		return firstString(v, entryNameKeys)
	}
	return ""
}

// Credentials is the login/register request body.
type Credentials struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// User is the server-supplied profile attached to some auth responses.
type User struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Name     string `json:"name"`
}

// AuthResponse is the result of a login or register call. The backend
// returns either a raw token string or an object with the token under one
// of several spellings, optionally with a user profile.
type AuthResponse struct {
	Token string
	User  *User
}

func (a *AuthResponse) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err == nil {
		a.Token = strings.TrimSpace(raw)
		a.User = nil
		return nil
	}

	var obj struct {
		Token       string `json:"token"`
		AccessToken string `json:"accessToken"`
		AccessSnake string `json:"access_token"`
		User        *User  `json:"user"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("decode auth response: %w", err)
	}
	for _, candidate := range []string{obj.Token, obj.AccessToken, obj.AccessSnake} {
		if strings.TrimSpace(candidate) != "" {
			a.Token = strings.TrimSpace(candidate)
			break
		}
	}
	a.User = obj.User
	return nil
}

// namedEntry decodes a taxonomy element that is either a bare string or an
// object carrying a name field.
type namedEntry struct {
	Name string
}

func (n *namedEntry) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err == nil {
		n.Name = strings.TrimSpace(raw)
		return nil
	}
	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err != nil {
		n.Name = ""
		return nil
	}
	n.Name = firstString(obj, entryNameKeys)
	return nil
}
