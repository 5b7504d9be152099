package habitat

import (
	"encoding/json"
	"testing"
)

func TestMovie_FieldProbing(t *testing.T) {
	raw := `{
		"movie_id": 12,
		"movie_title": "Arrival",
		"poster_path": "/posters/arrival.jpg",
		"certification": "UA",
		"avg_rating": "4.5",
		"languages": [{"name":"English"}, "French", {"languageName":"Telugu"}],
		"genre": "Sci-Fi"
	}`
	var m Movie
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if m.ID() != 12 {
		t.Fatalf("ID = %d, want 12", m.ID())
	}
	if m.Title() != "Arrival" {
		t.Fatalf("Title = %q", m.Title())
	}
	if m.PosterRef() != "/posters/arrival.jpg" {
		t.Fatalf("PosterRef = %q", m.PosterRef())
	}
	if m.Certificate() != "UA" {
		t.Fatalf("Certificate = %q", m.Certificate())
	}
	rating, ok := m.AvgRating()
	if !ok || rating != 4.5 {
		t.Fatalf("AvgRating = %v %v", rating, ok)
	}

	langs := m.Languages()
	if len(langs) != 3 || langs[0] != "English" || langs[1] != "French" || langs[2] != "Telugu" {
		t.Fatalf("Languages = %v", langs)
	}
	genres := m.Genres()
	if len(genres) != 1 || genres[0] != "Sci-Fi" {
		t.Fatalf("Genres = %v", genres)
	}
}

func TestMovie_TotalAccessorsOnEmptyAndMalformed(t *testing.T) {
	var m Movie
	if err := json.Unmarshal([]byte(`"not an object"`), &m); err != nil {
		t.Fatalf("unmarshal should tolerate non-objects: %v", err)
	}
	if m.Title() != "Untitled" {
		t.Fatalf("Title = %q, want Untitled", m.Title())
	}
	if m.ID() != 0 {
		t.Fatalf("ID = %d, want 0", m.ID())
	}
	if _, ok := m.AvgRating(); ok {
		t.Fatal("AvgRating present on empty movie")
	}
	if m.Languages() != nil {
		t.Fatalf("Languages = %v, want nil", m.Languages())
	}
}

func TestMovie_TitleFallsBackToID(t *testing.T) {
	m := NewMovie(map[string]any{"movieId": float64(3)})
	if m.Title() != "Movie #3" {
		t.Fatalf("Title = %q, want Movie #3", m.Title())
	}
}

func TestMovie_MarshalRoundTripsFields(t *testing.T) {
	m := NewMovie(map[string]any{"movieName": "Heat", "durationMinutes": float64(170)})
	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back Movie
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Title() != "Heat" {
		t.Fatalf("Title = %q", back.Title())
	}
	if mins, ok := back.DurationMinutes(); !ok || mins != 170 {
		t.Fatalf("DurationMinutes = %d %v", mins, ok)
	}
}

func TestAuthResponse_AcceptsStringAndObjectShapes(t *testing.T) {
	cases := []struct {
		name string
		body string
		tok  string
		user bool
	}{
		{"raw string", `"abc.def.ghi"`, "abc.def.ghi", false},
		{"token field", `{"token":"t1"}`, "t1", false},
		{"camel access token", `{"accessToken":"t2"}`, "t2", false},
		{"snake access token", `{"access_token":"t3"}`, "t3", false},
		{"with user", `{"token":"t4","user":{"username":"ripley","email":"r@w.com"}}`, "t4", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var resp AuthResponse
			if err := json.Unmarshal([]byte(tc.body), &resp); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if resp.Token != tc.tok {
				t.Fatalf("token = %q, want %q", resp.Token, tc.tok)
			}
			if (resp.User != nil) != tc.user {
				t.Fatalf("user = %#v", resp.User)
			}
		})
	}
}

func TestNewAPIError_Shapes(t *testing.T) {
	e := newAPIError(500, []byte(`{"message":"boom","title":"Server Error"}`))
	if e.Text() != "boom" {
		t.Fatalf("Text = %q, want boom", e.Text())
	}

	e = newAPIError(400, []byte(`{"error":{"message":"nested"}}`))
	if e.Text() != "nested" {
		t.Fatalf("Text = %q, want nested", e.Text())
	}

	e = newAPIError(404, []byte(`"gone"`))
	if e.Text() != "gone" {
		t.Fatalf("Text = %q, want gone", e.Text())
	}

	e = newAPIError(502, []byte("<html>bad gateway</html>"))
	if e.Text() != "<html>bad gateway</html>" {
		t.Fatalf("Text = %q", e.Text())
	}

	e = newAPIError(401, nil)
	if e.Text() != "" {
		t.Fatalf("Text = %q, want empty", e.Text())
	}
	if e.Error() != "server returned status 401" {
		t.Fatalf("Error = %q", e.Error())
	}
}
