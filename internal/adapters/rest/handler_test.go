package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ewilliams-labs/moodquiz/internal/core/domain"
	"github.com/ewilliams-labs/moodquiz/internal/core/services"
)

// The handler takes the concrete Assembler, so these tests build a real
// Assembler over mock ports, exactly as the service wires it in production.

type mockMood struct {
	mood domain.MoodVector
	err  error
}

func (m *mockMood) InferMood(_ context.Context, _ string) (domain.MoodVector, error) {
	if m.err != nil {
		return domain.MoodVector{}, m.err
	}
	return m.mood, nil
}

type mockCatalog struct {
	results []domain.Candidate
}

func (m *mockCatalog) Search(_ context.Context, _, _ string, _ int) ([]domain.Candidate, error) {
	return m.results, nil
}

func newTestHandler(mood *mockMood, catalog *mockCatalog) *Handler {
	fetcher := services.NewFetcher(catalog, nil)
	return NewHandler(services.NewAssembler(mood, fetcher, "itunes"))
}

func postJSON(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthCheck(t *testing.T) {
	h := newTestHandler(&mockMood{}, &mockCatalog{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestGeneratePlaylist_Success(t *testing.T) {
	catalog := &mockCatalog{results: []domain.Candidate{
		{CatalogID: 1, Title: "One", Artist: "A", PreviewURL: "https://audio.test/1.m4a", Genre: "Pop"},
		{CatalogID: 2, Title: "Two", Artist: "B", PreviewURL: "https://audio.test/2.m4a"},
	}}
	mood := &mockMood{mood: domain.MoodVector{Valence: 0.55, Energy: 0.2, Focus: 0.6, Danceability: 0.3, TempoPref: 0.25}}
	h := newTestHandler(mood, catalog)

	rec := postJSON(t, h, "/playlists/generate", `{"text":"I'm mentally exhausted but a bit hopeful"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var got domain.Playlist
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if got.Title != "Focus • ~75 BPM" {
		t.Errorf("Title = %q", got.Title)
	}
	if got.Count != 2 || len(got.Tracks) != 2 {
		t.Errorf("Count = %d, Tracks = %d", got.Count, len(got.Tracks))
	}
	if got.ID == "" {
		t.Error("expected a playlist id")
	}
	if got.Mood.Valence != 0.55 {
		t.Errorf("Mood.Valence = %v", got.Mood.Valence)
	}
}

func TestGeneratePlaylist_MissingText(t *testing.T) {
	h := newTestHandler(&mockMood{}, &mockCatalog{})

	tests := []struct {
		name string
		body string
	}{
		{name: "absent field", body: `{}`},
		{name: "blank text", body: `{"text":"   "}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, h, "/playlists/generate", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestGeneratePlaylist_InvalidBody(t *testing.T) {
	h := newTestHandler(&mockMood{}, &mockCatalog{})

	rec := postJSON(t, h, "/playlists/generate", `{not json`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestGeneratePlaylist_RequiresJSONContentType(t *testing.T) {
	h := newTestHandler(&mockMood{}, &mockCatalog{})

	req := httptest.NewRequest(http.MethodPost, "/playlists/generate", bytes.NewBufferString(`{"text":"x"}`))
	req.Header.Set("Content-Type", "text/plain")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("status = %d, want 415", rec.Code)
	}
}

func TestGeneratePlaylist_InferenceFailureIsServerError(t *testing.T) {
	h := newTestHandler(&mockMood{err: errors.New("ml down")}, &mockCatalog{})

	rec := postJSON(t, h, "/playlists/generate", `{"text":"anything"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding error body: %v", err)
	}
	if body["error"] == "" {
		t.Fatal("expected an error detail string")
	}
}

func TestGeneratePlaylist_ZeroResultsStillOK(t *testing.T) {
	h := newTestHandler(&mockMood{mood: domain.DefaultMood()}, &mockCatalog{})

	rec := postJSON(t, h, "/playlists/generate", `{"text":"xzqwv gibberish"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 for zero results", rec.Code)
	}

	var got domain.Playlist
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if got.Count != 0 || len(got.Tracks) != 0 {
		t.Errorf("Count = %d, Tracks = %d, want empty", got.Count, len(got.Tracks))
	}
	if got.Note == "" {
		t.Error("expected an advisory note")
	}
}
