package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/ewilliams-labs/moodquiz/internal/core/domain"
	"github.com/ewilliams-labs/moodquiz/internal/core/ports"
)

const (
	defaultPlaylistSize = 25
	minPlaylistSize     = 5
	maxPlaylistSize     = 50

	emptyResultNote = "No previewable tracks matched. Try naming a genre, an era (like \"90s\"), or an artist."
)

// GenerateRequest is one playlist generation invocation.
type GenerateRequest struct {
	Text          string
	Size          int
	AllowExplicit bool
}

// Assembler coordinates mood inference, facet extraction, query building,
// candidate fetching, scoring and diversification into one playlist.
type Assembler struct {
	mood     ports.MoodInferrer
	fetcher  *Fetcher
	provider string
}

// NewAssembler constructs an Assembler. provider tags output track ids.
func NewAssembler(mood ports.MoodInferrer, fetcher *Fetcher, provider string) *Assembler {
	return &Assembler{mood: mood, fetcher: fetcher, provider: provider}
}

// Generate runs the full pipeline for one request. An empty text reports
// domain.ErrEmptyText before any collaborator is called; a mood-inference
// failure fails the request; an empty result set is a success with a note.
func (a *Assembler) Generate(ctx context.Context, req GenerateRequest) (domain.Playlist, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return domain.Playlist{}, domain.ErrEmptyText
	}
	size := clampSize(req.Size)

	mood, err := a.mood.InferMood(ctx, text)
	if err != nil {
		return domain.Playlist{}, fmt.Errorf("service: mood inference failed: %w", err)
	}
	mood = mood.Clamped()

	facets := ExtractFacets(text)
	queries := BuildQueries(text, mood, facets)

	candidates := a.fetcher.Fetch(ctx, queries, facets.Country, FetchFilters{
		AllowExplicit: req.AllowExplicit,
		Decade:        facets.Decade,
	})

	playlist := domain.Playlist{
		ID:    uuid.NewString(),
		Title: PlaylistTitle(mood),
		Mood:  mood,
	}

	if len(candidates) == 0 {
		playlist.Tracks = []domain.Track{}
		playlist.Note = emptyResultNote
		return playlist, nil
	}

	type scored struct {
		track domain.Track
		score float64
	}
	ranked := make([]scored, len(candidates))
	for i, c := range candidates {
		t := domain.TrackFromCandidate(c, a.provider)
		ranked[i] = scored{track: t, score: ScoreTrack(mood, t)}
	}

	// Stable sort keeps fetch order for equal scores.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	tracks := make([]domain.Track, len(ranked))
	for i, s := range ranked {
		tracks[i] = s.track
	}

	tracks = Diversify(tracks, DefaultArtistCap)
	if len(tracks) > size {
		tracks = tracks[:size]
	}

	playlist.Tracks = tracks
	playlist.Count = len(tracks)
	return playlist, nil
}

func clampSize(size int) int {
	if size == 0 {
		return defaultPlaylistSize
	}
	if size < minPlaylistSize {
		return minPlaylistSize
	}
	if size > maxPlaylistSize {
		return maxPlaylistSize
	}
	return size
}
