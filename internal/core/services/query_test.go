package services

import (
	"strings"
	"testing"

	"github.com/ewilliams-labs/moodquiz/internal/core/domain"
)

func TestVibeTokens(t *testing.T) {
	tests := []struct {
		name string
		bpm  int
		want string
	}{
		{name: "slow", bpm: 75, want: "chill acoustic ambient lofi"},
		{name: "slow boundary", bpm: 95, want: "chill acoustic ambient lofi"},
		{name: "mid", bpm: 110, want: "indie mellow"},
		{name: "pop range", bpm: 135, want: "pop upbeat"},
		{name: "fast", bpm: 160, want: "dance edm"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := strings.Join(vibeTokens(tt.bpm), " ")
			if got != tt.want {
				t.Fatalf("vibeTokens(%d) = %q, want %q", tt.bpm, got, tt.want)
			}
		})
	}
}

func TestBuildQueries_NeverEmptyNeverDuplicate(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		mood   domain.MoodVector
		facets domain.Facets
	}{
		{
			name: "empty facets",
			text: "whatever",
			mood: domain.MoodVector{TempoPref: 0.5},
		},
		{
			name: "full facets",
			text: "90s bollywood rain with arijit singh!!!",
			mood: domain.MoodVector{TempoPref: 0.2},
			facets: domain.Facets{
				Decade:   &domain.DecadeRange{From: 1990, To: 1999},
				Country:  "IN",
				Language: "hindi",
				Region:   "bollywood",
				Genres:   []string{"bollywood", "filmi"},
				Artists:  []string{"arijit singh"},
				Themes:   []string{"rain", "ambient"},
			},
		},
		{
			name: "text collapses into vibe query",
			text: "chill acoustic ambient lofi",
			mood: domain.MoodVector{TempoPref: 0},
		},
		{
			name: "punctuation only text",
			text: "?!...",
			mood: domain.MoodVector{TempoPref: 0.9},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			queries := BuildQueries(tt.text, tt.mood, tt.facets)

			if len(queries) == 0 {
				t.Fatal("expected at least one query")
			}
			seen := map[string]struct{}{}
			for _, q := range queries {
				if strings.TrimSpace(q) == "" {
					t.Fatalf("empty query in %v", queries)
				}
				if q != strings.Join(strings.Fields(q), " ") {
					t.Fatalf("query %q has uncollapsed whitespace", q)
				}
				if _, dup := seen[q]; dup {
					t.Fatalf("duplicate query %q in %v", q, queries)
				}
				seen[q] = struct{}{}
			}
		})
	}
}

func TestBuildQueries_OrderAndContent(t *testing.T) {
	facets := domain.Facets{
		Decade:   &domain.DecadeRange{From: 1990, To: 1999},
		Region:   "bollywood",
		Language: "hindi",
		Genres:   []string{"bollywood"},
		Artists:  []string{"arijit singh"},
		Themes:   []string{"rain"},
	}
	mood := domain.MoodVector{TempoPref: 0.25} // 75 BPM -> chill bucket

	queries := BuildQueries("90s bollywood rain", mood, facets)

	if queries[0] != "arijit singh bollywood rain 1990-1999" {
		t.Errorf("first query = %q, want artist-led query", queries[0])
	}

	foundDecade := false
	for _, q := range queries {
		if strings.Contains(q, "1990-1999") {
			foundDecade = true
		}
	}
	if !foundDecade {
		t.Errorf("no query contains decade term: %v", queries)
	}

	foundVibe := false
	for _, q := range queries {
		if q == "chill acoustic ambient lofi" {
			foundVibe = true
		}
	}
	if !foundVibe {
		t.Errorf("no vibe query present: %v", queries)
	}
}

func TestBuildQueries_TruncatesRawText(t *testing.T) {
	long := strings.Repeat("melancholy ", 20)
	queries := BuildQueries(long, domain.MoodVector{TempoPref: 0.5}, domain.Facets{})

	for _, q := range queries {
		if len([]rune(q)) > rawTextQueryLimit {
			t.Fatalf("query longer than %d runes: %q", rawTextQueryLimit, q)
		}
	}
}
