package services

import (
	"strings"

	"github.com/ewilliams-labs/moodquiz/internal/core/domain"
)

// DefaultArtistCap limits how often one artist may appear in a playlist.
const DefaultArtistCap = 2

// Diversify walks an already score-ordered list once and admits a track only
// while its artist (case-insensitive) is under perArtistCap. Greedy: an
// artist monopolizing the top of the ranking can shrink the final list below
// the requested size even when distinct artists exist further down.
func Diversify(tracks []domain.Track, perArtistCap int) []domain.Track {
	if perArtistCap < 1 {
		perArtistCap = DefaultArtistCap
	}
	counts := make(map[string]int)
	out := make([]domain.Track, 0, len(tracks))
	for _, t := range tracks {
		key := strings.ToLower(t.Artist)
		if counts[key] >= perArtistCap {
			continue
		}
		counts[key]++
		out = append(out, t)
	}
	return out
}
