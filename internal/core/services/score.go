package services

import (
	"strings"

	"github.com/ewilliams-labs/moodquiz/internal/core/domain"
)

// ScoreTrack assigns a heuristic relevance score for relative ordering only.
// Rules are independent and additive; a track can match several.
func ScoreTrack(mood domain.MoodVector, track domain.Track) float64 {
	genre := strings.ToLower(track.Genre)
	combined := track.SearchText()

	score := 0.0
	if strings.Contains(genre, "dance") || strings.Contains(genre, "pop") {
		score += mood.Valence*0.6 + mood.Energy*0.4
	}
	if strings.Contains(genre, "ambient") || strings.Contains(genre, "lofi") || strings.Contains(genre, "classical") {
		score += (1 - mood.Energy) * 0.7
	}
	if strings.Contains(combined, "instrumental") {
		score += mood.Focus * 0.8
	}
	if track.Year >= 2018 {
		score += 0.15 * mood.Energy
	}
	if track.Year != 0 && track.Year <= 2010 {
		score += 0.10 * mood.Focus
	}
	if strings.Contains(combined, "remix") {
		score += mood.Danceability * 0.3
	}
	return score
}
