package services

import (
	"fmt"

	"github.com/ewilliams-labs/moodquiz/internal/core/domain"
)

// PlaylistTitle buckets the mood vector into a human-readable label and
// suffixes the tempo estimate, e.g. "Focus • ~75 BPM".
func PlaylistTitle(mood domain.MoodVector) string {
	label := "Mellow"
	switch {
	case mood.Energy > 0.65:
		label = "Upbeat"
	case mood.Focus >= 0.6:
		label = "Focus"
	case mood.Valence < 0.35:
		label = "Moody"
	}
	return fmt.Sprintf("%s • ~%d BPM", label, mood.BPM())
}
