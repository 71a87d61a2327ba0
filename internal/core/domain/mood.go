package domain

import "math"

// MoodVector is the 5-dimensional listening-mood descriptor produced by the
// mood-inference collaborator. All values live in [0,1].
type MoodVector struct {
	Valence      float64 `json:"valence"`
	Energy       float64 `json:"energy"`
	Focus        float64 `json:"focus"`
	Danceability float64 `json:"danceability"`
	TempoPref    float64 `json:"tempo_pref"`
}

// Clamp01 bounds v to [0,1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Clamped returns a copy with every dimension bounded to [0,1].
func (m MoodVector) Clamped() MoodVector {
	return MoodVector{
		Valence:      Clamp01(m.Valence),
		Energy:       Clamp01(m.Energy),
		Focus:        Clamp01(m.Focus),
		Danceability: Clamp01(m.Danceability),
		TempoPref:    Clamp01(m.TempoPref),
	}
}

// BPM maps tempo_pref monotonically onto an approximate 40-180 BPM range.
func (m MoodVector) BPM() int {
	return int(math.Round(40 + 140*Clamp01(m.TempoPref)))
}

// DefaultMood is the neutral vector used when inference has nothing to say.
func DefaultMood() MoodVector {
	return MoodVector{Valence: 0.5, Energy: 0.5, Focus: 0.5, Danceability: 0.5, TempoPref: 0.5}
}
