package ports

import (
	"context"

	"github.com/ewilliams-labs/moodquiz/internal/core/domain"
)

// MoodInferrer turns free text into a mood vector. A failure here is not
// locally recoverable and fails the whole request.
type MoodInferrer interface {
	InferMood(ctx context.Context, text string) (domain.MoodVector, error)
}
