// Package moodml is the adapter for the remote mood-inference service. It
// posts raw text to the service's /ml/infer/text endpoint and returns the
// 5-dimensional mood vector. Inference failures are not locally recoverable
// and propagate to the caller.
package moodml

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/avast/retry-go"
	"github.com/go-resty/resty/v2"

	"github.com/ewilliams-labs/moodquiz/internal/core/domain"
	"github.com/ewilliams-labs/moodquiz/internal/core/ports"
)

const defaultBaseURL = "http://localhost:8000"

// Client talks to the mood-inference service.
type Client struct {
	rest *resty.Client
}

// compile-time interface assertion
var _ ports.MoodInferrer = (*Client)(nil)

type inferRequest struct {
	Text string `json:"text"`
}

type inferResponse struct {
	Mood   domain.MoodVector `json:"mood"`
	Source string            `json:"source"`
}

// NewClient constructs a mood-inference client.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	rest := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10 * time.Second).
		SetHeader("Content-Type", "application/json")
	return &Client{rest: rest}
}

// InferMood returns the mood vector for text, retrying transient failures.
func (c *Client) InferMood(ctx context.Context, text string) (domain.MoodVector, error) {
	var parsed inferResponse
	err := retry.Do(
		func() error {
			resp, err := c.rest.R().
				SetContext(ctx).
				SetBody(inferRequest{Text: text}).
				SetResult(&parsed).
				Post("/ml/infer/text")
			if err != nil {
				return fmt.Errorf("moodml adapter: request failed: %w", err)
			}
			if resp.StatusCode() != http.StatusOK {
				return fmt.Errorf("moodml adapter: unexpected status %d", resp.StatusCode())
			}
			return nil
		},
		retry.Attempts(3),
		retry.Delay(300*time.Millisecond),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return ctx.Err() == nil
		}),
	)
	if err != nil {
		return domain.MoodVector{}, err
	}
	return parsed.Mood.Clamped(), nil
}
