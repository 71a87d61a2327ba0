package domain

import "errors"

// ErrEmptyText is returned when a request carries no usable mood text.
var ErrEmptyText = errors.New("domain: mood text is required")

// Playlist is the response shape for one generation request. Nothing is
// persisted; a fresh Playlist is assembled per request.
type Playlist struct {
	ID     string     `json:"id"`
	Title  string     `json:"title"`
	Mood   MoodVector `json:"mood"`
	Count  int        `json:"count"`
	Tracks []Track    `json:"tracks"`
	Note   string     `json:"note,omitempty"`
}
