package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// Candidate is a raw, unfiltered search result from the external catalog.
// Catalog ids are unique per source but may repeat across duplicate
// fetches, so admission must deduplicate by id.
type Candidate struct {
	CatalogID  int
	Title      string
	Artist     string
	ArtworkURL string
	PreviewURL string
	Year       int // 0 when the release year is unknown
	Explicit   bool
	Genre      string
}

// Track is the outward shape of an admitted candidate. Tracks exist only for
// the duration of one request/response cycle.
type Track struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Artist     string `json:"artist"`
	ArtworkURL string `json:"artworkUrl,omitempty"`
	PreviewURL string `json:"previewUrl,omitempty"`
	Year       int    `json:"year,omitempty"`
	Explicit   bool   `json:"explicit"`
	Genre      string `json:"genre,omitempty"`
	Provider   string `json:"provider"`
}

var artworkResolution = regexp.MustCompile(`\d{2,4}x\d{2,4}`)

// UpgradeArtwork rewrites the resolution token in a catalog artwork URL to
// request a larger rendition. URLs without a token pass through unchanged.
func UpgradeArtwork(url string) string {
	if url == "" {
		return ""
	}
	return artworkResolution.ReplaceAllString(url, "600x600")
}

// TrackFromCandidate maps an admitted candidate to the output shape.
func TrackFromCandidate(c Candidate, provider string) Track {
	return Track{
		ID:         fmt.Sprintf("%s:%d", provider, c.CatalogID),
		Title:      c.Title,
		Artist:     c.Artist,
		ArtworkURL: UpgradeArtwork(c.ArtworkURL),
		PreviewURL: c.PreviewURL,
		Year:       c.Year,
		Explicit:   c.Explicit,
		Genre:      c.Genre,
		Provider:   provider,
	}
}

// SearchText is the combined title/artist text heuristic rules match against.
func (t Track) SearchText() string {
	return strings.ToLower(t.Title + " " + t.Artist)
}
