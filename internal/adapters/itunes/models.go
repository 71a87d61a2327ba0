package itunes

import (
	"strconv"

	"github.com/ewilliams-labs/moodquiz/internal/core/domain"
)

// searchResponse is the wire shape of a Search API reply.
type searchResponse struct {
	ResultCount int            `json:"resultCount"`
	Results     []searchResult `json:"results"`
}

type searchResult struct {
	TrackID           int    `json:"trackId"`
	TrackName         string `json:"trackName"`
	ArtistName        string `json:"artistName"`
	ArtworkURL100     string `json:"artworkUrl100"`
	PreviewURL        string `json:"previewUrl"`
	ReleaseDate       string `json:"releaseDate"`
	TrackExplicitness string `json:"trackExplicitness"`
	PrimaryGenreName  string `json:"primaryGenreName"`
}

func (r searchResult) toCandidate() domain.Candidate {
	return domain.Candidate{
		CatalogID:  r.TrackID,
		Title:      r.TrackName,
		Artist:     r.ArtistName,
		ArtworkURL: r.ArtworkURL100,
		PreviewURL: r.PreviewURL,
		Year:       releaseYear(r.ReleaseDate),
		Explicit:   r.TrackExplicitness == "explicit",
		Genre:      r.PrimaryGenreName,
	}
}

// releaseYear parses the leading year of an ISO-8601 release date.
// Returns 0 when the date is missing or malformed.
func releaseYear(date string) int {
	if len(date) < 4 {
		return 0
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return year
}
