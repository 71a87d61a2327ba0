package services

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/ewilliams-labs/moodquiz/internal/core/domain"
)

const rawTextQueryLimit = 60

// vibeTokens buckets the BPM estimate into search vocabulary. Buckets are
// mutually exclusive and cover the whole range.
func vibeTokens(bpm int) []string {
	switch {
	case bpm <= 95:
		return []string{"chill", "acoustic", "ambient", "lofi"}
	case bpm <= 115:
		return []string{"indie", "mellow"}
	case bpm <= 135:
		return []string{"pop", "upbeat"}
	default:
		return []string{"dance", "edm"}
	}
}

// BuildQueries combines mood, facets and the raw text into an ordered list
// of non-empty, deduplicated search query strings.
func BuildQueries(text string, mood domain.MoodVector, facets domain.Facets) []string {
	genres := strings.Join(facets.Genres, " ")
	themes := strings.Join(facets.Themes, " ")

	decadeTerm := ""
	if facets.Decade != nil {
		decadeTerm = fmt.Sprintf("%d-%d", facets.Decade.From, facets.Decade.To)
	}

	var raw []string
	if len(facets.Artists) > 0 {
		raw = append(raw, strings.Join([]string{facets.Artists[0], genres, themes, decadeTerm}, " "))
	}
	raw = append(raw,
		strings.Join([]string{facets.Region, facets.Language, genres, themes, decadeTerm}, " "),
		strings.Join([]string{genres, themes}, " "),
		strings.Join(vibeTokens(mood.BPM()), " "),
		truncateRunes(stripPunctuation(text), rawTextQueryLimit),
	)

	seen := make(map[string]struct{}, len(raw))
	queries := make([]string, 0, len(raw))
	for _, q := range raw {
		q = strings.Join(strings.Fields(q), " ")
		if q == "" {
			continue
		}
		if _, dup := seen[q]; dup {
			continue
		}
		seen[q] = struct{}{}
		queries = append(queries, q)
	}
	return queries
}

func stripPunctuation(text string) string {
	var out strings.Builder
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			out.WriteRune(r)
		}
	}
	return out.String()
}

func truncateRunes(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}
