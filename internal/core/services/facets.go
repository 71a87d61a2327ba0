package services

import (
	"regexp"
	"strings"

	"github.com/ewilliams-labs/moodquiz/internal/core/domain"
)

// regionEntry maps a region/language keyword to its facet contribution.
// Later keyword matches overwrite country and language; genres accumulate.
type regionEntry struct {
	country  string
	language string
	genres   []string
}

// regionKeywords fixes the scan order so that overwrites are deterministic.
var regionKeywords = []string{
	"bollywood", "hindi", "punjabi", "tamil", "telugu", "pahadi",
	"garhwali", "kumaoni", "uttarakhand", "italian", "french", "spanish",
	"latin", "korean", "k-pop", "japanese",
}

var regionTable = map[string]regionEntry{
	"bollywood":   {country: "IN", language: "hindi", genres: []string{"bollywood", "filmi"}},
	"hindi":       {country: "IN", language: "hindi", genres: []string{"bollywood"}},
	"punjabi":     {country: "IN", language: "punjabi", genres: []string{"punjabi", "bhangra"}},
	"tamil":       {country: "IN", language: "tamil", genres: []string{"kollywood"}},
	"telugu":      {country: "IN", language: "telugu", genres: []string{"tollywood"}},
	"pahadi":      {country: "IN", language: "pahadi", genres: []string{"pahadi", "folk"}},
	"garhwali":    {country: "IN", language: "garhwali", genres: []string{"pahadi", "folk"}},
	"kumaoni":     {country: "IN", language: "kumaoni", genres: []string{"pahadi", "folk"}},
	"uttarakhand": {country: "IN", language: "pahadi", genres: []string{"pahadi", "folk"}},
	"italian":     {country: "IT", language: "italian", genres: []string{"italian pop"}},
	"french":      {country: "FR", language: "french", genres: []string{"chanson"}},
	"spanish":     {country: "ES", language: "spanish", genres: []string{"latin"}},
	"latin":       {country: "MX", language: "spanish", genres: []string{"latin", "reggaeton"}},
	"korean":      {country: "KR", language: "korean", genres: []string{"k-pop"}},
	"k-pop":       {country: "KR", language: "korean", genres: []string{"k-pop"}},
	"japanese":    {country: "JP", language: "japanese", genres: []string{"j-pop"}},
}

// knownArtists is a fixed vocabulary; every substring match lands in the
// artist set. Names are stored lowercase.
var knownArtists = []string{
	"arijit singh",
	"kishore kumar",
	"lata mangeshkar",
	"a r rahman",
	"ar rahman",
	"nusrat fateh ali khan",
	"shreya ghoshal",
	"mohit chauhan",
	"taylor swift",
	"ed sheeran",
	"coldplay",
	"the beatles",
	"daft punk",
	"ludovico einaudi",
	"hans zimmer",
}

// characterThemes maps cultural/film-character references to theme tokens.
var characterThemes = map[string][]string{
	"geet":     {"bollywood", "carefree", "road trip"},
	"jordan":   {"rock", "intense", "heartbreak"},
	"bunny":    {"travel", "upbeat", "wanderlust"},
	"kabir":    {"moody", "intense"},
	"rockstar": {"rock", "intense", "heartbreak"},
}

var genreVocabulary = []string{
	"rock", "pop", "jazz", "blues", "classical", "hip hop", "rap",
	"edm", "techno", "house", "lofi", "indie", "metal", "folk",
	"acoustic", "ambient", "punk", "reggae", "disco", "country",
	"bollywood", "ghazal", "sufi", "k-pop",
}

// Decade patterns, checked in priority order; the first matching form wins.
var (
	fourDigitDecade = regexp.MustCompile(`\b(\d{3})0s\b`)
	twoDigitDecade  = regexp.MustCompile(`\b(\d{2})s\b`)
)

// spelled-out decade words, the lowest-priority form ("the nineties").
var decadeWords = map[string]int{
	"fifties":   1950,
	"sixties":   1960,
	"seventies": 1970,
	"eighties":  1980,
	"nineties":  1990,
}

// ExtractFacets parses raw mood text into structured facets by matching
// against the static vocabularies above. Matching is case-insensitive and
// the function is pure.
func ExtractFacets(rawText string) domain.Facets {
	text := strings.ToLower(rawText)

	var f domain.Facets
	f.Decade = detectDecade(text)

	for _, keyword := range regionKeywords {
		if !strings.Contains(text, keyword) {
			continue
		}
		entry := regionTable[keyword]
		f.Country = entry.country
		f.Language = entry.language
		f.Region = keyword
		f.Genres = append(f.Genres, entry.genres...)
	}

	for _, artist := range knownArtists {
		if strings.Contains(text, artist) {
			f.Artists = append(f.Artists, artist)
		}
	}

	for ref, themes := range characterThemes {
		if strings.Contains(text, ref) {
			f.Themes = append(f.Themes, themes...)
		}
	}

	for _, genre := range genreVocabulary {
		if strings.Contains(text, genre) {
			f.Genres = append(f.Genres, genre)
		}
	}

	if strings.Contains(text, "mountain") || strings.Contains(text, "uttarakhand") {
		f.Themes = append(f.Themes, "folk", "acoustic", "ambient", "rain", "nature")
	}
	if strings.Contains(text, "monsoon") || strings.Contains(text, "rain") {
		f.Themes = append(f.Themes, "rain", "ambient", "lofi")
	}

	// Hindi-language and bollywood requests default to the IN storefront
	// when no explicit country keyword appeared.
	if f.Country == "" && (f.Language == "hindi" || containsString(f.Genres, "bollywood")) {
		f.Country = "IN"
	}

	f.Genres = dedupeStrings(f.Genres)
	f.Artists = dedupeStrings(f.Artists)
	f.Themes = dedupeStrings(f.Themes)

	return f
}

func detectDecade(text string) *domain.DecadeRange {
	if m := fourDigitDecade.FindStringSubmatch(text); m != nil {
		from := atoiFast(m[1]) * 10
		return &domain.DecadeRange{From: from, To: from + 9}
	}
	if m := twoDigitDecade.FindStringSubmatch(text); m != nil {
		value := atoiFast(m[1])
		// No century marker: 00-29 reads as the 2000s, 30-99 as the 1900s.
		from := 1900 + value
		if value <= 29 {
			from = 2000 + value
		}
		from -= from % 10
		return &domain.DecadeRange{From: from, To: from + 9}
	}
	for word, from := range decadeWords {
		if strings.Contains(text, word) {
			return &domain.DecadeRange{From: from, To: from + 9}
		}
	}
	return nil
}

func atoiFast(digits string) int {
	n := 0
	for _, r := range digits {
		n = n*10 + int(r-'0')
	}
	return n
}

func dedupeStrings(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func containsString(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
