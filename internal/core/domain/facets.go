package domain

// DecadeRange is an inclusive year range covering exactly one decade.
type DecadeRange struct {
	From int
	To   int
}

// Facets are the structured attributes extracted from free mood text.
// Sets are deduplicated; insertion order is not significant.
type Facets struct {
	Decade   *DecadeRange
	Country  string
	Language string
	Region   string
	Genres   []string
	Artists  []string
	Themes   []string
}
