// Package lexicon is an in-process mood inferrer. It scans text against a
// VAD (valence/arousal/dominance) term lexicon with longest-phrase-first
// n-gram matching and converts the averaged VAD point into the music mood
// vector. It stands in for the remote inference service when none is
// configured.
package lexicon

import (
	"context"
	_ "embed"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/ewilliams-labs/moodquiz/internal/core/domain"
	"github.com/ewilliams-labs/moodquiz/internal/core/ports"
)

//go:embed lexicon.csv
var seedLexicon string

const maxNgram = 4

var wordPattern = regexp.MustCompile(`[a-z']+`)

type vad struct {
	valence   float64
	arousal   float64
	dominance float64
}

// Inferrer matches text against the loaded lexicon.
type Inferrer struct {
	// indexed by first token, then phrase length, then full phrase
	index map[string]map[int]map[string]vad
	terms int
}

// compile-time interface assertion
var _ ports.MoodInferrer = (*Inferrer)(nil)

// New loads the embedded seed lexicon.
func New() (*Inferrer, error) {
	return parse(strings.NewReader(seedLexicon))
}

// NewFromFile loads a lexicon CSV with columns term,valence,arousal,dominance
// (values in [-1,1]).
func NewFromFile(path string) (*Inferrer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("lexicon: open %s: %w", path, err)
	}
	defer f.Close()
	return parse(f)
}

func parse(r io.Reader) (*Inferrer, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 4

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("lexicon: read header: %w", err)
	}
	if len(header) != 4 || strings.TrimSpace(header[0]) != "term" {
		return nil, fmt.Errorf("lexicon: expected header term,valence,arousal,dominance")
	}

	inf := &Inferrer{index: make(map[string]map[int]map[string]vad)}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("lexicon: read record: %w", err)
		}

		tokens := tokenize(record[0])
		if len(tokens) == 0 || len(tokens) > maxNgram {
			continue
		}

		v, errV := strconv.ParseFloat(record[1], 64)
		a, errA := strconv.ParseFloat(record[2], 64)
		d, errD := strconv.ParseFloat(record[3], 64)
		if errV != nil || errA != nil || errD != nil {
			continue
		}

		// Lexicon values live in [-1,1]; the matcher works in [0,1].
		entry := vad{valence: norm01(v), arousal: norm01(a), dominance: norm01(d)}

		first := tokens[0]
		if inf.index[first] == nil {
			inf.index[first] = make(map[int]map[string]vad)
		}
		if inf.index[first][len(tokens)] == nil {
			inf.index[first][len(tokens)] = make(map[string]vad)
		}
		inf.index[first][len(tokens)][strings.Join(tokens, " ")] = entry
		inf.terms++
	}

	return inf, nil
}

// Terms reports how many lexicon phrases are loaded.
func (inf *Inferrer) Terms() int {
	return inf.terms
}

// InferMood scans the text longest-phrase-first, averages the matched VAD
// points weighted by occurrence, and converts the result to a mood vector.
// Text with no lexicon matches gets the neutral default mood.
func (inf *Inferrer) InferMood(_ context.Context, text string) (domain.MoodVector, error) {
	tokens := tokenize(text)
	n := len(tokens)
	if n == 0 {
		return domain.DefaultMood(), nil
	}

	var sum vad
	matched := 0

	i := 0
	for i < n {
		advanced := false
		byLength := inf.index[tokens[i]]
		if byLength != nil {
			longest := maxNgram
			if n-i < longest {
				longest = n - i
			}
			for length := longest; length >= 1; length-- {
				phrase := strings.Join(tokens[i:i+length], " ")
				if entry, ok := byLength[length][phrase]; ok {
					sum.valence += entry.valence
					sum.arousal += entry.arousal
					sum.dominance += entry.dominance
					matched++
					i += length
					advanced = true
					break
				}
			}
		}
		if !advanced {
			i++
		}
	}

	if matched == 0 {
		return domain.DefaultMood(), nil
	}

	avg := vad{
		valence:   sum.valence / float64(matched),
		arousal:   sum.arousal / float64(matched),
		dominance: sum.dominance / float64(matched),
	}
	return moodFromVAD(avg), nil
}

// moodFromVAD maps the psychology VAD point onto the music mood dimensions:
// calm plus confident reads as focus, danceability mixes arousal with
// positive valence, and tempo preference tracks arousal.
func moodFromVAD(p vad) domain.MoodVector {
	return domain.MoodVector{
		Valence:      p.valence,
		Energy:       p.arousal,
		Focus:        domain.Clamp01((1 - 0.7*p.arousal) + 0.2*p.dominance),
		Danceability: domain.Clamp01(0.35 + 0.45*p.arousal + 0.20*maxFloat(0, p.valence-0.5)),
		TempoPref:    p.arousal,
	}
}

func tokenize(text string) []string {
	return wordPattern.FindAllString(strings.ToLower(text), -1)
}

func norm01(x float64) float64 {
	return domain.Clamp01((x + 1) / 2)
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
