// internal/recommender/tables.go
package recommender

import (
	"fmt"
	"math"
)

// Weights maps each feature kind to its contribution in the weighted Jaccard.
type Weights map[FeatureKind]float64

// DefaultWeights: explicit service needs and locality outrank type and free-text overlap.
func DefaultWeights() Weights {
	return Weights{
		KindService:     3,
		KindRequirement: 3,
		KindLocation:    2,
		KindType:        1,
		KindKeyword:     1,
	}
}

// Of returns the weight of a kind, 0 for unknown kinds.
func (w Weights) Of(kind FeatureKind) float64 {
	return w[kind]
}

// Validate checks every kind has a positive weight and that service and
// requirement rank at or above location, which ranks above type and keyword.
func (w Weights) Validate() error {
	for _, kind := range AllKinds {
		v, ok := w[kind]
		if !ok {
			return fmt.Errorf("missing weight for %q", kind)
		}
		if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("weight for %q must be a positive number, got %v", kind, v)
		}
	}
	top := math.Min(w[KindService], w[KindRequirement])
	low := math.Max(w[KindType], w[KindKeyword])
	if top < w[KindLocation] {
		return fmt.Errorf("service and requirement weights (%v, %v) must not be below location (%v)",
			w[KindService], w[KindRequirement], w[KindLocation])
	}
	if w[KindLocation] <= low {
		return fmt.Errorf("location weight (%v) must exceed type and keyword weights (%v, %v)",
			w[KindLocation], w[KindType], w[KindKeyword])
	}
	return nil
}

// EventTypeTable maps a normalized event type to the services it usually needs.
type EventTypeTable map[string][]string

func DefaultEventTypeServices() EventTypeTable {
	return NewEventTypeTable(map[string][]string{
		"wedding":        {"photography", "catering", "decoration", "music"},
		"reception":      {"catering", "decoration", "music", "venue"},
		"engagement":     {"photography", "catering", "decoration"},
		"birthday":       {"catering", "decoration", "photography", "entertainment"},
		"anniversary":    {"catering", "decoration", "photography"},
		"bratabandha":    {"catering", "decoration", "photography"},
		"pasni":          {"catering", "photography", "decoration"},
		"corporate":      {"catering", "venue", "audio visual"},
		"conference":     {"venue", "audio visual", "catering"},
		"concert":        {"audio visual", "lighting", "security"},
		"party":          {"catering", "music", "decoration"},
		"festival":       {"decoration", "lighting", "music", "security"},
		"graduation":     {"photography", "catering", "venue"},
		"baby shower":    {"decoration", "catering", "photography"},
		"product launch": {"venue", "audio visual", "photography"},
	})
}

// NewEventTypeTable normalizes keys and service names of a raw table.
func NewEventTypeTable(raw map[string][]string) EventTypeTable {
	t := make(EventTypeTable, len(raw))
	for eventType, services := range raw {
		key := Normalize(eventType)
		if key == "" {
			continue
		}
		for _, s := range services {
			if n := Normalize(s); n != "" {
				t[key] = append(t[key], n)
			}
		}
	}
	return t
}

// Lookup returns the implied services of an event type; unknown types imply none.
func (t EventTypeTable) Lookup(eventType string) []string {
	return t[Normalize(eventType)]
}

// StopWords is the set of words never emitted as keywords.
type StopWords map[string]struct{}

func NewStopWords(words []string) StopWords {
	s := make(StopWords, len(words))
	for _, w := range words {
		if n := Normalize(w); n != "" {
			s[n] = struct{}{}
		}
	}
	return s
}

func (s StopWords) Contains(word string) bool {
	_, ok := s[word]
	return ok
}

// DefaultStopWords is a small English list. Deployments serving other
// languages should configure their own.
func DefaultStopWords() StopWords {
	return NewStopWords([]string{
		"a", "about", "above", "after", "again", "all", "also", "am", "an", "and", "any", "are", "as", "at",
		"be", "because", "been", "before", "being", "below", "between", "both", "but", "by",
		"can", "could", "did", "do", "does", "doing", "down", "during",
		"each", "few", "for", "from", "further",
		"had", "has", "have", "having", "he", "her", "here", "hers", "him", "his", "how",
		"i", "if", "in", "into", "is", "it", "its", "just",
		"me", "more", "most", "must", "my", "need", "needs", "no", "nor", "not", "now",
		"of", "off", "on", "once", "only", "or", "other", "our", "ours", "out", "over", "own",
		"please", "same", "she", "should", "so", "some", "such",
		"than", "that", "the", "their", "theirs", "them", "then", "there", "these", "they", "this", "those",
		"through", "to", "too", "under", "until", "up", "very",
		"want", "was", "we", "were", "what", "when", "where", "which", "while", "who", "whom", "why",
		"will", "with", "would", "you", "your", "yours",
	})
}

// Tables bundles the lookup tables the extractor and scorer depend on.
type Tables struct {
	Weights    Weights
	EventTypes EventTypeTable
	StopWords  StopWords
}

func DefaultTables() Tables {
	return Tables{
		Weights:    DefaultWeights(),
		EventTypes: DefaultEventTypeServices(),
		StopWords:  DefaultStopWords(),
	}
}

func (t Tables) Validate() error {
	if err := t.Weights.Validate(); err != nil {
		return fmt.Errorf("invalid weights: %w", err)
	}
	return nil
}
