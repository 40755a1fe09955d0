// internal/recommender/tokens.go
package recommender

import (
	"sort"
	"strings"
)

// FeatureKind namespaces a feature token.
type FeatureKind string

const (
	KindType        FeatureKind = "type"
	KindService     FeatureKind = "service"
	KindLocation    FeatureKind = "location"
	KindKeyword     FeatureKind = "keyword"
	KindRequirement FeatureKind = "requirement"
)

// AllKinds lists every kind a token may carry.
var AllKinds = []FeatureKind{KindType, KindService, KindLocation, KindKeyword, KindRequirement}

const kindSeparator = ":"

// FeatureToken is a normalized "<kind>:<value>" string.
type FeatureToken string

// NewToken normalizes value and namespaces it. ok is false when nothing is left.
func NewToken(kind FeatureKind, value string) (FeatureToken, bool) {
	v := Normalize(value)
	if v == "" {
		return "", false
	}
	return FeatureToken(string(kind) + kindSeparator + v), true
}

func (t FeatureToken) Kind() FeatureKind {
	kind, _, _ := strings.Cut(string(t), kindSeparator)
	return FeatureKind(kind)
}

// Value is the token without its kind prefix.
func (t FeatureToken) Value() string {
	_, value, _ := strings.Cut(string(t), kindSeparator)
	return value
}

// FeatureSet is a set of tokens for one event, one vendor, or a union of events.
type FeatureSet map[FeatureToken]struct{}

func NewFeatureSet(tokens ...FeatureToken) FeatureSet {
	s := make(FeatureSet, len(tokens))
	for _, t := range tokens {
		s[t] = struct{}{}
	}
	return s
}

// Add inserts a normalized token; blank values are ignored.
func (s FeatureSet) Add(kind FeatureKind, value string) {
	if t, ok := NewToken(kind, value); ok {
		s[t] = struct{}{}
	}
}

func (s FeatureSet) Has(t FeatureToken) bool {
	_, ok := s[t]
	return ok
}

// Merge adds every token of other into s.
func (s FeatureSet) Merge(other FeatureSet) {
	for t := range other {
		s[t] = struct{}{}
	}
}

// Tokens returns the tokens in lexical order.
func (s FeatureSet) Tokens() []FeatureToken {
	out := make([]FeatureToken, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Strings returns the tokens in lexical order as plain strings.
func (s FeatureSet) Strings() []string {
	tokens := s.Tokens()
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = string(t)
	}
	return out
}
