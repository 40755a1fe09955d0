package recommender

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScorer_Score(t *testing.T) {
	s := NewScorer(DefaultWeights())

	tests := []struct {
		name     string
		query    FeatureSet
		vendor   FeatureSet
		score    float64
		matching []string
	}{
		{
			name:     "identical sets",
			query:    NewFeatureSet("service:catering", "location:kathmandu"),
			vendor:   NewFeatureSet("service:catering", "location:kathmandu"),
			score:    1,
			matching: []string{"catering", "kathmandu"},
		},
		{
			name:     "weighted partial overlap",
			query:    NewFeatureSet("service:catering", "service:music", "type:wedding", "keyword:garden"),
			vendor:   NewFeatureSet("service:catering", "location:pokhara"),
			score:    3.0 / 10.0,
			matching: []string{"catering"},
		},
		{
			name:     "disjoint",
			query:    NewFeatureSet("service:catering"),
			vendor:   NewFeatureSet("service:music"),
			score:    0,
			matching: []string{},
		},
		{
			name:     "empty union",
			query:    NewFeatureSet(),
			vendor:   NewFeatureSet(),
			score:    0,
			matching: []string{},
		},
		{
			name:     "same value under two kinds listed once",
			query:    NewFeatureSet("service:music", "keyword:music"),
			vendor:   NewFeatureSet("service:music", "keyword:music"),
			score:    1,
			matching: []string{"music"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Score(tt.query, tt.vendor)
			assert.InDelta(t, tt.score, got.Score, 1e-9)
			assert.Equal(t, tt.matching, got.MatchingFeatures)
		})
	}
}

func TestScorer_UnknownKindHasNoWeight(t *testing.T) {
	s := NewScorer(DefaultWeights())
	got := s.Score(NewFeatureSet("color:red"), NewFeatureSet("color:red"))
	assert.Zero(t, got.Score)
	assert.Zero(t, got.Union)
}

func TestScorer_CaseInsensitive(t *testing.T) {
	s := NewScorer(DefaultWeights())

	upper := make(FeatureSet)
	upper.Add(KindService, "Catering")
	lower := make(FeatureSet)
	lower.Add(KindService, "catering")

	query := make(FeatureSet)
	query.Add(KindRequirement, "catering")
	query.Add(KindService, "catering")

	assert.Equal(t, s.Score(query, lower), s.Score(query, upper))
	assert.Equal(t, 0.5, s.Score(query, upper).Score)
}

func randomSet(r *rand.Rand, n int) FeatureSet {
	values := []string{"catering", "music", "photography", "kathmandu", "pokhara", "wedding", "garden"}
	set := make(FeatureSet)
	for i := 0; i < n; i++ {
		set.Add(AllKinds[r.Intn(len(AllKinds))], values[r.Intn(len(values))])
	}
	return set
}

func TestScorer_Properties(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	weights := Weights{KindService: 2.7, KindRequirement: 3.1, KindLocation: 1.3, KindType: 0.1, KindKeyword: 0.7}
	s := NewScorer(weights)

	for i := 0; i < 500; i++ {
		query := randomSet(r, r.Intn(8))
		vendor := randomSet(r, r.Intn(8))

		base := s.Score(query, vendor)
		assert.GreaterOrEqual(t, base.Score, 0.0)
		assert.LessOrEqual(t, base.Score, 1.0)
		assert.Equal(t, base, s.Score(query, vendor), "scoring must be deterministic")

		// adding a shared token never lowers the score
		for tok := range query {
			if vendor.Has(tok) {
				continue
			}
			grown := NewFeatureSet(vendor.Tokens()...)
			grown[tok] = struct{}{}
			assert.GreaterOrEqual(t, s.Score(query, grown).Score, base.Score)
		}
	}
}
