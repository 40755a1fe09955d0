// internal/recommender/scorer.go
package recommender

import "sort"

// Similarity is the result of scoring one vendor against a query.
type Similarity struct {
	Score            float64
	MatchingFeatures []string
	Intersection     float64
	Union            float64
}

// Scorer computes weighted Jaccard similarity. It holds no mutable state
// and is safe for concurrent use.
type Scorer struct {
	weights Weights
}

func NewScorer(weights Weights) *Scorer {
	if weights == nil {
		weights = DefaultWeights()
	}
	return &Scorer{weights: weights}
}

// Score returns intersection/union of kind weights. An empty union scores 0.
// Tokens are visited in lexical order so float sums are reproducible.
func (s *Scorer) Score(query, vendor FeatureSet) Similarity {
	var sim Similarity
	seen := make(map[string]struct{})

	for _, t := range query.Tokens() {
		w := s.weights.Of(t.Kind())
		sim.Union += w
		if !vendor.Has(t) {
			continue
		}
		sim.Intersection += w
		if _, dup := seen[t.Value()]; !dup {
			seen[t.Value()] = struct{}{}
			sim.MatchingFeatures = append(sim.MatchingFeatures, t.Value())
		}
	}
	for _, t := range vendor.Tokens() {
		if !query.Has(t) {
			sim.Union += s.weights.Of(t.Kind())
		}
	}

	if sim.MatchingFeatures == nil {
		sim.MatchingFeatures = []string{}
	}
	sort.Strings(sim.MatchingFeatures)

	if sim.Union > 0 {
		sim.Score = sim.Intersection / sim.Union
	}
	return sim
}
