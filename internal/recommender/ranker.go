// internal/recommender/ranker.go
package recommender

import (
	"context"
	"math"
	"sort"

	"github.com/sourcegraph/conc/pool"

	"eventhub-workers/internal/models"
)

const DefaultMaxResults = 50

// ScoredVendor is a ranked vendor with its score and the features that matched.
type ScoredVendor struct {
	VendorID         string   `json:"vendorId"`
	BusinessName     string   `json:"businessName"`
	Description      string   `json:"description,omitempty"`
	Services         []string `json:"services"`
	Location         string   `json:"location,omitempty"`
	Verified         bool     `json:"verified"`
	Featured         bool     `json:"featured"`
	Rating           float64  `json:"rating"`
	Score            float64  `json:"score"`
	MatchingFeatures []string `json:"matchingFeatures"`
}

func newScoredVendor(v models.Vendor, sim Similarity) ScoredVendor {
	services := v.Services
	if services == nil {
		services = []string{}
	}
	return ScoredVendor{
		VendorID:         v.ID,
		BusinessName:     v.BusinessName,
		Description:      v.Description,
		Services:         services,
		Location:         v.Location,
		Verified:         v.Verified,
		Featured:         v.Featured,
		Rating:           finiteRating(v.Rating),
		Score:            sim.Score,
		MatchingFeatures: sim.MatchingFeatures,
	}
}

// RankOptions controls truncation, filtering and scoring parallelism.
type RankOptions struct {
	MaxResults  int
	MinScore    float64 // results scoring below this are dropped, 0 keeps all
	Parallelism int     // <= 1 scores sequentially
}

// Ranker scores candidates against a query and orders them.
type Ranker struct {
	scorer *Scorer
	opts   RankOptions
}

func NewRanker(scorer *Scorer, opts RankOptions) *Ranker {
	if opts.MaxResults <= 0 {
		opts.MaxResults = DefaultMaxResults
	}
	return &Ranker{scorer: scorer, opts: opts}
}

// Ranking is the output of one Rank call.
type Ranking struct {
	Vendors []ScoredVendor
	Scanned int // eligible vendors scored
}

// Rank filters out ineligible vendors, scores the rest, sorts and truncates.
// maxResults overrides the configured limit when positive.
func (r *Ranker) Rank(ctx context.Context, query FeatureSet, candidates []models.Vendor, maxResults int) (Ranking, error) {
	index := BuildIndex(candidates)
	if len(index) == 0 {
		return Ranking{Vendors: []ScoredVendor{}}, nil
	}
	if err := ctx.Err(); err != nil {
		return Ranking{}, err
	}

	scored := r.scoreAll(query, index)

	kept := scored[:0]
	for _, sv := range scored {
		if sv.Score < r.opts.MinScore {
			continue
		}
		kept = append(kept, sv)
	}

	SortScored(kept)

	limit := r.opts.MaxResults
	if maxResults > 0 {
		limit = maxResults
	}
	if len(kept) > limit {
		kept = kept[:limit]
	}
	return Ranking{Vendors: kept, Scanned: len(index)}, nil
}

// scoreAll returns one result per indexed vendor. The parallel path waits on
// every task before returning; order is restored by SortScored.
func (r *Ranker) scoreAll(query FeatureSet, index []IndexedVendor) []ScoredVendor {
	if r.opts.Parallelism <= 1 || len(index) < 2 {
		out := make([]ScoredVendor, 0, len(index))
		for _, iv := range index {
			out = append(out, newScoredVendor(iv.Vendor, r.scorer.Score(query, iv.Features)))
		}
		return out
	}

	p := pool.NewWithResults[ScoredVendor]().WithMaxGoroutines(r.opts.Parallelism)
	for _, iv := range index {
		iv := iv
		p.Go(func() ScoredVendor {
			return newScoredVendor(iv.Vendor, r.scorer.Score(query, iv.Features))
		})
	}
	return p.Wait()
}

// Less orders by score desc, rating desc, featured first, then id asc.
func Less(a, b ScoredVendor) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	ra, rb := finiteRating(a.Rating), finiteRating(b.Rating)
	if ra != rb {
		return ra > rb
	}
	if a.Featured != b.Featured {
		return a.Featured
	}
	return a.VendorID < b.VendorID
}

// finiteRating maps NaN and infinities to 0 so ratings always compare.
func finiteRating(r float64) float64 {
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0
	}
	return r
}

// SortScored sorts in place; sorting an already sorted list is a no-op.
func SortScored(list []ScoredVendor) {
	sort.SliceStable(list, func(i, j int) bool { return Less(list[i], list[j]) })
}
