package recommender

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventhub-workers/internal/models"
)

func TestLess_TieBreaks(t *testing.T) {
	list := []ScoredVendor{
		{VendorID: "v5", Score: 0.2, Rating: 5},
		{VendorID: "v4", Score: 0.5, Rating: 4.0, Featured: false},
		{VendorID: "v3", Score: 0.5, Rating: 4.0, Featured: true},
		{VendorID: "v2", Score: 0.5, Rating: 4.5},
		{VendorID: "v1", Score: 0.5, Rating: 4.0, Featured: false},
	}

	SortScored(list)

	ids := make([]string, len(list))
	for i, sv := range list {
		ids[i] = sv.VendorID
	}
	assert.Equal(t, []string{"v2", "v3", "v1", "v4", "v5"}, ids)

	again := append([]ScoredVendor(nil), list...)
	SortScored(again)
	assert.Equal(t, list, again)
}

func TestRanker_EligibilityAndTruncation(t *testing.T) {
	r := NewRanker(NewScorer(DefaultWeights()), RankOptions{MaxResults: 2})
	query := NewFeatureSet("service:catering", "location:kathmandu")

	vendors := []models.Vendor{
		{ID: "unverified", Services: []string{"catering"}, Location: "Kathmandu", Verified: false, Rating: 5},
		{ID: "a", Services: []string{"catering"}, Location: "Kathmandu", Verified: true},
		{ID: "b", Services: []string{"catering"}, Verified: true},
		{ID: "c", Services: []string{"music"}, Verified: true},
	}

	ranking, err := r.Rank(context.Background(), query, vendors, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, ranking.Scanned)
	require.Len(t, ranking.Vendors, 2)
	assert.Equal(t, "a", ranking.Vendors[0].VendorID)
	assert.Equal(t, "b", ranking.Vendors[1].VendorID)
	for _, sv := range ranking.Vendors {
		assert.True(t, sv.Verified)
	}

	ranking, err = r.Rank(context.Background(), query, vendors, 10)
	require.NoError(t, err)
	assert.Len(t, ranking.Vendors, 3)
}

func TestRanker_MinScore(t *testing.T) {
	r := NewRanker(NewScorer(DefaultWeights()), RankOptions{MinScore: 0.1})
	query := NewFeatureSet("service:catering")

	ranking, err := r.Rank(context.Background(), query, []models.Vendor{
		{ID: "match", Services: []string{"catering"}, Verified: true},
		{ID: "miss", Services: []string{"music"}, Verified: true},
	}, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, ranking.Scanned)
	require.Len(t, ranking.Vendors, 1)
	assert.Equal(t, "match", ranking.Vendors[0].VendorID)
}

func TestRanker_NoCandidates(t *testing.T) {
	r := NewRanker(NewScorer(DefaultWeights()), RankOptions{})
	ranking, err := r.Rank(context.Background(), NewFeatureSet("service:catering"),
		[]models.Vendor{{ID: "x", Verified: false}}, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, ranking.Scanned)
	assert.NotNil(t, ranking.Vendors)
	assert.Empty(t, ranking.Vendors)
}

func TestRanker_CancelledContext(t *testing.T) {
	r := NewRanker(NewScorer(DefaultWeights()), RankOptions{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Rank(ctx, NewFeatureSet("service:catering"),
		[]models.Vendor{{ID: "x", Verified: true}}, 0)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRanker_ParallelMatchesSequential(t *testing.T) {
	services := []string{"catering", "music", "photography", "decoration", "venue"}
	locations := []string{"Kathmandu", "Pokhara", "Lalitpur"}

	vendors := make([]models.Vendor, 0, 300)
	for i := 0; i < 300; i++ {
		vendors = append(vendors, models.Vendor{
			ID:       fmt.Sprintf("v%03d", i),
			Services: []string{services[i%len(services)], services[(i/3)%len(services)]},
			Location: locations[i%len(locations)],
			Verified: i%7 != 0,
			Featured: i%11 == 0,
			Rating:   float64(i%5) + 0.5,
		})
	}
	query := NewFeatureSet("service:catering", "service:music", "location:pokhara", "type:wedding")

	seq := NewRanker(NewScorer(DefaultWeights()), RankOptions{MaxResults: 300})
	par := NewRanker(NewScorer(DefaultWeights()), RankOptions{MaxResults: 300, Parallelism: 8})

	want, err := seq.Rank(context.Background(), query, vendors, 0)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		got, err := par.Rank(context.Background(), query, vendors, 0)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestRanker_NonFiniteRatingsOrderIndependent(t *testing.T) {
	r := NewRanker(NewScorer(DefaultWeights()), RankOptions{})
	vendors := []models.Vendor{
		{ID: "a", Verified: true, Rating: math.NaN()},
		{ID: "b", Verified: true, Rating: 4},
		{ID: "c", Verified: true, Rating: 5},
		{ID: "d", Verified: true, Rating: math.NaN()},
		{ID: "e", Verified: true, Rating: math.Inf(1)},
	}
	reversed := make([]models.Vendor, len(vendors))
	for i, v := range vendors {
		reversed[len(vendors)-1-i] = v
	}

	ids := func(list []models.Vendor) []string {
		ranking, err := r.Rank(context.Background(), NewFeatureSet(), list, 0)
		require.NoError(t, err)
		out := make([]string, 0, len(ranking.Vendors))
		for _, sv := range ranking.Vendors {
			assert.False(t, math.IsNaN(sv.Rating) || math.IsInf(sv.Rating, 0), "vendor %s", sv.VendorID)
			out = append(out, sv.VendorID)
		}
		return out
	}

	want := []string{"c", "b", "a", "d", "e"}
	assert.Equal(t, want, ids(vendors))
	assert.Equal(t, want, ids(reversed))
}

func TestLess_NaNRatingIsStrictWeakOrder(t *testing.T) {
	nan := ScoredVendor{VendorID: "a", Rating: math.NaN()}
	zero := ScoredVendor{VendorID: "b", Rating: 0}
	rated := ScoredVendor{VendorID: "c", Rating: 3}

	assert.True(t, Less(nan, zero))
	assert.False(t, Less(zero, nan))
	assert.True(t, Less(rated, nan))
	assert.False(t, Less(nan, rated))
	assert.False(t, Less(nan, nan))
}
