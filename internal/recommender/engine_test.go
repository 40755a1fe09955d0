package recommender

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventhub-workers/internal/common/errors"
	"eventhub-workers/internal/models"
)

type fakeEventStore struct {
	events []models.Event
	err    error
	calls  [][]string
}

func (f *fakeEventStore) GetEventsByIDs(_ context.Context, ids []string) ([]models.Event, error) {
	f.calls = append(f.calls, ids)
	if f.err != nil {
		return nil, f.err
	}
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var out []models.Event
	for _, e := range f.events {
		if want[e.ID] {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeVendorStore struct {
	vendors []models.Vendor
	err     error
}

func (f *fakeVendorStore) GetVerifiedVendors(context.Context) ([]models.Vendor, error) {
	return f.vendors, f.err
}

func newTestEngine(t *testing.T, events []models.Event, vendors []models.Vendor) *Engine {
	t.Helper()
	engine, err := NewEngine(&fakeEventStore{events: events}, &fakeVendorStore{vendors: vendors}, DefaultTables(), Options{})
	require.NoError(t, err)
	return engine
}

var weddingInKathmandu = models.Event{
	ID:           "evt-wedding",
	EventType:    "Wedding",
	Requirements: []string{"Photography"},
	Location:     "Kathmandu",
}

func TestEngine_WeddingMatchesPhotographerInKathmandu(t *testing.T) {
	engine := newTestEngine(t, []models.Event{weddingInKathmandu}, []models.Vendor{
		{ID: "v1", BusinessName: "Lens & Light", Services: []string{"photography", "catering"}, Location: "Kathmandu", Verified: true},
	})

	result, err := engine.Recommend(context.Background(), Request{EventIDs: []string{"evt-wedding"}})
	require.NoError(t, err)
	require.Len(t, result.Recommendations, 1)

	rec := result.Recommendations[0]
	assert.Equal(t, "v1", rec.VendorID)
	assert.Equal(t, "Lens & Light", rec.BusinessName)
	// type 1 + four implied services 12 + requirement 3 + location 2 = 18; shared 3+3+2
	assert.InDelta(t, 8.0/18.0, rec.Score, 1e-9)
	assert.Equal(t, []string{"catering", "kathmandu", "photography"}, rec.MatchingFeatures)
	assert.InDelta(t, rec.Score, result.SimilarityScores["v1"], 1e-12)

	details := result.AnalysisDetails
	assert.Equal(t, 1, details.EventsAnalyzed)
	assert.Equal(t, 1, details.EventsRequested)
	assert.Equal(t, 1, details.TotalVendorsAnalyzed)
	assert.Equal(t, 7, details.ExtractedPreferences)
	assert.Len(t, details.PreferenceTokens, 7)
	assert.Equal(t, 1, details.MatchesFound)
}

func TestEngine_UnverifiedVendorExcluded(t *testing.T) {
	engine := newTestEngine(t, []models.Event{weddingInKathmandu}, []models.Vendor{
		{ID: "v-unverified", Services: []string{"photography", "catering"}, Location: "Kathmandu", Verified: false, Featured: true, Rating: 5},
	})

	result, err := engine.Recommend(context.Background(), Request{EventIDs: []string{"evt-wedding"}})
	require.NoError(t, err)
	assert.Empty(t, result.Recommendations)
	assert.NotContains(t, result.SimilarityScores, "v-unverified")
	assert.Equal(t, 0, result.AnalysisDetails.TotalVendorsAnalyzed)
}

func TestEngine_UnionAcrossEvents(t *testing.T) {
	events := []models.Event{
		{ID: "e1", EventType: "Meeting", Requirements: []string{"Music"}},
		{ID: "e2", EventType: "Meeting", Requirements: []string{"Catering"}},
	}
	engine := newTestEngine(t, events, []models.Vendor{
		{ID: "music-only", Services: []string{"Music"}, Verified: true},
		{ID: "both", Services: []string{"music", "CATERING"}, Verified: true},
	})

	result, err := engine.Recommend(context.Background(), Request{EventIDs: []string{"e1", "e2"}})
	require.NoError(t, err)
	require.Len(t, result.Recommendations, 2)

	assert.Equal(t, "both", result.Recommendations[0].VendorID)
	musicOnly := result.Recommendations[1]
	assert.Equal(t, "music-only", musicOnly.VendorID)
	assert.Equal(t, []string{"music"}, musicOnly.MatchingFeatures)
	assert.Less(t, musicOnly.Score, result.Recommendations[0].Score)
}

func TestEngine_EmptyEventIDs(t *testing.T) {
	engine := newTestEngine(t, nil, nil)

	for _, ids := range [][]string{nil, {}, {"  ", ""}} {
		result, err := engine.Recommend(context.Background(), Request{EventIDs: ids})
		assert.Nil(t, result)
		assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidInput))
	}
}

func TestEngine_NoEventResolves(t *testing.T) {
	store := &fakeEventStore{events: []models.Event{weddingInKathmandu}}
	engine, err := NewEngine(store, &fakeVendorStore{}, DefaultTables(), Options{})
	require.NoError(t, err)

	_, err = engine.Recommend(context.Background(), Request{EventIDs: []string{"missing-1", "missing-2"}})
	stdErr, ok := errors.AsStandardError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeInvalidInput, stdErr.Code)
	assert.Equal(t, "no valid events to analyze", stdErr.Message)
	assert.False(t, stdErr.Retryable)
}

func TestEngine_NoVerifiedVendors(t *testing.T) {
	engine := newTestEngine(t, []models.Event{weddingInKathmandu}, nil)

	result, err := engine.Recommend(context.Background(), Request{EventIDs: []string{"evt-wedding"}})
	require.NoError(t, err)
	assert.NotNil(t, result.Recommendations)
	assert.Empty(t, result.Recommendations)
	assert.Empty(t, result.SimilarityScores)
	assert.Equal(t, 0, result.AnalysisDetails.MatchesFound)
	assert.Equal(t, 1, result.AnalysisDetails.EventsAnalyzed)
}

func TestEngine_LocationCaseInsensitive(t *testing.T) {
	engine := newTestEngine(t,
		[]models.Event{{ID: "e", EventType: "Hackathon", Location: "Kathmandu"}},
		[]models.Vendor{{ID: "v", Location: "kathmandu", Verified: true}},
	)

	result, err := engine.Recommend(context.Background(), Request{EventIDs: []string{"e"}})
	require.NoError(t, err)
	require.Len(t, result.Recommendations, 1)
	assert.Equal(t, []string{"kathmandu"}, result.Recommendations[0].MatchingFeatures)
	// type 1 + location 2
	assert.InDelta(t, 2.0/3.0, result.Recommendations[0].Score, 1e-9)
}

func TestEngine_PartialResolution(t *testing.T) {
	store := &fakeEventStore{events: []models.Event{weddingInKathmandu}}
	engine, err := NewEngine(store, &fakeVendorStore{}, DefaultTables(), Options{})
	require.NoError(t, err)

	result, err := engine.Recommend(context.Background(), Request{
		EventIDs: []string{"evt-wedding", "gone", "evt-wedding", " gone "},
	})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"evt-wedding", "gone"}}, store.calls)
	assert.Equal(t, 2, result.AnalysisDetails.EventsRequested)
	assert.Equal(t, 1, result.AnalysisDetails.EventsAnalyzed)
	assert.Equal(t, []string{"gone"}, result.AnalysisDetails.UnresolvedEventIDs)
}

func TestEngine_StoreFailuresAreRetryable(t *testing.T) {
	boom := stderrors.New("connection refused")

	engine, err := NewEngine(&fakeEventStore{err: boom}, &fakeVendorStore{}, DefaultTables(), Options{})
	require.NoError(t, err)
	_, err = engine.Recommend(context.Background(), Request{EventIDs: []string{"e"}})
	assert.True(t, errors.HasCode(err, errors.ErrCodeEventsFetchFailed))
	assert.ErrorIs(t, err, boom)

	engine, err = NewEngine(&fakeEventStore{events: []models.Event{weddingInKathmandu}}, &fakeVendorStore{err: boom}, DefaultTables(), Options{})
	require.NoError(t, err)
	_, err = engine.Recommend(context.Background(), Request{EventIDs: []string{"evt-wedding"}})
	assert.True(t, errors.HasCode(err, errors.ErrCodeVendorsFetchFailed))
}

func TestEngine_Deterministic(t *testing.T) {
	vendors := []models.Vendor{
		{ID: "c", Services: []string{"catering"}, Location: "Kathmandu", Verified: true, Rating: 4},
		{ID: "a", Services: []string{"catering"}, Location: "Kathmandu", Verified: true, Rating: 4},
		{ID: "b", Services: []string{"catering"}, Location: "Kathmandu", Verified: true, Rating: 4, Featured: true},
		{ID: "d", Services: []string{"music", "decoration"}, Verified: true, Rating: 3},
	}
	engine, err := NewEngine(&fakeEventStore{events: []models.Event{weddingInKathmandu}}, &fakeVendorStore{vendors: vendors},
		DefaultTables(), Options{Rank: RankOptions{Parallelism: 4}})
	require.NoError(t, err)

	first, err := engine.Recommend(context.Background(), Request{EventIDs: []string{"evt-wedding"}})
	require.NoError(t, err)
	ids := []string{}
	for _, r := range first.Recommendations {
		ids = append(ids, r.VendorID)
	}
	// d shares two services (6/18), the rest catering and location (5/18)
	assert.Equal(t, []string{"d", "b", "a", "c"}, ids)

	for i := 0; i < 10; i++ {
		again, err := engine.Recommend(context.Background(), Request{EventIDs: []string{"evt-wedding"}})
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestNewEngine_RejectsBadWeights(t *testing.T) {
	tables := DefaultTables()
	tables.Weights[KindKeyword] = 5
	_, err := NewEngine(&fakeEventStore{}, &fakeVendorStore{}, tables, Options{})
	assert.Error(t, err)
}

func TestResult_ApplyMinScore(t *testing.T) {
	result := &Result{
		Recommendations: []ScoredVendor{
			{VendorID: "a", Score: 0.6},
			{VendorID: "b", Score: 0.3},
			{VendorID: "c", Score: 0},
		},
		SimilarityScores: map[string]float64{"a": 0.6, "b": 0.3, "c": 0},
		AnalysisDetails:  AnalysisDetails{MatchesFound: 3},
	}

	result.ApplyMinScore(0)
	assert.Len(t, result.Recommendations, 3)

	result.ApplyMinScore(0.3)
	require.Len(t, result.Recommendations, 2)
	assert.Equal(t, "b", result.Recommendations[1].VendorID)
	assert.Equal(t, 2, result.AnalysisDetails.MatchesFound)
	assert.NotContains(t, result.SimilarityScores, "c")
}
