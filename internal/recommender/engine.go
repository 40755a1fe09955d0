// Package recommender ranks vendors against a customer's events using a
// weighted Jaccard similarity over normalized feature tokens. Everything
// except Engine.Recommend is pure and works on already-fetched records.
package recommender

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"eventhub-workers/internal/common/errors"
	"eventhub-workers/internal/models"
)

const tracerName = "eventhub-workers/internal/recommender"

// EventStore loads events by id. Unknown ids are omitted, not errors.
type EventStore interface {
	GetEventsByIDs(ctx context.Context, ids []string) ([]models.Event, error)
}

// VendorStore loads candidate vendors. Unverified vendors may be included;
// they are filtered before scoring.
type VendorStore interface {
	GetVerifiedVendors(ctx context.Context) ([]models.Vendor, error)
}

// Request is one recommendation call.
type Request struct {
	EventIDs   []string
	MaxResults int // 0 uses the engine default
}

// AnalysisDetails summarizes what a run looked at.
type AnalysisDetails struct {
	EventsRequested      int      `json:"eventsRequested"`
	EventsAnalyzed       int      `json:"eventsAnalyzed"`
	UnresolvedEventIDs   []string `json:"unresolvedEventIds"`
	TotalVendorsAnalyzed int      `json:"totalVendorsAnalyzed"`
	ExtractedPreferences int      `json:"extractedPreferences"`
	PreferenceTokens     []string `json:"preferenceTokens"`
	MatchesFound         int      `json:"matchesFound"`
}

// Result is the ranked output of a run.
type Result struct {
	Recommendations  []ScoredVendor     `json:"recommendations"`
	SimilarityScores map[string]float64 `json:"similarityScores"`
	AnalysisDetails  AnalysisDetails    `json:"analysisDetails"`
}

// Options configures an Engine.
type Options struct {
	Keywords KeywordOptions
	Rank     RankOptions
}

// Engine wires extraction, indexing, scoring and ranking to the stores.
type Engine struct {
	events    EventStore
	vendors   VendorStore
	extractor *Extractor
	ranker    *Ranker
	tracer    trace.Tracer
}

func NewEngine(events EventStore, vendors VendorStore, tables Tables, opts Options) (*Engine, error) {
	if tables.Weights == nil {
		tables.Weights = DefaultWeights()
	}
	if err := tables.Validate(); err != nil {
		return nil, err
	}
	return &Engine{
		events:    events,
		vendors:   vendors,
		extractor: NewExtractor(tables, opts.Keywords),
		ranker:    NewRanker(NewScorer(tables.Weights), opts.Rank),
		tracer:    otel.Tracer(tracerName),
	}, nil
}

// Recommend fetches the requested events and the candidate vendors, then
// ranks. Store failures come back as retryable fetch errors; bad ids as
// INVALID_INPUT.
func (e *Engine) Recommend(ctx context.Context, req Request) (*Result, error) {
	ctx, span := e.tracer.Start(ctx, "recommender.Recommend")
	defer span.End()

	ids := DistinctIDs(req.EventIDs)
	span.SetAttributes(attribute.Int("events.requested", len(ids)))
	if len(ids) == 0 {
		err := errors.NewInvalidInputError("eventIds must not be empty", "")
		span.SetStatus(codes.Error, err.Message)
		return nil, err
	}

	events, err := e.events.GetEventsByIDs(ctx, ids)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "events fetch failed")
		if _, ok := errors.AsStandardError(err); ok {
			return nil, err
		}
		return nil, errors.NewEventsFetchFailedError(err)
	}

	resolved, unresolved := ResolveEvents(ids, events)
	if len(resolved) == 0 {
		err := errors.NewInvalidInputError("no valid events to analyze", strings.Join(unresolved, ",")).
			WithMetadata("eventsRequested", len(ids))
		span.SetStatus(codes.Error, err.Message)
		return nil, err
	}

	vendors, err := e.vendors.GetVerifiedVendors(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "vendors fetch failed")
		if _, ok := errors.AsStandardError(err); ok {
			return nil, err
		}
		return nil, errors.NewVendorsFetchFailedError(err)
	}

	result, err := e.Analyze(ctx, ids, resolved, vendors, req.MaxResults)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(
		attribute.Int("events.analyzed", result.AnalysisDetails.EventsAnalyzed),
		attribute.Int("vendors.scanned", result.AnalysisDetails.TotalVendorsAnalyzed),
		attribute.Int("matches.found", result.AnalysisDetails.MatchesFound),
	)
	return result, nil
}

// Analyze ranks vendors for already-fetched events. requested is the id list
// the caller asked for and only feeds the diagnostics.
func (e *Engine) Analyze(ctx context.Context, requested []string, events []models.Event, vendors []models.Vendor, maxResults int) (*Result, error) {
	ids := DistinctIDs(requested)
	resolved, unresolved := ResolveEvents(ids, events)
	if len(resolved) == 0 {
		return nil, errors.NewInvalidInputError("no valid events to analyze", strings.Join(unresolved, ","))
	}

	query := e.extractor.ExtractQuery(resolved)

	ranking, err := e.ranker.Rank(ctx, query, vendors, maxResults)
	if err != nil {
		return nil, errors.NewTimeoutError("vendor ranking", err)
	}

	scores := make(map[string]float64, len(ranking.Vendors))
	for _, sv := range ranking.Vendors {
		scores[sv.VendorID] = sv.Score
	}

	return &Result{
		Recommendations:  ranking.Vendors,
		SimilarityScores: scores,
		AnalysisDetails: AnalysisDetails{
			EventsRequested:      len(ids),
			EventsAnalyzed:       len(resolved),
			UnresolvedEventIDs:   unresolved,
			TotalVendorsAnalyzed: ranking.Scanned,
			ExtractedPreferences: len(query),
			PreferenceTokens:     query.Strings(),
			MatchesFound:         len(ranking.Vendors),
		},
	}, nil
}

// ApplyMinScore drops recommendations scoring below min and keeps the
// diagnostics in step. Results are sorted by score first, so this equals
// filtering before truncation.
func (r *Result) ApplyMinScore(min float64) {
	if min <= 0 {
		return
	}
	kept := r.Recommendations[:0]
	for _, sv := range r.Recommendations {
		if sv.Score < min {
			delete(r.SimilarityScores, sv.VendorID)
			continue
		}
		kept = append(kept, sv)
	}
	r.Recommendations = kept
	r.AnalysisDetails.MatchesFound = len(kept)
}

// DistinctIDs trims ids, drops blanks and duplicates, keeping first-seen order.
func DistinctIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// ResolveEvents matches fetched events to requested ids in request order.
// Events nobody asked for are ignored.
func ResolveEvents(requested []string, events []models.Event) ([]models.Event, []string) {
	byID := make(map[string]models.Event, len(events))
	for _, e := range events {
		byID[e.ID] = e
	}

	resolved := make([]models.Event, 0, len(requested))
	unresolved := []string{}
	for _, id := range requested {
		if e, ok := byID[id]; ok {
			resolved = append(resolved, e)
			continue
		}
		unresolved = append(unresolved, id)
	}
	return resolved, unresolved
}
