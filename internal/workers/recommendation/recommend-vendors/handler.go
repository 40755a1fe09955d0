package recommendvendors

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"eventhub-workers/internal/common/camunda"
	"eventhub-workers/internal/common/database"
	"eventhub-workers/internal/common/errors"
	"eventhub-workers/internal/common/logger"
	"eventhub-workers/internal/common/metrics"
	"eventhub-workers/internal/common/observability"
	"eventhub-workers/internal/recommender"
)

const TaskType = "recommend-vendors"

// Recommender is the engine call the worker drives.
type Recommender interface {
	Recommend(ctx context.Context, req recommender.Request) (*recommender.Result, error)
}

// Dependencies are the collaborators of the worker. Cache, Publisher and
// Observability are optional.
type Dependencies struct {
	Engine        Recommender
	Cache         *Cache
	Publisher     Publisher
	Observability *observability.Observability
}

type Handler struct {
	config       *Config
	deps         Dependencies
	logger       logger.Logger
	errorHandler *errors.ErrorHandler
	now          func() time.Time
}

func NewHandler(config *Config, deps Dependencies, log logger.Logger) (*Handler, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration for %s: %w", TaskType, err)
	}
	if deps.Engine == nil {
		return nil, fmt.Errorf("%s: engine is required", TaskType)
	}
	if config.Publish && deps.Publisher == nil {
		return nil, fmt.Errorf("%s: publishing enabled without a publisher", TaskType)
	}

	scoped := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		deps:         deps,
		logger:       scoped,
		errorHandler: errors.NewErrorHandler(scoped),
		now:          time.Now,
	}, nil
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	start := time.Now()
	metrics.WorkerJobsActive.WithLabelValues(TaskType).Inc()
	defer metrics.WorkerJobsActive.WithLabelValues(TaskType).Dec()

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":             job.Key,
		"processInstanceKey": job.ProcessInstanceKey,
	})

	input, err := h.parseInput(job)
	if err != nil {
		h.fail(ctx, client, job, err, start)
		return
	}

	output, err := h.Execute(ctx, input)
	if err != nil {
		h.fail(ctx, client, job, err, start)
		return
	}

	if err := camunda.CompleteJob(ctx, client, job, output); err != nil {
		h.logger.Error("failed to complete job", map[string]interface{}{
			"jobKey": job.Key,
			"runId":  output.RunID,
			"error":  err,
		})
		return
	}

	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
	h.recordJob(ctx, "completed", time.Since(start))
}

func (h *Handler) parseInput(job entities.Job) (*Input, error) {
	result := ValidateVariables(job.Variables)
	if !result.Valid {
		return nil, errors.NewInvalidInputError(
			"input validation failed",
			strings.Join(result.GetErrorMessages(), "; "),
		)
	}

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		return nil, errors.NewInvalidInputError("failed to parse job variables", err.Error())
	}
	return &input, nil
}

func (h *Handler) fail(ctx context.Context, client worker.JobClient, job entities.Job, err error, start time.Time) {
	stdErr := errors.Normalize(err)
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(stdErr.Code)).Inc()
	h.recordJob(ctx, "failed", time.Since(start))
	h.errorHandler.HandleJobError(ctx, client, job, stdErr)
}

func (h *Handler) recordJob(ctx context.Context, status string, d time.Duration) {
	if h.deps.Observability == nil {
		return
	}
	h.deps.Observability.RecordJobProcessed(ctx, TaskType, status)
	h.deps.Observability.RecordJobDuration(ctx, TaskType, d, status)
}

// Execute runs one recommendation: cache lookup, engine run, cache fill and
// publication.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, errors.NewInvalidInputError("input cannot be nil", "")
	}

	start := h.now()
	runID := uuid.NewString()
	log := h.logger.WithFields(map[string]interface{}{"runId": runID})

	ctx, span := h.startSpan(ctx, runID, input)
	defer span.End()

	result, cached, err := h.recommend(ctx, input, log)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "recommendation failed")
		return nil, err
	}
	span.SetAttributes(
		attribute.Bool("cache.hit", cached),
		attribute.Int("matches.found", result.AnalysisDetails.MatchesFound),
	)

	output := &Output{
		Result:      *result,
		RunID:       runID,
		Cached:      cached,
		GeneratedAt: h.now().UTC(),
	}

	h.observe(output, h.now().Sub(start), log)

	if h.config.Publish {
		h.publish(ctx, output, recommender.DistinctIDs(input.EventIDs), log)
	}
	return output, nil
}

// startSpan opens the run span. Without observability it returns a no-op span.
func (h *Handler) startSpan(ctx context.Context, runID string, input *Input) (context.Context, trace.Span) {
	if h.deps.Observability == nil {
		return ctx, trace.SpanFromContext(context.Background())
	}
	return h.deps.Observability.StartSpan(ctx, "recommend-vendors.Execute",
		attribute.String("run.id", runID),
		attribute.Int("events.requested", len(input.EventIDs)),
	)
}

// recommend serves from the cache when possible. Cache failures degrade to an
// uncached run.
func (h *Handler) recommend(ctx context.Context, input *Input, log logger.Logger) (*recommender.Result, bool, error) {
	var key string
	if h.deps.Cache != nil {
		var err error
		key, err = h.deps.Cache.Key(ctx, input)
		if err != nil {
			metrics.RecommendationCache.WithLabelValues("error").Inc()
			log.Warn("recommendation cache unavailable", map[string]interface{}{
				"error": errors.NewCacheUnavailableError(err),
			})
		} else {
			result, err := h.deps.Cache.Get(ctx, key)
			switch {
			case err == nil:
				metrics.RecommendationCache.WithLabelValues("hit").Inc()
				return result, true, nil
			case stderrors.Is(err, database.ErrCacheMiss):
				metrics.RecommendationCache.WithLabelValues("miss").Inc()
			default:
				metrics.RecommendationCache.WithLabelValues("error").Inc()
				log.Warn("recommendation cache read failed", map[string]interface{}{
					"error": errors.NewCacheUnavailableError(err),
				})
			}
		}
	}

	result, err := h.deps.Engine.Recommend(ctx, recommender.Request{
		EventIDs:   input.EventIDs,
		MaxResults: input.Limit,
	})
	if err != nil {
		return nil, false, err
	}
	result.ApplyMinScore(input.MinScore)

	if key != "" {
		if err := h.deps.Cache.Set(ctx, key, result); err != nil {
			metrics.RecommendationCache.WithLabelValues("error").Inc()
			log.Warn("recommendation cache write failed", map[string]interface{}{
				"error": errors.NewCacheUnavailableError(err),
			})
		}
	}
	return result, false, nil
}

func (h *Handler) observe(output *Output, elapsed time.Duration, log logger.Logger) {
	details := output.AnalysisDetails
	if !output.Cached {
		metrics.RecommendationVendorsScanned.Observe(float64(details.TotalVendorsAnalyzed))
		metrics.RecommendationUnresolvedEvents.Add(float64(len(details.UnresolvedEventIDs)))
	}
	metrics.RecommendationMatches.Observe(float64(details.MatchesFound))
	if len(output.Recommendations) > 0 {
		metrics.RecommendationTopScore.Observe(output.Recommendations[0].Score)
	}

	fields := map[string]interface{}{
		"eventsRequested":      details.EventsRequested,
		"eventsAnalyzed":       details.EventsAnalyzed,
		"unresolvedEventIds":   details.UnresolvedEventIDs,
		"totalVendorsAnalyzed": details.TotalVendorsAnalyzed,
		"extractedPreferences": details.ExtractedPreferences,
		"matchesFound":         details.MatchesFound,
		"cached":               output.Cached,
		"durationMs":           elapsed.Milliseconds(),
	}
	log.Info("recommendations computed", fields)

	if h.config.SlowThreshold > 0 && elapsed > h.config.SlowThreshold {
		log.Warn("slow recommendation run", map[string]interface{}{
			"durationMs":  elapsed.Milliseconds(),
			"thresholdMs": h.config.SlowThreshold.Milliseconds(),
		})
	}
}

// publish announces the run. A failed publish is logged and counted; the job
// still completes because the result is already computed.
func (h *Handler) publish(ctx context.Context, output *Output, eventIDs []string, log logger.Logger) {
	event := newGeneratedEvent(output, eventIDs)
	messageID, err := h.deps.Publisher.PublishJSON(ctx, h.config.TopicARN, GeneratedEventType, event, map[string]string{
		"eventType": GeneratedEventType,
		"runId":     output.RunID,
	})
	if err != nil {
		metrics.EventsPublished.WithLabelValues("failed").Inc()
		log.Error("failed to publish recommendations", map[string]interface{}{
			"error": errors.NewPublishFailedError(h.config.TopicARN, err),
		})
		return
	}
	metrics.EventsPublished.WithLabelValues("published").Inc()
	log.Debug("recommendations published", map[string]interface{}{
		"messageId": messageID,
	})
}
