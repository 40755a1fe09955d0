// internal/workers/recommendation/score-vendor/handler.go
package scorevendor

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"eventhub-workers/internal/common/camunda"
	"eventhub-workers/internal/common/errors"
	"eventhub-workers/internal/common/logger"
	"eventhub-workers/internal/common/metrics"
	"eventhub-workers/internal/common/observability"
	"eventhub-workers/internal/recommender"
)

const (
	TaskType = "score-vendor"
)

type Handler struct {
	config       *Config
	extractor    *recommender.Extractor
	scorer       *recommender.Scorer
	logger       logger.Logger
	errorHandler *errors.ErrorHandler
	obs          *observability.Observability
}

func NewHandler(config *Config, tables recommender.Tables, keywords recommender.KeywordOptions, log logger.Logger) (*Handler, error) {
	if tables.Weights == nil {
		tables.Weights = recommender.DefaultWeights()
	}
	if err := tables.Validate(); err != nil {
		return nil, err
	}

	scoped := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		extractor:    recommender.NewExtractor(tables, keywords),
		scorer:       recommender.NewScorer(tables.Weights),
		logger:       scoped,
		errorHandler: errors.NewErrorHandler(scoped),
	}, nil
}

// WithObservability records job outcomes through obs. A nil obs disables it.
func (h *Handler) WithObservability(obs *observability.Observability) *Handler {
	h.obs = obs
	return h
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	start := time.Now()
	metrics.WorkerJobsActive.WithLabelValues(TaskType).Inc()
	defer metrics.WorkerJobsActive.WithLabelValues(TaskType).Dec()

	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

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
	if h.obs == nil {
		return
	}
	h.obs.RecordJobProcessed(ctx, TaskType, status)
	h.obs.RecordJobDuration(ctx, TaskType, d, status)
}

// Execute scores one vendor against the union of the given events. An
// unverified vendor is reported ineligible with a zero score.
func (h *Handler) Execute(_ context.Context, input *Input) (*Output, error) {
	if input == nil || input.Vendor == nil {
		return nil, errors.NewInvalidInputError("vendor is required", "")
	}
	if len(input.Events) == 0 {
		return nil, errors.NewInvalidInputError("no valid events to analyze", "events must not be empty")
	}

	query := h.extractor.ExtractQuery(input.Events)
	vendor := *input.Vendor

	output := &Output{
		VendorID:         vendor.ID,
		MatchingFeatures: []string{},
		Eligible:         recommender.IsEligible(vendor),
		Breakdown: ScoreBreakdown{
			QueryTokens:    query.Strings(),
			VendorTokens:   []string{},
			EventsAnalyzed: len(input.Events),
		},
	}
	if !output.Eligible {
		h.logger.Info("vendor not eligible", map[string]interface{}{
			"vendorId": vendor.ID,
		})
		return output, nil
	}

	features := recommender.IndexVendor(vendor)
	sim := h.scorer.Score(query, features)

	output.Score = sim.Score
	output.MatchingFeatures = sim.MatchingFeatures
	output.Breakdown.Intersection = sim.Intersection
	output.Breakdown.Union = sim.Union
	output.Breakdown.VendorTokens = features.Strings()

	h.logger.Info("vendor scored", map[string]interface{}{
		"vendorId": vendor.ID,
		"score":    sim.Score,
		"matches":  len(sim.MatchingFeatures),
	})
	return output, nil
}
