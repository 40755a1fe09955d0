// internal/workers/recommendation/recommend-vendors/models.go
package recommendvendors

import (
	"time"

	"eventhub-workers/internal/recommender"
)

type Input struct {
	EventIDs []string `json:"eventIds"`
	Limit    int      `json:"limit,omitempty"`
	MinScore float64  `json:"minScore,omitempty"`
}

// Output is the ranked result plus run bookkeeping. The embedded result
// flattens into recommendations, similarityScores and analysisDetails.
type Output struct {
	recommender.Result
	RunID       string    `json:"runId"`
	Cached      bool      `json:"cached"`
	GeneratedAt time.Time `json:"generatedAt"`
}

// GeneratedEvent is the message published after a run.
type GeneratedEvent struct {
	Type         string    `json:"type"`
	RunID        string    `json:"runId"`
	EventIDs     []string  `json:"eventIds"`
	VendorIDs    []string  `json:"vendorIds"`
	TopScore     float64   `json:"topScore"`
	MatchesFound int       `json:"matchesFound"`
	Cached       bool      `json:"cached"`
	GeneratedAt  time.Time `json:"generatedAt"`
}

const GeneratedEventType = "recommendations.generated"
