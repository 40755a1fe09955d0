// internal/workers/recommendation/score-vendor/models.go
package scorevendor

import "eventhub-workers/internal/models"

type Input struct {
	Events []models.Event `json:"events"`
	Vendor *models.Vendor `json:"vendor"`
}

type Output struct {
	VendorID         string         `json:"vendorId"`
	Score            float64        `json:"score"`
	MatchingFeatures []string       `json:"matchingFeatures"`
	Eligible         bool           `json:"eligible"`
	Breakdown        ScoreBreakdown `json:"breakdown"`
}

// ScoreBreakdown exposes the weighted sums behind the score.
type ScoreBreakdown struct {
	Intersection   float64  `json:"intersection"`
	Union          float64  `json:"union"`
	QueryTokens    []string `json:"queryTokens"`
	VendorTokens   []string `json:"vendorTokens"`
	EventsAnalyzed int      `json:"eventsAnalyzed"`
}
