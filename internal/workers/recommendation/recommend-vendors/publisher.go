package recommendvendors

import "context"

// Publisher sends a JSON message to a topic. *aws.SNSClient implements it.
type Publisher interface {
	PublishJSON(ctx context.Context, topicARN, subject string, v interface{}, attributes map[string]string) (string, error)
}

func newGeneratedEvent(output *Output, eventIDs []string) GeneratedEvent {
	vendorIDs := make([]string, 0, len(output.Recommendations))
	for _, sv := range output.Recommendations {
		vendorIDs = append(vendorIDs, sv.VendorID)
	}

	var top float64
	if len(output.Recommendations) > 0 {
		top = output.Recommendations[0].Score
	}

	return GeneratedEvent{
		Type:         GeneratedEventType,
		RunID:        output.RunID,
		EventIDs:     eventIDs,
		VendorIDs:    vendorIDs,
		TopScore:     top,
		MatchesFound: output.AnalysisDetails.MatchesFound,
		Cached:       output.Cached,
		GeneratedAt:  output.GeneratedAt,
	}
}
