// internal/recommender/extractor.go
package recommender

import (
	"strings"

	"eventhub-workers/internal/models"
)

// Extractor turns events into query feature sets.
type Extractor struct {
	eventTypes EventTypeTable
	keywords   KeywordOptions
}

func NewExtractor(tables Tables, opts KeywordOptions) *Extractor {
	if tables.EventTypes == nil {
		tables.EventTypes = DefaultEventTypeServices()
	}
	if tables.StopWords != nil {
		opts.StopWords = tables.StopWords
	}
	return &Extractor{
		eventTypes: tables.EventTypes,
		keywords:   opts.withDefaults(),
	}
}

// ExtractEvent maps one event to its feature set.
func (x *Extractor) ExtractEvent(event models.Event) FeatureSet {
	set := make(FeatureSet)

	// an unknown type still yields its own type token
	set.Add(KindType, event.EventType)
	for _, service := range x.eventTypes.Lookup(event.EventType) {
		set.Add(KindService, service)
	}

	for _, req := range event.Requirements {
		set.Add(KindRequirement, req)
		set.Add(KindService, req)
	}

	set.Add(KindLocation, event.Location)

	text := strings.TrimSpace(event.Title + " " + event.Description)
	for _, kw := range ExtractKeywords(text, x.keywords) {
		set.Add(KindKeyword, kw)
	}
	return set
}

// ExtractQuery is the union of the feature sets of every event.
func (x *Extractor) ExtractQuery(events []models.Event) FeatureSet {
	query := make(FeatureSet)
	for _, e := range events {
		query.Merge(x.ExtractEvent(e))
	}
	return query
}
