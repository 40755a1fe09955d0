package recommender

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"eventhub-workers/internal/models"
)

func TestExtractor_ExtractEvent(t *testing.T) {
	x := NewExtractor(DefaultTables(), KeywordOptions{})

	set := x.ExtractEvent(models.Event{
		ID:           "evt-1",
		EventType:    "Wedding",
		Requirements: []string{"Photography", "Mehendi Artist"},
		Location:     " Kathmandu",
		Title:        "Garden wedding",
	})

	assert.Equal(t, []string{
		"keyword:garden",
		"keyword:wedding",
		"location:kathmandu",
		"requirement:mehendi artist",
		"requirement:photography",
		"service:catering",
		"service:decoration",
		"service:mehendi artist",
		"service:music",
		"service:photography",
		"type:wedding",
	}, set.Strings())
}

func TestExtractor_UnknownTypeAndMissingFields(t *testing.T) {
	x := NewExtractor(DefaultTables(), KeywordOptions{})

	set := x.ExtractEvent(models.Event{ID: "evt-2", EventType: "Hackathon"})
	assert.Equal(t, []string{"type:hackathon"}, set.Strings())

	assert.Empty(t, x.ExtractEvent(models.Event{ID: "evt-3"}))
}

func TestExtractor_InjectedTables(t *testing.T) {
	tables := DefaultTables()
	tables.EventTypes = NewEventTypeTable(map[string][]string{"hackathon": {"Catering", "WiFi"}})
	tables.StopWords = NewStopWords([]string{"annual"})
	x := NewExtractor(tables, KeywordOptions{})

	set := x.ExtractEvent(models.Event{EventType: "Hackathon", Title: "Annual hackathon"})
	assert.Equal(t, []string{"keyword:hackathon", "service:catering", "service:wifi", "type:hackathon"}, set.Strings())
}

func TestExtractor_ExtractQueryIsUnion(t *testing.T) {
	x := NewExtractor(DefaultTables(), KeywordOptions{})
	events := []models.Event{
		{ID: "a", EventType: "Meeting", Requirements: []string{"Music"}, Location: "Pokhara"},
		{ID: "b", EventType: "meeting", Requirements: []string{"catering"}, Location: "pokhara"},
	}

	query := x.ExtractQuery(events)
	assert.Equal(t, []string{
		"location:pokhara",
		"requirement:catering",
		"requirement:music",
		"service:catering",
		"service:music",
		"type:meeting",
	}, query.Strings())
}
