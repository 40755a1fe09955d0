package recommender

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeights_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(w Weights)
		wantErr string
	}{
		{"defaults", func(Weights) {}, ""},
		{"rescaled", func(w Weights) {
			w[KindService], w[KindRequirement], w[KindLocation], w[KindType], w[KindKeyword] = 10, 12, 6, 1, 0.5
		}, ""},
		{"location equal to service allowed", func(w Weights) { w[KindLocation] = 3 }, ""},
		{"missing kind", func(w Weights) { delete(w, KindKeyword) }, "missing weight"},
		{"non positive", func(w Weights) { w[KindType] = 0 }, "positive"},
		{"location above service", func(w Weights) { w[KindLocation] = 4 }, "must not be below location"},
		{"keyword equal to location", func(w Weights) { w[KindKeyword] = 2 }, "must exceed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := DefaultWeights()
			tt.mutate(w)
			err := w.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestEventTypeTable_Lookup(t *testing.T) {
	table := DefaultEventTypeServices()
	assert.Equal(t, []string{"photography", "catering", "decoration", "music"}, table.Lookup(" WEDDING"))
	assert.Empty(t, table.Lookup("Hackathon"))

	custom := NewEventTypeTable(map[string][]string{"Product Launch ": {"Venue", " "}})
	assert.Equal(t, []string{"venue"}, custom.Lookup("product launch"))
}

func TestStopWords(t *testing.T) {
	sw := NewStopWords([]string{"The", "  ra "})
	assert.True(t, sw.Contains("the"))
	assert.True(t, sw.Contains("ra"))
	assert.False(t, sw.Contains("wedding"))
}
