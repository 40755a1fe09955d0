// internal/common/config/recommendation.go
package config

import (
	"fmt"
	"strings"
	"time"

	"eventhub-workers/internal/recommender"
)

// Tables builds the recommender lookup tables. Weights given in config
// override the defaults per kind; tables left empty keep the built-ins.
func (r RecommendationConfig) Tables() (recommender.Tables, error) {
	tables := recommender.DefaultTables()

	if len(r.Weights) > 0 {
		weights := recommender.DefaultWeights()
		for name, value := range r.Weights {
			kind := recommender.FeatureKind(strings.ToLower(strings.TrimSpace(name)))
			if _, known := weights[kind]; !known {
				return recommender.Tables{}, fmt.Errorf("unknown feature kind %q in weights", name)
			}
			weights[kind] = value
		}
		tables.Weights = weights
	}
	if len(r.EventTypeServices) > 0 {
		tables.EventTypes = recommender.NewEventTypeTable(r.EventTypeServices)
	}
	if len(r.StopWords) > 0 {
		tables.StopWords = recommender.NewStopWords(r.StopWords)
	}

	if err := tables.Validate(); err != nil {
		return recommender.Tables{}, err
	}
	return tables, nil
}

// EngineOptions maps the config onto recommender options.
func (r RecommendationConfig) EngineOptions() recommender.Options {
	return recommender.Options{
		Keywords: recommender.KeywordOptions{
			MinLength: r.MinKeywordLength,
			MaxCount:  r.MaxKeywords,
		},
		Rank: recommender.RankOptions{
			MaxResults:  r.MaxResults,
			MinScore:    r.MinScore,
			Parallelism: r.Parallelism,
		},
	}
}

func (r RecommendationConfig) CacheTTLDuration() time.Duration {
	return time.Duration(r.CacheTTL) * time.Second
}

func (r RecommendationConfig) SlowThresholdDuration() time.Duration {
	return GetDuration(r.SlowThreshold)
}
