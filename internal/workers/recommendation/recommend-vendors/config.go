// internal/workers/recommendation/recommend-vendors/config.go
package recommendvendors

import (
	"fmt"
	"time"

	"eventhub-workers/internal/common/config"
)

type Config struct {
	Enabled       bool
	Timeout       time.Duration
	CacheTTL      time.Duration // 0 disables the result cache
	SlowThreshold time.Duration
	VendorSource  string
	VendorIndex   string
	Publish       bool
	TopicARN      string
}

func DefaultConfig() *Config {
	return &Config{
		Enabled:       true,
		Timeout:       30 * time.Second,
		SlowThreshold: 500 * time.Millisecond,
		VendorSource:  config.VendorSourcePostgres,
		VendorIndex:   "vendors",
	}
}

// LoadConfig reads the worker's settings out of the application config.
func LoadConfig(appConfig *config.Config) *Config {
	cfg := DefaultConfig()
	if appConfig == nil {
		return cfg
	}

	w := config.GetWorkerConfig(appConfig, TaskType)
	cfg.Enabled = w.Enabled
	if w.Timeout > 0 {
		cfg.Timeout = config.GetDuration(w.Timeout)
	}

	rec := appConfig.Recommendation
	cfg.CacheTTL = rec.CacheTTLDuration()
	if rec.SlowThreshold > 0 {
		cfg.SlowThreshold = rec.SlowThresholdDuration()
	}
	if rec.VendorSource != "" {
		cfg.VendorSource = rec.VendorSource
	}
	if idx := appConfig.Database.Elasticsearch.VendorIndex; idx != "" {
		cfg.VendorIndex = idx
	}

	sns := appConfig.Integrations.AWS.SNS
	cfg.Publish = sns.Enabled
	cfg.TopicARN = sns.TopicARN
	return cfg
}

func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("cache ttl must not be negative")
	}
	switch c.VendorSource {
	case config.VendorSourcePostgres, config.VendorSourceElasticsearch:
	default:
		return fmt.Errorf("unknown vendor source %q", c.VendorSource)
	}
	if c.Publish && c.TopicARN == "" {
		return fmt.Errorf("topic arn is required when publishing is enabled")
	}
	return nil
}
