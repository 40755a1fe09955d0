// internal/workers/data-access/query-elasticsearch/config.go
package queryelasticsearch

import (
	"time"

	"eventhub-workers/internal/common/config"
)

type Config struct {
	Timeout     time.Duration
	VendorIndex string
}

func LoadConfig(appConfig *config.Config) *Config {
	cfg := &Config{
		Timeout:     30 * time.Second,
		VendorIndex: "vendors",
	}
	if appConfig == nil {
		return cfg
	}
	if w := config.GetWorkerConfig(appConfig, TaskType); w.Timeout > 0 {
		cfg.Timeout = config.GetDuration(w.Timeout)
	}
	if idx := appConfig.Database.Elasticsearch.VendorIndex; idx != "" {
		cfg.VendorIndex = idx
	}
	return cfg
}
