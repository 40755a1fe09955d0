// internal/workers/data-access/query-postgresql/config.go
package querypostgresql

import (
	"time"

	"eventhub-workers/internal/common/config"
)

type Config struct {
	Timeout time.Duration
}

func LoadConfig(appConfig *config.Config) *Config {
	cfg := &Config{
		Timeout: 30 * time.Second,
	}
	if appConfig == nil {
		return cfg
	}
	if w := config.GetWorkerConfig(appConfig, TaskType); w.Timeout > 0 {
		cfg.Timeout = config.GetDuration(w.Timeout)
	}
	return cfg
}
