// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"eventhub-workers/internal/common/aws"
	"eventhub-workers/internal/common/camunda"
	"eventhub-workers/internal/common/config"
	"eventhub-workers/internal/common/database"
	"eventhub-workers/internal/common/logger"
	"eventhub-workers/internal/common/observability"
	"eventhub-workers/internal/recommender"

	// Data Access Workers
	qe "eventhub-workers/internal/workers/data-access/query-elasticsearch"
	qp "eventhub-workers/internal/workers/data-access/query-postgresql"

	// Recommendation Workers
	rv "eventhub-workers/internal/workers/recommendation/recommend-vendors"
	sv "eventhub-workers/internal/workers/recommendation/score-vendor"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...",
		zap.String("app", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	obs := observability.New(cfg.App.Name, cfg.Observability.JaegerEndpoint)
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init Zeebe Client with retry ---
	var zeebe *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		zeebe, err = camunda.NewClientFromConfig(cfg.Camunda)
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zapLog.Info("Zeebe client connected successfully")

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Elasticsearch with retry, only when something reads the index ---
	var esClient *database.ElasticsearchClient
	if needsElasticsearch(cfg) {
		err = retryWithBackoff(func() error {
			var err error
			esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}
			return esClient.Ping(ctx)
		}, 15, 2*time.Second, zapLog, "Elasticsearch connection")
		if err != nil {
			zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
		}
		zapLog.Info("Elasticsearch connected successfully")
	}

	// --- Init Redis with retry, only when the result cache is on ---
	var redisClient *database.RedisClient
	if cfg.Recommendation.CacheTTL > 0 {
		err = retryWithBackoff(func() error {
			var err error
			redisClient, err = database.NewRedis(cfg.Database.Redis)
			if err != nil {
				return err
			}
			return redisClient.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")
		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		defer redisClient.Close()
		zapLog.Info("Redis connected successfully")
	}

	// --- Init SNS publisher ---
	var snsClient *aws.SNSClient
	if cfg.Integrations.AWS.SNS.Enabled {
		snsClient, err = aws.NewSNSClient(ctx, cfg.Integrations.AWS.Region)
		if err != nil {
			zapLog.Fatal("sns client init failed", zap.Error(err))
		}
		zapLog.Info("SNS publisher initialized", zap.String("topicArn", cfg.Integrations.AWS.SNS.TopicARN))
	}

	tables, err := cfg.Recommendation.Tables()
	if err != nil {
		zapLog.Fatal("invalid recommendation tables", zap.Error(err))
	}

	var workers []*camunda.CamundaWorker
	start := func(taskType string, handle worker.JobHandler) {
		wcfg := config.GetWorkerConfig(cfg, taskType)
		if !wcfg.Enabled {
			zapLog.Info("worker disabled", zap.String("taskType", taskType))
			return
		}
		workers = append(workers, camunda.NewWorker(zeebe.GetClient(), taskType, wcfg, handle, zapLog))
	}

	// --- Data Access Workers ---
	start(qp.TaskType, qp.NewHandler(qp.LoadConfig(cfg), pg.GetDB(), log).Handle)

	if esClient != nil {
		start(qe.TaskType, qe.NewHandler(qe.LoadConfig(cfg), esClient.Client, log).Handle)
	}

	// --- Recommendation Workers ---
	if config.IsWorkerEnabled(cfg, rv.TaskType) {
		handler, err := newRecommendHandler(cfg, tables, pg, esClient, redisClient, snsClient, obs, log)
		if err != nil {
			zapLog.Fatal("failed to create recommend-vendors handler", zap.Error(err))
		}
		start(rv.TaskType, handler.Handle)
	}

	if config.IsWorkerEnabled(cfg, sv.TaskType) {
		opts := cfg.Recommendation.EngineOptions()
		handler, err := sv.NewHandler(sv.LoadConfig(cfg), tables, opts.Keywords, log)
		if err != nil {
			zapLog.Fatal("failed to create score-vendor handler", zap.Error(err))
		}
		start(sv.TaskType, handler.WithObservability(obs).Handle)
	}

	zapLog.Info("Workers registered", zap.Int("count", len(workers)))

	server := startHealthServer(cfg.Observability.MetricsAddress, zeebe, pg, zapLog)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, w := range workers {
		w.Stop()
	}
	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error stopping health server", zap.Error(err))
	}
	if err := zeebe.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}

func needsElasticsearch(cfg *config.Config) bool {
	if cfg.Recommendation.VendorSource == config.VendorSourceElasticsearch {
		return true
	}
	return config.IsWorkerEnabled(cfg, qe.TaskType) && cfg.Database.Elasticsearch.GetURL() != ""
}

// newRecommendHandler wires the engine to the configured stores. Events always
// come from Postgres; vendors from Postgres or the search index.
func newRecommendHandler(
	cfg *config.Config,
	tables recommender.Tables,
	pg *database.PostgresClient,
	es *database.ElasticsearchClient,
	redisClient *database.RedisClient,
	snsClient *aws.SNSClient,
	obs *observability.Observability,
	log logger.Logger,
) (*rv.Handler, error) {
	wcfg := rv.LoadConfig(cfg)
	pgStore := rv.NewPostgresStore(pg.GetDB())

	var vendors recommender.VendorStore = pgStore
	if wcfg.VendorSource == config.VendorSourceElasticsearch {
		if es == nil {
			return nil, fmt.Errorf("vendor source %q needs an elasticsearch client", wcfg.VendorSource)
		}
		vendors = rv.NewElasticsearchVendorStore(es.Client, wcfg.VendorIndex)
	}

	engine, err := recommender.NewEngine(pgStore, vendors, tables, cfg.Recommendation.EngineOptions())
	if err != nil {
		return nil, err
	}

	deps := rv.Dependencies{
		Engine:        engine,
		Observability: obs,
	}
	if redisClient != nil && wcfg.CacheTTL > 0 {
		deps.Cache = rv.NewCache(redisClient.GetClient(), pgStore, wcfg.CacheTTL)
	}
	if snsClient != nil {
		deps.Publisher = snsClient
	}
	return rv.NewHandler(wcfg, deps, log)
}

func startHealthServer(addr string, zeebe *camunda.Client, pg *database.PostgresClient, log *zap.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, "healthy", nil)
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		checks := map[string]string{"zeebe": "ok", "postgres": "ok"}
		status := http.StatusOK
		if err := zeebe.HealthCheck(ctx); err != nil {
			checks["zeebe"] = err.Error()
			status = http.StatusServiceUnavailable
		}
		if err := pg.Ping(ctx); err != nil {
			checks["postgres"] = err.Error()
			status = http.StatusServiceUnavailable
		}
		label := "ready"
		if status != http.StatusOK {
			label = "not ready"
		}
		writeStatus(w, status, label, checks)
	})
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("Health/Metrics server listening", zap.String("address", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()
	return server
}

func writeStatus(w http.ResponseWriter, code int, status string, checks map[string]string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	body := map[string]interface{}{
		"status": status,
		"time":   time.Now().Format(time.RFC3339),
	}
	if checks != nil {
		body["checks"] = checks
	}
	_ = json.NewEncoder(w).Encode(body)
}
