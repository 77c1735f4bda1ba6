package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/riskibarqy/match-engine/internal/config"
	"github.com/riskibarqy/match-engine/internal/domain/match"
	"github.com/riskibarqy/match-engine/internal/infrastructure/repository/guarded"
	"github.com/riskibarqy/match-engine/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/match-engine/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/match-engine/internal/interfaces/httpapi"
	"github.com/riskibarqy/match-engine/internal/platform/cache"
	idgen "github.com/riskibarqy/match-engine/internal/platform/id"
	"github.com/riskibarqy/match-engine/internal/platform/logging"
	"github.com/riskibarqy/match-engine/internal/platform/metrics"
	"github.com/riskibarqy/match-engine/internal/platform/resilience"
	"github.com/riskibarqy/match-engine/internal/simulation"
	"github.com/riskibarqy/match-engine/internal/usecase"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"
)

// NewHTTPServer assembles the service graph. The returned cleanup closes
// the database pool and must run after the server has stopped.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, func(), error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	engine, err := simulation.NewEngine(cfg.Calibration, simulation.NewDefaultDiscipline(), logger)
	if err != nil {
		return nil, nil, fmt.Errorf("build simulation engine: %w", err)
	}

	repo, cleanup, err := newMatchRepository(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	var store *cache.Store[match.Record]
	if cfg.CacheEnabled {
		store = cache.NewStore[match.Record](cfg.CacheTTL)
	}

	var (
		m              metrics.Metrics = metrics.Nop{}
		metricsHandler http.Handler
	)
	if cfg.MetricsEnabled {
		registry := prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		m = metrics.NewService(registry)
		metricsHandler = metrics.NewMetricsHandler(registry)
	}

	service := usecase.NewSimulationService(
		engine,
		repo,
		store,
		idgen.NewRandomGenerator("match"),
		m,
		logger,
		usecase.SimulationServiceConfig{
			WorkerCount:           cfg.SimWorkerCount,
			ForecastMaxIterations: cfg.SimForecastMaxIterations,
		},
	)

	router := httpapi.NewRouter(httpapi.NewHandler(service, logger), httpapi.RouterOptions{
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		MetricsHandler:     metricsHandler,
		Metrics:            m,
		Logger:             logger,
	})

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return server, cleanup, nil
}

func newMatchRepository(cfg config.Config, logger *logging.Logger) (match.Repository, func(), error) {
	if cfg.StorageDriver != config.StoragePostgres {
		logger.Info("using in-memory match storage")
		return memory.NewMatchRepository(), func() {}, nil
	}

	db, err := openPostgres(cfg)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := db.Close(); err != nil {
			logger.Warn("close database", "error", err)
		}
	}

	var repo match.Repository = postgres.NewMatchRepository(db)
	if cfg.DBBreakerEnabled {
		breaker := resilience.NewBreaker(resilience.BreakerConfig{
			FailureThreshold: cfg.DBBreakerFailures,
			OpenTimeout:      cfg.DBBreakerOpenTimeout,
		})
		repo = guarded.NewMatchRepository(repo, breaker)
	}

	logger.Info("using postgres match storage",
		"db_name", postgres.DatabaseName(cfg.DBURL),
		"breaker_enabled", cfg.DBBreakerEnabled,
	)
	return repo, cleanup, nil
}

func openPostgres(cfg config.Config) (*sqlx.DB, error) {
	db, err := otelsqlx.Open("postgres", postgres.NormalizeURL(cfg.DBURL, cfg.DBDisablePreparedBinary),
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
		otelsql.WithDBName(postgres.DatabaseName(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}
