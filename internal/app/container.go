package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"jobboard/internal/config"
	"jobboard/internal/database"
	"jobboard/internal/database/migration"
	dbpostgres "jobboard/internal/database/postgres"
	"jobboard/internal/infrastructure/cache"
	"jobboard/internal/infrastructure/enrich"
	"jobboard/internal/infrastructure/llm"
	"jobboard/internal/metrics"
	"jobboard/internal/pkg/jwt"
	"jobboard/internal/repository"
	"jobboard/internal/scheduler"
	"jobboard/internal/search"
	"jobboard/internal/service"
	"jobboard/internal/usecase"
	"jobboard/internal/ws"
)

type Container struct {
	Config config.Config
	Logger *log.Logger

	// DB is nil when no database is configured.
	DB     database.DB
	Cache  *cache.Redis
	Hub    *ws.Hub
	Tokens *jwt.HMACService

	Aggregator           *service.DefaultAggregator
	InternshipAggregator *service.DefaultAggregator

	Profiles        repository.ProfileRepository
	JobSearch       *usecase.JobSearch
	Internships     *usecase.Internships
	JobDetail       *usecase.JobDetail
	SavedJobs       *usecase.SavedJobs
	Recommendations *usecase.Recommendations
	JobMatch        *usecase.JobMatch
	Retention       *usecase.JobRetention

	Warmup *scheduler.Warmup
}

func NewLogger() *log.Logger {
	return log.New(os.Stdout, "", log.LstdFlags|log.Lmicroseconds)
}

func NewContainer(ctx context.Context, cfg config.Config, logger *log.Logger) (*Container, error) {
	if logger == nil {
		logger = NewLogger()
	}
	metrics.InitMetrics()

	c := &Container{Config: cfg, Logger: logger}

	if cfg.Database.Enabled() {
		dbCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		db, err := dbpostgres.Connect(dbCtx, cfg.Database)
		cancel()
		if err != nil {
			return nil, fmt.Errorf("connect database: %w", err)
		}
		c.DB = db

		migCtx, migCancel := context.WithTimeout(ctx, 2*time.Minute)
		err = migration.Runner{Dir: cfg.Database.MigrationsDir, Logger: logger}.Run(migCtx, db.SQLDB())
		migCancel()
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("run migrations: %w", err)
		}
	} else {
		logger.Printf("[App] database not configured; saved jobs and recommendations are disabled")
	}

	c.Cache = cache.NewRedis(cfg.Redis, logger)
	c.Hub = ws.NewHub(logger)
	go c.Hub.Run()
	c.Tokens = jwt.NewHMACService(cfg.JWT.AccessSecret, cfg.JWT.AccessExpiresIn)
	if !c.Tokens.Enabled() {
		logger.Printf("[App] JWT_ACCESS_SECRET not set; authenticated routes will reject every request")
	}

	providers := BuildProviders(cfg.Providers, logger)
	c.Aggregator = service.NewAggregator(logger, cfg.Providers.SourceTimeout, providers.Jobs...)
	c.InternshipAggregator = service.NewAggregator(logger, cfg.Providers.SourceTimeout, providers.Internships...)

	// Stores stay untyped nil without a database so the usecases see a nil
	// interface rather than a nil pointer.
	var (
		store    repository.JobStore
		saved    repository.SavedJobRepository
		profiles repository.ProfileRepository
		stale    usecase.StaleJobDeactivator
	)
	if c.DB != nil {
		pgStore := repository.NewPostgresJobStore(c.DB)
		store, stale = pgStore, pgStore
		saved = repository.NewPostgresSavedJobRepository(c.DB)
		profiles = repository.NewPostgresProfileRepository(c.DB)
	}
	c.Profiles = profiles

	var enricher usecase.CompanyEnricher
	if cfg.Providers.EnrichCompanies {
		enricher = enrich.NewCompanyEnricher(10*time.Second, logger)
	}

	var gen llm.Generator
	if gemini, err := llm.NewGemini(ctx, cfg.Providers.GeminiAPIKey, cfg.Providers.GeminiModel, logger); err != nil {
		logger.Printf("[App] gemini client unavailable, job match falls back to local scoring: %v", err)
	} else {
		gen = gemini
	}

	engine := search.NewEngine(nil, nil)
	c.JobSearch = usecase.NewJobSearchUsecase(c.Aggregator, c.Cache, engine, logger)
	c.Internships = usecase.NewInternshipUsecase(c.InternshipAggregator, c.Cache, engine, logger)
	c.JobDetail = usecase.NewJobDetailUsecase(store, c.Aggregator, logger)
	c.SavedJobs = usecase.NewSavedJobsUsecase(store, saved, enricher, c.Hub, logger)
	c.Recommendations = usecase.NewRecommendationUsecase(profiles, store, logger)
	c.JobMatch = usecase.NewJobMatchUsecase(gen, logger)
	c.Retention = usecase.NewJobRetention(stale, c.Cache, logger, cfg.Providers.JobRetentionDays)

	queries := []string{""}
	for _, q := range cfg.Providers.WarmupQueries {
		if q = strings.TrimSpace(q); q != "" {
			queries = append(queries, q)
		}
	}
	c.Warmup = scheduler.NewWarmup(cfg.Providers.WarmupIntervalMinute, queries, c.JobSearch, c.Internships, c.Cache, c.Hub, logger).
		WithSweeper(c.Retention)

	return c, nil
}

// Start launches background work: the cache warm-up cron.
func (c *Container) Start(ctx context.Context) error {
	if c == nil || c.Warmup == nil {
		return nil
	}
	return c.Warmup.Start(ctx)
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Warmup != nil {
		c.Warmup.Stop()
	}
	if c.Hub != nil {
		c.Hub.Stop()
	}
	if c.Cache != nil {
		_ = c.Cache.Close()
	}
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
