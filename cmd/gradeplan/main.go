package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"

	"github.com/alexanderramin/gradeplan/internal/cache"
	"github.com/alexanderramin/gradeplan/internal/cli"
	"github.com/alexanderramin/gradeplan/internal/config"
	"github.com/alexanderramin/gradeplan/internal/db"
	"github.com/alexanderramin/gradeplan/internal/logger"
	"github.com/alexanderramin/gradeplan/internal/repository"
	"github.com/alexanderramin/gradeplan/internal/scheduler"
	"github.com/alexanderramin/gradeplan/internal/scraper"
	"github.com/alexanderramin/gradeplan/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log, err := logger.New(cfg.Env, cfg.Log)
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	creditRepo := repository.NewSQLiteCreditRepo(database)
	sectionRepo := repository.NewSQLiteSectionRepo(database)
	runRepo := repository.NewSQLitePlanRunRepo(database)
	uow := db.NewSQLiteUnitOfWork(database, db.WithLogger(log))

	// Redis is optional; without it the cache passes straight through.
	store := cache.NewStore(nil, log)
	redisCfg := cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		TTL:      cfg.Redis.TTL,
	}
	if redisCfg.Enabled() {
		client, err := cache.NewRedis(ctx, redisCfg)
		if err != nil {
			log.Warn("redis unavailable, continuing without section cache", zap.Error(err))
		} else {
			defer client.Close()
			store = cache.NewStore(client, log)
		}
	}
	sections := cache.NewSectionCache(sectionRepo, store, redisCfg.TTL)

	fetcher := scraper.New(scraper.Config{
		BaseURL: cfg.Scraper.BaseURL,
		Delay:   cfg.Scraper.Delay,
		Timeout: cfg.Scraper.Timeout,
	}, log.Named("scraper"))

	// Wire services
	observer := service.NewLogUseCaseObserver(log)
	catalogSvc := service.NewCatalogService(creditRepo, sections, uow, fetcher,
		service.WithCatalogLogger(log),
		service.WithCatalogObserver(observer),
	)
	planSvc := service.NewPlanService(catalogSvc, runRepo,
		service.WithSearchLimits(scheduler.Limits{MaxTerms: cfg.Search.MaxTerms, MaxPlans: cfg.Search.MaxPlans}),
		service.WithPlanLogger(log),
		service.WithPlanObserver(observer),
	)

	app := &cli.App{
		Plans:   planSvc,
		Catalog: catalogSvc,
		Import:  catalogSvc,
		Defaults: cli.Defaults{
			TopPlans: cfg.Search.TopPlans,
			MaxTerms: cfg.Search.MaxTerms,
		},
	}
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}
