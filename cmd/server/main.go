package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	natsevents "github.com/ogurasousui/compliance-grpc-clean-arch/internal/adapters/events/nats"
	compliancev1 "github.com/ogurasousui/compliance-grpc-clean-arch/internal/adapters/grpc/compliancev1"
	"github.com/ogurasousui/compliance-grpc-clean-arch/internal/adapters/grpc/handler"
	"github.com/ogurasousui/compliance-grpc-clean-arch/internal/adapters/repository/postgres"
	"github.com/ogurasousui/compliance-grpc-clean-arch/internal/core/access"
	"github.com/ogurasousui/compliance-grpc-clean-arch/internal/core/audit"
	"github.com/ogurasousui/compliance-grpc-clean-arch/internal/core/catalog"
	"github.com/ogurasousui/compliance-grpc-clean-arch/internal/core/document"
	"github.com/ogurasousui/compliance-grpc-clean-arch/internal/core/employee"
	"github.com/ogurasousui/compliance-grpc-clean-arch/internal/core/schedule"
	"github.com/ogurasousui/compliance-grpc-clean-arch/internal/platform/config"
	pg "github.com/ogurasousui/compliance-grpc-clean-arch/internal/platform/db/postgres"
	"github.com/ogurasousui/compliance-grpc-clean-arch/internal/platform/logging"
	"github.com/ogurasousui/compliance-grpc-clean-arch/internal/platform/metrics"
	"github.com/ogurasousui/compliance-grpc-clean-arch/internal/platform/resilience"
	"github.com/ogurasousui/compliance-grpc-clean-arch/internal/platform/server"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
)

func main() {
	// .env はローカル開発用。存在しなくてもよい
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn().Err(err).Msg("failed to load .env")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "assets/local.yaml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize logger")
	}

	defaults, err := cfg.Compliance.Settings()
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid compliance settings")
	}

	dbPool, err := pg.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize database pool")
	}
	defer dbPool.Close()

	m := metrics.New()

	journalOpts := []audit.Option{audit.WithLogger(logger)}
	if cfg.Events.Enabled {
		publisher, err := connectPublisher(cfg.Events, m, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect event publisher")
		}
		defer publisher.Close()
		journalOpts = append(journalOpts, audit.WithPublisher(publisher))
	}

	tx := pg.NewTransactionManager(dbPool)
	journal := audit.NewJournal(postgres.NewApprovalRecordRepository(dbPool), journalOpts...)
	gate := access.NewGate(postgres.NewUserRepository(dbPool))
	settingsRepo := postgres.NewSettingsRepository(dbPool, defaults)
	employeeRepo := postgres.NewEmployeeRepository(dbPool)

	documentSvc := document.NewService(document.Dependencies{
		Repo:     postgres.NewDocumentRepository(dbPool),
		Owners:   postgres.NewCompanyRepository(dbPool),
		Catalog:  catalog.NewService(postgres.NewCatalogRepository(dbPool)),
		Journal:  journal,
		Gate:     gate,
		Tx:       tx,
		Recorder: m,
	})
	employeeSvc := employee.NewService(employee.Dependencies{
		Repo:      employeeRepo,
		Documents: documentSvc,
		Settings:  settingsRepo,
		Journal:   journal,
		Gate:      gate,
		Tx:        tx,
		Recorder:  m,
	})
	scheduler := schedule.NewScheduler(schedule.Dependencies{
		Repo:      employeeRepo,
		Documents: documentSvc,
		Settings:  settingsRepo,
		Journal:   journal,
		Gate:      gate,
		Tx:        tx,
		Recorder:  m,
	})

	grpcServer := server.New(server.Options{
		ListenAddr: cfg.Server.ListenAddr,
		Logger:     logger,
		Observer:   m,
		Limiter:    server.NewRateLimiter(cfg.Server.RateLimit.RPS, cfg.Server.RateLimit.Burst),
		Services: map[string]server.Registrar{
			compliancev1.DocumentServiceName: func(r grpc.ServiceRegistrar) {
				compliancev1.RegisterDocumentServiceServer(r, handler.NewDocumentGrpcHandler(documentSvc))
			},
			compliancev1.IntegrationServiceName: func(r grpc.ServiceRegistrar) {
				compliancev1.RegisterIntegrationServiceServer(r, handler.NewIntegrationGrpcHandler(employeeSvc, scheduler))
			},
		},
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return grpcServer.Run(gctx)
	})
	if cfg.Metrics.Enabled {
		metricsServer := server.NewHTTPServer(cfg.Metrics.ListenAddr, cfg.Metrics.Path, m.Handler(), cfg.Server.ShutdownTimeout, logger)
		g.Go(func() error {
			return metricsServer.Run(gctx)
		})
	}

	if err := g.Wait(); err != nil {
		logger.Fatal().Err(err).Msg("server stopped with error")
	}
	logger.Info().Msg("server stopped")
}

func connectPublisher(cfg config.EventsConfig, m *metrics.Metrics, logger zerolog.Logger) (*natsevents.Publisher, error) {
	execCfg := resilience.DefaultConfig()
	execCfg.RetryMaxAttempts = cfg.RetryMaxAttempts
	execCfg.BreakerEnabled = cfg.BreakerEnabled

	return natsevents.Connect(cfg.NATSURL, cfg.Subject, natsevents.Options{
		ConnectTimeout: cfg.ConnectTimeout,
		MaxReconnects:  cfg.MaxReconnects,
		Executor:       resilience.NewExecutor(execCfg, logger),
		Observer:       m,
		Logger:         logger,
	})
}
