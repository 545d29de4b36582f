package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	httphandler "github.com/ogurasousui/codex-minhex/internal/adapters/http/handler"
	"github.com/ogurasousui/codex-minhex/internal/adapters/publisher/instrumented"
	pubmem "github.com/ogurasousui/codex-minhex/internal/adapters/publisher/memory"
	repomem "github.com/ogurasousui/codex-minhex/internal/adapters/repository/memory"
	"github.com/ogurasousui/codex-minhex/internal/adapters/repository/postgres"
	"github.com/ogurasousui/codex-minhex/internal/core/user"
	"github.com/ogurasousui/codex-minhex/internal/platform/config"
	pg "github.com/ogurasousui/codex-minhex/internal/platform/db/postgres"
	"github.com/ogurasousui/codex-minhex/internal/platform/logging"
	"github.com/ogurasousui/codex-minhex/internal/platform/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(config.PathFromEnv())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := logging.New(cfg.Log, os.Stdout)
	slog.SetDefault(logger)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	var (
		repo    user.Repository
		svcOpts = []user.Option{user.WithLogger(logger)}
	)
	switch cfg.Repository.Driver {
	case config.DriverPostgres:
		dbPool, err := pg.NewPool(ctx, cfg.Database)
		if err != nil {
			return fmt.Errorf("initialize database pool: %w", err)
		}
		defer dbPool.Close()

		repo = postgres.NewUserRepository(dbPool)
		svcOpts = append(svcOpts, user.WithTransactionManager(pg.NewTransactionManager(dbPool)))
	default:
		repo = repomem.NewUserRepository()
	}

	publisher := instrumented.NewEventPublisher(pubmem.NewEventPublisher(logger), reg)
	userSvc := user.NewService(repo, publisher, svcOpts...)

	grpcServer := server.New(cfg.Server.ListenAddr, userSvc, logger)
	httpServer := server.NewHTTP(cfg.Server.HTTPAddr, httphandler.NewRouter(userSvc, reg, logger), cfg.Server.ShutdownTimeout)

	logger.Info("starting servers",
		slog.String("grpc_addr", cfg.Server.ListenAddr),
		slog.String("http_addr", cfg.Server.HTTPAddr),
		slog.String("repository", cfg.Repository.Driver),
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return grpcServer.Run(ctx) })
	g.Go(func() error { return httpServer.Run(ctx) })

	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info("servers stopped")
	return nil
}
