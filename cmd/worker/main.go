package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/digitallaunch/launchpad-backend/config"
	"github.com/digitallaunch/launchpad-backend/internal/bootstrap"
	"github.com/digitallaunch/launchpad-backend/internal/pipeline"
	"github.com/digitallaunch/launchpad-backend/internal/projects/repository"
	"github.com/digitallaunch/launchpad-backend/internal/storage/artifacts"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := bootstrap.NewLogger(cfg.App.Environment, cfg.App.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := bootstrap.OpenDB(ctx, bootstrap.DBOptions{DSN: cfg.Database.DSN()})
	if err != nil {
		logger.Fatal("postgres", zap.Error(err))
	}
	defer pool.Close()

	rdb, err := bootstrap.OpenRedis(ctx, cfg.Redis)
	if err != nil {
		logger.Fatal("redis", zap.Error(err))
	}
	defer rdb.Close()

	repo := repository.NewRepo(pool)
	statusCache := repository.NewStatusCache(rdb)
	store := artifacts.NewDiskStore(cfg.Uploads.Dir)
	queue := pipeline.NewQueue(rdb)

	runner := pipeline.NewRunner(repo, statusCache, store, logger, cfg.Pipeline)
	worker := pipeline.NewWorker(queue, runner, logger)

	worker.Start(ctx)
	logger.Info("pipeline worker stopped")
}
