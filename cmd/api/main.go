package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/digitallaunch/launchpad-backend/config"
	"github.com/digitallaunch/launchpad-backend/internal/bootstrap"
	"github.com/digitallaunch/launchpad-backend/internal/database"
	"github.com/digitallaunch/launchpad-backend/internal/landing"
	"github.com/digitallaunch/launchpad-backend/internal/pipeline"
	projecthttp "github.com/digitallaunch/launchpad-backend/internal/projects/http"
	"github.com/digitallaunch/launchpad-backend/internal/projects/repository"
	"github.com/digitallaunch/launchpad-backend/internal/projects/service"
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

	bootstrap.SetGinMode(cfg.App.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	migrator, err := database.NewMigrator(cfg.Database.DSN(), logger)
	if err != nil {
		logger.Fatal("migrator", zap.Error(err))
	}
	if err := migrator.Run(); err != nil {
		logger.Fatal("migrations", zap.Error(err))
	}
	migrator.Close()

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

	svc := service.NewProjectService(repo, statusCache, store, queue, logger)
	projectsHandler := projecthttp.NewHandler(svc, cfg.Uploads.MaxSize, logger)

	renderer, err := landing.NewRenderer()
	if err != nil {
		logger.Fatal("landing templates", zap.Error(err))
	}
	landingHandler := landing.NewHandler(repo, renderer, logger)

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: "launchpad-backend",
		Version:     cfg.App.Version,
		DB:          pool,
		Redis:       rdb,
		Projects:    projectsHandler,
		Landing:     landingHandler,
		Logger:      logger,
	})

	// The API binary carries an in-process worker so a single deployment
	// unit serves uploads end to end. cmd/worker runs the same loop
	// standalone when the pipeline is scaled out separately.
	runner := pipeline.NewRunner(repo, statusCache, store, logger, cfg.Pipeline)
	worker := pipeline.NewWorker(queue, runner, logger)
	go worker.Start(ctx)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("api listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}
