package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"recipe-planner/internal/api"
	"recipe-planner/internal/core/ai/anthropic"
	"recipe-planner/internal/core/ai/cache"
	aiservice "recipe-planner/internal/core/ai/service"
	"recipe-planner/internal/core/history"
	"recipe-planner/internal/core/plan"
	"recipe-planner/internal/infrastructure/config"
	"recipe-planner/internal/infrastructure/database"
	"recipe-planner/internal/pkg/common"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := common.InitLogger(cfg.LogLevel); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	cacheStore, err := cache.New(cfg)
	if err != nil {
		common.LogFatal("failed to initialize cache", zap.Error(err))
	}

	var historyStore plan.HistoryStore
	if cfg.History.Enabled {
		db, err := database.New(cfg.History.DBPath)
		if err != nil {
			// History is an enhancement; run without it rather than refuse to start.
			common.LogWarn("failed to open history database, continuing without history",
				zap.String("db_path", cfg.History.DBPath),
				zap.Error(err),
			)
		} else {
			defer db.Close()
			historyStore = history.New(db.SQL)
		}
	}

	generator := aiservice.New(cfg, anthropic.NewClient(cfg), cacheStore)
	defer generator.Close()

	planService := plan.NewService(generator, historyStore,
		cfg.Anthropic.MaxTokensBatch, cfg.Anthropic.MaxTokensSingle)

	router := api.SetupRouter(cfg, planService)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		common.LogInfo("starting application",
			zap.String("version", cfg.App.Version),
			zap.String("env", cfg.App.Env),
			zap.Bool("debug", cfg.App.Debug),
			zap.Int("port", cfg.Server.Port),
		)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			common.LogError("failed to start server", zap.Error(err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	common.LogInfo("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		common.LogError("server forced to shutdown", zap.Error(err))
		os.Exit(1)
	}

	common.LogInfo("server exited")
}
