package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/eduardo-dangelo/manager-pro-sub002/config"
	"github.com/eduardo-dangelo/manager-pro-sub002/internal/database"
	"github.com/eduardo-dangelo/manager-pro-sub002/internal/router"
	"github.com/eduardo-dangelo/manager-pro-sub002/pkg/cloudinary"
	"github.com/eduardo-dangelo/manager-pro-sub002/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	zl, err := logger.New(cfg.Server.Env, cfg.Log.Level)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer zl.Sync()

	db, err := database.NewDB(&cfg.Database)
	if err != nil {
		zl.Fatal("database", zap.Error(err))
	}
	if err := database.AutoMigrate(db); err != nil {
		zl.Fatal("migrate", zap.Error(err))
	}

	var cloud cloudinary.Client
	if cfg.Cloudinary.CloudName != "" {
		cloud, err = cloudinary.NewClientFromParams(cfg.Cloudinary.CloudName, cfg.Cloudinary.APIKey, cfg.Cloudinary.APISecret)
		if err != nil {
			zl.Fatal("cloudinary", zap.Error(err))
		}
	} else {
		zl.Info("cloudinary not configured, uploads disabled")
	}

	engine, reminderSvc := router.Setup(router.Deps{
		Cfg:    cfg,
		DB:     db,
		Cloud:  cloud,
		Logger: zl,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Reminder.PollEnabled {
		reminderSvc.StartPoller(ctx)
		zl.Info("reminder poller started", zap.Duration("interval", cfg.Reminder.PollInterval))
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		zl.Info("server listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zl.Fatal("listen", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zl.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Fatal("server shutdown", zap.Error(err))
	}
	zl.Info("server stopped")
}
