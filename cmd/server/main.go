package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/JesusCruzCelis/Sistema-Citas2/config"
	"github.com/JesusCruzCelis/Sistema-Citas2/internal/api/handler"
	"github.com/JesusCruzCelis/Sistema-Citas2/internal/api/router"
	"github.com/JesusCruzCelis/Sistema-Citas2/internal/notify"
	"github.com/JesusCruzCelis/Sistema-Citas2/internal/repository"
	"github.com/JesusCruzCelis/Sistema-Citas2/internal/service"
	"github.com/JesusCruzCelis/Sistema-Citas2/internal/worker"
	"github.com/JesusCruzCelis/Sistema-Citas2/pkg/database"
	"github.com/JesusCruzCelis/Sistema-Citas2/pkg/jwt"
	applogger "github.com/JesusCruzCelis/Sistema-Citas2/pkg/logger"
	"github.com/JesusCruzCelis/Sistema-Citas2/pkg/mailer"
	"github.com/JesusCruzCelis/Sistema-Citas2/pkg/redis"
)

func main() {
	// 1. configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading config failed: %v\n", err)
		os.Exit(1)
	}

	// 2. logging
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "initializing logger failed: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting up",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. database and migrations
	db, err := database.NewDB(&cfg.Database, logger)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	logger.Info("database connected")

	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("getting underlying sql.DB failed", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("migrations failed", zap.Error(err))
	}

	// 4. Redis, optional: without it the token blacklist and rate
	// limiting degrade to no-ops
	rdb, err := redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("redis unavailable, token blacklist disabled", zap.Error(err))
		rdb = nil
	}

	// 5. JWT manager
	jwtMgr := jwt.NewManager(&cfg.Auth)

	// 6. notification dispatcher, fed by the booking engine after commits
	appCtx, stop := context.WithCancel(context.Background())
	defer stop()

	dispatcher := notify.NewDispatcher(mailer.New(&cfg.Mail), cfg.Booking.NotificationQueueSize, logger)
	dispatcher.Start(appCtx)

	// 7. dependency wiring: repository → service → handler
	repo := repository.NewRepository(db)
	svc := service.NewService(cfg, repo, jwtMgr, rdb, dispatcher, logger)
	h := handler.NewHandler(svc)

	// 8. background status sweep
	refresher := worker.NewRefresher(repo.Appointment, cfg.Booking.StatusRefreshInterval, logger)
	go refresher.Run(appCtx)

	// 9. HTTP server with graceful shutdown
	engine := router.Setup(cfg, h, jwtMgr, rdb, logger)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("shutting down", zap.String("signal", sig.String()))
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
	}

	if closeDB, _ := db.DB(); closeDB != nil {
		closeDB.Close()
	}
	if rdb != nil {
		rdb.Close()
	}

	logger.Info("server stopped")
}
