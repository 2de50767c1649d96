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

	"github.com/EnesCagri/kaankutuphane/config"
	"github.com/EnesCagri/kaankutuphane/internal/api/handler"
	"github.com/EnesCagri/kaankutuphane/internal/api/router"
	"github.com/EnesCagri/kaankutuphane/internal/repository"
	"github.com/EnesCagri/kaankutuphane/internal/service"
	"github.com/EnesCagri/kaankutuphane/pkg/database"
	"github.com/EnesCagri/kaankutuphane/pkg/jwt"
	applogger "github.com/EnesCagri/kaankutuphane/pkg/logger"
	"github.com/EnesCagri/kaankutuphane/pkg/metrics"
	"github.com/EnesCagri/kaankutuphane/pkg/redis"
)

func main() {
	// 1. Load configuration.
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading config failed: %v\n", err)
		os.Exit(1)
	}

	// 2. Logger.
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

	// 3. Database and migrations.
	db, err := database.NewDB(&cfg.Database, logger)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	logger.Info("database connected")

	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("getting the underlying sql.DB failed", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("database migration failed", zap.Error(err))
	}

	// 4. Redis is optional: without it the token blacklist and rate
	// limiting degrade to no-ops, the app still serves.
	var rdb *redis.Client
	rdb, err = redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("redis connection failed, token blacklist disabled", zap.Error(err))
		rdb = nil
	}

	// 5. JWT manager.
	jwtMgr := jwt.NewManager(&cfg.Auth)

	// 6. Prometheus collectors.
	m := metrics.InitMetrics()

	// 7. Dependency wiring: Repository → Service → Handler.
	repo := repository.NewRepository(db)
	svc := service.NewService(cfg, repo, jwtMgr, rdb, logger)
	h := handler.NewHandler(svc, m)

	// 8. Router.
	engine := router.Setup(cfg, h, jwtMgr, rdb, m, logger)

	// 9. HTTP server with graceful shutdown.
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

	logger.Info("shutdown signal received", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
	}

	closeDB, _ := db.DB()
	if closeDB != nil {
		closeDB.Close()
	}

	if rdb != nil {
		rdb.Close()
	}

	logger.Info("server stopped")
}
