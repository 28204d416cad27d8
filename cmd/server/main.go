// Package main is the entry point for the dukapos API server.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"dukapos/internal/config"
	"dukapos/internal/domain/auth"
	v1 "dukapos/internal/infrastructure/http/v1"
	"dukapos/internal/infrastructure/storage/postgres"
	"dukapos/internal/infrastructure/storage/postgres/auth_repo"
	"dukapos/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.Log.Level,
		Development: cfg.IsDev(),
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	ctx := context.Background()
	log.Infow("starting dukapos server", "env", cfg.App.Env, "version", cfg.App.Version)

	// --- Migrations ---
	if cfg.Migrations.Auto {
		if err := runMigrations(cfg.Postgres.DSN, cfg.Migrations.Dir); err != nil {
			log.Fatalw("migrations failed", "error", err)
		}
		log.Info("migrations applied")
	}

	// --- Database ---
	poolCfg := postgres.DefaultPoolConfig(cfg.Postgres.DSN)
	if cfg.Postgres.MaxConns > 0 {
		poolCfg.MaxConns = cfg.Postgres.MaxConns
	}
	if cfg.Postgres.MinConns > 0 {
		poolCfg.MinConns = cfg.Postgres.MinConns
	}

	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("database connection established")

	txManager := postgres.NewTxManager(pool)

	activityLog, err := postgres.NewActivityLog(txManager)
	if err != nil {
		log.Fatalw("failed to initialize activity log", "error", err)
	}

	// --- Auth ---
	jwtConfig := auth.DefaultJWTConfig(cfg.Auth.JWTSecret)
	if cfg.Auth.AccessTokenTTL > 0 {
		jwtConfig.AccessTokenTTL = cfg.Auth.AccessTokenTTL
	}
	jwtService := auth.NewJWTService(jwtConfig)

	userRepo := auth_repo.NewUserRepo(txManager)
	authService := auth.NewService(userRepo, txManager, jwtService, auth.DefaultServiceConfig())

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Pool:         pool,
		TxManager:    txManager,
		Logger:       log,
		AuthService:  authService,
		ActivityLog:  activityLog,
		Version:      cfg.App.Version,
		CookieMaxAge: int(jwtConfig.AccessTokenTTL.Seconds()),
		CookieSecure: cfg.Auth.CookieSecure,
	})

	// --- HTTP Server ---
	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "addr", cfg.HTTP.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// Periodic pool stats for operational visibility.
	statsCtx, stopStats := context.WithCancel(ctx)
	defer stopStats()
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-statsCtx.Done():
				return
			case <-ticker.C:
				postgres.LogPoolStats(statsCtx, pool.Unwrap())
			}
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}

func runMigrations(dsn, dir string) error {
	sqlDB, err := goose.OpenDBWithDriver("pgx", dsn)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() { _ = sqlDB.Close() }()

	return goose.Up(sqlDB, dir)
}
