// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/plmining/licensing-backend/internal/cache"
	"github.com/plmining/licensing-backend/internal/config"
	"github.com/plmining/licensing-backend/internal/database"
	"github.com/plmining/licensing-backend/internal/i18n"
	"github.com/plmining/licensing-backend/internal/router"
	"github.com/plmining/licensing-backend/internal/scheduler"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatal("Failed to load configuration: ", err)
	}

	setupLogging(cfg)

	// Initialize i18n
	if err := i18n.Initialize(cfg.I18n.DefaultLocale); err != nil {
		logrus.Fatal("Failed to initialize i18n: ", err)
	}

	// Initialize database
	db, err := database.Initialize(cfg.Database)
	if err != nil {
		logrus.Fatal("Failed to initialize database: ", err)
	}
	defer database.Close(db)

	if cfg.Database.AutoMigrate {
		if err := database.RunMigrations(cfg.Database.DSN()); err != nil {
			logrus.Fatal("Failed to run migrations: ", err)
		}
	}
	if cfg.Database.SeedOnStartup {
		if err := database.SeedInitialData(db, cfg.Seed); err != nil {
			logrus.Fatal("Failed to seed database: ", err)
		}
	}

	sessions, locker := setupCache(cfg)

	svc, err := router.NewServices(db, cfg, sessions)
	if err != nil {
		logrus.Fatal("Failed to initialize services: ", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := router.Initialize(db, cfg, svc)

	var jobs *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		jobs = scheduler.New(cfg.Scheduler.ExpiryDigestSpec, svc.Licenses, svc.Notifications, locker)
		if err := jobs.Start(); err != nil {
			logrus.Fatal("Failed to start scheduler: ", err)
		}
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		logrus.WithFields(logrus.Fields{
			"port":        cfg.Server.Port,
			"environment": cfg.Environment,
		}).Info("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatal("Failed to start server: ", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logrus.WithError(err).Error("Server forced to shutdown")
	}
	if jobs != nil {
		jobs.Stop()
	}

	logrus.Info("Server exited")
}

func setupLogging(cfg *config.Config) {
	if cfg.IsProduction() {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}

// setupCache uses Redis when REDIS_URL is set so that revoked sessions and
// job locks are shared across instances.
func setupCache(cfg *config.Config) (cache.SessionRevocationStore, cache.Locker) {
	sessionTTL := time.Duration(cfg.JWT.AccessTokenTTL) * time.Hour

	if cfg.Redis.URL == "" {
		logrus.Info("REDIS_URL not set, using in-process session store and job locks")
		return cache.NewMemorySessionRevocationStore(10000, sessionTTL), cache.NewLocalLocker()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := cache.Connect(ctx, cfg.Redis.URL)
	if err != nil {
		logrus.WithError(err).Warn("Redis unavailable, falling back to in-process session store")
		return cache.NewMemorySessionRevocationStore(10000, sessionTTL), cache.NewLocalLocker()
	}
	return cache.NewRedisSessionRevocationStore(client), cache.NewRedisLocker(client)
}
