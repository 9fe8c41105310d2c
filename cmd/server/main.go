// cmd/server/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/javajoker/florist-backend/internal/catalog"
	"github.com/javajoker/florist-backend/internal/config"
	"github.com/javajoker/florist-backend/internal/database"
	"github.com/javajoker/florist-backend/internal/i18n"
	"github.com/javajoker/florist-backend/internal/router"
	"github.com/javajoker/florist-backend/internal/services"
	"github.com/javajoker/florist-backend/internal/storage"
	"github.com/javajoker/florist-backend/internal/utils"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	if cfg.Environment == "production" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
		gin.SetMode(gin.ReleaseMode)
	} else {
		logrus.SetLevel(logrus.DebugLevel)
	}

	if err := i18n.Initialize(); err != nil {
		logrus.WithError(err).Fatal("Failed to initialize i18n")
	}

	utils.SetSessionSecret(cfg.Session.SecretKey)

	store, cat, closeStore, err := openStorage(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize storage")
	}
	defer closeStore()

	notifications := services.NewNotificationService(cfg)
	sessions := services.NewSessionManager(store, cat, cfg, notifications)

	ctx, stop := context.WithCancel(context.Background())
	sweeperDone := make(chan struct{})
	go func() {
		sessions.Run(ctx)
		close(sweeperDone)
	}()

	r := router.Initialize(cfg, cat, sessions)

	srv := router.NewServer(cfg.Server, r)

	go func() {
		logrus.WithFields(logrus.Fields{
			"port":    cfg.Server.Port,
			"storage": cfg.Storage.Backend,
		}).Info("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Server forced to shutdown")
	}

	// Pending drafts are flushed before storage closes
	stop()
	<-sweeperDone

	logrus.Info("Server exited")
}

// openStorage selects the slot store backend. The postgres backend also
// serves the catalog from the products table.
func openStorage(cfg *config.Config) (storage.Storage, *catalog.Catalog, func(), error) {
	switch cfg.Storage.Backend {
	case "postgres":
		db, err := database.Initialize(cfg.Database)
		if err != nil {
			return nil, nil, nil, err
		}
		cat, err := preparePostgres(db, cfg.Database)
		if err != nil {
			database.Close(db)
			return nil, nil, nil, err
		}
		return storage.NewGormStore(db), cat, func() { database.Close(db) }, nil

	case "s3":
		store, err := storage.NewS3Store(cfg.AWS)
		if err != nil {
			return nil, nil, nil, err
		}
		return store, catalog.Default(), func() {}, nil

	default:
		logrus.Warn("Using in-memory storage; carts are lost on restart")
		return storage.NewMemoryStore(), catalog.Default(), func() {}, nil
	}
}

func preparePostgres(db *gorm.DB, cfg config.DatabaseConfig) (*catalog.Catalog, error) {
	if err := database.RunMigrations(db); err != nil {
		return nil, err
	}
	if cfg.SeedCatalog {
		if err := database.SeedCatalog(db, catalog.Default()); err != nil {
			return nil, err
		}
	}
	return database.LoadCatalog(db)
}
