// Command travelbook-backend serves the travel-booking REST API.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/gtwndtl/travelbook-backend/config"
	"github.com/gtwndtl/travelbook-backend/entity"
	"github.com/gtwndtl/travelbook-backend/router"
	"github.com/gtwndtl/travelbook-backend/services"
)

func main() {
	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("config", zap.Error(err))
	}

	db, err := config.ConnectDB(cfg)
	if err != nil {
		logger.Fatal("database connect", zap.Error(err))
	}
	defer func() { _ = config.CloseDB(db) }()

	if err := config.SetupDatabase(db); err != nil {
		logger.Fatal("database migrate", zap.Error(err))
	}
	if cfg.SeedDemo {
		if err := config.SeedDemoData(db); err != nil {
			logger.Fatal("seed", zap.Error(err))
		}
		logger.Info("demo data seeded")
	}
	if cfg.PlacesXLSX != "" {
		n, err := config.LoadPlacesXLSX(db, cfg.PlacesXLSX)
		if err != nil {
			logger.Fatal("places import", zap.Error(err))
		}
		logger.Info("places imported", zap.Int("count", n))
	}

	store, err := services.NewDiskStore(cfg.UploadDir, cfg.BaseURL)
	if err != nil {
		logger.Fatal("upload dir", zap.Error(err))
	}

	engine := router.Setup(router.Deps{
		DB:  db,
		Jwt: &services.JwtWrapper{SecretKey: cfg.JWTSecret, Issuer: "travelbook", TTL: cfg.TokenTTL},
		Store: store,
		Verifiers: map[string]services.ProviderVerifier{
			entity.ProviderGoogle:   &services.GoogleVerifier{},
			entity.ProviderFacebook: &services.FacebookVerifier{},
		},
		Logger:    logger,
		UploadDir: cfg.UploadDir,
	})

	srv := &http.Server{Addr: cfg.Addr(), Handler: engine}

	go func() {
		logger.Info("listening", zap.String("addr", cfg.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("serve", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}
