package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	_ "github.com/noah-isme/career-guide-api/api/swagger"
	"github.com/noah-isme/career-guide-api/internal/handler"
	"github.com/noah-isme/career-guide-api/internal/repository"
	"github.com/noah-isme/career-guide-api/internal/service"
	"github.com/noah-isme/career-guide-api/pkg/cache"
	"github.com/noah-isme/career-guide-api/pkg/catalog"
	"github.com/noah-isme/career-guide-api/pkg/config"
	"github.com/noah-isme/career-guide-api/pkg/database"
	"github.com/noah-isme/career-guide-api/pkg/logger"
)

// @title Career Guide API
// @version 1.0.0
// @description College catalog and eligibility checks for students
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metricsSvc := service.NewMetricsService()
	validate := service.NewValidator()
	readiness := map[string]handler.ReadinessCheck{}

	var repo service.CollegeRepository
	switch cfg.Catalog.Source {
	case config.CatalogSourceStatic:
		colleges, err := catalog.Load(cfg.Catalog.SeedPath)
		if err != nil {
			logr.Fatal("failed to load catalog seed", zap.String("path", cfg.Catalog.SeedPath), zap.Error(err))
		}
		logr.Info("serving static catalog", zap.String("path", cfg.Catalog.SeedPath), zap.Int("colleges", len(colleges)))
		repo = repository.NewStaticCollegeRepository(colleges)
	default:
		db, err := database.NewPostgres(ctx, cfg.Database)
		if err != nil {
			logr.Fatal("failed to connect to postgres", zap.Error(err))
		}
		defer db.Close()
		readiness["postgres"] = db.PingContext
		repo = repository.NewCollegeRepository(db, metricsSvc)
	}

	var catalogCache *service.CatalogCache
	if cfg.Catalog.CacheEnabled {
		client, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, catalog cache disabled", zap.Error(err))
		} else {
			cacheRepo := repository.NewCacheRepository(client, "career-guide", logr)
			defer cacheRepo.Close() //nolint:errcheck
			readiness["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
			catalogCache = service.NewCatalogCache(cacheRepo, metricsSvc, cfg.Catalog.CacheTTL, logr)
		}
	}

	collegeSvc := service.NewCollegeService(repo, catalogCache, validate, logr)
	eligibilitySvc := service.NewEligibilityService(service.EligibilityServiceParams{
		Catalog:        collegeSvc,
		BorderlineBand: cfg.Eligibility.BorderlineBand,
		Metrics:        metricsSvc,
		Validator:      validate,
		Logger:         logr,
	})
	tokenSvc := service.NewTokenService(service.TokenConfig{
		Secret:   cfg.JWT.Secret,
		Issuer:   cfg.JWT.Issuer,
		Audience: cfg.JWT.Audience,
	})

	router := newRouter(routerDeps{
		cfg:         cfg,
		logger:      logr,
		metrics:     metricsSvc,
		tokens:      tokenSvc,
		colleges:    collegeSvc,
		eligibility: eligibilitySvc,
		readiness:   readiness,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "catalog_source", cfg.Catalog.Source)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
	logr.Info("server stopped")
}
