package main

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/career-guide-api/internal/handler"
	"github.com/noah-isme/career-guide-api/internal/middleware"
	"github.com/noah-isme/career-guide-api/internal/service"
	"github.com/noah-isme/career-guide-api/pkg/config"
	"github.com/noah-isme/career-guide-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/career-guide-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/career-guide-api/pkg/middleware/requestid"
)

type routerDeps struct {
	cfg         *config.Config
	logger      *zap.Logger
	metrics     *service.MetricsService
	tokens      *service.TokenService
	colleges    *service.CollegeService
	eligibility *service.EligibilityService
	readiness   map[string]handler.ReadinessCheck
}

func newRouter(deps routerDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(deps.logger))
	r.Use(corsmiddleware.New(deps.cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(deps.metrics))

	metricsHandler := handler.NewMetricsHandler(deps.metrics, deps.readiness)
	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	if deps.cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	admin := middleware.CatalogAdmin(deps.tokens)

	api := r.Group(deps.cfg.APIPrefix)
	api.Use(middleware.WithResponseMeta())

	eligibilityHandler := handler.NewEligibilityHandler(deps.eligibility, deps.logger)
	eligibility := api.Group("/eligibility", middleware.OptionalJWT(deps.tokens))
	eligibility.POST("/check", eligibilityHandler.Check)
	eligibility.POST("/export", eligibilityHandler.Export)

	collegeHandler := handler.NewCollegeHandler(deps.colleges)
	colleges := api.Group("/colleges")
	colleges.GET("", collegeHandler.List)
	colleges.GET("/:id", collegeHandler.Get)
	colleges.POST("", append(admin, middleware.Audit(deps.logger, "create", "college"), collegeHandler.Create)...)
	colleges.PUT("/:id", append(admin, middleware.Audit(deps.logger, "update", "college"), collegeHandler.Update)...)
	colleges.DELETE("/:id", append(admin, middleware.Audit(deps.logger, "delete", "college"), collegeHandler.Delete)...)

	api.GET("/metrics/summary", append(admin, metricsHandler.Snapshot)...)

	return r
}
