package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/unifiedhq/usp-api/api/swagger"
	"github.com/unifiedhq/usp-api/internal/docstore"
	"github.com/unifiedhq/usp-api/internal/handler"
	"github.com/unifiedhq/usp-api/internal/middleware"
	"github.com/unifiedhq/usp-api/internal/repository"
	"github.com/unifiedhq/usp-api/internal/service"
	"github.com/unifiedhq/usp-api/pkg/cache"
	"github.com/unifiedhq/usp-api/pkg/config"
	"github.com/unifiedhq/usp-api/pkg/database"
	"github.com/unifiedhq/usp-api/pkg/logger"
	corsmiddleware "github.com/unifiedhq/usp-api/pkg/middleware/cors"
	reqidmiddleware "github.com/unifiedhq/usp-api/pkg/middleware/requestid"
)

// @title USP Platform API
// @version 0.1.0
// @description Program request lifecycle backend for branch programs
// @BasePath /api/v1
// @schemes http

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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	var metricsSvc *service.MetricsService
	if cfg.Metrics.Enabled {
		metricsSvc = service.NewMetricsService()
	}

	storeOpts := []docstore.PostgresOption{docstore.WithTimeout(cfg.Store.Timeout)}
	if metricsSvc != nil {
		storeOpts = append(storeOpts, docstore.WithObserver(metricsSvc.ObserveDBQuery))
	}
	store := docstore.NewPostgresStore(db, storeOpts...)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := store.EnsureSchema(ctx); err != nil {
		cancel()
		logr.Sugar().Fatalw("failed to ensure document schema", "error", err)
	}
	cancel()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, reference cache disabled", "error", err)
		redisClient = nil
	}

	requestRepo := repository.NewRequestRepository(store)
	approvalRepo := repository.NewApprovalRepository(store)
	eventRepo := repository.NewEventRepository(store)
	reportRepo := repository.NewReportRepository(store)
	evaluationRepo := repository.NewEvaluationRepository(store)
	branchRepo := repository.NewBranchRepository(store)
	roleRepo := repository.NewRoleRepository(store)
	userRepo := repository.NewUserRepository(store)
	resourceRepo := repository.NewResourceRepository(store)
	notificationRepo := repository.NewNotificationRepository(store)

	refOpts := []service.ReferenceServiceOption{}
	if redisClient != nil {
		refOpts = append(refOpts, service.WithReferenceCache(redisClient, cfg.Store.ReferenceTTL))
	}
	if metricsSvc != nil {
		refOpts = append(refOpts, service.WithCacheObserver(metricsSvc))
	}
	referenceSvc := service.NewReferenceService(branchRepo, roleRepo, userRepo, resourceRepo, logr, refOpts...)
	notificationSvc := service.NewNotificationService(notificationRepo, logr)

	requestSvc := service.NewRequestService(requestRepo, referenceSvc, logr)
	var approvalSvc *service.ApprovalService
	if cfg.Notifications.NotifyOnDecision {
		approvalSvc = service.NewApprovalService(approvalRepo, requestRepo, notificationSvc, logr)
	} else {
		approvalSvc = service.NewApprovalService(approvalRepo, requestRepo, nil, logr)
	}
	eventSvc := service.NewEventService(eventRepo, requestRepo, referenceSvc, logr)
	reportSvc := service.NewReportService(reportRepo, requestRepo, eventRepo, logr)
	evaluationSvc := service.NewEvaluationService(evaluationRepo, requestRepo, eventRepo, logr)

	handlers := handler.Handlers{
		Requests:      handler.NewRequestHandler(requestSvc),
		Approvals:     handler.NewApprovalHandler(approvalSvc),
		Events:        handler.NewEventHandler(eventSvc),
		Reports:       handler.NewReportHandler(reportSvc),
		Evaluations:   handler.NewEvaluationHandler(evaluationSvc),
		Reference:     handler.NewReferenceHandler(referenceSvc),
		Notifications: handler.NewNotificationHandler(notificationSvc),
		Schema:        handler.NewSchemaHandler(),
	}
	if cfg.Exports.Enabled {
		exportSvc := service.NewExportService(requestSvc, logr)
		handlers.Exports = handler.NewExportHandler(exportSvc)
	}

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	if metricsSvc != nil {
		r.Use(middleware.Metrics(metricsSvc))
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := store.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "store": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	if metricsSvc != nil {
		r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))
	}

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	handler.RegisterRoutes(r, cfg.APIPrefix, handlers)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
