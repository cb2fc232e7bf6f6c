package main

import (
	"context"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/edu-sched/bwm-ilp-api/api/swagger"
	internalhandler "github.com/edu-sched/bwm-ilp-api/internal/handler"
	internalmiddleware "github.com/edu-sched/bwm-ilp-api/internal/middleware"
	"github.com/edu-sched/bwm-ilp-api/internal/repository"
	"github.com/edu-sched/bwm-ilp-api/internal/scheduler"
	"github.com/edu-sched/bwm-ilp-api/pkg/config"
	"github.com/edu-sched/bwm-ilp-api/pkg/database"
	"github.com/edu-sched/bwm-ilp-api/pkg/logger"
	corsmiddleware "github.com/edu-sched/bwm-ilp-api/pkg/middleware/cors"
	reqidmiddleware "github.com/edu-sched/bwm-ilp-api/pkg/middleware/requestid"
	"github.com/edu-sched/bwm-ilp-api/pkg/metrics"
	"github.com/edu-sched/bwm-ilp-api/pkg/workpool"
)

// @title BWM-ILP Timetable Scheduler API
// @version 0.1.0
// @description Solves a weekly university timetable as a BWM-weighted mixed-integer program.
// @BasePath /
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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	registry := metrics.New()
	metricsHandler := internalhandler.NewMetricsHandler(registry)

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to initialise database", "error", err)
	}
	defer db.Close()

	pool := workpool.New(workpool.Config{
		Workers:    cfg.Scheduler.WorkerCount,
		BufferSize: cfg.Scheduler.WorkerBacklog,
		Logger:     logr,
	})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	pool.Start(ctx)
	defer pool.Stop()

	datasetRepo := repository.NewDatasetRepository(db)
	entryRepo := repository.NewScheduleEntryRepository(db)

	schedulerSvc := scheduler.NewService(datasetRepo, entryRepo, pool, registry, logr, scheduler.Config{
		TimeLimit: cfg.Scheduler.TimeLimit,
		MaxNodes:  cfg.Scheduler.MaxNodes,
	})
	schedulerHandler := internalhandler.NewSchedulerHandler(schedulerSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(registry))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Health)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	datasets := api.Group("/datasets")
	datasets.POST("/:id/schedule", schedulerHandler.Solve)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
