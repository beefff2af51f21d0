package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/restocked/stocklog/internal/config"
	"github.com/restocked/stocklog/internal/entry"
	"github.com/restocked/stocklog/internal/repository"
	"github.com/restocked/stocklog/internal/repository/memory"
	"github.com/restocked/stocklog/internal/repository/mongodb"
	"github.com/restocked/stocklog/internal/repository/sheets"
	"github.com/restocked/stocklog/internal/scheduler"
	"github.com/restocked/stocklog/internal/server/handlers"
	"github.com/restocked/stocklog/internal/server/router"
	procurementsvc "github.com/restocked/stocklog/internal/service/procurement"
	reportingsvc "github.com/restocked/stocklog/internal/service/reporting"
	"github.com/restocked/stocklog/pkg/clients/recognition"
	"github.com/restocked/stocklog/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	var logRepo repository.LogRepository
	var reportStore repository.ReportStore

	switch cfg.Storage.Backend {
	case config.StorageMongo:
		mongoRepo, err := mongodb.NewMongoDBRepository(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
		if err != nil {
			baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
		}
		defer func() {
			if err := mongoRepo.Close(context.Background()); err != nil {
				baseLogger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}()
		logRepo = mongoRepo
		reportStore = mongoRepo
	default:
		memRepo := memory.NewRepository()
		logRepo = memRepo
		reportStore = memRepo
		baseLogger.Warn("using in-memory storage, logs are lost on restart")
	}

	var exporter sheets.Exporter
	if cfg.SheetsEnabled() {
		exporter, err = sheets.NewGoogleSheetExporter(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets exporter", zap.Error(err))
		}
	} else {
		baseLogger.Info("bookkeeping export disabled, sheets not configured")
	}

	var recognizer recognition.Recognizer
	if cfg.AI.AnthropicKey != "" {
		recognizer = recognition.NewClient(cfg.AI.AnthropicKey)
		baseLogger.Info("receipt recognition enabled")
	} else {
		baseLogger.Warn("anthropic api key missing, receipt recognition disabled")
	}

	entrySvc := procurementsvc.NewService(entry.DemoTemplates(), recognizer, logRepo, exporter, baseLogger.Named("svc.entry"))
	reportingSvc := reportingsvc.NewService(logRepo, baseLogger.Named("svc.reporting"))

	entryHandler := handlers.NewEntryHandler(entrySvc, baseLogger.Named("handlers.entry"))
	logHandler := handlers.NewLogHandler(logRepo, baseLogger.Named("handlers.logs"))
	dashboardHandler := handlers.NewDashboardHandler(reportingSvc, baseLogger.Named("handlers.dashboard"))
	engine := router.New(entryHandler, logHandler, dashboardHandler, baseLogger.Named("router"))

	sched := scheduler.NewScheduler(cfg.Reporting, reportingSvc, reportStore, exporter, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
