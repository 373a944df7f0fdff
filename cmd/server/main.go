package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/terrazza/bizplanner/internal/config"
	"github.com/terrazza/bizplanner/internal/metrics"
	"github.com/terrazza/bizplanner/internal/repository/memory"
	"github.com/terrazza/bizplanner/internal/repository/mongodb"
	"github.com/terrazza/bizplanner/internal/repository/sheets"
	"github.com/terrazza/bizplanner/internal/scheduler"
	"github.com/terrazza/bizplanner/internal/server/handlers"
	"github.com/terrazza/bizplanner/internal/server/router"
	plannersvc "github.com/terrazza/bizplanner/internal/service/planner"
	reportingsvc "github.com/terrazza/bizplanner/internal/service/reporting"
	scenariosvc "github.com/terrazza/bizplanner/internal/service/scenarios"
	whatsappsvc "github.com/terrazza/bizplanner/internal/service/whatsapp"
	"github.com/terrazza/bizplanner/pkg/clients/anthropic"
	"github.com/terrazza/bizplanner/pkg/clients/gemini"
	whatsappclient "github.com/terrazza/bizplanner/pkg/clients/whatsapp"
	"github.com/terrazza/bizplanner/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(logger.Options{
		Level:   cfg.Server.LogLevel,
		Format:  cfg.Server.LogFormat,
		Service: "bizplanner",
	}))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder, err := metrics.New(reg)
	if err != nil {
		baseLogger.Fatal("failed to register metrics", zap.Error(err))
	}

	var scenarioRepo scenariosvc.Repository
	if cfg.MongoDB.URI != "" {
		connectCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		mongoRepo, err := mongodb.NewMongoDBRepository(connectCtx, cfg.MongoDB.URI, cfg.MongoDB.DBName)
		cancel()
		if err != nil {
			baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
		}
		defer func() {
			if err := mongoRepo.Close(context.Background()); err != nil {
				baseLogger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}()
		scenarioRepo = mongoRepo
		baseLogger.Info("scenario store: mongodb", zap.String("db", cfg.MongoDB.DBName))
	} else {
		scenarioRepo = memory.NewRepository()
		baseLogger.Warn("MONGODB_URI not set, scenarios are kept in memory only")
	}

	reportOpts := reportingsvc.Options{Metrics: recorder}

	if cfg.Sheets.Enabled() {
		sheetsRepo, err := sheets.NewGoogleSheetRepository(context.Background(), cfg.Sheets, baseLogger)
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		reportOpts.Sheets = sheetsRepo
		baseLogger.Info("google sheets export enabled")
	}

	switch key := cfg.AI.NarratorKey(); {
	case key == "":
		baseLogger.Warn("ai api key missing, strategy reports disabled", zap.String("provider", cfg.AI.Provider))
	case cfg.AI.Provider == config.ProviderAnthropic:
		reportOpts.Narrator = anthropic.NewClient(key, anthropic.WithModel(cfg.AI.AnthropicModel))
		baseLogger.Info("anthropic narrator enabled", zap.String("model", cfg.AI.AnthropicModel))
	default:
		reportOpts.Narrator = gemini.NewClient(key, cfg.AI.GeminiModel)
		baseLogger.Info("gemini narrator enabled", zap.String("model", cfg.AI.GeminiModel))
	}

	if cfg.WhatsApp.Enabled() {
		reportOpts.Notifier = whatsappclient.NewClient(cfg.WhatsApp)
		reportOpts.Recipient = cfg.WhatsApp.DigestRecipient
		baseLogger.Info("whatsapp digest enabled")
	}

	loc := time.UTC
	if cfg.Reporting.Timezone != "" {
		if loc, err = time.LoadLocation(cfg.Reporting.Timezone); err != nil {
			baseLogger.Fatal("invalid timezone", zap.String("timezone", cfg.Reporting.Timezone), zap.Error(err))
		}
	}
	reportOpts.Location = loc

	rates := cfg.Planner.LaborRates()
	plannerSvc := plannersvc.NewService(rates, cfg.Planner.ProjectionMonths, recorder, baseLogger)
	scenarioSvc := scenariosvc.NewService(scenarioRepo, rates, recorder, baseLogger)
	reportingSvc := reportingsvc.NewService(reportOpts, baseLogger)

	routes := router.Handlers{
		Planner:   handlers.NewPlannerHandler(plannerSvc, logger.Component(baseLogger, "handlers.planner")),
		Scenarios: handlers.NewScenarioHandler(scenarioSvc, plannerSvc, logger.Component(baseLogger, "handlers.scenarios")),
		Reports:   handlers.NewReportHandler(reportingSvc, plannerSvc, scenarioSvc, logger.Component(baseLogger, "handlers.reports")),
		Metrics:   promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	}
	if cfg.WhatsApp.WebhookEnabled() {
		messagingSvc := whatsappsvc.NewMetaWhatsAppService(cfg.WhatsApp, plannerSvc, scenarioSvc, reportingSvc, whatsappclient.NewClient(cfg.WhatsApp), baseLogger)
		routes.Webhook = handlers.NewWebhookHandler(messagingSvc, logger.Component(baseLogger, "handlers.whatsapp"))
		baseLogger.Info("whatsapp operator webhook enabled")
	}
	engine := router.New(routes, logger.Component(baseLogger, "router"))

	if cfg.Reporting.CronSchedule != "" {
		sched := scheduler.NewScheduler(cfg.Reporting.CronSchedule, loc, plannerSvc, scenarioSvc, reportingSvc, baseLogger)
		if err := sched.Start(); err != nil {
			baseLogger.Fatal("failed to start scheduler", zap.Error(err))
		}
		defer sched.Stop()
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
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
