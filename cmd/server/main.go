package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aristath/tennis-value-engine/internal/analyzer"
	"github.com/aristath/tennis-value-engine/internal/cloudmirror"
	"github.com/aristath/tennis-value-engine/internal/config"
	"github.com/aristath/tennis-value-engine/internal/database"
	"github.com/aristath/tennis-value-engine/internal/elo"
	"github.com/aristath/tennis-value-engine/internal/exchange"
	"github.com/aristath/tennis-value-engine/internal/ingest"
	"github.com/aristath/tennis-value-engine/internal/notify"
	"github.com/aristath/tennis-value-engine/internal/resolver"
	"github.com/aristath/tennis-value-engine/internal/scheduler"
	"github.com/aristath/tennis-value-engine/internal/server"
	"github.com/aristath/tennis-value-engine/internal/store"
	"github.com/aristath/tennis-value-engine/internal/suggester"
	"github.com/aristath/tennis-value-engine/internal/tracker"
	"github.com/aristath/tennis-value-engine/pkg/logger"
)

func main() {
	log := logger.New(logger.Config{
		Level:  "info",
		Pretty: true,
	})
	logger.SetGlobalLogger(log)

	log.Info().Msg("Starting tennis value engine")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log = logger.New(logger.Config{Level: cfg.LogLevel, Pretty: cfg.Pretty})

	db, err := database.New(database.Config{
		Path:    cfg.DataDir + "/engine.db",
		Profile: database.ProfileStandard,
		Name:    "engine",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply schema")
	}

	st := store.New(db, log)

	res := resolver.NewTableResolver(st, nil)
	an := analyzer.NewAnalyzer(st, log)
	sg := suggester.New(an, st, suggester.Config{
		EVThreshold:   cfg.EVThreshold,
		KellyFraction: cfg.KellyFraction,
		UnitPct:       cfg.BankrollUnitPct,
		MinUnits:      cfg.MinStakeUnits,
		MaxUnits:      cfg.MaxStakeUnits,
	}, log)

	exchangeClient := exchange.NewHTTPClient(
		cfg.ExchangeBaseURL, cfg.ExchangeAppKey, cfg.ExchangeUsername, cfg.ExchangePassword,
		time.Duration(cfg.HTTPTimeoutSeconds)*time.Second, log,
	)
	if err := exchangeClient.Login(); err != nil {
		log.Warn().Err(err).Msg("Exchange login failed at startup, will retry on next job run")
	}

	var mirror cloudmirror.Mirror = cloudmirror.NopMirror{}
	if cfg.CloudMirrorEnabled {
		s3Mirror, err := cloudmirror.NewS3Mirror(context.Background(), cfg.CloudMirrorBucket, cfg.CloudMirrorRegion, "", log)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to initialize cloud mirror, continuing without it")
		} else {
			mirror = s3Mirror
		}
	}

	var notifier notify.Notifier = notify.NopNotifier{}
	if cfg.NotifyWebhookURL != "" {
		notifier = notify.NewWebhookNotifier(cfg.NotifyWebhookURL, time.Duration(cfg.HTTPTimeoutSeconds)*time.Second, log)
	}

	sched := scheduler.New(log)
	sched.Start()
	defer sched.Stop()

	captureJob := scheduler.NewCaptureJob(exchangeClient, res, st, 7*24*time.Hour, log)
	ingestor := ingest.NewCompletedMatchIngestor(exchangeClient, res, st, st, "exchange", log)
	settler := tracker.NewSettler(st, st, st, notifier, cfg.CommissionRate, log)
	settleJob := scheduler.NewSettlementJob(ingestor, settler, log)
	eloCalculator := elo.NewCalculator(st, st, log)
	eloJob := scheduler.NewEloJob(eloCalculator, cfg.RollingWindowMonths, log)
	maintenanceJob := scheduler.NewMaintenanceJob(db, log)

	captureSchedule := fmt.Sprintf("0 */%d * * * *", cfg.CaptureIntervalMinutes)
	if err := sched.AddJob(captureSchedule, captureJob); err != nil {
		log.Fatal().Err(err).Msg("Failed to register capture job")
	}
	if err := sched.AddJob(captureSchedule, settleJob); err != nil {
		log.Fatal().Err(err).Msg("Failed to register settlement job")
	}
	// Elo ratings only need to move once the day's matches have settled.
	if err := sched.AddJob("0 0 4 * * *", eloJob); err != nil {
		log.Fatal().Err(err).Msg("Failed to register elo job")
	}
	// WAL checkpoint and integrity check during the quietest part of the day.
	if err := sched.AddJob("0 30 3 * * *", maintenanceJob); err != nil {
		log.Fatal().Err(err).Msg("Failed to register maintenance job")
	}

	srv := server.New(server.Config{
		Log:        log,
		Store:      st,
		Scheduler:  sched,
		CaptureJob: captureJob,
		SettleJob:  settleJob,
		Suggester:  sg,
		Analyzer:   an,
		Mirror:     mirror,
		Notifier:   notifier,
		Port:       cfg.Port,
		AutoMode:   cfg.AutoMode,
		DevMode:    cfg.LogLevel == "debug",
	})

	go func() {
		if err := srv.Start(); err != nil {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Int("port", cfg.Port).Msg("Server started successfully")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
