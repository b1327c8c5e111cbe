package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jobhunterpro/jobhunter/internal/autoapply"
	"github.com/jobhunterpro/jobhunter/internal/config"
	"github.com/jobhunterpro/jobhunter/internal/job"
	"github.com/jobhunterpro/jobhunter/internal/letter"
	"github.com/jobhunterpro/jobhunter/internal/mailer"
	"github.com/jobhunterpro/jobhunter/internal/notify"
	"github.com/jobhunterpro/jobhunter/internal/platform/sqlite"
	apprepo "github.com/jobhunterpro/jobhunter/internal/repository/application"
	autoapplyrepo "github.com/jobhunterpro/jobhunter/internal/repository/autoapply"
	jobrepo "github.com/jobhunterpro/jobhunter/internal/repository/job"
	statsrepo "github.com/jobhunterpro/jobhunter/internal/repository/stats"
	"github.com/jobhunterpro/jobhunter/internal/scoring"
	"github.com/jobhunterpro/jobhunter/internal/scrape"
	"github.com/jobhunterpro/jobhunter/internal/scrape/adzuna"
	"github.com/jobhunterpro/jobhunter/internal/server"
	"github.com/jobhunterpro/jobhunter/internal/stats"
)

func main() {
	cfg := config.Load()

	// Root context: cancelled on SIGINT/SIGTERM so in-flight ingest and
	// auto-apply passes stop promptly during graceful shutdown.
	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	// Open database
	db, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	// Repositories
	jobRepo := jobrepo.NewRepository(db.DB)
	appRepo := apprepo.NewRepository(db.DB)
	settingsRepo := autoapplyrepo.NewSettingsRepository(db.DB)
	logRepo := autoapplyrepo.NewLogRepository(db.DB)
	statsRepo := statsrepo.NewRepository(db.DB)

	// Scraper registry
	registry := scrape.NewRegistry()
	if cfg.AdzunaAppID != "" && cfg.AdzunaAppKey != "" {
		registry.Register(adzuna.New(cfg.AdzunaAppID, cfg.AdzunaAppKey))
	} else {
		slog.Warn("adzuna credentials not set, source disabled")
	}

	// Notifier
	var notifier job.Notifier = notify.Noop{}
	if tg, err := notify.NewTelegram(cfg.TelegramToken, cfg.TelegramChatID); err != nil {
		slog.Warn("telegram notifications disabled", "reason", err)
	} else {
		notifier = tg
	}

	// Cover letters: model-generated when a key is configured, template
	// otherwise; the chain falls back to the template on model failures.
	profile := letter.Profile(cfg.Profile)
	generators := []letter.Generator{}
	if cfg.OpenAIKey != "" {
		ai, err := letter.NewOpenAI(cfg.OpenAIKey, profile)
		if err != nil {
			slog.Warn("AI cover letters disabled", "reason", err)
		} else {
			generators = append(generators, ai)
		}
	}
	generators = append(generators, letter.NewTemplate(profile))
	letters := letter.NewChain(generators...)

	// Mail transport is optional; without it auto-apply degrades to
	// manual-guide notifications with prepared cover letters.
	var mail autoapply.Mailer
	if m, err := mailer.New(mailer.Config{
		Server:   cfg.MailServer,
		Username: cfg.MailUsername,
		Password: cfg.MailPassword,
		From:     cfg.MailFrom,
		CVPath:   cfg.CVPath,
	}, profile); err != nil {
		slog.Warn("mail transport disabled", "reason", err)
	} else {
		mail = m
	}

	// Services
	statsSvc := stats.NewService(statsRepo, jobRepo)
	jobSvc := job.NewService(jobRepo, appRepo, statsSvc, notifier)
	scorer := scoring.NewScorer(scoring.DefaultWeights())
	scrapeSvc := scrape.NewService(registry, jobRepo, statsSvc, scorer, cfg.MinScore, cfg.Workers)
	autoApplySvc := autoapply.NewService(jobRepo, appRepo, settingsRepo, logRepo, statsSvc, letters, mail, notifier)

	// Background loop: ingest then one auto-apply pass per tick, serialized.
	loopDone := make(chan struct{})
	go func() {
		defer close(loopDone)
		runPipeline(rootCtx, scrapeSvc, autoApplySvc)

		ticker := time.NewTicker(cfg.ScrapeInterval)
		defer ticker.Stop()
		for {
			select {
			case <-rootCtx.Done():
				return
			case <-ticker.C:
				runPipeline(rootCtx, scrapeSvc, autoApplySvc)
			}
		}
	}()

	// rootCtx is used as BaseContext so every request context inherits
	// from it and is cancelled on shutdown.
	srv := server.New(rootCtx, cfg.Port, server.Services{
		Jobs:      jobSvc,
		Scrape:    scrapeSvc,
		AutoApply: autoApplySvc,
		Stats:     statsSvc,
	})

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	slog.Info("server started", "port", cfg.Port)
	<-done

	// Cancel root context first so the background loop and in-flight
	// requests begin winding down immediately.
	rootCancel()
	<-loopDone

	// Then drain connections with a deadline.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
	slog.Info("server stopped")
}

func runPipeline(ctx context.Context, scrapeSvc *scrape.Service, autoApplySvc *autoapply.Service) {
	if ctx.Err() != nil {
		return
	}
	if len(scrapeSvc.Sources()) > 0 {
		if _, err := scrapeSvc.Run(ctx); err != nil {
			slog.Error("scheduled ingest failed", "error", err)
		}
	}
	if _, err := autoApplySvc.Run(ctx); err != nil {
		slog.Error("scheduled auto-apply failed", "error", err)
	}
}
