package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/job-tracker/internal/api"
	"github.com/maxaizer/job-tracker/internal/clients/adzuna"
	"github.com/maxaizer/job-tracker/internal/clients/gemini"
	"github.com/maxaizer/job-tracker/internal/clients/jooble"
	"github.com/maxaizer/job-tracker/internal/config"
	"github.com/maxaizer/job-tracker/internal/keywords"
	"github.com/maxaizer/job-tracker/internal/logger"
	"github.com/maxaizer/job-tracker/internal/metrics"
	"github.com/maxaizer/job-tracker/internal/notify"
	"github.com/maxaizer/job-tracker/internal/repositories"
	"github.com/maxaizer/job-tracker/internal/services"
	"github.com/maxaizer/job-tracker/internal/storage"
	"github.com/maxaizer/job-tracker/internal/textextract"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

func newResumeService(ctx context.Context, cfg *config.Config, jobs *repositories.Jobs) (*services.ResumeService, func()) {

	extractor, err := keywords.NewExtractor()
	if err != nil {
		log.Fatalf("can't create keyword extractor: %v", err)
	}

	resumes := services.NewResumeService(jobs, textextract.NewExtractor(), extractor)
	if !cfg.AI.Enabled() {
		log.Info("AI key is not set, resume review is disabled")
		return resumes, func() {}
	}

	aiClient, err := gemini.NewClient(ctx, cfg.AI.Key, gemini.Model(cfg.AI.Model))
	if err != nil {
		log.Fatalf("can't create AI client: %v", err)
	}
	aiClient.SetMinuteRateLimit(cfg.AI.MaxRequestsPerMinute)
	aiClient.SetDayRateLimit(cfg.AI.MaxRequestsPerDay)

	return resumes.WithReviewer(services.NewAIService(aiClient)), func() { _ = aiClient.Close() }
}

func newSearchService(cfg config.SearchConfig) *services.SearchService {

	httpClient := &http.Client{Timeout: cfg.Timeout}

	joobleClient := jooble.NewClient(cfg.JoobleAPIKey)
	joobleClient.SetBaseURL(cfg.JoobleURL)
	joobleClient.SetRateLimit(cfg.MaxRequestsPerSecond)
	joobleClient.SetHTTPClient(httpClient)

	adzunaClient := adzuna.NewClient(cfg.AdzunaAppID, cfg.AdzunaAppKey)
	adzunaClient.SetBaseURL(cfg.AdzunaURL)
	adzunaClient.SetCountry(cfg.AdzunaCountry)
	adzunaClient.SetRateLimit(cfg.MaxRequestsPerSecond)
	adzunaClient.SetHTTPClient(httpClient)

	return services.NewSearchService(joobleClient, adzunaClient, cfg.CacheTTL)
}

func subscribeNotifiers(cfg *config.Config, bus EventBus.Bus) {

	if cfg.Mail.Enabled() {
		mailer, err := notify.NewMailer(cfg.Mail)
		if err != nil {
			log.Fatalf("can't create mailer: %v", err)
		}
		if err = mailer.Subscribe(bus); err != nil {
			log.Fatalf("can't subscribe mailer: %v", err)
		}
		log.Infof("deadline reminders are mailed to %s", cfg.Mail.Recipient)
	}

	if cfg.Telegram.Enabled() {
		tg, err := notify.NewTelegram(cfg.Telegram.Token, cfg.Telegram.ChatID)
		if err != nil {
			log.Fatalf("can't create telegram notifier: %v", err)
		}
		if err = tg.Subscribe(bus); err != nil {
			log.Fatalf("can't subscribe telegram notifier: %v", err)
		}
	}
}

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Get()

	logger.Setup(ctx, cfg.Logger)
	defer logger.Cleanup()

	metrics.Register()

	dbContext, err := repositories.NewDbContext(cfg.DB)
	if err != nil {
		log.Fatalf("can't create db context: %v", err)
	}
	defer dbContext.Close()

	if cfg.DB.ResetOnStartup {
		if err = dbContext.Reset(); err != nil {
			log.Fatalf("can't reset db: %v", err)
		}
	}

	err = dbContext.Migrate()
	if err != nil {
		log.Fatalf("can't migrate db context: %v", err)
	}

	jobs := repositories.NewJobsRepository(dbContext.DB)
	if count, err := jobs.Count(ctx); err == nil {
		log.Infof("%d tracked jobs loaded", count)
	}

	bus := EventBus.New()

	resumeFiles, err := storage.NewResumes(cfg.Storage.UploadDir)
	if err != nil {
		log.Fatalf("can't create resume storage: %v", err)
	}
	if err = resumeFiles.Subscribe(bus); err != nil {
		log.Fatalf("can't subscribe resume storage: %v", err)
	}

	resumes, closeAI := newResumeService(ctx, cfg, jobs)
	defer closeAI()

	subscribeNotifiers(cfg, bus)

	reminders, err := services.NewReminderScheduler(jobs, bus, cfg.Reminders.Interval)
	if err != nil {
		log.Fatalf("can't create reminder scheduler: %v", err)
	}
	reminders.Start()

	handler := api.NewHandler(services.NewJobService(jobs, resumeFiles, bus), resumes, newSearchService(cfg.Search))
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      handler.Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Infof("listening on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server failed: %v", err)
		}
	}()

	<-ctx.Done()

	log.Info("Shutting down services...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err = server.Shutdown(shutdownCtx); err != nil {
		log.Errorf("http server shutdown: %v", err)
	}
	reminders.Stop()
	log.Info("Services stopped.")
}
