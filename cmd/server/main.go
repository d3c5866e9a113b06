package main

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/wasatchbins/dumpster-leadgen/internal/config"
	"github.com/wasatchbins/dumpster-leadgen/internal/db"
	"github.com/wasatchbins/dumpster-leadgen/internal/domains/campaigns"
	"github.com/wasatchbins/dumpster-leadgen/internal/domains/clients"
	"github.com/wasatchbins/dumpster-leadgen/internal/domains/followups"
	"github.com/wasatchbins/dumpster-leadgen/internal/domains/leads"
	"github.com/wasatchbins/dumpster-leadgen/internal/domains/pages"
	"github.com/wasatchbins/dumpster-leadgen/internal/email"
	"github.com/wasatchbins/dumpster-leadgen/internal/health"
	"github.com/wasatchbins/dumpster-leadgen/internal/queue"
	"github.com/wasatchbins/dumpster-leadgen/internal/sms"
	"github.com/wasatchbins/dumpster-leadgen/internal/worker"
)

func main() {
	// Optional; production sets real environment variables
	godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	var dbConn *sql.DB
	if cfg.DBURL != "" {
		dbConn, err = db.Connect(cfg.DBURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer dbConn.Close()
	}

	var clientStore clients.Store
	var jobStore followups.JobStore
	if dbConn != nil {
		clientStore = clients.NewPGStore(dbConn)
		jobStore = followups.NewPGStore(dbConn)
	} else {
		clientStore = clients.NewFileStore(cfg.ClientsFile)
		jobStore = followups.NewMemoryStore()
		log.Warn().Msg("no database configured, follow-up jobs will not survive restarts")
	}

	var rabbitMQ *queue.RabbitMQ
	if cfg.RabbitMQURL != "" {
		rabbitMQ, err = queue.NewRabbitMQ(cfg.RabbitMQURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to RabbitMQ")
		}
		defer rabbitMQ.Close()
	}

	sender := buildSender(cfg)

	smsSender := buildSMSSender(cfg, sender)

	followupSvc := followups.NewService(jobStore, sender)
	campaignSvc := campaigns.NewService(clientStore, sender,
		campaigns.NewBatcher(cfg.EmailBatchSize, cfg.EmailBatchPause))
	leadSvc := leads.NewService(sender, followupSvc, cfg.NotifyEmail, cfg.FollowupDelay)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{cfg.CORSOrigin},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Route("/api", func(r chi.Router) {
		campaigns.NewHandler(campaignSvc).RegisterCampaignRoutes(r)
		followups.NewHandler(followupSvc, cfg.FollowupDelay).RegisterFollowupRoutes(r)
		leads.NewHandler(leadSvc, smsSender).RegisterLeadRoutes(r)

		r.Route("/pages", func(r chi.Router) {
			pages.NewHandler().RegisterPageRoutes(r)
		})
	})

	healthHandler := health.NewHandler(clientStore, dbConn, rabbitMQ)
	r.Get("/health", healthHandler.Health)

	// With a queue the scheduler only publishes job IDs; the worker
	// process does the sending. Without one it delivers inline.
	var publisher worker.Publisher
	if rabbitMQ != nil {
		publisher = rabbitMQ
	}
	scheduler := worker.NewScheduler(followupSvc, publisher, cfg.SchedulerInterval)
	go scheduler.Start()
	defer scheduler.Stop()

	log.Info().Msg("server starting on :" + cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}

// buildSender assembles the outbound email chain: SMTP at the bottom,
// the shared rate limiter above it, retry-on-throttle on top.
func buildSender(cfg *config.Config) email.Sender {
	var base email.Sender
	if cfg.SMTPHost == "mock" {
		base = email.NewMockSender(0.95)
		log.Warn().Msg("using mock email sender, no real mail will be delivered")
	} else {
		base = email.NewSMTPSender(email.SMTPConfig{
			Host: cfg.SMTPHost,
			Port: cfg.SMTPPort,
			User: cfg.SMTPUser,
			Pass: cfg.SMTPPass,
			From: cfg.SMTPFrom,
		})
	}

	limited := email.NewRateLimitedSender(base, email.NewRateLimiter(cfg.EmailMinInterval))
	return email.NewRetryingSender(limited)
}

func buildSMSSender(cfg *config.Config, emailSender email.Sender) sms.Sender {
	if cfg.TwilioConfigured() {
		return sms.NewTwilioSender(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioPhoneNumber)
	}
	log.Info().Msg("Twilio not configured, SMS will be relayed by email")
	return sms.NewEmailFallbackSender(emailSender, cfg.NotifyEmail)
}
