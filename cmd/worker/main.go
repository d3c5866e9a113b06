package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/wasatchbins/dumpster-leadgen/internal/config"
	"github.com/wasatchbins/dumpster-leadgen/internal/db"
	"github.com/wasatchbins/dumpster-leadgen/internal/domains/followups"
	"github.com/wasatchbins/dumpster-leadgen/internal/email"
	"github.com/wasatchbins/dumpster-leadgen/internal/queue"
	"github.com/wasatchbins/dumpster-leadgen/internal/worker"
)

// The worker process needs both the durable job store and the queue;
// an in-memory store would not see the server's jobs.
func main() {
	godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	if cfg.DBURL == "" {
		log.Fatal().Msg("DB_URL is required for the worker")
	}
	if cfg.RabbitMQURL == "" {
		log.Fatal().Msg("RABBITMQ_URL is required for the worker")
	}

	dbConn, err := db.Connect(cfg.DBURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer dbConn.Close()

	rabbitMQ, err := queue.NewRabbitMQ(cfg.RabbitMQURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to RabbitMQ")
	}
	defer rabbitMQ.Close()

	sender := buildSender(cfg)
	svc := followups.NewService(followups.NewPGStore(dbConn), sender)
	w := worker.NewWorker(rabbitMQ, svc)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		log.Info().Str("signal", sig.String()).Msg("received signal, shutting down")
		cancel()
	}()

	if err := w.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("worker failed")
	}

	log.Info().Msg("worker stopped")
}

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
