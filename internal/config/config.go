package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	Port    string
	BaseURL string

	// Email transport
	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	SMTPFrom string

	// Where internal notifications (new leads, SMS fallback) land
	NotifyEmail string

	// Twilio; all three must be set or SMS falls back to email
	TwilioAccountSID  string
	TwilioAuthToken   string
	TwilioPhoneNumber string

	RecaptchaSecretKey string

	// Client list storage. DBURL takes precedence over the flat file.
	ClientsFile string
	DBURL       string

	RabbitMQURL string

	CORSOrigin string

	// Delivery tuning
	EmailBatchSize    int
	EmailBatchPause   time.Duration
	EmailMinInterval  time.Duration
	FollowupDelay     time.Duration
	SchedulerInterval time.Duration
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:               os.Getenv("PORT"),
		BaseURL:            os.Getenv("BASE_URL"),
		SMTPHost:           os.Getenv("SMTP_HOST"),
		SMTPPort:           intEnv("SMTP_PORT", 587),
		SMTPUser:           os.Getenv("SMTP_USER"),
		SMTPPass:           os.Getenv("SMTP_PASS"),
		SMTPFrom:           os.Getenv("SMTP_FROM"),
		NotifyEmail:        os.Getenv("NOTIFY_EMAIL"),
		TwilioAccountSID:   os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:    os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioPhoneNumber:  os.Getenv("TWILIO_PHONE_NUMBER"),
		RecaptchaSecretKey: os.Getenv("RECAPTCHA_SECRET_KEY"),
		ClientsFile:        os.Getenv("CLIENTS_FILE"),
		DBURL:              os.Getenv("DB_URL"),
		RabbitMQURL:        os.Getenv("RABBITMQ_URL"),
		CORSOrigin:         os.Getenv("CORS_ORIGIN"),
		EmailBatchSize:     intEnv("EMAIL_BATCH_SIZE", 5),
		EmailBatchPause:    secondsEnv("EMAIL_BATCH_PAUSE_SECONDS", 5),
		EmailMinInterval:   secondsEnv("EMAIL_MIN_INTERVAL_SECONDS", 2),
		FollowupDelay:      secondsEnv("FOLLOWUP_DELAY_SECONDS", 24*60*60),
		SchedulerInterval:  secondsEnv("SCHEDULER_INTERVAL_SECONDS", 30),
	}

	if cfg.SMTPHost == "" {
		log.Error().Msg("SMTP_HOST environment variable is not set")
		return nil, errors.New("SMTP_HOST is required")
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:" + cfg.Port
	}

	if cfg.ClientsFile == "" {
		cfg.ClientsFile = "data/clients.json"
	}

	if cfg.NotifyEmail == "" {
		cfg.NotifyEmail = cfg.SMTPUser
	}

	if cfg.SMTPFrom == "" {
		cfg.SMTPFrom = cfg.SMTPUser
	}

	if cfg.CORSOrigin == "" {
		cfg.CORSOrigin = "*"
		log.Info().Msg("CORS_ORIGIN not set, allowing all origins")
	}

	return cfg, nil
}

// TwilioConfigured reports whether all three Twilio credentials are present.
func (c *Config) TwilioConfigured() bool {
	return c.TwilioAccountSID != "" && c.TwilioAuthToken != "" && c.TwilioPhoneNumber != ""
}

func intEnv(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Warn().Str("key", key).Str("value", v).Msg("invalid integer env value, using default")
		return fallback
	}
	return n
}

func secondsEnv(key string, fallback int) time.Duration {
	return time.Duration(intEnv(key, fallback)) * time.Second
}
