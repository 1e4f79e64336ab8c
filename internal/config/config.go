package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress            string
	DatabaseURI           string
	TokenSecret           string
	CommissionRate        float64
	NotificationWorkers   int
	NotificationQueueSize int
	ShutdownTimeout       time.Duration
}

const (
	defaultRunAddress            = ":8080"
	defaultTokenSecret           = "change-me-in-production"
	defaultCommissionRate        = 0.05
	defaultNotificationWorkers   = 2
	defaultNotificationQueueSize = 64
	defaultShutdownTimeout       = 10 * time.Second
)

// Load parses configuration from .env (when present), environment variables
// and flags. CommissionRate keeps the raw configured value; normalization of
// percent-style values happens in the commission provider.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:            getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:           getString(lookup, "DATABASE_URI", ""),
		TokenSecret:           getString(lookup, "TOKEN_SECRET", defaultTokenSecret),
		CommissionRate:        getFloat(lookup, "COMMISSION_RATE", defaultCommissionRate),
		NotificationWorkers:   getInt(lookup, "NOTIFICATION_WORKERS", defaultNotificationWorkers),
		NotificationQueueSize: getInt(lookup, "NOTIFICATION_QUEUE_SIZE", defaultNotificationQueueSize),
		ShutdownTimeout:       getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	fs := flag.NewFlagSet("marketplace", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	shutdownTimeoutStr := cfg.ShutdownTimeout.String()

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.TokenSecret, "token-secret", cfg.TokenSecret, "Secret for signing auth tokens")
	fs.Float64Var(&cfg.CommissionRate, "commission-rate", cfg.CommissionRate, "Marketplace commission rate (fraction or percent)")
	fs.IntVar(&cfg.NotificationWorkers, "notification-workers", cfg.NotificationWorkers, "Number of notification dispatcher workers")
	fs.IntVar(&cfg.NotificationQueueSize, "notification-queue", cfg.NotificationQueueSize, "Notification dispatcher queue capacity")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error
	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("TOKEN_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read token secret file: %w", err)
		}
		cfg.TokenSecret = string(content)
	}

	if cfg.NotificationWorkers <= 0 {
		cfg.NotificationWorkers = defaultNotificationWorkers
	}

	if cfg.NotificationQueueSize <= 0 {
		cfg.NotificationQueueSize = defaultNotificationQueueSize
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getFloat(lookup envLookup, key string, def float64) float64 {
	if v, ok := lookup(key); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
