package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress        string
	DatabaseURI       string
	GatewayAddress    string
	JWTSecret         string
	OrderNumberPrefix string

	PollInterval    time.Duration
	MaxPollAttempts int

	ReconcileInterval time.Duration
	ReconcileGrace    time.Duration
	ReconcileBatch    int
	WorkerPoolSize    int

	ShutdownTimeout time.Duration
}

const (
	defaultRunAddress        = ":8080"
	defaultJWTSecret         = "change-me-in-production"
	defaultOrderNumberPrefix = "CS"
	defaultPollInterval      = 3 * time.Second
	defaultMaxPollAttempts   = 12
	defaultReconcileInterval = time.Minute
	defaultReconcileGrace    = 10 * time.Minute
	defaultReconcileBatch    = 32
	defaultWorkerPoolSize    = 4
	defaultShutdownTimeout   = 10 * time.Second
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:        getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:       getString(lookup, "DATABASE_URI", ""),
		GatewayAddress:    getString(lookup, "GATEWAY_ADDRESS", ""),
		JWTSecret:         getString(lookup, "JWT_SECRET", defaultJWTSecret),
		OrderNumberPrefix: getString(lookup, "ORDER_NUMBER_PREFIX", defaultOrderNumberPrefix),
		PollInterval:      getDuration(lookup, "POLL_INTERVAL", defaultPollInterval),
		MaxPollAttempts:   getInt(lookup, "MAX_POLL_ATTEMPTS", defaultMaxPollAttempts),
		ReconcileInterval: getDuration(lookup, "RECONCILE_INTERVAL", defaultReconcileInterval),
		ReconcileGrace:    getDuration(lookup, "RECONCILE_GRACE", defaultReconcileGrace),
		ReconcileBatch:    getInt(lookup, "RECONCILE_BATCH", defaultReconcileBatch),
		WorkerPoolSize:    getInt(lookup, "WORKER_POOL_SIZE", defaultWorkerPoolSize),
		ShutdownTimeout:   getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	fs := flag.NewFlagSet("civiseek", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		pollIntervalStr    = cfg.PollInterval.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.GatewayAddress, "g", cfg.GatewayAddress, "Order gateway base URL")
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", cfg.JWTSecret, "Secret for signing auth tokens")
	fs.StringVar(&cfg.OrderNumberPrefix, "order-prefix", cfg.OrderNumberPrefix, "Merchant order number prefix")
	fs.StringVar(&pollIntervalStr, "poll-interval", pollIntervalStr, "Interval between payment status checks")
	fs.IntVar(&cfg.MaxPollAttempts, "poll-attempts", cfg.MaxPollAttempts, "Maximum payment status checks per purchase")
	fs.IntVar(&cfg.WorkerPoolSize, "worker-pool", cfg.WorkerPoolSize, "Number of concurrent reconcile workers")
	fs.IntVar(&cfg.ReconcileBatch, "reconcile-batch", cfg.ReconcileBatch, "Maximum orders per reconcile batch")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.PollInterval, err = time.ParseDuration(pollIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid poll interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("JWT_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read jwt secret file: %w", err)
		}
		cfg.JWTSecret = string(content)
	}

	if cfg.PollInterval <= 0 {
		cfg.PollInterval = defaultPollInterval
	}

	if cfg.MaxPollAttempts <= 0 {
		cfg.MaxPollAttempts = defaultMaxPollAttempts
	}

	if cfg.ReconcileInterval <= 0 {
		cfg.ReconcileInterval = defaultReconcileInterval
	}

	if cfg.ReconcileGrace <= 0 {
		cfg.ReconcileGrace = defaultReconcileGrace
	}

	if cfg.ReconcileBatch <= 0 {
		cfg.ReconcileBatch = defaultReconcileBatch
	}

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.GatewayAddress == "" {
		return nil, fmt.Errorf("order gateway address must be provided")
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

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
