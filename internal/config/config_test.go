package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func lookupFrom(values map[string]string) envLookup {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(nil, lookupFrom(map[string]string{
		"DATABASE_URI":    "postgres://localhost/civiseek",
		"GATEWAY_ADDRESS": "http://gateway",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.RunAddress != ":8080" {
		t.Fatalf("expected default run address, got %q", cfg.RunAddress)
	}
	if cfg.PollInterval != 3*time.Second {
		t.Fatalf("expected 3s poll interval, got %v", cfg.PollInterval)
	}
	if cfg.MaxPollAttempts != 12 {
		t.Fatalf("expected 12 poll attempts, got %d", cfg.MaxPollAttempts)
	}
	if cfg.OrderNumberPrefix != "CS" {
		t.Fatalf("expected CS prefix, got %q", cfg.OrderNumberPrefix)
	}
	if cfg.ReconcileGrace != 10*time.Minute {
		t.Fatalf("expected 10m reconcile grace, got %v", cfg.ReconcileGrace)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	cfg, err := load(nil, lookupFrom(map[string]string{
		"DATABASE_URI":      "postgres://localhost/civiseek",
		"GATEWAY_ADDRESS":   "http://gateway",
		"RUN_ADDRESS":       ":9999",
		"POLL_INTERVAL":     "500ms",
		"MAX_POLL_ATTEMPTS": "5",
		"WORKER_POOL_SIZE":  "2",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.RunAddress != ":9999" {
		t.Fatalf("expected env run address, got %q", cfg.RunAddress)
	}
	if cfg.PollInterval != 500*time.Millisecond {
		t.Fatalf("expected env poll interval, got %v", cfg.PollInterval)
	}
	if cfg.MaxPollAttempts != 5 {
		t.Fatalf("expected env poll attempts, got %d", cfg.MaxPollAttempts)
	}
	if cfg.WorkerPoolSize != 2 {
		t.Fatalf("expected env worker pool, got %d", cfg.WorkerPoolSize)
	}
}

func TestLoadFlagsOverrideEnv(t *testing.T) {
	cfg, err := load(
		[]string{"-a", ":7777", "-poll-interval", "1s", "-poll-attempts", "3"},
		lookupFrom(map[string]string{
			"DATABASE_URI":    "postgres://localhost/civiseek",
			"GATEWAY_ADDRESS": "http://gateway",
			"RUN_ADDRESS":     ":9999",
			"POLL_INTERVAL":   "500ms",
		}),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.RunAddress != ":7777" {
		t.Fatalf("expected flag run address, got %q", cfg.RunAddress)
	}
	if cfg.PollInterval != time.Second {
		t.Fatalf("expected flag poll interval, got %v", cfg.PollInterval)
	}
	if cfg.MaxPollAttempts != 3 {
		t.Fatalf("expected flag poll attempts, got %d", cfg.MaxPollAttempts)
	}
}

func TestLoadRequiresDatabaseURI(t *testing.T) {
	if _, err := load(nil, lookupFrom(map[string]string{"GATEWAY_ADDRESS": "http://gateway"})); err == nil {
		t.Fatal("expected error without database URI")
	}
}

func TestLoadRequiresGatewayAddress(t *testing.T) {
	if _, err := load(nil, lookupFrom(map[string]string{"DATABASE_URI": "postgres://localhost/db"})); err == nil {
		t.Fatal("expected error without gateway address")
	}
}

func TestLoadJWTSecretFile(t *testing.T) {
	dir := t.TempDir()
	secretPath := filepath.Join(dir, "secret")
	if err := os.WriteFile(secretPath, []byte("file-secret"), 0o600); err != nil {
		t.Fatalf("write secret file: %v", err)
	}
	cfg, err := load(nil, lookupFrom(map[string]string{
		"DATABASE_URI":    "postgres://localhost/civiseek",
		"GATEWAY_ADDRESS": "http://gateway",
		"JWT_SECRET_FILE": secretPath,
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.JWTSecret != "file-secret" {
		t.Fatalf("expected secret from file, got %q", cfg.JWTSecret)
	}
}

func TestLoadSanitizesNonPositiveValues(t *testing.T) {
	cfg, err := load(nil, lookupFrom(map[string]string{
		"DATABASE_URI":      "postgres://localhost/civiseek",
		"GATEWAY_ADDRESS":   "http://gateway",
		"MAX_POLL_ATTEMPTS": "-1",
		"WORKER_POOL_SIZE":  "0",
		"RECONCILE_BATCH":   "-5",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.MaxPollAttempts != 12 {
		t.Fatalf("expected default poll attempts, got %d", cfg.MaxPollAttempts)
	}
	if cfg.WorkerPoolSize != 4 {
		t.Fatalf("expected default worker pool, got %d", cfg.WorkerPoolSize)
	}
	if cfg.ReconcileBatch != 32 {
		t.Fatalf("expected default reconcile batch, got %d", cfg.ReconcileBatch)
	}
}

func TestLoadRejectsBadFlag(t *testing.T) {
	if _, err := load([]string{"-poll-interval", "nonsense"}, lookupFrom(map[string]string{
		"DATABASE_URI":    "postgres://localhost/civiseek",
		"GATEWAY_ADDRESS": "http://gateway",
	})); err == nil {
		t.Fatal("expected error for invalid poll interval")
	}
}
