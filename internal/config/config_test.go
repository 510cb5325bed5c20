package config

import (
	"testing"
	"time"
)

func setRequiredEnvVars(t *testing.T) {
	t.Helper()
	t.Setenv("BLOG_API_BASE_URL", "http://localhost:3000")
}

func TestLoad_AllRequiredVarsSet_ReturnsConfig(t *testing.T) {
	setRequiredEnvVars(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.APIBaseURL != "http://localhost:3000" {
		t.Errorf("APIBaseURL = %q, want %q", cfg.APIBaseURL, "http://localhost:3000")
	}
}

func TestLoad_MissingRequiredVar_ReturnsError(t *testing.T) {
	t.Setenv("BLOG_API_BASE_URL", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing BLOG_API_BASE_URL, got nil")
	}
}

func TestLoad_DefaultValues(t *testing.T) {
	setRequiredEnvVars(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.RequestTimeout != 10*time.Second {
		t.Errorf("RequestTimeout = %v, want %v", cfg.RequestTimeout, 10*time.Second)
	}
	if cfg.RateLimitRPS != 5 {
		t.Errorf("RateLimitRPS = %v, want 5", cfg.RateLimitRPS)
	}
	if cfg.RateLimitBurst != 10 {
		t.Errorf("RateLimitBurst = %d, want 10", cfg.RateLimitBurst)
	}
	if cfg.ImportMaxPosts != 20 {
		t.Errorf("ImportMaxPosts = %d, want 20", cfg.ImportMaxPosts)
	}
	if cfg.ImportFetchLimit != 5242880 {
		t.Errorf("ImportFetchLimit = %d, want 5242880", cfg.ImportFetchLimit)
	}
	if cfg.ImportUserTimeout != 30*time.Second {
		t.Errorf("ImportUserTimeout = %v, want %v", cfg.ImportUserTimeout, 30*time.Second)
	}
	if cfg.MetricsAddr != "" {
		t.Errorf("MetricsAddr = %q, want empty", cfg.MetricsAddr)
	}
	if cfg.SessionDBPath == "" {
		t.Error("SessionDBPath should have a default value")
	}
}

func TestLoad_OverrideValues(t *testing.T) {
	setRequiredEnvVars(t)
	t.Setenv("REQUEST_TIMEOUT", "5s")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("RATE_LIMIT_BURST", "3")
	t.Setenv("SESSION_DB_PATH", "/tmp/test-session.db")
	t.Setenv("IMPORT_MAX_POSTS", "50")
	t.Setenv("METRICS_ADDR", ":9090")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.RequestTimeout != 5*time.Second {
		t.Errorf("RequestTimeout = %v, want 5s", cfg.RequestTimeout)
	}
	if cfg.RateLimitRPS != 2.5 {
		t.Errorf("RateLimitRPS = %v, want 2.5", cfg.RateLimitRPS)
	}
	if cfg.RateLimitBurst != 3 {
		t.Errorf("RateLimitBurst = %d, want 3", cfg.RateLimitBurst)
	}
	if cfg.SessionDBPath != "/tmp/test-session.db" {
		t.Errorf("SessionDBPath = %q, want /tmp/test-session.db", cfg.SessionDBPath)
	}
	if cfg.ImportMaxPosts != 50 {
		t.Errorf("ImportMaxPosts = %d, want 50", cfg.ImportMaxPosts)
	}
	if cfg.MetricsAddr != ":9090" {
		t.Errorf("MetricsAddr = %q, want :9090", cfg.MetricsAddr)
	}
}

func TestLoad_InvalidOptionalValue_FallsBackToDefault(t *testing.T) {
	setRequiredEnvVars(t)
	t.Setenv("REQUEST_TIMEOUT", "not-a-duration")
	t.Setenv("RATE_LIMIT_BURST", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.RequestTimeout != 10*time.Second {
		t.Errorf("RequestTimeout = %v, want default 10s", cfg.RequestTimeout)
	}
	if cfg.RateLimitBurst != 10 {
		t.Errorf("RateLimitBurst = %d, want default 10", cfg.RateLimitBurst)
	}
}
