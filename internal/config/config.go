// Package config はアプリケーション設定の読み込みを提供する。
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config はアプリケーション全体の設定を保持する。
// 環境変数から起動時に1回読み込み、イミュータブルとして扱う。
type Config struct {
	// API
	APIBaseURL     string
	RequestTimeout time.Duration

	// Rate Limit（送信リクエストのクライアント側制限）
	RateLimitRPS   float64
	RateLimitBurst int

	// Session
	SessionDBPath string

	// Import
	ImportMaxPosts    int
	ImportFetchLimit  int64
	ImportUserTimeout time.Duration

	// Metrics（空の場合はメトリクスサーバーを起動しない）
	MetricsAddr string
}

// Load は環境変数からConfigを読み込む。
// 必須環境変数が未設定の場合はエラーを返す。
func Load() (*Config, error) {
	cfg := &Config{}

	// Required fields
	var missing []string

	cfg.APIBaseURL = os.Getenv("BLOG_API_BASE_URL")
	if cfg.APIBaseURL == "" {
		missing = append(missing, "BLOG_API_BASE_URL")
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("required environment variables are not set: %v", missing)
	}

	// Optional fields with defaults
	cfg.RequestTimeout = getEnvDuration("REQUEST_TIMEOUT", 10*time.Second)
	cfg.RateLimitRPS = getEnvFloat("RATE_LIMIT_RPS", 5)
	cfg.RateLimitBurst = getEnvInt("RATE_LIMIT_BURST", 10)
	cfg.SessionDBPath = getEnvString("SESSION_DB_PATH", defaultSessionDBPath())
	cfg.ImportMaxPosts = getEnvInt("IMPORT_MAX_POSTS", 20)
	cfg.ImportFetchLimit = getEnvInt64("IMPORT_FETCH_LIMIT", 5242880)
	cfg.ImportUserTimeout = getEnvDuration("IMPORT_TIMEOUT", 30*time.Second)
	cfg.MetricsAddr = getEnvString("METRICS_ADDR", "")

	return cfg, nil
}

// defaultSessionDBPath はセッションストアのデフォルト保存先を返す。
// ユーザーのホームディレクトリが取得できない場合はカレントディレクトリに置く。
func defaultSessionDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "blogman_session.db"
	}
	return home + "/.blogman/session.db"
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvInt64(key string, defaultVal int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvFloat(key string, defaultVal float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return defaultVal
	}
	return f
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}
