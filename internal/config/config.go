// Package config reads runtime settings from the environment, after loading
// an optional .env file.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr    string
	DatabaseURL string
	LogLevel    string
	DevMode     bool
	CORSOrigins []string
	// TrustedProxies are CIDRs or addresses whose forwarded headers are
	// believed. Empty means the connection address is always the client.
	TrustedProxies []string
	// SecureCookies is off only for local development over plain HTTP.
	SecureCookies bool

	SupabaseURL       string
	SupabaseAnonKey   string
	SupabaseJWTSecret string

	WebhookURL     string
	RabbitMQURL    string
	ForwardTimeout time.Duration

	Mail Mail

	ShutdownTimeout time.Duration
}

type Mail struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	NotifyTo string
	// DashboardURL is linked from notices.
	DashboardURL string
}

// Enabled reports whether intake notices should be mailed.
func (m Mail) Enabled() bool {
	return m.Host != "" && m.NotifyTo != ""
}

// Load reads .env if present, then the environment.
func Load() Config {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() Config {
	dev := getEnv("APP_ENV", "production") == "development"
	return Config{
		HTTPAddr:          getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		DevMode:           dev,
		CORSOrigins:       splitList(getEnv("CORS_ORIGINS", "*")),
		TrustedProxies:    splitList(os.Getenv("TRUSTED_PROXIES")),
		SecureCookies:     !dev,
		SupabaseURL:       os.Getenv("SUPABASE_URL"),
		SupabaseAnonKey:   os.Getenv("SUPABASE_ANON_KEY"),
		SupabaseJWTSecret: os.Getenv("SUPABASE_JWT_SECRET"),
		WebhookURL:        os.Getenv("WEBHOOK_URL"),
		RabbitMQURL:       os.Getenv("RABBITMQ_URL"),
		ForwardTimeout:    getDuration("FORWARD_TIMEOUT", 10*time.Second),
		Mail: Mail{
			Host:         os.Getenv("MAIL_HOST"),
			Port:         getInt("MAIL_PORT", 587),
			User:         os.Getenv("MAIL_USER"),
			Password:     os.Getenv("MAIL_PASS"),
			From:         getEnv("MAIL_FROM", "no-reply@sclay.ai"),
			NotifyTo:     os.Getenv("NOTIFY_EMAIL"),
			DashboardURL: os.Getenv("DASHBOARD_URL"),
		},
		ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT", 15*time.Second),
	}
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil && d > 0 {
		return d
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
