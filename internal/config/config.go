package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Session  SessionConfig
	Redis    RedisConfig
	Mail     MailConfig
	Admin    AdminConfig
	Upload   UploadConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
	BaseURL     string
	StaticDir   string
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	MigrationsDir string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration
}

type JWTConfig struct {
	Secret     string
	SessionTTL time.Duration
}

type SessionConfig struct {
	CookieName string
	Secure     bool
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	TTL      time.Duration
}

type MailConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	From        string
	SendTimeout time.Duration
}

// Enabled reports whether enough SMTP settings are present to send mail.
func (m MailConfig) Enabled() bool {
	return m.Host != "" && m.From != ""
}

type AdminConfig struct {
	Username string
	Email    string
	Password string
}

type UploadConfig struct {
	MaxResumeBytes int64
}

const (
	DefaultSessionCookie  = "userToken"
	DefaultMaxResumeBytes = 2 * 1024 * 1024
)

var errMissingRequiredEnv = errors.New("missing required environment variables")

func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{}

	var missing []string
	var invalid []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key string) string {
		return strings.TrimSpace(os.Getenv(key))
	}
	optDefault := func(key, def string) string {
		if v := opt(key); v != "" {
			return v
		}
		return def
	}
	optDuration := func(key string, def time.Duration) time.Duration {
		raw := opt(key)
		if raw == "" {
			return def
		}
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			invalid = append(invalid, key)
			return def
		}
		return d
	}
	optInt := func(key string, def int64) int64 {
		raw := opt(key)
		if raw == "" {
			return def
		}
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || v < 0 {
			invalid = append(invalid, key)
			return def
		}
		return v
	}

	cfg.App = AppConfig{
		AppName:     req("APP_NAME"),
		Environment: req("APP_ENV"),
		HTTPPort:    req("HTTP_PORT"),
		BaseURL:     strings.TrimRight(optDefault("DOMAIN", "http://localhost:3000"), "/"),
		StaticDir:   optDefault("STATIC_DIR", "./web"),
	}

	cfg.Database = DatabaseConfig{
		DBHost:                opt("DB_HOST"),
		DBPort:                opt("DB_PORT"),
		DBName:                opt("DB_NAME"),
		DBUser:                opt("DB_USER"),
		DBPassword:            opt("DB_PASSWORD"),
		DBSSLMode:             optDefault("DB_SSL_MODE", "disable"),
		MigrationsDir:         opt("MIGRATIONS_DIR"),
		ConnectTimeout:        optDuration("DB_CONNECT_TIMEOUT", 5*time.Second),
		PoolMaxConns:          int32(optInt("DB_POOL_MAX_CONNS", 0)),
		PoolMinConns:          int32(optInt("DB_POOL_MIN_CONNS", 0)),
		PoolMaxConnLifetime:   optDuration("DB_POOL_MAX_CONN_LIFETIME", time.Hour),
		PoolMaxConnIdleTime:   optDuration("DB_POOL_MAX_CONN_IDLE_TIME", 30*time.Minute),
		PoolHealthCheckPeriod: optDuration("DB_POOL_HEALTH_CHECK_PERIOD", time.Minute),
	}

	cfg.JWT = JWTConfig{
		Secret:     req("SECRET_KEY"),
		SessionTTL: optDuration("SESSION_TTL", 24*time.Hour),
	}

	cfg.Session = SessionConfig{
		CookieName: optDefault("SESSION_COOKIE", DefaultSessionCookie),
		Secure:     strings.EqualFold(opt("SESSION_COOKIE_SECURE"), "true"),
	}

	cfg.Redis = RedisConfig{
		Host:     optDefault("REDIS_HOST", "localhost"),
		Port:     optDefault("REDIS_PORT", "6379"),
		Password: opt("REDIS_PASSWORD"),
		TTL:      optDuration("REDIS_TTL", 10*time.Minute),
	}

	cfg.Mail = MailConfig{
		Host:        opt("EMAIL_HOST"),
		Port:        int(optInt("EMAIL_PORT", 465)),
		User:        opt("EMAIL_USER"),
		Password:    opt("EMAIL_PASS"),
		From:        opt("EMAIL_FROM"),
		SendTimeout: optDuration("EMAIL_SEND_TIMEOUT", 10*time.Second),
	}

	cfg.Admin = AdminConfig{
		Username: optDefault("ADMIN_USERNAME", "admin"),
		Email:    strings.ToLower(opt("ADMIN_EMAIL")),
		Password: opt("ADMIN_PASSWORD"),
	}

	cfg.Upload = UploadConfig{
		MaxResumeBytes: optInt("MAX_RESUME_BYTES", DefaultMaxResumeBytes),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment variables: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}
