package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Upload   UploadConfig
	Auth     AuthConfig
	Admin    AdminConfig
}

type AppConfig struct {
	AppName        string
	Environment    string
	HTTPPort       string
	LogLevel       slog.Level
	AutoMigrate    bool
	LoginRateLimit int
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	TTL      time.Duration
}

type JWTConfig struct {
	Secret    string
	ExpiresIn time.Duration
}

type UploadConfig struct {
	Dir      string
	MaxBytes int64
}

type AuthConfig struct {
	AllowedEmailDomain string
}

// AdminConfig holds the operator credential used only by the admin seeder.
type AdminConfig struct {
	Email     string
	Password  string
	Bootstrap bool
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.App.Environment, "production")
}

// Load reads the process environment. A .env file in the working directory is
// applied first when present; real environment variables win over it.
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
	opt := func(key, def string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			return def
		}
		return v
	}
	dur := func(key string, def time.Duration) time.Duration {
		raw := strings.TrimSpace(os.Getenv(key))
		if raw == "" {
			return def
		}
		d, err := time.ParseDuration(raw)
		if err != nil || d < 0 {
			invalid = append(invalid, key)
			return def
		}
		return d
	}
	num := func(key string, def int64) int64 {
		raw := strings.TrimSpace(os.Getenv(key))
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
	flag := func(key string, def bool) bool {
		raw := strings.TrimSpace(os.Getenv(key))
		if raw == "" {
			return def
		}
		v, err := strconv.ParseBool(raw)
		if err != nil {
			invalid = append(invalid, key)
			return def
		}
		return v
	}

	cfg.App = AppConfig{
		AppName:        opt("APP_NAME", "careerlink"),
		Environment:    opt("APP_ENV", "development"),
		HTTPPort:       opt("HTTP_PORT", "5000"),
		LogLevel:       parseLogLevel(opt("LOG_LEVEL", "info")),
		AutoMigrate:    flag("MIGRATIONS_AUTO", true),
		LoginRateLimit: int(num("LOGIN_RATE_LIMIT", 10)),
	}

	cfg.Database = DatabaseConfig{
		DBHost:                req("DB_HOST"),
		DBPort:                opt("DB_PORT", "5432"),
		DBName:                req("DB_NAME"),
		DBUser:                req("DB_USER"),
		DBPassword:            os.Getenv("DB_PASSWORD"),
		DBSSLMode:             opt("DB_SSL_MODE", "disable"),
		ConnectTimeout:        dur("DB_CONNECT_TIMEOUT", 5*time.Second),
		PoolMaxConns:          int32(num("DB_POOL_MAX_CONNS", 10)),
		PoolMinConns:          int32(num("DB_POOL_MIN_CONNS", 0)),
		PoolMaxConnLifetime:   dur("DB_POOL_MAX_CONN_LIFETIME", time.Hour),
		PoolMaxConnIdleTime:   dur("DB_POOL_MAX_CONN_IDLE_TIME", 30*time.Minute),
		PoolHealthCheckPeriod: dur("DB_POOL_HEALTH_CHECK_PERIOD", time.Minute),
	}

	cfg.Redis = RedisConfig{
		Host:     opt("REDIS_HOST", "localhost"),
		Port:     opt("REDIS_PORT", "6379"),
		Password: os.Getenv("REDIS_PASSWORD"),
		TTL:      time.Duration(num("REDIS_TTL", 600)) * time.Second,
	}

	cfg.JWT = JWTConfig{
		Secret:    req("JWT_SECRET"),
		ExpiresIn: dur("JWT_EXPIRES_IN", 7*24*time.Hour),
	}

	cfg.Upload = UploadConfig{
		Dir:      opt("UPLOAD_DIR", "./uploads"),
		MaxBytes: num("UPLOAD_MAX_BYTES", 5*1024*1024),
	}

	cfg.Auth = AuthConfig{
		AllowedEmailDomain: strings.ToLower(opt("ALLOWED_EMAIL_DOMAIN", "gmail.com")),
	}

	cfg.Admin = AdminConfig{
		Email:     strings.ToLower(strings.TrimSpace(os.Getenv("ADMIN_EMAIL"))),
		Password:  os.Getenv("ADMIN_PASSWORD"),
		Bootstrap: flag("ADMIN_BOOTSTRAP", false),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment variables: %s", strings.Join(invalid, ", "))
	}
	if cfg.JWT.ExpiresIn <= 0 {
		return Config{}, fmt.Errorf("invalid environment variables: JWT_EXPIRES_IN")
	}

	return cfg, nil
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
