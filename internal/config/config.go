package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Providers ProviderConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string

	// InternalToken guards operator endpoints. Empty disables them.
	InternalToken string
	// WSAllowedOrigins restricts browser origins on /ws/jobs. Empty allows any.
	WSAllowedOrigins []string
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

	// MigrationsDir overrides the embedded migration set when non-empty.
	MigrationsDir string
}

func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		strings.TrimSpace(c.DBHost),
		strings.TrimSpace(c.DBPort),
		strings.TrimSpace(c.DBUser),
		c.DBPassword,
		strings.TrimSpace(c.DBName),
		strings.TrimSpace(c.DBSSLMode),
	)
}

// Enabled reports whether a database was configured. Without one the
// service still searches; saved jobs and recommendations are unavailable.
func (c DatabaseConfig) Enabled() bool {
	return c.DBHost != "" && c.DBName != ""
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	TTL      time.Duration
}

func (c RedisConfig) Addr() string {
	return c.Host + ":" + c.Port
}

type JWTConfig struct {
	AccessSecret    string
	AccessExpiresIn time.Duration
}

// ProviderConfig holds upstream job board settings.
type ProviderConfig struct {
	RemotiveBaseURL  string `env:"REMOTIVE_BASE_URL" envDefault:"https://remotive.com"`
	ArbeitnowBaseURL string `env:"ARBEITNOW_BASE_URL" envDefault:"https://www.arbeitnow.com"`
	JSearchBaseURL   string `env:"JSEARCH_BASE_URL" envDefault:"https://jsearch.p.rapidapi.com"`
	JSearchAPIKey    string `env:"JSEARCH_API_KEY"`
	AdzunaBaseURL    string `env:"ADZUNA_BASE_URL" envDefault:"https://api.adzuna.com/v1/api/jobs"`
	AdzunaAppID      string `env:"ADZUNA_APP_ID"`
	AdzunaAppKey     string `env:"ADZUNA_APP_KEY"`
	AdzunaCountry    string `env:"ADZUNA_COUNTRY" envDefault:"gb"`

	SourceTimeout        time.Duration `env:"PROVIDER_TIMEOUT" envDefault:"20s"`
	HTTPTimeout          time.Duration `env:"PROVIDER_HTTP_TIMEOUT" envDefault:"15s"`
	ArbeitnowTargetJobs  int           `env:"ARBEITNOW_TARGET_JOBS" envDefault:"1000"`
	ArbeitnowPageDelay   time.Duration `env:"ARBEITNOW_PAGE_DELAY" envDefault:"50ms"`
	WarmupIntervalMinute int           `env:"WARMUP_INTERVAL_MINUTES" envDefault:"30"`
	WarmupQueries        []string      `env:"WARMUP_QUERIES" envSeparator:","`
	JobRetentionDays     int           `env:"JOB_RETENTION_DAYS" envDefault:"30"`

	GeminiAPIKey string `env:"GEMINI_API_KEY"`
	GeminiModel  string `env:"GEMINI_MODEL" envDefault:"gemini-2.0-flash"`

	EnrichCompanies bool `env:"ENRICH_COMPANIES" envDefault:"true"`
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

func Load() (Config, error) {
	cfg := Config{}

	var missing []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := optEnv

	cfg.App = AppConfig{
		AppName:     opt("APP_NAME", "jobboard"),
		Environment: opt("APP_ENV", "development"),
		HTTPPort:    req("HTTP_PORT"),

		InternalToken:    opt("INTERNAL_TOKEN", ""),
		WSAllowedOrigins: splitCSV(opt("WS_ALLOWED_ORIGINS", "")),
	}

	cfg.Database = LoadDatabase()

	cfg.Redis = RedisConfig{
		Host:     opt("REDIS_HOST", "localhost"),
		Port:     opt("REDIS_PORT", "6379"),
		Password: opt("REDIS_PASSWORD", ""),
		TTL:      durationSeconds(opt("REDIS_TTL", "600")),
	}

	cfg.JWT = JWTConfig{
		AccessSecret:    opt("JWT_ACCESS_SECRET", ""),
		AccessExpiresIn: durationSeconds(opt("JWT_ACCESS_EXPIRES_IN", "900")),
	}

	if err := env.Parse(&cfg.Providers); err != nil {
		return Config{}, fmt.Errorf("parse provider config: %w", err)
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	return cfg, nil
}

func splitCSV(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// LoadDatabase reads only the DB_* block. Every key is optional.
func LoadDatabase() DatabaseConfig {
	opt := optEnv
	return DatabaseConfig{
		DBHost:                opt("DB_HOST", ""),
		DBPort:                opt("DB_PORT", "5432"),
		DBName:                opt("DB_NAME", ""),
		DBUser:                opt("DB_USER", ""),
		DBPassword:            opt("DB_PASSWORD", ""),
		DBSSLMode:             opt("DB_SSL_MODE", "disable"),
		ConnectTimeout:        durationSeconds(opt("DB_CONNECT_TIMEOUT", "5")),
		PoolMaxConns:          int32(atoiOr(opt("DB_POOL_MAX_CONNS", "10"), 10)),
		PoolMinConns:          int32(atoiOr(opt("DB_POOL_MIN_CONNS", "0"), 0)),
		PoolMaxConnLifetime:   durationSeconds(opt("DB_POOL_MAX_CONN_LIFETIME", "3600")),
		PoolMaxConnIdleTime:   durationSeconds(opt("DB_POOL_MAX_CONN_IDLE_TIME", "300")),
		PoolHealthCheckPeriod: durationSeconds(opt("DB_POOL_HEALTH_CHECK_PERIOD", "60")),
		MigrationsDir:         opt("MIGRATIONS_DIR", ""),
	}
}

func optEnv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func atoiOr(raw string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return def
	}
	return v
}

func durationSeconds(raw string) time.Duration {
	v := atoiOr(raw, 0)
	if v <= 0 {
		return 0
	}
	return time.Duration(v) * time.Second
}
