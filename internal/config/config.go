package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/redis/go-redis/v9"
)

// Environment represents the application environment.
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvProduction  Environment = "production"
)

// Catalog source kinds.
const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
)

// Store backend kinds.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Config holds all application configuration.
type Config struct {
	App     AppConfig
	Server  ServerConfig
	Catalog CatalogConfig
	Store   StoreConfig
	Redis   RedisConfig
	Planner PlannerConfig
	Log     LogConfig
}

type AppConfig struct {
	Name        string
	Environment Environment
	Debug       bool
}

type ServerConfig struct {
	Port            int
	ShutdownTimeout time.Duration
	AllowedOrigin   string
}

// CatalogConfig selects where semester catalogs come from. CSV catalogs are
// read from Dir/<semester>.csv.
type CatalogConfig struct {
	Source      string
	Dir         string
	Delimiter   rune
	Semester    string
	DatabaseURL string
	Cache       bool
	CacheTTL    time.Duration
}

type StoreConfig struct {
	Backend    string
	SQLitePath string
	KeyPrefix  string
	TTL        time.Duration
}

type RedisConfig struct {
	Host         string
	Port         int
	Password     string
	DB           int
	PoolSize     int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// PlannerConfig bounds the credits accepted by the selection report.
type PlannerConfig struct {
	MinCredits float64
	MaxCredits float64
}

type LogConfig struct {
	Level  string
	Format string
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		App:     loadAppConfig(),
		Server:  loadServerConfig(),
		Catalog: loadCatalogConfig(),
		Store:   loadStoreConfig(),
		Redis:   loadRedisConfig(),
		Planner: loadPlannerConfig(),
		Log:     loadLogConfig(),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

func loadAppConfig() AppConfig {
	env := Environment(getEnv("APP_ENV", string(EnvDevelopment)))
	return AppConfig{
		Name:        getEnv("APP_NAME", "course-planner"),
		Environment: env,
		Debug:       getEnvBool("APP_DEBUG", false),
	}
}

func loadServerConfig() ServerConfig {
	return ServerConfig{
		Port:            getEnvInt("SERVER_PORT", 8080),
		ShutdownTimeout: getEnvDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
		AllowedOrigin:   getEnv("SERVER_ALLOWED_ORIGIN", "*"),
	}
}

func loadCatalogConfig() CatalogConfig {
	delim, _ := utf8.DecodeRuneInString(getEnv("CATALOG_DELIMITER", ";"))
	return CatalogConfig{
		Source:      getEnv("CATALOG_SOURCE", SourceCSV),
		Dir:         getEnv("CATALOG_DIR", "./data"),
		Delimiter:   delim,
		Semester:    getEnv("CATALOG_SEMESTER", "1131"),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		Cache:       getEnvBool("CATALOG_CACHE", false),
		CacheTTL:    getEnvDuration("CATALOG_CACHE_TTL", 10*time.Minute),
	}
}

func loadStoreConfig() StoreConfig {
	return StoreConfig{
		Backend:    getEnv("STORE_BACKEND", BackendMemory),
		SQLitePath: getEnv("STORE_SQLITE_PATH", "./planner.db"),
		KeyPrefix:  getEnv("STORE_KEY_PREFIX", "course-planner:"),
		TTL:        getEnvDuration("STORE_TTL", 0),
	}
}

func loadRedisConfig() RedisConfig {
	return RedisConfig{
		Host:         getEnv("REDIS_HOST", "localhost"),
		Port:         getEnvInt("REDIS_PORT", 6379),
		Password:     getEnv("REDIS_PASSWORD", ""),
		DB:           getEnvInt("REDIS_DB", 0),
		PoolSize:     getEnvInt("REDIS_POOL_SIZE", 10),
		DialTimeout:  getEnvDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		ReadTimeout:  getEnvDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		WriteTimeout: getEnvDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
	}
}

func loadPlannerConfig() PlannerConfig {
	return PlannerConfig{
		MinCredits: getEnvFloat("PLANNER_MIN_CREDITS", 0),
		MaxCredits: getEnvFloat("PLANNER_MAX_CREDITS", 25),
	}
}

func loadLogConfig() LogConfig {
	return LogConfig{
		Level:  strings.ToLower(getEnv("LOG_LEVEL", "info")),
		Format: strings.ToLower(getEnv("LOG_FORMAT", "")),
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	var errs []string

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, "SERVER_PORT must be 1-65535")
	}

	switch c.Catalog.Source {
	case SourceCSV:
		if c.Catalog.Dir == "" {
			errs = append(errs, "CATALOG_DIR is required for the csv source")
		}
	case SourcePostgres:
		if c.Catalog.DatabaseURL == "" {
			errs = append(errs, "DATABASE_URL is required for the postgres source")
		}
	default:
		errs = append(errs, fmt.Sprintf("CATALOG_SOURCE must be %s or %s", SourceCSV, SourcePostgres))
	}
	if c.Catalog.Semester == "" {
		errs = append(errs, "CATALOG_SEMESTER is required")
	}
	if c.Catalog.Delimiter == utf8.RuneError {
		errs = append(errs, "CATALOG_DELIMITER must be a single character")
	}

	switch c.Store.Backend {
	case BackendMemory, BackendRedis:
	case BackendSQLite:
		if c.Store.SQLitePath == "" {
			errs = append(errs, "STORE_SQLITE_PATH is required for the sqlite backend")
		}
	default:
		errs = append(errs, fmt.Sprintf("STORE_BACKEND must be %s, %s or %s", BackendMemory, BackendSQLite, BackendRedis))
	}

	if c.Planner.MinCredits < 0 || c.Planner.MaxCredits < 0 {
		errs = append(errs, "PLANNER_MIN_CREDITS and PLANNER_MAX_CREDITS must not be negative")
	}
	if c.Planner.MaxCredits > 0 && c.Planner.MinCredits > c.Planner.MaxCredits {
		errs = append(errs, "PLANNER_MIN_CREDITS must not exceed PLANNER_MAX_CREDITS")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.App.Environment == EnvProduction
}

// NeedsRedis reports whether any component talks to Redis.
func (c *Config) NeedsRedis() bool {
	return c.Store.Backend == BackendRedis || c.Catalog.Cache
}

// Addr returns the Redis address in "host:port" format.
func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Options converts the configuration into go-redis client options.
func (c RedisConfig) Options() *redis.Options {
	return &redis.Options{
		Addr:         c.Addr(),
		Password:     c.Password,
		DB:           c.DB,
		PoolSize:     c.PoolSize,
		DialTimeout:  c.DialTimeout,
		ReadTimeout:  c.ReadTimeout,
		WriteTimeout: c.WriteTimeout,
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return defaultVal
	}
	return b
}

func getEnvInt(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvFloat(key string, defaultVal float64) float64 {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return defaultVal
	}
	return f
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}
	return d
}
