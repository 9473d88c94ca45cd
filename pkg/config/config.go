package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	// DatasetFile overrides the embedded seed dataset when set.
	DatasetFile string

	Database   DatabaseConfig
	Redis      RedisConfig
	Cache      CacheConfig
	Pass       PassConfig
	CORS       CORSConfig
	Log        LogConfig
	Simulation SimulationConfig
	Chat       ChatConfig
	Exports    ExportsConfig
}

type DatabaseConfig struct {
	Enabled      bool
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// CacheConfig toggles the Redis backed view render cache.
type CacheConfig struct {
	Enabled bool
	ViewTTL time.Duration
}

// PassConfig configures attendee passes issued after registration.
type PassConfig struct {
	Secret     string
	Expiration time.Duration
	Issuer     string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// SimulationConfig governs the periodic live-update tasks.
type SimulationConfig struct {
	Enabled          bool
	CounterInterval  time.Duration
	ActivityInterval time.Duration
	SummaryInterval  time.Duration
	ProgressInterval time.Duration
	Seed             int64
}

// ChatConfig tunes the chatbot reply latency and request throttling.
type ChatConfig struct {
	MinDelay  time.Duration
	MaxDelay  time.Duration
	RateLimit float64
	RateBurst int
}

// ExportsConfig controls summary/certificate file storage and signed downloads.
type ExportsConfig struct {
	StorageDir      string
	SignedURLSecret string
	SignedURLTTL    time.Duration
	CleanupInterval time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !isMissingFile(err) {
			return nil, err
		}
	}

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")
	cfg.DatasetFile = v.GetString("DATASET_FILE")

	cfg.Database = DatabaseConfig{
		Enabled:      v.GetBool("ENABLE_DATABASE"),
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.Cache = CacheConfig{
		Enabled: v.GetBool("ENABLE_CACHE"),
		ViewTTL: parseDuration(v.GetString("VIEW_CACHE_TTL"), 30*time.Second),
	}

	cfg.Pass = PassConfig{
		Secret:     v.GetString("PASS_SECRET"),
		Expiration: parseDuration(v.GetString("PASS_EXPIRATION"), 12*time.Hour),
		Issuer:     v.GetString("PASS_ISSUER"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Simulation = SimulationConfig{
		Enabled:          v.GetBool("ENABLE_SIMULATION"),
		CounterInterval:  parseDuration(v.GetString("SIM_COUNTER_INTERVAL"), 15*time.Second),
		ActivityInterval: parseDuration(v.GetString("SIM_ACTIVITY_INTERVAL"), 30*time.Second),
		SummaryInterval:  parseDuration(v.GetString("SIM_SUMMARY_INTERVAL"), 45*time.Second),
		ProgressInterval: parseDuration(v.GetString("SIM_PROGRESS_INTERVAL"), 20*time.Second),
		Seed:             v.GetInt64("SIM_SEED"),
	}

	cfg.Chat = ChatConfig{
		MinDelay:  parseDuration(v.GetString("CHAT_MIN_DELAY"), time.Second),
		MaxDelay:  parseDuration(v.GetString("CHAT_MAX_DELAY"), 3*time.Second),
		RateLimit: v.GetFloat64("CHAT_RATE_LIMIT"),
		RateBurst: v.GetInt("CHAT_RATE_BURST"),
	}
	if cfg.Chat.MaxDelay < cfg.Chat.MinDelay {
		cfg.Chat.MaxDelay = cfg.Chat.MinDelay
	}

	cfg.Exports = ExportsConfig{
		StorageDir:      v.GetString("EXPORTS_STORAGE_DIR"),
		SignedURLSecret: v.GetString("EXPORTS_SIGNED_URL_SECRET"),
		SignedURLTTL:    parseDuration(v.GetString("EXPORTS_SIGNED_URL_TTL"), time.Hour),
		CleanupInterval: parseDuration(v.GetString("EXPORTS_CLEANUP_INTERVAL"), 30*time.Minute),
	}

	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")
	v.SetDefault("DATASET_FILE", "")

	v.SetDefault("ENABLE_DATABASE", false)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "workshop_hub")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("ENABLE_CACHE", false)
	v.SetDefault("VIEW_CACHE_TTL", "30s")

	v.SetDefault("PASS_SECRET", "dev_pass_secret")
	v.SetDefault("PASS_EXPIRATION", "12h")
	v.SetDefault("PASS_ISSUER", "workshop-hub")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("ENABLE_SIMULATION", true)
	v.SetDefault("SIM_COUNTER_INTERVAL", "15s")
	v.SetDefault("SIM_ACTIVITY_INTERVAL", "30s")
	v.SetDefault("SIM_SUMMARY_INTERVAL", "45s")
	v.SetDefault("SIM_PROGRESS_INTERVAL", "20s")
	v.SetDefault("SIM_SEED", 0)

	v.SetDefault("CHAT_MIN_DELAY", "1s")
	v.SetDefault("CHAT_MAX_DELAY", "3s")
	v.SetDefault("CHAT_RATE_LIMIT", 2)
	v.SetDefault("CHAT_RATE_BURST", 5)

	v.SetDefault("EXPORTS_STORAGE_DIR", "./exports")
	v.SetDefault("EXPORTS_SIGNED_URL_SECRET", "dev_exports_secret")
	v.SetDefault("EXPORTS_SIGNED_URL_TTL", "1h")
	v.SetDefault("EXPORTS_CLEANUP_INTERVAL", "30m")
}

// isMissingFile reports the error viper returns when the explicit .env file is absent.
func isMissingFile(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
