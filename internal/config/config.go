package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"formsight/pkg/logger"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Mongo       MongoConfig       `mapstructure:"mongo"`
	Redis       RedisConfig       `mapstructure:"redis"`
	Storage     StorageConfig     `mapstructure:"storage"`
	Archive     ArchiveConfig     `mapstructure:"archive"`
	Cache       CacheConfig       `mapstructure:"cache"`
	Scoring     ScoringConfig     `mapstructure:"scoring"`
	Export      ExportConfig      `mapstructure:"export"`
	Submissions SubmissionsConfig `mapstructure:"submissions"`
	Log         LogConfig         `mapstructure:"log"`
	Tracing     TracingConfig     `mapstructure:"tracing"`
	RateLimit   RateLimitConfig   `mapstructure:"rate_limit"`
	CORS        CORSConfig        `mapstructure:"cors"`
}

type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type MongoConfig struct {
	URI      string `mapstructure:"uri"`
	Database string `mapstructure:"database"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	URI      string `mapstructure:"uri"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// StorageConfig selects where forms and submissions live: "mongo" or "memory"
type StorageConfig struct {
	Driver string `mapstructure:"driver"`
}

// ArchiveConfig selects where archived exports are written: "local" or "minio"
type ArchiveConfig struct {
	Type           string `mapstructure:"type"`
	LocalPath      string `mapstructure:"local_path"`
	MinioEndpoint  string `mapstructure:"minio_endpoint"`
	MinioAccessKey string `mapstructure:"minio_access_key"`
	MinioSecretKey string `mapstructure:"minio_secret_key"`
	MinioBucket    string `mapstructure:"minio_bucket"`
	MinioSecure    bool   `mapstructure:"minio_secure"`
}

type CacheConfig struct {
	StatsTTL        time.Duration `mapstructure:"stats_ttl"`
	PresentationTTL time.Duration `mapstructure:"presentation_ttl"`
}

type ScoringConfig struct {
	Precision int `mapstructure:"precision"`
}

type ExportConfig struct {
	Delimiter string `mapstructure:"delimiter"`
	TimeZone  string `mapstructure:"time_zone"`
}

type SubmissionsConfig struct {
	DeleteConcurrency int `mapstructure:"delete_concurrency"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

type TracingConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	ServiceName       string `mapstructure:"service_name"`
	CollectorEndpoint string `mapstructure:"collector_endpoint"`
}

type RateLimitConfig struct {
	MaxRequests   int `mapstructure:"max_requests"`
	WindowSeconds int `mapstructure:"window_seconds"`
}

type CORSConfig struct {
	AllowedOrigins string `mapstructure:"allowed_origins"`
	AllowedMethods string `mapstructure:"allowed_methods"`
	AllowedHeaders string `mapstructure:"allowed_headers"`
}

// DelimiterRune returns the configured export delimiter; "tab" and "\t" select a tab
func (c ExportConfig) DelimiterRune() rune {
	switch c.Delimiter {
	case "":
		return ','
	case "tab", `\t`:
		return '\t'
	}
	r, _ := utf8.DecodeRuneInString(c.Delimiter)
	return r
}

// Location resolves the report time zone, UTC when unset
func (c ExportConfig) Location() (*time.Location, error) {
	if c.TimeZone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(c.TimeZone)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.shutdown_timeout", 30*time.Second)
	v.SetDefault("mongo.uri", "mongodb://localhost:27017")
	v.SetDefault("mongo.database", "formsight")
	v.SetDefault("redis.enabled", true)
	v.SetDefault("redis.uri", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("storage.driver", "mongo")
	v.SetDefault("archive.type", "local")
	v.SetDefault("archive.local_path", "exports")
	v.SetDefault("archive.minio_endpoint", "")
	v.SetDefault("archive.minio_access_key", "")
	v.SetDefault("archive.minio_secret_key", "")
	v.SetDefault("archive.minio_bucket", "formsight-exports")
	v.SetDefault("archive.minio_secure", false)
	v.SetDefault("cache.stats_ttl", 24*time.Hour)
	v.SetDefault("cache.presentation_ttl", 24*time.Hour)
	v.SetDefault("scoring.precision", 4)
	v.SetDefault("export.delimiter", ",")
	v.SetDefault("export.time_zone", "UTC")
	v.SetDefault("submissions.delete_concurrency", 8)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "logs/formsight.log")
	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.service_name", "formsight")
	v.SetDefault("tracing.collector_endpoint", "http://localhost:14268/api/traces")
	v.SetDefault("rate_limit.max_requests", 30)
	v.SetDefault("rate_limit.window_seconds", 60)
	v.SetDefault("cors.allowed_origins", "*")
	v.SetDefault("cors.allowed_methods", "GET, POST, PUT, DELETE, OPTIONS")
	v.SetDefault("cors.allowed_headers", "Content-Type, Authorization")
}

func newViper(path string) *viper.Viper {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetEnvPrefix("FORMSIGHT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// names the deployment already uses
	v.BindEnv("mongo.uri", "FORMSIGHT_MONGO_URI", "MONGO_URI")
	v.BindEnv("redis.uri", "FORMSIGHT_REDIS_URI", "REDIS_URI")
	v.BindEnv("server.port", "FORMSIGHT_SERVER_PORT", "PORT")
	v.BindEnv("archive.minio_endpoint", "FORMSIGHT_ARCHIVE_MINIO_ENDPOINT", "MINIO_ENDPOINT")
	v.BindEnv("archive.minio_access_key", "FORMSIGHT_ARCHIVE_MINIO_ACCESS_KEY", "MINIO_ACCESS_KEY")
	v.BindEnv("archive.minio_secret_key", "FORMSIGHT_ARCHIVE_MINIO_SECRET_KEY", "MINIO_SECRET_KEY")
	v.BindEnv("cors.allowed_origins", "FORMSIGHT_CORS_ALLOWED_ORIGINS", "CORS_ALLOWED_ORIGINS")

	setDefaults(v)
	return v
}

// LoadConfig reads config.yaml from path if present, then applies environment overrides
func LoadConfig(path string) (*Config, error) {
	v := newViper(path)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}
	return decode(v)
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	// historical REDIS_URI values carry a scheme the client does not want in Addr
	cfg.Redis.URI = strings.TrimPrefix(cfg.Redis.URI, "redis://")
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case "mongo", "memory":
	default:
		return fmt.Errorf("storage.driver must be mongo or memory, got %q", c.Storage.Driver)
	}
	switch c.Archive.Type {
	case "local", "minio":
	default:
		return fmt.Errorf("archive.type must be local or minio, got %q", c.Archive.Type)
	}
	if c.Scoring.Precision < 0 || c.Scoring.Precision > 10 {
		return fmt.Errorf("scoring.precision must be between 0 and 10, got %d", c.Scoring.Precision)
	}
	if utf8.RuneCountInString(c.Export.Delimiter) > 1 && c.Export.Delimiter != "tab" && c.Export.Delimiter != `\t` {
		return fmt.Errorf("export.delimiter must be a single character, got %q", c.Export.Delimiter)
	}
	if _, err := c.Export.Location(); err != nil {
		return fmt.Errorf("export.time_zone: %w", err)
	}
	return nil
}

// WatchConfig reloads the file at path on every change and hands the result to reload.
// It is a no-op when there is no config file to watch.
func WatchConfig(path string, reload func(*Config)) {
	v := newViper(path)
	if err := v.ReadInConfig(); err != nil {
		logger.Log.Info("config watcher disabled", zap.Error(err))
		return
	}
	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		cfg, err := decode(v)
		if err != nil {
			logger.Log.Error("failed to reload config", zap.String("file", e.Name), zap.Error(err))
			return
		}
		logger.Log.Info("config reloaded", zap.String("file", e.Name))
		reload(cfg)
	})
	v.WatchConfig()
}
