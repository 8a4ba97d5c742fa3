package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

type Config struct {
	Environment string          `mapstructure:"app_env"`
	Name        string          `mapstructure:"app_name"`
	Version     string          `mapstructure:"app_version"`
	HTTP        HTTPConfig      `mapstructure:"http"`
	Postgres    PostgresConfig  `mapstructure:"postgres"`
	JWT         JWTConfig       `mapstructure:"jwt"`
	S3          S3Config        `mapstructure:"s3"`
	Redis       RedisConfig     `mapstructure:"redis"`
	Storage     StorageConfig   `mapstructure:"storage"`
	RateLimit   RateLimitConfig `mapstructure:"ratelimit"`
	Log         LogConfig       `mapstructure:"log"`
}

type HTTPConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	MaxHeaderMB  int           `mapstructure:"max_header_mb"`
	AllowOrigins []string      `mapstructure:"allow_origins"`
}

type PostgresConfig struct {
	Host               string        `mapstructure:"host"`
	Port               string        `mapstructure:"port"`
	Username           string        `mapstructure:"user"`
	Password           string        `mapstructure:"password"`
	DBName             string        `mapstructure:"db"`
	SSLMode            string        `mapstructure:"ssl_mode"`
	MaxConnections     int           `mapstructure:"max_connections"`
	MaxIdleConnections int           `mapstructure:"max_idle_connections"`
	MaxLifetime        time.Duration `mapstructure:"max_lifetime"`
}

// URL returns the connection string in the given scheme ("postgres" for
// pgx, "pgx5" for migrations).
func (c PostgresConfig) URL(scheme string) string {
	return fmt.Sprintf("%s://%s:%s@%s:%s/%s?sslmode=%s",
		scheme,
		c.Username,
		c.Password,
		c.Host,
		c.Port,
		c.DBName,
		c.SSLMode,
	)
}

type JWTConfig struct {
	SigningKey     string        `mapstructure:"signing_key"`
	AccessTokenTTL time.Duration `mapstructure:"access_token_ttl"`
}

type S3Config struct {
	Endpoint        string        `mapstructure:"endpoint"`
	Region          string        `mapstructure:"region"`
	AccessKeyID     string        `mapstructure:"access_key_id"`
	SecretAccessKey string        `mapstructure:"secret_access_key"`
	Bucket          string        `mapstructure:"bucket"`
	UseSSL          bool          `mapstructure:"use_ssl"`
	PresignTTL      time.Duration `mapstructure:"presign_ttl"`
}

// RedisConfig with an empty Addr disables cross-instance event fan-out.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Channel  string `mapstructure:"channel"`
}

type StorageConfig struct {
	Driver string `mapstructure:"driver"`
}

type RateLimitConfig struct {
	RPS   float64 `mapstructure:"rps"`
	Burst int     `mapstructure:"burst"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// NewConfig reads defaults, an optional YAML file and the environment, in
// increasing priority. Nested keys map to env names with "_" separators:
// http.port is HTTP_PORT.
func NewConfig(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("app_env", "development")
	v.SetDefault("app_name", "docslot")
	v.SetDefault("app_version", "1.0.0")

	v.SetDefault("http.port", "8080")
	v.SetDefault("http.read_timeout", "10s")
	v.SetDefault("http.write_timeout", "10s")
	v.SetDefault("http.max_header_mb", 1)
	v.SetDefault("http.allow_origins", []string{"*"})

	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", "5432")
	v.SetDefault("postgres.user", "postgres")
	v.SetDefault("postgres.password", "postgres")
	v.SetDefault("postgres.db", "docslot")
	v.SetDefault("postgres.ssl_mode", "disable")
	v.SetDefault("postgres.max_connections", 10)
	v.SetDefault("postgres.max_idle_connections", 5)
	v.SetDefault("postgres.max_lifetime", "5m")

	v.SetDefault("jwt.signing_key", "your_secret_key")
	v.SetDefault("jwt.access_token_ttl", "15m")

	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.access_key_id", "")
	v.SetDefault("s3.secret_access_key", "")
	v.SetDefault("s3.bucket", "docslot")
	v.SetDefault("s3.use_ssl", true)
	v.SetDefault("s3.presign_ttl", "15m")

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.channel", "docslot:booking-events")

	v.SetDefault("storage.driver", StorageDriverPostgres)

	v.SetDefault("ratelimit.rps", 5.0)
	v.SetDefault("ratelimit.burst", 10)

	v.SetDefault("log.level", "info")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("ошибка чтения файла конфигурации: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("ошибка разбора конфигурации: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.JWT.SigningKey == "" {
		return fmt.Errorf("ошибка конфигурации: jwt.signing_key не может быть пустым")
	}
	if c.IsProduction() && c.JWT.SigningKey == "your_secret_key" {
		return fmt.Errorf("ошибка конфигурации: в production нужно задать JWT_SIGNING_KEY")
	}
	switch c.Storage.Driver {
	case StorageDriverPostgres, StorageDriverMemory:
	default:
		return fmt.Errorf("ошибка конфигурации: неизвестный storage.driver %q", c.Storage.Driver)
	}
	if c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0 {
		return fmt.Errorf("ошибка конфигурации: ratelimit.rps и ratelimit.burst должны быть положительными")
	}
	return nil
}
