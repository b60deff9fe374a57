// Package config loads runtime settings from configs/config.yml, an optional
// .env file and TRAVRO_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. TRAVRO_AUTH_SECRET.
const EnvPrefix = "TRAVRO"

// Config holds every setting the service reads at startup.
type Config struct {
	Port      string
	LogLevel  string
	LogFormat string

	DB        DB
	Auth      Auth
	Explore   Explore
	Geo       Geo
	Blob      Blob
	RateLimit RateLimit
	Health    Health
	CORS      CORS
}

type DB struct {
	Driver          string // sqlite | postgres
	DSN             string
	ConnectAttempts int
	ConnectBackoff  time.Duration
}

type Auth struct {
	Secret     string
	TokenTTL   time.Duration
	BcryptCost int
}

type Explore struct {
	RadiusKm float64
}

type Geo struct {
	CitiesPath string
}

type Blob struct {
	Driver        string // local | s3
	LocalDir      string
	PublicBaseURL string
	Folder        string
	S3            S3
}

type S3 struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

type RateLimit struct {
	LoginPerMinute int
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
}

type Health struct {
	Interval time.Duration
}

type CORS struct {
	AllowedOrigin string
}

// setDefaults registers the fallback for every key.
func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.dsn", "travro.db")
	v.SetDefault("db.connect_attempts", 5)
	v.SetDefault("db.connect_backoff", 5*time.Second)

	v.SetDefault("auth.secret", "your-secret-key")
	v.SetDefault("auth.token_ttl", 24*time.Hour)
	v.SetDefault("auth.bcrypt_cost", 10)

	v.SetDefault("explore.radius_km", 400.0)

	v.SetDefault("geo.cities_path", "")

	v.SetDefault("blob.driver", "local")
	v.SetDefault("blob.local_dir", "uploads")
	v.SetDefault("blob.public_base_url", "http://localhost:8080/uploads")
	v.SetDefault("blob.folder", "travro_users")
	v.SetDefault("blob.s3.bucket", "")
	v.SetDefault("blob.s3.region", "us-east-1")
	v.SetDefault("blob.s3.endpoint", "")
	v.SetDefault("blob.s3.access_key", "")
	v.SetDefault("blob.s3.secret_key", "")

	v.SetDefault("ratelimit.login_per_minute", 10)
	v.SetDefault("ratelimit.redis_addr", "")
	v.SetDefault("ratelimit.redis_password", "")
	v.SetDefault("ratelimit.redis_db", 0)

	v.SetDefault("health.interval", 10*time.Second)

	v.SetDefault("cors.allowed_origin", "http://localhost:5173")
}

// Load reads config.yml from configDir (missing file is fine), overlays .env and
// the environment, and validates the result.
func Load(configDir string) (*Config, error) {
	// .env is optional; real environment variables always win over it.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.AddConfigPath(configDir)
	v.SetConfigName("config")
	v.SetConfigType("yml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := fromViper(v)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		Port:      v.GetString("port"),
		LogLevel:  v.GetString("log.level"),
		LogFormat: v.GetString("log.format"),
		DB: DB{
			Driver:          strings.ToLower(v.GetString("db.driver")),
			DSN:             v.GetString("db.dsn"),
			ConnectAttempts: v.GetInt("db.connect_attempts"),
			ConnectBackoff:  v.GetDuration("db.connect_backoff"),
		},
		Auth: Auth{
			Secret:     v.GetString("auth.secret"),
			TokenTTL:   v.GetDuration("auth.token_ttl"),
			BcryptCost: v.GetInt("auth.bcrypt_cost"),
		},
		Explore: Explore{RadiusKm: v.GetFloat64("explore.radius_km")},
		Geo:     Geo{CitiesPath: v.GetString("geo.cities_path")},
		Blob: Blob{
			Driver:        strings.ToLower(v.GetString("blob.driver")),
			LocalDir:      v.GetString("blob.local_dir"),
			PublicBaseURL: v.GetString("blob.public_base_url"),
			Folder:        v.GetString("blob.folder"),
			S3: S3{
				Bucket:    v.GetString("blob.s3.bucket"),
				Region:    v.GetString("blob.s3.region"),
				Endpoint:  v.GetString("blob.s3.endpoint"),
				AccessKey: v.GetString("blob.s3.access_key"),
				SecretKey: v.GetString("blob.s3.secret_key"),
			},
		},
		RateLimit: RateLimit{
			LoginPerMinute: v.GetInt("ratelimit.login_per_minute"),
			RedisAddr:      v.GetString("ratelimit.redis_addr"),
			RedisPassword:  v.GetString("ratelimit.redis_password"),
			RedisDB:        v.GetInt("ratelimit.redis_db"),
		},
		Health: Health{Interval: v.GetDuration("health.interval")},
		CORS:   CORS{AllowedOrigin: v.GetString("cors.allowed_origin")},
	}
}

// Validate rejects settings the service cannot start with.
func (c *Config) Validate() error {
	switch c.DB.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("db.driver %q: want sqlite or postgres", c.DB.Driver)
	}
	if c.DB.DSN == "" {
		return errors.New("db.dsn is empty")
	}
	if c.DB.ConnectAttempts < 1 {
		return fmt.Errorf("db.connect_attempts must be >= 1, got %d", c.DB.ConnectAttempts)
	}
	if c.Auth.Secret == "" {
		return errors.New("auth.secret is empty")
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("auth.token_ttl must be positive, got %s", c.Auth.TokenTTL)
	}
	if c.Explore.RadiusKm <= 0 {
		return fmt.Errorf("explore.radius_km must be positive, got %v", c.Explore.RadiusKm)
	}
	switch c.Blob.Driver {
	case "local":
	case "s3":
		if c.Blob.S3.Bucket == "" {
			return errors.New("blob.s3.bucket is empty")
		}
	default:
		return fmt.Errorf("blob.driver %q: want local or s3", c.Blob.Driver)
	}
	if c.RateLimit.LoginPerMinute < 1 {
		return fmt.Errorf("ratelimit.login_per_minute must be >= 1, got %d", c.RateLimit.LoginPerMinute)
	}
	if c.Health.Interval <= 0 {
		return fmt.Errorf("health.interval must be positive, got %s", c.Health.Interval)
	}
	return nil
}

// RadiusMeters is the explore radius in meters.
func (c *Config) RadiusMeters() float64 {
	return c.Explore.RadiusKm * 1000
}
