package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/xxxsen/common/logger"

	"github.com/joaobosco/lembretes/internal/pkg/jwt"
)

const (
	DriverPostgREST = "postgrest"
	DriverPostgres  = "postgres"
	DriverMemory    = "memory"
)

type Config struct {
	Port      int              `json:"port"`
	BodyLimit int64            `json:"body_limit"`
	JWT       JWTConfig        `json:"jwt"`
	Database  DatabaseConfig   `json:"database"`
	Docs      DocsConfig       `json:"docs"`
	CORS      CORSConfig       `json:"cors"`
	LogConfig logger.LogConfig `json:"log_config"`
}

type JWTConfig struct {
	Secret    string `json:"secret"`
	ExpiresIn string `json:"expires_in"`
}

type DatabaseConfig struct {
	Driver string `json:"driver"`
	// postgrest
	URL     string `json:"url"`
	Key     string `json:"key"`
	Timeout int    `json:"timeout_seconds"`
	// postgres
	DSN      string `json:"dsn"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	DBName   string `json:"dbname"`
	SSLMode  string `json:"sslmode"`
	Migrate  bool   `json:"migrate"`
}

type DocsConfig struct {
	ServerURL string `json:"server_url"`
	Title     string `json:"title"`
	Version   string `json:"version"`
}

type CORSConfig struct {
	AllowOrigins []string `json:"allow_origins"`
}

// Load reads the optional JSON file at path, overlays the environment and
// validates the result. An empty path means environment only.
func Load(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()
		if err := json.NewDecoder(file).Decode(&cfg); err != nil {
			return nil, fmt.Errorf("decode config: %w", err)
		}
	}
	if err := applyEnv(&cfg, nil); err != nil {
		return nil, err
	}
	if err := cfg.finish(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envOverlay lists the environment variables that override the file.
// Unset or empty variables leave the file value in place.
type envOverlay struct {
	Port           int      `env:"PORT"`
	JWTSecret      string   `env:"JWT_SECRET"`
	JWTExpiresIn   string   `env:"JWT_EXPIRES_IN"`
	Driver         string   `env:"DATABASE_DRIVER"`
	SupabaseURL    string   `env:"SUPABASE_URL"`
	ServiceRoleKey string   `env:"SUPABASE_SERVICE_ROLE_KEY"`
	AnonKey        string   `env:"SUPABASE_ANON_KEY"`
	DatabaseURL    string   `env:"DATABASE_URL"`
	SwaggerURL     string   `env:"SWAGGER_SERVER_URL"`
	CORSOrigins    []string `env:"CORS_ALLOW_ORIGINS" envSeparator:","`
}

// applyEnv overlays environ onto cfg. A nil environ reads the process
// environment.
func applyEnv(cfg *Config, environ map[string]string) error {
	var o envOverlay
	if err := env.ParseWithOptions(&o, env.Options{Environment: environ}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	setString := func(dst *string, v string) {
		if v = strings.TrimSpace(v); v != "" {
			*dst = v
		}
	}
	if o.Port != 0 {
		cfg.Port = o.Port
	}
	setString(&cfg.JWT.Secret, o.JWTSecret)
	setString(&cfg.JWT.ExpiresIn, o.JWTExpiresIn)
	setString(&cfg.Database.Driver, o.Driver)
	setString(&cfg.Database.URL, o.SupabaseURL)
	setString(&cfg.Database.Key, o.AnonKey)
	setString(&cfg.Database.Key, o.ServiceRoleKey)
	setString(&cfg.Database.DSN, o.DatabaseURL)
	setString(&cfg.Docs.ServerURL, o.SwaggerURL)
	if len(o.CORSOrigins) > 0 {
		origins := make([]string, 0, len(o.CORSOrigins))
		for _, origin := range o.CORSOrigins {
			if origin = strings.TrimSpace(origin); origin != "" {
				origins = append(origins, origin)
			}
		}
		cfg.CORS.AllowOrigins = origins
	}
	return nil
}

func (cfg *Config) finish() error {
	if cfg.Port == 0 {
		cfg.Port = 3000
	}
	if cfg.Port < 0 || cfg.Port > 65535 {
		return fmt.Errorf("port out of range: %d", cfg.Port)
	}
	if cfg.BodyLimit == 0 {
		cfg.BodyLimit = 1 << 20
	}
	if cfg.JWT.Secret == "" {
		return fmt.Errorf("jwt.secret is required")
	}
	if cfg.JWT.ExpiresIn == "" {
		cfg.JWT.ExpiresIn = "2h"
	}
	if _, err := jwt.ParseTTL(cfg.JWT.ExpiresIn); err != nil {
		return fmt.Errorf("jwt.expires_in: %w", err)
	}
	if cfg.LogConfig.Level == "" {
		cfg.LogConfig.Level = "info"
	}
	if cfg.Docs.ServerURL == "" {
		cfg.Docs.ServerURL = fmt.Sprintf("http://localhost:%d", cfg.Port)
	}
	if cfg.Docs.Title == "" {
		cfg.Docs.Title = "Api - Lembretes"
	}
	if cfg.Docs.Version == "" {
		cfg.Docs.Version = "1.0.6"
	}
	return cfg.Database.finish()
}

func (d *DatabaseConfig) finish() error {
	d.Driver = strings.ToLower(strings.TrimSpace(d.Driver))
	if d.Driver == "" {
		switch {
		case d.URL != "":
			d.Driver = DriverPostgREST
		case d.DSN != "" || d.Host != "":
			d.Driver = DriverPostgres
		default:
			return fmt.Errorf("database.driver is required")
		}
	}
	switch d.Driver {
	case DriverPostgREST:
		if d.URL == "" || d.Key == "" {
			return fmt.Errorf("database.url and database.key are required for postgrest")
		}
		if d.Timeout == 0 {
			d.Timeout = 10
		}
	case DriverPostgres:
		if d.DSN == "" && d.Host == "" {
			return fmt.Errorf("database.dsn or database.host is required for postgres")
		}
		if d.Port == 0 {
			d.Port = 5432
		}
		if d.SSLMode == "" {
			d.SSLMode = "disable"
		}
	case DriverMemory:
	default:
		return fmt.Errorf("database.driver must be postgrest, postgres or memory")
	}
	return nil
}
