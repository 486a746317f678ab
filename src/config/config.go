// Package config loads settings from .env, the environment and an optional YAML file.
package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Env    string     `yaml:"env" env:"APP_ENV" env-default:"development"`
	HTTP   HTTPServer `yaml:"http_server"`
	Mongo  Mongo      `yaml:"mongo"`
	Redis  Redis      `yaml:"redis"`
	JWT    JWT        `yaml:"jwt"`
	Google Google     `yaml:"google"`
	SMTP   SMTP       `yaml:"smtp"`
	Admin  Admin      `yaml:"admin"`
}

type HTTPServer struct {
	Port           string        `yaml:"port" env:"APP_URI" env-default:"8888"`
	AllowedOrigins string        `yaml:"allowed_origins" env:"ALLOWED_ORIGINS" env-default:"*"`
	RequestTimeout time.Duration `yaml:"request_timeout" env:"REQUEST_TIMEOUT" env-default:"10s"`
	RateLimit      int           `yaml:"rate_limit" env:"RATE_LIMIT" env-default:"100"`
	RateWindow     time.Duration `yaml:"rate_window" env:"RATE_WINDOW" env-default:"15m"`
}

type Mongo struct {
	URI      string `yaml:"uri" env:"MONGO_URI" env-required:"true"`
	Database string `yaml:"database" env:"MONGO_DB" env-default:"sgformer"`
}

// Redis is optional. Without it logout revocation and email jobs are disabled.
type Redis struct {
	Addr     string `yaml:"addr" env:"REDIS_URI"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

type JWT struct {
	Secret string        `yaml:"secret" env:"JWT_SECRET" env-default:"your_secret_key"`
	TTL    time.Duration `yaml:"ttl" env:"JWT_TTL" env-default:"168h"`
}

type Google struct {
	ClientID     string `yaml:"client_id" env:"GOOGLE_CLIENT_ID"`
	ClientSecret string `yaml:"client_secret" env:"GOOGLE_CLIENT_SECRET"`
	RedirectURL  string `yaml:"redirect_url" env:"GOOGLE_REDIRECT"`
	FrontendURL  string `yaml:"frontend_url" env:"FRONTEND_URL" env-default:"http://localhost:3000"`
}

type SMTP struct {
	Host      string  `yaml:"host" env:"SMTP_HOST"`
	Port      int     `yaml:"port" env:"SMTP_PORT" env-default:"587"`
	User      string  `yaml:"user" env:"SMTP_USER"`
	Pass      string  `yaml:"pass" env:"SMTP_PASS"`
	From      string  `yaml:"from" env:"SMTP_FROM"`
	PerSecond float64 `yaml:"per_second" env:"SMTP_PER_SECOND" env-default:"2"`
}

// Admin is the bootstrap account. SeedSample adds a demo form it owns.
type Admin struct {
	Email      string `yaml:"email" env:"ADMIN_EMAIL"`
	Password   string `yaml:"password" env:"ADMIN_PASSWORD"`
	Name       string `yaml:"name" env:"ADMIN_NAME" env-default:"Administrator"`
	SeedSample bool   `yaml:"seed_sample" env:"SEED_SAMPLE_FORMS" env-default:"false"`
}

func (c *Config) IsProduction() bool { return c.Env == "production" }

// Origins splits ALLOWED_ORIGINS into the comma list cors expects.
func (h HTTPServer) Origins() string {
	parts := strings.Split(h.AllowedOrigins, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return strings.Join(parts, ",")
}

func (s SMTP) Enabled() bool {
	return s.Host != "" && s.From != ""
}

func (g Google) OAuthEnabled() bool {
	return g.ClientID != "" && g.ClientSecret != "" && g.RedirectURL != ""
}

// Load reads .env when present, then CONFIG_PATH when set, then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ Warning: No .env file found")
	}

	var cfg Config
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("cannot read config %s: %w", path, err)
		}
		return &cfg, nil
	}
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("cannot read env: %w", err)
	}
	return &cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	if cfg.JWT.Secret == "your_secret_key" && cfg.IsProduction() {
		log.Fatal("❌ JWT_SECRET must be set in production")
	}
	return cfg
}
