package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Firebase FirebaseConfig
	OpenAI   OpenAIConfig
	Unsplash UnsplashConfig
	Domains  DomainsConfig
	App      AppConfig
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	DSN            string
	MaxConns       int
	MinConns       int
	Migrate        bool
	MigrationsPath string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type FirebaseConfig struct {
	CredentialsPath string
}

type OpenAIConfig struct {
	APIKey string
	Model  string
	// Requests per second and burst for the generation limiter.
	RateLimit float64
	RateBurst int
}

type UnsplashConfig struct {
	AccessKey string
}

// DomainsConfig carries the hostnames the tenant router branches on.
// It is passed explicitly to the router so tests can supply arbitrary domains.
type DomainsConfig struct {
	// RootDomain is the platform's own marketing/dashboard hostname,
	// e.g. "forless-ai.fly.dev". Always served unrewritten.
	RootDomain string
	// WildcardDomain is the hosting provider's wildcard base domain,
	// e.g. "fly.dev". Subdomains under it resolve to this deployment.
	WildcardDomain string
	// AppLabel is the reserved subdomain for the authenticated app.
	AppLabel string
	// DevWildcardHost and DevPort build the local subdomain URL returned
	// by the publish endpoint ("http://<slug>.lvh.me:3000").
	DevWildcardHost string
	DevPort         string
}

type AppConfig struct {
	Environment string
	LogLevel    string
	Version     string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Database: DatabaseConfig{
			DSN:            getEnv("DB_DSN", ""),
			MaxConns:       getEnvAsInt("DB_MAX_CONNS", 10),
			MinConns:       getEnvAsInt("DB_MIN_CONNS", 2),
			Migrate:        getEnv("DB_MIGRATE", "false") == "true",
			MigrationsPath: getEnv("DB_MIGRATIONS_PATH", "migrations"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Firebase: FirebaseConfig{
			CredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", ""),
		},
		OpenAI: OpenAIConfig{
			APIKey:    getEnv("OPENAI_API_KEY", ""),
			Model:     getEnv("OPENAI_MODEL", "gpt-4.1-mini"),
			RateLimit: getEnvAsFloat("OPENAI_RATE_LIMIT", 2),
			RateBurst: getEnvAsInt("OPENAI_RATE_BURST", 4),
		},
		Unsplash: UnsplashConfig{
			AccessKey: getEnv("UNSPLASH_ACCESS_KEY", ""),
		},
		Domains: DomainsConfig{
			RootDomain:      getEnv("ROOT_DOMAIN", "forlessai.lvh.me"),
			WildcardDomain:  getEnv("WILDCARD_DOMAIN", "lvh.me"),
			AppLabel:        getEnv("APP_SUBDOMAIN", "app"),
			DevWildcardHost: getEnv("DEV_WILDCARD_HOST", "lvh.me"),
			DevPort:         getEnv("DEV_PORT", "3000"),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.Database.DSN == "" {
		return fmt.Errorf("DB_DSN is required")
	}

	if c.Domains.RootDomain == "" {
		return fmt.Errorf("ROOT_DOMAIN is required")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid number for %s, using default: %g", key, defaultValue)
		return defaultValue
	}

	return value
}
