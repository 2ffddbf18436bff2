package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

// Store driver names accepted by STORE_DRIVER.
const (
	StoreMemory = "memory"
	StoreMongo  = "mongo"
)

type Config struct {
	Port     string `env:"PORT,     default=8080"`
	Env      string `env:"ENV,      default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// StoreDriver selects the users store implementation at startup:
	// "memory" (default) or "mongo".
	StoreDriver string `env:"STORE_DRIVER, default=memory"`

	Mongo       MongoConfig
	Redis       RedisConfig
	OpenWeather OpenWeatherConfig
	RateLimit   RateLimitConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=user_directory"`
}

// RedisConfig configures the rate limiter backend. An empty Addr disables
// rate limiting and the Redis readiness check.
type RedisConfig struct {
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

type OpenWeatherConfig struct {
	APIKey  string `env:"OPENWEATHER_API_KEY"`
	BaseURL string `env:"OPENWEATHER_API_BASE_URL, default=https://api.openweathermap.org/data/2.5"`
}

// RateLimitConfig is the single fixed global throttle: Max requests per
// client IP within each Window.
type RateLimitConfig struct {
	WindowSeconds int   `env:"RATE_LIMIT_WINDOW_SECONDS, default=900"`
	Max           int64 `env:"RATE_LIMIT_MAX,            default=100"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
