package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// readSecret reads a Docker secret from a file path specified by an env var
// with _FILE suffix. If FOO is already set directly, the file is skipped.
func readSecret(envKey string) {
	if os.Getenv(envKey) != "" {
		return
	}
	filePath := os.Getenv(envKey + "_FILE")
	if filePath == "" {
		return
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		return
	}
	os.Setenv(envKey, strings.TrimSpace(string(data)))
}

type Config struct {
	Server    ServerConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	Engine    EngineConfig
	Stream    StreamConfig
}

type ServerConfig struct {
	Port         string
	Env          string
	AllowOrigins string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type RateLimitConfig struct {
	StartPerMin int
	StopPerMin  int
}

// EngineConfig points at the external analysis engine. When URL or APIKey is
// empty the service falls back to the scripted mock producer.
type EngineConfig struct {
	URL          string
	APIKey       string
	Timeout      time.Duration
	PollInterval time.Duration
}

type StreamConfig struct {
	// LineDelay is the pause after relaying each progress line so slow
	// observers are not overwhelmed.
	LineDelay time.Duration
	// MockStepDelay paces the scripted mock producer.
	MockStepDelay time.Duration
	// StopWait bounds how long Stop waits for the run loop to acknowledge
	// cancellation.
	StopWait time.Duration
}

func Load() (*Config, error) {
	// Read Docker Swarm secrets from _FILE env vars before Viper binds
	readSecret("REDIS_PASSWORD")
	readSecret("ENGINE_API_KEY")

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	// Environment variables
	viper.AutomaticEnv()

	// Bind environment variables with underscores to nested config keys
	_ = viper.BindEnv("server.port", "SERVER_PORT")
	_ = viper.BindEnv("server.env", "SERVER_ENV")
	_ = viper.BindEnv("server.allow_origins", "ALLOW_ORIGINS")
	_ = viper.BindEnv("redis.addr", "REDIS_ADDR")
	_ = viper.BindEnv("redis.password", "REDIS_PASSWORD")
	_ = viper.BindEnv("redis.db", "REDIS_DB")
	_ = viper.BindEnv("engine.url", "ENGINE_URL")
	_ = viper.BindEnv("engine.api_key", "ENGINE_API_KEY")
	_ = viper.BindEnv("engine.timeout", "ENGINE_TIMEOUT")
	_ = viper.BindEnv("engine.poll_interval", "ENGINE_POLL_INTERVAL")

	// Defaults
	viper.SetDefault("server.port", "8000")
	viper.SetDefault("server.env", "development")
	viper.SetDefault("server.allow_origins", "http://localhost:5173")
	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("ratelimit.start_per_min", 10)
	viper.SetDefault("ratelimit.stop_per_min", 30)
	viper.SetDefault("engine.url", "")
	viper.SetDefault("engine.api_key", "")
	viper.SetDefault("engine.timeout", "30m")
	viper.SetDefault("engine.poll_interval", "2s")
	viper.SetDefault("stream.line_delay", "10ms")
	viper.SetDefault("stream.mock_step_delay", "300ms")
	viper.SetDefault("stream.stop_wait", "5s")

	// Try to read config file (optional)
	_ = viper.ReadInConfig()

	cfg := &Config{
		Server: ServerConfig{
			Port:         viper.GetString("server.port"),
			Env:          viper.GetString("server.env"),
			AllowOrigins: viper.GetString("server.allow_origins"),
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("redis.addr"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
		},
		RateLimit: RateLimitConfig{
			StartPerMin: viper.GetInt("ratelimit.start_per_min"),
			StopPerMin:  viper.GetInt("ratelimit.stop_per_min"),
		},
		Engine: EngineConfig{
			URL:          viper.GetString("engine.url"),
			APIKey:       viper.GetString("engine.api_key"),
			Timeout:      viper.GetDuration("engine.timeout"),
			PollInterval: viper.GetDuration("engine.poll_interval"),
		},
		Stream: StreamConfig{
			LineDelay:     viper.GetDuration("stream.line_delay"),
			MockStepDelay: viper.GetDuration("stream.mock_step_delay"),
			StopWait:      viper.GetDuration("stream.stop_wait"),
		},
	}

	return cfg, nil
}
