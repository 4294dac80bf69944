package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

type Config struct {
	Env    string
	Port   string
	Origin string // CORS

	MongoURI       string
	MongoDB        string
	ConnectTimeout time.Duration
	SocketTimeout  time.Duration

	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration

	GeminiAPIKey string
	GeminiModel  string
}

func env(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func envDuration(k string, def time.Duration) time.Duration {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

// Load reads the configuration from the environment. The Mongo URI and
// both signing secrets are required; missing values fail startup.
func Load() (Config, error) {
	cfg := Config{
		Env:    env("APP_ENV", "dev"),
		Port:   env("PORT", "8080"),
		Origin: env("CORS_ORIGIN", "http://localhost:5173"),

		MongoURI:       os.Getenv("MONGO_URI"),
		MongoDB:        env("MONGO_DB", "helpdesk"),
		ConnectTimeout: envDuration("MONGO_CONNECT_TIMEOUT", 5*time.Second),
		SocketTimeout:  envDuration("MONGO_SOCKET_TIMEOUT", 45*time.Second),

		AccessSecret:  os.Getenv("JWT_ACCESS_SECRET"),
		RefreshSecret: os.Getenv("JWT_REFRESH_SECRET"),
		AccessTTL:     envDuration("ACCESS_TOKEN_EXPIRY", 15*time.Minute),
		RefreshTTL:    envDuration("REFRESH_TOKEN_EXPIRY", 168*time.Hour),

		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  env("GEMINI_MODEL", "gemini-1.5-flash"),
	}

	var missing []string
	if cfg.MongoURI == "" {
		missing = append(missing, "MONGO_URI")
	}
	if cfg.AccessSecret == "" {
		missing = append(missing, "JWT_ACCESS_SECRET")
	}
	if cfg.RefreshSecret == "" {
		missing = append(missing, "JWT_REFRESH_SECRET")
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("missing required environment: %s", strings.Join(missing, ", "))
	}
	return cfg, nil
}
