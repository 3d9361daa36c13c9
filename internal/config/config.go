// README: Config loader with env defaults for HTTP, LLM backends, search, and telemetry.
package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	HTTP struct {
		Addr string
	}
	LLM struct {
		OpenAIKey    string
		GeminiKey    string
		DefaultModel string
	}
	Search struct {
		SerperKey string
		MapsKey   string
		CacheTTL  time.Duration
	}
	Redis struct {
		Addr string
	}
	DB struct {
		DSN string
	}
}

// Load reads configuration from the environment. Missing provider keys are not an
// error here; a backend without credentials is simply never registered and surfaces
// later as "not configured" on first use.
func Load() (Config, error) {
	var cfg Config
	cfg.HTTP.Addr = envOrDefault("ATLAS_HTTP_ADDR", ":8080")
	cfg.LLM.OpenAIKey = os.Getenv("OPENAI_API_KEY")
	cfg.LLM.GeminiKey = os.Getenv("GEMINI_API_KEY")
	cfg.LLM.DefaultModel = envOrDefault("ATLAS_DEFAULT_MODEL", "gpt-4o-mini")
	cfg.Search.SerperKey = os.Getenv("SERPER_API_KEY")
	cfg.Search.MapsKey = os.Getenv("MAPS_API_KEY")
	cfg.Search.CacheTTL = time.Duration(envOrDefaultInt("ATLAS_CACHE_TTL_MIN", 30)) * time.Minute
	cfg.Redis.Addr = os.Getenv("ATLAS_REDIS_ADDR")
	cfg.DB.DSN = os.Getenv("ATLAS_DB_DSN")
	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
