package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/hreger/IllegalActScan/services/api/roi"
)

// Config holds environment-driven settings for the REST API.
type Config struct {
	Port        int
	BearerToken string

	// Seed for simulated batches when the request supplies none. Zero
	// means seed from the clock, so every render differs.
	Seed int64

	// Batch size range [MinCount, MaxCount) when the request names no count.
	MinCount int
	MaxCount int

	MinConfidence float64
	MaxConfidence float64
	LatJitter     float64
	LonJitter     float64

	DefaultRegion string
}

// Load reads configuration from environment variables (optionally .env).
func Load() (Config, error) {
	_ = godotenv.Load() // ignore missing file

	cfg := Config{
		Port:          8080,
		MinCount:      5,
		MaxCount:      15,
		MinConfidence: 0.3,
		MaxConfidence: 0.95,
		LatJitter:     0.02,
		LonJitter:     0.03,
		DefaultRegion: roi.Default().ID,
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil && port > 0 {
			cfg.Port = port
		} else {
			return cfg, fmt.Errorf("invalid PORT: %s", portStr)
		}
	} else if portStr := os.Getenv("API_PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil && port > 0 {
			cfg.Port = port
		} else {
			return cfg, fmt.Errorf("invalid API_PORT: %s", portStr)
		}
	}

	cfg.BearerToken = os.Getenv("API_BEARER_TOKEN")

	if seedStr := os.Getenv("SIM_SEED"); seedStr != "" {
		seed, err := strconv.ParseInt(seedStr, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("invalid SIM_SEED: %s", seedStr)
		}
		cfg.Seed = seed
	}

	if err := loadInt("SIM_MIN_COUNT", &cfg.MinCount); err != nil {
		return cfg, err
	}
	if err := loadInt("SIM_MAX_COUNT", &cfg.MaxCount); err != nil {
		return cfg, err
	}
	if cfg.MinCount < 0 || cfg.MaxCount <= cfg.MinCount {
		return cfg, fmt.Errorf("invalid count range [%d, %d)", cfg.MinCount, cfg.MaxCount)
	}

	if err := loadFloat("SIM_MIN_CONFIDENCE", &cfg.MinConfidence); err != nil {
		return cfg, err
	}
	if err := loadFloat("SIM_MAX_CONFIDENCE", &cfg.MaxConfidence); err != nil {
		return cfg, err
	}
	if err := loadFloat("SIM_LAT_JITTER", &cfg.LatJitter); err != nil {
		return cfg, err
	}
	if err := loadFloat("SIM_LON_JITTER", &cfg.LonJitter); err != nil {
		return cfg, err
	}

	if regionID := os.Getenv("DEFAULT_REGION"); regionID != "" {
		if _, ok := roi.Lookup(regionID); !ok {
			return cfg, fmt.Errorf("unknown DEFAULT_REGION: %s", regionID)
		}
		cfg.DefaultRegion = regionID
	}

	return cfg, nil
}

// ListenAddr returns the host:port string for the HTTP server.
func (c Config) ListenAddr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func loadInt(key string, dst *int) error {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("invalid %s: %s", key, raw)
	}
	*dst = val
	return nil
}

func loadFloat(key string, dst *float64) error {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("invalid %s: %s", key, raw)
	}
	*dst = val
	return nil
}
