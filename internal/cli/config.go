package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/postscape/postscape/pkg/pipeline"
)

// Cache backend names accepted in the config file.
const (
	CacheBackendFile  = "file"
	CacheBackendRedis = "redis"
	CacheBackendNone  = "none"
)

// Config is the on-disk CLI configuration, loaded from a TOML file.
// All fields are optional; command-line flags override config values,
// and pipeline defaults fill the rest.
type Config struct {
	Pipeline PipelineConfig `toml:"pipeline"`
	Cache    CacheConfig    `toml:"cache"`
}

// PipelineConfig mirrors the tunable pipeline options.
type PipelineConfig struct {
	SpaceScale      float64 `toml:"space_scale"`
	PerlinScale     float64 `toml:"perlin_scale"`
	PerlinAmplitude float64 `toml:"perlin_amplitude"`
	UseColors       bool    `toml:"use_colors"`
	Seed            uint64  `toml:"seed"`
	NoiseMode       string  `toml:"noise_mode"`
	MaxPerCharacter int     `toml:"max_per_character"`
	Falloff         float64 `toml:"falloff"`
	Resolution      int     `toml:"resolution"`
}

// CacheConfig selects the cache backend.
type CacheConfig struct {
	Backend   string `toml:"backend"`    // file (default), redis, none
	RedisAddr string `toml:"redis_addr"` // host:port, for the redis backend
}

// LoadConfig reads the config file at path. When path is empty the
// search order is ./postscape.toml, then the XDG config directory.
// A missing file is not an error; the zero config is returned.
func LoadConfig(path string) (Config, error) {
	var cfg Config

	if path == "" {
		path = findConfig()
		if path == "" {
			return cfg, nil
		}
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) {
			return cfg, fmt.Errorf("config file not found: %s", path)
		}
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Cache.Backend {
	case "", CacheBackendFile, CacheBackendRedis, CacheBackendNone:
	default:
		return fmt.Errorf("invalid cache backend: %q (must be one of: file, redis, none)", c.Cache.Backend)
	}
	if c.Cache.Backend == CacheBackendRedis && c.Cache.RedisAddr == "" {
		return fmt.Errorf("cache backend %q requires redis_addr", CacheBackendRedis)
	}
	return nil
}

// findConfig returns the first config file found in the search order,
// or empty if none exists.
func findConfig() string {
	candidates := []string{"postscape.toml"}
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		candidates = append(candidates, filepath.Join(configHome, appName, "config.toml"))
	} else if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".config", appName, "config.toml"))
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// PipelineOptions converts the config into pipeline options.
// Zero-valued fields stay zero so pipeline defaults apply.
func (c Config) PipelineOptions() pipeline.Options {
	return pipeline.Options{
		SpaceScale:      c.Pipeline.SpaceScale,
		PerlinScale:     c.Pipeline.PerlinScale,
		PerlinAmplitude: c.Pipeline.PerlinAmplitude,
		UseColors:       c.Pipeline.UseColors,
		Seed:            c.Pipeline.Seed,
		NoiseMode:       c.Pipeline.NoiseMode,
		MaxPerCharacter: c.Pipeline.MaxPerCharacter,
		Falloff:         c.Pipeline.Falloff,
		Resolution:      c.Pipeline.Resolution,
	}
}
