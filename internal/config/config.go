package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	envPrefix = "GRADEPLAN"
)

type Config struct {
	Env    string
	DBPath string

	Log     LogConfig
	Scraper ScraperConfig
	Search  SearchConfig
	Redis   RedisConfig
}

type LogConfig struct {
	Level  string
	Format string
}

type ScraperConfig struct {
	BaseURL string
	Delay   time.Duration
	Timeout time.Duration
}

// SearchConfig holds the planner budgets applied when a command does not
// override them.
type SearchConfig struct {
	MaxTerms int
	MaxPlans int
	TopPlans int
}

// RedisConfig enables the section cache when Addr is set.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// Load reads GRADEPLAN_* settings from the environment after merging the
// given .env files (or ./.env when none are named). Missing files are fine.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading %s: %w", f, err)
		}
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := setDefaults(v); err != nil {
		return nil, err
	}

	cfg := &Config{
		Env:    v.GetString("ENV"),
		DBPath: v.GetString("DB"),
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		Scraper: ScraperConfig{
			BaseURL: v.GetString("SCRAPER_BASE_URL"),
			Delay:   parseDuration(v.GetString("SCRAPER_DELAY"), 500*time.Millisecond),
			Timeout: parseDuration(v.GetString("SCRAPER_TIMEOUT"), 30*time.Second),
		},
		Search: SearchConfig{
			MaxTerms: v.GetInt("SEARCH_MAX_TERMS"),
			MaxPlans: v.GetInt("SEARCH_MAX_PLANS"),
			TopPlans: v.GetInt("TOP_PLANS"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
			TTL:      parseDuration(v.GetString("REDIS_TTL"), 24*time.Hour),
		},
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("finding home directory: %w", err)
	}

	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("DB", filepath.Join(home, ".gradeplan", "gradeplan.db"))

	v.SetDefault("LOG_LEVEL", "warn")
	v.SetDefault("LOG_FORMAT", "console")

	v.SetDefault("SCRAPER_BASE_URL", "https://www.dac.unicamp.br/portal/caderno-de-horarios")
	v.SetDefault("SCRAPER_DELAY", "500ms")
	v.SetDefault("SCRAPER_TIMEOUT", "30s")

	v.SetDefault("SEARCH_MAX_TERMS", 12)
	v.SetDefault("SEARCH_MAX_PLANS", 20000)
	v.SetDefault("TOP_PLANS", 5)

	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_TTL", "24h")
	return nil
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return d
}
