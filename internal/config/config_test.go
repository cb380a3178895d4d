package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allKeys = []string{
	"ENV", "DB", "LOG_LEVEL", "LOG_FORMAT",
	"SCRAPER_BASE_URL", "SCRAPER_DELAY", "SCRAPER_TIMEOUT",
	"SEARCH_MAX_TERMS", "SEARCH_MAX_PLANS", "TOP_PLANS",
	"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB", "REDIS_TTL",
}

// clearEnv unsets every GRADEPLAN_ variable for the test and restores the
// previous values afterwards.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range allKeys {
		name := envPrefix + "_" + k
		t.Setenv(name, "")
		require.NoError(t, os.Unsetenv(name))
	}
}

func missingEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "absent.env")
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(missingEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, filepath.Join(home, ".gradeplan", "gradeplan.db"), cfg.DBPath)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 500*time.Millisecond, cfg.Scraper.Delay)
	assert.Equal(t, 30*time.Second, cfg.Scraper.Timeout)
	assert.Equal(t, SearchConfig{MaxTerms: 12, MaxPlans: 20000, TopPlans: 5}, cfg.Search)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Equal(t, 24*time.Hour, cfg.Redis.TTL)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("GRADEPLAN_DB", "/tmp/plans.db")
	t.Setenv("GRADEPLAN_SCRAPER_DELAY", "2s")
	t.Setenv("GRADEPLAN_SEARCH_MAX_TERMS", "8")
	t.Setenv("GRADEPLAN_REDIS_ADDR", "localhost:6379")
	t.Setenv("GRADEPLAN_REDIS_DB", "3")

	cfg, err := Load(missingEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, "/tmp/plans.db", cfg.DBPath)
	assert.Equal(t, 2*time.Second, cfg.Scraper.Delay)
	assert.Equal(t, 8, cfg.Search.MaxTerms)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 3, cfg.Redis.DB)
}

func TestLoad_BadDurationFallsBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("GRADEPLAN_SCRAPER_TIMEOUT", "soon")

	cfg, err := Load(missingEnvFile(t))
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, cfg.Scraper.Timeout)
}

func TestLoad_ReadsEnvFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("GRADEPLAN_TOP_PLANS=7\nGRADEPLAN_LOG_FORMAT=json\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Search.TopPlans)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_EnvironmentBeatsEnvFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("GRADEPLAN_TOP_PLANS", "2")
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("GRADEPLAN_TOP_PLANS=7\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Search.TopPlans)
}
