package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_IsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Contains(t, cfg.Platforms, "gupy")
	assert.NotEmpty(t, cfg.JobTypes["dev"])
	assert.GreaterOrEqual(t, cfg.DelayMaxSeconds, cfg.DelayMinSeconds)
}

func TestLoadConfig_ParsesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{
		"platforms": ["gupy"],
		"job_type": "dev",
		"delay_min_seconds": 0.5,
		"delay_max_seconds": 2,
		"max_pages": 5
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"gupy"}, cfg.Platforms)
	assert.Equal(t, 0.5, cfg.DelayMinSeconds)
	assert.Equal(t, 5, cfg.MaxPages)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoadConfig_BadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestValidate_RejectsInvertedDelays(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DelayMinSeconds = 5
	cfg.DelayMaxSeconds = 1
	assert.Error(t, cfg.Validate())
}

func TestValidate_RejectsUnknownJobType(t *testing.T) {
	cfg := DefaultConfig()
	cfg.JobType = "astronaut"
	assert.Error(t, cfg.Validate())
}

func TestValidate_RejectsMissingPlatformConfigDir(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PlatformConfigDir = filepath.Join(t.TempDir(), "does-not-exist")
	assert.Error(t, cfg.Validate())
}

func TestValidate_RejectsOutOfRangeRetries(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxRetries = 99
	assert.Error(t, cfg.Validate())
}

func TestMergeWithDefaults_FillsUnsetFields(t *testing.T) {
	cfg := Config{JobType: "admin"}
	merged := cfg.MergeWithDefaults(DefaultConfig())

	assert.Equal(t, "admin", merged.JobType)
	assert.Equal(t, DefaultConfig().Platforms, merged.Platforms)
	assert.Equal(t, DefaultConfig().MaxPages, merged.MaxPages)
	assert.NotNil(t, merged.Credentials)
}

func TestLoadCredentialsFromEnv(t *testing.T) {
	t.Setenv("GUPY_EMAIL", "me@example.com")
	t.Setenv("GUPY_PASSWORD", "secret")
	t.Setenv("SCRAPING_DELAY_MIN", "2.5")
	t.Setenv("MAX_RETRIES", "7")

	cfg := DefaultConfig()
	cfg.LoadCredentialsFromEnv()

	creds, ok := cfg.Credentials["gupy"]
	require.True(t, ok)
	assert.Equal(t, "me@example.com", creds.Email)
	assert.Equal(t, "secret", creds.Password)
	assert.Equal(t, 2.5, cfg.DelayMinSeconds)
	assert.Equal(t, 7, cfg.MaxRetries)
}

func TestLoadCredentialsFromEnv_AbsentPlatformsSkipped(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LoadCredentialsFromEnv()
	_, ok := cfg.Credentials["catho"]
	assert.False(t, ok)
}

func TestKeywords(t *testing.T) {
	cfg := DefaultConfig()
	assert.NotEmpty(t, cfg.Keywords("dev"))
	assert.Nil(t, cfg.Keywords("unknown"))
}
