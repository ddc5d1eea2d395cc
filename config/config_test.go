package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	var cfg Config
	require.NoError(t, v.Unmarshal(&cfg))
	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, 15*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 2*time.Second, cfg.ScanDebounce)
	assert.Equal(t, 500, cfg.StaffPageSize)
	assert.Equal(t, 20, cfg.LedgerPageSize)
	assert.Equal(t, "remote", cfg.StorageDriver)
	assert.Equal(t, "redis", cfg.SessionBackend)
	assert.False(t, cfg.RemindersEnabled)
}

func TestEnvOverridesDefaults(t *testing.T) {
	t.Setenv("SCAN_DEBOUNCE", "5s")
	t.Setenv("STAFF_PAGE_SIZE", "100")

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	var cfg Config
	require.NoError(t, v.Unmarshal(&cfg))
	assert.Equal(t, 5*time.Second, cfg.ScanDebounce)
	assert.Equal(t, 100, cfg.StaffPageSize)
}

func TestCORSOriginList(t *testing.T) {
	prev := AppConfig
	t.Cleanup(func() { AppConfig = prev })

	AppConfig.CORSOrigins = " https://a.example , ,https://b.example"
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, CORSOriginList())

	AppConfig.CORSOrigins = ""
	assert.Empty(t, CORSOriginList())
}

func TestPushEnabled(t *testing.T) {
	prev := AppConfig
	t.Cleanup(func() { AppConfig = prev })

	AppConfig.FirebaseCredentialsFile = ""
	assert.False(t, PushEnabled())
	AppConfig.FirebaseCredentialsFile = "sa.json"
	assert.True(t, PushEnabled())
}
