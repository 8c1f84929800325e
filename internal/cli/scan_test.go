package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withScanFlags(t *testing.T) {
	t.Helper()
	origKey, origDetect, origCache := apiKey, detectors, noCache
	t.Cleanup(func() {
		apiKey, detectors, noCache = origKey, origDetect, origCache
	})
	apiKey = "test-key"
	detectors = "origin,drm,anticheat"
	noCache = false
}

func TestBuildConfig_Defaults(t *testing.T) {
	withScanFlags(t)

	cfg, err := buildConfig()
	require.NoError(t, err)

	assert.True(t, cfg.Scan.DetectOrigin)
	assert.True(t, cfg.Scan.DetectDRM)
	assert.True(t, cfg.Scan.DetectAntiCheat)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, "test-key", cfg.HTTP.APIKey)
}

func TestBuildConfig_DetectorSubset(t *testing.T) {
	withScanFlags(t)
	detectors = "origin, Anti-Cheat"

	cfg, err := buildConfig()
	require.NoError(t, err)

	assert.True(t, cfg.Scan.DetectOrigin)
	assert.False(t, cfg.Scan.DetectDRM)
	assert.True(t, cfg.Scan.DetectAntiCheat)
}

func TestBuildConfig_UnknownDetector(t *testing.T) {
	withScanFlags(t)
	detectors = "origin,telemetry"

	_, err := buildConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "telemetry")
}

func TestBuildConfig_MissingAPIKey(t *testing.T) {
	withScanFlags(t)
	apiKey = ""
	t.Setenv("STEAM_API_KEY", "")

	_, err := buildConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STEAM_API_KEY")
}

func TestBuildConfig_APIKeyFromEnv(t *testing.T) {
	withScanFlags(t)
	apiKey = ""
	t.Setenv("STEAM_API_KEY", "env-key")

	cfg, err := buildConfig()
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.HTTP.APIKey)
}

func TestBuildConfig_NoCache(t *testing.T) {
	withScanFlags(t)
	noCache = true

	cfg, err := buildConfig()
	require.NoError(t, err)
	assert.False(t, cfg.Cache.Enabled)
}
