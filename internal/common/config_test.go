package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("COLLAB_PROVIDER", "local")
	t.Setenv("COLLAB_TIMEOUT", "5s")

	cfg := LoadConfig()
	assert.Equal(t, "fs", cfg.Cache.Backend)
	assert.Equal(t, "digest", cfg.Cache.KeyScheme)
	assert.Equal(t, 5*time.Second, cfg.Collaborator.Timeout)
	assert.Equal(t, DefaultTuning(), cfg.Tuning)
	require.NoError(t, cfg.Validate())
}

func TestValidateRejectsIncompleteBackends(t *testing.T) {
	t.Setenv("COLLAB_PROVIDER", "local")

	cfg := LoadConfig()
	cfg.Cache.Backend = "postgres"
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidInput)

	cfg = LoadConfig()
	cfg.Collaborator.Provider = "google"
	cfg.Google.ProjectID = ""
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidInput)

	cfg = LoadConfig()
	cfg.Cache.Backend = "redis"
	cfg.Cache.KeyScheme = "md5"
	err := cfg.Validate()
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "CACHE_BACKEND")
	assert.Contains(t, err.Error(), "CACHE_KEY_SCHEME")

	cfg = LoadConfig()
	cfg.Tuning.LabelThreshold = 1.5
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidInput)
}

func TestLoadTuningFileOverlays(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.toml")
	require.NoError(t, os.WriteFile(path, []byte("price_window = 45\nlabel_threshold = 0.8\n"), 0o644))

	cfg := LoadConfig()
	require.NoError(t, cfg.LoadTuningFile(path))
	assert.Equal(t, 45, cfg.Tuning.PriceWindow)
	assert.Equal(t, 0.8, cfg.Tuning.LabelThreshold)
	assert.Equal(t, 10, cfg.Tuning.VATWindow)
}

func TestLoadTuningFileRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.toml")
	require.NoError(t, os.WriteFile(path, []byte("price_window = [\n"), 0o644))

	cfg := LoadConfig()
	assert.Error(t, cfg.LoadTuningFile(path))
}
