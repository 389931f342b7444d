package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "omara.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := writeConfig(t, `
backend: bolt
db: /tmp/wardrobe.bolt
outfits:
  count: 5
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, BackendBolt, cfg.Backend)
	assert.Equal(t, "/tmp/wardrobe.bolt", cfg.DB)
	assert.Equal(t, 5, cfg.Outfits.Count)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "San Francisco, CA", cfg.Weather.Location)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := map[string]string{
		"unknown backend": "backend: postgres\n",
		"negative count":  "outfits:\n  count: -1\n",
		"bad yaml":        "backend: [sqlite\n",
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidateMemoryNeedsNoPath(t *testing.T) {
	cfg := Default()
	cfg.Backend = BackendMemory
	cfg.DB = ""
	assert.NoError(t, cfg.Validate())
}

func TestDBPathDefaultsPerBackend(t *testing.T) {
	tests := []struct {
		backend, db, want string
	}{
		{BackendSQLite, "", "omara.sqlite3"},
		{BackendBolt, "", "omara.bolt"},
		{BackendMemory, "", ""},
		{BackendBolt, "/data/wardrobe.db", "/data/wardrobe.db"},
	}

	for _, tt := range tests {
		cfg := Default()
		cfg.Backend, cfg.DB = tt.backend, tt.db
		assert.Equal(t, tt.want, cfg.DBPath(), "backend %s, db %q", tt.backend, tt.db)
	}
}

func TestLoadBoltWithoutPath(t *testing.T) {
	cfg, err := Load(writeConfig(t, "backend: bolt\n"))
	require.NoError(t, err)
	assert.Equal(t, "omara.bolt", cfg.DBPath())
}
