package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/linerider/trackphysics/internal/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultEngineConfigResolvesSpecDefaults(t *testing.T) {
	t.Parallel()
	cfg := DefaultEngineConfig()

	assert.Equal(t, 0.175, cfg.GetGravityY())
	assert.Equal(t, 14.0, cfg.GetCellSize())
	assert.Equal(t, 6, cfg.GetConstraintIterations())
	assert.Equal(t, 0, cfg.GetCacheFrameCap())
	assert.Equal(t, grid.V6_2, cfg.GetDefaultGridVersion())
}

func TestValidateRejectsNonPositiveCellSize(t *testing.T) {
	t.Parallel()
	bad := -1.0
	cfg := &EngineConfig{CellSize: &bad}
	require.Error(t, cfg.Validate())
}

func TestValidateRejectsNonPositiveIterations(t *testing.T) {
	t.Parallel()
	bad := 0
	cfg := &EngineConfig{ConstraintIterations: &bad}
	require.Error(t, cfg.Validate())
}

func TestValidateRejectsNegativeCacheCap(t *testing.T) {
	t.Parallel()
	bad := -5
	cfg := &EngineConfig{CacheFrameCap: &bad}
	require.Error(t, cfg.Validate())
}

func TestValidateRejectsUnknownGridVersion(t *testing.T) {
	t.Parallel()
	bad := grid.Version(99)
	cfg := &EngineConfig{DefaultGridVersion: &bad}
	require.Error(t, cfg.Validate())
}

func TestLoadConfigRejectsNonJSONExtension(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "engine.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o600))

	_, err := LoadConfig(path)
	require.Error(t, err)
}

func TestLoadConfigRejectsOversizedFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "engine.json")
	oversized := make([]byte, 2*1024*1024)
	require.NoError(t, os.WriteFile(path, oversized, 0o600))

	_, err := LoadConfig(path)
	require.Error(t, err)
}

func TestLoadConfigParsesPartialOverrides(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "engine.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"gravity_y": 0.2, "constraint_iterations": 8}`), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 0.2, cfg.GetGravityY())
	assert.Equal(t, 8, cfg.GetConstraintIterations())
	// Fields the file omits keep the built-in defaults.
	assert.Equal(t, 14.0, cfg.GetCellSize())
	assert.Equal(t, 0, cfg.GetCacheFrameCap())
}

func TestLoadConfigRejectsInvalidOverride(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "engine.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"cell_size": -1}`), 0o600))

	_, err := LoadConfig(path)
	require.Error(t, err)
}

func TestLoadConfigRejectsMissingFile(t *testing.T) {
	t.Parallel()
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}
