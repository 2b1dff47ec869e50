// Package config holds the engine's tunable constants: the handful of
// physical constants spec.md fixes (gravity, cell size, iteration count)
// that a caller may still want to override for testing or for replaying a
// track authored against slightly different defaults.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/linerider/trackphysics/internal/grid"
)

// DefaultConfigPath is a conventional location for an engine tuning
// overrides file. No file ships at this path and nothing in this module
// reads it; the built-in defaults come from DefaultEngineConfig.
const DefaultConfigPath = "config/engine.defaults.json"

// EngineConfig holds optional overrides for the engine's fixed physical
// constants. Every field is a pointer so that a partially-specified JSON
// document leaves the rest at the engine's built-in defaults; the Get*
// accessors resolve a nil field to its default.
type EngineConfig struct {
	// GravityY is the downward acceleration (world units per frame
	// squared) applied to every point every momentum pass.
	GravityY *float64 `json:"gravity_y,omitempty"`
	// CellSize is the spatial grid's cell width and height.
	CellSize *float64 `json:"cell_size,omitempty"`
	// ConstraintIterations is how many times the bone/line relaxation
	// pass runs per frame.
	ConstraintIterations *int `json:"constraint_iterations,omitempty"`
	// CacheFrameCap is a frame-count cap for an entity's state cache;
	// 0 means unbounded. It is validated and resolved here, but the
	// engine does not read it: caches are not trimmed by it.
	CacheFrameCap *int `json:"cache_frame_cap,omitempty"`
	// DefaultGridVersion is a traversal rule carried by the config. It
	// is validated and resolved here, but the engine does not read it:
	// engine.New and engine.NewWithConfig always take an explicit version.
	DefaultGridVersion *grid.Version `json:"default_grid_version,omitempty"`
}

const (
	defaultGravityY             = 0.175
	defaultCellSize             = 14.0
	defaultConstraintIterations = 6
	defaultCacheFrameCap        = 0
)

// DefaultEngineConfig returns the zero-value config, whose Get* accessors
// resolve to the engine's built-in defaults. The engine is required to run
// with no config file at all per spec.md's "no I/O" external interface, so
// this must never itself perform I/O.
func DefaultEngineConfig() *EngineConfig {
	return &EngineConfig{}
}

// LoadConfig loads an EngineConfig from a JSON file. The file is validated
// to have a .json extension and to be under the max file size, mirroring
// the teacher's tuning-file loader; fields the file omits keep their
// built-in default via the Get* accessors.
func LoadConfig(path string) (*EngineConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultEngineConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that every set field holds a physically sane value.
func (c *EngineConfig) Validate() error {
	if c.CellSize != nil && *c.CellSize <= 0 {
		return fmt.Errorf("cell_size must be positive, got %f", *c.CellSize)
	}
	if c.ConstraintIterations != nil && *c.ConstraintIterations <= 0 {
		return fmt.Errorf("constraint_iterations must be positive, got %d", *c.ConstraintIterations)
	}
	if c.CacheFrameCap != nil && *c.CacheFrameCap < 0 {
		return fmt.Errorf("cache_frame_cap must be non-negative, got %d", *c.CacheFrameCap)
	}
	if c.DefaultGridVersion != nil {
		switch *c.DefaultGridVersion {
		case grid.V6_0, grid.V6_1, grid.V6_2:
		default:
			return fmt.Errorf("default_grid_version must be a known grid version, got %d", *c.DefaultGridVersion)
		}
	}
	return nil
}

// GetGravityY returns the configured downward gravity, or the spec
// default of 0.175 world units per frame squared.
func (c *EngineConfig) GetGravityY() float64 {
	if c.GravityY == nil {
		return defaultGravityY
	}
	return *c.GravityY
}

// GetCellSize returns the configured grid cell size, or the spec default
// of 14.0.
func (c *EngineConfig) GetCellSize() float64 {
	if c.CellSize == nil {
		return defaultCellSize
	}
	return *c.CellSize
}

// GetConstraintIterations returns the configured relaxation iteration
// count, or the spec default of 6.
func (c *EngineConfig) GetConstraintIterations() int {
	if c.ConstraintIterations == nil {
		return defaultConstraintIterations
	}
	return *c.ConstraintIterations
}

// GetCacheFrameCap returns the configured cache frame cap, or 0 (meaning
// unbounded).
func (c *EngineConfig) GetCacheFrameCap() int {
	if c.CacheFrameCap == nil {
		return defaultCacheFrameCap
	}
	return *c.CacheFrameCap
}

// GetDefaultGridVersion returns the configured default grid version, or
// V6_2 (the most recent, origin-symmetric traversal rule).
func (c *EngineConfig) GetDefaultGridVersion() grid.Version {
	if c.DefaultGridVersion == nil {
		return grid.V6_2
	}
	return *c.DefaultGridVersion
}
