package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"runtime"
)

// Config holds all configurable paths and generation settings.
type Config struct {
	// Paths
	InputPath string `json:"input_path"`
	OutputDir string `json:"output_dir"`
	MaskDir   string `json:"mask_dir"`

	// Generation settings
	Strength         float64 `json:"strength"`
	Resolution       int     `json:"resolution"`
	Diagonal         bool    `json:"diagonal"`
	DiagonalOnSlopes bool    `json:"diagonal_on_slopes"`

	// Output settings
	Format   string `json:"format"`
	Workers  int    `json:"workers"`
	Manifest bool   `json:"manifest"`
}

// Output formats.
const (
	FormatPNG  = "png"
	FormatWebP = "webp"
)

// Default returns the settings used when neither a config file nor a flag
// says otherwise.
func Default() Config {
	return Config{
		MaskDir:    "masks",
		Strength:   0.25,
		Resolution: 1,
		Format:     FormatPNG,
		Workers:    runtime.NumCPU(),
		Manifest:   true,
	}
}

// Load reads a JSON config file on top of Default.
// Fields not set in the file keep their default values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
// Pointer fields are nil when the flag was not given on the command line.
type Flags struct {
	InputPath        string
	OutputDir        string
	MaskDir          string
	Format           string
	Strength         *float64
	Resolution       *int
	Workers          int
	Diagonal         *bool
	DiagonalOnSlopes *bool
	Manifest         *bool
}

// Resolve applies CLI overrides and fills in anything still unset.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.InputPath != "" {
		c.InputPath = flags.InputPath
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.MaskDir != "" {
		c.MaskDir = flags.MaskDir
	}
	if flags.Format != "" {
		c.Format = flags.Format
	}
	if flags.Strength != nil {
		c.Strength = *flags.Strength
	}
	if flags.Resolution != nil {
		c.Resolution = *flags.Resolution
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Diagonal != nil {
		c.Diagonal = *flags.Diagonal
	}
	if flags.DiagonalOnSlopes != nil {
		c.DiagonalOnSlopes = *flags.DiagonalOnSlopes
	}
	if flags.Manifest != nil {
		c.Manifest = *flags.Manifest
	}

	// Defaults for anything left empty
	if c.MaskDir == "" {
		c.MaskDir = "masks"
	}
	if c.Format == "" {
		c.Format = FormatPNG
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}

	// The slope overrides read the 45° rotations
	if c.DiagonalOnSlopes {
		c.Diagonal = true
	}
}

// Rotations returns how many rotation folders a run produces.
func (c *Config) Rotations() int {
	if c.Diagonal {
		return 8
	}
	return 4
}

// Validate reports the first setting that makes a run impossible.
func (c *Config) Validate() error {
	if c.InputPath == "" {
		return errors.New("config: input path is required")
	}
	if c.OutputDir == "" {
		return errors.New("config: output directory is required")
	}
	if math.IsNaN(c.Strength) || math.IsInf(c.Strength, 0) || c.Strength < 0 {
		return fmt.Errorf("config: invalid strength %v (must be a finite value >= 0)", c.Strength)
	}
	if c.Resolution < 1 {
		return fmt.Errorf("config: invalid resolution %d (must be >= 1)", c.Resolution)
	}
	switch c.Format {
	case FormatPNG, FormatWebP:
	default:
		return fmt.Errorf("config: unknown format %q (png or webp)", c.Format)
	}
	return nil
}
