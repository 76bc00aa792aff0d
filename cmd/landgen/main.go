package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"iso-landgen/internal/batch"
	"iso-landgen/internal/config"
	"iso-landgen/internal/terrain"
	"iso-landgen/internal/texture"
	"iso-landgen/internal/tileset"
)

// floatFlag records whether a float flag was set so a zero value can
// still override the config file.
type floatFlag struct {
	v   float64
	set bool
}

func (f *floatFlag) String() string { return strconv.FormatFloat(f.v, 'g', -1, 64) }

func (f *floatFlag) Set(s string) error {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid strength value %q", s)
	}
	f.v, f.set = v, true
	return nil
}

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	var inputPath, outputDir string
	flag.StringVar(&inputPath, "i", "", "Path to the input file (shorthand)")
	flag.StringVar(&inputPath, "input-path", "", "Path to the input file")
	flag.StringVar(&outputDir, "o", "", "Directory to save the output (shorthand)")
	flag.StringVar(&outputDir, "output-dir", "", "Directory to save the output")
	strength := &floatFlag{v: 0.25}
	flag.Var(strength, "s", "Strength value (shorthand)")
	flag.Var(strength, "strength", "Strength value (suggested: 0.25)")
	var resolution int
	flag.IntVar(&resolution, "r", 1, "Resolution of the output image (shorthand)")
	flag.IntVar(&resolution, "resolution", 1, "Resolution of the output image")
	var diagonal, diagonalOnSlopes bool
	flag.BoolVar(&diagonal, "d", false, "Output diagonal textures (shorthand)")
	flag.BoolVar(&diagonal, "diagonal", false, "Output diagonal textures")
	flag.BoolVar(&diagonalOnSlopes, "n", false, "Output diagonal textures on slopes (shorthand)")
	flag.BoolVar(&diagonalOnSlopes, "diagonal-on-slopes", false, "Output diagonal textures on slopes")
	maskDir := flag.String("masks", "", "Stencil directory (default: masks)")
	format := flag.String("format", "", "Output format: png or webp (default: png)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	noManifest := flag.Bool("no-manifest", false, "Skip writing manifest.json")

	flag.Parse()

	// Load config
	cfg := config.Default()
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	flags := config.Flags{
		InputPath: inputPath,
		OutputDir: outputDir,
		MaskDir:   *maskDir,
		Format:    *format,
		Workers:   *workers,
	}
	if strength.set {
		flags.Strength = &strength.v
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "r", "resolution":
			flags.Resolution = &resolution
		case "d", "diagonal":
			flags.Diagonal = &diagonal
		case "n", "diagonal-on-slopes":
			flags.DiagonalOnSlopes = &diagonalOnSlopes
		case "no-manifest":
			off := !*noManifest
			flags.Manifest = &off
		}
	})
	cfg.Resolve(flags)

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Load source texture
	src, err := texture.LoadSource(cfg.InputPath, cfg.Resolution)
	if err != nil {
		if errors.Is(err, terrain.ErrInputNotFound) {
			fmt.Fprintf(os.Stderr, "Invalid path: %v\n", err)
		} else {
			fmt.Fprintf(os.Stderr, "Error loading input: %v\n", err)
		}
		os.Exit(1)
	}

	// Build stencil index
	stencilIndex, err := texture.BuildIndex(cfg.MaskDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error indexing stencils in %s: %v\n", cfg.MaskDir, err)
		os.Exit(1)
	}
	stencils := texture.NewCache(stencilIndex)

	fmt.Printf("Isometric terrain tiles -> %s\n", cfg.OutputDir)
	fmt.Printf("Source: %s (%dx%d), Stencils: %d indexed\n",
		cfg.InputPath, src.Bounds().Dx(), src.Bounds().Dy(), stencilIndex.Len())
	fmt.Printf("Rotations: %d, Strength: %.2f, Workers: %d\n", cfg.Rotations(), cfg.Strength, cfg.Workers)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	tables := terrain.DefaultTables()
	engine, err := tileset.New(src, tables, stencils, tileset.Options{
		Strength:         cfg.Strength,
		Diagonal:         cfg.Diagonal,
		DiagonalOnSlopes: cfg.DiagonalOnSlopes,
		Workers:          cfg.Workers,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	set, err := engine.Generate(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating tiles: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generated %d tiles in %.1fs\n", set.Len(), time.Since(start).Seconds())

	// Write tiles
	if err := batch.PrepareDirs(cfg.OutputDir, set.Rotations); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	results := batch.Run(batch.Config{
		OutputDir: cfg.OutputDir,
		Format:    cfg.Format,
		Workers:   cfg.Workers,
		Progress:  os.Stdout,
	}, set.Tiles)

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	// Count results
	success, failed := 0, 0
	var errs []batch.Result
	for _, r := range results {
		if r.Success {
			success++
		} else {
			failed++
			errs = append(errs, r)
		}
	}

	fmt.Printf("Written: %d/%d\n", success, len(results))

	if len(errs) > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		limit := 20
		if len(errs) < limit {
			limit = len(errs)
		}
		for _, e := range errs[:limit] {
			fmt.Printf("  %d/%d: %s\n", e.Rotation, e.Index, e.Error)
		}
		os.Exit(1)
	}

	// Write manifest
	if cfg.Manifest {
		manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
		if err := batch.WriteManifest(manifestPath, set.Tiles, cfg.Format); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
		} else {
			fmt.Printf("Manifest: %s\n", manifestPath)
		}
	}
}
