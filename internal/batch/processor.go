package batch

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"iso-landgen/internal/tileset"

	"github.com/HugoSmits86/nativewebp"
	"github.com/disintegration/imaging"
)

// Config holds all shared settings for a write run.
type Config struct {
	OutputDir string
	Format    string // "png" or "webp"
	Workers   int
	Progress  io.Writer // nil disables the progress ticker
}

// Result holds the outcome of writing one tile.
type Result struct {
	Rotation int
	Index    int
	Path     string
	Success  bool
	Error    string
}

// Extension returns the file extension for an output format.
func Extension(format string) string {
	if format == "webp" {
		return ".webp"
	}
	return ".png"
}

// TilePath returns where the tile at (rotation, index) is written.
func TilePath(outputDir string, rotation, index int, format string) string {
	return filepath.Join(outputDir, strconv.Itoa(rotation), strconv.Itoa(index)+Extension(format))
}

// PrepareDirs creates one folder per rotation under outputDir.
func PrepareDirs(outputDir string, rotations int) error {
	for i := 0; i < rotations; i++ {
		if err := os.MkdirAll(filepath.Join(outputDir, strconv.Itoa(i)), 0755); err != nil {
			return fmt.Errorf("batch: %w", err)
		}
	}
	return nil
}

// Run writes all tiles using a worker pool.
func Run(cfg Config, tiles []tileset.OutputTile) []Result {
	total := len(tiles)
	results := make([]Result, total)
	var processed atomic.Int64

	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	if cfg.Progress != nil {
		go func() {
			ticker := time.NewTicker(2 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-done:
					return
				case <-ticker.C:
					p := processed.Load()
					if p > 0 {
						elapsed := time.Since(start).Seconds()
						rate := float64(p) / elapsed
						fmt.Fprintf(cfg.Progress, "  [%d/%d] %.1f tiles/sec\n", p, total, rate)
					}
				}
			}
		}()
	}

	// Worker pool
	tileChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range tileChan {
				results[idx] = writeTile(cfg, tiles[idx])
				processed.Add(1)
			}
		}()
	}

	// Send work
	for i := range tiles {
		tileChan <- i
	}
	close(tileChan)

	wg.Wait()
	close(done)

	return results
}

func writeTile(cfg Config, tile tileset.OutputTile) Result {
	res := Result{
		Rotation: tile.Rotation,
		Index:    tile.Index,
		Path:     TilePath(cfg.OutputDir, tile.Rotation, tile.Index, cfg.Format),
	}

	if err := os.MkdirAll(filepath.Dir(res.Path), 0755); err != nil {
		res.Error = err.Error()
		return res
	}

	f, err := os.Create(res.Path)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	defer f.Close()

	if err := Encode(f, tile.Image, cfg.Format); err != nil {
		res.Error = err.Error()
		return res
	}
	if err := f.Close(); err != nil {
		res.Error = err.Error()
		return res
	}

	res.Success = true
	return res
}

// Encode writes img as RGBA in the requested format.
func Encode(w io.Writer, img image.Image, format string) error {
	switch format {
	case "webp":
		if err := nativewebp.Encode(w, img, nil); err != nil {
			return fmt.Errorf("WebP encode: %w", err)
		}
		return nil
	case "png", "":
		if err := imaging.Encode(w, img, imaging.PNG); err != nil {
			return fmt.Errorf("PNG encode: %w", err)
		}
		return nil
	}
	return fmt.Errorf("unknown output format %q", format)
}
