package main

import (
	"flag"
	"fmt"
	"os"

	"iso-landgen/internal/raster"
	"iso-landgen/internal/terrain"
	"iso-landgen/internal/texture"
	"iso-landgen/internal/tileset"
)

func main() {
	maskDir := flag.String("masks", "masks", "Stencil directory")
	resolution := flag.Int("r", 1, "Resolution multiplier")
	strength := flag.Float64("s", 0.25, "Strength value")
	diagonal := flag.Bool("d", false, "Include diagonal rotations")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: inspect [flags] <texture>")
		os.Exit(2)
	}

	src, err := texture.LoadSource(flag.Arg(0), *resolution)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	idx, err := texture.BuildIndex(*maskDir)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	tables := terrain.DefaultTables()
	engine, err := tileset.New(src, tables, texture.NewCache(idx), tileset.Options{
		Strength: *strength,
		Diagonal: *diagonal,
		Workers:  1,
	})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Source: %dx%d, Steps: %d, Stencils: %d\n",
		src.Bounds().Dx(), src.Bounds().Dy(), engine.Steps(), idx.Len())

	for _, a := range terrain.Archetypes() {
		m, _ := tables.Matrix(a)
		atlas, _ := tables.Index(a)
		shade, _ := terrain.ShadeMultiplier(a, *strength)
		fmt.Printf("  %-18s atlas=%-2d matrix=%v shade=%.3f\n", a, atlas, m, shade)

		for step := 0; step < engine.Steps(); step++ {
			base := engine.Base(step)
			cw, ch := raster.CanvasSize(base.Bounds().Dx(), base.Bounds().Dy())
			tile, err := engine.Tile(a, step)
			if err != nil {
				fmt.Printf("    [%d] canvas=%dx%d  ERROR: %v\n", step, cw, ch, err)
				continue
			}
			fmt.Printf("    [%d] canvas=%dx%d tile=%dx%d\n",
				step, cw, ch, tile.Bounds().Dx(), tile.Bounds().Dy())
		}
	}
}
