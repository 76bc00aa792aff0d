package tileset

import (
	"context"
	"fmt"
	"image"
	"runtime"

	"iso-landgen/internal/postprocess"
	"iso-landgen/internal/raster"
	"iso-landgen/internal/terrain"
	"iso-landgen/internal/texture"

	"golang.org/x/sync/errgroup"
)

// Options controls one generation run.
type Options struct {
	Strength         float64
	Diagonal         bool
	DiagonalOnSlopes bool
	Workers          int
}

// Steps returns the number of rotation steps the options call for.
// Diagonal-on-slopes reads rotations 4–7, so it implies diagonal mode.
func (o Options) Steps() int {
	if o.Diagonal || o.DiagonalOnSlopes {
		return raster.StepsDiagonal
	}
	return raster.StepsOrthogonal
}

// Engine derives the whole tile set from one source texture.
type Engine struct {
	tables   *terrain.Tables
	stencils texture.Resolver
	opts     Options
	bases    []*image.NRGBA
	tiles    *TileCache
}

// New expands the source into its rotation steps and prepares an empty
// tile cache.
func New(src *image.NRGBA, tables *terrain.Tables, stencils texture.Resolver, opts Options) (*Engine, error) {
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	bases, err := raster.Expand(src, opts.Steps())
	if err != nil {
		return nil, err
	}
	e := &Engine{
		tables:   tables,
		stencils: stencils,
		opts:     opts,
		bases:    bases,
	}
	e.tiles = NewTileCache(e.buildTile)
	return e, nil
}

// Steps returns the number of rotation steps in this run.
func (e *Engine) Steps() int {
	return len(e.bases)
}

// Base returns the rotated source for a step.
func (e *Engine) Base(step int) *image.NRGBA {
	return e.bases[step]
}

// Tile returns the projected, clipped and shaded tile for (a, step).
func (e *Engine) Tile(a terrain.Archetype, step int) (*image.NRGBA, error) {
	if step < 0 || step >= len(e.bases) {
		return nil, fmt.Errorf("tileset: rotation %d out of range [0,%d)", step, len(e.bases))
	}
	return e.tiles.Get(a, step)
}

func (e *Engine) buildTile(a terrain.Archetype, step int) (*image.NRGBA, error) {
	m, err := e.tables.Matrix(a)
	if err != nil {
		return nil, fmt.Errorf("tileset: %w", err)
	}
	factor, err := terrain.ShadeMultiplier(a, e.opts.Strength)
	if err != nil {
		return nil, fmt.Errorf("tileset: %w", err)
	}
	stencil, err := e.stencils.Resolve(a.StencilName())
	if err != nil {
		return nil, fmt.Errorf("tileset: %v: %w", a, err)
	}

	projected := raster.Project(e.bases[step], m)
	tile, err := postprocess.CutToStencil(projected, stencil)
	if err != nil {
		return nil, fmt.Errorf("tileset: %v rotation %d: %w", a, step, err)
	}
	return postprocess.Brighten(tile, factor), nil
}

// Generate derives every raw and composite tile and addresses them. Work
// fans out over Options.Workers goroutines; the first error cancels the
// rest and nothing partial is returned.
func (e *Engine) Generate(ctx context.Context) (*TileSet, error) {
	steps := e.Steps()
	archetypes := terrain.Archetypes()
	defs := e.tables.Composites

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.opts.Workers)

	for _, a := range archetypes {
		for step := 0; step < steps; step++ {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				_, err := e.Tile(a, step)
				return err
			})
		}
	}

	composed := make([][]*image.NRGBA, len(defs))
	for i, def := range defs {
		composed[i] = make([]*image.NRGBA, steps)
		for step := 0; step < steps; step++ {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				img, err := e.ComposeStep(def, step)
				if err != nil {
					return err
				}
				composed[i][step] = img
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	raw := make(map[terrain.Archetype][]*image.NRGBA, len(archetypes))
	for _, a := range archetypes {
		imgs := make([]*image.NRGBA, steps)
		for step := range imgs {
			img, err := e.Tile(a, step)
			if err != nil {
				return nil, err
			}
			imgs[step] = img
		}
		raw[a] = imgs
	}
	composites := make(map[int][]*image.NRGBA, len(defs))
	for i, def := range defs {
		composites[def.Index] = composed[i]
	}

	return Index(e.tables, raw, composites, steps, e.opts.DiagonalOnSlopes)
}
