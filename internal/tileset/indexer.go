package tileset

import (
	"fmt"
	"image"
	"sort"
	"strings"

	"iso-landgen/internal/terrain"
)

// Address locates an output tile: the rotation folder and the atlas index.
type Address struct {
	Rotation int
	Index    int
}

// OutputTile is a final, addressed tile. SourceRotation differs from
// Rotation only where a diagonal-on-slopes override substituted the image.
type OutputTile struct {
	Address
	Source         string
	SourceRotation int
	Image          *image.NRGBA
}

// TileSet is the complete addressed output of one run.
type TileSet struct {
	Rotations int
	Tiles     []OutputTile
	byAddr    map[Address]int
}

// Get returns the tile written at (rotation, index).
func (s *TileSet) Get(rotation, index int) (OutputTile, bool) {
	i, ok := s.byAddr[Address{rotation, index}]
	if !ok {
		return OutputTile{}, false
	}
	return s.Tiles[i], true
}

// Len returns the number of output tiles.
func (s *TileSet) Len() int {
	return len(s.Tiles)
}

type slot struct {
	source string
	images []*image.NRGBA
}

// Index assigns every raw archetype tile and every composite its atlas
// address. When diagonalOnSlopes is set the table overrides replace
// rotation 0 of selected indices with another rotation's image.
func Index(tables *terrain.Tables, raw map[terrain.Archetype][]*image.NRGBA, composites map[int][]*image.NRGBA, rotations int, diagonalOnSlopes bool) (*TileSet, error) {
	slots := make(map[int]*slot, tables.AtlasSize())

	for _, def := range tables.Composites {
		imgs, ok := composites[def.Index]
		if !ok {
			return nil, fmt.Errorf("tileset: composite %d was not built", def.Index)
		}
		names := make([]string, len(def.Entries))
		for i, e := range def.Entries {
			names[i] = e.Archetype.String()
		}
		slots[def.Index] = &slot{source: strings.Join(names, "+"), images: imgs}
	}
	for _, a := range terrain.Archetypes() {
		idx, err := tables.Index(a)
		if err != nil {
			return nil, err
		}
		imgs, ok := raw[a]
		if !ok {
			return nil, fmt.Errorf("tileset: %v tiles were not built", a)
		}
		if _, clash := slots[idx]; clash {
			return nil, fmt.Errorf("tileset: atlas index %d assigned twice", idx)
		}
		slots[idx] = &slot{source: a.String(), images: imgs}
	}

	from := make(map[int]int)
	if diagonalOnSlopes {
		for _, o := range tables.Overrides {
			if _, ok := slots[o.Index]; !ok {
				return nil, fmt.Errorf("tileset: override for unknown atlas index %d", o.Index)
			}
			if o.From < 0 || o.From >= rotations {
				return nil, fmt.Errorf("tileset: override %d <- %d: only %d rotations", o.Index, o.From, rotations)
			}
			from[o.Index] = o.From
		}
	}

	set := &TileSet{Rotations: rotations, byAddr: make(map[Address]int)}
	indices := make([]int, 0, len(slots))
	for idx := range slots {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	for rot := 0; rot < rotations; rot++ {
		for _, idx := range indices {
			s := slots[idx]
			if len(s.images) != rotations {
				return nil, fmt.Errorf("tileset: atlas index %d has %d rotations, want %d", idx, len(s.images), rotations)
			}
			src := rot
			if f, ok := from[idx]; ok && rot == 0 {
				src = f
			}
			addr := Address{Rotation: rot, Index: idx}
			set.byAddr[addr] = len(set.Tiles)
			set.Tiles = append(set.Tiles, OutputTile{
				Address:        addr,
				Source:         s.source,
				SourceRotation: src,
				Image:          s.images[src],
			})
		}
	}
	return set, nil
}
