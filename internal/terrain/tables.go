package terrain

import (
	"fmt"
	"strings"

	"iso-landgen/internal/mathutil"
)

// CompositeEntry names one half of a composite tile: the archetype whose
// tile is used and the compound stencil that carves it.
type CompositeEntry struct {
	Archetype Archetype
	Stencil   string
}

// Side returns the half a compound stencil describes ("right", "left",
// "upper" or "lower"), or "" when the filename names none of them.
func (e CompositeEntry) Side() string {
	for _, s := range []string{"right", "left", "upper", "lower"} {
		if strings.Contains(e.Stencil, s) {
			return s
		}
	}
	return ""
}

// CompositeDefinition combines two half tiles into one atlas entry.
type CompositeDefinition struct {
	Index   int
	Entries []CompositeEntry
}

// Override replaces the rotation-0 image of an atlas index with the image
// of another rotation when diagonal-on-slopes mode is active.
type Override struct {
	Index int
	From  int
}

// Tables is the static configuration consumed by the engine. Build it once
// with DefaultTables and pass it around; nothing mutates it afterwards.
type Tables struct {
	Matrices   [numArchetypes]mathutil.Mat2
	AtlasIndex [numArchetypes]int
	Composites []CompositeDefinition
	Overrides  []Override
}

// Matrix returns the projection matrix of a.
func (t *Tables) Matrix(a Archetype) (mathutil.Mat2, error) {
	if !a.Valid() {
		return mathutil.Mat2{}, fmt.Errorf("%w: %v", ErrInvalidArchetype, a)
	}
	return t.Matrices[a], nil
}

// Index returns the atlas index a raw archetype tile is written to.
func (t *Tables) Index(a Archetype) (int, error) {
	if !a.Valid() {
		return 0, fmt.Errorf("%w: %v", ErrInvalidArchetype, a)
	}
	return t.AtlasIndex[a], nil
}

// AtlasSize is the number of distinct atlas indices (raw + composite).
func (t *Tables) AtlasSize() int {
	return len(t.AtlasIndex) + len(t.Composites)
}

// DefaultTables returns the stock terrain tile set: 9 raw orientations and
// 10 composites, atlas indices 0..18.
func DefaultTables() *Tables {
	return &Tables{
		Matrices: [numArchetypes]mathutil.Mat2{
			FlatLand:        {-2, 2, 1, 1},
			SlopeFrontRight: {-2, 2, 1.5, 1},
			SlopeFrontLeft:  {-2, 2, 1, 1.5},
			CliffFront:      {-2, 2, 1.5, 1.5},
			CliffRight:      {-2, 2, 1.5, 0.5},
			SlopeBackRight:  {-2, 2, 1, 0.5},
			SlopeBackLeft:   {-2, 2, 0.5, 1},
			CliffBack:       {-2, 2, 0.5, 0.5},
			CliffLeft:       {-2, 2, 0.5, 1.5},
		},
		AtlasIndex: [numArchetypes]int{
			FlatLand:        0,
			SlopeBackRight:  3,
			SlopeBackLeft:   6,
			SlopeFrontRight: 9,
			SlopeFrontLeft:  12,
			CliffFront:      15,
			CliffBack:       16,
			CliffRight:      17,
			CliffLeft:       18,
		},
		Composites: []CompositeDefinition{
			{1, []CompositeEntry{{CliffRight, "cliff_r_left.png"}, {FlatLand, "flat_right.png"}}},
			{4, []CompositeEntry{{FlatLand, "flat_left.png"}, {CliffLeft, "cliff_l_right.png"}}},
			{5, []CompositeEntry{{CliffRight, "cliff_r_left.png"}, {CliffLeft, "cliff_l_right.png"}}},
			{11, []CompositeEntry{{FlatLand, "flat_left.png"}, {CliffRight, "cliff_r_right.png"}}},
			{14, []CompositeEntry{{CliffLeft, "cliff_l_left.png"}, {FlatLand, "flat_right.png"}}},
			{2, []CompositeEntry{{CliffBack, "cliff_b_lower.png"}, {FlatLand, "flat_upper.png"}}},
			{7, []CompositeEntry{{FlatLand, "flat_lower.png"}, {CliffBack, "cliff_b_upper.png"}}},
			{8, []CompositeEntry{{FlatLand, "flat_lower.png"}, {CliffFront, "cliff_f_upper.png"}}},
			{10, []CompositeEntry{{CliffBack, "cliff_b_lower.png"}, {CliffFront, "cliff_f_upper.png"}}},
			{13, []CompositeEntry{{CliffFront, "cliff_f_lower.png"}, {FlatLand, "flat_upper.png"}}},
		},
		Overrides: []Override{
			{Index: 12, From: 1},
			{Index: 3, From: 1},
			{Index: 15, From: 5},
			{Index: 16, From: 7},
			{Index: 17, From: 6},
			{Index: 18, From: 4},
		},
	}
}
