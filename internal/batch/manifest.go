package batch

import (
	"encoding/json"
	"os"
	"path"
	"strconv"

	"iso-landgen/internal/tileset"
)

// ManifestEntry represents one tile in the output manifest.
type ManifestEntry struct {
	Rotation       int    `json:"rotation"`
	Index          int    `json:"index"`
	Source         string `json:"source"`
	SourceRotation int    `json:"source_rotation"`
	Image          string `json:"image"`
	Width          int    `json:"width"`
	Height         int    `json:"height"`
}

// WriteManifest writes manifest.json describing every written tile.
func WriteManifest(manifestPath string, tiles []tileset.OutputTile, format string) error {
	entries := make([]ManifestEntry, len(tiles))
	for i, t := range tiles {
		b := t.Image.Bounds()
		entries[i] = ManifestEntry{
			Rotation:       t.Rotation,
			Index:          t.Index,
			Source:         t.Source,
			SourceRotation: t.SourceRotation,
			Image:          path.Join(strconv.Itoa(t.Rotation), strconv.Itoa(t.Index)+Extension(format)),
			Width:          b.Dx(),
			Height:         b.Dy(),
		}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(manifestPath, data, 0644)
}
