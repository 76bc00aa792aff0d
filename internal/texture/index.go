package texture

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// Index maps stencil names, relative to the mask root, to filesystem paths.
// Names use forward slashes and lower case: "flat_land.png",
// "compound/cliff_r_left.png".
type Index struct {
	root    string
	entries map[string]string
}

// BuildIndex scans root and its subdirectories for stencil images.
func BuildIndex(root string) (*Index, error) {
	idx := &Index{root: root, entries: make(map[string]string)}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".png", ".tga", ".bmp", ".gif":
		default:
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		key := normalize(rel)
		if _, exists := idx.entries[key]; !exists {
			idx.entries[key] = path
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return idx, nil
}

// ResolvePath returns the filesystem path for a stencil name, or ("", false).
func (idx *Index) ResolvePath(name string) (string, bool) {
	path, ok := idx.entries[normalize(name)]
	return path, ok
}

// Root is the directory the index was built from.
func (idx *Index) Root() string {
	return idx.root
}

// Len returns the number of indexed stencils.
func (idx *Index) Len() int {
	return len(idx.entries)
}

func normalize(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	return strings.ToLower(filepath.ToSlash(filepath.Clean(name)))
}
