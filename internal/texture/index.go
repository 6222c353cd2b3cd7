package texture

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Index maps lowercase texture stems to filesystem paths under a root dir.
// When two files share a stem, formats with an alpha channel win: png, tga
// and webp over jpeg and bmp.
type Index struct {
	entries map[string]string
}

// BuildIndex walks root recursively. A missing root yields an empty index.
func BuildIndex(root string) *Index {
	idx := &Index{entries: make(map[string]string)}
	if root == "" {
		return idx
	}
	filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if !supported(ext) {
			return nil
		}
		stem := stemOf(path)
		existing, exists := idx.entries[stem]
		if !exists || alphaRank(ext) > alphaRank(filepath.Ext(existing)) {
			idx.entries[stem] = path
		}
		return nil
	})
	return idx
}

func alphaRank(ext string) int {
	switch strings.ToLower(ext) {
	case ".png", ".tga", ".webp":
		return 1
	}
	return 0
}

func stemOf(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	base := filepath.Base(name)
	return strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))
}

// ResolvePath returns the file for a texture name. Names that are existing
// paths resolve to themselves; otherwise the stem is looked up.
func (idx *Index) ResolvePath(name string) (string, bool) {
	if name == "" {
		return "", false
	}
	if info, err := os.Stat(name); err == nil && !info.IsDir() {
		return name, true
	}
	path, ok := idx.entries[stemOf(name)]
	return path, ok
}

// Len returns the number of indexed textures.
func (idx *Index) Len() int {
	return len(idx.entries)
}
