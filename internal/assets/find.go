package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
)

// Conventional subdirectories next to a map file.
const (
	TilesetDir = ".tsx"
	ImageDir   = "prop"
)

var errFound = errors.New("found")

// Find locates a file referenced from a map or tileset in baseDir.
// Lookup order:
//  1. baseDir/preferred/<basename of ref>
//  2. ref as written, then ref relative to baseDir
//  3. a recursive search of baseDir for the basename
func Find(baseDir, preferred, ref string) (string, error) {
	if ref == "" {
		return "", fmt.Errorf("%w: empty reference", ErrNotFound)
	}
	name := filepath.Base(ref)

	if preferred != "" {
		if p := filepath.Join(baseDir, preferred, name); fileExists(p) {
			return p, nil
		}
	}

	if fileExists(ref) {
		return ref, nil
	}
	if !filepath.IsAbs(ref) {
		if p := filepath.Join(baseDir, ref); fileExists(p) {
			return p, nil
		}
	}

	var found string
	err := filepath.WalkDir(baseDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable subtrees are skipped, not fatal.
			if d != nil && d.IsDir() && path != baseDir {
				return fs.SkipDir
			}
			return nil
		}
		if !d.IsDir() && d.Name() == name {
			found = path
			return errFound
		}
		return nil
	})
	if found != "" {
		return found, nil
	}
	if err != nil && !errors.Is(err, errFound) {
		return "", fmt.Errorf("searching %s: %w", baseDir, err)
	}
	return "", fmt.Errorf("%w: %s (searched %s)", ErrNotFound, ref, baseDir)
}
