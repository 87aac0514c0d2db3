package artifacts

import (
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
)

// UniversalMarker identifies packages that bundle every ABI.
const UniversalMarker = "universal"

// Selection is the artifact chosen for delivery.
type Selection struct {
	Path      string
	Name      string
	Universal bool
}

// IsUniversal reports whether the file name marks a universal package.
func IsUniversal(path string) bool {
	// Casers carry state, so each call gets its own.
	return strings.Contains(cases.Fold().String(filepath.Base(path)), UniversalMarker)
}

// Select picks the first universal package, else the first path. It returns
// false only for an empty input.
func Select(paths []string) (Selection, bool) {
	if len(paths) == 0 {
		return Selection{}, false
	}
	for _, path := range paths {
		if IsUniversal(path) {
			return Selection{Path: path, Name: filepath.Base(path), Universal: true}, true
		}
	}
	return Selection{Path: paths[0], Name: filepath.Base(paths[0])}, true
}
