package artifacts

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ErrNoArtifacts is returned when the scan matched nothing.
var ErrNoArtifacts = errors.New("no artifacts found")

// Locator scans one glob pattern.
type Locator struct {
	Pattern string
}

// Locate runs the scan for l.Pattern.
func (l Locator) Locate() ([]string, error) {
	return Locate(l.Pattern)
}

// Locate returns the files matching pattern in enumeration order. There is
// no waiting for late files; an empty result yields ErrNoArtifacts.
func Locate(pattern string) ([]string, error) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("glob %q: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w matching %s", ErrNoArtifacts, pattern)
	}
	return matches, nil
}

// Artifact describes a located package on disk.
type Artifact struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// Describe stats each path. Paths that vanished since the scan are reported
// as errors rather than skipped.
func Describe(paths []string) ([]Artifact, error) {
	out := make([]Artifact, 0, len(paths))
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("stat artifact: %w", err)
		}
		out = append(out, Artifact{
			Path:    path,
			Name:    filepath.Base(path),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}
	return out, nil
}
