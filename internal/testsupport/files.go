package testsupport

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

// apkMagic is the zip local file header every APK starts with.
var apkMagic = []byte("PK\x03\x04")

// WriteAPK creates a fake package of exactly size bytes at path, creating
// parent directories as needed. Sizes below the zip header length are
// rounded up to it.
func WriteAPK(t testing.TB, path string, size int64) {
	t.Helper()

	if size < int64(len(apkMagic)) {
		size = int64(len(apkMagic))
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	data := append(append([]byte(nil), apkMagic...), bytes.Repeat([]byte{0x42}, int(size)-len(apkMagic))...)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
