package artifacts_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"apkship/internal/artifacts"
)

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("apk"), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
}

func TestLocateReturnsMatches(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "app-arm64-v8a-release.apk", "app-universal-release.apk", "output-metadata.json")

	paths, err := artifacts.Locate(filepath.Join(dir, "*.apk"))
	if err != nil {
		t.Fatalf("Locate returned error: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("expected 2 apks, got %v", paths)
	}
	for _, path := range paths {
		if !strings.HasSuffix(path, ".apk") {
			t.Fatalf("unexpected match %q", path)
		}
	}
}

func TestLocateEmptyIsErrNoArtifacts(t *testing.T) {
	_, err := artifacts.Locate(filepath.Join(t.TempDir(), "*.apk"))
	if !errors.Is(err, artifacts.ErrNoArtifacts) {
		t.Fatalf("expected ErrNoArtifacts, got %v", err)
	}
}

func TestLocateBadPattern(t *testing.T) {
	_, err := artifacts.Locate("[")
	if err == nil || errors.Is(err, artifacts.ErrNoArtifacts) {
		t.Fatalf("expected pattern error, got %v", err)
	}
}

func TestDescribeReportsSizes(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "app.apk")

	described, err := artifacts.Describe([]string{filepath.Join(dir, "app.apk")})
	if err != nil {
		t.Fatalf("Describe returned error: %v", err)
	}
	if len(described) != 1 || described[0].Name != "app.apk" || described[0].Size != 3 {
		t.Fatalf("unexpected description %+v", described)
	}
	if _, err := artifacts.Describe([]string{filepath.Join(dir, "gone.apk")}); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestSelect(t *testing.T) {
	tests := []struct {
		name          string
		paths         []string
		wantPath      string
		wantUniversal bool
	}{
		{
			name:          "prefers universal",
			paths:         []string{"app-arm64.apk", "app-universal-release.apk"},
			wantPath:      "app-universal-release.apk",
			wantUniversal: true,
		},
		{
			name:     "falls back to first",
			paths:    []string{"app-arm64.apk", "app-x86.apk"},
			wantPath: "app-arm64.apk",
		},
		{
			name:          "case insensitive",
			paths:         []string{"/out/app-x86.apk", "/out/App-UNIVERSAL.apk"},
			wantPath:      "/out/App-UNIVERSAL.apk",
			wantUniversal: true,
		},
		{
			name:          "first universal wins",
			paths:         []string{"a-universal.apk", "b-universal.apk"},
			wantPath:      "a-universal.apk",
			wantUniversal: true,
		},
		{
			name:     "directory name is ignored",
			paths:    []string{"/universal/app-arm64.apk"},
			wantPath: "/universal/app-arm64.apk",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sel, ok := artifacts.Select(tc.paths)
			if !ok {
				t.Fatal("expected a selection")
			}
			if sel.Path != tc.wantPath {
				t.Fatalf("expected %q, got %q", tc.wantPath, sel.Path)
			}
			if sel.Universal != tc.wantUniversal {
				t.Fatalf("expected universal=%v, got %v", tc.wantUniversal, sel.Universal)
			}
			if sel.Name != filepath.Base(tc.wantPath) {
				t.Fatalf("unexpected name %q", sel.Name)
			}
		})
	}
}

func TestSelectEmpty(t *testing.T) {
	if _, ok := artifacts.Select(nil); ok {
		t.Fatal("expected no selection for empty input")
	}
}

func TestCaptionUniversal(t *testing.T) {
	sel, _ := artifacts.Select([]string{"app-arm64.apk", "app-universal-release.apk"})
	got := artifacts.Caption(sel, "✨ Includes professional KHQR redesign and one-click ACLEDA payment.")
	want := "🚀 <b>New Release Build (Universal)</b>\n\n📦 File: <code>app-universal-release.apk</code>\n✨ Includes professional KHQR redesign and one-click ACLEDA payment."
	if got != want {
		t.Fatalf("unexpected caption:\n%s\nwant:\n%s", got, want)
	}
}

func TestCaptionUniversalWithoutNotes(t *testing.T) {
	sel := artifacts.Selection{Name: "app-universal.apk", Universal: true}
	got := artifacts.Caption(sel, "  ")
	if strings.HasSuffix(got, "\n") || !strings.HasSuffix(got, "<code>app-universal.apk</code>") {
		t.Fatalf("unexpected caption %q", got)
	}
}

func TestCaptionGeneric(t *testing.T) {
	sel, _ := artifacts.Select([]string{"app-arm64.apk", "app-x86.apk"})
	got := artifacts.Caption(sel, "ignored for generic builds")
	want := "🚀 <b>New Release Build</b>\n\n📦 File: <code>app-arm64.apk</code>"
	if got != want {
		t.Fatalf("unexpected caption %q", got)
	}
}

func TestCaptionEscapesName(t *testing.T) {
	got := artifacts.Caption(artifacts.Selection{Name: "a&b<c>.apk"}, "")
	if !strings.Contains(got, "<code>a&amp;b&lt;c&gt;.apk</code>") {
		t.Fatalf("expected escaped name, got %q", got)
	}
}
