package testsupport

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// ReleaseDir is the default APK output directory inside a project.
const ReleaseDir = "app/build/outputs/apk/release"

// WriteGradleWrapper writes an executable gradlew into projectDir.
func WriteGradleWrapper(t testing.TB, projectDir, script string) string {
	t.Helper()

	path := filepath.Join(projectDir, "gradlew")
	if err := os.MkdirAll(projectDir, 0o755); err != nil {
		t.Fatalf("mkdir project: %v", err)
	}
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("write gradlew: %v", err)
	}
	return path
}

// GradleProducing returns a wrapper script that succeeds after writing the
// named APKs into the release output directory.
func GradleProducing(apks ...string) string {
	var b strings.Builder
	b.WriteString("#!/bin/sh\n")
	fmt.Fprintf(&b, "mkdir -p %s\n", ReleaseDir)
	for _, name := range apks {
		fmt.Fprintf(&b, "printf 'apk:%s' > %s/%s\n", name, ReleaseDir, name)
	}
	b.WriteString("echo 'BUILD SUCCESSFUL'\n")
	return b.String()
}

// GradleFailing returns a wrapper script that prints message to stderr and
// exits with code.
func GradleFailing(message string, code int) string {
	return fmt.Sprintf("#!/bin/sh\necho '%s' >&2\nexit %d\n", message, code)
}
