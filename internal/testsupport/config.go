package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"apkship/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config rooted in a unique temp directory: an empty
// Android project, a state directory and placeholder bot credentials.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Project.Root = filepath.Join(base, "android")
	cfgVal.Paths.LogDir = filepath.Join(base, "state")
	cfgVal.Telegram.BotToken = "123:test-token"
	cfgVal.Telegram.ChatID = "-1000"
	if err := os.MkdirAll(cfgVal.Project.Root, 0o755); err != nil {
		t.Fatalf("mkdir project: %v", err)
	}

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}
	for _, opt := range opts {
		opt(builder)
	}
	return builder.cfg
}

// WithTelegramServer points the Bot API base URL at a test server.
func WithTelegramServer(baseURL string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Telegram.APIBaseURL = baseURL
	}
}

// WithoutCredentials clears the bot credentials.
func WithoutCredentials() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Telegram.BotToken = ""
		b.cfg.Telegram.ChatID = ""
	}
}

// WithGradleScript installs script as the project's ./gradlew.
func WithGradleScript(script string) ConfigOption {
	return func(b *configBuilder) {
		WriteGradleWrapper(b.t, b.cfg.Project.Root, script)
	}
}

// WithStubbedBinaries writes stub executables for the provided names and
// prepends them to PATH. If names is empty, java is stubbed.
func WithStubbedBinaries(names ...string) ConfigOption {
	return func(b *configBuilder) {
		if len(names) == 0 {
			names = []string{"java"}
		}
		binDir := filepath.Join(b.baseDir, "bin")
		if err := os.MkdirAll(binDir, 0o755); err != nil {
			b.t.Fatalf("mkdir bin dir: %v", err)
		}
		script := []byte("#!/bin/sh\nexit 0\n")
		for _, name := range names {
			target := filepath.Join(binDir, name)
			if err := os.WriteFile(target, script, 0o755); err != nil {
				b.t.Fatalf("write stub %s: %v", name, err)
			}
		}

		oldPath := os.Getenv("PATH")
		if err := os.Setenv("PATH", binDir+string(os.PathListSeparator)+oldPath); err != nil {
			b.t.Fatalf("set PATH: %v", err)
		}
		b.t.Cleanup(func() {
			_ = os.Setenv("PATH", oldPath)
		})
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Project.Root)
}
