package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Project describes the Android project and how to build it.
type Project struct {
	Root          string   `toml:"root"`
	GradleWrapper string   `toml:"gradle_wrapper"`
	GradleTasks   []string `toml:"gradle_tasks"`
	ArtifactGlob  string   `toml:"artifact_glob"`
	BuildTimeout  int      `toml:"build_timeout"`
}

// Telegram contains the bot credentials and delivery settings.
type Telegram struct {
	BotToken       string `toml:"bot_token"`
	ChatID         string `toml:"chat_id"`
	APIBaseURL     string `toml:"api_base_url"`
	RequestTimeout int    `toml:"request_timeout"`
}

// Captions controls the text sent alongside the uploaded package.
type Captions struct {
	ReleaseNotes string `toml:"release_notes"`
}

// Paths contains local state directories.
type Paths struct {
	LogDir string `toml:"log_dir"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	// ToFile mirrors log output into <paths.log_dir>/apkship.log.
	ToFile bool `toml:"to_file"`
}

// Config encapsulates all configuration values for apkship.
type Config struct {
	Project  Project  `toml:"project"`
	Telegram Telegram `toml:"telegram"`
	Captions Captions `toml:"captions"`
	Paths    Paths    `toml:"paths"`
	Logging  Logging  `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized. Telegram credentials are not required
// here; commands that deliver messages call RequireTelegram.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, decodeError(err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

// decodeError names the offending keys when the file sets options apkship
// does not have.
func decodeError(err error) error {
	var strict *toml.StrictMissingError
	if !errors.As(err, &strict) {
		return fmt.Errorf("parse config: %w", err)
	}
	keys := make([]string, 0, len(strict.Errors))
	for _, e := range strict.Errors {
		keys = append(keys, strings.Join(e.Key(), "."))
	}
	return fmt.Errorf("parse config: unknown keys: %s: %w", strings.Join(keys, ", "), err)
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs(projectConfigName)
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the local state directories.
func (c *Config) EnsureDirectories() error {
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		return nil
	}
	if err := os.MkdirAll(c.Paths.LogDir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", c.Paths.LogDir, err)
	}
	return nil
}

// ArtifactPattern returns the absolute glob matching built packages.
func (c *Config) ArtifactPattern() string {
	if filepath.IsAbs(c.Project.ArtifactGlob) {
		return c.Project.ArtifactGlob
	}
	return filepath.Join(c.Project.Root, c.Project.ArtifactGlob)
}

// LockPath returns the advisory lock file guarding pipeline runs.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.LogDir, "apkship.lock")
}

// LogFilePath returns the log file used when logging.to_file is enabled.
func (c *Config) LogFilePath() string {
	return filepath.Join(c.Paths.LogDir, "apkship.log")
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

func defaultLogDir() string {
	if base, ok := os.LookupEnv("XDG_STATE_HOME"); ok && strings.TrimSpace(base) != "" {
		return filepath.Join(base, "apkship")
	}
	return "~/.local/state/apkship"
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o600); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
