package config

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateProject(); err != nil {
		return err
	}
	if err := c.validateTelegram(); err != nil {
		return err
	}
	return nil
}

// RequireTelegram fails when bot credentials are missing. Commands that
// deliver messages call it before doing any work.
func (c *Config) RequireTelegram() error {
	var missing []string
	if c.Telegram.BotToken == "" {
		missing = append(missing, fmt.Sprintf("telegram.bot_token (or %s)", envTelegramBotToken))
	}
	if c.Telegram.ChatID == "" {
		missing = append(missing, fmt.Sprintf("telegram.chat_id (or %s)", envTelegramChatID))
	}
	if len(missing) == 0 {
		return nil
	}
	defaultPath, err := DefaultConfigPath()
	if err != nil {
		defaultPath = defaultConfigPath
	}
	return fmt.Errorf("%s required. Set the env vars or edit %s (create with 'apkship config init')", strings.Join(missing, " and "), defaultPath)
}

func (c *Config) validateProject() error {
	if c.Project.BuildTimeout < 0 {
		return errors.New("project.build_timeout must be >= 0 (0 disables the timeout)")
	}
	if _, err := filepath.Match(c.Project.ArtifactGlob, ""); err != nil {
		return fmt.Errorf("project.artifact_glob: %w", err)
	}
	return nil
}

func (c *Config) validateTelegram() error {
	if c.Telegram.RequestTimeout < 0 {
		return errors.New("telegram.request_timeout must be >= 0 (0 disables the timeout)")
	}
	parsed, err := url.Parse(c.Telegram.APIBaseURL)
	if err != nil {
		return fmt.Errorf("telegram.api_base_url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("telegram.api_base_url must be an http(s) URL, got %q", c.Telegram.APIBaseURL)
	}
	return nil
}
