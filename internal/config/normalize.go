package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeProject(); err != nil {
		return err
	}
	c.normalizeTelegram()
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeProject() error {
	var err error
	if strings.TrimSpace(c.Project.Root) == "" {
		c.Project.Root = defaultProjectRoot
	}
	if c.Project.Root, err = expandPath(strings.TrimSpace(c.Project.Root)); err != nil {
		return fmt.Errorf("project.root: %w", err)
	}
	c.Project.GradleWrapper = strings.TrimSpace(c.Project.GradleWrapper)
	if c.Project.GradleWrapper == "" {
		c.Project.GradleWrapper = defaultGradleWrapper
	}
	tasks := make([]string, 0, len(c.Project.GradleTasks))
	for _, task := range c.Project.GradleTasks {
		if task = strings.TrimSpace(task); task != "" {
			tasks = append(tasks, task)
		}
	}
	if len(tasks) == 0 {
		tasks = []string{defaultGradleTask}
	}
	c.Project.GradleTasks = tasks
	c.Project.ArtifactGlob = strings.TrimSpace(c.Project.ArtifactGlob)
	if c.Project.ArtifactGlob == "" {
		c.Project.ArtifactGlob = defaultArtifactGlob
	}
	return nil
}

func (c *Config) normalizeTelegram() {
	c.Telegram.BotToken = strings.TrimSpace(c.Telegram.BotToken)
	if c.Telegram.BotToken == "" {
		if value, ok := os.LookupEnv(envTelegramBotToken); ok {
			c.Telegram.BotToken = strings.TrimSpace(value)
		}
	}
	c.Telegram.ChatID = strings.TrimSpace(c.Telegram.ChatID)
	if c.Telegram.ChatID == "" {
		if value, ok := os.LookupEnv(envTelegramChatID); ok {
			c.Telegram.ChatID = strings.TrimSpace(value)
		}
	}
	c.Telegram.APIBaseURL = strings.TrimRight(strings.TrimSpace(c.Telegram.APIBaseURL), "/")
	if c.Telegram.APIBaseURL == "" {
		c.Telegram.APIBaseURL = defaultTelegramAPIBaseURL
	}
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir()
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
