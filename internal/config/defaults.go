package config

const (
	defaultConfigPath          = "~/.config/apkship/config.toml"
	projectConfigName          = "apkship.toml"
	defaultProjectRoot         = "android"
	defaultGradleWrapper       = "./gradlew"
	defaultGradleTask          = "assembleRelease"
	defaultArtifactGlob        = "app/build/outputs/apk/release/*.apk"
	defaultTelegramAPIBaseURL  = "https://api.telegram.org"
	defaultReleaseNotes        = "✨ Includes professional KHQR redesign and one-click ACLEDA payment."
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
	envTelegramBotToken        = "TELEGRAM_BOT_TOKEN"
	envTelegramChatID          = "TELEGRAM_CHAT_ID"
	defaultBuildTimeoutSeconds = 0
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Project: Project{
			Root:          defaultProjectRoot,
			GradleWrapper: defaultGradleWrapper,
			GradleTasks:   []string{defaultGradleTask},
			ArtifactGlob:  defaultArtifactGlob,
			BuildTimeout:  defaultBuildTimeoutSeconds,
		},
		Telegram: Telegram{
			APIBaseURL: defaultTelegramAPIBaseURL,
		},
		Captions: Captions{
			ReleaseNotes: defaultReleaseNotes,
		},
		Paths: Paths{
			LogDir: defaultLogDir(),
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
