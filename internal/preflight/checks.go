package preflight

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	"golang.org/x/sys/unix"

	"apkship/internal/config"
	"apkship/internal/notifications"
)

const telegramCheckTimeout = 10 * time.Second

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckProjectDir verifies the Android project root. Gradle writes its
// outputs beneath it, so write access is required too.
func CheckProjectDir(path string) Result {
	return CheckDirectoryAccess("Project directory", path)
}

// CheckCredentials reports whether the bot token and chat id are set.
func CheckCredentials(cfg *config.Config) Result {
	const name = "Telegram credentials"
	if err := cfg.RequireTelegram(); err != nil {
		return Result{Name: name, Detail: err.Error()}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("chat %s", cfg.Telegram.ChatID)}
}

// CheckTelegram calls getMe with a short timeout and a single attempt.
func CheckTelegram(ctx context.Context, bot BotChecker) Result {
	const name = "Telegram bot"

	checkCtx, cancel := context.WithTimeout(ctx, telegramCheckTimeout)
	defer cancel()

	username, err := bot.BotName(checkCtx)
	if err != nil {
		return Result{Name: name, Detail: summarizeTelegramError(err)}
	}
	return Result{Name: name, Passed: true, Detail: "@" + username}
}

func summarizeTelegramError(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "getMe timed out (Bot API unresponsive)"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "getMe timed out (Bot API unreachable)"
	}
	var statusErr *notifications.StatusError
	if errors.As(err, &statusErr) {
		switch statusErr.StatusCode {
		case 401:
			return "auth failed (invalid bot token)"
		case 404:
			return "auth failed (bot token not recognised)"
		}
		return fmt.Sprintf("getMe failed (%d)", statusErr.StatusCode)
	}
	return err.Error()
}
