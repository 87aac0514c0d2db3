package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"apkship/internal/config"
)

const (
	userAgent       = "apkship/0.1.0"
	maxResponseBody = 64 * 1024

	// Captions are always rendered as HTML by artifacts.Caption.
	captionParseMode = "HTML"
)

// Service defines the notification surface exposed to the pipeline and CLI.
type Service interface {
	SendDocument(ctx context.Context, path, caption string) (Delivery, error)
	TestNotification(ctx context.Context) error
	BotName(ctx context.Context) (string, error)
}

// Delivery records the Bot API reply to an upload.
type Delivery struct {
	StatusCode int
	Body       string
	Bytes      int64
}

// StatusError is returned when the Bot API answers with anything but 200.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("telegram returned %d: %s", e.StatusCode, e.Body)
}

// NewService builds a Telegram-backed service. Missing credentials are an
// error so callers fail before doing any work.
func NewService(cfg *config.Config) (Service, error) {
	if cfg == nil {
		return nil, errors.New("config required")
	}
	if err := cfg.RequireTelegram(); err != nil {
		return nil, err
	}
	return &telegramService{
		baseURL: cfg.Telegram.APIBaseURL,
		token:   cfg.Telegram.BotToken,
		chatID:  cfg.Telegram.ChatID,
		// Zero timeout waits for the remote indefinitely.
		client: &http.Client{Timeout: time.Duration(cfg.Telegram.RequestTimeout) * time.Second},
	}, nil
}

type telegramService struct {
	baseURL string
	token   string
	chatID  string
	client  *http.Client
}

func (s *telegramService) endpoint(method string) string {
	return s.baseURL + "/bot" + s.token + "/" + method
}

// SendDocument uploads path as a multipart "document" part. The file is
// streamed, and closed before SendDocument returns.
func (s *telegramService) SendDocument(ctx context.Context, path, caption string) (Delivery, error) {
	file, err := os.Open(path)
	if err != nil {
		return Delivery{}, fmt.Errorf("open document: %w", err)
	}
	defer file.Close()

	pr, pw := io.Pipe()
	form := multipart.NewWriter(pw)
	written := make(chan int64, 1)
	go func() {
		n, err := writeDocumentForm(form, file, filepath.Base(path), map[string]string{
			"chat_id":    s.chatID,
			"caption":    caption,
			"parse_mode": captionParseMode,
		})
		written <- n
		_ = pw.CloseWithError(err)
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint("sendDocument"), pr)
	if err != nil {
		_ = pr.CloseWithError(err)
		<-written
		return Delivery{}, fmt.Errorf("build telegram request: %w", s.redact(err))
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := s.client.Do(req)
	// Unblock the writer if the transport stopped reading early.
	_ = pr.CloseWithError(io.ErrClosedPipe)
	n := <-written
	if err != nil {
		return Delivery{}, fmt.Errorf("send document: %w", s.redact(err))
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	delivery := Delivery{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body)), Bytes: n}
	if resp.StatusCode != http.StatusOK {
		return delivery, &StatusError{StatusCode: resp.StatusCode, Body: delivery.Body}
	}
	return delivery, nil
}

func writeDocumentForm(form *multipart.Writer, file io.Reader, filename string, fields map[string]string) (int64, error) {
	for _, key := range []string{"chat_id", "caption", "parse_mode"} {
		if err := form.WriteField(key, fields[key]); err != nil {
			return 0, fmt.Errorf("write field %s: %w", key, err)
		}
	}
	part, err := form.CreateFormFile("document", filename)
	if err != nil {
		return 0, fmt.Errorf("create document part: %w", err)
	}
	n, err := io.Copy(part, file)
	if err != nil {
		return n, fmt.Errorf("stream document: %w", err)
	}
	if err := form.Close(); err != nil {
		return n, fmt.Errorf("close multipart form: %w", err)
	}
	return n, nil
}

// TestNotification sends a short text message to the configured chat.
func (s *telegramService) TestNotification(ctx context.Context) error {
	values := url.Values{}
	values.Set("chat_id", s.chatID)
	values.Set("text", "🧪 apkship notification test")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint("sendMessage"), strings.NewReader(values.Encode()))
	if err != nil {
		return fmt.Errorf("build telegram request: %w", s.redact(err))
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("send message: %w", s.redact(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
		return &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type getMeResponse struct {
	OK     bool `json:"ok"`
	Result struct {
		Username string `json:"username"`
	} `json:"result"`
	Description string `json:"description"`
}

// BotName calls getMe and returns the bot's username. It doubles as a token
// check for preflight.
func (s *telegramService) BotName(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint("getMe"), nil)
	if err != nil {
		return "", fmt.Errorf("build telegram request: %w", s.redact(err))
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("get bot: %w", s.redact(err))
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if resp.StatusCode != http.StatusOK {
		return "", &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	var decoded getMeResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return "", fmt.Errorf("decode getMe response: %w", err)
	}
	if !decoded.OK {
		return "", fmt.Errorf("getMe rejected: %s", decoded.Description)
	}
	return decoded.Result.Username, nil
}

// redact strips the bot token from transport errors, which embed the URL.
func (s *telegramService) redact(err error) error {
	if err == nil || s.token == "" || !strings.Contains(err.Error(), s.token) {
		return err
	}
	return &redactedError{msg: strings.ReplaceAll(err.Error(), s.token, "<redacted>"), err: err}
}

type redactedError struct {
	msg string
	err error
}

func (e *redactedError) Error() string { return e.msg }

func (e *redactedError) Unwrap() error { return e.err }
