package main

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"apkship/internal/config"
	"apkship/internal/testsupport"
)

// fakeBotAPI stands in for api.telegram.org.
type fakeBotAPI struct {
	server *httptest.Server

	mu        sync.Mutex
	status    int
	body      string
	getMeCode int
	calls     botCalls
}

type botCalls struct {
	documents int
	fileParts int
	fileName  string
	caption   string
	messages  int
}

func newFakeBotAPI(t *testing.T, status int, body string) *fakeBotAPI {
	t.Helper()
	api := &fakeBotAPI{status: status, body: body, getMeCode: http.StatusOK}
	api.server = httptest.NewServer(http.HandlerFunc(api.handle))
	t.Cleanup(api.server.Close)
	return api
}

func (a *fakeBotAPI) handle(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	defer a.mu.Unlock()

	method := r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:]
	switch method {
	case "getMe":
		w.WriteHeader(a.getMeCode)
		if a.getMeCode == http.StatusOK {
			_, _ = io.WriteString(w, `{"ok":true,"result":{"username":"release_bot"}}`)
		} else {
			_, _ = io.WriteString(w, `{"ok":false,"description":"Unauthorized"}`)
		}
	case "sendMessage":
		a.calls.messages++
		_, _ = io.WriteString(w, `{"ok":true}`)
	case "sendDocument":
		a.calls.documents++
		a.readDocument(r)
		w.WriteHeader(a.status)
		_, _ = io.WriteString(w, a.body)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (a *fakeBotAPI) readDocument(r *http.Request) {
	reader, err := r.MultipartReader()
	if err != nil {
		return
	}
	for {
		part, err := reader.NextPart()
		if err != nil {
			return
		}
		data, _ := io.ReadAll(part)
		switch {
		case part.FileName() != "":
			a.calls.fileParts++
			a.calls.fileName = part.FileName()
		case part.FormName() == "caption":
			a.calls.caption = string(data)
		}
	}
}

func (a *fakeBotAPI) snapshot() botCalls {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.calls
}

func (a *fakeBotAPI) rejectToken() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.getMeCode = http.StatusUnauthorized
}

// isolateEnv keeps the host's bot credentials and config out of the test.
func isolateEnv(t *testing.T) {
	t.Helper()
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	t.Setenv("TELEGRAM_CHAT_ID", "")
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_STATE_HOME", "")
	t.Setenv("NO_COLOR", "1")
}

func newTestConfig(t *testing.T, opts ...testsupport.ConfigOption) *config.Config {
	t.Helper()
	isolateEnv(t)
	cfg := testsupport.NewConfig(t, opts...)
	cfg.Logging.Level = "warn"
	return cfg
}

func writeTestConfig(t *testing.T, cfg *config.Config) string {
	t.Helper()
	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	path := filepath.Join(testsupport.BaseDir(cfg), "config.toml")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected output to contain %q, got:\n%s", substr, output)
	}
}

func requireErrorContains(t *testing.T, err error, substr string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error containing %q", substr)
	}
	if !strings.Contains(err.Error(), substr) {
		t.Fatalf("expected error containing %q, got %v", substr, err)
	}
}

func requireNotExist(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected %s to be absent (err=%v)", path, err)
	}
}
