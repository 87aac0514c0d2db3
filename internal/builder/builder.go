package builder

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"apkship/internal/logging"
)

// Result captures the observable outcome of one Gradle invocation.
type Result struct {
	Command  []string
	ExitCode int
	Stderr   string
	Duration time.Duration
}

// Succeeded reports whether the build exited cleanly.
func (r Result) Succeeded() bool {
	return r.ExitCode == 0
}

// Option configures the builder.
type Option func(*Builder)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(b *Builder) {
		if exec != nil {
			b.exec = exec
		}
	}
}

// WithLogger routes Gradle stdout and build lifecycle events to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// Builder wraps Gradle wrapper invocations for one project.
type Builder struct {
	projectDir string
	wrapper    string
	tasks      []string
	timeout    time.Duration
	exec       Executor
	logger     *slog.Logger
}

// New constructs a builder for projectDir. A relative projectDir is made
// absolute against the current directory, and a relative wrapper such as
// "./gradlew" is resolved against projectDir.
func New(projectDir, wrapper string, tasks []string, timeoutSeconds int, opts ...Option) (*Builder, error) {
	projectDir = strings.TrimSpace(projectDir)
	if projectDir == "" {
		return nil, errors.New("project directory required")
	}
	absDir, err := filepath.Abs(projectDir)
	if err != nil {
		return nil, fmt.Errorf("resolve project directory: %w", err)
	}
	wrapper = strings.TrimSpace(wrapper)
	if wrapper == "" {
		return nil, errors.New("gradle wrapper required")
	}
	if len(tasks) == 0 {
		return nil, errors.New("at least one gradle task required")
	}
	b := &Builder{
		projectDir: absDir,
		wrapper:    wrapper,
		tasks:      append([]string(nil), tasks...),
		timeout:    time.Duration(timeoutSeconds) * time.Second,
		exec:       commandExecutor{},
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// ProjectDir returns the absolute directory Gradle runs in.
func (b *Builder) ProjectDir() string {
	return b.projectDir
}

// Binary returns the resolved wrapper path.
func (b *Builder) Binary() string {
	return ResolveWrapper(b.projectDir, b.wrapper)
}

// ResolveWrapper joins a relative wrapper path onto projectDir. Absolute
// paths and bare command names (looked up on PATH) are returned unchanged.
func ResolveWrapper(projectDir, wrapper string) string {
	if filepath.IsAbs(wrapper) || !strings.ContainsRune(wrapper, filepath.Separator) {
		return wrapper
	}
	return filepath.Join(projectDir, wrapper)
}

// Build runs the Gradle tasks and blocks until the process exits. A non-nil
// error is returned for any non-zero exit or when the process cannot start;
// the Result is populated either way.
func (b *Builder) Build(ctx context.Context) (Result, error) {
	binary := b.Binary()
	result := Result{
		Command:  append([]string{binary}, b.tasks...),
		ExitCode: -1,
	}

	info, err := os.Stat(b.projectDir)
	if err != nil {
		return result, fmt.Errorf("project directory: %w", err)
	}
	if !info.IsDir() {
		return result, fmt.Errorf("project directory %s is not a directory", b.projectDir)
	}

	runCtx := ctx
	if b.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, b.timeout)
		defer cancel()
	}

	logger := logging.WithContext(ctx, b.logger)
	logger.Info("gradle build started",
		logging.String("project_dir", b.projectDir),
		logging.String("command", strings.Join(result.Command, " ")),
	)

	var stderr bytes.Buffer
	started := time.Now()
	runErr := b.exec.Run(runCtx, b.projectDir, binary, b.tasks, func(line string) {
		logger.Debug(line, logging.String("stream", "stdout"))
	}, &stderr)
	result.Duration = time.Since(started)
	result.Stderr = stderr.String()

	if runErr == nil {
		result.ExitCode = 0
		logger.Info("gradle build finished", logging.Duration("duration", result.Duration.Round(time.Millisecond)))
		return result, nil
	}

	var exitErr *exec.ExitError
	if errors.As(runErr, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
	}
	if errors.Is(runCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
		return result, fmt.Errorf("gradle timed out after %s: %w", b.timeout, runErr)
	}
	return result, fmt.Errorf("gradle %s: %w", strings.Join(b.tasks, " "), runErr)
}
