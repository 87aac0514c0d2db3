package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"apkship/internal/artifacts"
	"apkship/internal/builder"
	"apkship/internal/logging"
	"apkship/internal/notifications"
)

// Stage names a pipeline step.
type Stage string

const (
	StageNone   Stage = ""
	StageBuild  Stage = "build"
	StageLocate Stage = "locate"
	StageUpload Stage = "upload"
)

// Builder runs the external build.
type Builder interface {
	Build(ctx context.Context) (builder.Result, error)
}

// Locator returns the packages present right now.
type Locator interface {
	Locate() ([]string, error)
}

// Notifier delivers one package.
type Notifier interface {
	SendDocument(ctx context.Context, path, caption string) (notifications.Delivery, error)
}

// Outcome is the result of one run.
type Outcome struct {
	RunID string
	// FailedStage is set only for fatal failures.
	FailedStage Stage
	Reason      string
	Err         error

	Build     builder.Result
	Artifacts []string
	Selection artifacts.Selection
	Caption   string

	Delivered   bool
	Delivery    notifications.Delivery
	DeliveryErr error
}

// Fatal reports whether a stage failure should fail the whole run.
func (o Outcome) Fatal() bool {
	return o.FailedStage != StageNone
}

// ExitCode maps the outcome to a process exit status. Upload failures are
// best effort and do not change it.
func (o Outcome) ExitCode() int {
	if o.Fatal() {
		return 1
	}
	return 0
}

// Option configures a Runner.
type Option func(*Runner)

// WithOutput sets where progress lines are printed.
func WithOutput(w io.Writer) Option {
	return func(r *Runner) {
		if w != nil {
			r.out = w
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithReleaseNotes sets the extra caption line for universal packages.
func WithReleaseNotes(notes string) Option {
	return func(r *Runner) {
		r.releaseNotes = notes
	}
}

// Runner wires the stages together.
type Runner struct {
	builder      Builder
	locator      Locator
	notifier     Notifier
	out          io.Writer
	logger       *slog.Logger
	releaseNotes string
}

// New constructs a Runner.
func New(b Builder, l Locator, n Notifier, opts ...Option) (*Runner, error) {
	if b == nil || l == nil || n == nil {
		return nil, errors.New("pipeline requires a builder, locator and notifier")
	}
	r := &Runner{
		builder:  b,
		locator:  l,
		notifier: n,
		out:      io.Discard,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Run executes Build → Locate → Select → Upload once.
func (r *Runner) Run(ctx context.Context) Outcome {
	outcome := Outcome{RunID: uuid.NewString()}
	ctx = logging.WithRunID(ctx, outcome.RunID)
	logger := logging.WithContext(ctx, r.logger)

	// Build
	r.printf("🚀 Starting Android Build...")
	result, err := r.builder.Build(logging.WithStage(ctx, string(StageBuild)))
	outcome.Build = result
	if err != nil {
		detail := strings.TrimSpace(result.Stderr)
		if detail == "" {
			detail = err.Error()
		}
		r.printf("❌ Build Failed: %s", detail)
		logging.ErrorWithContext(logger, "build failed", "build_failed",
			logging.Error(err),
			logging.Int("exit_code", result.ExitCode),
			logging.String(logging.FieldErrorHint, "run the gradle wrapper manually in the project directory"),
		)
		return fail(outcome, StageBuild, "build failed", err)
	}
	r.printf("✅ Build Successful!")

	// Locate
	paths, err := r.locator.Locate()
	if err != nil {
		if errors.Is(err, artifacts.ErrNoArtifacts) {
			r.printf("❌ No APK files found!")
		} else {
			r.printf("❌ Could not search for APK files: %v", err)
		}
		logging.ErrorWithContext(logger, "artifact search failed", "artifacts_missing",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check project.artifact_glob"),
		)
		return fail(outcome, StageLocate, "no artifacts", err)
	}
	outcome.Artifacts = paths
	r.printf("📦 Found %d APK files.", len(paths))
	logger.Info("artifacts located", logging.Int("count", len(paths)))

	// Select
	selection, ok := artifacts.Select(paths)
	if !ok {
		return fail(outcome, StageLocate, "no artifacts", artifacts.ErrNoArtifacts)
	}
	outcome.Selection = selection
	outcome.Caption = artifacts.Caption(selection, r.releaseNotes)
	logger.Info("artifact selected",
		logging.String("file", selection.Name),
		logging.Bool("universal", selection.Universal),
	)

	// Upload
	r.printf("📤 Uploading %s to Telegram...", selection.Name)
	uploadCtx := logging.WithStage(ctx, string(StageUpload))
	delivery, err := r.notifier.SendDocument(uploadCtx, selection.Path, outcome.Caption)
	outcome.Delivery = delivery
	if err != nil {
		outcome.DeliveryErr = err
		r.printf("❌ Failed to upload %s: %s", selection.Name, failureText(delivery, err))
		logging.WarnWithContext(logging.WithContext(uploadCtx, r.logger), "upload failed", "upload_failed",
			logging.Error(err),
			logging.String("file", selection.Name),
			logging.String(logging.FieldImpact, "build succeeded but nobody was notified"),
			logging.String(logging.FieldErrorHint, "run 'apkship test-notify' to check the bot credentials"),
		)
		return outcome
	}
	outcome.Delivered = true
	r.printf("✅ Uploaded: %s", selection.Name)
	logger.Info("artifact uploaded",
		logging.String("file", selection.Name),
		logging.Int64("bytes", delivery.Bytes),
	)
	return outcome
}

// failureText prefers the raw response body so the operator sees exactly
// what the Bot API said.
func failureText(delivery notifications.Delivery, err error) string {
	var statusErr *notifications.StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Body
	}
	if delivery.Body != "" {
		return delivery.Body
	}
	return err.Error()
}

func fail(outcome Outcome, stage Stage, reason string, err error) Outcome {
	outcome.FailedStage = stage
	outcome.Reason = reason
	outcome.Err = err
	return outcome
}

func (r *Runner) printf(format string, args ...any) {
	fmt.Fprintf(r.out, format+"\n", args...)
}

// Error converts a fatal outcome into an error for callers that propagate
// failures through error returns.
func (o Outcome) Error() error {
	if !o.Fatal() {
		return nil
	}
	return &StageError{Stage: o.FailedStage, Reason: o.Reason, Err: o.Err, Code: o.ExitCode()}
}

// StageError describes a fatal stage failure. Code is the exit status the
// failed Outcome maps to.
type StageError struct {
	Stage  Stage
	Reason string
	Err    error
	Code   int
}

func (e *StageError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Stage, e.Reason)
	}
	return fmt.Sprintf("%s: %s: %v", e.Stage, e.Reason, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }
