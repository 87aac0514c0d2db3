package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"apkship/internal/artifacts"
	"apkship/internal/builder"
	"apkship/internal/logging"
	"apkship/internal/notifications"
	"apkship/internal/pipeline"
	"apkship/internal/preflight"
	"apkship/internal/runlock"
)

type runOptions struct {
	preflight bool
}

func bindRunFlags(cmd *cobra.Command, opts *runOptions) {
	cmd.Flags().BoolVar(&opts.preflight, "preflight", false, "Run readiness checks before building and abort if any fail")
}

func newRunCommand(ctx *commandContext) *cobra.Command {
	var opts runOptions
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Build the release and upload the APK (default command)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(cmd, ctx, opts)
		},
	}
	bindRunFlags(cmd, &opts)
	return cmd
}

func runPipeline(cmd *cobra.Command, ctx *commandContext, opts runOptions) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	// Credentials are checked before the build so a long Gradle run is never
	// wasted on a bot that cannot be reached.
	notifier, err := notifications.NewService(cfg)
	if err != nil {
		return err
	}

	if opts.preflight {
		results := preflight.RunAll(cmd.Context(), cfg, notifier)
		if failed := preflight.Failed(results); len(failed) > 0 {
			names := make([]string, 0, len(failed))
			for _, r := range failed {
				names = append(names, fmt.Sprintf("%s: %s", r.Name, r.Detail))
			}
			return fmt.Errorf("preflight failed:\n  %s", strings.Join(names, "\n  "))
		}
	}

	lock, err := runlock.Acquire(cfg.LockPath())
	if err != nil {
		return err
	}
	defer func() {
		if err := lock.Release(); err != nil {
			logger.Warn("failed to release run lock", logging.Error(err))
		}
	}()

	gradle, err := builder.New(
		cfg.Project.Root,
		cfg.Project.GradleWrapper,
		cfg.Project.GradleTasks,
		cfg.Project.BuildTimeout,
		builder.WithLogger(logging.NewComponentLogger(logger, "gradle")),
	)
	if err != nil {
		return err
	}

	runner, err := pipeline.New(
		gradle,
		artifacts.Locator{Pattern: cfg.ArtifactPattern()},
		notifier,
		pipeline.WithOutput(cmd.OutOrStdout()),
		pipeline.WithLogger(logging.NewComponentLogger(logger, "pipeline")),
		pipeline.WithReleaseNotes(cfg.Captions.ReleaseNotes),
	)
	if err != nil {
		return err
	}

	outcome := runner.Run(cmd.Context())
	if err := outcome.Error(); err != nil {
		// An interrupted build surfaces as a killed process; report the
		// interruption instead.
		if ctxErr := cmd.Context().Err(); ctxErr != nil {
			return ctxErr
		}
		return err
	}
	return nil
}
