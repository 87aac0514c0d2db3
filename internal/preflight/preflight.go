package preflight

import (
	"context"

	"apkship/internal/builder"
	"apkship/internal/config"
	"apkship/internal/deps"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	// Optional results are shown but never fail a run.
	Optional bool
	Detail   string
}

// BotChecker resolves the bot identity behind the configured token.
type BotChecker interface {
	BotName(ctx context.Context) (string, error)
}

// RunAll executes every check for cfg. A nil bot skips the remote check,
// which happens when credentials are missing.
func RunAll(ctx context.Context, cfg *config.Config, bot BotChecker) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result
	results = append(results, CheckProjectDir(cfg.Project.Root))
	for _, status := range deps.CheckBinaries(deps.BuildRequirements(builder.ResolveWrapper(cfg.Project.Root, cfg.Project.GradleWrapper))) {
		results = append(results, fromStatus(status))
	}
	results = append(results, CheckDirectoryAccess("State directory", cfg.Paths.LogDir))
	results = append(results, CheckCredentials(cfg))
	if bot != nil {
		results = append(results, CheckTelegram(ctx, bot))
	}
	return results
}

// Failed returns the required checks that did not pass.
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.Passed && !r.Optional {
			failed = append(failed, r)
		}
	}
	return failed
}

func fromStatus(status deps.Status) Result {
	detail := status.Command
	if !status.Available {
		detail = status.Detail
	}
	return Result{
		Name:     status.Name,
		Passed:   status.Available,
		Optional: status.Optional,
		Detail:   detail,
	}
}
