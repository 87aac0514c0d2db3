package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"apkship/internal/notifications"
	"apkship/internal/preflight"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	var asTable bool
	var offline bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check the build environment and bot credentials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			var bot preflight.BotChecker
			if !offline {
				// Missing credentials are reported by the credentials check.
				if svc, err := notifications.NewService(cfg); err == nil {
					bot = svc
				}
			}
			results := preflight.RunAll(cmd.Context(), cfg, bot)

			out := cmd.OutOrStdout()
			if asTable {
				rows := make([][]string, 0, len(results))
				for _, r := range results {
					rows = append(rows, []string{r.Name, statusKindLabel(resultKind(r)), r.Detail})
				}
				fmt.Fprintln(out, renderTable([]string{"Check", "Status", "Detail"}, rows, nil))
			} else {
				colorize := shouldColorize(out)
				for _, line := range renderSectionHeader("apkship preflight", colorize) {
					fmt.Fprintln(out, line)
				}
				fmt.Fprintf(out, "%s%-*s %s\n", statusIndent, statusLabelWidth, "Config:", displayConfigPath(ctx.configPath, ctx.configSeen))
				for _, r := range results {
					fmt.Fprintln(out, renderStatusLine(r.Name, resultKind(r), r.Detail, colorize))
				}
			}

			if failed := preflight.Failed(results); len(failed) > 0 {
				return fmt.Errorf("%d preflight check(s) failed", len(failed))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asTable, "table", false, "Render results as a table")
	cmd.Flags().BoolVar(&offline, "offline", false, "Skip the Bot API reachability check")
	return cmd
}

func resultKind(r preflight.Result) statusKind {
	switch {
	case r.Passed:
		return statusOK
	case r.Optional:
		return statusWarn
	default:
		return statusError
	}
}

func displayConfigPath(path string, exists bool) string {
	if !exists {
		return "(defaults)"
	}
	return path
}
