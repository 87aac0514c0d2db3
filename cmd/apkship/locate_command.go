package main

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"apkship/internal/artifacts"
)

func newLocateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "locate",
		Short: "List built APKs and show which one would be uploaded",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			pattern := cfg.ArtifactPattern()

			paths, err := artifacts.Locate(pattern)
			if errors.Is(err, artifacts.ErrNoArtifacts) {
				fmt.Fprintf(out, "No APK files match %s\n", pattern)
				return nil
			}
			if err != nil {
				return err
			}
			found, err := artifacts.Describe(paths)
			if err != nil {
				return err
			}
			selection, _ := artifacts.Select(paths)

			rows := make([][]string, 0, len(found))
			for _, a := range found {
				marker := ""
				if a.Path == selection.Path {
					marker = "→"
				}
				rows = append(rows, []string{
					marker,
					a.Name,
					humanize.IBytes(uint64(a.Size)),
					humanize.Time(a.ModTime),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"", "File", "Size", "Built"},
				rows,
				[]columnAlignment{alignCenter, alignLeft, alignRight, alignLeft},
			))

			kind := "first match"
			if selection.Universal {
				kind = "universal"
			}
			fmt.Fprintf(out, "Selected: %s (%s)\n", selection.Name, kind)
			return nil
		},
	}
}
