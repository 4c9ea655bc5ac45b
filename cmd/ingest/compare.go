package main

import (
	"errors"
	"io/fs"

	"github.com/spf13/cobra"

	"doc-ingest/internal/app"
	"doc-ingest/internal/compare"
	"doc-ingest/internal/result"
)

var compareCmd = &cobra.Command{
	Use:   "compare <candidate.json> [baseline.json]",
	Short: "Compare two persisted result files field by field",
	Long: `Compares a candidate result file against a baseline produced by a
different provider for the same source. When the baseline is omitted it
is derived by stripping the candidate's processor suffix. A missing file
is reported, not treated as a failure.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runCompare,
}

func init() {
	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	deps, err := app.Build()
	if err != nil {
		return err
	}

	candidatePath := args[0]
	baselinePath := ""
	if len(args) == 2 {
		baselinePath = args[1]
	} else {
		baselinePath = compare.BaselinePath(candidatePath, deps.Config.ProcessorTag)
	}

	candidate, err := result.Load(candidatePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cmd.Printf("No match found: %s\n", candidatePath)
			return nil
		}
		return err
	}
	baseline, err := result.Load(baselinePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cmd.Printf("No match found: %s\n", baselinePath)
			return nil
		}
		return err
	}

	compare.Diff(baseline, candidate).Render(cmd.OutOrStdout())
	return nil
}
