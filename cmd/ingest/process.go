package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"doc-ingest/internal/app"
)

var linkMemory bool

var processCmd = &cobra.Command{
	Use:   "process [file.pdf]",
	Short: "Process one PDF or the whole source directory",
	Long: `Processes the given PDF, or every PDF in the configured source
directory when no argument is given. Each document is summarized chunk by
chunk and reflected upon; one document's failure never aborts the batch.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runProcess,
}

func init() {
	processCmd.Flags().BoolVar(&linkMemory, "link", false, "Link entries into the hybrid memory store")
	rootCmd.AddCommand(processCmd)
}

func runProcess(cmd *cobra.Command, args []string) error {
	deps, err := app.Build()
	if err != nil {
		return err
	}
	orch, err := app.BuildPipeline(deps, linkMemory)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	if len(args) == 1 {
		path := args[0]
		if !strings.EqualFold(filepath.Ext(path), ".pdf") {
			return fmt.Errorf("%s is not a PDF file", path)
		}
		if err := orch.ProcessFile(ctx, path); err != nil {
			return err
		}
		cmd.Printf("Processed %s\n", filepath.Base(path))
		return nil
	}

	processed, failed, err := orch.ProcessDirectory(ctx, deps.Config.SourceDir)
	if err != nil {
		return err
	}
	cmd.Printf("Processed %d documents, %d failed\n", processed, failed)
	return nil
}
