package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Extract, summarize, and reflect on PDF documents",
	Long: `ingest runs PDF documents through text extraction, chunked LLM
summarization with single-level provider fallback, and a structured
reflection pass, persisting every result as JSON under the vault.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
