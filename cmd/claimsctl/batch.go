package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/claims-triage/internal/export"
	"github.com/joseph-ayodele/claims-triage/internal/ingest"
)

var (
	batchDir string
	batchOut string
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Analyze every supported file in a directory and export a workbook",
	RunE:  runBatch,
}

func init() {
	batchCmd.Flags().StringVar(&batchDir, "dir", "", "directory to analyze (required)")
	batchCmd.Flags().StringVar(&batchOut, "out", "", "output XLSX path (defaults to <dir>/../results.xlsx)")
	_ = batchCmd.MarkFlagRequired("dir")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, _ []string) error {
	kind, err := parseKind()
	if err != nil {
		return err
	}
	if batchOut == "" {
		batchOut = filepath.Join(filepath.Dir(filepath.Clean(batchDir)), "results.xlsx")
	}
	logger := newLogger()
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	files, err := ingest.ListFiles(batchDir, nil, true)
	if err != nil {
		return err
	}
	logger.Info("batch.start", "dir", batchDir, "files", len(files), "kind", kind)

	a, err := buildApp(ctx, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	entries, calls := a.AnalyzeFiles(ctx, files, kind)
	failed := 0
	for _, e := range entries {
		if e.Err != nil {
			failed++
			logger.Warn("batch.file_failed", "file", e.Source, "error", e.Err)
		}
	}

	data, err := export.NewService(logger).Workbook(entries)
	if err != nil {
		return err
	}
	if err := os.WriteFile(batchOut, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", batchOut, err)
	}
	logger.Info("batch.done", "out", batchOut, "files", len(entries), "failed", failed, "collaborator_calls", calls)
	cmd.Printf("%d files analyzed (%d failed), %d collaborator calls, wrote %s\n", len(entries), failed, calls, batchOut)
	return nil
}
