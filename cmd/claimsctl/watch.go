package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/claims-triage/internal/app"
	"github.com/joseph-ayodele/claims-triage/internal/async"
	"github.com/joseph-ayodele/claims-triage/internal/ingest"
)

var (
	watchDir      string
	watchOutDir   string
	watchDebounce time.Duration
	watchInitial  bool
	watchWorkers  int
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch an inbox directory and write one JSON result per new file",
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&watchDir, "dir", "", "inbox directory (required)")
	watchCmd.Flags().StringVar(&watchOutDir, "out-dir", "", "directory receiving <file>.json results (required)")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 500*time.Millisecond, "quiet period before a changed file is analyzed")
	watchCmd.Flags().BoolVar(&watchInitial, "initial-scan", true, "also analyze files already in the inbox")
	watchCmd.Flags().IntVar(&watchWorkers, "workers", 4, "files analyzed concurrently")
	_ = watchCmd.MarkFlagRequired("dir")
	_ = watchCmd.MarkFlagRequired("out-dir")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	kind, err := parseKind()
	if err != nil {
		return err
	}
	logger := newLogger()
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := os.MkdirAll(watchOutDir, 0o755); err != nil {
		return err
	}
	a, err := buildApp(ctx, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	events, errs, err := ingest.StartWatcher(ctx, ingest.WatchConfig{
		Roots:       []string{watchDir},
		InitialScan: watchInitial,
		SkipHidden:  true,
		Debounce:    watchDebounce,
	}, logger)
	if err != nil {
		return err
	}

	queue := async.New(func(ctx context.Context, job async.Job) error {
		e := a.AnalyzeFile(ctx, job.Path, job.Kind)
		data, err := json.MarshalIndent(toOutput(e), "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal result: %w", err)
		}
		out := filepath.Join(watchOutDir, app.ResultName(job.Path))
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", out, err)
		}
		logger.Info("watch.analyzed", "file", job.Path, "out", out, "failed", e.Err != nil)
		return nil
	}, logger, async.WithWorkers(watchWorkers), async.WithJobTimeout(a.Config.Collaborator.Timeout*time.Duration(a.Config.Collaborator.MaxRetries+2)))
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := queue.Shutdown(shutdownCtx); err != nil {
			logger.Warn("watch.shutdown_incomplete", "error", err)
		}
	}()

	for {
		select {
		case path, ok := <-events:
			if !ok {
				logger.Info("watch.stopped")
				return nil
			}
			if err := queue.Enqueue(ctx, async.Job{Path: path, Kind: kind}); err != nil {
				logger.Warn("watch.enqueue_failed", "file", path, "error", err)
			}
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			logger.Warn("watch.error", "error", err)
		case <-ctx.Done():
			return nil
		}
	}
}
