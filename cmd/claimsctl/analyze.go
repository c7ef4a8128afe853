package main

import (
	"encoding/json"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/claims-triage/internal/app"
	"github.com/joseph-ayodele/claims-triage/internal/export"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze FILE...",
	Short: "Analyze files and print the results as JSON",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

type fileOutput struct {
	File   string `json:"file"`
	Result any    `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

type analyzeOutput struct {
	Files             []fileOutput `json:"files"`
	CollaboratorCalls int          `json:"collaborator_calls"`
}

func toOutput(e export.Entry) fileOutput {
	out := fileOutput{File: e.Source}
	switch {
	case e.Text != nil:
		out.Result = e.Text
	case e.Images != nil:
		out.Result = e.Images
	}
	if e.Err != nil {
		out.Error = e.Err.Error()
	}
	return out
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	kind, err := parseKind()
	if err != nil {
		return err
	}
	logger := newLogger()
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := buildApp(ctx, logger)
	if err != nil {
		return err
	}
	defer func(a *app.App) {
		if err := a.Close(); err != nil {
			logger.Warn("app.close_failed", "error", err)
		}
	}(a)

	entries, calls := a.AnalyzeFiles(ctx, args, kind)
	out := analyzeOutput{Files: make([]fileOutput, 0, len(entries)), CollaboratorCalls: calls}
	for _, e := range entries {
		out.Files = append(out.Files, toOutput(e))
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
