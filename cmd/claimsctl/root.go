package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/claims-triage/constants"
	"github.com/joseph-ayodele/claims-triage/internal/app"
	"github.com/joseph-ayodele/claims-triage/internal/common"
)

var (
	kindFlag   string
	tuningFile string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:           "claimsctl",
	Short:         "Extract triage fields from insurance claim documents",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&kindFlag, "kind", "claim", "document kind: claim, invoice or images")
	rootCmd.PersistentFlags().StringVar(&tuningFile, "tuning", "", "TOML file overriding extraction windows (defaults to $EXTRACT_TUNING_FILE)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}

func parseKind() (constants.DocumentKind, error) {
	kind, err := app.ParseKind(kindFlag)
	if err != nil {
		return "", fmt.Errorf("invalid --kind: %w", err)
	}
	return kind, nil
}

// buildApp loads .env, the environment and the tuning file, then wires the app.
func buildApp(ctx context.Context, logger *slog.Logger) (*app.App, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file found, using environment variables")
	}
	cfg := common.LoadConfig()

	path := tuningFile
	if path == "" {
		path = os.Getenv("EXTRACT_TUNING_FILE")
	}
	if path != "" {
		if err := cfg.LoadTuningFile(path); err != nil {
			return nil, err
		}
		logger.Info("config.tuning_loaded", "path", path)
	}
	return app.Build(ctx, cfg, logger)
}
