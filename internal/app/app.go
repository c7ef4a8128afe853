// Package app assembles the cache, collaborators and analyzer from
// configuration. Both commands build their runtime through it.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/joseph-ayodele/claims-triage/internal/analysis"
	"github.com/joseph-ayodele/claims-triage/internal/cache"
	"github.com/joseph-ayodele/claims-triage/internal/collab"
	"github.com/joseph-ayodele/claims-triage/internal/collab/google"
	"github.com/joseph-ayodele/claims-triage/internal/collab/local"
	"github.com/joseph-ayodele/claims-triage/internal/common"
)

type App struct {
	Config   *common.Config
	Cache    *cache.Cache
	Provider *collab.Provider
	Analyzer *analysis.Analyzer
}

// Build validates cfg and wires every component. Close releases them.
func Build(ctx context.Context, cfg *common.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c, err := cache.Open(ctx, cfg.Cache, logger)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	provider, err := NewProvider(ctx, cfg, local.ExecRunner(), logger)
	if err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("collaborators: %w", err)
	}
	guard := collab.NewGuard(collab.GuardConfigFrom(cfg.Collaborator), logger)
	analyzer := analysis.New(c, provider, guard, analysis.ConfigFrom(cfg), logger)

	logger.Info("app.ready",
		"cache_backend", cfg.Cache.Backend,
		"key_scheme", cfg.Cache.KeyScheme,
		"provider", cfg.Collaborator.Provider,
	)
	return &App{Config: cfg, Cache: c, Provider: provider, Analyzer: analyzer}, nil
}

func (a *App) Close() error {
	return errors.Join(a.Provider.Close(), a.Cache.Close())
}

// NewProvider selects the collaborators for cfg.Collaborator.Provider.
// PDF image extraction always runs locally. The local provider labels
// images with Vision only when Google credentials are configured.
func NewProvider(ctx context.Context, cfg *common.Config, runner local.Runner, logger *slog.Logger) (*collab.Provider, error) {
	extractor := local.NewImages(cfg.Local, runner, logger)

	switch cfg.Collaborator.Provider {
	case "google":
		ocr, err := google.NewDocumentAI(ctx, cfg.Google, logger)
		if err != nil {
			return nil, err
		}
		vis, err := google.NewVision(ctx, cfg.Google, logger)
		if err != nil {
			return nil, err
		}
		return collab.NewProvider(ocr, vis, extractor, nil), nil
	case "local":
		var classifier collab.ImageClassifier = collab.Disabled{Service: "image labelling"}
		if hasGoogleCredentials(cfg.Google) {
			vis, err := google.NewVision(ctx, cfg.Google, logger)
			if err != nil {
				return nil, err
			}
			classifier = vis
		} else {
			logger.Warn("app.labelling_disabled", "reason", "no google credentials")
		}
		return collab.NewProvider(local.NewOCR(cfg.Local, runner, logger), classifier, extractor, nil), nil
	default:
		return nil, fmt.Errorf("unknown collaborator provider %q", cfg.Collaborator.Provider)
	}
}

func hasGoogleCredentials(g common.GoogleConfig) bool {
	return g.APIKey != "" || g.CredentialsFile != ""
}
