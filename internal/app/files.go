package app

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"github.com/joseph-ayodele/claims-triage/constants"
	"github.com/joseph-ayodele/claims-triage/internal/common"
	"github.com/joseph-ayodele/claims-triage/internal/export"
	"github.com/joseph-ayodele/claims-triage/internal/ingest"
)

// ParseKind validates a document kind given on the command line.
func ParseKind(s string) (constants.DocumentKind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	v := common.NewValidator().Field("kind", s, common.OneOf("claim", "invoice", "images"))
	if err := common.ValidateAndReturnError(v); err != nil {
		return "", err
	}
	kind, _ := constants.ParseKind(s)
	return kind, nil
}

// ResultName names the JSON result written for an input file. The source
// extension is kept so "a.pdf" and "a.txt" do not share an output.
func ResultName(path string) string {
	return filepath.Base(path) + ".json"
}

// AnalyzeFile reads path and runs the analysis for kind. Failures are
// recorded on the entry; a collaborator failure keeps its partial result.
func (a *App) AnalyzeFile(ctx context.Context, path string, kind constants.DocumentKind) export.Entry {
	e := export.Entry{Source: path}
	in, err := ingest.ReadInput(path)
	if err != nil {
		e.Err = err
		return e
	}

	switch kind {
	case constants.KindImages:
		res, err := a.Analyzer.AnalyzeImages(ctx, in)
		if err == nil || errors.Is(err, common.ErrCollaborator) {
			e.Images = &res
		}
		e.Err = err
	default:
		res, err := a.Analyzer.AnalyzeText(ctx, in, kind)
		if err == nil || errors.Is(err, common.ErrCollaborator) {
			e.Text = &res
		}
		e.Err = err
	}
	return e
}

// AnalyzeFiles runs AnalyzeFile over paths in order and returns the
// entries with the total number of collaborator calls.
func (a *App) AnalyzeFiles(ctx context.Context, paths []string, kind constants.DocumentKind) ([]export.Entry, int) {
	entries := make([]export.Entry, 0, len(paths))
	calls := 0
	for _, p := range paths {
		if ctx.Err() != nil {
			break
		}
		e := a.AnalyzeFile(ctx, p, kind)
		calls += CollaboratorCalls(e)
		entries = append(entries, e)
	}
	return entries, calls
}

func CollaboratorCalls(e export.Entry) int {
	switch {
	case e.Text != nil:
		return e.Text.CollaboratorCalls
	case e.Images != nil:
		return e.Images.CollaboratorCalls
	}
	return 0
}
