// Package ingest discovers input files on disk, either by walking a
// directory once or by watching an inbox for new arrivals.
package ingest

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/joseph-ayodele/claims-triage/constants"
	"github.com/joseph-ayodele/claims-triage/internal/analysis"
)

// ListFiles walks root and returns every file with an allowed extension,
// sorted by path. includeExts overrides constants.AllowedExtensions.
func ListFiles(root string, includeExts []string, skipHidden bool) ([]string, error) {
	if strings.TrimSpace(root) == "" {
		return nil, errors.New("root path is required")
	}

	var exts map[string]struct{}
	if len(includeExts) > 0 {
		exts = map[string]struct{}{}
		for _, e := range includeExts {
			if e = constants.NormalizeExt(strings.TrimSpace(e)); e != "" {
				exts[e] = struct{}{}
			}
		}
	}
	exts = extSet(exts)

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if skipHidden && path != root && isHidden(path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !allowed(path, exts) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	slices.Sort(files)
	return files, nil
}

// ReadInput loads path into an analysis input.
func ReadInput(path string) (analysis.Input, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return analysis.Input{}, err
	}
	return analysis.InputFromFile(path, data), nil
}

func extSet(exts map[string]struct{}) map[string]struct{} {
	if len(exts) == 0 {
		return constants.AllowedExtensions
	}
	return exts
}

func allowed(path string, exts map[string]struct{}) bool {
	_, ok := exts[constants.NormalizeExt(filepath.Ext(path))]
	return ok
}

func isHidden(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".")
}
