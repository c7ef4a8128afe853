package local

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/joseph-ayodele/claims-triage/constants"
	"github.com/joseph-ayodele/claims-triage/internal/common"
	"github.com/joseph-ayodele/claims-triage/internal/document"
)

// OCR reads embedded PDF text with pdftotext and falls back to tesseract
// on rasterized pages when a PDF carries no text layer.
type OCR struct {
	cfg    common.LocalConfig
	runner Runner
	logger *slog.Logger
}

func NewOCR(cfg common.LocalConfig, runner Runner, logger *slog.Logger) *OCR {
	if runner == nil {
		runner = ExecRunner()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &OCR{cfg: cfg, runner: runner, logger: logger}
}

func (o *OCR) ReadText(ctx context.Context, data []byte, mimeType string) ([]string, error) {
	switch {
	case mimeType == constants.MIMEText:
		return document.SplitLines(string(data)), nil
	case mimeType == constants.MIMEPDF:
		return o.readPDF(ctx, data)
	case constants.IsImageMIME(mimeType):
		dir, err := os.MkdirTemp("", "claims-ocr-*")
		if err != nil {
			return nil, err
		}
		defer os.RemoveAll(dir)
		path := filepath.Join(dir, "input"+extFor(mimeType))
		if err := os.WriteFile(path, data, 0o600); err != nil {
			return nil, err
		}
		text, err := o.tesseract(ctx, path)
		if err != nil {
			return nil, err
		}
		return document.SplitLines(text), nil
	default:
		return nil, common.Unsupported(mimeType)
	}
}

func (o *OCR) readPDF(ctx context.Context, data []byte) ([]string, error) {
	dir, err := os.MkdirTemp("", "claims-ocr-*")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)

	in := filepath.Join(dir, "input.pdf")
	if err := os.WriteFile(in, data, 0o600); err != nil {
		return nil, err
	}

	out, _, err := o.runner.Run(ctx, o.cfg.Pdftotext, o.logger, "-enc", "UTF-8", in, "-")
	if err != nil {
		return nil, fmt.Errorf("pdftotext: %w", err)
	}
	// pdftotext separates pages with form feeds.
	text := strings.ReplaceAll(string(out), "\f", "\n")
	if strings.TrimSpace(text) != "" {
		return document.SplitLines(text), nil
	}

	o.logger.Info("pdf has no text layer, rasterizing", "dpi", o.cfg.DPI)
	prefix := filepath.Join(dir, "page")
	if _, _, err := o.runner.Run(ctx, o.cfg.Pdftoppm, o.logger, "-r", strconv.Itoa(o.cfg.DPI), "-png", in, prefix); err != nil {
		return nil, fmt.Errorf("pdftoppm: %w", err)
	}
	pages, err := filepath.Glob(prefix + "-*.png")
	if err != nil {
		return nil, err
	}
	slices.Sort(pages)

	var b strings.Builder
	for _, p := range pages {
		pageText, err := o.tesseract(ctx, p)
		if err != nil {
			return nil, err
		}
		b.WriteString(pageText)
		if !strings.HasSuffix(pageText, "\n") {
			b.WriteString("\n")
		}
	}
	return document.SplitLines(b.String()), nil
}

func (o *OCR) tesseract(ctx context.Context, path string) (string, error) {
	args := []string{path, "stdout", "-l", o.cfg.TesseractLang}
	if o.cfg.TessdataDir != "" {
		args = append(args, "--tessdata-dir", o.cfg.TessdataDir)
	}
	out, _, err := o.runner.Run(ctx, o.cfg.Tesseract, o.logger, args...)
	if err != nil {
		return "", fmt.Errorf("tesseract: %w", err)
	}
	return strings.ReplaceAll(string(out), "\f", ""), nil
}

func extFor(mimeType string) string {
	if mimeType == constants.MIMEPNG {
		return ".png"
	}
	return ".jpg"
}
