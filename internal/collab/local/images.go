package local

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/joseph-ayodele/claims-triage/internal/common"
)

// Images extracts embedded images with pdfimages.
type Images struct {
	cfg    common.LocalConfig
	runner Runner
	logger *slog.Logger
}

func NewImages(cfg common.LocalConfig, runner Runner, logger *slog.Logger) *Images {
	if runner == nil {
		runner = ExecRunner()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Images{cfg: cfg, runner: runner, logger: logger}
}

// ExtractPageImages returns every image of the PDF in page order. JPEG
// streams are kept as is unless they are CMYK, which is re-encoded as RGB PNG.
func (x *Images) ExtractPageImages(ctx context.Context, pdf []byte) ([][]byte, error) {
	dir, err := os.MkdirTemp("", "claims-images-*")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)

	in := filepath.Join(dir, "input.pdf")
	if err := os.WriteFile(in, pdf, 0o600); err != nil {
		return nil, err
	}
	prefix := filepath.Join(dir, "img")
	if _, _, err := x.runner.Run(ctx, x.cfg.Pdfimages, x.logger, "-j", "-png", in, prefix); err != nil {
		return nil, fmt.Errorf("pdfimages: %w", err)
	}

	files, err := filepath.Glob(prefix + "-*")
	if err != nil {
		return nil, err
	}
	// pdfimages numbers output with zero padded counters.
	slices.Sort(files)

	images := make([][]byte, 0, len(files))
	for _, f := range files {
		ext := strings.ToLower(filepath.Ext(f))
		if ext != ".png" && ext != ".jpg" {
			x.logger.Debug("skipping unsupported image stream", "file", filepath.Base(f))
			continue
		}
		data, err := os.ReadFile(f)
		if err != nil {
			return nil, err
		}
		if ext == ".jpg" {
			data, err = ToRGB(data)
			if err != nil {
				return nil, fmt.Errorf("convert %s: %w", filepath.Base(f), err)
			}
		}
		images = append(images, data)
	}
	x.logger.Info("images extracted", "count", len(images))
	return images, nil
}

// ToRGB re-encodes a CMYK JPEG as an RGB PNG and returns other images unchanged.
func ToRGB(data []byte) ([]byte, error) {
	cfg, err := jpeg.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if cfg.ColorModel != color.CMYKModel {
		return data, nil
	}

	img, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return encodeRGB(img)
}

// encodeRGB draws img onto an RGBA canvas and encodes it as PNG.
func encodeRGB(img image.Image) ([]byte, error) {
	rgba := image.NewRGBA(img.Bounds())
	draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)

	var buf bytes.Buffer
	if err := png.Encode(&buf, rgba); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
