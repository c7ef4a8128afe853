package google

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"

	documentai "google.golang.org/api/documentai/v1"
	"google.golang.org/api/option"

	"github.com/joseph-ayodele/claims-triage/internal/common"
	"github.com/joseph-ayodele/claims-triage/internal/document"
)

// DocumentAI reads text with a Document AI OCR processor.
type DocumentAI struct {
	svc    *documentai.Service
	name   string
	logger *slog.Logger
}

func NewDocumentAI(ctx context.Context, cfg common.GoogleConfig, logger *slog.Logger, extra ...option.ClientOption) (*DocumentAI, error) {
	if logger == nil {
		logger = slog.Default()
	}
	opts := clientOptions(cfg)
	if ep := documentAIEndpoint(cfg.Location); ep != "" {
		opts = append(opts, option.WithEndpoint(ep))
	}
	opts = append(opts, extra...)

	svc, err := documentai.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create document ai client: %w", err)
	}
	return &DocumentAI{
		svc:    svc,
		name:   fmt.Sprintf("projects/%s/locations/%s/processors/%s", cfg.ProjectID, cfg.Location, cfg.ProcessorID),
		logger: logger,
	}, nil
}

func (d *DocumentAI) ReadText(ctx context.Context, data []byte, mimeType string) ([]string, error) {
	req := &documentai.GoogleCloudDocumentaiV1ProcessRequest{
		RawDocument: &documentai.GoogleCloudDocumentaiV1RawDocument{
			Content:  base64.StdEncoding.EncodeToString(data),
			MimeType: mimeType,
		},
	}
	d.logger.Info("documentai.process", "processor", d.name, "mime_type", mimeType, "bytes", len(data))
	resp, err := d.svc.Projects.Locations.Processors.Process(d.name, req).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("document ai process: %w", err)
	}
	if resp.Document == nil {
		return nil, nil
	}
	return document.SplitLines(resp.Document.Text), nil
}
