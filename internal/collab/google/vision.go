package google

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"

	"google.golang.org/api/option"
	vision "google.golang.org/api/vision/v1"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/joseph-ayodele/claims-triage/internal/classify"
	"github.com/joseph-ayodele/claims-triage/internal/common"
)

const maxLabels = 50

// Vision labels images with Cloud Vision label detection.
type Vision struct {
	svc    *vision.Service
	logger *slog.Logger
}

func NewVision(ctx context.Context, cfg common.GoogleConfig, logger *slog.Logger, extra ...option.ClientOption) (*Vision, error) {
	if logger == nil {
		logger = slog.Default()
	}
	svc, err := vision.NewService(ctx, append(clientOptions(cfg), extra...)...)
	if err != nil {
		return nil, fmt.Errorf("create vision client: %w", err)
	}
	return &Vision{svc: svc, logger: logger}, nil
}

func (v *Vision) ClassifyImage(ctx context.Context, image []byte) ([]classify.ImageLabel, error) {
	req := &vision.BatchAnnotateImagesRequest{
		Requests: []*vision.AnnotateImageRequest{{
			Image:    &vision.Image{Content: base64.StdEncoding.EncodeToString(image)},
			Features: []*vision.Feature{{Type: "LABEL_DETECTION", MaxResults: maxLabels}},
		}},
	}
	v.logger.Info("vision.annotate", "bytes", len(image))
	resp, err := v.svc.Images.Annotate(req).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("vision annotate: %w", err)
	}
	if len(resp.Responses) == 0 {
		return nil, nil
	}

	r := resp.Responses[0]
	if r.Error != nil && r.Error.Code != 0 {
		// Per-image failures come back in the body with an RPC code.
		return nil, status.Error(codes.Code(r.Error.Code), r.Error.Message)
	}
	labels := make([]classify.ImageLabel, 0, len(r.LabelAnnotations))
	for _, a := range r.LabelAnnotations {
		labels = append(labels, classify.ImageLabel{Description: a.Description, Confidence: a.Score})
	}
	return labels, nil
}
