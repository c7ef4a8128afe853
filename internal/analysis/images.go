package analysis

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/joseph-ayodele/claims-triage/constants"
	"github.com/joseph-ayodele/claims-triage/internal/cache"
	"github.com/joseph-ayodele/claims-triage/internal/classify"
	"github.com/joseph-ayodele/claims-triage/internal/collab"
	"github.com/joseph-ayodele/claims-triage/internal/common"
)

// ImageResult holds the selected labels of one image. Index is 1-based.
type ImageResult struct {
	Index  int                     `json:"index"`
	Image  []byte                  `json:"-"`
	Labels classify.SelectedLabels `json:"labels"`
	Status constants.ResultStatus  `json:"status"`
	Cached bool                    `json:"cached"`
	Error  string                  `json:"error,omitempty"`
}

// ImagesResult is the outcome of an image set analysis.
type ImagesResult struct {
	Images            []ImageResult          `json:"images"`
	Status            constants.ResultStatus `json:"status"`
	CollaboratorCalls int                    `json:"collaborator_calls"`
	RequestID         string                 `json:"request_id"`
}

// AnalyzeImages labels a single image or every image embedded in a PDF.
// A failing image is reported as unavailable without stopping the others;
// the returned error then joins every failure.
func (a *Analyzer) AnalyzeImages(ctx context.Context, in Input) (ImagesResult, error) {
	reqID := requestID(ctx)
	logger := a.logger.With("request_id", reqID, "file", in.Name, "kind", constants.KindImages)
	out := ImagesResult{Images: []ImageResult{}, Status: constants.StatusOK, RequestID: reqID}

	if err := in.Validate(); err != nil {
		return out, err
	}
	states := newStateLog(logger)

	images, err := a.splitImages(ctx, in)
	if err != nil {
		if errors.Is(err, common.ErrUnsupportedType) {
			return out, err
		}
		out.Status = constants.StatusUnavailable
		logger.Error("analysis.images.split.failed", "error", err)
		states.to(constants.StateResultReady, "status", out.Status)
		return out, common.Unavailable("image extraction", err)
	}
	states.to(constants.StateImagesSplit, "images", len(images))

	base := cache.NewKey(in.Name, in.Data, a.cfg.KeyScheme)
	var failures []error
	cached := 0
	for i, img := range images {
		res := ImageResult{Index: i + 1, Image: img, Status: constants.StatusOK}
		key := base.WithIndex(res.Index)

		labels, hit, calls, err := a.loadLabels(ctx, key, img)
		out.CollaboratorCalls += calls
		switch {
		case err != nil:
			res.Status = constants.StatusUnavailable
			res.Error = err.Error()
			res.Labels = classify.SelectedLabels{}
			failures = append(failures, fmt.Errorf("image %d: %w", res.Index, err))
			logger.Error("analysis.labels.failed", "index", res.Index, "key", key.String(), "attempts", calls, "error", err)
		default:
			res.Labels = labels
			res.Cached = hit
			if hit {
				cached++
			}
		}
		out.Images = append(out.Images, res)
	}
	states.to(constants.StateLabelsLoaded, "cached", cached, "failed", len(failures), "collaborator_calls", out.CollaboratorCalls)

	selected := 0
	for _, r := range out.Images {
		selected += len(r.Labels)
	}
	states.to(constants.StateLabelsFiltered, "selected", selected, "threshold", a.cfg.LabelThreshold)

	if len(failures) > 0 {
		out.Status = constants.StatusUnavailable
		states.to(constants.StateResultReady, "status", out.Status)
		return out, common.Unavailable("image labelling", errors.Join(failures...))
	}
	states.to(constants.StateResultReady)
	return out, nil
}

func (a *Analyzer) splitImages(ctx context.Context, in Input) ([][]byte, error) {
	switch {
	case constants.IsImageMIME(in.MIMEType):
		return [][]byte{in.Data}, nil
	case in.MIMEType == constants.MIMEPDF:
		if a.provider == nil || a.provider.Extractor == nil {
			return nil, errors.Join(common.ErrCollaborator, errors.New("no image extractor configured"))
		}
		return a.provider.Extractor.ExtractPageImages(ctx, in.Data)
	default:
		return nil, common.Unsupported(in.MIMEType)
	}
}

// loadLabels returns the selected labels of one image. Labels are selected
// before caching, so a hit is already filtered.
func (a *Analyzer) loadLabels(ctx context.Context, key cache.Key, img []byte) (classify.SelectedLabels, bool, int, error) {
	if labels, ok := a.cache.Labels(ctx, key); ok {
		return labels, true, 0, nil
	}
	if a.provider == nil || a.provider.Classifier == nil {
		return nil, false, 0, errors.Join(common.ErrCollaborator, errors.New("no image classifier configured"))
	}

	var calls atomic.Int32
	labels, _, err := share(ctx, &a.flights, "labels/"+key.String(), func(ctx context.Context) (classify.SelectedLabels, error) {
		if labels, ok := a.cache.Labels(ctx, key); ok {
			return labels, nil
		}
		raw, n, err := collab.Call(ctx, a.guard, "labels", func(ctx context.Context) ([]classify.ImageLabel, error) {
			return a.provider.Classifier.ClassifyImage(ctx, img)
		})
		calls.Store(int32(n))
		if err != nil {
			return nil, err
		}
		labels := classify.SelectLabels(raw, a.cfg.LabelThreshold)
		if err := a.cache.PutLabels(ctx, key, labels); err != nil {
			a.logger.Warn("cache.write.failed", "bucket", cache.BucketLabels, "key", key.String(), "error", err)
		}
		return labels, nil
	})
	if err != nil {
		return nil, false, int(calls.Load()), err
	}
	return labels, false, int(calls.Load()), nil
}
