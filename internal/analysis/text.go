package analysis

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/joseph-ayodele/claims-triage/constants"
	"github.com/joseph-ayodele/claims-triage/internal/cache"
	"github.com/joseph-ayodele/claims-triage/internal/collab"
	"github.com/joseph-ayodele/claims-triage/internal/common"
	"github.com/joseph-ayodele/claims-triage/internal/document"
	"github.com/joseph-ayodele/claims-triage/internal/fields"
)

// TextResult is the outcome of a claim or invoice analysis.
type TextResult struct {
	fields.Result
	Status            constants.ResultStatus `json:"status"`
	CollaboratorCalls int                    `json:"collaborator_calls"`
	Cached            bool                   `json:"cached"`
	RequestID         string                 `json:"request_id"`
}

// AnalyzeText extracts the fields of kind from a text, PDF or image input.
// Plain text is analyzed directly; other inputs go through the cache and,
// on a miss, through OCR. When OCR fails the result carries empty fields,
// status unavailable and the error is returned alongside it.
func (a *Analyzer) AnalyzeText(ctx context.Context, in Input, kind constants.DocumentKind) (TextResult, error) {
	reqID := requestID(ctx)
	logger := a.logger.With("request_id", reqID, "file", in.Name, "kind", kind)
	out := TextResult{Result: fields.Empty(kind), Status: constants.StatusOK, RequestID: reqID}

	if kind != constants.KindClaim && kind != constants.KindInvoice {
		return out, common.NewAppError(common.CodeInvalidInput, "unsupported kind "+string(kind), common.ErrInvalidInput)
	}
	if err := in.Validate(); err != nil {
		return out, err
	}
	states := newStateLog(logger)

	if in.MIMEType == constants.MIMEText {
		doc := document.FromText(string(in.Data))
		states.to(constants.StateTextLoaded, "source", "plain", "lines", doc.Len())
		out.Result, _ = fields.Extract(kind, doc, a.cfg.Fields)
		states.to(constants.StateFieldsExtracted)
		states.to(constants.StateResultReady)
		return out, nil
	}
	if in.MIMEType != constants.MIMEPDF && !constants.IsImageMIME(in.MIMEType) {
		return out, common.Unsupported(in.MIMEType)
	}

	key := cache.NewKey(in.Name, in.Data, a.cfg.KeyScheme)
	if res, ok := a.cache.Result(ctx, key, kind, a.cfg.Fields.Windows); ok {
		out.Result = res
		out.Cached = true
		states.to(constants.StateResultReady, "source", "result_cache", "key", key.String())
		return out, nil
	}

	lines, calls, err := a.loadText(ctx, key, in)
	out.CollaboratorCalls = calls
	if err != nil {
		out.Status = constants.StatusUnavailable
		logger.Error("analysis.ocr.failed", "key", key.String(), "attempts", calls, "error", err)
		states.to(constants.StateResultReady, "status", out.Status)
		return out, common.Unavailable("ocr", err)
	}
	doc := document.FromLines(lines)
	states.to(constants.StateTextLoaded, "key", key.String(), "lines", doc.Len(), "collaborator_calls", calls)

	out.Result, _ = fields.Extract(kind, doc, a.cfg.Fields)
	states.to(constants.StateFieldsExtracted)

	if err := a.cache.PutResult(ctx, key, out.Result, a.cfg.Fields.Windows); err != nil {
		logger.Warn("cache.write.failed", "bucket", cache.BucketResults, "key", key.String(), "error", err)
	}
	states.to(constants.StateResultReady)
	return out, nil
}

// loadText returns the OCR lines of in, from the cache when possible.
// calls counts the collaborator attempts made by this caller only.
func (a *Analyzer) loadText(ctx context.Context, key cache.Key, in Input) ([]string, int, error) {
	if lines, ok := a.cache.Text(ctx, key); ok {
		return lines, 0, nil
	}
	if a.provider == nil || a.provider.OCR == nil {
		return nil, 0, errors.Join(common.ErrCollaborator, errors.New("no OCR configured"))
	}

	// Only the caller whose function runs sees a non-zero count.
	var calls atomic.Int32
	lines, shared, err := share(ctx, &a.flights, "text/"+key.String(), func(ctx context.Context) ([]string, error) {
		// A flight that completed just before this one may have filled the cache.
		if lines, ok := a.cache.Text(ctx, key); ok {
			return lines, nil
		}
		lines, n, err := collab.Call(ctx, a.guard, "ocr", func(ctx context.Context) ([]string, error) {
			return a.provider.OCR.ReadText(ctx, in.Data, in.MIMEType)
		})
		calls.Store(int32(n))
		if err != nil {
			return nil, err
		}
		if err := a.cache.PutText(ctx, key, lines); err != nil {
			a.logger.Warn("cache.write.failed", "bucket", cache.BucketText, "key", key.String(), "error", err)
		}
		return lines, nil
	})
	if shared {
		a.logger.Debug("analysis.flight.shared", "key", key.String())
	}
	if err != nil {
		return nil, int(calls.Load()), err
	}
	return lines, int(calls.Load()), nil
}
