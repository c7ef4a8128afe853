package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/claims-triage/constants"
	"github.com/joseph-ayodele/claims-triage/internal/analysis"
	"github.com/joseph-ayodele/claims-triage/internal/classify"
	"github.com/joseph-ayodele/claims-triage/internal/common"
	"github.com/joseph-ayodele/claims-triage/internal/fields"
)

type fakeAnalyzer struct {
	textErr   error
	imagesErr error
	gotKind   constants.DocumentKind
	gotInput  analysis.Input
	gotReqID  string
}

func (f *fakeAnalyzer) AnalyzeText(ctx context.Context, in analysis.Input, kind constants.DocumentKind) (analysis.TextResult, error) {
	f.gotKind, f.gotInput = kind, in
	f.gotReqID = common.RequestIDFromContext(ctx)
	res := analysis.TextResult{Result: fields.Empty(kind), Status: constants.StatusOK, RequestID: f.gotReqID}
	if f.textErr != nil {
		res.Status = constants.StatusUnavailable
		return res, f.textErr
	}
	res.Fields[0].Value = "12345678901"
	res.CollaboratorCalls = 1
	return res, nil
}

func (f *fakeAnalyzer) AnalyzeImages(ctx context.Context, in analysis.Input) (analysis.ImagesResult, error) {
	f.gotInput = in
	return analysis.ImagesResult{
		Images: []analysis.ImageResult{{
			Index:  1,
			Labels: classify.SelectedLabels{{Name: "acqua", Confidence: 0.9}},
			Status: constants.StatusOK,
		}},
		Status: constants.StatusOK,
	}, f.imagesErr
}

func init() {
	gin.SetMode(gin.TestMode)
}

func upload(t *testing.T, url, filename string, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if filename != "" {
		fw, err := mw.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, url, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func serve(t *testing.T, a Analyzer, req *http.Request) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	srv := New(a, common.ServerConfig{MaxUploadBytes: 1 << 20}, nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestHealthz(t *testing.T) {
	rec, body := serve(t, &fakeAnalyzer{}, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])
}

func TestAnalyzeInvoice(t *testing.T) {
	a := &fakeAnalyzer{}
	req := upload(t, "/v1/analyze/invoice", "fattura.pdf", []byte("%PDF"))
	req.Header.Set("X-Request-ID", "req-42")

	rec, body := serve(t, a, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "req-42", rec.Header().Get("X-Request-ID"))
	assert.Equal(t, "req-42", a.gotReqID)
	assert.Equal(t, constants.KindInvoice, a.gotKind)
	assert.Equal(t, constants.MIMEPDF, a.gotInput.MIMEType)
	assert.Equal(t, "fattura.pdf", a.gotInput.Name)

	assert.Equal(t, true, body["success"])
	result := body["result"].(map[string]any)
	assert.Equal(t, "INVOICE", result["kind"])
	assert.Equal(t, "ok", result["status"])
	assert.EqualValues(t, 1, result["collaborator_calls"])
}

func TestAnalyzeClaimGeneratesRequestID(t *testing.T) {
	a := &fakeAnalyzer{}
	rec, _ := serve(t, a, upload(t, "/v1/analyze/claim", "denuncia.txt", []byte("testo")))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, constants.KindClaim, a.gotKind)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	assert.Equal(t, rec.Header().Get("X-Request-ID"), a.gotReqID)
}

func TestAnalyzeUnavailableCarriesResult(t *testing.T) {
	a := &fakeAnalyzer{textErr: common.Unavailable("ocr", errors.New("quota"))}
	rec, body := serve(t, a, upload(t, "/v1/analyze/claim", "denuncia.pdf", []byte("%PDF")))

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, false, body["success"])
	errBody := body["error"].(map[string]any)
	assert.Equal(t, common.CodeUnavailable, errBody["code"])
	result := body["result"].(map[string]any)
	assert.Equal(t, "unavailable", result["status"])
}

func TestAnalyzeRejectsMissingFile(t *testing.T) {
	rec, body := serve(t, &fakeAnalyzer{}, upload(t, "/v1/analyze/claim", "", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, common.CodeInvalidInput, body["error"].(map[string]any)["code"])
}

func TestAnalyzeRejectsUnsupportedType(t *testing.T) {
	rec, body := serve(t, &fakeAnalyzer{}, upload(t, "/v1/analyze/invoice", "fattura.docx", []byte("x")))
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	assert.Equal(t, common.CodeUnsupported, body["error"].(map[string]any)["code"])
}

func TestAnalyzeImagesRejectsText(t *testing.T) {
	rec, _ := serve(t, &fakeAnalyzer{}, upload(t, "/v1/analyze/images", "note.txt", []byte("x")))
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestAnalyzeImages(t *testing.T) {
	a := &fakeAnalyzer{}
	rec, body := serve(t, a, upload(t, "/v1/analyze/images", "foto.jpg", []byte{0xff, 0xd8}))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, constants.MIMEJPEG, a.gotInput.MIMEType)

	images := body["result"].(map[string]any)["images"].([]any)
	require.Len(t, images, 1)
	first := images[0].(map[string]any)
	assert.EqualValues(t, 1, first["index"])
	labels := first["labels"].([]any)
	assert.Equal(t, "acqua", labels[0].(map[string]any)["name"])
}
