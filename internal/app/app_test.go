package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/claims-triage/constants"
	"github.com/joseph-ayodele/claims-triage/internal/analysis"
	"github.com/joseph-ayodele/claims-triage/internal/collab"
	"github.com/joseph-ayodele/claims-triage/internal/collab/google"
	"github.com/joseph-ayodele/claims-triage/internal/collab/local"
	"github.com/joseph-ayodele/claims-triage/internal/common"
)

func localConfig() *common.Config {
	cfg := common.LoadConfig()
	cfg.Cache.Backend = "memory"
	cfg.Cache.KeyScheme = "digest"
	cfg.Collaborator.Provider = "local"
	cfg.Collaborator.MaxRetries = 0
	cfg.Google = common.GoogleConfig{Location: "eu"}
	cfg.Tuning = common.DefaultTuning()
	return cfg
}

func TestBuildLocalAnalyzesPlainText(t *testing.T) {
	a, err := Build(context.Background(), localConfig(), nil)
	require.NoError(t, err)
	defer a.Close()

	in := analysis.Input{
		Name:     "fattura.txt",
		MIMEType: constants.MIMEText,
		Data:     []byte("Fattura\nPartita IVA 12345678901\nTotale 120,50 €\n"),
	}
	res, err := a.Analyzer.AnalyzeText(context.Background(), in, constants.KindInvoice)
	require.NoError(t, err)
	vat, _ := res.Get(constants.FieldVATNumber)
	assert.Equal(t, "12345678901", vat)
	assert.Zero(t, res.CollaboratorCalls)
}

func TestBuildLocalWithoutCredentialsDisablesLabelling(t *testing.T) {
	a, err := Build(context.Background(), localConfig(), nil)
	require.NoError(t, err)
	defer a.Close()

	assert.IsType(t, collab.Disabled{}, a.Provider.Classifier)
	assert.IsType(t, &local.OCR{}, a.Provider.OCR)

	in := analysis.Input{Name: "foto.png", MIMEType: constants.MIMEPNG, Data: []byte{0x89, 'P', 'N', 'G'}}
	res, err := a.Analyzer.AnalyzeImages(context.Background(), in)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrCollaborator)
	assert.Equal(t, constants.StatusUnavailable, res.Status)
}

func TestBuildRejectsInvalidConfig(t *testing.T) {
	cfg := localConfig()
	cfg.Cache.Backend = "redis"
	_, err := Build(context.Background(), cfg, nil)
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestNewProviderGoogle(t *testing.T) {
	cfg := localConfig()
	cfg.Collaborator.Provider = "google"
	cfg.Google = common.GoogleConfig{ProjectID: "p", ProcessorID: "proc", Location: "eu", APIKey: "test-key"}

	p, err := NewProvider(context.Background(), cfg, nil, nil)
	require.NoError(t, err)
	assert.IsType(t, &google.DocumentAI{}, p.OCR)
	assert.IsType(t, &google.Vision{}, p.Classifier)
	assert.IsType(t, &local.Images{}, p.Extractor)
}

func TestAnalyzeFilesRecordsFailures(t *testing.T) {
	a, err := Build(context.Background(), localConfig(), nil)
	require.NoError(t, err)
	defer a.Close()

	dir := t.TempDir()
	good := filepath.Join(dir, "fattura.txt")
	require.NoError(t, os.WriteFile(good, []byte("Partita IVA 12345678901\n"), 0o644))
	missing := filepath.Join(dir, "manca.txt")

	entries, calls := a.AnalyzeFiles(context.Background(), []string{good, missing}, constants.KindInvoice)
	require.Len(t, entries, 2)
	assert.Zero(t, calls)

	require.NotNil(t, entries[0].Text)
	assert.NoError(t, entries[0].Err)
	vat, _ := entries[0].Text.Get(constants.FieldVATNumber)
	assert.Equal(t, "12345678901", vat)

	assert.Nil(t, entries[1].Text)
	assert.Error(t, entries[1].Err)
}

func TestParseKind(t *testing.T) {
	kind, err := ParseKind(" Invoice ")
	require.NoError(t, err)
	assert.Equal(t, constants.KindInvoice, kind)

	kind, err = ParseKind("images")
	require.NoError(t, err)
	assert.Equal(t, constants.KindImages, kind)

	_, err = ParseKind("receipt")
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestResultNameKeepsSourceExtension(t *testing.T) {
	assert.Equal(t, "a.pdf.json", ResultName(filepath.Join("inbox", "a.pdf")))
	assert.NotEqual(t, ResultName("inbox/a.pdf"), ResultName("inbox/a.txt"))
}
