package export

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/claims-triage/constants"
	"github.com/joseph-ayodele/claims-triage/internal/analysis"
	"github.com/joseph-ayodele/claims-triage/internal/classify"
	"github.com/joseph-ayodele/claims-triage/internal/fields"
)

func TestWorkbookSheets(t *testing.T) {
	text := &analysis.TextResult{
		Result: fields.Result{
			Kind: constants.KindInvoice,
			Fields: []fields.Field{
				{Name: constants.FieldVATNumber, Value: "12345678901"},
				{Name: constants.FieldAmount, Value: "250.00"},
			},
		},
		Status:            constants.StatusOK,
		CollaboratorCalls: 1,
	}
	images := &analysis.ImagesResult{
		Images: []analysis.ImageResult{
			{Index: 1, Status: constants.StatusOK, Labels: classify.SelectedLabels{{Name: "Pavimento", Confidence: 0.9}}},
			{Index: 2, Status: constants.StatusUnavailable, Labels: classify.SelectedLabels{}},
		},
	}

	data, err := NewService(nil).Workbook([]Entry{
		{Source: "fattura.pdf", Text: text},
		{Source: "foto.pdf", Images: images},
		{Source: "rotto.pdf", Err: errors.New("unsupported")},
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{fieldsSheet, imagesSheet}, f.GetSheetList())

	rows, err := f.GetRows(fieldsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"fattura.pdf", "INVOICE", "ok", "Importo", "250.00", "1"}, rows[2])
	assert.Equal(t, "errore", rows[3][2])

	rows, err = f.GetRows(imagesSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"foto.pdf", "1", "ok", "Pavimento", "0.9"}, rows[1])
	assert.Equal(t, []string{"foto.pdf", "2", "unavailable"}, rows[2])
}
