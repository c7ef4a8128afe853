package export

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/claims-triage/internal/analysis"
)

const (
	fieldsSheet = "Campi"
	imagesSheet = "Immagini"
)

// Entry is the analysis outcome of one source file. Exactly one of Text
// and Images is set for an analyzed file; Err records why neither is.
type Entry struct {
	Source string
	Text   *analysis.TextResult
	Images *analysis.ImagesResult
	Err    error
}

// Service produces XLSX workbooks of analysis results.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// Workbook renders entries into a workbook with one row per extracted
// field on "Campi" and one row per selected label on "Immagini".
func (s *Service) Workbook(entries []Entry) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	defer f.Close()

	// Rename the default sheet so the workbook opens on the fields.
	if err := f.SetSheetName(f.GetSheetName(0), fieldsSheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(imagesSheet); err != nil {
		return nil, err
	}

	writeRow(f, fieldsSheet, 1, "File", "Tipo", "Stato", "Campo", "Valore", "Chiamate API")
	writeRow(f, imagesSheet, 1, "File", "Immagine", "Stato", "Etichetta", "Confidenza")

	fieldRow, imageRow := 2, 2
	for _, e := range entries {
		switch {
		case e.Text != nil:
			for _, fld := range e.Text.Fields {
				writeRow(f, fieldsSheet, fieldRow, e.Source, string(e.Text.Kind), string(e.Text.Status), fld.Name, fld.Value, e.Text.CollaboratorCalls)
				fieldRow++
			}
		case e.Images != nil:
			for _, img := range e.Images.Images {
				if len(img.Labels) == 0 {
					writeRow(f, imagesSheet, imageRow, e.Source, img.Index, string(img.Status), "", "")
					imageRow++
					continue
				}
				for _, l := range img.Labels {
					writeRow(f, imagesSheet, imageRow, e.Source, img.Index, string(img.Status), l.Name, l.Confidence)
					imageRow++
				}
			}
		}
		if e.Err != nil {
			writeRow(f, fieldsSheet, fieldRow, e.Source, "", "errore", "", truncate(e.Err.Error(), 240), "")
			fieldRow++
		}
	}

	// Widen a few columns
	_ = f.SetColWidth(fieldsSheet, "A", "A", 32) // file
	_ = f.SetColWidth(fieldsSheet, "D", "D", 18) // field
	_ = f.SetColWidth(fieldsSheet, "E", "E", 40) // value
	_ = f.SetColWidth(imagesSheet, "A", "A", 32)
	_ = f.SetColWidth(imagesSheet, "D", "D", 28)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	s.logger.Info("export.workbook",
		"entries", len(entries),
		"field_rows", fieldRow-2,
		"image_rows", imageRow-2,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, sheet string, row int, values ...any) {
	for i, v := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		_ = f.SetCellValue(sheet, cell, v)
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
