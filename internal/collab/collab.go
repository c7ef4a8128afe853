// Package collab declares the external OCR and image services the analysis
// depends on and wraps their calls with quota and retry handling.
package collab

import (
	"context"

	"github.com/joseph-ayodele/claims-triage/internal/classify"
)

// OCR turns a document into text lines, terminators included.
type OCR interface {
	ReadText(ctx context.Context, data []byte, mimeType string) ([]string, error)
}

// ImageClassifier labels the content of an encoded image.
type ImageClassifier interface {
	ClassifyImage(ctx context.Context, image []byte) ([]classify.ImageLabel, error)
}

// ImageExtractor returns the images embedded in a PDF, in page order,
// converted to RGB.
type ImageExtractor interface {
	ExtractPageImages(ctx context.Context, pdf []byte) ([][]byte, error)
}

// Provider bundles the collaborators of one backend.
type Provider struct {
	OCR        OCR
	Classifier ImageClassifier
	Extractor  ImageExtractor
	close      func() error
}

// NewProvider assembles a provider. closer may be nil.
func NewProvider(ocr OCR, classifier ImageClassifier, extractor ImageExtractor, closer func() error) *Provider {
	return &Provider{OCR: ocr, Classifier: classifier, Extractor: extractor, close: closer}
}

// Close releases clients held by the provider.
func (p *Provider) Close() error {
	if p.close == nil {
		return nil
	}
	return p.close()
}
