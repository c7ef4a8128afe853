package collab

import (
	"context"
	"fmt"

	"github.com/joseph-ayodele/claims-triage/internal/classify"
	"github.com/joseph-ayodele/claims-triage/internal/common"
)

// Disabled stands in for a service the deployment has not configured.
// Every call fails with ErrCollaborator so the analysis reports the
// extraction as unavailable.
type Disabled struct {
	Service string
}

func (d Disabled) err() error {
	return fmt.Errorf("%s is not configured: %w", d.Service, common.ErrCollaborator)
}

func (d Disabled) ReadText(context.Context, []byte, string) ([]string, error) {
	return nil, d.err()
}

func (d Disabled) ClassifyImage(context.Context, []byte) ([]classify.ImageLabel, error) {
	return nil, d.err()
}

func (d Disabled) ExtractPageImages(context.Context, []byte) ([][]byte, error) {
	return nil, d.err()
}
