// Package google implements the OCR and labelling collaborators on Document
// AI and Cloud Vision.
package google

import (
	"google.golang.org/api/option"

	"github.com/joseph-ayodele/claims-triage/internal/common"
)

const euDocumentAIEndpoint = "https://eu-documentai.googleapis.com/"

// clientOptions returns authentication options. An empty config falls back
// to application default credentials.
func clientOptions(cfg common.GoogleConfig) []option.ClientOption {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	if cfg.APIKey != "" {
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	}
	return opts
}

// documentAIEndpoint returns the regional endpoint for location, or "" for the global one.
func documentAIEndpoint(location string) string {
	if location == "eu" {
		return euDocumentAIEndpoint
	}
	return ""
}
