package constants

import (
	"path/filepath"
	"strings"
)

// Supported MIME types.
const (
	MIMEText = "text/plain"
	MIMEPDF  = "application/pdf"
	MIMEPNG  = "image/png"
	MIMEJPEG = "image/jpeg"
)

// AllowedExtensions holds the default allowed file extensions for ingestion.
var AllowedExtensions = map[string]struct{}{
	"txt":  {},
	"pdf":  {},
	"jpg":  {},
	"jpeg": {},
	"png":  {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// MIMEFromPath maps a file name to one of the supported MIME types, or "".
func MIMEFromPath(path string) string {
	switch NormalizeExt(filepath.Ext(path)) {
	case "txt":
		return MIMEText
	case "pdf":
		return MIMEPDF
	case "png":
		return MIMEPNG
	case "jpg", "jpeg":
		return MIMEJPEG
	default:
		return ""
	}
}

// IsImageMIME reports whether the MIME type is a single raster image.
func IsImageMIME(mimeType string) bool {
	return mimeType == MIMEPNG || mimeType == MIMEJPEG
}
