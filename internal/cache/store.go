// Package cache memoizes collaborator output and extraction results so the
// same content is never sent to OCR or labelling twice.
package cache

import (
	"context"
)

// Bucket groups entries of one shape.
type Bucket string

const (
	BucketText    Bucket = "text"
	BucketLabels  Bucket = "image_labels"
	BucketResults Bucket = "results"
)

// Ext is the file extension entries of the bucket are persisted with.
func (b Bucket) Ext() string {
	switch b {
	case BucketText:
		return ".txt"
	case BucketLabels:
		return ".csv"
	default:
		return ".json"
	}
}

// Store persists raw entry bytes. Implementations must be safe for
// concurrent use. A missing entry is reported as ok == false, not an error.
type Store interface {
	Get(ctx context.Context, bucket Bucket, key string) ([]byte, bool, error)
	Put(ctx context.Context, bucket Bucket, key string, data []byte) error
	Close() error
}
