package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"strings"
)

// Scheme selects how content identity is rendered into a key.
type Scheme string

const (
	// SchemeDigest identifies content by a SHA-256 prefix.
	SchemeDigest Scheme = "digest"
	// SchemeSize identifies content by byte size only. It reads caches
	// written by the first generation of the tool.
	SchemeSize Scheme = "size"
)

const digestLen = 16

// Key addresses one cache entry. Index is 1-based for images extracted
// from a document and 0 when the entry covers the whole document.
type Key struct {
	Stem   string
	Size   int64
	Digest string
	Index  int
	Scheme Scheme
}

// NewKey derives the key of a source file from its name and content.
func NewKey(name string, data []byte, scheme Scheme) Key {
	base := filepath.Base(name)
	sum := sha256.Sum256(data)
	return Key{
		Stem:   strings.TrimSuffix(base, filepath.Ext(base)),
		Size:   int64(len(data)),
		Digest: hex.EncodeToString(sum[:])[:digestLen],
		Scheme: scheme,
	}
}

// SizeKey builds a size scheme key without hashing content.
func SizeKey(stem string, size int64) Key {
	return Key{Stem: stem, Size: size, Scheme: SchemeSize}
}

// WithIndex returns the key of the i-th image of the source.
func (k Key) WithIndex(i int) Key {
	k.Index = i
	return k
}

func (k Key) String() string {
	id := k.Digest
	if k.Scheme == SchemeSize || id == "" {
		id = fmt.Sprintf("%d", k.Size)
	}
	s := k.Stem + "_" + id
	if k.Index > 0 {
		s += fmt.Sprintf("_%d", k.Index)
	}
	return s
}
