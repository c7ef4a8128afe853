package cache

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/joseph-ayodele/claims-triage/constants"
	"github.com/joseph-ayodele/claims-triage/internal/classify"
	"github.com/joseph-ayodele/claims-triage/internal/common"
	"github.com/joseph-ayodele/claims-triage/internal/document"
	"github.com/joseph-ayodele/claims-triage/internal/fields"
)

// Cache reads and writes typed entries on top of a Store. Entries that
// cannot be decoded are reported as misses, so a damaged cache only costs
// a collaborator call.
type Cache struct {
	store  Store
	schema *jsonschema.Schema
	logger *slog.Logger
}

func New(store Store, logger *slog.Logger) (*Cache, error) {
	if logger == nil {
		logger = slog.Default()
	}
	schema, err := compileResultSchema()
	if err != nil {
		return nil, err
	}
	return &Cache{store: store, schema: schema, logger: logger}, nil
}

// Store returns the underlying byte store.
func (c *Cache) Store() Store { return c.store }

// Close releases the underlying store.
func (c *Cache) Close() error { return c.store.Close() }

func (c *Cache) get(ctx context.Context, bucket Bucket, key string) ([]byte, bool) {
	data, ok, err := c.store.Get(ctx, bucket, key)
	if err != nil {
		c.logger.Warn("cache.read.failed", "bucket", bucket, "key", key, "error", err)
		return nil, false
	}
	if !ok {
		c.logger.Debug("cache.miss", "bucket", bucket, "key", key)
		return nil, false
	}
	c.logger.Debug("cache.hit", "bucket", bucket, "key", key)
	return data, true
}

func (c *Cache) corrupt(bucket Bucket, key string, err error) {
	c.logger.Warn("cache.corrupt", "bucket", bucket, "key", key, "error", errors.Join(common.ErrCacheCorrupt, err))
}

// Text returns the OCR lines cached for key.
func (c *Cache) Text(ctx context.Context, key Key) ([]string, bool) {
	data, ok := c.get(ctx, BucketText, key.String())
	if !ok {
		return nil, false
	}
	if !utf8.Valid(data) {
		c.corrupt(BucketText, key.String(), errors.New("invalid utf-8"))
		return nil, false
	}
	return document.SplitLines(string(data)), true
}

// PutText stores OCR lines as written, one after the other.
func (c *Cache) PutText(ctx context.Context, key Key, lines []string) error {
	return c.store.Put(ctx, BucketText, key.String(), []byte(strings.Join(lines, "")))
}

// Labels returns the selected labels cached for key.
func (c *Cache) Labels(ctx context.Context, key Key) (classify.SelectedLabels, bool) {
	data, ok := c.get(ctx, BucketLabels, key.String())
	if !ok {
		return nil, false
	}
	labels, err := decodeLabels(data)
	if err != nil {
		c.corrupt(BucketLabels, key.String(), err)
		return nil, false
	}
	return labels, true
}

// PutLabels stores selected labels as a two column table with a
// ",Confidence" header row.
func (c *Cache) PutLabels(ctx context.Context, key Key, labels classify.SelectedLabels) error {
	data, err := encodeLabels(labels)
	if err != nil {
		return err
	}
	return c.store.Put(ctx, BucketLabels, key.String(), data)
}

// Result returns the extraction result cached for key and kind under the
// given extraction windows.
func (c *Cache) Result(ctx context.Context, key Key, kind constants.DocumentKind, w fields.Windows) (fields.Result, bool) {
	name := resultKey(key, kind, w)
	data, ok := c.get(ctx, BucketResults, name)
	if !ok {
		return fields.Result{}, false
	}
	if err := validateJSON(c.schema, data); err != nil {
		c.corrupt(BucketResults, name, err)
		return fields.Result{}, false
	}
	var res fields.Result
	if err := json.Unmarshal(data, &res); err != nil {
		c.corrupt(BucketResults, name, err)
		return fields.Result{}, false
	}
	if res.Kind != kind {
		c.corrupt(BucketResults, name, fmt.Errorf("kind %s, want %s", res.Kind, kind))
		return fields.Result{}, false
	}
	return res, true
}

// PutResult stores an extraction result computed under windows w.
func (c *Cache) PutResult(ctx context.Context, key Key, res fields.Result, w fields.Windows) error {
	data, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	return c.store.Put(ctx, BucketResults, resultKey(key, res.Kind, w), data)
}

func resultKey(key Key, kind constants.DocumentKind, w fields.Windows) string {
	return key.String() + "_" + strings.ToLower(string(kind)) + "_" + w.Fingerprint()
}

func encodeLabels(labels classify.SelectedLabels) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"", "Confidence"}); err != nil {
		return nil, err
	}
	for _, l := range labels {
		if err := w.Write([]string{l.Name, strconv.FormatFloat(l.Confidence, 'g', -1, 64)}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("encode labels: %w", err)
	}
	return buf.Bytes(), nil
}

func decodeLabels(data []byte) (classify.SelectedLabels, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = 2
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse labels: %w", err)
	}
	if len(records) == 0 {
		return nil, errors.New("missing header row")
	}

	labels := make(classify.SelectedLabels, 0, len(records)-1)
	for _, rec := range records[1:] {
		conf, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			return nil, fmt.Errorf("parse confidence of %q: %w", rec[0], err)
		}
		labels = append(labels, classify.LabelScore{Name: rec[0], Confidence: conf})
	}
	return labels, nil
}
