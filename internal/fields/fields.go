// Package fields turns a document into the business fields of a claim or an
// invoice. Every extractor returns an empty value when nothing is found.
package fields

import (
	"fmt"
	"time"

	"github.com/joseph-ayodele/claims-triage/constants"
	"github.com/joseph-ayodele/claims-triage/internal/classify"
	"github.com/joseph-ayodele/claims-triage/internal/document"
)

// Windows are the proximity context sizes, in characters, used by the
// keyword-scored extractors.
type Windows struct {
	VAT    int `json:"vat"`
	Policy int `json:"policy"`
	Date   int `json:"date"`
	Price  int `json:"price"`
}

// Fingerprint identifies a window configuration inside cache keys, so
// results computed under other windows are not reused.
func (w Windows) Fingerprint() string {
	return fmt.Sprintf("w%d-%d-%d-%d", w.VAT, w.Policy, w.Date, w.Price)
}

// DefaultWindows returns the stock window sizes.
func DefaultWindows() Windows {
	return Windows{VAT: 10, Policy: 15, Date: 20, Price: 30}
}

// Options tune an extraction run.
type Options struct {
	Windows Windows
	// Now anchors the accepted year range of dates. Defaults to time.Now.
	Now func() time.Time
}

// DefaultOptions returns stock windows and the wall clock.
func DefaultOptions() Options {
	return Options{Windows: DefaultWindows(), Now: time.Now}
}

func (o Options) now() time.Time {
	if o.Now == nil {
		return time.Now()
	}
	return o.Now()
}

// Field is a single extracted value. An empty Value means not found.
type Field struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Result is the ordered set of fields extracted from one document.
type Result struct {
	Kind   constants.DocumentKind `json:"kind"`
	Fields []Field                `json:"fields"`
}

// Get returns the value of the named field.
func (r Result) Get(name string) (string, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

// Map returns the fields keyed by name.
func (r Result) Map() map[string]string {
	m := make(map[string]string, len(r.Fields))
	for _, f := range r.Fields {
		m[f.Name] = f.Value
	}
	return m
}

// Empty returns a result of the given kind with every field unset.
func Empty(kind constants.DocumentKind) Result {
	var names []string
	switch kind {
	case constants.KindClaim:
		names = []string{
			constants.FieldPolicyNumber,
			constants.FieldEventDate,
			constants.FieldTaxCode,
			constants.FieldVATNumber,
			constants.FieldEmail,
			constants.FieldCategory,
		}
	case constants.KindInvoice:
		names = []string{
			constants.FieldTaxCode,
			constants.FieldVATNumber,
			constants.FieldAmount,
		}
	}
	r := Result{Kind: kind, Fields: make([]Field, 0, len(names))}
	for _, n := range names {
		r.Fields = append(r.Fields, Field{Name: n})
	}
	return r
}

// Claim extracts policy number, event date, tax code, VAT number, email and
// event category. The date field is named "Data" instead of "Data evento"
// when no event keyword was found near it.
func Claim(doc document.Document, opts Options) Result {
	dateName, dateValue := constants.FieldEventDate, ""
	if d, ok := EventDate(doc, opts.Windows.Date, opts.now()); ok {
		dateName, dateValue = d.Label, d.Value
	}
	return Result{
		Kind: constants.KindClaim,
		Fields: []Field{
			{Name: constants.FieldPolicyNumber, Value: PolicyNumber(doc, opts.Windows.Policy)},
			{Name: dateName, Value: dateValue},
			{Name: constants.FieldTaxCode, Value: TaxCode(doc)},
			{Name: constants.FieldVATNumber, Value: VATNumber(doc, opts.Windows.VAT)},
			{Name: constants.FieldEmail, Value: Email(doc)},
			{Name: constants.FieldCategory, Value: Category(doc)},
		},
	}
}

// Category names the event the claim describes.
func Category(doc document.Document) string {
	return string(classify.Categorize(doc))
}

// Invoice extracts tax code, VAT number and the authoritative amount.
func Invoice(doc document.Document, opts Options) Result {
	amount := ""
	if a, ok := Amount(doc, opts.Windows.Price); ok {
		amount = FormatAmount(a.Value)
	}
	return Result{
		Kind: constants.KindInvoice,
		Fields: []Field{
			{Name: constants.FieldTaxCode, Value: TaxCode(doc)},
			{Name: constants.FieldVATNumber, Value: VATNumber(doc, opts.Windows.VAT)},
			{Name: constants.FieldAmount, Value: amount},
		},
	}
}

// Extract runs the extractor set of the given kind.
func Extract(kind constants.DocumentKind, doc document.Document, opts Options) (Result, bool) {
	switch kind {
	case constants.KindClaim:
		return Claim(doc, opts), true
	case constants.KindInvoice:
		return Invoice(doc, opts), true
	}
	return Result{}, false
}
