package constants

import "strings"

// DocumentKind selects which analysis runs on an input.
type DocumentKind string

const (
	KindClaim   DocumentKind = "CLAIM"   // claim letter: policy, date, tax code, VAT, email, category
	KindInvoice DocumentKind = "INVOICE" // invoice or estimate: tax code, VAT, amount
	KindImages  DocumentKind = "IMAGES"  // photos of the event: content labels
)

// ParseKind accepts the kind in any case.
func ParseKind(s string) (DocumentKind, bool) {
	switch DocumentKind(strings.ToUpper(strings.TrimSpace(s))) {
	case KindClaim:
		return KindClaim, true
	case KindInvoice:
		return KindInvoice, true
	case KindImages:
		return KindImages, true
	}
	return "", false
}
