// Package dataset defines the data-source protocol the collection consumes:
// three record sets (codes, ranges, categories) produced by a Source. The
// collection is agnostic to where the records come from; this package ships
// an embedded default dataset, a JSON file source, and a relational source.
package dataset

import (
	"context"
	"fmt"
)

// CodeRecord is one pre-parsed merchant category code entry as supplied by a
// data source.
type CodeRecord struct {
	MCC                   string `json:"mcc"`
	ISODescription        string `json:"iso_description,omitempty"`
	USDADescription       string `json:"usda_description,omitempty"`
	StripeDescription     string `json:"stripe_description,omitempty"`
	StripeCode            string `json:"stripe_code,omitempty"`
	VisaDescription       string `json:"visa_description,omitempty"`
	VisaClearingName      string `json:"visa_clearing_name,omitempty"`
	MastercardDescription string `json:"mastercard_description,omitempty"`
	AmexDescription       string `json:"amex_description,omitempty"`
	AlipayDescription     string `json:"alipay_description,omitempty"`
	IRSDescription        string `json:"irs_description,omitempty"`
	IRSReportable         *bool  `json:"irs_reportable,omitempty"`
}

// RangeRecord is one ISO industry-segment range entry.
type RangeRecord struct {
	Start       string `json:"start"`
	End         string `json:"end"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Reserved    bool   `json:"reserved,omitempty"`
}

// CategoryRecord is one risk-category entry, keyed by category id in
// Records.Categories. Codes holds single codes and "start-end" range strings.
type CategoryRecord struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Codes       []string `json:"codes"`
}

// Records bundles the three record sets a source yields per load.
type Records struct {
	Codes      []CodeRecord              `json:"codes"`
	Ranges     []RangeRecord             `json:"ranges"`
	Categories map[string]CategoryRecord `json:"categories"`
}

// Source supplies pre-parsed dataset records. Load is called on first access
// and on every reload; implementations must return a fresh, complete record
// set each time.
type Source interface {
	Name() string
	Load(ctx context.Context) (*Records, error)
}

// LoadError reports that a source failed to produce valid records. It
// carries the source identifier and the underlying cause.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading MCC dataset from %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// NewLoadError wraps a failure with its source identifier.
func NewLoadError(source string, err error) *LoadError {
	return &LoadError{Source: source, Err: err}
}
