package models

import "strings"

// Code represents one merchant category code together with the descriptions
// and flags published for it by each source. All fields are normalized at
// construction time and never mutated afterwards: description fields are
// trimmed, with the empty string meaning "absent", and IRSReportable is nil
// when the IRS dataset carries no flag for the code.
type Code struct {
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

// NewCode builds a Code from raw field values. The code value is normalized
// to the canonical 4-digit form; construction fails with ErrInvalidFormat
// when it cannot be. All description fields are trimmed.
func NewCode(fields Code) (*Code, error) {
	mcc, err := NormalizeCode(fields.MCC)
	if err != nil {
		return nil, err
	}

	code := fields
	code.MCC = mcc
	code.ISODescription = strings.TrimSpace(fields.ISODescription)
	code.USDADescription = strings.TrimSpace(fields.USDADescription)
	code.StripeDescription = strings.TrimSpace(fields.StripeDescription)
	code.StripeCode = strings.TrimSpace(fields.StripeCode)
	code.VisaDescription = strings.TrimSpace(fields.VisaDescription)
	code.VisaClearingName = strings.TrimSpace(fields.VisaClearingName)
	code.MastercardDescription = strings.TrimSpace(fields.MastercardDescription)
	code.AmexDescription = strings.TrimSpace(fields.AmexDescription)
	code.AlipayDescription = strings.TrimSpace(fields.AlipayDescription)
	code.IRSDescription = strings.TrimSpace(fields.IRSDescription)

	return &code, nil
}

// descriptionFor returns the description field belonging to one source.
// Note that the stripe source resolves to the Stripe description, not the
// Stripe code identifier.
func (c *Code) descriptionFor(source DescriptionSource) string {
	switch source {
	case SourceISO:
		return c.ISODescription
	case SourceUSDA:
		return c.USDADescription
	case SourceStripe:
		return c.StripeDescription
	case SourceVisa:
		return c.VisaDescription
	case SourceMastercard:
		return c.MastercardDescription
	case SourceAmex:
		return c.AmexDescription
	case SourceAlipay:
		return c.AlipayDescription
	case SourceIRS:
		return c.IRSDescription
	default:
		return ""
	}
}

// Description resolves a human-readable description, preferring the given
// source and falling back through every remaining source in the fixed
// declared order. Returns "" when no source has a description for this code.
// An empty preferred source starts at the head of the fallback order.
func (c *Code) Description(preferred DescriptionSource) string {
	if preferred != "" {
		if d := c.descriptionFor(preferred); d != "" {
			return d
		}
	}

	for _, source := range DescriptionSources() {
		if source == preferred {
			continue
		}
		if d := c.descriptionFor(source); d != "" {
			return d
		}
	}

	return ""
}

// Reportable reports whether the code is subject to IRS transaction
// reporting. An absent flag counts as not reportable.
func (c *Code) Reportable() bool {
	return c.IRSReportable != nil && *c.IRSReportable
}

// Is reports whether this code matches a raw code value. The value may be a
// string, an integer kind, or another Code; values that cannot be normalized
// never match.
func (c *Code) Is(value any) bool {
	normalized, err := NormalizeCode(value)
	if err != nil {
		return false
	}
	return c.MCC == normalized
}

// Equal reports whether two codes share the same identity. Identity is the
// normalized code value only.
func (c *Code) Equal(other *Code) bool {
	return other != nil && c.MCC == other.MCC
}

func (c *Code) String() string {
	return c.MCC
}

// SearchText builds the lower-cased haystack used by substring search: the
// code value followed by every present description and identifier field,
// joined with single spaces.
func (c *Code) SearchText() string {
	parts := []string{c.MCC}
	for _, field := range []string{
		c.ISODescription,
		c.USDADescription,
		c.StripeDescription,
		c.StripeCode,
		c.VisaDescription,
		c.VisaClearingName,
		c.MastercardDescription,
		c.AmexDescription,
		c.AlipayDescription,
		c.IRSDescription,
	} {
		if field != "" {
			parts = append(parts, field)
		}
	}
	return strings.ToLower(strings.Join(parts, " "))
}

// Record returns the full field dump, with nil for absent fields.
func (c *Code) Record() map[string]any {
	record := map[string]any{
		"mcc":                    c.MCC,
		"iso_description":        nilIfBlank(c.ISODescription),
		"usda_description":       nilIfBlank(c.USDADescription),
		"stripe_description":     nilIfBlank(c.StripeDescription),
		"stripe_code":            nilIfBlank(c.StripeCode),
		"visa_description":       nilIfBlank(c.VisaDescription),
		"visa_clearing_name":     nilIfBlank(c.VisaClearingName),
		"mastercard_description": nilIfBlank(c.MastercardDescription),
		"amex_description":       nilIfBlank(c.AmexDescription),
		"alipay_description":     nilIfBlank(c.AlipayDescription),
		"irs_description":        nilIfBlank(c.IRSDescription),
	}
	if c.IRSReportable != nil {
		record["irs_reportable"] = *c.IRSReportable
	} else {
		record["irs_reportable"] = nil
	}
	return record
}

func nilIfBlank(s string) any {
	if s == "" {
		return nil
	}
	return s
}
