package models

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrUnknownFilterField is returned when a filter condition names an
// attribute that Code does not expose. The reference behavior silently
// compared against null for unknown attributes; rejecting them surfaces
// typos at the call site instead.
var ErrUnknownFilterField = errors.New("unknown filter field")

// codeFieldAccessors is the explicit table of filterable Code attributes.
// Filter keys match the serialized field names.
var codeFieldAccessors = map[string]func(*Code) any{
	"mcc":                    func(c *Code) any { return c.MCC },
	"iso_description":        func(c *Code) any { return c.ISODescription },
	"usda_description":       func(c *Code) any { return c.USDADescription },
	"stripe_description":     func(c *Code) any { return c.StripeDescription },
	"stripe_code":            func(c *Code) any { return c.StripeCode },
	"visa_description":       func(c *Code) any { return c.VisaDescription },
	"visa_clearing_name":     func(c *Code) any { return c.VisaClearingName },
	"mastercard_description": func(c *Code) any { return c.MastercardDescription },
	"amex_description":       func(c *Code) any { return c.AmexDescription },
	"alipay_description":     func(c *Code) any { return c.AlipayDescription },
	"irs_description":        func(c *Code) any { return c.IRSDescription },
	"irs_reportable":         func(c *Code) any { return c.Reportable() },
}

// FilterFields returns the names of all filterable Code attributes.
func FilterFields() []string {
	fields := make([]string, 0, len(codeFieldAccessors))
	for name := range codeFieldAccessors {
		fields = append(fields, name)
	}
	return fields
}

// MatchesConditions evaluates a conjunctive condition set against a code.
// Each condition value is a literal (exact match), a list (membership), or a
// *regexp.Regexp (matched against the stringified attribute). An empty
// condition set matches every code. Unknown keys fail with
// ErrUnknownFilterField.
func (c *Code) MatchesConditions(conditions map[string]any) (bool, error) {
	for field, expected := range conditions {
		accessor, ok := codeFieldAccessors[field]
		if !ok {
			return false, fmt.Errorf("%w: %q", ErrUnknownFilterField, field)
		}
		if !matchCondition(accessor(c), expected) {
			return false, nil
		}
	}
	return true, nil
}

func matchCondition(attr, expected any) bool {
	switch want := expected.(type) {
	case *regexp.Regexp:
		return want.MatchString(stringify(attr))
	case []string:
		for _, candidate := range want {
			if matchCondition(attr, candidate) {
				return true
			}
		}
		return false
	case []any:
		for _, candidate := range want {
			if matchCondition(attr, candidate) {
				return true
			}
		}
		return false
	case bool:
		b, ok := attr.(bool)
		return ok && b == want
	case string:
		return stringify(attr) == want
	case int:
		return stringify(attr) == fmt.Sprintf("%d", want)
	default:
		return stringify(attr) == stringify(expected)
	}
}

func stringify(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case bool:
		if s {
			return "true"
		}
		return "false"
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}
