package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrInvalidFormat = errors.New("invalid MCC format")
	ErrInvalidRange  = errors.New("range start exceeds range end")
)

// CodeLength is the canonical width of a merchant category code.
const CodeLength = 4

// NormalizeCode converts any accepted code representation into the canonical
// 4-character zero-padded numeric string. Accepted inputs are strings, integer
// kinds, and Code values; everything else fails with ErrInvalidFormat.
//
// Strings are trimmed first. Fewer than 4 digits are left-padded with zeros
// (the empty string normalizes to "0000"); more than 4 digits or any non-digit
// character is rejected.
func NormalizeCode(value any) (string, error) {
	switch v := value.(type) {
	case string:
		return normalizeDigits(v)
	case int:
		return normalizeInt(int64(v))
	case int32:
		return normalizeInt(int64(v))
	case int64:
		return normalizeInt(v)
	case uint:
		return normalizeInt(int64(v))
	case float64:
		// JSON decodes bare numbers as float64
		if v != float64(int64(v)) {
			return "", fmt.Errorf("%w: %v is not an integer", ErrInvalidFormat, v)
		}
		return normalizeInt(int64(v))
	case Code:
		return v.MCC, nil
	case *Code:
		if v == nil {
			return "", fmt.Errorf("%w: nil code", ErrInvalidFormat)
		}
		return v.MCC, nil
	case nil:
		return "", fmt.Errorf("%w: nil value", ErrInvalidFormat)
	default:
		return "", fmt.Errorf("%w: unsupported type %T", ErrInvalidFormat, value)
	}
}

func normalizeInt(v int64) (string, error) {
	if v < 0 {
		return "", fmt.Errorf("%w: negative value %d", ErrInvalidFormat, v)
	}
	return normalizeDigits(strconv.FormatInt(v, 10))
}

func normalizeDigits(s string) (string, error) {
	s = strings.TrimSpace(s)
	if len(s) > CodeLength {
		return "", fmt.Errorf("%w: %q has more than %d digits", ErrInvalidFormat, s, CodeLength)
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return "", fmt.Errorf("%w: %q contains non-digit characters", ErrInvalidFormat, s)
		}
	}
	for len(s) < CodeLength {
		s = "0" + s
	}
	return s, nil
}
