package models

import (
	"fmt"
	"strings"
)

// Category represents a named, arbitrary set of merchant category codes used
// for risk and business-policy classification. Entries are either single
// 4-digit codes or "start-end" range strings; the set need not be
// contiguous and is independent of the ISO industry ranges.
type Category struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Entries     []string `json:"codes"`
}

// NewCategory builds a Category. The id is normalized to a lowercase
// identifier; single-code entries are zero-padded to 4 digits and range
// entries keep their "start-end" textual form. A nil entry list normalizes
// to an empty set. Construction fails with ErrInvalidFormat when an entry is
// neither a normalizable code nor a range string.
func NewCategory(id, name, description string, entries []string) (*Category, error) {
	normalizedID := strings.ToLower(strings.TrimSpace(id))
	if normalizedID == "" {
		return nil, fmt.Errorf("%w: blank category id", ErrInvalidFormat)
	}

	normalized := make([]string, 0, len(entries))
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if strings.Contains(entry, "-") {
			if _, _, err := splitRangeEntry(entry); err != nil {
				return nil, fmt.Errorf("category %s: %w", normalizedID, err)
			}
			normalized = append(normalized, entry)
			continue
		}
		code, err := NormalizeCode(entry)
		if err != nil {
			return nil, fmt.Errorf("category %s: %w", normalizedID, err)
		}
		normalized = append(normalized, code)
	}

	return &Category{
		ID:          normalizedID,
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
		Entries:     normalized,
	}, nil
}

// Includes reports whether a code value belongs to the category. The value
// is normalized first; it matches when it equals any single-code entry or
// falls within any "start-end" entry, each endpoint independently
// zero-padded. Entries are checked in stored order and the first match wins.
func (cat *Category) Includes(value any) bool {
	code, err := NormalizeCode(value)
	if err != nil {
		return false
	}

	for _, entry := range cat.Entries {
		if strings.Contains(entry, "-") {
			start, end, err := splitRangeEntry(entry)
			if err != nil {
				continue
			}
			if start <= code && code <= end {
				return true
			}
			continue
		}
		if entry == code {
			return true
		}
	}
	return false
}

// Equal reports whether two categories share the same identity. Identity is
// the normalized id only.
func (cat *Category) Equal(other *Category) bool {
	return other != nil && cat.ID == other.ID
}

func (cat *Category) String() string {
	return cat.ID
}

func splitRangeEntry(entry string) (string, string, error) {
	parts := strings.SplitN(entry, "-", 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("%w: malformed range entry %q", ErrInvalidFormat, entry)
	}

	start, err := NormalizeCode(parts[0])
	if err != nil {
		return "", "", fmt.Errorf("range entry %q: %w", entry, err)
	}
	end, err := NormalizeCode(parts[1])
	if err != nil {
		return "", "", fmt.Errorf("range entry %q: %w", entry, err)
	}
	return start, end, nil
}
