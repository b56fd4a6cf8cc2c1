package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Range represents a contiguous closed interval of the 4-digit code space,
// as defined by ISO 18245 industry segments. Codes are fixed-width
// zero-padded, so lexicographic and numeric comparison agree.
type Range struct {
	Start       string `json:"start"`
	End         string `json:"end"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Reserved    bool   `json:"reserved"`
}

// NewRange builds a Range from raw boundary values. Boundaries are
// normalized to 4-digit form; construction fails with ErrInvalidFormat when
// a boundary cannot be normalized and with ErrInvalidRange when the
// normalized start exceeds the end.
func NewRange(start, end any, name, description string, reserved bool) (*Range, error) {
	startCode, err := NormalizeCode(start)
	if err != nil {
		return nil, fmt.Errorf("range start: %w", err)
	}

	endCode, err := NormalizeCode(end)
	if err != nil {
		return nil, fmt.Errorf("range end: %w", err)
	}

	if startCode > endCode {
		return nil, fmt.Errorf("%w: %s > %s", ErrInvalidRange, startCode, endCode)
	}

	return &Range{
		Start:       startCode,
		End:         endCode,
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
		Reserved:    reserved,
	}, nil
}

// Includes reports whether a code value falls within the range. The value
// may be a string, an integer kind, or a Code; values that cannot be
// normalized are never included.
func (r *Range) Includes(value any) bool {
	code, err := NormalizeCode(value)
	if err != nil {
		return false
	}
	return r.Start <= code && code <= r.End
}

// Size returns the inclusive count of codes covered by the range.
func (r *Range) Size() int {
	start, _ := strconv.Atoi(r.Start)
	end, _ := strconv.Atoi(r.End)
	return end - start + 1
}

// Codes materializes every code in the range, from start to end inclusive.
// Each call derives a fresh slice.
func (r *Range) Codes() []string {
	start, _ := strconv.Atoi(r.Start)
	end, _ := strconv.Atoi(r.End)

	codes := make([]string, 0, end-start+1)
	for i := start; i <= end; i++ {
		codes = append(codes, fmt.Sprintf("%04d", i))
	}
	return codes
}

// Equal reports whether two ranges cover the same interval. Name,
// description, and the reserved flag are not part of range identity.
func (r *Range) Equal(other *Range) bool {
	return other != nil && r.Start == other.Start && r.End == other.End
}

func (r *Range) String() string {
	return r.Start + "-" + r.End
}
