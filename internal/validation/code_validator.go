package validation

import (
	"context"
	"fmt"
	"strings"

	"mcc-reference/internal/services"
)

// User-facing validation messages, phrased for embedding after a field name
// ("mcc must be a valid 4-digit MCC code").
const (
	MessageInvalidFormat  = "must be a valid 4-digit MCC code"
	MessageNotFound       = "is not a known MCC code"
	MessageDeniedCategory = "is in a denied category"
)

// Options parameterizes a CodeValidator.
type Options struct {
	// Strict additionally requires the code to exist in the loaded dataset
	// and pass the category policy; without it only the format is checked.
	Strict bool
	// DenyCategories rejects codes belonging to any listed category.
	// Deny takes priority over allow.
	DenyCategories []string
	// AllowCategories, when non-empty, rejects codes belonging to none of
	// the listed categories.
	AllowCategories []string
}

// CodeValidator is a stateless rule evaluator over the collection's query
// operations. Validation outcomes are returned as messages, never as
// errors; the error return is reserved for infrastructure failure (the
// dataset could not be loaded).
type CodeValidator struct {
	collection services.CollectionServiceInterface
	metrics    services.MetricsRecorderInterface
	opts       Options
}

// NewCodeValidator creates a rule evaluator with the given policy. A nil
// metrics recorder disables metrics.
func NewCodeValidator(collection services.CollectionServiceInterface, metrics services.MetricsRecorderInterface, opts Options) *CodeValidator {
	return &CodeValidator{
		collection: collection,
		metrics:    metrics,
		opts:       opts,
	}
}

// Validate evaluates the rule chain against a candidate value and returns
// the error messages, empty when valid. Rules short-circuit: the first
// failing rule contributes exactly one message and later rules are not
// evaluated. A nil value is always valid; format and existence checks are
// skipped entirely.
func (v *CodeValidator) Validate(ctx context.Context, value any) ([]string, error) {
	messages, err := v.validate(ctx, value)
	if err != nil {
		return nil, err
	}

	result := "valid"
	if len(messages) > 0 {
		result = "invalid"
	}
	v.recordValidation(result)

	return messages, nil
}

func (v *CodeValidator) validate(ctx context.Context, value any) ([]string, error) {
	if value == nil {
		return []string{}, nil
	}

	candidate := strings.TrimSpace(fmt.Sprintf("%v", value))
	if !candidatePattern.MatchString(candidate) {
		return []string{MessageInvalidFormat}, nil
	}

	if !v.opts.Strict {
		return []string{}, nil
	}

	code, err := v.collection.Find(ctx, candidate)
	if err != nil {
		return nil, err
	}
	if code == nil {
		return []string{MessageNotFound}, nil
	}

	for _, id := range v.opts.DenyCategories {
		denied, err := v.collection.CodeInCategory(ctx, code.MCC, id)
		if err != nil {
			return nil, err
		}
		if denied {
			return []string{MessageDeniedCategory}, nil
		}
	}

	if len(v.opts.AllowCategories) > 0 {
		allowed := false
		for _, id := range v.opts.AllowCategories {
			ok, err := v.collection.CodeInCategory(ctx, code.MCC, id)
			if err != nil {
				return nil, err
			}
			if ok {
				allowed = true
				break
			}
		}
		if !allowed {
			return []string{MessageDeniedCategory}, nil
		}
	}

	return []string{}, nil
}

// Valid reports whether Validate returns no messages.
func (v *CodeValidator) Valid(ctx context.Context, value any) (bool, error) {
	messages, err := v.Validate(ctx, value)
	if err != nil {
		return false, err
	}
	return len(messages) == 0, nil
}

func (v *CodeValidator) recordValidation(result string) {
	if v.metrics != nil {
		v.metrics.RecordValidation(result)
	}
}
