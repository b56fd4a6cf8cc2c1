package services

import (
	"context"

	"mcc-reference/internal/models"
)

// CollectionServiceInterface is the query surface over the loaded MCC
// dataset. All query operations are read-only views over the current
// snapshot; they trigger a load on first access (or on every access when
// caching is disabled) and are safe for concurrent use.
type CollectionServiceInterface interface {
	// All returns every loaded code in the collection's natural order.
	All(ctx context.Context) ([]*models.Code, error)
	// Find resolves a code value to its Code. Returns (nil, nil) both for
	// values that cannot be normalized and for well-formed-but-missing
	// codes; a miss is a normal query outcome.
	Find(ctx context.Context, value any) (*models.Code, error)
	// MustFind is Find, except a miss fails with ErrCodeNotFound.
	MustFind(ctx context.Context, value any) (*models.Code, error)
	// Where applies a conjunctive condition set over the filterable code
	// attributes. An empty set returns every code; an unknown key fails
	// with models.ErrUnknownFilterField.
	Where(ctx context.Context, conditions map[string]any) ([]*models.Code, error)
	// InRange returns all codes falling in the named range
	// (case-insensitive exact name match), or an empty slice when no range
	// carries the name.
	InRange(ctx context.Context, name string) ([]*models.Code, error)
	// Search performs a case-insensitive substring search over each code's
	// searchable text. A blank query returns the entire code list.
	Search(ctx context.Context, query string) ([]*models.Code, error)
	// InCategory returns all codes belonging to the identified category, or
	// an empty slice when no such category is loaded.
	InCategory(ctx context.Context, id string) ([]*models.Code, error)
	// Valid reports whether a value resolves to a known code.
	Valid(ctx context.Context, value any) (bool, error)
	Count(ctx context.Context) (int, error)
	// Reload atomically replaces the dataset snapshot from the source.
	Reload(ctx context.Context) error

	Ranges(ctx context.Context) ([]*models.Range, error)
	Categories(ctx context.Context) ([]*models.Category, error)
	// Category resolves a category id; a miss fails with
	// ErrCategoryNotFound.
	Category(ctx context.Context, id string) (*models.Category, error)

	// CodeRange returns the range containing a code value, or nil when no
	// loaded range contains it.
	CodeRange(ctx context.Context, value any) (*models.Range, error)
	// CodeCategories returns the ids of every category containing the value.
	CodeCategories(ctx context.Context, value any) ([]string, error)
	// CodeInCategory reports membership of a code value in one category,
	// referenced either as a *models.Category or an id string. An unknown
	// id is simply "not a member".
	CodeInCategory(ctx context.Context, value any, category any) (bool, error)
	// PublicView is the full record of a code plus its resolved
	// description, category ids, and containing range name.
	PublicView(ctx context.Context, code *models.Code) (map[string]any, error)
}

// MetricsRecorderInterface abstracts metrics collection for the dataset
// engine so tests can run without a Prometheus registry.
type MetricsRecorderInterface interface {
	RecordLookup(operation string, hit bool)
	RecordSearch(results int)
	RecordReload(status string, durationMs int64)
	SetDatasetSize(codes, ranges, categories int)
	RecordValidation(result string)
}
