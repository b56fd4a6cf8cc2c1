package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"mcc-reference/internal/config"
	"mcc-reference/internal/dataset"
	"mcc-reference/internal/models"
)

var (
	ErrCodeNotFound     = errors.New("MCC code not found")
	ErrCategoryNotFound = errors.New("MCC category not found")
)

// snapshot is one internally consistent view of the dataset. Snapshots are
// immutable once installed; the index is always exactly the code list keyed
// by normalized value.
type snapshot struct {
	codes      []*models.Code
	ranges     []*models.Range
	categories []*models.Category
	index      map[string]*models.Code
}

// collectionService owns the dataset and implements every query operation.
// Loads and reloads run under a mutex with the loaded condition re-tested
// after acquiring it; readers dereference a single snapshot pointer and can
// never observe a torn mix of old and new lists.
type collectionService struct {
	source  dataset.Source
	cfg     config.DatasetConfig
	metrics MetricsRecorderInterface
	logger  *slog.Logger

	mu   sync.Mutex
	snap atomic.Pointer[snapshot]
}

// NewCollectionService creates the dataset query engine. The configuration
// is taken by value: the collection consumes resolved settings, never the
// mechanism that produced them. A nil metrics recorder disables metrics.
func NewCollectionService(source dataset.Source, cfg config.DatasetConfig, metrics MetricsRecorderInterface, logger *slog.Logger) CollectionServiceInterface {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &collectionService{
		source:  source,
		cfg:     cfg,
		metrics: metrics,
		logger:  logger,
	}
}

// ensureLoaded returns the current snapshot, loading it first when needed.
// With caching disabled every call re-reads the source, trading latency for
// always-fresh reads.
func (s *collectionService) ensureLoaded(ctx context.Context) (*snapshot, error) {
	if s.cfg.CacheEnabled {
		if snap := s.snap.Load(); snap != nil {
			return snap, nil
		}
	}
	return s.load(ctx, s.cfg.CacheEnabled)
}

// load performs the mutually exclusive load/reload body. When reuseCached is
// set, the loaded condition is re-tested after acquiring the lock so that
// threads queued behind a first load do not repeat it.
func (s *collectionService) load(ctx context.Context, reuseCached bool) (*snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if reuseCached {
		if snap := s.snap.Load(); snap != nil {
			return snap, nil
		}
	}

	started := time.Now()

	records, err := s.source.Load(ctx)
	if err != nil {
		s.metrics.RecordReload("error", time.Since(started).Milliseconds())
		return nil, err
	}

	snap, err := buildSnapshot(s.source.Name(), records)
	if err != nil {
		s.metrics.RecordReload("error", time.Since(started).Milliseconds())
		return nil, err
	}

	s.snap.Store(snap)

	s.metrics.RecordReload("success", time.Since(started).Milliseconds())
	s.metrics.SetDatasetSize(len(snap.codes), len(snap.ranges), len(snap.categories))
	s.logger.InfoContext(ctx, "MCC dataset loaded",
		slog.String("source", s.source.Name()),
		slog.Int("codes", len(snap.codes)),
		slog.Int("ranges", len(snap.ranges)),
		slog.Int("categories", len(snap.categories)),
		slog.Int64("duration_ms", time.Since(started).Milliseconds()),
	)

	return snap, nil
}

// buildSnapshot converts raw records into entities, all-or-nothing. Any
// construction failure discards the partial result and surfaces as a load
// error carrying the source identifier.
func buildSnapshot(sourceName string, records *dataset.Records) (*snapshot, error) {
	snap := &snapshot{
		codes:      make([]*models.Code, 0, len(records.Codes)),
		ranges:     make([]*models.Range, 0, len(records.Ranges)),
		categories: make([]*models.Category, 0, len(records.Categories)),
		index:      make(map[string]*models.Code, len(records.Codes)),
	}

	for _, rec := range records.Codes {
		code, err := models.NewCode(models.Code(rec))
		if err != nil {
			return nil, dataset.NewLoadError(sourceName, fmt.Errorf("code record %q: %w", rec.MCC, err))
		}
		snap.codes = append(snap.codes, code)
		snap.index[code.MCC] = code
	}

	for _, rec := range records.Ranges {
		r, err := models.NewRange(rec.Start, rec.End, rec.Name, rec.Description, rec.Reserved)
		if err != nil {
			return nil, dataset.NewLoadError(sourceName, fmt.Errorf("range record %q: %w", rec.Name, err))
		}
		snap.ranges = append(snap.ranges, r)
	}

	for id, rec := range records.Categories {
		category, err := models.NewCategory(id, rec.Name, rec.Description, rec.Codes)
		if err != nil {
			return nil, dataset.NewLoadError(sourceName, err)
		}
		snap.categories = append(snap.categories, category)
	}

	// Category records arrive as a map; keep the listing deterministic
	sort.Slice(snap.categories, func(i, j int) bool {
		return snap.categories[i].ID < snap.categories[j].ID
	})

	return snap, nil
}

func (s *collectionService) All(ctx context.Context) ([]*models.Code, error) {
	snap, err := s.ensureLoaded(ctx)
	if err != nil {
		return nil, err
	}
	return snap.codes, nil
}

func (s *collectionService) Find(ctx context.Context, value any) (*models.Code, error) {
	snap, err := s.ensureLoaded(ctx)
	if err != nil {
		return nil, err
	}

	normalized, err := models.NormalizeCode(value)
	if err != nil {
		// Malformed input is "not found", never an error
		s.metrics.RecordLookup("find", false)
		return nil, nil
	}

	code, ok := snap.index[normalized]
	s.metrics.RecordLookup("find", ok)
	if !ok {
		return nil, nil
	}
	return code, nil
}

func (s *collectionService) MustFind(ctx context.Context, value any) (*models.Code, error) {
	code, err := s.Find(ctx, value)
	if err != nil {
		return nil, err
	}
	if code == nil {
		return nil, fmt.Errorf("%w: %v", ErrCodeNotFound, value)
	}
	return code, nil
}

func (s *collectionService) Where(ctx context.Context, conditions map[string]any) ([]*models.Code, error) {
	snap, err := s.ensureLoaded(ctx)
	if err != nil {
		return nil, err
	}

	if len(conditions) == 0 {
		return snap.codes, nil
	}

	matched := make([]*models.Code, 0)
	for _, code := range snap.codes {
		ok, err := code.MatchesConditions(conditions)
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, code)
		}
	}
	return matched, nil
}

func (s *collectionService) InRange(ctx context.Context, name string) ([]*models.Code, error) {
	snap, err := s.ensureLoaded(ctx)
	if err != nil {
		return nil, err
	}

	var target *models.Range
	for _, r := range snap.ranges {
		if strings.EqualFold(r.Name, name) {
			target = r
			break
		}
	}
	if target == nil {
		s.metrics.RecordLookup("in_range", false)
		return []*models.Code{}, nil
	}

	matched := make([]*models.Code, 0)
	for _, code := range snap.codes {
		if target.Includes(code.MCC) {
			matched = append(matched, code)
		}
	}
	s.metrics.RecordLookup("in_range", true)
	return matched, nil
}

func (s *collectionService) Search(ctx context.Context, query string) ([]*models.Code, error) {
	snap, err := s.ensureLoaded(ctx)
	if err != nil {
		return nil, err
	}

	// A blank query means "everything", mirroring Where with no conditions
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		s.metrics.RecordSearch(len(snap.codes))
		return snap.codes, nil
	}

	matched := make([]*models.Code, 0)
	for _, code := range snap.codes {
		if strings.Contains(code.SearchText(), needle) {
			matched = append(matched, code)
		}
	}
	s.metrics.RecordSearch(len(matched))
	return matched, nil
}

func (s *collectionService) InCategory(ctx context.Context, id string) ([]*models.Code, error) {
	snap, err := s.ensureLoaded(ctx)
	if err != nil {
		return nil, err
	}

	category := snap.findCategory(id)
	if category == nil {
		s.metrics.RecordLookup("in_category", false)
		return []*models.Code{}, nil
	}

	matched := make([]*models.Code, 0)
	for _, code := range snap.codes {
		if category.Includes(code.MCC) {
			matched = append(matched, code)
		}
	}
	s.metrics.RecordLookup("in_category", true)
	return matched, nil
}

func (s *collectionService) Valid(ctx context.Context, value any) (bool, error) {
	code, err := s.Find(ctx, value)
	if err != nil {
		return false, err
	}
	return code != nil, nil
}

func (s *collectionService) Count(ctx context.Context) (int, error) {
	snap, err := s.ensureLoaded(ctx)
	if err != nil {
		return 0, err
	}
	return len(snap.codes), nil
}

// Reload forces a full load regardless of the caching policy, atomically
// replacing all three lists and the index.
func (s *collectionService) Reload(ctx context.Context) error {
	_, err := s.load(ctx, false)
	return err
}

func (s *collectionService) Ranges(ctx context.Context) ([]*models.Range, error) {
	snap, err := s.ensureLoaded(ctx)
	if err != nil {
		return nil, err
	}
	return snap.ranges, nil
}

func (s *collectionService) Categories(ctx context.Context) ([]*models.Category, error) {
	snap, err := s.ensureLoaded(ctx)
	if err != nil {
		return nil, err
	}
	return snap.categories, nil
}

func (s *collectionService) Category(ctx context.Context, id string) (*models.Category, error) {
	snap, err := s.ensureLoaded(ctx)
	if err != nil {
		return nil, err
	}

	category := snap.findCategory(id)
	if category == nil {
		return nil, fmt.Errorf("%w: %q", ErrCategoryNotFound, id)
	}
	return category, nil
}

func (s *collectionService) CodeRange(ctx context.Context, value any) (*models.Range, error) {
	snap, err := s.ensureLoaded(ctx)
	if err != nil {
		return nil, err
	}

	normalized, err := models.NormalizeCode(value)
	if err != nil {
		return nil, nil
	}

	for _, r := range snap.ranges {
		if r.Includes(normalized) {
			return r, nil
		}
	}
	return nil, nil
}

func (s *collectionService) CodeCategories(ctx context.Context, value any) ([]string, error) {
	snap, err := s.ensureLoaded(ctx)
	if err != nil {
		return nil, err
	}

	normalized, err := models.NormalizeCode(value)
	if err != nil {
		return []string{}, nil
	}

	ids := make([]string, 0)
	for _, category := range snap.categories {
		if category.Includes(normalized) {
			ids = append(ids, category.ID)
		}
	}
	return ids, nil
}

func (s *collectionService) CodeInCategory(ctx context.Context, value any, category any) (bool, error) {
	switch ref := category.(type) {
	case *models.Category:
		if ref == nil {
			return false, nil
		}
		if _, err := s.ensureLoaded(ctx); err != nil {
			return false, err
		}
		return ref.Includes(value), nil
	case models.Category:
		return ref.Includes(value), nil
	case string:
		snap, err := s.ensureLoaded(ctx)
		if err != nil {
			return false, err
		}
		target := snap.findCategory(ref)
		if target == nil {
			return false, nil
		}
		return target.Includes(value), nil
	default:
		return false, fmt.Errorf("%w: unsupported category reference %T", models.ErrInvalidFormat, category)
	}
}

func (s *collectionService) PublicView(ctx context.Context, code *models.Code) (map[string]any, error) {
	view := code.Record()
	view["description"] = nilIfBlank(code.Description(s.cfg.DefaultSource()))

	categories, err := s.CodeCategories(ctx, code.MCC)
	if err != nil {
		return nil, err
	}
	view["categories"] = categories

	containing, err := s.CodeRange(ctx, code.MCC)
	if err != nil {
		return nil, err
	}
	if containing != nil {
		view["range"] = containing.Name
	} else {
		view["range"] = nil
	}

	return view, nil
}

func (sn *snapshot) findCategory(id string) *models.Category {
	normalized := strings.ToLower(strings.TrimSpace(id))
	for _, category := range sn.categories {
		if category.ID == normalized {
			return category
		}
	}
	return nil
}

func nilIfBlank(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// noopMetrics satisfies MetricsRecorderInterface when no recorder is wired.
type noopMetrics struct{}

func (noopMetrics) RecordLookup(string, bool)    {}
func (noopMetrics) RecordSearch(int)             {}
func (noopMetrics) RecordReload(string, int64)   {}
func (noopMetrics) SetDatasetSize(int, int, int) {}
func (noopMetrics) RecordValidation(string)      {}
