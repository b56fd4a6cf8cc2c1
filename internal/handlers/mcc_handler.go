package handlers

import (
	stderrors "errors"
	"net/http"
	"strings"

	"mcc-reference/internal/config"
	"mcc-reference/internal/dto"
	"mcc-reference/internal/errors"
	"mcc-reference/internal/models"
	"mcc-reference/internal/services"
	"mcc-reference/internal/validation"

	"github.com/labstack/echo/v4"
)

// MCCHandler handles merchant-category-code HTTP requests
type MCCHandler struct {
	collection services.CollectionServiceInterface
	metrics    services.MetricsRecorderInterface
	datasetCfg config.DatasetConfig
}

// NewMCCHandler creates a new MCC handler
func NewMCCHandler(
	collection services.CollectionServiceInterface,
	metrics services.MetricsRecorderInterface,
	datasetCfg config.DatasetConfig,
) *MCCHandler {
	return &MCCHandler{
		collection: collection,
		metrics:    metrics,
		datasetCfg: datasetCfg,
	}
}

// ListCodes lists merchant category codes with optional filters
// @Summary List MCC codes
// @Description List merchant category codes, optionally narrowed by substring search, ISO range name, and category id. Filters combine conjunctively; a blank query matches everything.
// @Tags MCC
// @Produce json
// @Param q query string false "Case-insensitive substring matched against code and all descriptions"
// @Param range query string false "ISO range name (case-insensitive exact match)"
// @Param category query string false "Category id"
// @Success 200 {object} dto.ListCodesResponse "Matching codes"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Invalid parameters"
// @Failure 503 {object} errors.ErrorResponse "DATASET_001 - Dataset could not be loaded"
// @Router /mccs [get]
func (h *MCCHandler) ListCodes(c echo.Context) error {
	var req dto.ListCodesRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid query parameters"))
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()

	codes, err := h.collection.Search(ctx, req.Query)
	if err != nil {
		return sendDatasetError(c, err)
	}

	if req.Range != "" {
		codes, err = h.intersectRange(c, codes, req.Range)
		if err != nil {
			return sendDatasetError(c, err)
		}
	}

	if req.Category != "" {
		category, err := h.collection.Category(ctx, req.Category)
		if err != nil && !isNotFound(err) {
			return sendDatasetError(c, err)
		}

		filtered := make([]*models.Code, 0)
		if category != nil {
			for _, code := range codes {
				if category.Includes(code.MCC) {
					filtered = append(filtered, code)
				}
			}
		}
		codes = filtered
	}

	return c.JSON(http.StatusOK, dto.ListCodesResponse{
		Codes: h.toCodeResponses(codes),
		Total: len(codes),
	})
}

// GetCode retrieves the public view of one code
// @Summary Get an MCC code
// @Description Retrieve one merchant category code with all source descriptions, the resolved description, its category ids, and its containing ISO range.
// @Tags MCC
// @Produce json
// @Param code path string true "4-digit MCC code (shorter numeric values are zero-padded)"
// @Success 200 {object} object "Full code record with computed fields"
// @Failure 404 {object} errors.ErrorResponse "MCC_001 - Code not found"
// @Failure 503 {object} errors.ErrorResponse "DATASET_001 - Dataset could not be loaded"
// @Router /mccs/{code} [get]
func (h *MCCHandler) GetCode(c echo.Context) error {
	ctx := c.Request().Context()

	code, err := h.collection.Find(ctx, c.Param("code"))
	if err != nil {
		return sendDatasetError(c, err)
	}
	if code == nil {
		return SendError(c, errors.MCCNotFound)
	}

	view, err := h.collection.PublicView(ctx, code)
	if err != nil {
		return sendDatasetError(c, err)
	}

	return c.JSON(http.StatusOK, view)
}

// ValidateCode runs the rule evaluator against a candidate value
// @Summary Validate an MCC code
// @Description Evaluate a candidate value against format, existence, and category allow/deny policy. Validation outcomes are reported in the response body; only infrastructure failures produce error statuses.
// @Tags MCC
// @Accept json
// @Produce json
// @Param request body dto.ValidateCodeRequest true "Candidate value and policy"
// @Success 200 {object} dto.ValidateCodeResponse "Validation outcome"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Malformed request"
// @Failure 503 {object} errors.ErrorResponse "DATASET_001 - Dataset could not be loaded"
// @Router /mccs/validate [post]
func (h *MCCHandler) ValidateCode(c echo.Context) error {
	var req dto.ValidateCodeRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	codeValidator := validation.NewCodeValidator(h.collection, h.metrics, validation.Options{
		Strict:          req.Strict,
		DenyCategories:  req.DenyCategories,
		AllowCategories: req.AllowCategories,
	})

	var value any
	if req.Code != nil {
		value = *req.Code
	}

	messages, err := codeValidator.Validate(c.Request().Context(), value)
	if err != nil {
		return sendDatasetError(c, err)
	}

	return c.JSON(http.StatusOK, dto.ValidateCodeResponse{
		Code:   req.Code,
		Valid:  len(messages) == 0,
		Errors: messages,
	})
}

// ListRanges lists the ISO industry-segment ranges
// @Summary List MCC ranges
// @Description List the ISO 18245 industry-segment ranges. Reserved ranges are omitted unless the service is configured to include them.
// @Tags Ranges
// @Produce json
// @Success 200 {object} dto.ListRangesResponse "Loaded ranges"
// @Failure 503 {object} errors.ErrorResponse "DATASET_001 - Dataset could not be loaded"
// @Router /ranges [get]
func (h *MCCHandler) ListRanges(c echo.Context) error {
	ranges, err := h.collection.Ranges(c.Request().Context())
	if err != nil {
		return sendDatasetError(c, err)
	}

	responses := make([]dto.RangeResponse, 0, len(ranges))
	for _, r := range ranges {
		if r.Reserved && !h.datasetCfg.IncludeReservedRanges {
			continue
		}
		responses = append(responses, dto.RangeResponse{
			Start:       r.Start,
			End:         r.End,
			Name:        r.Name,
			Description: r.Description,
			Reserved:    r.Reserved,
			Size:        r.Size(),
		})
	}

	return c.JSON(http.StatusOK, dto.ListRangesResponse{
		Ranges: responses,
		Total:  len(responses),
	})
}

// RangeCodes lists all codes within a named range
// @Summary List codes in a range
// @Description List every loaded code falling in the named ISO range (case-insensitive exact name match).
// @Tags Ranges
// @Produce json
// @Param name path string true "Range name"
// @Success 200 {object} dto.ListCodesResponse "Codes in the range"
// @Failure 404 {object} errors.ErrorResponse "RANGE_001 - Range not found"
// @Failure 503 {object} errors.ErrorResponse "DATASET_001 - Dataset could not be loaded"
// @Router /ranges/{name}/mccs [get]
func (h *MCCHandler) RangeCodes(c echo.Context) error {
	ctx := c.Request().Context()
	name := c.Param("name")

	ranges, err := h.collection.Ranges(ctx)
	if err != nil {
		return sendDatasetError(c, err)
	}
	if !rangeExists(ranges, name) {
		return SendError(c, errors.RangeNotFound)
	}

	codes, err := h.collection.InRange(ctx, name)
	if err != nil {
		return sendDatasetError(c, err)
	}

	return c.JSON(http.StatusOK, dto.ListCodesResponse{
		Codes: h.toCodeResponses(codes),
		Total: len(codes),
	})
}

// ListCategories lists the risk categories
// @Summary List MCC categories
// @Description List the named risk categories with their code and range entries.
// @Tags Categories
// @Produce json
// @Success 200 {object} dto.ListCategoriesResponse "Loaded categories"
// @Failure 503 {object} errors.ErrorResponse "DATASET_001 - Dataset could not be loaded"
// @Router /categories [get]
func (h *MCCHandler) ListCategories(c echo.Context) error {
	categories, err := h.collection.Categories(c.Request().Context())
	if err != nil {
		return sendDatasetError(c, err)
	}

	responses := make([]dto.CategoryResponse, 0, len(categories))
	for _, category := range categories {
		responses = append(responses, dto.CategoryResponse{
			ID:          category.ID,
			Name:        category.Name,
			Description: category.Description,
			Codes:       category.Entries,
		})
	}

	return c.JSON(http.StatusOK, dto.ListCategoriesResponse{
		Categories: responses,
		Total:      len(responses),
	})
}

// CategoryCodes lists all codes belonging to a category
// @Summary List codes in a category
// @Description List every loaded code belonging to the identified risk category.
// @Tags Categories
// @Produce json
// @Param id path string true "Category id"
// @Success 200 {object} dto.ListCodesResponse "Codes in the category"
// @Failure 404 {object} errors.ErrorResponse "CATEGORY_001 - Category not found"
// @Failure 503 {object} errors.ErrorResponse "DATASET_001 - Dataset could not be loaded"
// @Router /categories/{id}/mccs [get]
func (h *MCCHandler) CategoryCodes(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	if _, err := h.collection.Category(ctx, id); err != nil {
		if isNotFound(err) {
			return SendError(c, errors.CategoryNotFound)
		}
		return sendDatasetError(c, err)
	}

	codes, err := h.collection.InCategory(ctx, id)
	if err != nil {
		return sendDatasetError(c, err)
	}

	return c.JSON(http.StatusOK, dto.ListCodesResponse{
		Codes: h.toCodeResponses(codes),
		Total: len(codes),
	})
}

// ReloadDataset replaces the dataset snapshot from the configured source
// @Summary Reload the dataset
// @Description Atomically reload codes, ranges, and categories from the configured source. In-flight queries keep reading the previous snapshot until the reload completes.
// @Tags Dataset
// @Produce json
// @Success 200 {object} dto.ReloadResponse "Record counts after reload"
// @Failure 503 {object} errors.ErrorResponse "DATASET_002 - Reload failed"
// @Router /dataset/reload [post]
func (h *MCCHandler) ReloadDataset(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.collection.Reload(ctx); err != nil {
		return SendError(c, errors.DatasetReloadFailed, errors.WithDetails(err.Error()))
	}

	codes, err := h.collection.Count(ctx)
	if err != nil {
		return sendDatasetError(c, err)
	}
	ranges, err := h.collection.Ranges(ctx)
	if err != nil {
		return sendDatasetError(c, err)
	}
	categories, err := h.collection.Categories(ctx)
	if err != nil {
		return sendDatasetError(c, err)
	}

	return c.JSON(http.StatusOK, dto.ReloadResponse{
		Codes:      codes,
		Ranges:     len(ranges),
		Categories: len(categories),
	})
}

func (h *MCCHandler) toCodeResponses(codes []*models.Code) []dto.CodeResponse {
	responses := make([]dto.CodeResponse, 0, len(codes))
	for _, code := range codes {
		responses = append(responses, dto.CodeResponse{
			MCC:         code.MCC,
			Description: code.Description(h.datasetCfg.DefaultSource()),
			Reportable:  code.Reportable(),
		})
	}
	return responses
}

func (h *MCCHandler) intersectRange(c echo.Context, codes []*models.Code, name string) ([]*models.Code, error) {
	ranges, err := h.collection.Ranges(c.Request().Context())
	if err != nil {
		return nil, err
	}

	var target *models.Range
	for _, r := range ranges {
		if strings.EqualFold(r.Name, name) {
			target = r
			break
		}
	}
	if target == nil {
		return []*models.Code{}, nil
	}

	filtered := make([]*models.Code, 0)
	for _, code := range codes {
		if target.Includes(code.MCC) {
			filtered = append(filtered, code)
		}
	}
	return filtered, nil
}

func rangeExists(ranges []*models.Range, name string) bool {
	for _, r := range ranges {
		if strings.EqualFold(r.Name, name) {
			return true
		}
	}
	return false
}

func isNotFound(err error) bool {
	return stderrors.Is(err, services.ErrCategoryNotFound) || stderrors.Is(err, services.ErrCodeNotFound)
}

func sendDatasetError(c echo.Context, err error) error {
	return SendError(c, errors.DatasetLoadFailed, errors.WithDetails(err.Error()))
}
