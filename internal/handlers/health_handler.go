package handlers

import (
	"net/http"
	"time"

	"mcc-reference/internal/errors"
	"mcc-reference/internal/services"

	"github.com/labstack/echo/v4"
)

// HealthCheckHandler handles the health check endpoint
type HealthCheckHandler struct {
	collection services.CollectionServiceInterface
}

// NewHealthCheckHandler creates a new health check handler
func NewHealthCheckHandler(collection services.CollectionServiceInterface) *HealthCheckHandler {
	return &HealthCheckHandler{collection: collection}
}

// HealthCheck adds the health check endpoint
// @Summary Health check
// @Description Check API and dataset availability. The check queries the collection, so it also triggers the initial dataset load.
// @Tags Health
// @Produce json
// @Success 200 {object} object{status=string,codes=int,time=string} "Service is healthy"
// @Failure 503 {object} errors.ErrorResponse "DATASET_001 - Dataset could not be loaded"
// @Router /health [get]
func (h *HealthCheckHandler) HealthCheck(c echo.Context) error {
	count, err := h.collection.Count(c.Request().Context())
	if err != nil {
		return SendError(c, errors.DatasetLoadFailed, errors.WithDetails(err.Error()))
	}

	return c.JSON(http.StatusOK, map[string]any{
		"status": "healthy",
		"codes":  count,
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
