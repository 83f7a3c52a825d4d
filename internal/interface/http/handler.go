package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mingyue/astro-insights/internal/domain/natal"
	apperrors "github.com/mingyue/astro-insights/pkg/errors"
)

// Handler wires the HTTP transport to the chart domain.
type Handler struct {
	chartSvc natal.Service
	logger   *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(chartSvc natal.Service, logger *slog.Logger) *Handler {
	return &Handler{
		chartSvc: chartSvc,
		logger:   logger.With("component", "http.handler"),
	}
}

// ComputeChart computes (and persists) a natal chart from birth data.
func (h *Handler) ComputeChart(c *gin.Context) {
	var req natal.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	chart, err := h.chartSvc.ComputeChart(c.Request.Context(), req)
	if err != nil {
		status := http.StatusInternalServerError
		code := "chart_failed"
		switch {
		case apperrors.IsCode(err, "invalid_birth_input"):
			status = http.StatusBadRequest
			code = "invalid_birth_input"
		case apperrors.IsCode(err, "location_not_found"):
			status = http.StatusNotFound
			code = "location_not_found"
		case apperrors.IsCode(err, "geocoding_unavailable"):
			status = http.StatusBadGateway
			code = "geocoding_unavailable"
		}
		abortWithError(c, NewHTTPError(status, code, errMessage(err), err))
		return
	}

	setImmutableCacheHeaders(c)
	c.JSON(http.StatusCreated, chart)
}

// GetChart returns a previously computed chart by ID.
func (h *Handler) GetChart(c *gin.Context) {
	id := c.Param("id")

	chart, found, err := h.chartSvc.GetChart(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "chart_failed", errMessage(err), err))
		return
	}
	if !found {
		abortWithError(c, NewHTTPError(http.StatusNotFound, "chart_not_found", "no chart with that id", nil))
		return
	}

	setImmutableCacheHeaders(c)
	c.JSON(http.StatusOK, chart)
}

// ZodiacSigns returns the static sign/element/ruler reference table.
func (h *Handler) ZodiacSigns(c *gin.Context) {
	setImmutableCacheHeaders(c)
	c.JSON(http.StatusOK, gin.H{"signs": h.chartSvc.ZodiacReference()})
}

// setImmutableCacheHeaders marks responses as indefinitely cacheable: chart
// geometry never changes for a given birth input.
func setImmutableCacheHeaders(c *gin.Context) {
	c.Header("Cache-Control", "public, max-age=31536000, immutable")
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
