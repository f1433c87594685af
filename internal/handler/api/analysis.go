package api

import (
	"errors"

	"github.com/labstack/echo/v4"

	"btcwave/internal/domain/models"
	"btcwave/internal/usecase"
	"btcwave/pkg/http"
	"btcwave/pkg/logger"
)

// AnalysisHandler exposes the analysis pipeline over HTTP.
type AnalysisHandler struct {
	analyzer *usecase.Analyzer
	log      *logger.Logger
}

func NewAnalysisHandler(analyzer *usecase.Analyzer, log *logger.Logger) *AnalysisHandler {
	return &AnalysisHandler{analyzer: analyzer, log: log}
}

func (h *AnalysisHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/analysis", h.GetAnalysis)
}

// GetAnalysis runs one analysis and returns the report as JSON.
// Upstream fetch failures map to 502, unusable upstream data to 422.
func (h *AnalysisHandler) GetAnalysis(c echo.Context) error {
	report, err := h.analyzer.Run(c.Request().Context())
	if err != nil {
		h.log.Error("analysis failed", logger.Error(err))
		return http.AppErrorResponse(c, toAppError(err))
	}
	return http.SuccessResponse(c, report)
}

func toAppError(err error) *http.AppError {
	switch {
	case errors.Is(err, models.ErrExecutionFailure):
		return http.BadGatewayError("upstream provider unavailable").WithError(err)
	case errors.Is(err, models.ErrIncompleteData), errors.Is(err, models.ErrTimestampDiscontinuity):
		return http.UnprocessableError("upstream data unusable").WithError(err)
	default:
		return http.InternalError("analysis failed").WithError(err)
	}
}
