package api

import (
	"context"
	"errors"

	"github.com/labstack/echo/v4"

	drepo "GoldPulse/internal/domain/repository"
	"GoldPulse/internal/usecase"
	xhttp "GoldPulse/pkg/http"
	applogger "GoldPulse/pkg/logger"
)

// AnalysisTrigger starts a run without waiting for it to finish.
type AnalysisTrigger interface {
	RunAsync(ctx context.Context, codes []string) error
}

// Handler serves the analysis API.
type Handler struct {
	runner AnalysisTrigger
	store  drepo.ReportStore
	macro  drepo.MacroSource
	codes  []string
	logger *applogger.Logger
}

// NewHandler creates the API handler. codes is the configured
// instrument list used when a trigger request names none.
func NewHandler(runner AnalysisTrigger, store drepo.ReportStore, macro drepo.MacroSource, codes []string, logger *applogger.Logger) *Handler {
	return &Handler{
		runner: runner,
		store:  store,
		macro:  macro,
		codes:  codes,
		logger: logger,
	}
}

// RegisterRoutes registers the API routes on the echo instance.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/analyze", h.Analyze)
	e.GET("/api/reports/latest", h.LatestReport)
	e.GET("/api/macro", h.Macro)
	e.GET("/healthz", h.Health)
}

type analyzeRequest struct {
	Codes []string `json:"codes" validate:"omitempty,dive,required"`
}

// Analyze triggers a background analysis run. A run already holding
// the lock yields a conflict.
func (h *Handler) Analyze(c echo.Context) error {
	var req analyzeRequest
	if resp := xhttp.ReadAndValidateRequest(c, &req); resp != nil {
		return xhttp.BadRequestResponse(c, resp)
	}

	codes := req.Codes
	if len(codes) == 0 {
		codes = h.codes
	}
	if len(codes) == 0 {
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError("codes"))
	}

	if err := h.runner.RunAsync(c.Request().Context(), codes); err != nil {
		if errors.Is(err, usecase.ErrRunInProgress) {
			return xhttp.ConflictResponse(c, map[string]string{
				"reason": "analysis run already in progress",
			})
		}
		h.logger.Error("trigger analysis failed", applogger.Error(err))
		return xhttp.InternalServerErrorResponse(c)
	}

	return xhttp.AcceptedResponse(c, map[string]interface{}{
		"codes": codes,
	})
}

type latestReportRequest struct {
	Code string `query:"code" validate:"required"`
}

// LatestReport returns the most recent archived report for a code.
func (h *Handler) LatestReport(c echo.Context) error {
	var req latestReportRequest
	if resp := xhttp.ReadAndValidateRequest(c, &req); resp != nil {
		return xhttp.BadRequestResponse(c, resp)
	}

	event, err := h.store.Latest(c.Request().Context(), req.Code)
	if err != nil {
		return xhttp.NotFoundResponse(c, map[string]string{
			"code": req.Code,
		})
	}
	return xhttp.SuccessResponse(c, event)
}

// Macro returns a fresh macro assessment.
func (h *Handler) Macro(c echo.Context) error {
	assessment, err := h.macro.Assessment(c.Request().Context())
	if err != nil {
		h.logger.Error("macro assessment failed", applogger.Error(err))
		return xhttp.InternalServerErrorResponse(c)
	}
	return xhttp.SuccessResponse(c, assessment)
}

// Health reports process and archive liveness.
func (h *Handler) Health(c echo.Context) error {
	status := map[string]string{"status": "ok"}
	if h.store != nil {
		if err := h.store.Health(c.Request().Context()); err != nil {
			status["archive"] = "unavailable"
		} else {
			status["archive"] = "ok"
		}
	}
	return xhttp.SuccessResponse(c, status)
}
