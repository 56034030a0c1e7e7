package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/autobooks/autobooks_app/internal/apperrors"
	"github.com/autobooks/autobooks_app/internal/core/domain"
	portssvc "github.com/autobooks/autobooks_app/internal/core/ports/services"
	"github.com/autobooks/autobooks_app/internal/dto"
	"github.com/autobooks/autobooks_app/internal/middleware"
)

// periodHandler handles HTTP requests related to fiscal periods and the
// reports derived from them.
type periodHandler struct {
	periodService    portssvc.PeriodSvcFacade
	reportingService portssvc.ReportingSvcFacade
}

func newPeriodHandler(ps portssvc.PeriodSvcFacade, rs portssvc.ReportingSvcFacade) *periodHandler {
	return &periodHandler{periodService: ps, reportingService: rs}
}

// registerPeriodRoutes registers routes related to fiscal periods.
func registerPeriodRoutes(rg *gin.RouterGroup, periodService portssvc.PeriodSvcFacade, reportingService portssvc.ReportingSvcFacade) {
	h := newPeriodHandler(periodService, reportingService)

	periods := rg.Group("/periods")
	{
		periods.POST("", h.createPeriod)
		periods.GET("", h.listPeriods)
		periods.GET("/:periodID", h.getPeriod)
		periods.GET("/:periodID/summary", h.getSummary)
		periods.GET("/:periodID/trial-balance", h.getTrialBalance)
		periods.POST("/:periodID/process", h.processPeriod)
		periods.POST("/:periodID/reprocess", h.reprocessPeriod)
	}
}

// createPeriod opens a new fiscal period.
func (h *periodHandler) createPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("orgID")

	var req dto.CreatePeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreatePeriod", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	period, err := h.periodService.CreatePeriod(c.Request.Context(), orgID, req, requestUserID(c))
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to create period", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create period"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToPeriodResponse(period))
}

// listPeriods lists the organization's periods.
func (h *periodHandler) listPeriods(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("orgID")

	periods, err := h.periodService.ListPeriods(c.Request.Context(), orgID)
	if err != nil {
		logger.Error("Failed to list periods", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list periods"})
		return
	}

	c.JSON(http.StatusOK, dto.ListPeriodsResponse{Periods: dto.ToPeriodResponses(periods)})
}

// getPeriod retrieves one fiscal period.
func (h *periodHandler) getPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("orgID")
	periodID := c.Param("periodID")

	period, err := h.periodService.GetPeriod(c.Request.Context(), orgID, periodID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Period not found"})
			return
		}
		logger.Error("Failed to get period", slog.String("error", err.Error()), slog.String("period_id", periodID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve period"})
		return
	}

	c.JSON(http.StatusOK, dto.ToPeriodResponse(period))
}

// getSummary retrieves the persisted totals of a processed period.
func (h *periodHandler) getSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("orgID")
	periodID := c.Param("periodID")

	summary, err := h.periodService.GetSummary(c.Request.Context(), orgID, periodID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Summary not found; period has not been processed"})
			return
		}
		logger.Error("Failed to get period summary", slog.String("error", err.Error()), slog.String("period_id", periodID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve summary"})
		return
	}

	c.JSON(http.StatusOK, dto.ToPeriodSummaryResponse(summary))
}

// getTrialBalance builds the trial balance for a period. An imbalance is a
// hard 500-level failure; silently serving mismatched columns would hide an
// upstream defect.
func (h *periodHandler) getTrialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("orgID")
	periodID := c.Param("periodID")

	report, err := h.reportingService.TrialBalance(c.Request.Context(), orgID, periodID)
	if err != nil {
		if errors.Is(err, apperrors.ErrTrialBalanceMismatch) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to build trial balance", slog.String("error", err.Error()), slog.String("period_id", periodID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build trial balance"})
		return
	}

	c.JSON(http.StatusOK, dto.ToTrialBalanceResponse(report))
}

// processPeriod runs the full pipeline over an OPEN period.
func (h *periodHandler) processPeriod(c *gin.Context) {
	h.runPipeline(c, h.periodService.Process)
}

// reprocessPeriod discards derived data and re-runs the pipeline atomically.
func (h *periodHandler) reprocessPeriod(c *gin.Context) {
	h.runPipeline(c, h.periodService.Reprocess)
}

func (h *periodHandler) runPipeline(c *gin.Context, run func(ctx context.Context, orgID string, periodID string, userID string) (*domain.PeriodSummary, error)) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("orgID")
	periodID := c.Param("periodID")

	summary, err := run(c.Request.Context(), orgID, periodID, requestUserID(c))
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Period not found"})
		case errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrTrialBalanceMismatch), errors.Is(err, apperrors.ErrUnbalanced):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			logger.Error("Period pipeline failed", slog.String("error", err.Error()), slog.String("period_id", periodID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process period"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToPeriodSummaryResponse(summary))
}
