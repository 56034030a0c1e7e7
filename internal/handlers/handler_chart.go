package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/autobooks/autobooks_app/internal/apperrors"
	portssvc "github.com/autobooks/autobooks_app/internal/core/ports/services"
	"github.com/autobooks/autobooks_app/internal/dto"
	"github.com/autobooks/autobooks_app/internal/middleware"
)

// chartHandler handles HTTP requests related to the chart of accounts.
type chartHandler struct {
	chartService portssvc.ChartSvcFacade
}

func newChartHandler(cs portssvc.ChartSvcFacade) *chartHandler {
	return &chartHandler{chartService: cs}
}

// registerChartRoutes registers routes related to the chart of accounts.
func registerChartRoutes(rg *gin.RouterGroup, chartService portssvc.ChartSvcFacade) {
	h := newChartHandler(chartService)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("/initialize", h.initializeChart)
		accounts.GET("", h.listAccounts)
		accounts.GET("/:code", h.getAccount)
		accounts.DELETE("/:code", h.deactivateAccount)
	}
}

// initializeChart materializes the chart definition for an organization.
// Organizations created through the API get their chart on creation; this
// endpoint covers organizations provisioned out of band. Re-running it
// against a populated chart is a no-op.
func (h *chartHandler) initializeChart(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("orgID")

	accounts, err := h.chartService.InitializeChart(c.Request.Context(), orgID, requestUserID(c))
	if err != nil {
		logger.Error("Failed to initialize chart", slog.String("error", err.Error()), slog.String("org_id", orgID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to initialize chart"})
		return
	}

	c.JSON(http.StatusOK, dto.ListAccountsResponse{
		Accounts:   dto.ToAccountResponses(accounts),
		Categories: dto.ToCategoryResponses(h.chartService.Categories()),
	})
}

// listAccounts returns the organization's chart with its categories.
func (h *chartHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("orgID")

	accounts, err := h.chartService.ListAccounts(c.Request.Context(), orgID)
	if err != nil {
		logger.Error("Failed to list accounts", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list accounts"})
		return
	}

	c.JSON(http.StatusOK, dto.ListAccountsResponse{
		Accounts:   dto.ToAccountResponses(accounts),
		Categories: dto.ToCategoryResponses(h.chartService.Categories()),
	})
}

// getAccount retrieves one account by chart code.
func (h *chartHandler) getAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("orgID")
	code := c.Param("code")

	account, err := h.chartService.GetAccountByCode(c.Request.Context(), orgID, code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
			return
		}
		logger.Error("Failed to get account", slog.String("error", err.Error()), slog.String("code", code))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve account"})
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// deactivateAccount soft-deactivates an account. Accounts are never deleted;
// historical journal lines keep referencing them.
func (h *chartHandler) deactivateAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("orgID")
	code := c.Param("code")

	if err := h.chartService.DeactivateAccount(c.Request.Context(), orgID, code, requestUserID(c)); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
			return
		}
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to deactivate account", slog.String("error", err.Error()), slog.String("code", code))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate account"})
		return
	}

	c.Status(http.StatusNoContent)
}
