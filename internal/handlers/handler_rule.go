package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/autobooks/autobooks_app/internal/apperrors"
	portssvc "github.com/autobooks/autobooks_app/internal/core/ports/services"
	"github.com/autobooks/autobooks_app/internal/core/services"
	"github.com/autobooks/autobooks_app/internal/dto"
	"github.com/autobooks/autobooks_app/internal/middleware"
)

// ruleHandler handles HTTP requests related to the rule catalog.
type ruleHandler struct {
	ruleService portssvc.RuleCatalogSvcFacade
}

func newRuleHandler(rs portssvc.RuleCatalogSvcFacade) *ruleHandler {
	return &ruleHandler{ruleService: rs}
}

// registerRuleRoutes registers routes related to classification rules.
func registerRuleRoutes(rg *gin.RouterGroup, ruleService portssvc.RuleCatalogSvcFacade) {
	h := newRuleHandler(ruleService)

	rules := rg.Group("/rules")
	{
		rules.GET("", h.listRules)
		rules.POST("", h.createRule)
		rules.DELETE("/:ruleID", h.deactivateRule)
	}
}

// listRules returns the full catalog in evaluation order.
func (h *ruleHandler) listRules(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("orgID")

	rules, err := h.ruleService.Rules(c.Request.Context(), orgID)
	if err != nil {
		logger.Error("Failed to list rules", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list rules"})
		return
	}

	c.JSON(http.StatusOK, dto.ListRulesResponse{Rules: dto.ToRuleResponses(rules)})
}

// createRule adds a user rule to the catalog.
func (h *ruleHandler) createRule(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("orgID")

	var req dto.CreateRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateRule", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	rule, err := h.ruleService.CreateRule(c.Request.Context(), orgID, req, requestUserID(c))
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) || errors.Is(err, services.ErrRuleTargetUnknown) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to create rule", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create rule"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToRuleResponse(rule))
}

// deactivateRule marks a user rule inactive. System rules are immutable.
func (h *ruleHandler) deactivateRule(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("orgID")
	ruleID := c.Param("ruleID")

	if err := h.ruleService.DeactivateRule(c.Request.Context(), orgID, ruleID, requestUserID(c)); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Rule not found"})
			return
		}
		if errors.Is(err, services.ErrSystemRuleImmutable) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to deactivate rule", slog.String("error", err.Error()), slog.String("rule_id", ruleID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate rule"})
		return
	}

	c.Status(http.StatusNoContent)
}
