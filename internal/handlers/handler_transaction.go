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

// transactionHandler handles HTTP requests related to bank transactions.
type transactionHandler struct {
	txnService        portssvc.TransactionSvcFacade
	classifierService portssvc.ClassifierSvcFacade
}

func newTransactionHandler(ts portssvc.TransactionSvcFacade, cs portssvc.ClassifierSvcFacade) *transactionHandler {
	return &transactionHandler{txnService: ts, classifierService: cs}
}

// registerTransactionRoutes registers routes related to bank transactions.
func registerTransactionRoutes(rg *gin.RouterGroup, txnService portssvc.TransactionSvcFacade, classifierService portssvc.ClassifierSvcFacade) {
	h := newTransactionHandler(txnService, classifierService)

	periods := rg.Group("/periods/:periodID")
	{
		periods.POST("/transactions", h.importTransactions)
		periods.GET("/transactions", h.listTransactions)
		periods.POST("/classify", h.classifyPeriod)
	}
	txns := rg.Group("/transactions")
	{
		txns.GET("/:txnID", h.getTransaction)
		txns.PUT("/:txnID/classification", h.overrideClassification)
	}
}

// importTransactions bulk-imports statement rows into a period.
func (h *transactionHandler) importTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("orgID")
	periodID := c.Param("periodID")

	var req dto.ImportTransactionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ImportTransactions", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	txns, err := h.txnService.ImportTransactions(c.Request.Context(), orgID, periodID, req, requestUserID(c))
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrPeriodLocked):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Period not found"})
		default:
			logger.Error("Failed to import transactions", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to import transactions"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ListTransactionsResponse{Transactions: dto.ToTransactionResponses(txns)})
}

// listTransactions lists a period's transactions. ?unclassified=true narrows
// the listing to rows still awaiting classification.
func (h *transactionHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("orgID")
	periodID := c.Param("periodID")
	onlyUnclassified := c.Query("unclassified") == "true"

	txns, err := h.txnService.ListTransactions(c.Request.Context(), orgID, periodID, onlyUnclassified)
	if err != nil {
		logger.Error("Failed to list transactions", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list transactions"})
		return
	}

	c.JSON(http.StatusOK, dto.ListTransactionsResponse{Transactions: dto.ToTransactionResponses(txns)})
}

// classifyPeriod runs the classifier over every transaction of the period.
func (h *transactionHandler) classifyPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("orgID")
	periodID := c.Param("periodID")

	result, err := h.classifierService.ClassifyPeriod(c.Request.Context(), orgID, periodID, requestUserID(c))
	if err != nil {
		logger.Error("Failed to classify period", slog.String("error", err.Error()), slog.String("period_id", periodID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to classify period"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// getTransaction retrieves one bank transaction.
func (h *transactionHandler) getTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("orgID")
	txnID := c.Param("txnID")

	txn, err := h.txnService.GetTransaction(c.Request.Context(), orgID, txnID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
			return
		}
		logger.Error("Failed to get transaction", slog.String("error", err.Error()), slog.String("txn_id", txnID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve transaction"})
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// overrideClassification records a manual classification for one transaction.
func (h *transactionHandler) overrideClassification(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("orgID")
	txnID := c.Param("txnID")

	var req dto.OverrideClassificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for OverrideClassification", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	if err := h.classifierService.Override(c.Request.Context(), orgID, txnID, req.AccountCode, requestUserID(c)); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to override classification", slog.String("error", err.Error()), slog.String("txn_id", txnID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to override classification"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
