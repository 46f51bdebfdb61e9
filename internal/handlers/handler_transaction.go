package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/spendscope/spendscope-backend/internal/apperrors"
	"github.com/spendscope/spendscope-backend/internal/core/domain"
	portssvc "github.com/spendscope/spendscope-backend/internal/core/ports/services"
	"github.com/spendscope/spendscope-backend/internal/dto"
	"github.com/spendscope/spendscope-backend/internal/middleware"
)

// transactionHandler handles HTTP requests related to spend transactions.
type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
}

// newTransactionHandler creates a new transactionHandler.
func newTransactionHandler(ts portssvc.TransactionSvcFacade) *transactionHandler {
	return &transactionHandler{
		transactionService: ts,
	}
}

// registerTransactionRoutes registers transaction routes under a specific organization.
func registerTransactionRoutes(rg *gin.RouterGroup, transactionService portssvc.TransactionSvcFacade) {
	h := newTransactionHandler(transactionService)

	transactions := rg.Group("/transactions")
	{
		transactions.GET("", h.listTransactions)
		transactions.POST("/bulk-delete", h.bulkDeleteTransactions)
		transactions.GET("/duplicates", h.listDuplicates)
	}
}

// listTransactions godoc
// @Summary List spend transactions
// @Description Retrieves the organization's transactions matching the optional filters, newest date first.
// @Tags transactions
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   dateFrom query string false "Earliest date (YYYY-MM-DD)"
// @Param   dateTo query string false "Latest date (YYYY-MM-DD)"
// @Param   supplierID query string false "Filter by supplier"
// @Param   categoryID query string false "Filter by category"
// @Param   limit query int false "Max records to return (default 100)"
// @Param   offset query int false "Records to skip"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} map[string]string "Invalid filters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /organizations/{organization_id}/transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.ListTransactionsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		logger.Warn("Failed to bind query for ListTransactions", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	filter := domain.TransactionFilter{
		DateFrom:   req.DateFrom,
		DateTo:     req.DateTo,
		SupplierID: req.SupplierID,
		CategoryID: req.CategoryID,
		Limit:      req.Limit,
		Offset:     req.Offset,
	}

	txns, err := h.transactionService.ListTransactions(c.Request.Context(), organizationID, userID, filter)
	if err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		} else {
			logger.Error("Failed to list transactions", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list transactions"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToListTransactionsResponse(txns))
}

// bulkDeleteTransactions godoc
// @Summary Delete transactions in bulk
// @Description Deletes the identified transactions within the organization and reports how many were removed.
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   request body dto.BulkDeleteTransactionsRequest true "Transaction IDs to delete"
// @Success 200 {object} dto.BulkDeleteTransactionsResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /organizations/{organization_id}/transactions/bulk-delete [post]
func (h *transactionHandler) bulkDeleteTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.BulkDeleteTransactionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for BulkDeleteTransactions", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	deleted, err := h.transactionService.BulkDeleteTransactions(c.Request.Context(), organizationID, userID, req.TransactionIDs)
	if err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to bulk delete transactions", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete transactions"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.BulkDeleteTransactionsResponse{Deleted: deleted})
}

// listDuplicates godoc
// @Summary Report potential duplicate transactions
// @Description Lists groups of transactions sharing supplier, category, amount and date within the trailing window.
// @Tags transactions
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   days query int false "Trailing window in days (default 30)"
// @Success 200 {object} dto.ListDuplicateGroupsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /organizations/{organization_id}/transactions/duplicates [get]
func (h *transactionHandler) listDuplicates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))

	groups, err := h.transactionService.FindDuplicates(c.Request.Context(), organizationID, userID, days)
	if err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		} else {
			logger.Error("Failed to find duplicate transactions", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to find duplicates"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToListDuplicateGroupsResponse(groups))
}
