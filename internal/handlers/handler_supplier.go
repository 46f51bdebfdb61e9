package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/spendscope/spendscope-backend/internal/apperrors"
	portssvc "github.com/spendscope/spendscope-backend/internal/core/ports/services"
	"github.com/spendscope/spendscope-backend/internal/dto"
	"github.com/spendscope/spendscope-backend/internal/middleware"
)

// supplierHandler handles HTTP requests related to suppliers. Suppliers are
// created only by the ingestion pipeline; these routes are read-only.
type supplierHandler struct {
	supplierService portssvc.SupplierSvcFacade
}

// newSupplierHandler creates a new supplierHandler.
func newSupplierHandler(ss portssvc.SupplierSvcFacade) *supplierHandler {
	return &supplierHandler{
		supplierService: ss,
	}
}

// registerSupplierRoutes registers supplier routes under a specific organization.
func registerSupplierRoutes(rg *gin.RouterGroup, supplierService portssvc.SupplierSvcFacade) {
	h := newSupplierHandler(supplierService)

	suppliers := rg.Group("/suppliers")
	{
		suppliers.GET("", h.listSuppliers)
		suppliers.GET("/:supplier_id", h.getSupplier)
	}
}

// listSuppliers godoc
// @Summary List suppliers
// @Description Retrieves the organization's suppliers ordered by name.
// @Tags suppliers
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   limit query int false "Max records to return (default 100)"
// @Param   offset query int false "Records to skip"
// @Success 200 {object} dto.ListSuppliersResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /organizations/{organization_id}/suppliers [get]
func (h *supplierHandler) listSuppliers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	suppliers, err := h.supplierService.ListSuppliers(c.Request.Context(), organizationID, userID, limit, offset)
	if err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		} else {
			logger.Error("Failed to list suppliers", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list suppliers"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToListSuppliersResponse(suppliers))
}

// getSupplier godoc
// @Summary Get supplier details
// @Description Retrieves a single supplier within the organization.
// @Tags suppliers
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   supplier_id path string true "Supplier ID"
// @Success 200 {object} dto.SupplierResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Supplier not found"
// @Security BearerAuth
// @Router /organizations/{organization_id}/suppliers/{supplier_id} [get]
func (h *supplierHandler) getSupplier(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	supplierID := c.Param("supplier_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	supplier, err := h.supplierService.GetSupplierByID(c.Request.Context(), organizationID, supplierID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Supplier not found"})
		} else if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		} else {
			logger.Error("Failed to get supplier", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get supplier"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToSupplierResponse(supplier))
}
