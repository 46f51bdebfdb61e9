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

// categoryHandler handles HTTP requests related to categories. Categories are
// created only by the ingestion pipeline; these routes are read-only.
type categoryHandler struct {
	categoryService portssvc.CategorySvcFacade
}

// newCategoryHandler creates a new categoryHandler.
func newCategoryHandler(cs portssvc.CategorySvcFacade) *categoryHandler {
	return &categoryHandler{
		categoryService: cs,
	}
}

// registerCategoryRoutes registers category routes under a specific organization.
func registerCategoryRoutes(rg *gin.RouterGroup, categoryService portssvc.CategorySvcFacade) {
	h := newCategoryHandler(categoryService)

	categories := rg.Group("/categories")
	{
		categories.GET("", h.listCategories)
		categories.GET("/:category_id", h.getCategory)
	}
}

// listCategories godoc
// @Summary List categories
// @Description Retrieves the organization's categories ordered by name.
// @Tags categories
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   limit query int false "Max records to return (default 100)"
// @Param   offset query int false "Records to skip"
// @Success 200 {object} dto.ListCategoriesResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /organizations/{organization_id}/categories [get]
func (h *categoryHandler) listCategories(c *gin.Context) {
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

	categories, err := h.categoryService.ListCategories(c.Request.Context(), organizationID, userID, limit, offset)
	if err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		} else {
			logger.Error("Failed to list categories", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list categories"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToListCategoriesResponse(categories))
}

// getCategory godoc
// @Summary Get category details
// @Description Retrieves a single category within the organization.
// @Tags categories
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   category_id path string true "Category ID"
// @Success 200 {object} dto.CategoryResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Category not found"
// @Security BearerAuth
// @Router /organizations/{organization_id}/categories/{category_id} [get]
func (h *categoryHandler) getCategory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	categoryID := c.Param("category_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	category, err := h.categoryService.GetCategoryByID(c.Request.Context(), organizationID, categoryID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		} else if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		} else {
			logger.Error("Failed to get category", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get category"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToCategoryResponse(category))
}
