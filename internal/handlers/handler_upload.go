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

// uploadHandler handles HTTP requests related to bulk data uploads.
type uploadHandler struct {
	uploadService portssvc.UploadSvcFacade
}

// newUploadHandler creates a new uploadHandler.
func newUploadHandler(us portssvc.UploadSvcFacade) *uploadHandler {
	return &uploadHandler{
		uploadService: us,
	}
}

// RegisterUploadRoutes registers upload routes under a specific organization.
func RegisterUploadRoutes(rg *gin.RouterGroup, uploadService portssvc.UploadSvcFacade) {
	h := newUploadHandler(uploadService)

	uploads := rg.Group("/uploads")
	{
		uploads.POST("", h.createUpload)
		uploads.GET("", h.listUploads)
		uploads.GET("/:upload_id", h.getUpload)
	}
}

// createUpload godoc
// @Summary Upload a CSV file of spend transactions
// @Description Ingests a CSV file row by row. The response reports per-row counters, a terminal status and a redacted error log.
// @Tags uploads
// @Accept  multipart/form-data
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   file formData file true "CSV file (max 50MB, 50000 rows)"
// @Param   skipDuplicates formData bool false "Skip duplicate rows instead of failing them (default true)"
// @Success 201 {object} dto.UploadResponse
// @Failure 400 {object} map[string]string "Invalid file or contents"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to process upload"
// @Security BearerAuth
// @Router /organizations/{organization_id}/uploads [post]
func (h *uploadHandler) createUpload(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		logger.Warn("No file in upload request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "A file is required in the 'file' form field"})
		return
	}

	skipDuplicates := true
	if raw := c.PostForm("skipDuplicates"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "skipDuplicates must be a boolean"})
			return
		}
		skipDuplicates = parsed
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error("Failed to open uploaded file", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file"})
		return
	}
	defer file.Close()

	logger = logger.With(slog.String("organization_id", organizationID))
	logger.Info("Received upload request",
		slog.String("file_name", fileHeader.Filename),
		slog.Int64("file_size", fileHeader.Size))

	upload, err := h.uploadService.ProcessUpload(
		c.Request.Context(),
		organizationID,
		userID,
		file,
		fileHeader.Filename,
		fileHeader.Size,
		skipDuplicates,
	)
	if err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to process upload", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process upload"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToUploadResponse(upload))
}

// listUploads godoc
// @Summary List uploads for an organization
// @Description Retrieves the organization's upload history, newest first.
// @Tags uploads
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   limit query int false "Max records to return (default 100)"
// @Param   offset query int false "Records to skip"
// @Success 200 {object} dto.ListUploadsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /organizations/{organization_id}/uploads [get]
func (h *uploadHandler) listUploads(c *gin.Context) {
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

	uploads, err := h.uploadService.ListUploads(c.Request.Context(), organizationID, userID, limit, offset)
	if err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		} else {
			logger.Error("Failed to list uploads", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list uploads"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToListUploadsResponse(uploads))
}

// getUpload godoc
// @Summary Get one upload's ledger record
// @Description Retrieves a single upload with its counters, status and redacted error log.
// @Tags uploads
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   upload_id path string true "Upload ID"
// @Success 200 {object} dto.UploadResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Upload not found"
// @Security BearerAuth
// @Router /organizations/{organization_id}/uploads/{upload_id} [get]
func (h *uploadHandler) getUpload(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	uploadID := c.Param("upload_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	upload, err := h.uploadService.GetUploadByID(c.Request.Context(), organizationID, uploadID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Upload not found"})
		} else if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		} else {
			logger.Error("Failed to get upload", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get upload"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToUploadResponse(upload))
}
