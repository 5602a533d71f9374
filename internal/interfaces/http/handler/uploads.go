package handler

import (
	"github.com/foodbridge/backend/internal/application/uploads"
	"github.com/gin-gonic/gin"
)

// UploadHandler handles presigned upload and download HTTP requests
type UploadHandler struct {
	BaseHandler
	uploadService *uploads.Service
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(uploadService *uploads.Service) *UploadHandler {
	return &UploadHandler{
		uploadService: uploadService,
	}
}

// PresignUploadRequest asks for a presigned PUT URL
// @Description Request body for presigning a direct-to-storage upload
type PresignUploadRequest struct {
	Category    string `json:"category" binding:"required,oneof=donation-image aadhar-document organization-document" example:"donation-image"`
	ContentType string `json:"content_type" binding:"required" example:"image/jpeg"`
}

// PresignUpload godoc
// @ID           presignUpload
// @Summary      Presign a direct upload
// @Description  Returns a time-limited PUT URL; the client uploads directly to object storage and then registers the returned object key on the owning record
// @Tags         uploads
// @Accept       json
// @Produce      json
// @Param        request body PresignUploadRequest true "Upload details"
// @Success      200 {object} APIResponse[uploads.PresignedUpload]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /uploads/presign [post]
func (h *UploadHandler) PresignUpload(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req PresignUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.uploadService.PresignUpload(c.Request.Context(), uploads.Category(req.Category), userID, req.ContentType)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// PresignDownload godoc
// @ID           presignDownload
// @Summary      Presign a download
// @Description  Returns a time-limited GET URL for a previously uploaded object
// @Tags         uploads
// @Produce      json
// @Param        key query string true "Object key"
// @Success      200 {object} APIResponse[uploads.PresignedDownload]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /uploads/presign-download [get]
func (h *UploadHandler) PresignDownload(c *gin.Context) {
	objectKey := c.Query("key")
	if objectKey == "" {
		h.BadRequest(c, "Missing object key")
		return
	}

	resp, err := h.uploadService.PresignDownload(c.Request.Context(), objectKey)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// RegisterRoutes registers upload routes
func (h *UploadHandler) RegisterRoutes(rg *gin.RouterGroup) {
	uploadsGroup := rg.Group("/uploads")
	{
		uploadsGroup.POST("/presign", h.PresignUpload)
		uploadsGroup.GET("/presign-download", h.PresignDownload)
	}
}
