package handler

import (
	partnerapp "github.com/foodbridge/backend/internal/application/partner"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// OrganizationHandler handles receiving organization HTTP requests
type OrganizationHandler struct {
	BaseHandler
	partnerService *partnerapp.Service
}

// NewOrganizationHandler creates a new organization handler
func NewOrganizationHandler(partnerService *partnerapp.Service) *OrganizationHandler {
	return &OrganizationHandler{
		partnerService: partnerService,
	}
}

// RecordStorageRequest adjusts an organization's current storage level
// @Description Request body for recording a storage change; positive delta for intake, negative for distribution
type RecordStorageRequest struct {
	Delta decimal.Decimal `json:"delta" binding:"required"`
}

// Create godoc
// @ID           createOrganization
// @Summary      Register a receiving organization
// @Description  Create an organization owned by the current user; it starts unverified
// @Tags         organizations
// @Accept       json
// @Produce      json
// @Param        request body partnerapp.CreateOrganizationRequest true "Organization details"
// @Success      201 {object} APIResponse[partnerapp.OrganizationResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /organizations [post]
func (h *OrganizationHandler) Create(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req partnerapp.CreateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.partnerService.Create(c.Request.Context(), ownerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// Get godoc
// @ID           getOrganization
// @Summary      Get an organization by ID
// @Tags         organizations
// @Produce      json
// @Param        id path string true "Organization ID"
// @Success      200 {object} APIResponse[partnerapp.OrganizationResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /organizations/{id} [get]
func (h *OrganizationHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid organization ID")
		return
	}

	resp, err := h.partnerService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List godoc
// @ID           listOrganizations
// @Summary      List organizations
// @Tags         organizations
// @Produce      json
// @Param        type query string false "Filter by type" Enums(food_bank, charity, shelter, community_center)
// @Param        is_verified query bool false "Filter by verification state"
// @Param        city query string false "Filter by city"
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Success      200 {object} APIResponse[[]partnerapp.OrganizationResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /organizations [get]
func (h *OrganizationHandler) List(c *gin.Context) {
	var filter partnerapp.OrganizationListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.partnerService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Update godoc
// @ID           updateOrganization
// @Summary      Update an organization
// @Description  Update contact and capacity details; only the owner or an admin
// @Tags         organizations
// @Accept       json
// @Produce      json
// @Param        id path string true "Organization ID"
// @Param        request body partnerapp.UpdateOrganizationRequest true "Fields to update"
// @Success      200 {object} APIResponse[partnerapp.OrganizationResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /organizations/{id} [put]
func (h *OrganizationHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid organization ID")
		return
	}

	var req partnerapp.UpdateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.partnerService.Update(c.Request.Context(), getActor(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// AttachDocument godoc
// @ID           attachOrganizationDocument
// @Summary      Attach a verification document
// @Description  Register an object key previously uploaded through the presigned upload flow
// @Tags         organizations
// @Accept       json
// @Produce      json
// @Param        id path string true "Organization ID"
// @Param        request body partnerapp.AttachDocumentRequest true "Uploaded document"
// @Success      200 {object} APIResponse[partnerapp.OrganizationResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /organizations/{id}/documents [post]
func (h *OrganizationHandler) AttachDocument(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid organization ID")
		return
	}

	var req partnerapp.AttachDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.partnerService.AttachDocument(c.Request.Context(), getActor(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Verify godoc
// @ID           verifyOrganization
// @Summary      Verify an organization
// @Description  Admin-only. Marks the organization as verified so it can claim donations.
// @Tags         organizations
// @Produce      json
// @Param        id path string true "Organization ID"
// @Success      200 {object} APIResponse[partnerapp.OrganizationResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /organizations/{id}/verify [post]
func (h *OrganizationHandler) Verify(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid organization ID")
		return
	}

	resp, err := h.partnerService.Verify(c.Request.Context(), getActor(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// RecordStorage godoc
// @ID           recordOrganizationStorage
// @Summary      Record a storage level change
// @Description  Apply a positive or negative delta to the organization's current storage; the result is clamped to capacity
// @Tags         organizations
// @Accept       json
// @Produce      json
// @Param        id path string true "Organization ID"
// @Param        request body RecordStorageRequest true "Storage delta"
// @Success      200 {object} APIResponse[partnerapp.OrganizationResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /organizations/{id}/storage [post]
func (h *OrganizationHandler) RecordStorage(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid organization ID")
		return
	}

	var req RecordStorageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.partnerService.RecordStorage(c.Request.Context(), getActor(c), id, req.Delta)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// RegisterRoutes registers organization routes
func (h *OrganizationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	organizations := rg.Group("/organizations")
	{
		organizations.POST("", h.Create)
		organizations.GET("", h.List)
		organizations.GET("/:id", h.Get)
		organizations.PUT("/:id", h.Update)
		organizations.POST("/:id/documents", h.AttachDocument)
		organizations.POST("/:id/verify", h.Verify)
		organizations.POST("/:id/storage", h.RecordStorage)
	}
}
