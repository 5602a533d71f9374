package handler

import (
	donationapp "github.com/foodbridge/backend/internal/application/donation"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// DonationHandler handles food donation HTTP requests
type DonationHandler struct {
	BaseHandler
	donationService *donationapp.Service
}

// NewDonationHandler creates a new donation handler
func NewDonationHandler(donationService *donationapp.Service) *DonationHandler {
	return &DonationHandler{
		donationService: donationService,
	}
}

// ListDonationsQuery represents donation listing query parameters
// @Description Query parameters for listing donations
type ListDonationsQuery struct {
	Status   string `form:"status" binding:"omitempty,oneof=available reserved collected completed delivered"`
	DonorID  string `form:"donor_id" binding:"omitempty,uuid"`
	City     string `form:"city"`
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// AttachImageRequest registers an uploaded image on a donation
// @Description Request body for attaching an uploaded image
type AttachImageRequest struct {
	ObjectKey string `json:"object_key" binding:"required,min=1,max=500"`
}

// Create godoc
// @ID           createDonation
// @Summary      List a new food donation
// @Description  Create a donation offer; it becomes visible to organizations as available
// @Tags         donations
// @Accept       json
// @Produce      json
// @Param        request body donationapp.CreateDonationRequest true "Donation details"
// @Success      201 {object} APIResponse[donationapp.DonationResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /donations [post]
func (h *DonationHandler) Create(c *gin.Context) {
	donorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req donationapp.CreateDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.donationService.Create(c.Request.Context(), donorID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// Get godoc
// @ID           getDonation
// @Summary      Get a donation by ID
// @Tags         donations
// @Produce      json
// @Param        id path string true "Donation ID"
// @Success      200 {object} APIResponse[donationapp.DonationResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /donations/{id} [get]
func (h *DonationHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid donation ID")
		return
	}

	resp, err := h.donationService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List godoc
// @ID           listDonations
// @Summary      List donations
// @Description  List donations with optional status, donor, city and text filters
// @Tags         donations
// @Produce      json
// @Param        status query string false "Filter by status" Enums(available, reserved, collected, completed, delivered)
// @Param        donor_id query string false "Filter by donor"
// @Param        city query string false "Filter by pickup city"
// @Param        search query string false "Search in title and description"
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Success      200 {object} APIResponse[[]donationapp.DonationResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /donations [get]
func (h *DonationHandler) List(c *gin.Context) {
	var query ListDonationsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := donationapp.DonationListFilter{
		Status:   query.Status,
		City:     query.City,
		Search:   query.Search,
		Page:     query.Page,
		PageSize: query.PageSize,
	}
	if query.DonorID != "" {
		donorID, err := uuid.Parse(query.DonorID)
		if err != nil {
			h.BadRequest(c, "Invalid donor ID")
			return
		}
		filter.DonorID = &donorID
	}

	items, total, err := h.donationService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page, pageSize := filter.Page, filter.PageSize
	if page == 0 {
		page = 1
	}
	if pageSize == 0 {
		pageSize = 20
	}
	h.SuccessWithMeta(c, items, total, page, pageSize)
}

// ListMine godoc
// @ID           listMyDonations
// @Summary      List the current donor's donations
// @Tags         donations
// @Produce      json
// @Param        status query string false "Filter by status" Enums(available, reserved, collected, completed, delivered)
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Success      200 {object} APIResponse[[]donationapp.DonationResponse]
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /donations/mine [get]
func (h *DonationHandler) ListMine(c *gin.Context) {
	donorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var query ListDonationsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := donationapp.DonationListFilter{
		Status:   query.Status,
		Search:   query.Search,
		Page:     query.Page,
		PageSize: query.PageSize,
		DonorID:  &donorID,
	}

	items, total, err := h.donationService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page, pageSize := filter.Page, filter.PageSize
	if page == 0 {
		page = 1
	}
	if pageSize == 0 {
		pageSize = 20
	}
	h.SuccessWithMeta(c, items, total, page, pageSize)
}

// Update godoc
// @ID           updateDonation
// @Summary      Update a donation
// @Description  Update descriptive fields; only the owning donor or an admin may update, and only while the donation is available
// @Tags         donations
// @Accept       json
// @Produce      json
// @Param        id path string true "Donation ID"
// @Param        request body donationapp.UpdateDonationRequest true "Fields to update"
// @Success      200 {object} APIResponse[donationapp.DonationResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /donations/{id} [put]
func (h *DonationHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid donation ID")
		return
	}

	var req donationapp.UpdateDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.donationService.Update(c.Request.Context(), id, getActor(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Delete godoc
// @ID           deleteDonation
// @Summary      Delete a donation
// @Description  Delete a donation; refused with 409 while an active transaction holds it
// @Tags         donations
// @Produce      json
// @Param        id path string true "Donation ID"
// @Success      204
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /donations/{id} [delete]
func (h *DonationHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid donation ID")
		return
	}

	if err := h.donationService.Delete(c.Request.Context(), id, getActor(c)); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// ConfirmDelivered godoc
// @ID           confirmDonationDelivered
// @Summary      Confirm delivery of a completed donation
// @Description  The donor's final confirmation that the completed donation reached the organization
// @Tags         donations
// @Produce      json
// @Param        id path string true "Donation ID"
// @Success      200 {object} APIResponse[donationapp.DonationResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /donations/{id}/delivered [post]
func (h *DonationHandler) ConfirmDelivered(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid donation ID")
		return
	}

	resp, err := h.donationService.ConfirmDelivered(c.Request.Context(), id, getActor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// AttachImage godoc
// @ID           attachDonationImage
// @Summary      Attach an uploaded image to a donation
// @Description  Register an object key previously uploaded through the presigned upload flow
// @Tags         donations
// @Accept       json
// @Produce      json
// @Param        id path string true "Donation ID"
// @Param        request body AttachImageRequest true "Uploaded object key"
// @Success      200 {object} APIResponse[donationapp.DonationResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /donations/{id}/images [post]
func (h *DonationHandler) AttachImage(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid donation ID")
		return
	}

	var req AttachImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.donationService.AttachImage(c.Request.Context(), id, getActor(c), req.ObjectKey)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// RegisterRoutes registers donation routes
func (h *DonationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	donations := rg.Group("/donations")
	{
		donations.POST("", h.Create)
		donations.GET("", h.List)
		donations.GET("/mine", h.ListMine)
		donations.GET("/:id", h.Get)
		donations.PUT("/:id", h.Update)
		donations.DELETE("/:id", h.Delete)
		donations.POST("/:id/delivered", h.ConfirmDelivered)
		donations.POST("/:id/images", h.AttachImage)
	}
}
