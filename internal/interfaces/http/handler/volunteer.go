package handler

import (
	volunteerapp "github.com/foodbridge/backend/internal/application/volunteer"
	"github.com/gin-gonic/gin"
)

// VolunteerHandler handles volunteer HTTP requests
type VolunteerHandler struct {
	BaseHandler
	volunteerService *volunteerapp.Service
}

// NewVolunteerHandler creates a new volunteer handler
func NewVolunteerHandler(volunteerService *volunteerapp.Service) *VolunteerHandler {
	return &VolunteerHandler{
		volunteerService: volunteerService,
	}
}

// ChangeStatusRequest represents a volunteer status change
// @Description Request body for changing a volunteer's status
type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active inactive suspended"`
}

// AddReviewRequest represents a review of a volunteer
// @Description Request body for reviewing a volunteer
type AddReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"max=1000"`
}

// Register godoc
// @ID           registerVolunteer
// @Summary      Register as a volunteer
// @Description  Create a volunteer profile for the current user
// @Tags         volunteers
// @Accept       json
// @Produce      json
// @Param        request body volunteerapp.RegisterVolunteerRequest true "Volunteer details"
// @Success      201 {object} APIResponse[volunteerapp.VolunteerResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /volunteers [post]
func (h *VolunteerHandler) Register(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req volunteerapp.RegisterVolunteerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.volunteerService.Register(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// Me godoc
// @ID           getMyVolunteerProfile
// @Summary      Get the current user's volunteer profile
// @Tags         volunteers
// @Produce      json
// @Success      200 {object} APIResponse[volunteerapp.VolunteerResponse]
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /volunteers/me [get]
func (h *VolunteerHandler) Me(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	resp, err := h.volunteerService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Get godoc
// @ID           getVolunteer
// @Summary      Get a volunteer by ID
// @Tags         volunteers
// @Produce      json
// @Param        id path string true "Volunteer ID"
// @Success      200 {object} APIResponse[volunteerapp.VolunteerResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /volunteers/{id} [get]
func (h *VolunteerHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid volunteer ID")
		return
	}

	resp, err := h.volunteerService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List godoc
// @ID           listVolunteers
// @Summary      List volunteers
// @Tags         volunteers
// @Produce      json
// @Param        status query string false "Filter by status" Enums(active, inactive, suspended)
// @Param        availability query string false "Filter by availability" Enums(full-time, part-time, weekends)
// @Param        city query string false "Filter by city"
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Success      200 {object} APIResponse[[]volunteerapp.VolunteerResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /volunteers [get]
func (h *VolunteerHandler) List(c *gin.Context) {
	var filter volunteerapp.VolunteerListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.volunteerService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// UpdateProfile godoc
// @ID           updateVolunteerProfile
// @Summary      Update a volunteer profile
// @Description  Update contact and availability details; only the owning volunteer or an admin
// @Tags         volunteers
// @Accept       json
// @Produce      json
// @Param        id path string true "Volunteer ID"
// @Param        request body volunteerapp.UpdateProfileRequest true "Profile update"
// @Success      200 {object} APIResponse[volunteerapp.VolunteerResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /volunteers/{id} [put]
func (h *VolunteerHandler) UpdateProfile(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid volunteer ID")
		return
	}

	var req volunteerapp.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.volunteerService.UpdateProfile(c.Request.Context(), getActor(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// AssignTask godoc
// @ID           assignVolunteerTask
// @Summary      Assign a pickup task to a volunteer
// @Description  Admin-only. Adds the donation to the volunteer's assigned task board.
// @Tags         volunteers
// @Accept       json
// @Produce      json
// @Param        id path string true "Volunteer ID"
// @Param        request body volunteerapp.TaskRequest true "Donation to assign"
// @Success      200 {object} APIResponse[volunteerapp.VolunteerResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /volunteers/{id}/tasks [post]
func (h *VolunteerHandler) AssignTask(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid volunteer ID")
		return
	}

	var req volunteerapp.TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.volunteerService.AssignTask(c.Request.Context(), getActor(c), id, req.DonationID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// CompleteTask godoc
// @ID           completeVolunteerTask
// @Summary      Mark an assigned task as completed
// @Description  Only the owning volunteer may complete their own task; admins are excluded.
// @Tags         volunteers
// @Produce      json
// @Param        id path string true "Volunteer ID"
// @Param        donationId path string true "Donation ID"
// @Success      200 {object} APIResponse[volunteerapp.VolunteerResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /volunteers/{id}/tasks/{donationId}/complete [post]
func (h *VolunteerHandler) CompleteTask(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid volunteer ID")
		return
	}
	donationID, err := parseIDParam(c, "donationId")
	if err != nil {
		h.BadRequest(c, "Invalid donation ID")
		return
	}

	resp, err := h.volunteerService.CompleteTask(c.Request.Context(), getActor(c), id, donationID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// ChangeStatus godoc
// @ID           changeVolunteerStatus
// @Summary      Change a volunteer's status
// @Description  Suspension is admin-only; volunteers may switch themselves between active and inactive
// @Tags         volunteers
// @Accept       json
// @Produce      json
// @Param        id path string true "Volunteer ID"
// @Param        request body ChangeStatusRequest true "Target status"
// @Success      200 {object} APIResponse[volunteerapp.VolunteerResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /volunteers/{id}/status [patch]
func (h *VolunteerHandler) ChangeStatus(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid volunteer ID")
		return
	}

	var req ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.volunteerService.ChangeStatus(c.Request.Context(), getActor(c), id, req.Status)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// AddReview godoc
// @ID           reviewVolunteer
// @Summary      Review a volunteer
// @Description  Record a rating for a volunteer; the volunteer's aggregate rating is recomputed
// @Tags         volunteers
// @Accept       json
// @Produce      json
// @Param        id path string true "Volunteer ID"
// @Param        request body AddReviewRequest true "Review"
// @Success      200 {object} APIResponse[volunteerapp.VolunteerResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /volunteers/{id}/reviews [post]
func (h *VolunteerHandler) AddReview(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid volunteer ID")
		return
	}

	reviewerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req AddReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.volunteerService.AddReview(c.Request.Context(), reviewerID, id, req.Rating, req.Comment)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// RegisterRoutes registers volunteer routes
func (h *VolunteerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	volunteers := rg.Group("/volunteers")
	{
		volunteers.POST("", h.Register)
		volunteers.GET("", h.List)
		volunteers.GET("/me", h.Me)
		volunteers.GET("/:id", h.Get)
		volunteers.PUT("/:id", h.UpdateProfile)
		volunteers.POST("/:id/tasks", h.AssignTask)
		volunteers.POST("/:id/tasks/:donationId/complete", h.CompleteTask)
		volunteers.PATCH("/:id/status", h.ChangeStatus)
		volunteers.POST("/:id/reviews", h.AddReview)
	}
}
