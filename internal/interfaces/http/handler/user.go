package handler

import (
	identityapp "github.com/foodbridge/backend/internal/application/identity"
	"github.com/gin-gonic/gin"
)

// UserHandler handles user administration HTTP requests
type UserHandler struct {
	BaseHandler
	userService *identityapp.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *identityapp.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// AttachAadharRequest registers an uploaded aadhar document on the current user
// @Description Request body for attaching an uploaded aadhar document
type AttachAadharRequest struct {
	ObjectKey string `json:"object_key" binding:"required,min=1,max=500"`
}

// List godoc
// @ID           listUsers
// @Summary      List user accounts
// @Description  Admin-only listing of user accounts
// @Tags         users
// @Produce      json
// @Param        role query string false "Filter by role" Enums(donor, admin)
// @Param        status query string false "Filter by status" Enums(active, locked, deactivated)
// @Param        is_verified query bool false "Filter by verification state"
// @Param        search query string false "Search in name and email"
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Success      200 {object} APIResponse[[]identityapp.UserResponse]
// @Failure      403 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /users [get]
func (h *UserHandler) List(c *gin.Context) {
	var filter identityapp.UserListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.userService.List(c.Request.Context(), getActor(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Get godoc
// @ID           getUser
// @Summary      Get a user account by ID
// @Description  Admins may look up anyone; other users only themselves
// @Tags         users
// @Produce      json
// @Param        id path string true "User ID"
// @Success      200 {object} APIResponse[identityapp.UserResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /users/{id} [get]
func (h *UserHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	resp, err := h.userService.GetByID(c.Request.Context(), getActor(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Verify godoc
// @ID           verifyUser
// @Summary      Verify a user account
// @Description  Admin-only. Marks the account as identity-verified.
// @Tags         users
// @Produce      json
// @Param        id path string true "User ID"
// @Success      200 {object} APIResponse[identityapp.UserResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /users/{id}/verify [post]
func (h *UserHandler) Verify(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	resp, err := h.userService.Verify(c.Request.Context(), getActor(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Promote godoc
// @ID           promoteUser
// @Summary      Promote a user to admin
// @Description  Admin-only
// @Tags         users
// @Produce      json
// @Param        id path string true "User ID"
// @Success      200 {object} APIResponse[identityapp.UserResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /users/{id}/promote [post]
func (h *UserHandler) Promote(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	resp, err := h.userService.Promote(c.Request.Context(), getActor(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Deactivate godoc
// @ID           deactivateUser
// @Summary      Deactivate a user account
// @Description  Admin-only. A deactivated account can no longer log in.
// @Tags         users
// @Produce      json
// @Param        id path string true "User ID"
// @Success      204
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /users/{id} [delete]
func (h *UserHandler) Deactivate(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	if err := h.userService.Deactivate(c.Request.Context(), getActor(c), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// AttachAadharDocument godoc
// @ID           attachAadharDocument
// @Summary      Attach an aadhar document to the current user
// @Description  Register an object key previously uploaded through the presigned upload flow
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body AttachAadharRequest true "Uploaded object key"
// @Success      200 {object} APIResponse[identityapp.UserResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /users/me/aadhar-document [post]
func (h *UserHandler) AttachAadharDocument(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req AttachAadharRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.userService.AttachAadharDocument(c.Request.Context(), userID, req.ObjectKey)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// RegisterRoutes registers user administration routes
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	{
		users.GET("", h.List)
		users.POST("/me/aadhar-document", h.AttachAadharDocument)
		users.GET("/:id", h.Get)
		users.POST("/:id/verify", h.Verify)
		users.POST("/:id/promote", h.Promote)
		users.DELETE("/:id", h.Deactivate)
	}
}
