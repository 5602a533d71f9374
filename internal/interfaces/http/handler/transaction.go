package handler

import (
	fulfillmentapp "github.com/foodbridge/backend/internal/application/fulfillment"
	"github.com/gin-gonic/gin"
)

// TransactionHandler handles donation transaction HTTP requests
type TransactionHandler struct {
	BaseHandler
	lifecycle *fulfillmentapp.LifecycleService
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(lifecycle *fulfillmentapp.LifecycleService) *TransactionHandler {
	return &TransactionHandler{
		lifecycle: lifecycle,
	}
}

// Claim godoc
// @ID           claimDonation
// @Summary      Claim an available donation
// @Description  Open a transaction for the donation and reserve it. Of two concurrent claims exactly one succeeds; the loser gets 409.
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Param        request body fulfillmentapp.ClaimRequest true "Claim details"
// @Success      201 {object} APIResponse[fulfillmentapp.TransactionResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /transactions [post]
func (h *TransactionHandler) Claim(c *gin.Context) {
	var req fulfillmentapp.ClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.lifecycle.Claim(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// Get godoc
// @ID           getTransaction
// @Summary      Get a transaction by ID
// @Tags         transactions
// @Produce      json
// @Param        id path string true "Transaction ID"
// @Success      200 {object} APIResponse[fulfillmentapp.TransactionResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /transactions/{id} [get]
func (h *TransactionHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid transaction ID")
		return
	}

	resp, err := h.lifecycle.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// UpdateStatus godoc
// @ID           updateTransactionStatus
// @Summary      Advance or cancel a transaction
// @Description  Move the transaction to accepted, collected or completed, or cancel it. Completion marks the donation completed; cancellation reverts the donation to available. Both cascades are atomic with the transaction update.
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Param        id path string true "Transaction ID"
// @Param        request body fulfillmentapp.UpdateStatusRequest true "Target status"
// @Success      200 {object} APIResponse[fulfillmentapp.TransactionResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /transactions/{id}/status [patch]
func (h *TransactionHandler) UpdateStatus(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid transaction ID")
		return
	}

	var req fulfillmentapp.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.lifecycle.UpdateStatus(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// GiveFeedback godoc
// @ID           giveTransactionFeedback
// @Summary      Rate a completed transaction
// @Description  Attach or replace the organization's post-completion rating. Only completed transactions accept feedback.
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Param        id path string true "Transaction ID"
// @Param        request body fulfillmentapp.FeedbackInput true "Rating and optional comment"
// @Success      200 {object} APIResponse[fulfillmentapp.TransactionResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /transactions/{id}/feedback [post]
func (h *TransactionHandler) GiveFeedback(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid transaction ID")
		return
	}

	var req fulfillmentapp.FeedbackInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.lifecycle.GiveFeedback(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// ListMine godoc
// @ID           listMyTransactions
// @Summary      List transactions where the current user is the donor
// @Tags         transactions
// @Produce      json
// @Param        status query string false "Filter by status" Enums(pending, accepted, collected, completed, cancelled)
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Success      200 {object} APIResponse[[]fulfillmentapp.TransactionResponse]
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /transactions/mine [get]
func (h *TransactionHandler) ListMine(c *gin.Context) {
	donorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter fulfillmentapp.TransactionListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	items, err := h.lifecycle.ListByDonor(c.Request.Context(), donorID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, items)
}

// ListByOrganization godoc
// @ID           listOrganizationTransactions
// @Summary      List transactions for an organization
// @Tags         transactions
// @Produce      json
// @Param        id path string true "Organization ID"
// @Param        status query string false "Filter by status" Enums(pending, accepted, collected, completed, cancelled)
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Success      200 {object} APIResponse[[]fulfillmentapp.TransactionResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /organizations/{id}/transactions [get]
func (h *TransactionHandler) ListByOrganization(c *gin.Context) {
	orgID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid organization ID")
		return
	}

	var filter fulfillmentapp.TransactionListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	items, err := h.lifecycle.ListByOrganization(c.Request.Context(), orgID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, items)
}

// RegisterRoutes registers transaction routes
func (h *TransactionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	transactions := rg.Group("/transactions")
	{
		transactions.POST("", h.Claim)
		transactions.GET("/mine", h.ListMine)
		transactions.GET("/:id", h.Get)
		transactions.PATCH("/:id/status", h.UpdateStatus)
		transactions.POST("/:id/feedback", h.GiveFeedback)
	}
	rg.GET("/organizations/:id/transactions", h.ListByOrganization)
}
