package handler

import (
	appbudget "github.com/Whapy-Dev/Whapy-CRM-sub000/internal/application/budget"
	"github.com/gin-gonic/gin"
)

// BudgetHandler handles budget-related API endpoints
type BudgetHandler struct {
	BaseHandler
	service *appbudget.BudgetService
}

// NewBudgetHandler creates a new BudgetHandler
func NewBudgetHandler(service *appbudget.BudgetService) *BudgetHandler {
	return &BudgetHandler{service: service}
}

// Create handles POST /budgets
func (h *BudgetHandler) Create(c *gin.Context) {
	var req appbudget.CreateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	actorID, err := getActorID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	req.ActorID = actorID

	resp, err := h.service.CreateBudget(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// GetTree handles GET /projects/:id/budget and returns the full
// budget hierarchy for a project
func (h *BudgetHandler) GetTree(c *gin.Context) {
	projectID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid project ID")
		return
	}

	resp, err := h.service.GetBudgetTree(c.Request.Context(), projectID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// UpdateStatus handles PUT /budgets/:id/status
func (h *BudgetHandler) UpdateStatus(c *gin.Context) {
	budgetID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid budget ID")
		return
	}

	var req appbudget.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	actorID, err := getActorID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	req.ActorID = actorID

	resp, err := h.service.UpdateStatus(c.Request.Context(), budgetID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// UpdateAmount handles PUT /budgets/:id/amount
func (h *BudgetHandler) UpdateAmount(c *gin.Context) {
	budgetID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid budget ID")
		return
	}

	var req appbudget.UpdateAmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	actorID, err := getActorID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	req.ActorID = actorID

	resp, err := h.service.UpdateAmount(c.Request.Context(), budgetID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Delete handles DELETE /budgets/:id and cascades to phases,
// installments, addenda and reviewer assignments
func (h *BudgetHandler) Delete(c *gin.Context) {
	budgetID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid budget ID")
		return
	}

	actorID, err := getActorID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	if err := h.service.DeleteBudget(c.Request.Context(), budgetID, actorID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
