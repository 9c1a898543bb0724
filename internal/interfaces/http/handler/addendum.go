package handler

import (
	appbudget "github.com/Whapy-Dev/Whapy-CRM-sub000/internal/application/budget"
	"github.com/gin-gonic/gin"
)

// AddendumHandler handles addendum-related API endpoints
type AddendumHandler struct {
	BaseHandler
	service *appbudget.AddendumService
}

// NewAddendumHandler creates a new AddendumHandler
func NewAddendumHandler(service *appbudget.AddendumService) *AddendumHandler {
	return &AddendumHandler{service: service}
}

// Add handles POST /addenda
func (h *AddendumHandler) Add(c *gin.Context) {
	var req appbudget.AddAddendumRequest
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

	resp, err := h.service.AddAddendum(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// List handles GET /budgets/:id/addenda
func (h *AddendumHandler) List(c *gin.Context) {
	budgetID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid budget ID")
		return
	}

	resp, err := h.service.ListAddenda(c.Request.Context(), budgetID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Remove handles DELETE /addenda/:id
func (h *AddendumHandler) Remove(c *gin.Context) {
	addendumID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid addendum ID")
		return
	}

	actorID, err := getActorID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	if err := h.service.RemoveAddendum(c.Request.Context(), addendumID, actorID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// RemoveAllForBudget handles DELETE /budgets/:id/addenda
func (h *AddendumHandler) RemoveAllForBudget(c *gin.Context) {
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

	if err := h.service.RemoveAllForBudget(c.Request.Context(), budgetID, actorID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
