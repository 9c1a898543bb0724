package handler

import (
	appbudget "github.com/Whapy-Dev/Whapy-CRM-sub000/internal/application/budget"
	"github.com/gin-gonic/gin"
)

// PhaseHandler handles phase-related API endpoints
type PhaseHandler struct {
	BaseHandler
	service *appbudget.PhaseService
}

// NewPhaseHandler creates a new PhaseHandler
func NewPhaseHandler(service *appbudget.PhaseService) *PhaseHandler {
	return &PhaseHandler{service: service}
}

// Create handles POST /phases
func (h *PhaseHandler) Create(c *gin.Context) {
	var req appbudget.CreatePhaseRequest
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

	resp, err := h.service.CreatePhase(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// List handles GET /budgets/:id/phases
func (h *PhaseHandler) List(c *gin.Context) {
	budgetID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid budget ID")
		return
	}

	resp, err := h.service.ListPhases(c.Request.Context(), budgetID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Update handles PUT /phases/:id
func (h *PhaseHandler) Update(c *gin.Context) {
	phaseID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid phase ID")
		return
	}

	var req appbudget.UpdatePhaseRequest
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

	resp, err := h.service.UpdatePhase(c.Request.Context(), phaseID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Delete handles DELETE /phases/:id
func (h *PhaseHandler) Delete(c *gin.Context) {
	phaseID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid phase ID")
		return
	}

	actorID, err := getActorID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	if err := h.service.DeletePhase(c.Request.Context(), phaseID, actorID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
