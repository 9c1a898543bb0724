package handler

import (
	appbudget "github.com/Whapy-Dev/Whapy-CRM-sub000/internal/application/budget"
	"github.com/gin-gonic/gin"
)

// InstallmentHandler handles installment-related API endpoints
type InstallmentHandler struct {
	BaseHandler
	service *appbudget.InstallmentService
}

// NewInstallmentHandler creates a new InstallmentHandler
func NewInstallmentHandler(service *appbudget.InstallmentService) *InstallmentHandler {
	return &InstallmentHandler{service: service}
}

// CreateBatch handles POST /installments and appends the given explicit
// amounts after the phase's existing installment sequence
func (h *InstallmentHandler) CreateBatch(c *gin.Context) {
	var req appbudget.CreateInstallmentsRequest
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

	resp, err := h.service.CreateInstallments(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// CreateEven handles POST /installments/even and splits a total into
// equal installments
func (h *InstallmentHandler) CreateEven(c *gin.Context) {
	var req appbudget.CreateEvenInstallmentsRequest
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

	resp, err := h.service.CreateEvenInstallments(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// CreateSingle handles POST /installments/single and appends one
// installment to a phase's existing plan
func (h *InstallmentHandler) CreateSingle(c *gin.Context) {
	var req appbudget.CreateSingleInstallmentRequest
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

	resp, err := h.service.CreateSingleInstallment(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// List handles GET /phases/:id/installments
func (h *InstallmentHandler) List(c *gin.Context) {
	phaseID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid phase ID")
		return
	}

	resp, err := h.service.ListInstallments(c.Request.Context(), phaseID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Edit handles PUT /installments/:id
func (h *InstallmentHandler) Edit(c *gin.Context) {
	installmentID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid installment ID")
		return
	}

	var req appbudget.EditInstallmentRequest
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

	resp, err := h.service.EditInstallment(c.Request.Context(), installmentID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// MarkPaid handles POST /installments/:id/pay. The request is
// multipart/form-data with an optional "invoice" file part.
func (h *InstallmentHandler) MarkPaid(c *gin.Context) {
	installmentID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid installment ID")
		return
	}

	actorID, err := getActorID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	req := appbudget.MarkPaidRequest{ActorID: actorID}

	fileHeader, err := c.FormFile("invoice")
	if err == nil && fileHeader != nil {
		file, err := fileHeader.Open()
		if err != nil {
			h.BadRequest(c, "Cannot read invoice file")
			return
		}
		defer file.Close()

		req.Invoice = &appbudget.InvoiceUpload{
			Filename:    fileHeader.Filename,
			ContentType: fileHeader.Header.Get("Content-Type"),
			Content:     file,
		}
	}

	resp, err := h.service.MarkPaid(c.Request.Context(), installmentID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Delete handles DELETE /installments/:id
func (h *InstallmentHandler) Delete(c *gin.Context) {
	installmentID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid installment ID")
		return
	}

	actorID, err := getActorID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	if err := h.service.DeleteInstallment(c.Request.Context(), installmentID, actorID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// DeleteAllForPhase handles DELETE /phases/:id/installments
func (h *InstallmentHandler) DeleteAllForPhase(c *gin.Context) {
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

	if err := h.service.DeleteAllForPhase(c.Request.Context(), phaseID, actorID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// RefreshOverdue handles POST /budgets/:id/installments/refresh-overdue
// and flags pending installments whose due date has passed
func (h *InstallmentHandler) RefreshOverdue(c *gin.Context) {
	budgetID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid budget ID")
		return
	}

	count, err := h.service.RefreshOverdue(c.Request.Context(), budgetID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"updated": count})
}
