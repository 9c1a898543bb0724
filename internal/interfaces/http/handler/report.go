package handler

import (
	"github.com/Whapy-Dev/Whapy-CRM-sub000/internal/application/report"
	"github.com/gin-gonic/gin"
)

// ReportHandler handles P&L and ledger related API endpoints
type ReportHandler struct {
	BaseHandler
	service *report.PnLService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(service *report.PnLService) *ReportHandler {
	return &ReportHandler{service: service}
}

// GetPnL handles GET /reports/pnl. Either budget_id or project_id must
// be given; from and to bound the reporting window.
func (h *ReportHandler) GetPnL(c *gin.Context) {
	var q report.PnLQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.service.GetPnL(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// AddManualIncome handles POST /ledger/income
func (h *ReportHandler) AddManualIncome(c *gin.Context) {
	var req report.AddManualIncomeRequest
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

	resp, err := h.service.AddManualIncome(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// ListLedgerEntries handles GET /budgets/:id/ledger
func (h *ReportHandler) ListLedgerEntries(c *gin.Context) {
	budgetID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid budget ID")
		return
	}

	resp, err := h.service.ListLedgerEntries(c.Request.Context(), budgetID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// CreateExpense handles POST /expenses
func (h *ReportHandler) CreateExpense(c *gin.Context) {
	var req report.CreateExpenseRequest
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

	resp, err := h.service.CreateExpense(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// ListExpenses handles GET /expenses
func (h *ReportHandler) ListExpenses(c *gin.Context) {
	var q report.ExpenseListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.service.ListExpenses(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// DeleteExpense handles DELETE /expenses/:id
func (h *ReportHandler) DeleteExpense(c *gin.Context) {
	expenseID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid expense ID")
		return
	}

	actorID, err := getActorID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	if err := h.service.DeleteExpense(c.Request.Context(), expenseID, actorID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
