package handler

import "github.com/gin-gonic/gin"

// RegisterRoutes registers the budget endpoints
func (h *BudgetHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/budgets", h.Create)
	rg.PUT("/budgets/:id/status", h.UpdateStatus)
	rg.PUT("/budgets/:id/amount", h.UpdateAmount)
	rg.DELETE("/budgets/:id", h.Delete)
	rg.GET("/projects/:id/budget", h.GetTree)
}

// RegisterRoutes registers the phase endpoints
func (h *PhaseHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/phases", h.Create)
	rg.PUT("/phases/:id", h.Update)
	rg.DELETE("/phases/:id", h.Delete)
	rg.GET("/budgets/:id/phases", h.List)
}

// RegisterRoutes registers the installment endpoints
func (h *InstallmentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/installments", h.CreateBatch)
	rg.POST("/installments/even", h.CreateEven)
	rg.POST("/installments/single", h.CreateSingle)
	rg.PUT("/installments/:id", h.Edit)
	rg.POST("/installments/:id/pay", h.MarkPaid)
	rg.DELETE("/installments/:id", h.Delete)
	rg.GET("/phases/:id/installments", h.List)
	rg.DELETE("/phases/:id/installments", h.DeleteAllForPhase)
	rg.POST("/budgets/:id/installments/refresh-overdue", h.RefreshOverdue)
}

// RegisterRoutes registers the addendum endpoints
func (h *AddendumHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/addenda", h.Add)
	rg.DELETE("/addenda/:id", h.Remove)
	rg.GET("/budgets/:id/addenda", h.List)
	rg.DELETE("/budgets/:id/addenda", h.RemoveAllForBudget)
}

// RegisterRoutes registers the reporting and expense endpoints
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/reports/pnl", h.GetPnL)
	rg.POST("/ledger/income", h.AddManualIncome)
	rg.GET("/budgets/:id/ledger", h.ListLedgerEntries)
	rg.POST("/expenses", h.CreateExpense)
	rg.GET("/expenses", h.ListExpenses)
	rg.DELETE("/expenses/:id", h.DeleteExpense)
}

// RegisterRoutes registers the system info endpoint
func (h *SystemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/system/info", h.Info)
}

// RegisterRootRoutes registers probes directly on the engine so they
// stay outside the versioned API group
func (h *SystemHandler) RegisterRootRoutes(engine *gin.Engine) {
	engine.GET("/health", h.Health)
	engine.GET("/ready", h.Ready)
}
