package budget

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/Whapy-Dev/Whapy-CRM-sub000/internal/domain/budget"
	"github.com/Whapy-Dev/Whapy-CRM-sub000/internal/domain/ledger"
	"github.com/Whapy-Dev/Whapy-CRM-sub000/internal/domain/shared"
	"github.com/Whapy-Dev/Whapy-CRM-sub000/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// InvoiceStorage stores invoice files and deletes them by reference.
// References are opaque bucket/key pairs.
type InvoiceStorage interface {
	Store(ctx context.Context, key string, content io.Reader, contentType string) (valueobject.AttachmentRef, error)
	Delete(ctx context.Context, ref valueobject.AttachmentRef) error
}

const (
	// attachmentTimeout bounds every attachment-store call; on expiry the
	// whole operation fails closed with no state mutation
	attachmentTimeout = 30 * time.Second

	// markPaidGuardTTL is how long a MarkPaid submission key blocks
	// duplicate submissions for the same installment
	markPaidGuardTTL = 10 * time.Minute
)

// InstallmentService provides application-level installment operations,
// including the payment flow that posts income ledger entries
type InstallmentService struct {
	installmentRepo budget.InstallmentRepository
	scope           TransactionScope
	storage         InvoiceStorage
	idempotency     shared.IdempotencyStore
	logger          *zap.Logger
}

// NewInstallmentService creates a new InstallmentService
func NewInstallmentService(
	installmentRepo budget.InstallmentRepository,
	scope TransactionScope,
	storage InvoiceStorage,
	idempotency shared.IdempotencyStore,
	logger *zap.Logger,
) *InstallmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InstallmentService{
		installmentRepo: installmentRepo,
		scope:           scope,
		storage:         storage,
		idempotency:     idempotency,
		logger:          logger,
	}
}

// InstallmentItem is one installment to create within a batch
type InstallmentItem struct {
	Amount  decimal.Decimal `json:"amount" binding:"required"`
	DueDate *time.Time      `json:"due_date"`
}

// CreateInstallmentsRequest represents a request to create a batch of installments
type CreateInstallmentsRequest struct {
	PhaseID uuid.UUID         `json:"phase_id" binding:"required"`
	Items   []InstallmentItem `json:"items" binding:"required,min=1,dive"`
	ActorID uuid.UUID         `json:"-"`
}

// CreateEvenInstallmentsRequest represents a request to split a total into
// equal installments
type CreateEvenInstallmentsRequest struct {
	PhaseID  uuid.UUID       `json:"phase_id" binding:"required"`
	Total    decimal.Decimal `json:"total" binding:"required"`
	Count    int             `json:"count" binding:"required,min=1"`
	DueDates []time.Time     `json:"due_dates"`
	ActorID  uuid.UUID       `json:"-"`
}

// CreateSingleInstallmentRequest represents a request to append one installment
type CreateSingleInstallmentRequest struct {
	PhaseID uuid.UUID       `json:"phase_id" binding:"required"`
	Amount  decimal.Decimal `json:"amount" binding:"required"`
	DueDate *time.Time      `json:"due_date"`
	ActorID uuid.UUID       `json:"-"`
}

// EditInstallmentRequest represents a partial installment update
type EditInstallmentRequest struct {
	Amount  *decimal.Decimal `json:"amount"`
	DueDate *time.Time       `json:"due_date"`
	ActorID uuid.UUID        `json:"-"`
}

// InvoiceUpload carries the invoice file attached to a payment
type InvoiceUpload struct {
	Filename    string
	ContentType string
	Content     io.Reader
}

// MarkPaidRequest represents a request to pay an installment
type MarkPaidRequest struct {
	Invoice *InvoiceUpload
	ActorID uuid.UUID
}

// InstallmentResponse represents an installment in API responses
type InstallmentResponse struct {
	ID             uuid.UUID                 `json:"id"`
	PhaseID        uuid.UUID                 `json:"phase_id"`
	BudgetID       uuid.UUID                 `json:"budget_id"`
	Amount         decimal.Decimal           `json:"amount"`
	SequenceNumber int                       `json:"sequence_number"`
	Detail         string                    `json:"detail"`
	Status         string                    `json:"status"`
	Currency       string                    `json:"currency"`
	DueDate        *time.Time                `json:"due_date,omitempty"`
	InvoiceRef     valueobject.AttachmentRef `json:"invoice_ref,omitempty"`
	PaidAt         *time.Time                `json:"paid_at,omitempty"`
	CreatedAt      time.Time                 `json:"created_at"`
	UpdatedAt      time.Time                 `json:"updated_at"`
	Version        int                       `json:"version"`
}

func toInstallmentResponse(i *budget.Installment) *InstallmentResponse {
	return &InstallmentResponse{
		ID:             i.ID,
		PhaseID:        i.PhaseID,
		BudgetID:       i.BudgetID,
		Amount:         i.Amount,
		SequenceNumber: i.SequenceNumber,
		Detail:         i.Detail,
		Status:         i.Status.String(),
		Currency:       string(i.Currency),
		DueDate:        i.DueDate,
		InvoiceRef:     i.InvoiceRef,
		PaidAt:         i.PaidAt,
		CreatedAt:      i.CreatedAt,
		UpdatedAt:      i.UpdatedAt,
		Version:        i.Version,
	}
}

// CreateInstallments creates a batch of installments under a phase. The
// capacity check and the inserts run in one transaction holding the
// phase row lock.
func (s *InstallmentService) CreateInstallments(ctx context.Context, req CreateInstallmentsRequest) ([]InstallmentResponse, error) {
	if len(req.Items) == 0 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "At least one installment is required")
	}

	var created []*budget.Installment
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		p, err := repos.PhaseRepo().FindByIDForUpdate(ctx, req.PhaseID)
		if err != nil {
			return err
		}
		if p == nil {
			return shared.NewDomainError("NOT_FOUND", "Phase not found")
		}
		b, err := repos.BudgetRepo().FindByID(ctx, p.BudgetID)
		if err != nil {
			return err
		}
		if b == nil {
			return shared.NewDomainError("NOT_FOUND", "Budget not found")
		}

		scheduled, err := repos.InstallmentRepo().SumAmountByPhaseID(ctx, req.PhaseID, nil)
		if err != nil {
			return err
		}
		requested := decimal.Zero
		for _, item := range req.Items {
			requested = requested.Add(item.Amount)
		}
		available := p.Amount.Sub(scheduled)
		if requested.GreaterThan(available) {
			return shared.NewDomainError("ALLOCATION_EXCEEDED",
				fmt.Sprintf("Requested total %s exceeds the %s still available on the phase", requested.String(), available.String()))
		}

		maxSeq, err := repos.InstallmentRepo().MaxSequenceByPhaseID(ctx, req.PhaseID)
		if err != nil {
			return err
		}
		total := maxSeq + len(req.Items)

		created = make([]*budget.Installment, 0, len(req.Items))
		for idx, item := range req.Items {
			inst, err := budget.NewInstallment(req.ActorID, req.PhaseID, p.BudgetID, item.Amount, maxSeq+idx+1, total, b.Currency, item.DueDate)
			if err != nil {
				return err
			}
			created = append(created, inst)
		}
		if err := repos.InstallmentRepo().SaveBatch(ctx, created); err != nil {
			return err
		}
		return appendAudit(ctx, repos, req.ActorID, "installment.create_batch", "phase", req.PhaseID,
			fmt.Sprintf("count=%d total=%s", len(created), requested.String()))
	})
	if err != nil {
		return nil, err
	}

	responses := make([]InstallmentResponse, len(created))
	for i, inst := range created {
		responses[i] = *toInstallmentResponse(inst)
	}
	return responses, nil
}

// CreateEvenInstallments splits a total into count equal installments.
// The split uses largest-remainder allocation, so the parts always sum
// back to the requested total exactly.
func (s *InstallmentService) CreateEvenInstallments(ctx context.Context, req CreateEvenInstallmentsRequest) ([]InstallmentResponse, error) {
	if req.Count <= 0 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Installment count must be positive")
	}
	if req.Total.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Total amount must be positive")
	}
	if len(req.DueDates) != 0 && len(req.DueDates) != req.Count {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Due dates must be empty or match the installment count")
	}

	parts, err := valueobject.SplitEvenly(req.Total, req.Count)
	if err != nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", err.Error())
	}

	items := make([]InstallmentItem, req.Count)
	for i, part := range parts {
		items[i] = InstallmentItem{Amount: part}
		if len(req.DueDates) == req.Count {
			due := req.DueDates[i]
			items[i].DueDate = &due
		}
	}

	return s.CreateInstallments(ctx, CreateInstallmentsRequest{
		PhaseID: req.PhaseID,
		Items:   items,
		ActorID: req.ActorID,
	})
}

// CreateSingleInstallment appends one installment after the existing sequence
func (s *InstallmentService) CreateSingleInstallment(ctx context.Context, req CreateSingleInstallmentRequest) (*InstallmentResponse, error) {
	responses, err := s.CreateInstallments(ctx, CreateInstallmentsRequest{
		PhaseID: req.PhaseID,
		Items:   []InstallmentItem{{Amount: req.Amount, DueDate: req.DueDate}},
		ActorID: req.ActorID,
	})
	if err != nil {
		return nil, err
	}
	return &responses[0], nil
}

// EditInstallment applies a partial update to an unpaid installment.
// Amount changes are re-checked against the phase capacity under the
// phase row lock.
func (s *InstallmentService) EditInstallment(ctx context.Context, installmentID uuid.UUID, req EditInstallmentRequest) (*InstallmentResponse, error) {
	var inst *budget.Installment
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		inst, err = repos.InstallmentRepo().FindByID(ctx, installmentID)
		if err != nil {
			return err
		}
		if inst == nil {
			return shared.NewDomainError("NOT_FOUND", "Installment not found")
		}

		if req.Amount != nil {
			p, err := repos.PhaseRepo().FindByIDForUpdate(ctx, inst.PhaseID)
			if err != nil {
				return err
			}
			if p == nil {
				return shared.NewDomainError("NOT_FOUND", "Phase not found")
			}
			siblings, err := repos.InstallmentRepo().SumAmountByPhaseID(ctx, inst.PhaseID, &installmentID)
			if err != nil {
				return err
			}
			if siblings.Add(*req.Amount).GreaterThan(p.Amount) {
				return shared.NewDomainError("ALLOCATION_EXCEEDED",
					fmt.Sprintf("Installment amount %s exceeds the %s still available on the phase", req.Amount.String(), p.Amount.Sub(siblings).String()))
			}
		}

		if err := inst.Edit(req.Amount, req.DueDate); err != nil {
			return err
		}
		if err := repos.InstallmentRepo().Save(ctx, inst); err != nil {
			return err
		}
		return appendAudit(ctx, repos, req.ActorID, "installment.edit", "installment", inst.ID, "")
	})
	if err != nil {
		return nil, err
	}
	return toInstallmentResponse(inst), nil
}

// MarkPaid pays an installment. The transition is idempotent per
// installment and irreversible: re-invoking it on a paid installment
// returns the current state and never posts a second ledger entry.
//
// Sequence: duplicate-submission guard, then the optional invoice upload
// under a timeout, then one transaction covering the status change, the
// ledger entry and the audit entry. If the transaction fails after an
// upload, the uploaded object is deleted again.
func (s *InstallmentService) MarkPaid(ctx context.Context, installmentID uuid.UUID, req MarkPaidRequest) (*InstallmentResponse, error) {
	inst, err := s.installmentRepo.FindByID(ctx, installmentID)
	if err != nil {
		return nil, err
	}
	if inst == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Installment not found")
	}
	if inst.IsPaid() {
		return toInstallmentResponse(inst), nil
	}
	if !inst.Status.IsPayable() {
		return nil, shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot pay installment in %s status", inst.Status))
	}

	guardKey := "installment:mark-paid:" + installmentID.String()
	fresh, err := s.idempotency.MarkProcessed(ctx, guardKey, markPaidGuardTTL)
	if err != nil {
		return nil, shared.NewDomainError("STORAGE_ERROR", "Payment guard unavailable")
	}
	if !fresh {
		// A submission for this installment is already in flight or done
		return toInstallmentResponse(inst), nil
	}

	invoiceRef := valueobject.AttachmentRef{}
	if req.Invoice != nil {
		uploadCtx, cancel := context.WithTimeout(ctx, attachmentTimeout)
		key := fmt.Sprintf("invoices/%s/%s", installmentID, req.Invoice.Filename)
		invoiceRef, err = s.storage.Store(uploadCtx, key, req.Invoice.Content, req.Invoice.ContentType)
		cancel()
		if err != nil {
			s.releaseGuard(guardKey)
			s.logger.Error("invoice upload failed",
				zap.String("installment_id", installmentID.String()),
				zap.Error(err))
			return nil, shared.NewDomainError("STORAGE_ERROR", "Invoice upload failed")
		}
	}

	alreadyPaid := false
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		current, err := repos.InstallmentRepo().FindByID(ctx, installmentID)
		if err != nil {
			return err
		}
		if current == nil {
			return shared.NewDomainError("NOT_FOUND", "Installment not found")
		}
		if current.IsPaid() {
			alreadyPaid = true
			inst = current
			return nil
		}
		posted, err := repos.LedgerRepo().ExistsForInstallment(ctx, current.ID)
		if err != nil {
			return err
		}
		if posted {
			// A prior payment already committed its entry; never post a second one
			alreadyPaid = true
			inst = current
			return nil
		}
		if err := current.MarkPaid(invoiceRef); err != nil {
			return err
		}
		if err := repos.InstallmentRepo().Save(ctx, current); err != nil {
			return err
		}

		entry, err := ledger.NewInstallmentEntry(
			req.ActorID,
			"Installment payment",
			current.Amount,
			current.Currency,
			current.Detail,
			current.ID,
			current.BudgetID,
			invoiceRef,
		)
		if err != nil {
			return err
		}
		if err := repos.LedgerRepo().Save(ctx, entry); err != nil {
			return err
		}

		inst = current
		return appendAudit(ctx, repos, req.ActorID, "installment.mark_paid", "installment", current.ID,
			fmt.Sprintf("amount=%s ledger_entry=%s", current.Amount.String(), entry.ID))
	})
	if err != nil {
		if !invoiceRef.IsZero() {
			s.deleteUploaded(invoiceRef)
		}
		s.releaseGuard(guardKey)
		return nil, err
	}

	if alreadyPaid && !invoiceRef.IsZero() {
		// Someone else completed the payment between the guard and the
		// transaction; our upload is orphaned
		s.deleteUploaded(invoiceRef)
	}
	if !alreadyPaid {
		s.logger.Info("installment paid",
			zap.String("installment_id", installmentID.String()),
			zap.String("amount", inst.Amount.String()))
	}
	return toInstallmentResponse(inst), nil
}

// DeleteInstallment hard-deletes an installment. Ledger entries it
// produced stay as history.
func (s *InstallmentService) DeleteInstallment(ctx context.Context, installmentID, actorID uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		inst, err := repos.InstallmentRepo().FindByID(ctx, installmentID)
		if err != nil {
			return err
		}
		if inst == nil {
			return shared.NewDomainError("NOT_FOUND", "Installment not found")
		}
		if err := repos.InstallmentRepo().Delete(ctx, installmentID); err != nil {
			return err
		}
		return appendAudit(ctx, repos, actorID, "installment.delete", "installment", installmentID,
			fmt.Sprintf("phase=%s", inst.PhaseID))
	})
}

// DeleteAllForPhase hard-deletes every installment of a phase
func (s *InstallmentService) DeleteAllForPhase(ctx context.Context, phaseID, actorID uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		p, err := repos.PhaseRepo().FindByID(ctx, phaseID)
		if err != nil {
			return err
		}
		if p == nil {
			return shared.NewDomainError("NOT_FOUND", "Phase not found")
		}
		if err := repos.InstallmentRepo().DeleteByPhaseID(ctx, phaseID); err != nil {
			return err
		}
		return appendAudit(ctx, repos, actorID, "installment.delete_all", "phase", phaseID, "")
	})
}

// RefreshOverdue flags the budget's pending installments whose due date
// has passed. Returns the number of installments flagged. Overdue
// installments remain payable.
func (s *InstallmentService) RefreshOverdue(ctx context.Context, budgetID uuid.UUID) (int, error) {
	flagged := 0
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		now := time.Now()
		pending, err := repos.InstallmentRepo().FindPendingPastDue(ctx, budgetID, now)
		if err != nil {
			return err
		}
		for idx := range pending {
			inst := &pending[idx]
			if !inst.MarkOverdue(now) {
				continue
			}
			if err := repos.InstallmentRepo().Save(ctx, inst); err != nil {
				return err
			}
			flagged++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return flagged, nil
}

// ListInstallments lists the installments of a phase in sequence order
func (s *InstallmentService) ListInstallments(ctx context.Context, phaseID uuid.UUID) ([]InstallmentResponse, error) {
	installments, err := s.installmentRepo.FindByPhaseID(ctx, phaseID)
	if err != nil {
		return nil, err
	}
	responses := make([]InstallmentResponse, len(installments))
	for i, inst := range installments {
		responses[i] = *toInstallmentResponse(&inst)
	}
	return responses, nil
}

func (s *InstallmentService) releaseGuard(key string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.idempotency.Release(ctx, key); err != nil {
		s.logger.Warn("failed to release payment guard", zap.String("key", key), zap.Error(err))
	}
}

func (s *InstallmentService) deleteUploaded(ref valueobject.AttachmentRef) {
	ctx, cancel := context.WithTimeout(context.Background(), attachmentTimeout)
	defer cancel()
	if err := s.storage.Delete(ctx, ref); err != nil {
		s.logger.Warn("failed to delete orphaned invoice object",
			zap.String("ref", ref.String()), zap.Error(err))
	}
}
