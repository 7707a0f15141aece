package service

import (
	"context"
	"fmt"
	"time"

	"aquisicoes-backend/internal/apperr"
	"aquisicoes-backend/internal/model"
	"aquisicoes-backend/internal/notify"
	"aquisicoes-backend/internal/policy"
	"aquisicoes-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const budgetDeadlineLayout = "2006-01-02"

// Actor identifies the authenticated user performing an operation.
type Actor struct {
	ID   uuid.UUID
	Role model.UserRole
}

// --- DTOs ---

type CreateAcquisitionRequest struct {
	Title          string `json:"title" binding:"required"`
	Description    string `json:"description" binding:"required"`
	Type           string `json:"type" binding:"required"`
	Quantity       *int   `json:"quantity"`
	Unit           string `json:"unit"`
	Justification  string `json:"justification" binding:"required"`
	EstimatedValue string `json:"estimated_value"`
	BudgetSource   string `json:"budget_source"`
	CategoryID     string `json:"category_id" binding:"required"`
	CostCenterID   string `json:"cost_center_id" binding:"required"`
}

// TransitionRequest carries the target status plus the status-specific
// extra fields. FinalValue and PaymentMethod apply on any transition.
type TransitionRequest struct {
	Status         string `json:"status" binding:"required"`
	Comment        string `json:"comment"`
	FinalValue     string `json:"final_value"`
	PaymentMethod  string `json:"payment_method"`
	BudgetDeadline string `json:"budget_deadline"`
	BudgetValue    string `json:"budget_value"`
	BudgetProvider string `json:"budget_provider"`
	BudgetNotes    string `json:"budget_notes"`
}

type AttachDocumentRequest struct {
	Filename         string `json:"filename" binding:"required"`
	OriginalFilename string `json:"original_filename" binding:"required"`
	FilePath         string `json:"file_path"`
	FileSize         int64  `json:"file_size"`
	MimeType         string `json:"mime_type"`
	Description      string `json:"description"`
}

type ListAcquisitionsQuery struct {
	Type       string
	Status     string
	CategoryID string
	Page       int
	Limit      int
}

// --- Interface ---

// AcquisitionService is the status workflow engine. Transitions are
// permission-checked against the access policy and persisted together
// with their StatusHistory row in one transaction.
type AcquisitionService interface {
	Create(ctx context.Context, actor Actor, req CreateAcquisitionRequest) (*model.Acquisition, error)
	Get(ctx context.Context, actor Actor, id string) (*model.Acquisition, error)
	List(ctx context.Context, actor Actor, query ListAcquisitionsQuery) ([]model.Acquisition, int64, error)
	ApplyTransition(ctx context.Context, actor Actor, id string, req TransitionRequest) (*model.Acquisition, error)
	AttachDocument(ctx context.Context, actor Actor, id string, req AttachDocumentRequest) (*model.Document, error)
}

type acquisitionService struct {
	acquisitions repository.AcquisitionRepository
	categories   repository.CategoryRepository
	costCenters  repository.CostCenterRepository
	notifier     notify.Notifier
	logger       *zap.Logger
}

// NewAcquisitionService wires the workflow engine.
func NewAcquisitionService(
	acquisitions repository.AcquisitionRepository,
	categories repository.CategoryRepository,
	costCenters repository.CostCenterRepository,
	notifier notify.Notifier,
	logger *zap.Logger,
) AcquisitionService {
	return &acquisitionService{
		acquisitions: acquisitions,
		categories:   categories,
		costCenters:  costCenters,
		notifier:     notifier,
		logger:       logger,
	}
}

// --- Implementation ---

func (s *acquisitionService) Create(ctx context.Context, actor Actor, req CreateAcquisitionRequest) (*model.Acquisition, error) {
	fields := map[string]string{}
	if req.Title == "" {
		fields["title"] = "obrigatório"
	}
	if req.Description == "" {
		fields["description"] = "obrigatório"
	}
	if req.Justification == "" {
		fields["justification"] = "obrigatório"
	}

	acqType, ok := model.ParseAcquisitionType(req.Type)
	if !ok {
		fields["type"] = "deve ser servico ou insumo"
	}

	var budgetSource *model.BudgetSource
	if req.BudgetSource != "" {
		parsed, ok := model.ParseBudgetSource(req.BudgetSource)
		if !ok {
			fields["budget_source"] = "fonte de verba inválida"
		} else {
			budgetSource = &parsed
		}
	}

	estimated, err := parseNullDecimal(req.EstimatedValue)
	if err != nil {
		fields["estimated_value"] = "valor inválido"
	}

	if len(fields) > 0 {
		return nil, &apperr.ValidationError{Fields: fields}
	}

	category, err := s.categories.GetByID(ctx, req.CategoryID)
	if err != nil {
		return nil, err
	}
	costCenter, err := s.costCenters.GetByID(ctx, req.CostCenterID)
	if err != nil {
		return nil, err
	}

	acq := &model.Acquisition{
		Title:          req.Title,
		Description:    req.Description,
		Type:           acqType,
		Quantity:       req.Quantity,
		Unit:           req.Unit,
		Status:         model.StatusEmAnalise,
		Justification:  req.Justification,
		EstimatedValue: estimated,
		BudgetSource:   budgetSource,
		RequesterID:    actor.ID,
		CategoryID:     category.ID,
		CostCenterID:   costCenter.ID,
	}

	history := &model.StatusHistory{
		UserID:    actor.ID,
		OldStatus: nil,
		NewStatus: model.StatusEmAnalise,
		Comment:   "Solicitação criada",
	}

	if err := s.acquisitions.CreateWithHistory(ctx, acq, history); err != nil {
		return nil, fmt.Errorf("failed to create acquisition: %w", err)
	}

	return s.acquisitions.GetByID(ctx, acq.ID.String())
}

func (s *acquisitionService) Get(ctx context.Context, actor Actor, id string) (*model.Acquisition, error) {
	acq, err := s.acquisitions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanView(actor.Role, acq.RequesterID == actor.ID) {
		return nil, apperr.ErrPermissionDenied
	}
	return acq, nil
}

func (s *acquisitionService) List(ctx context.Context, actor Actor, query ListAcquisitionsQuery) ([]model.Acquisition, int64, error) {
	filter := repository.AcquisitionFilter{Page: query.Page, Limit: query.Limit}

	if query.Type != "" {
		t, ok := model.ParseAcquisitionType(query.Type)
		if !ok {
			return nil, 0, apperr.NewValidation("type", "tipo inválido")
		}
		filter.Type = &t
	}
	if query.Status != "" {
		st, ok := model.ParseAcquisitionStatus(query.Status)
		if !ok {
			return nil, 0, apperr.ErrInvalidStatusValue
		}
		filter.Status = &st
	}
	if query.CategoryID != "" {
		categoryID, err := uuid.Parse(query.CategoryID)
		if err != nil {
			return nil, 0, apperr.NewValidation("category_id", "identificador inválido")
		}
		filter.CategoryID = &categoryID
	}

	// Requesters only see their own records.
	if !policy.CanViewAll(actor.Role) {
		requesterID := actor.ID
		filter.RequesterID = &requesterID
	}

	return s.acquisitions.List(ctx, filter)
}

// ApplyTransition moves an acquisition to the target status. No order
// is enforced between statuses: any role-authorized target can be set
// from any current status. The acquisition row and its history row are
// written in one transaction; on failure nothing is applied.
func (s *acquisitionService) ApplyTransition(ctx context.Context, actor Actor, id string, req TransitionRequest) (*model.Acquisition, error) {
	target, ok := model.ParseAcquisitionStatus(req.Status)
	if !ok {
		return nil, apperr.ErrInvalidStatusValue
	}

	acq, err := s.acquisitions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	isOwner := acq.RequesterID == actor.ID
	if !policy.CanTransition(actor.Role, isOwner, target) {
		return nil, apperr.ErrPermissionDenied
	}

	now := time.Now()
	oldStatus := acq.Status
	acq.Status = target

	switch target {
	case model.StatusAprovado:
		actorID := actor.ID
		acq.ApprovedAt = &now
		acq.ApproverID = &actorID
	case model.StatusAguardandoOrcamento:
		acq.BudgetRequestedAt = &now
		if req.BudgetDeadline != "" {
			deadline, err := time.Parse(budgetDeadlineLayout, req.BudgetDeadline)
			if err != nil {
				return nil, apperr.NewValidation("budget_deadline", "data inválida, use AAAA-MM-DD")
			}
			acq.BudgetDeadline = &deadline
		}
	case model.StatusOrcamentoRecebido:
		acq.BudgetReceivedAt = &now
		if req.BudgetValue != "" {
			value, err := parseNullDecimal(req.BudgetValue)
			if err != nil {
				return nil, apperr.NewValidation("budget_value", "valor inválido")
			}
			acq.BudgetValue = value
		}
		if req.BudgetProvider != "" {
			acq.BudgetProvider = req.BudgetProvider
		}
		if req.BudgetNotes != "" {
			acq.BudgetNotes = req.BudgetNotes
		}
	case model.StatusRecebido:
		acq.CompletedAt = &now
	}

	// Financial fields apply regardless of the target status.
	if req.FinalValue != "" {
		value, err := parseNullDecimal(req.FinalValue)
		if err != nil {
			return nil, apperr.NewValidation("final_value", "valor inválido")
		}
		acq.FinalValue = value
	}
	if req.PaymentMethod != "" {
		method, ok := model.ParsePaymentMethod(req.PaymentMethod)
		if !ok {
			return nil, apperr.NewValidation("payment_method", "forma de pagamento inválida")
		}
		acq.PaymentMethod = &method
	}

	history := &model.StatusHistory{
		UserID:    actor.ID,
		OldStatus: &oldStatus,
		NewStatus: target,
		Comment:   req.Comment,
	}

	if err := s.acquisitions.SaveWithHistory(ctx, acq, history); err != nil {
		return nil, fmt.Errorf("failed to apply transition: %w", err)
	}

	// Best effort after commit; a delivery failure never surfaces.
	if acq.Requester != nil {
		s.notifier.SendStatusNotification(acq, target, acq.Requester.Email)
	}

	return s.acquisitions.GetByID(ctx, acq.ID.String())
}

func (s *acquisitionService) AttachDocument(ctx context.Context, actor Actor, id string, req AttachDocumentRequest) (*model.Document, error) {
	acq, err := s.acquisitions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !policy.CanUploadDocument(actor.Role, acq.RequesterID == actor.ID) {
		return nil, apperr.ErrPermissionDenied
	}

	doc := &model.Document{
		AcquisitionID:    acq.ID,
		UserID:           actor.ID,
		Filename:         req.Filename,
		OriginalFilename: req.OriginalFilename,
		FilePath:         req.FilePath,
		FileSize:         req.FileSize,
		MimeType:         req.MimeType,
		Description:      req.Description,
	}

	if err := s.acquisitions.AddDocument(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to attach document: %w", err)
	}

	return doc, nil
}

// --- Helpers ---

func parseNullDecimal(s string) (decimal.NullDecimal, error) {
	if s == "" {
		return decimal.NullDecimal{}, nil
	}
	value, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return decimal.NullDecimal{Decimal: value, Valid: true}, nil
}
