package service

import (
	"context"
	"errors"
	"testing"

	"aquisicoes-backend/internal/apperr"
	"aquisicoes-backend/internal/database"
	"aquisicoes-backend/internal/model"
	"aquisicoes-backend/internal/notify"
	"aquisicoes-backend/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// Every connection of an in-memory database is its own database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

type workflowFixture struct {
	db          *gorm.DB
	svc         AcquisitionService
	solicitante *model.User
	aprovador   *model.User
	recebimento *model.User
	admin       *model.User
	category    *model.Category
	costCenter  *model.CostCenter
}

func seedUser(t *testing.T, db *gorm.DB, email string, role model.UserRole) *model.User {
	t.Helper()
	user := &model.User{
		Email:     email,
		FirstName: "Test",
		LastName:  string(role),
		Password:  "not-a-real-hash",
		Role:      role,
		Active:    true,
		Approved:  true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func newWorkflowFixture(t *testing.T) *workflowFixture {
	t.Helper()
	db := setupTestDB(t)

	category := &model.Category{Name: "Equipamentos de Informática", Type: model.TypeInsumo, Active: true}
	require.NoError(t, db.Create(category).Error)
	costCenter := &model.CostCenter{Code: "INFO", Name: "Tecnologia da Informação", Active: true}
	require.NoError(t, db.Create(costCenter).Error)

	svc := NewAcquisitionService(
		repository.NewAcquisitionRepository(db),
		repository.NewCategoryRepository(db),
		repository.NewCostCenterRepository(db),
		notify.NopNotifier{},
		zap.NewNop(),
	)

	return &workflowFixture{
		db:          db,
		svc:         svc,
		solicitante: seedUser(t, db, "solicitante@test.local", model.RoleSolicitante),
		aprovador:   seedUser(t, db, "aprovador@test.local", model.RoleAprovador),
		recebimento: seedUser(t, db, "recebimento@test.local", model.RoleRecebimento),
		admin:       seedUser(t, db, "admin@test.local", model.RoleAdmin),
		category:    category,
		costCenter:  costCenter,
	}
}

func actorFor(user *model.User) Actor {
	return Actor{ID: user.ID, Role: user.Role}
}

func (f *workflowFixture) createAcquisition(t *testing.T, requester *model.User) *model.Acquisition {
	t.Helper()
	acq, err := f.svc.Create(context.Background(), actorFor(requester), CreateAcquisitionRequest{
		Title:          "Notebooks para laboratório",
		Description:    "Dez notebooks para o laboratório de informática",
		Type:           "insumo",
		Justification:  "Renovação do parque de máquinas",
		EstimatedValue: "1000.00",
		CategoryID:     f.category.ID.String(),
		CostCenterID:   f.costCenter.ID.String(),
	})
	require.NoError(t, err)
	return acq
}

func TestCreateAcquisition(t *testing.T) {
	f := newWorkflowFixture(t)

	acq := f.createAcquisition(t, f.solicitante)

	assert.Equal(t, model.StatusEmAnalise, acq.Status)
	assert.Equal(t, f.solicitante.ID, acq.RequesterID)
	require.True(t, acq.EstimatedValue.Valid)
	assert.True(t, acq.EstimatedValue.Decimal.Equal(decimal.RequireFromString("1000.00")))

	require.Len(t, acq.StatusHistory, 1)
	assert.Nil(t, acq.StatusHistory[0].OldStatus)
	assert.Equal(t, model.StatusEmAnalise, acq.StatusHistory[0].NewStatus)
}

func TestCreateAcquisitionValidation(t *testing.T) {
	f := newWorkflowFixture(t)

	_, err := f.svc.Create(context.Background(), actorFor(f.solicitante), CreateAcquisitionRequest{
		Description:  "sem título",
		Type:         "invalido",
		CategoryID:   f.category.ID.String(),
		CostCenterID: f.costCenter.ID.String(),
	})

	var validationErr *apperr.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Fields, "title")
	assert.Contains(t, validationErr.Fields, "type")
	assert.Contains(t, validationErr.Fields, "justification")
}

func TestTransitionAppendsHistory(t *testing.T) {
	f := newWorkflowFixture(t)
	acq := f.createAcquisition(t, f.solicitante)

	updated, err := f.svc.ApplyTransition(context.Background(), actorFor(f.solicitante), acq.ID.String(), TransitionRequest{
		Status:  "em_cotacao",
		Comment: "Solicitando cotações",
	})
	require.NoError(t, err)

	assert.Equal(t, model.StatusEmCotacao, updated.Status)
	require.Len(t, updated.StatusHistory, 2)
	last := updated.StatusHistory[len(updated.StatusHistory)-1]
	require.NotNil(t, last.OldStatus)
	assert.Equal(t, model.StatusEmAnalise, *last.OldStatus)
	assert.Equal(t, model.StatusEmCotacao, last.NewStatus)
	assert.Equal(t, "Solicitando cotações", last.Comment)
}

func TestTransitionInvalidStatus(t *testing.T) {
	f := newWorkflowFixture(t)
	acq := f.createAcquisition(t, f.solicitante)

	_, err := f.svc.ApplyTransition(context.Background(), actorFor(f.admin), acq.ID.String(), TransitionRequest{
		Status: "finalizado",
	})
	assert.ErrorIs(t, err, apperr.ErrInvalidStatusValue)
}

func TestTransitionPermissionDeniedLeavesStateUntouched(t *testing.T) {
	f := newWorkflowFixture(t)
	acq := f.createAcquisition(t, f.solicitante)

	// Only aprovador and admin may approve, even the owner cannot.
	_, err := f.svc.ApplyTransition(context.Background(), actorFor(f.solicitante), acq.ID.String(), TransitionRequest{
		Status: "aprovado",
	})
	require.ErrorIs(t, err, apperr.ErrPermissionDenied)

	reloaded, err := f.svc.Get(context.Background(), actorFor(f.solicitante), acq.ID.String())
	require.NoError(t, err)
	assert.Equal(t, model.StatusEmAnalise, reloaded.Status)
	assert.Nil(t, reloaded.ApprovedAt)
	assert.Len(t, reloaded.StatusHistory, 1)
}

func TestApprovalWorkflowRoundTrip(t *testing.T) {
	f := newWorkflowFixture(t)
	ctx := context.Background()
	acq := f.createAcquisition(t, f.solicitante)

	approved, err := f.svc.ApplyTransition(ctx, actorFor(f.aprovador), acq.ID.String(), TransitionRequest{
		Status:  "aprovado",
		Comment: "Aprovado pela diretoria",
	})
	require.NoError(t, err)
	require.NotNil(t, approved.ApprovedAt)
	require.NotNil(t, approved.ApproverID)
	assert.Equal(t, f.aprovador.ID, *approved.ApproverID)

	received, err := f.svc.ApplyTransition(ctx, actorFor(f.recebimento), acq.ID.String(), TransitionRequest{
		Status:        "recebido",
		FinalValue:    "950.00",
		PaymentMethod: "boleto",
	})
	require.NoError(t, err)

	assert.Equal(t, model.StatusRecebido, received.Status)
	require.NotNil(t, received.CompletedAt)
	require.True(t, received.FinalValue.Valid)
	assert.True(t, received.FinalValue.Decimal.Equal(decimal.RequireFromString("950.00")))
	require.NotNil(t, received.PaymentMethod)
	assert.Equal(t, model.PaymentBoleto, *received.PaymentMethod)
	assert.Len(t, received.StatusHistory, 3)
}

func TestCompletedAtSurvivesLaterTransitions(t *testing.T) {
	f := newWorkflowFixture(t)
	ctx := context.Background()
	acq := f.createAcquisition(t, f.solicitante)

	_, err := f.svc.ApplyTransition(ctx, actorFor(f.recebimento), acq.ID.String(), TransitionRequest{Status: "recebido"})
	require.NoError(t, err)

	closed, err := f.svc.ApplyTransition(ctx, actorFor(f.admin), acq.ID.String(), TransitionRequest{Status: "fechado"})
	require.NoError(t, err)

	assert.Equal(t, model.StatusFechado, closed.Status)
	assert.NotNil(t, closed.CompletedAt)
}

func TestBudgetNegotiationPath(t *testing.T) {
	f := newWorkflowFixture(t)
	ctx := context.Background()
	acq := f.createAcquisition(t, f.solicitante)

	waiting, err := f.svc.ApplyTransition(ctx, actorFor(f.solicitante), acq.ID.String(), TransitionRequest{
		Status:         "aguardando_orcamento",
		BudgetDeadline: "2026-09-30",
	})
	require.NoError(t, err)
	require.NotNil(t, waiting.BudgetRequestedAt)
	require.NotNil(t, waiting.BudgetDeadline)
	assert.Equal(t, "2026-09-30", waiting.BudgetDeadline.Format("2006-01-02"))

	quoted, err := f.svc.ApplyTransition(ctx, actorFor(f.solicitante), acq.ID.String(), TransitionRequest{
		Status:         "orcamento_recebido",
		BudgetValue:    "875.50",
		BudgetProvider: "Fornecedora ABC",
		BudgetNotes:    "Entrega em 15 dias",
	})
	require.NoError(t, err)
	require.NotNil(t, quoted.BudgetReceivedAt)
	require.True(t, quoted.BudgetValue.Valid)
	assert.True(t, quoted.BudgetValue.Decimal.Equal(decimal.RequireFromString("875.50")))
	assert.Equal(t, "Fornecedora ABC", quoted.BudgetProvider)
	assert.Len(t, quoted.StatusHistory, 3)
}

func TestTransitionRollsBackWhenHistoryWriteFails(t *testing.T) {
	f := newWorkflowFixture(t)
	ctx := context.Background()
	acq := f.createAcquisition(t, f.solicitante)

	// Breaking the history table forces the second write of the
	// transaction to fail; the status update must roll back with it.
	require.NoError(t, f.db.Migrator().DropTable(&model.StatusHistory{}))

	_, err := f.svc.ApplyTransition(ctx, actorFor(f.admin), acq.ID.String(), TransitionRequest{Status: "aprovado"})
	require.Error(t, err)

	var row model.Acquisition
	require.NoError(t, f.db.First(&row, "id = ?", acq.ID).Error)
	assert.Equal(t, model.StatusEmAnalise, row.Status)
	assert.Nil(t, row.ApprovedAt)
}

func TestGetDeniedForOtherRequester(t *testing.T) {
	f := newWorkflowFixture(t)
	acq := f.createAcquisition(t, f.solicitante)
	other := seedUser(t, f.db, "outro@test.local", model.RoleSolicitante)

	_, err := f.svc.Get(context.Background(), actorFor(other), acq.ID.String())
	assert.ErrorIs(t, err, apperr.ErrPermissionDenied)

	_, err = f.svc.Get(context.Background(), actorFor(f.aprovador), acq.ID.String())
	assert.NoError(t, err)
}

func TestGetUnknownIDReturnsNotFound(t *testing.T) {
	f := newWorkflowFixture(t)

	_, err := f.svc.Get(context.Background(), actorFor(f.admin), "3f8e7b9a-0000-0000-0000-000000000000")
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestListScopedToRequester(t *testing.T) {
	f := newWorkflowFixture(t)
	ctx := context.Background()
	other := seedUser(t, f.db, "outro@test.local", model.RoleSolicitante)

	f.createAcquisition(t, f.solicitante)
	f.createAcquisition(t, f.solicitante)
	f.createAcquisition(t, other)

	mine, total, err := f.svc.List(ctx, actorFor(f.solicitante), ListAcquisitionsQuery{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	for _, acq := range mine {
		assert.Equal(t, f.solicitante.ID, acq.RequesterID)
	}

	all, total, err := f.svc.List(ctx, actorFor(f.admin), ListAcquisitionsQuery{})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, all, 3)
}

func TestListFilters(t *testing.T) {
	f := newWorkflowFixture(t)
	ctx := context.Background()
	acq := f.createAcquisition(t, f.solicitante)

	_, err := f.svc.ApplyTransition(ctx, actorFor(f.aprovador), acq.ID.String(), TransitionRequest{Status: "aprovado"})
	require.NoError(t, err)
	f.createAcquisition(t, f.solicitante)

	approved, total, err := f.svc.List(ctx, actorFor(f.admin), ListAcquisitionsQuery{Status: "aprovado"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, approved, 1)
	assert.Equal(t, acq.ID, approved[0].ID)

	_, _, err = f.svc.List(ctx, actorFor(f.admin), ListAcquisitionsQuery{Status: "aberto"})
	assert.ErrorIs(t, err, apperr.ErrInvalidStatusValue)
}

func TestAttachDocument(t *testing.T) {
	f := newWorkflowFixture(t)
	ctx := context.Background()
	acq := f.createAcquisition(t, f.solicitante)
	other := seedUser(t, f.db, "outro@test.local", model.RoleSolicitante)

	doc, err := f.svc.AttachDocument(ctx, actorFor(f.solicitante), acq.ID.String(), AttachDocumentRequest{
		Filename:         "a1b2c3.pdf",
		OriginalFilename: "orcamento.pdf",
		FilePath:         "/uploads/a1b2c3.pdf",
		FileSize:         2048,
		MimeType:         "application/pdf",
	})
	require.NoError(t, err)
	assert.Equal(t, acq.ID, doc.AcquisitionID)

	_, err = f.svc.AttachDocument(ctx, actorFor(other), acq.ID.String(), AttachDocumentRequest{
		Filename:         "x.pdf",
		OriginalFilename: "x.pdf",
	})
	assert.ErrorIs(t, err, apperr.ErrPermissionDenied)

	reloaded, err := f.svc.Get(ctx, actorFor(f.solicitante), acq.ID.String())
	require.NoError(t, err)
	assert.Len(t, reloaded.Documents, 1)
}
