package service

import (
	"context"
	"testing"

	"aquisicoes-backend/internal/apperr"
	"aquisicoes-backend/internal/model"
	"aquisicoes-backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type userFixture struct {
	db    *gorm.DB
	svc   UserService
	admin *model.User
}

func newUserFixture(t *testing.T) *userFixture {
	t.Helper()
	db := setupTestDB(t)
	svc := NewUserService(
		repository.NewUserRepository(db),
		repository.NewPendingUserRepository(db),
		repository.NewTransactionManager(db),
	)
	return &userFixture{db: db, svc: svc, admin: seedUser(t, db, "admin@test.local", model.RoleAdmin)}
}

func registerRequest(email string) RegisterRequest {
	return RegisterRequest{
		Email:           email,
		FirstName:       "Maria",
		LastName:        "Silva",
		Password:        "segredo123",
		PasswordConfirm: "segredo123",
		Message:         "Preciso de acesso para abrir solicitações",
	}
}

func TestRegisterCreatesPendingRequest(t *testing.T) {
	f := newUserFixture(t)

	pending, err := f.svc.Register(context.Background(), registerRequest("maria@test.local"))
	require.NoError(t, err)

	assert.Equal(t, "maria@test.local", pending.Email)
	assert.Equal(t, model.RoleSolicitante, pending.RequestedRole)
	// Stored credential must be a hash of the submitted password.
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(pending.Password), []byte("segredo123")))
	assert.NotEqual(t, "segredo123", pending.Password)
}

func TestRegisterValidation(t *testing.T) {
	f := newUserFixture(t)

	req := registerRequest("not-an-email")
	req.Password = "123"
	req.PasswordConfirm = "456"

	_, err := f.svc.Register(context.Background(), req)
	var validationErr *apperr.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Fields, "email")
	assert.Contains(t, validationErr.Fields, "password")
	assert.Contains(t, validationErr.Fields, "password_confirm")
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	f := newUserFixture(t)
	ctx := context.Background()

	_, err := f.svc.Register(ctx, registerRequest("maria@test.local"))
	require.NoError(t, err)

	_, err = f.svc.Register(ctx, registerRequest("maria@test.local"))
	var validationErr *apperr.ValidationError
	require.ErrorAs(t, err, &validationErr)

	// Also taken by an already approved account.
	_, err = f.svc.Register(ctx, registerRequest(f.admin.Email))
	require.ErrorAs(t, err, &validationErr)
}

func TestApprovePromotesPendingUser(t *testing.T) {
	f := newUserFixture(t)
	ctx := context.Background()

	pending, err := f.svc.Register(ctx, registerRequest("maria@test.local"))
	require.NoError(t, err)

	// The admin overrides the requested role at approval time.
	user, err := f.svc.ApproveUser(ctx, pending.ID.String(), ApproveUserRequest{ApprovedRole: "aprovador"}, Actor{ID: f.admin.ID, Role: f.admin.Role})
	require.NoError(t, err)

	assert.Equal(t, "maria@test.local", user.Email)
	assert.Equal(t, model.RoleAprovador, user.Role)
	assert.True(t, user.Active)
	assert.True(t, user.Approved)

	// The pending request is consumed.
	remaining, err := f.svc.ListPending(ctx)
	require.NoError(t, err)
	assert.Empty(t, remaining)

	// The original password carries over to the promoted account.
	token, err := f.svc.Login(ctx, LoginRequest{Email: "maria@test.local", Password: "segredo123"})
	require.NoError(t, err)
	assert.NotEmpty(t, token.Token)
}

func TestRejectDeletesPendingRequest(t *testing.T) {
	f := newUserFixture(t)
	ctx := context.Background()

	pending, err := f.svc.Register(ctx, registerRequest("maria@test.local"))
	require.NoError(t, err)

	require.NoError(t, f.svc.RejectUser(ctx, pending.ID.String()))

	remaining, err := f.svc.ListPending(ctx)
	require.NoError(t, err)
	assert.Empty(t, remaining)

	// Rejected requesters can never log in.
	_, err = f.svc.Login(ctx, LoginRequest{Email: "maria@test.local", Password: "segredo123"})
	assert.Error(t, err)

	err = f.svc.RejectUser(ctx, pending.ID.String())
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestLoginChecks(t *testing.T) {
	f := newUserFixture(t)
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("segredo123"), bcrypt.DefaultCost)
	require.NoError(t, err)
	user := &model.User{
		Email:    "joao@test.local",
		Password: string(hash),
		Role:     model.RoleSolicitante,
		Active:   true,
		Approved: true,
	}
	require.NoError(t, f.db.Create(user).Error)

	token, err := f.svc.Login(ctx, LoginRequest{Email: "joao@test.local", Password: "segredo123"})
	require.NoError(t, err)
	assert.NotEmpty(t, token.Token)

	_, err = f.svc.Login(ctx, LoginRequest{Email: "joao@test.local", Password: "errada"})
	assert.Error(t, err)

	user.Active = false
	require.NoError(t, f.db.Save(user).Error)
	_, err = f.svc.Login(ctx, LoginRequest{Email: "joao@test.local", Password: "segredo123"})
	assert.Error(t, err)
}

func TestUpdateRoleAndSetActive(t *testing.T) {
	f := newUserFixture(t)
	ctx := context.Background()
	user := seedUser(t, f.db, "joao@test.local", model.RoleSolicitante)

	updated, err := f.svc.UpdateRole(ctx, user.ID.String(), UpdateRoleRequest{Role: "recebimento"})
	require.NoError(t, err)
	assert.Equal(t, model.RoleRecebimento, updated.Role)

	_, err = f.svc.UpdateRole(ctx, user.ID.String(), UpdateRoleRequest{Role: "gerente"})
	var validationErr *apperr.ValidationError
	assert.ErrorAs(t, err, &validationErr)

	deactivated, err := f.svc.SetActive(ctx, user.ID.String(), false)
	require.NoError(t, err)
	assert.False(t, deactivated.Active)

	reactivated, err := f.svc.SetActive(ctx, user.ID.String(), true)
	require.NoError(t, err)
	assert.True(t, reactivated.Active)
}
