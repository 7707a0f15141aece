package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"regexp"
	"time"

	"aquisicoes-backend/internal/apperr"
	"aquisicoes-backend/internal/model"
	"aquisicoes-backend/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// --- DTOs ---

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type RegisterRequest struct {
	Email           string `json:"email" binding:"required,email"`
	FirstName       string `json:"first_name" binding:"required"`
	LastName        string `json:"last_name" binding:"required"`
	Password        string `json:"password" binding:"required,min=6"`
	PasswordConfirm string `json:"password_confirm" binding:"required"`
	RequestedRole   string `json:"requested_role"`
	Message         string `json:"message"`
}

type ApproveUserRequest struct {
	ApprovedRole string `json:"approved_role"`
}

type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// UserResponse returns a user without credential material.
type UserResponse struct {
	ID        uuid.UUID      `json:"id"`
	Email     string         `json:"email"`
	FirstName string         `json:"first_name"`
	LastName  string         `json:"last_name"`
	FullName  string         `json:"full_name"`
	Role      model.UserRole `json:"role"`
	Active    bool           `json:"active"`
	Approved  bool           `json:"approved"`
	CreatedAt string         `json:"created_at"`
}

// --- Interface ---

type UserService interface {
	Login(ctx context.Context, req LoginRequest) (*TokenResponse, error)
	Register(ctx context.Context, req RegisterRequest) (*model.PendingUser, error)
	GetByID(ctx context.Context, id string) (*UserResponse, error)
	ListUsers(ctx context.Context, page, limit int) ([]UserResponse, int64, error)
	ListPending(ctx context.Context) ([]model.PendingUser, error)
	ApproveUser(ctx context.Context, pendingID string, req ApproveUserRequest, admin Actor) (*UserResponse, error)
	RejectUser(ctx context.Context, pendingID string) error
	UpdateRole(ctx context.Context, id string, req UpdateRoleRequest) (*UserResponse, error)
	SetActive(ctx context.Context, id string, active bool) (*UserResponse, error)
}

type userService struct {
	users   repository.UserRepository
	pending repository.PendingUserRepository
	txm     repository.TransactionManager
}

// NewUserService returns a new instance of UserService
func NewUserService(users repository.UserRepository, pending repository.PendingUserRepository, txm repository.TransactionManager) UserService {
	return &userService{users: users, pending: pending, txm: txm}
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func mapUserResponse(user *model.User) *UserResponse {
	return &UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		FullName:  user.FullName(),
		Role:      user.Role,
		Active:    user.Active,
		Approved:  user.Approved,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}
}

func (s *userService) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, errors.New("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, errors.New("invalid email or password")
	}

	if !user.Approved {
		return nil, errors.New("account awaiting administrator approval")
	}
	if !user.Active {
		return nil, errors.New("account deactivated")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  user.ID.String(),
		"role": string(user.Role),
	})

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "default_super_secret_key"
	}

	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	return &TokenResponse{Token: tokenString}, nil
}

// Register creates a pending registration request. An administrator
// must approve it before the account can log in.
func (s *userService) Register(ctx context.Context, req RegisterRequest) (*model.PendingUser, error) {
	fields := map[string]string{}
	if !emailRegex.MatchString(req.Email) {
		fields["email"] = "email inválido"
	}
	if len(req.Password) < 6 {
		fields["password"] = "senha deve ter pelo menos 6 caracteres"
	}
	if req.Password != req.PasswordConfirm {
		fields["password_confirm"] = "senhas não conferem"
	}

	requestedRole := model.RoleSolicitante
	if req.RequestedRole != "" {
		role, ok := model.ParseUserRole(req.RequestedRole)
		if !ok {
			fields["requested_role"] = "perfil inválido"
		} else {
			requestedRole = role
		}
	}

	if len(fields) > 0 {
		return nil, &apperr.ValidationError{Fields: fields}
	}

	// The email must be free among active AND pending users.
	if _, err := s.users.GetByEmail(ctx, req.Email); err == nil {
		return nil, apperr.NewValidation("email", "email já cadastrado")
	}
	if _, err := s.pending.GetByEmail(ctx, req.Email); err == nil {
		return nil, apperr.NewValidation("email", "já existe uma solicitação pendente para este email")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.New("failed to hash password")
	}

	pending := &model.PendingUser{
		Email:         req.Email,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Password:      string(hash),
		RequestedRole: requestedRole,
		Message:       req.Message,
	}

	if err := s.pending.Create(ctx, pending); err != nil {
		return nil, fmt.Errorf("failed to create registration request: %w", err)
	}

	return pending, nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*UserResponse, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return mapUserResponse(user), nil
}

func (s *userService) ListUsers(ctx context.Context, page, limit int) ([]UserResponse, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	users, total, err := s.users.List(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, *mapUserResponse(&users[i]))
	}
	return responses, total, nil
}

func (s *userService) ListPending(ctx context.Context) ([]model.PendingUser, error) {
	return s.pending.List(ctx)
}

// ApproveUser promotes a pending registration to a real user. The
// credential hash carries over; creation and deletion commit together.
func (s *userService) ApproveUser(ctx context.Context, pendingID string, req ApproveUserRequest, admin Actor) (*UserResponse, error) {
	pending, err := s.pending.GetByID(ctx, pendingID)
	if err != nil {
		return nil, err
	}

	role := pending.RequestedRole
	if req.ApprovedRole != "" {
		parsed, ok := model.ParseUserRole(req.ApprovedRole)
		if !ok {
			return nil, apperr.NewValidation("approved_role", "perfil inválido")
		}
		role = parsed
	}

	now := time.Now()
	adminID := admin.ID
	user := &model.User{
		Email:      pending.Email,
		FirstName:  pending.FirstName,
		LastName:   pending.LastName,
		Password:   pending.Password,
		Role:       role,
		Active:     true,
		Approved:   true,
		ApprovedBy: &adminID,
		ApprovedAt: &now,
	}

	err = s.txm.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.users.Create(txCtx, user); err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		if err := s.pending.Delete(txCtx, pending.ID.String()); err != nil {
			return fmt.Errorf("failed to remove pending request: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return mapUserResponse(user), nil
}

func (s *userService) RejectUser(ctx context.Context, pendingID string) error {
	if _, err := s.pending.GetByID(ctx, pendingID); err != nil {
		return err
	}
	return s.pending.Delete(ctx, pendingID)
}

func (s *userService) UpdateRole(ctx context.Context, id string, req UpdateRoleRequest) (*UserResponse, error) {
	role, ok := model.ParseUserRole(req.Role)
	if !ok {
		return nil, apperr.NewValidation("role", "perfil inválido")
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Role = role
	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update role: %w", err)
	}
	return mapUserResponse(user), nil
}

// SetActive deactivates or reactivates an account. Users are never
// hard-deleted.
func (s *userService) SetActive(ctx context.Context, id string, active bool) (*UserResponse, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Active = active
	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return mapUserResponse(user), nil
}
