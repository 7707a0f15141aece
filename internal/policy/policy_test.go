package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"aquisicoes-backend/internal/model"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		name    string
		role    model.UserRole
		isOwner bool
		target  model.AcquisitionStatus
		want    bool
	}{
		{"admin may approve", model.RoleAdmin, false, model.StatusAprovado, true},
		{"admin may receive", model.RoleAdmin, false, model.StatusRecebido, true},
		{"admin may close", model.RoleAdmin, false, model.StatusFechado, true},
		{"aprovador may approve", model.RoleAprovador, false, model.StatusAprovado, true},
		{"aprovador may not receive", model.RoleAprovador, false, model.StatusRecebido, false},
		{"aprovador may not start quoting", model.RoleAprovador, false, model.StatusEmCotacao, false},
		{"recebimento may receive", model.RoleRecebimento, false, model.StatusRecebido, true},
		{"recebimento may not approve", model.RoleRecebimento, false, model.StatusAprovado, false},
		{"owning requester may start quoting", model.RoleSolicitante, true, model.StatusEmCotacao, true},
		{"owning requester may request budget", model.RoleSolicitante, true, model.StatusAguardandoOrcamento, true},
		{"owning requester may not approve", model.RoleSolicitante, true, model.StatusAprovado, false},
		{"owning requester may not receive", model.RoleSolicitante, true, model.StatusRecebido, false},
		{"foreign requester may not transition", model.RoleSolicitante, false, model.StatusEmCotacao, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CanTransition(tc.role, tc.isOwner, tc.target))
		})
	}
}

func TestCanViewAll(t *testing.T) {
	assert.True(t, CanViewAll(model.RoleAdmin))
	assert.True(t, CanViewAll(model.RoleAprovador))
	assert.True(t, CanViewAll(model.RoleRecebimento))
	assert.False(t, CanViewAll(model.RoleSolicitante))
}

func TestCanView(t *testing.T) {
	assert.True(t, CanView(model.RoleSolicitante, true))
	assert.False(t, CanView(model.RoleSolicitante, false))
	assert.True(t, CanView(model.RoleAprovador, false))
}

func TestCanUploadDocument(t *testing.T) {
	assert.True(t, CanUploadDocument(model.RoleAdmin, false))
	assert.True(t, CanUploadDocument(model.RoleSolicitante, true))
	assert.False(t, CanUploadDocument(model.RoleSolicitante, false))
	assert.False(t, CanUploadDocument(model.RoleAprovador, false))
}

func TestIsAdmin(t *testing.T) {
	assert.True(t, IsAdmin(model.RoleAdmin))
	assert.False(t, IsAdmin(model.RoleAprovador))
}
