// Package policy is the access control table: pure functions of
// (role, ownership, requested action). It holds no state and hits no
// storage, so it can be recomputed on every request.
package policy

import "aquisicoes-backend/internal/model"

// CanTransition reports whether a role may move an acquisition to the
// target status. Approval and receipt are restricted to their
// dedicated roles; every other transition belongs to the admin or to
// the requester who owns the record.
func CanTransition(role model.UserRole, isOwner bool, target model.AcquisitionStatus) bool {
	if role == model.RoleAdmin {
		return true
	}
	switch target {
	case model.StatusAprovado:
		return role == model.RoleAprovador
	case model.StatusRecebido:
		return role == model.RoleRecebimento
	default:
		return isOwner && role == model.RoleSolicitante
	}
}

// CanViewAll reports whether a role sees every acquisition. Requesters
// only see their own records.
func CanViewAll(role model.UserRole) bool {
	switch role {
	case model.RoleAdmin, model.RoleAprovador, model.RoleRecebimento:
		return true
	default:
		return false
	}
}

// CanView reports whether a role may read one acquisition.
func CanView(role model.UserRole, isOwner bool) bool {
	return CanViewAll(role) || isOwner
}

// CanUploadDocument reports whether a role may attach documents to an
// acquisition.
func CanUploadDocument(role model.UserRole, isOwner bool) bool {
	return role == model.RoleAdmin || isOwner
}

// IsAdmin gates the administrative views (users, categories, cost
// centers, pending registrations).
func IsAdmin(role model.UserRole) bool {
	return role == model.RoleAdmin
}
