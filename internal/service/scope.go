package service

import (
	"rentfolio-backend/internal/domain"
	"rentfolio-backend/internal/logger"
)

// Actor is the authenticated caller identity. Every core operation takes it
// explicitly; services never read ambient session state.
type Actor struct {
	UserID int32
	Role   domain.UserRole
}

func (a Actor) IsTenant() bool { return a.Role == domain.UserRoleTenant }

func (a Actor) IsAdmin() bool { return a.Role == domain.UserRoleAdmin }

// CanManage reports whether the actor may act on a record owned by ownerID.
// Admins may act on any record; everyone else only on their own.
func (a Actor) CanManage(ownerID int32) bool {
	return a.Role == domain.UserRoleAdmin || a.UserID == ownerID
}

// requireScope funnels every ownership check through one place so scope
// rejections are audited uniformly.
func requireScope(a Actor, ownerID int32, entity string, id int32) error {
	if a.CanManage(ownerID) {
		return nil
	}
	logger.Warn("Scope rejection", "entity", entity, "id", id, "user_id", a.UserID, "role", a.Role)
	return domain.ErrOwnershipViolation
}

func requireRole(a Actor, roles ...domain.UserRole) error {
	for _, r := range roles {
		if a.Role == r {
			return nil
		}
	}
	logger.Warn("Role rejection", "user_id", a.UserID, "role", a.Role)
	return domain.ErrOwnershipViolation
}
