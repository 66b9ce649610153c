package ports

import "github.com/rankforge/agency-api/internal/core/domain"

// Identity carries the authenticated caller through the service layer.
// It is populated per request from verified JWT claims, never from ambient
// state.
type Identity struct {
	UserID string
	Role   string
}

// IsAdmin reports whether the identity carries the admin role.
func (i Identity) IsAdmin() bool {
	return i.Role == domain.RoleAdmin
}
