package auth

import "ecommerce-api/internal/models"

// Principal is the authenticated caller extracted from a bearer token.
// It is the single authorization capability passed into every service
// operation.
type Principal struct {
	ID   int64  `json:"id"`
	Role string `json:"role"`
}

// IsAdmin reports whether the principal carries the admin role.
func (p Principal) IsAdmin() bool {
	return p.Role == models.RoleAdmin
}

// Owns reports whether the principal is the client identified by clientID.
func (p Principal) Owns(clientID int64) bool {
	return p.ID == clientID
}

// CanAccess reports whether the principal may read a resource owned by
// clientID: owners and admins only.
func (p Principal) CanAccess(clientID int64) bool {
	return p.IsAdmin() || p.Owns(clientID)
}
