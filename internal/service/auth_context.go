package service

import "github.com/deelaka-ransilu/bridal-shop-backend/internal/model"

// AuthContext is the authenticated caller, built once per request by the
// auth middleware and passed explicitly into services.
type AuthContext struct {
	UserID uint
	Role   model.Role
	Email  string
}

func (a AuthContext) IsAdmin() bool {
	return a.Role == model.RoleAdmin
}
