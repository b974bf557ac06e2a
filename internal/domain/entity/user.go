package entity

import (
	"slices"
	"time"
)

// Roles válidos para User.
const (
	RoleSuperAdmin = "ROLE_SUPER_ADMIN"
	RoleAdmin      = "ROLE_ADMIN"
	RoleUser       = "ROLE_USER"
)

// User representa un usuario de la API. Todo usuario que no sea super admin pertenece a un Client.
type User struct {
	ID           int64
	UserName     string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Email        string
	PhoneNumber  string
	Roles        []string
	ClientID     int64 // 0 = sin cliente (solo super admins)
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasRole indica si el usuario tiene el rol dado.
func (u *User) HasRole(role string) bool {
	return slices.Contains(u.Roles, role)
}
