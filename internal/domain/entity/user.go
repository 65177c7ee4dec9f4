package entity

import "time"

// Role rol de un usuario del panel.
type Role string

// Roles válidos para User.
const (
	RoleSuperAdmin  Role = "SUPER_ADMIN"
	RoleOperation   Role = "OPERATION"
	RoleStoreKeeper Role = "STORE_KEEPER"
)

// Valid informa si r es un rol conocido.
func (r Role) Valid() bool {
	return r == RoleSuperAdmin || r == RoleOperation || r == RoleStoreKeeper
}

// DisplayName nombre legible del rol.
func (r Role) DisplayName() string {
	switch r {
	case RoleSuperAdmin:
		return "Super Admin"
	case RoleOperation:
		return "Operation"
	case RoleStoreKeeper:
		return "Store Keeper"
	default:
		return string(r)
	}
}

// User representa un usuario del sistema.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano
	Role         Role
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
