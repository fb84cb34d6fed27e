package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin   = "admin"
	RoleCashier = "cashier"
)

// ValidRole indica si role es uno de los roles soportados.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleCashier
}

// User representa un usuario del POS (administrador o cajero).
type User struct {
	ID           string
	Username     string // único, en minúsculas
	PasswordHash string // bcrypt hash, nunca se expone al cliente
	Role         string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
