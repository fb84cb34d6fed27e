package dto

import "time"

// LoginRequest entrada para login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SessionUser identidad devuelta al iniciar sesión.
type SessionUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// LoginResponse token JWT + usuario.
type LoginResponse struct {
	Token string      `json:"token"`
	User  SessionUser `json:"user"`
}

// CreateUserRequest entrada para crear un usuario (password en texto, se hashea en el use case).
type CreateUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Active   *bool  `json:"active"`
}

// UpdateUserRequest cambia rol y/o estado.
type UpdateUserRequest struct {
	Role   *string `json:"role"`
	Active *bool   `json:"active"`
}

// ResetPasswordRequest nueva contraseña.
type ResetPasswordRequest struct {
	Password string `json:"password"`
}

// UserListQuery filtros de GET /api/users.
type UserListQuery struct {
	Search string
	Role   string
	Active *bool
	PageQuery
}

// UserResponse salida de un usuario (sin hash).
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
