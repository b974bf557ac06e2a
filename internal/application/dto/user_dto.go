package dto

import "time"

// CreateUserRequest entrada para crear un usuario (password en texto, se hashea en use case).
type CreateUserRequest struct {
	UserName    string   `json:"username" validate:"required,min=3,max=50"`
	Password    string   `json:"password" validate:"required,min=8,max=72"`
	Email       string   `json:"email" validate:"required,email,max=180"`
	PhoneNumber string   `json:"phone_number" validate:"omitempty,max=20"`
	Roles       []string `json:"roles" validate:"omitempty,dive,oneof=ROLE_USER ROLE_ADMIN ROLE_SUPER_ADMIN"`
	ClientID    int64    `json:"client_id" validate:"omitempty,min=1"`
}

// UpdateUserRequest entrada para actualización parcial. Un campo ausente, null o vacío no se modifica.
type UpdateUserRequest struct {
	UserName    Optional[string]   `json:"username"`
	Password    Optional[string]   `json:"password"`
	Email       Optional[string]   `json:"email"`
	PhoneNumber Optional[string]   `json:"phone_number"`
	Roles       Optional[[]string] `json:"roles"`
	ClientID    Optional[int64]    `json:"client_id"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID          int64     `json:"id"`
	UserName    string    `json:"username"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phone_number"`
	Roles       []string  `json:"roles"`
	ClientID    int64     `json:"client_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UserListResponse lista paginada de usuarios.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// LoginRequest credenciales para obtener un token.
type LoginRequest struct {
	UserName string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
