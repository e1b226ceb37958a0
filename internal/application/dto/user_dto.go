package dto

import "time"

// RegisterRequest entrada para registro (auth): email, password, firm_id.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FirmID   string `json:"firm_id"`
	Name     string `json:"name"`
	Role     string `json:"role"` // admin | socio | abogado | asistente (por defecto abogado)
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string    `json:"id"`
	FirmID    string    `json:"firm_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
