package dto

import "github.com/jhoicas/inventario-console/internal/domain/entity"

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// RegisterRequest entrada para registro; el plan por defecto lo asigna el servidor.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=200"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// AuthResponse salida de login/registro.
type AuthResponse struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}

// UserDTO usuario en el formato del API remoto (acepta "id" o "_id").
type UserDTO struct {
	ID      string `json:"id,omitempty"`
	MongoID string `json:"_id,omitempty"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Plan    string `json:"plan"`
}

// ToEntity convierte al perfil de dominio.
func (u UserDTO) ToEntity() entity.UserProfile {
	id := u.ID
	if id == "" {
		id = u.MongoID
	}
	plan := u.Plan
	if plan == "" {
		plan = entity.PlanFree
	}
	return entity.UserProfile{ID: id, Name: u.Name, Email: u.Email, Plan: plan}
}

// UserFromEntity formato remoto de un perfil (lo usa el sandbox).
func UserFromEntity(u entity.UserProfile) UserDTO {
	return UserDTO{ID: u.ID, Name: u.Name, Email: u.Email, Plan: u.Plan}
}
