package entity

// SessionStatus estado de la sesión del comerciante.
type SessionStatus string

// Estados válidos de la sesión.
const (
	SessionLoading         SessionStatus = "loading"
	SessionUnauthenticated SessionStatus = "unauthenticated"
	SessionAuthenticated   SessionStatus = "authenticated"
)

// Planes de suscripción.
const (
	PlanFree    = "free"
	PlanStarter = "starter"
	PlanGrowth  = "growth"
	PlanPro     = "pro"
)

// UserProfile perfil del usuario autenticado. Solo lo reemplaza la sesión
// (login, registro o recarga explícita del perfil).
type UserProfile struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Plan  string `json:"plan"` // free, starter, growth, pro
}

// PlanProductLimit límite de productos del catálogo por plan (0 = ilimitado).
// Solo informativo: quien aplica el límite es el API remoto.
func PlanProductLimit(plan string) int {
	switch plan {
	case PlanFree:
		return 10
	case PlanStarter:
		return 50
	case PlanGrowth:
		return 200
	default:
		return 0
	}
}
