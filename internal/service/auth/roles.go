package auth

// Role identifies the platform role carried in the token's "rol" claim.
// The identity service issues the Spanish role names used across the
// platform; they are kept verbatim here so tokens validate unchanged.
type Role string

const (
	// RoleCoach owns routines and goals and assigns them to athletes.
	RoleCoach Role = "Entrenador"

	// RoleAthlete receives assignments and may update only their own.
	RoleAthlete Role = "Atleta"

	// RoleAdmin manages the sport reference data.
	RoleAdmin Role = "Administrador"
)

// IsValidRole reports whether the given role is one the platform issues.
func IsValidRole(role Role) bool {
	switch role {
	case RoleCoach, RoleAthlete, RoleAdmin:
		return true
	default:
		return false
	}
}
