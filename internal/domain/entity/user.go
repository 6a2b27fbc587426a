package entity

// Roles válidos para User (comparación case-insensitive sobre el valor normalizado).
const (
	RoleSalesman   = "salesman"
	RoleSupervisor = "supervisor"
	RoleBSM        = "bsm"
	RoleManagement = "management"
)

// User representa un usuario del portal. Datos de referencia inmutables:
// el portal nunca los modifica.
type User struct {
	Code string
	Name string
	Role string // salesman, supervisor, bsm, management
}
