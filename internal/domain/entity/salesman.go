package entity

import "github.com/shopspring/decimal"

// AssignmentKind distingue los dos significados posibles del campo
// "Assigned SUP" de la fuente: un código de supervisor o, directamente,
// un código de BSM (vendedor colgado del BSM sin supervisor intermedio).
type AssignmentKind int

const (
	// AssignedToSupervisor el código apunta a un Supervisor.
	AssignedToSupervisor AssignmentKind = iota
	// AssignedToBSMDirect el código apunta directamente a un BSM.
	AssignedToBSMDirect
)

// Assignment unión etiquetada para la clave foránea de doble significado.
// Se resuelve una sola vez al cargar el registro, en vez de reinterpretar
// la cadena cruda en cada consulta.
type Assignment struct {
	Code string
	Kind AssignmentKind
}

// Salesman registro de un vendedor con sus métricas de desempeño.
type Salesman struct {
	Code       string
	Name       string
	AssignedTo Assignment
	RouteCode  string
	Branch     string
	TargetCY   decimal.Decimal
	ActualCY   decimal.Decimal
}
