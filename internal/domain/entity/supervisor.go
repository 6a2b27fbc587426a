package entity

// Supervisor registro de un supervisor y el BSM al que reporta.
type Supervisor struct {
	Code        string
	Name        string
	AssignedBSM string
	Branch      string
}

// BSM (Branch Sales Manager) nivel superior de la jerarquía comercial
// por debajo de Management.
type BSM struct {
	Code   string
	Name   string
	Region string
}
