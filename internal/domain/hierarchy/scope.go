package hierarchy

// Scope es el conjunto de códigos aguas abajo que un usuario está
// autorizado a ver. Es el resultado de resolver la jerarquía
// Management → BSM → Supervisor → Salesman desde un código raíz.
type Scope struct {
	// SalesmanCodes códigos de vendedor autorizados, normalizados y sin
	// duplicados, en orden de descubrimiento.
	SalesmanCodes []string
	// SupervisorCodes códigos de supervisor bajo el BSM raíz (vacío para
	// los demás roles).
	SupervisorCodes []string
	// DirectBSMCode código del BSM raíz; habilita la cláusula OR contra el
	// campo supervisor de las filas de hechos para cubrir filas atribuidas
	// directamente al BSM sin vendedor intermedio. Vacío si no aplica.
	DirectBSMCode string
	// Unrestricted true solo para Management: ve todo sin filtro.
	Unrestricted bool
}

// Empty indica que el alcance no autoriza ninguna fila. Un alcance vacío
// debe traducirse en "la consulta no matchea nada", jamás en una consulta
// sin restricción: confundir ambos casos es una fuga de datos.
func (s Scope) Empty() bool {
	return !s.Unrestricted && len(s.SalesmanCodes) == 0 && s.DirectBSMCode == ""
}

// Contains indica si un código de vendedor (normalizado) está autorizado.
func (s Scope) Contains(salesmanCode string) bool {
	if s.Unrestricted {
		return true
	}
	for _, c := range s.SalesmanCodes {
		if CodesEqual(c, salesmanCode) {
			return true
		}
	}
	return false
}

// MatchesRow aplica la regla de autorización a una fila de hechos:
// vendedor dentro del alcance, o fila atribuida directamente al BSM raíz
// vía su campo supervisor.
func (s Scope) MatchesRow(salesmanCode, supervisorCode string) bool {
	if s.Unrestricted {
		return true
	}
	if s.Contains(salesmanCode) {
		return true
	}
	return s.DirectBSMCode != "" && CodesEqual(supervisorCode, s.DirectBSMCode)
}
