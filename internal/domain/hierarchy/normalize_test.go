package hierarchy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/sales-portal-api/internal/domain/hierarchy"
)

// Los datos de origen traen espacios sueltos en los códigos; toda la
// comparación del portal pasa por estas funciones.

func TestNormalizeCode_RecortaEspacios(t *testing.T) {
	assert.Equal(t, "A1", hierarchy.NormalizeCode("  A1  "))
	assert.Equal(t, "A1", hierarchy.NormalizeCode("A1"))
	assert.Equal(t, "A 1", hierarchy.NormalizeCode(" A 1 "),
		"los espacios internos se conservan; solo se recortan los extremos")
}

func TestNormalizeCode_VacioQuedaVacio(t *testing.T) {
	assert.Equal(t, "", hierarchy.NormalizeCode(""))
	assert.Equal(t, "", hierarchy.NormalizeCode("   "),
		"un código de solo espacios normaliza a vacío y no matchea nada")
}

func TestNormalizeRole_CaseInsensitive(t *testing.T) {
	assert.Equal(t, "bsm", hierarchy.NormalizeRole(" BSM "))
	assert.Equal(t, "salesman", hierarchy.NormalizeRole("Salesman"))
	assert.Equal(t, "management", hierarchy.NormalizeRole("MANAGEMENT"))
}

func TestCodesEqual(t *testing.T) {
	assert.True(t, hierarchy.CodesEqual(" S1", "S1 "))
	assert.False(t, hierarchy.CodesEqual("S1", "s1"),
		"los códigos NO se comparan case-insensitive; solo los roles")
}
