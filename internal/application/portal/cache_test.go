package portal_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sales-portal-api/internal/application/dto"
	"github.com/jhoicas/sales-portal-api/internal/application/portal"
)

func loginBody(code string) *dto.LoginResponse {
	return &dto.LoginResponse{User: &dto.UserDTO{Code: code}}
}

func TestResponseCache_HitDentroDelTTL(t *testing.T) {
	c := portal.NewResponseCache(5*time.Minute, 200)
	base := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	now := base
	c.SetNow(func() time.Time { return now })

	key := portal.Key("S1", true)
	c.Set(key, loginBody("S1"))

	now = base.Add(4 * time.Minute)
	got, ok := c.Get(key)
	require.True(t, ok, "a los 4 minutos la entrada sigue viva")
	assert.Equal(t, "S1", got.User.Code)
}

func TestResponseCache_ExpiraPasadoElTTL(t *testing.T) {
	c := portal.NewResponseCache(5*time.Minute, 200)
	base := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	now := base
	c.SetNow(func() time.Time { return now })

	key := portal.Key("S1", true)
	c.Set(key, loginBody("S1"))

	now = base.Add(6 * time.Minute)
	_, ok := c.Get(key)
	assert.False(t, ok, "a los 6 minutos la entrada venció")
	assert.Equal(t, 0, c.Len(), "la entrada vencida se elimina al leerla")
}

// Al superar las 200 entradas se desaloja la mitad más vieja: tras 201
// inserciones quedan 101, y las 100 primeras ya no están.
func TestResponseCache_DesalojoPorCapacidad(t *testing.T) {
	c := portal.NewResponseCache(5*time.Minute, 200)
	base := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	now := base
	c.SetNow(func() time.Time { return now })

	for i := 0; i < 201; i++ {
		now = base.Add(time.Duration(i) * time.Second)
		c.Set(portal.Key(fmt.Sprintf("S%03d", i), true), loginBody("x"))
	}

	assert.Equal(t, 101, c.Len())

	_, ok := c.Get(portal.Key("S000", true))
	assert.False(t, ok, "la entrada más vieja fue desalojada")
	_, ok = c.Get(portal.Key("S200", true))
	assert.True(t, ok, "la entrada más reciente sobrevive al desalojo")
	_, ok = c.Get(portal.Key("S100", true))
	assert.True(t, ok, "la mitad nueva sobrevive completa")
}

func TestResponseCache_Clear(t *testing.T) {
	c := portal.NewResponseCache(5*time.Minute, 200)
	c.Set(portal.Key("S1", true), loginBody("S1"))
	c.Set(portal.Key("S1", false), loginBody("S1"))
	require.Equal(t, 2, c.Len())

	c.Clear()
	assert.Equal(t, 0, c.Len())
	_, ok := c.Get(portal.Key("S1", true))
	assert.False(t, ok)
}

// La clave distingue el modo de presentación: resumen y detalle del mismo
// código no se pisan entre sí.
func TestResponseCache_ClavePorModo(t *testing.T) {
	c := portal.NewResponseCache(5*time.Minute, 200)
	c.Set(portal.Key("S1", true), loginBody("resumen"))
	c.Set(portal.Key("S1", false), loginBody("completo"))

	got, ok := c.Get(portal.Key("S1", true))
	require.True(t, ok)
	assert.Equal(t, "resumen", got.User.Code)

	got, ok = c.Get(portal.Key("S1", false))
	require.True(t, ok)
	assert.Equal(t, "completo", got.User.Code)
}
