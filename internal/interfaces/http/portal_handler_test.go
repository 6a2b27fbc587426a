package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sales-portal-api/internal/application/portal"
	"github.com/jhoicas/sales-portal-api/internal/domain/entity"
	"github.com/jhoicas/sales-portal-api/internal/domain/hierarchy"
	portalhttp "github.com/jhoicas/sales-portal-api/internal/interfaces/http"
	"github.com/jhoicas/sales-portal-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Almacén falso mínimo para el handler
// ──────────────────────────────────────────────────────────────────────────────

type handlerStore struct {
	users    []entity.User
	failWith error
}

func (s *handlerStore) GetByCode(_ context.Context, code string) (*entity.User, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	want := hierarchy.NormalizeCode(code)
	for _, u := range s.users {
		if hierarchy.NormalizeCode(u.Code) == want {
			out := u
			return &out, nil
		}
	}
	return nil, nil
}

func (s *handlerStore) List(_ context.Context) ([]entity.User, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	return s.users, nil
}

func (s *handlerStore) SalesmenByCode(context.Context, string) ([]entity.Salesman, error) {
	return nil, nil
}

func (s *handlerStore) SalesmenByAssigned(context.Context, []string) ([]entity.Salesman, error) {
	return nil, nil
}

func (s *handlerStore) SupervisorsByBSM(context.Context, string) ([]entity.Supervisor, error) {
	return nil, nil
}

func (s *handlerStore) BSMsByCode(context.Context, string) ([]entity.BSM, error) {
	return nil, nil
}

func (s *handlerStore) CustomerSummaries(context.Context, hierarchy.Scope) ([]entity.CustomerSummary, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	return nil, nil
}

func (s *handlerStore) CustomerDetail(context.Context, string, hierarchy.Scope) ([]entity.MasterRow, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	return nil, nil
}

type harness struct {
	app   *fiber.App
	store *handlerStore
	cache *portal.ResponseCache

	storeErrors int
}

func newHarness(notFoundStatus int) *harness {
	h := &harness{
		store: &handlerStore{users: []entity.User{
			{Code: "S1", Name: "Vendedor Uno", Role: "Salesman"},
			{Code: "SUP9", Name: "Supervisor Sin Equipo", Role: "Supervisor"},
		}},
		cache: portal.NewResponseCache(5*time.Minute, 200),
	}

	log := logger.Nop()
	handler := portalhttp.NewPortalHandler(portalhttp.PortalHandlerConfig{
		Login:          portal.NewLoginUseCase(h.store, h.store, h.store, h.cache, log),
		Detail:         portal.NewCustomerDetailUseCase(h.store, h.store, h.store, log),
		Users:          portal.NewUsersUseCase(h.store),
		Cache:          h.cache,
		NotFoundStatus: notFoundStatus,
		OnStoreError:   func(error) { h.storeErrors++ },
		Log:            log,
	})

	h.app = fiber.New()
	portalhttp.Router(h.app, portalhttp.RouterDeps{Portal: handler})
	return h
}

func (h *harness) get(t *testing.T, target string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest("GET", target, nil)
	resp, err := h.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body map[string]any
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &body), "cuerpo no-JSON: %s", raw)
	}
	return resp.StatusCode, body
}

// ──────────────────────────────────────────────────────────────────────────────
// Despacho por action
// ──────────────────────────────────────────────────────────────────────────────

func TestDispatch_AccionDesconocidaDevuelveAyuda(t *testing.T) {
	h := newHarness(0)

	status, body := h.get(t, "/api/portal?action=fly")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, body["help"], "login")
	assert.Contains(t, body["help"], "clearCache")
}

func TestDispatch_SinAccionDevuelveAyuda(t *testing.T) {
	h := newHarness(0)

	status, body := h.get(t, "/api/portal")
	assert.Equal(t, fiber.StatusOK, status)
	assert.NotEmpty(t, body["help"])
}

func TestDispatch_AccionCaseInsensitive(t *testing.T) {
	h := newHarness(0)

	status, body := h.get(t, "/api/portal?action=CustomerDetail&code=S1&customer=A1")
	assert.Equal(t, fiber.StatusOK, status)
	_, esAyuda := body["help"]
	assert.False(t, esAyuda, "customerDetail con mayúsculas despacha a la acción, no a la ayuda")
}

func TestDispatch_CabeceraCacheControl(t *testing.T) {
	h := newHarness(0)

	req := httptest.NewRequest("GET", "/api/portal?action=getUsers", nil)
	resp, err := h.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "public, max-age=300", resp.Header.Get(fiber.HeaderCacheControl))
}

// ──────────────────────────────────────────────────────────────────────────────
// login
// ──────────────────────────────────────────────────────────────────────────────

func TestLoginHTTP_CodigoRequerido(t *testing.T) {
	h := newHarness(0)

	status, body := h.get(t, "/api/portal?action=login")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Code required", body["error"])
}

func TestLoginHTTP_UsuarioInexistente(t *testing.T) {
	// El contrato histórico responde 200 con cuerpo de error; el status es
	// configurable para las variantes que prefieren 404.
	h := newHarness(0)

	status, body := h.get(t, "/api/portal?action=login&code=NADIE")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "User not found", body["error"])
	assert.Equal(t, "NADIE", body["code"])
}

func TestLoginHTTP_UsuarioInexistenteStatusConfigurable(t *testing.T) {
	h := newHarness(fiber.StatusNotFound)

	status, body := h.get(t, "/api/portal?action=login&code=NADIE")
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "User not found", body["error"])
}

func TestLoginHTTP_Exitoso(t *testing.T) {
	h := newHarness(0)

	status, body := h.get(t, "/api/portal?action=login&code=S1")
	assert.Equal(t, fiber.StatusOK, status)
	user, ok := body["user"].(map[string]any)
	require.True(t, ok, "la respuesta trae el bloque user")
	assert.Equal(t, "S1", user["code"])
	assert.Equal(t, "Salesman", user["role"])
}

// Con alcance vacío (supervisor sin subordinados) el JSON igual trae los
// bloques salesmenData, customerSummary y masterDataTotal: los frontends
// los iteran sin chequear que existan.
func TestLoginHTTP_AlcanceVacioEmiteBloquesVacios(t *testing.T) {
	h := newHarness(0)

	status, body := h.get(t, "/api/portal?action=login&code=SUP9")
	require.Equal(t, fiber.StatusOK, status)

	summary, ok := body["customerSummary"].([]any)
	require.True(t, ok, "customerSummary presente como arreglo, no ausente ni null")
	assert.Empty(t, summary)

	salesmen, ok := body["salesmenData"].([]any)
	require.True(t, ok, "salesmenData presente como arreglo, no ausente ni null")
	assert.Empty(t, salesmen)

	total, ok := body["masterDataTotal"].(float64)
	require.True(t, ok, "masterDataTotal presente aun en cero")
	assert.Equal(t, float64(0), total)
}

func TestLoginHTTP_ErrorDeAlmacen(t *testing.T) {
	h := newHarness(0)
	h.store.failWith = errors.New("conexión rechazada")

	status, body := h.get(t, "/api/portal?action=login&code=S1")
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, "Database error", body["error"])
	assert.Contains(t, body["message"], "conexión rechazada")
	assert.Equal(t, 1, h.storeErrors, "el fallo de almacén invalida la sesión de datos")
}

// ──────────────────────────────────────────────────────────────────────────────
// customerDetail
// ──────────────────────────────────────────────────────────────────────────────

func TestCustomerDetailHTTP_ParametrosRequeridos(t *testing.T) {
	h := newHarness(0)

	for _, target := range []string{
		"/api/portal?action=customerDetail",
		"/api/portal?action=customerDetail&code=S1",
		"/api/portal?action=customerDetail&customer=A1",
	} {
		status, body := h.get(t, target)
		assert.Equal(t, fiber.StatusOK, status)
		assert.Equal(t, "code and customer params required", body["error"], "para %s", target)
	}
}

func TestCustomerDetailHTTP_SinFilas(t *testing.T) {
	h := newHarness(0)

	status, body := h.get(t, "/api/portal?action=customerDetail&code=S1&customer=A1")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, float64(0), body["total"])
}

// ──────────────────────────────────────────────────────────────────────────────
// getUsers y clearCache
// ──────────────────────────────────────────────────────────────────────────────

func TestGetUsersHTTP(t *testing.T) {
	h := newHarness(0)

	status, body := h.get(t, "/api/portal?action=getUsers")
	assert.Equal(t, fiber.StatusOK, status)
	users, ok := body["users"].([]any)
	require.True(t, ok)
	assert.Len(t, users, 2)
}

func TestClearCacheHTTP(t *testing.T) {
	h := newHarness(0)
	h.cache.Set(portal.Key("S1", true), nil)
	require.Equal(t, 1, h.cache.Len())

	status, body := h.get(t, "/api/portal?action=clearCache")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Cache cleared", body["message"])
	assert.Equal(t, 0, h.cache.Len())
}

// ──────────────────────────────────────────────────────────────────────────────
// CORS
// ──────────────────────────────────────────────────────────────────────────────

func TestCORS_PreflightOptions(t *testing.T) {
	h := newHarness(0)

	req := httptest.NewRequest("OPTIONS", "/api/portal", nil)
	req.Header.Set("Origin", "https://portal.example.com")
	req.Header.Set("Access-Control-Request-Method", "GET")
	resp, err := h.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestCORS_OrigenAbiertoEnGet(t *testing.T) {
	h := newHarness(0)

	req := httptest.NewRequest("GET", "/api/portal?action=getUsers", nil)
	req.Header.Set("Origin", "https://otro.example.com")
	resp, err := h.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}
