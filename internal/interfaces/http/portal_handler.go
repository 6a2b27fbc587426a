package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sales-portal-api/internal/application/dto"
	"github.com/jhoicas/sales-portal-api/internal/application/portal"
	"github.com/jhoicas/sales-portal-api/internal/domain"
	"github.com/jhoicas/sales-portal-api/pkg/logger"
)

// PortalHandler despacha el endpoint único del portal según el parámetro
// `action` (login, customerDetail, getUsers, clearCache). Una acción no
// reconocida devuelve el payload de ayuda.
type PortalHandler struct {
	login  *portal.LoginUseCase
	detail *portal.CustomerDetailUseCase
	users  *portal.UsersUseCase
	cache  *portal.ResponseCache

	// notFoundStatus status HTTP para "User not found"; las variantes
	// históricas del portal difieren, así que es configurable.
	notFoundStatus int

	// onStoreError hook de invalidación de la sesión de datos; se invoca
	// ante fallos del almacén para que la próxima petición reconecte.
	onStoreError func(error)

	log *logger.Logger
}

// PortalHandlerConfig dependencias del handler.
type PortalHandlerConfig struct {
	Login          *portal.LoginUseCase
	Detail         *portal.CustomerDetailUseCase
	Users          *portal.UsersUseCase
	Cache          *portal.ResponseCache
	NotFoundStatus int
	OnStoreError   func(error)
	Log            *logger.Logger
}

// NewPortalHandler construye el handler.
func NewPortalHandler(cfg PortalHandlerConfig) *PortalHandler {
	h := &PortalHandler{
		login:          cfg.Login,
		detail:         cfg.Detail,
		users:          cfg.Users,
		cache:          cfg.Cache,
		notFoundStatus: cfg.NotFoundStatus,
		onStoreError:   cfg.OnStoreError,
		log:            cfg.Log,
	}
	if h.notFoundStatus == 0 {
		h.notFoundStatus = fiber.StatusOK
	}
	if h.onStoreError == nil {
		h.onStoreError = func(error) {}
	}
	if h.log == nil {
		h.log = logger.Nop()
	}
	return h
}

// Dispatch GET /api/portal?action=...
func (h *PortalHandler) Dispatch(c *fiber.Ctx) error {
	// Las respuestas del portal son cacheables aguas abajo por 5 minutos,
	// alineado con el TTL de la caché del servidor.
	c.Set(fiber.HeaderCacheControl, "public, max-age=300")

	switch strings.ToLower(c.Query("action")) {
	case "login":
		return h.handleLogin(c)
	case "customerdetail":
		return h.handleCustomerDetail(c)
	case "getusers":
		return h.handleGetUsers(c)
	case "clearcache":
		return h.handleClearCache(c)
	default:
		return c.JSON(dto.HelpResponse{
			Help:   "Actions: login, customerDetail, getUsers, clearCache",
			Params: "code=X, customer=Y (for customerDetail), nocache=1",
		})
	}
}

func (h *PortalHandler) handleLogin(c *fiber.Ctx) error {
	code := strings.TrimSpace(c.Query("code"))
	if code == "" {
		return c.JSON(dto.PortalError{Error: "Code required"})
	}

	opts := portal.LoginOptions{
		NoCache:     c.Query("nocache") == "1",
		SummaryMode: c.Query("summary") != "0", // default encendido desde v5
	}

	resp, err := h.login.Login(c.Context(), code, opts)
	if err != nil {
		return h.fail(c, err, code)
	}
	return c.JSON(resp)
}

func (h *PortalHandler) handleCustomerDetail(c *fiber.Ctx) error {
	code := strings.TrimSpace(c.Query("code"))
	customer := strings.TrimSpace(c.Query("customer"))
	if code == "" || customer == "" {
		return c.JSON(dto.PortalError{Error: "code and customer params required"})
	}

	resp, err := h.detail.Fetch(c.Context(), code, customer)
	if err != nil {
		return h.fail(c, err, code)
	}
	return c.JSON(resp)
}

func (h *PortalHandler) handleGetUsers(c *fiber.Ctx) error {
	resp, err := h.users.List(c.Context())
	if err != nil {
		return h.fail(c, err, "")
	}
	return c.JSON(resp)
}

func (h *PortalHandler) handleClearCache(c *fiber.Ctx) error {
	h.cache.Clear()
	return c.JSON(dto.ClearCacheResponse{Success: true, Message: "Cache cleared"})
}

// fail traduce errores a los cuerpos del contrato: usuario inexistente y
// entrada inválida son parte del flujo normal; cualquier otro fallo es del
// almacén, se loguea, invalida la sesión de datos y sale como el genérico
// "Database error" sin filtrar detalles internos más allá del message.
func (h *PortalHandler) fail(c *fiber.Ctx, err error, code string) error {
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return c.Status(h.notFoundStatus).JSON(dto.PortalError{Error: "User not found", Code: code})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.JSON(dto.PortalError{Error: "Code required"})
	default:
		h.log.Error().Err(err).Str("request_id", GetRequestID(c)).Msg("error de almacén en el portal")
		h.onStoreError(err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(dto.PortalError{Error: "Database error", Message: err.Error()})
	}
}
