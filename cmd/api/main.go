package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/sales-portal-api/internal/application/portal"
	"github.com/jhoicas/sales-portal-api/internal/domain/repository"
	"github.com/jhoicas/sales-portal-api/internal/infrastructure/postgres"
	"github.com/jhoicas/sales-portal-api/internal/infrastructure/spreadsheet"
	httpRouter "github.com/jhoicas/sales-portal-api/internal/interfaces/http"
	"github.com/jhoicas/sales-portal-api/pkg/config"
	"github.com/jhoicas/sales-portal-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	// Backend de datos: Postgres con sesión perezosa autorreparable, o el
	// clon respaldado por hoja de cálculo (mismo contrato, carga completa
	// al arranque).
	var (
		userRepo     repository.UserRepository
		dirRepo      repository.DirectoryRepository
		salesRepo    repository.SalesRepository
		onStoreError func(error)
	)
	switch cfg.Store.Driver {
	case config.StoreSpreadsheet:
		store, err := spreadsheet.Open(cfg.Store.SpreadsheetPath)
		if err != nil {
			log.Fatal().Err(err).Msg("cargar hoja de cálculo")
		}
		userRepo, dirRepo, salesRepo = store, store, store
		onStoreError = func(error) {} // sin conexión que invalidar
	default:
		session := postgres.NewSession(cfg.DB)
		defer session.Close()
		userRepo = postgres.NewUserRepository(session)
		dirRepo = postgres.NewDirectoryRepository(session)
		salesRepo = postgres.NewSalesRepository(session)
		onStoreError = func(err error) {
			if postgres.IsConnectionError(err) {
				log.Warn().Err(err).Msg("conexión degradada; invalidando sesión de datos")
				session.Invalidate()
			}
		}
	}

	cache := portal.NewResponseCache(
		time.Duration(cfg.Portal.CacheTTLMinutes)*time.Minute,
		cfg.Portal.CacheMaxEntries,
	)

	loginUC := portal.NewLoginUseCase(userRepo, dirRepo, salesRepo, cache, log)
	detailUC := portal.NewCustomerDetailUseCase(userRepo, dirRepo, salesRepo, log)
	usersUC := portal.NewUsersUseCase(userRepo)

	portalHandler := httpRouter.NewPortalHandler(httpRouter.PortalHandlerConfig{
		Login:          loginUC,
		Detail:         detailUC,
		Users:          usersUC,
		Cache:          cache,
		NotFoundStatus: cfg.Portal.NotFoundStatus,
		OnStoreError:   onStoreError,
		Log:            log,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Sales Portal API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{Portal: portalHandler})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
