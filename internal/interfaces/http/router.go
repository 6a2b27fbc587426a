package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Portal *PortalHandler
}

// Router registra las rutas de la API. El portal es un endpoint único
// despachado por query param; CORS abierto (los frontends estáticos llaman
// desde cualquier origen) y preflight OPTIONS respondido con 204.
func Router(app *fiber.App, deps RouterDeps) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,OPTIONS",
		AllowHeaders: "Content-Type",
	}))
	app.Use(RequestID())

	api := app.Group("/api")
	api.Get("/portal", deps.Portal.Dispatch)
}
