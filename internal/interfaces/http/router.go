package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/platform/observability"
)

// ReadinessChecker comprueba que las dependencias estén disponibles.
type ReadinessChecker interface {
	Ping(ctx context.Context) error
}

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Fulfillment WarehouseFulfiller
	Readiness   ReadinessChecker
	Metrics     *observability.Metrics
	AppName     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Metrics != nil {
		app.Use(MetricsMiddleware(deps.Metrics))
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics.Handler()))
	}
	app.Use(TraceContextMiddleware())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})
	app.Get("/ready", func(c *fiber.Ctx) error {
		if deps.Readiness != nil {
			if err := deps.Readiness.Ping(c.UserContext()); err != nil {
				return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "UNAVAILABLE", Message: err.Error()})
			}
		}
		return c.JSON(fiber.Map{"status": "ready"})
	})

	api := app.Group("/api")

	// Despacho de reposición (público: sin autenticación)
	wh := api.Group("/warehouse")
	warehouseHandler := NewWarehouseHandler(deps.Fulfillment)
	wh.Post("/", warehouseHandler.AddProduct)
	wh.Post("/via-procedure", warehouseHandler.AddProductViaProcedure)
	wh.Get("/receipts/:id", warehouseHandler.GetReceipt)
}
