package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

// RequestObserver recibe una observación por petición terminada.
type RequestObserver interface {
	ObserveRequest(route, method string, status int, elapsed time.Duration)
}

// MetricsMiddleware mide cada petición usando la ruta registrada (no la URL) como etiqueta.
func MetricsMiddleware(obs RequestObserver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}
		// Method y Route().Path apuntan a buffers que fasthttp reutiliza; Prometheus guarda las etiquetas.
		obs.ObserveRequest(utils.CopyString(c.Route().Path), utils.CopyString(c.Method()), status, time.Since(start))
		return err
	}
}

// TraceContextMiddleware extrae traceparent/baggage de los headers al UserContext,
// para que los spans del caso de uso cuelguen de la traza del llamador.
func TraceContextMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		carrier := propagation.MapCarrier{}
		for k, v := range c.GetReqHeaders() {
			if len(v) > 0 {
				carrier[strings.ToLower(k)] = v[0]
			}
		}
		ctx := otel.GetTextMapPropagator().Extract(c.UserContext(), carrier)
		c.SetUserContext(ctx)
		return c.Next()
	}
}
