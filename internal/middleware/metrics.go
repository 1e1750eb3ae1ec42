package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// EntityOps counts successful create/update/delete operations per entity.
var EntityOps = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "blogly_entity_operations_total",
		Help: "Total number of successful entity lifecycle operations.",
	},
	[]string{"entity", "operation"},
)

// InitMetrics creates the Prometheus HTTP middleware and registers the
// /metrics endpoint on the app.
func InitMetrics(serviceName string, app *fiber.App) *fiberprometheus.FiberPrometheus {
	prom := fiberprometheus.New(serviceName)
	prom.RegisterAt(app, "/metrics")
	return prom
}

// MetricsMiddleware returns the request-level Prometheus middleware.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
