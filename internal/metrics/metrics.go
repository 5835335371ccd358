// Package metrics exposes request counters and latency histograms in the
// Prometheus text format.
package metrics

import (
	"errors"
	"fmt"
	"time"

	vm "github.com/VictoriaMetrics/metrics"
	"github.com/gofiber/fiber/v2"
)

// Middleware counts requests per method, route template and status, and
// records their latency per route.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		route := c.Route().Path
		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}
		}

		vm.GetOrCreateCounter(fmt.Sprintf(
			`inventory_http_requests_total{method=%q,route=%q,status="%d"}`,
			c.Method(), route, status,
		)).Inc()
		vm.GetOrCreateHistogram(fmt.Sprintf(
			`inventory_http_request_duration_seconds{route=%q}`, route,
		)).UpdateDuration(start)

		return err
	}
}

// Handler serves GET /metrics.
func Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderContentType, "text/plain; version=0.0.4")
		vm.WritePrometheus(c.Response().BodyWriter(), true)
		return nil
	}
}
