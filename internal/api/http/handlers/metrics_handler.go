package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/job-tracker/internal/observability"
	"github.com/spec-kit/job-tracker/internal/service"
)

// MetricsHandler exposes in-process counters.
type MetricsHandler struct {
	metrics  *observability.Metrics
	activity *service.ActivityService
}

// NewMetricsHandler constructs handler. activity may be nil.
func NewMetricsHandler(metrics *observability.Metrics, activity *service.ActivityService) *MetricsHandler {
	return &MetricsHandler{metrics: metrics, activity: activity}
}

// Snapshot handles GET /metrics.
func (h *MetricsHandler) Snapshot(c *fiber.Ctx) error {
	body := fiber.Map{"http": h.metrics.Snapshot()}
	if h.activity != nil {
		body["events"] = h.activity.Counts()
	}
	return c.JSON(body)
}
