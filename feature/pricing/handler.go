package pricing

import (
	"price-manager/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the pricing feature.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the pricing routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/pricing")
	group.Post("/reconcile", h.HandleReconcile)
	group.Get("/history/:id", h.HandleHistory)
}

// HandleReconcile triggers a reconciliation run against the configured
// feed and returns the run summary. A fatal failure (feed unreachable,
// unrecognized document) maps to 502; partial chunk failures are still
// a 200 with the errors enumerated in the body.
func (h *Handler) HandleReconcile(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	summary := h.service.Reconcile(c.Context())
	if !summary.Success {
		l.Error("Reconciliation failed", zap.String("error", summary.Error))
		return c.Status(fiber.StatusBadGateway).JSON(summary)
	}

	return c.JSON(summary)
}

// HandleHistory returns the most recent price changes for one product.
func (h *Handler) HandleHistory(c *fiber.Ctx) error {
	productID := c.Params("id")
	limit := c.QueryInt("limit", 50)

	l := logger.WithRayID(h.service.logger, c)

	entries, err := h.service.History(c.Context(), productID, limit)
	if err != nil {
		l.Error("Price history lookup failed", zap.String("product_id", productID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(entries)
}
