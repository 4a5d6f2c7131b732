package handlers

import (
	"errors"

	"storedash/internal/domain"
	applog "storedash/internal/log"
	"storedash/internal/services"
	"storedash/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type OrderHandler struct {
	Orders *services.OrderService
}

// GET /orders
func (h *OrderHandler) List(c *fiber.Ctx) error {
	_, data := listPage[domain.Order](c, "orders.list.fail", h.Orders.Orders, h.Orders.Reload)
	return render(c, "orders", data)
}

// GET /orders/:id
func (h *OrderHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return notFound(c, "Order not found")
	}
	o, err := h.Orders.Order(c.UserContext(), id)
	if errors.Is(err, services.ErrNotFound) {
		return notFound(c, "Order not found")
	}
	if err != nil {
		applog.Error(c, "orders.detail.fail", err, map[string]any{"id": id})
		flashError(c, userMessage(err))
		return c.Redirect("/orders")
	}
	return render(c, "order_detail", fiber.Map{"Order": o, "Statuses": domain.OrderStatuses})
}

// POST /orders/:id/status
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return notFound(c, "Order not found")
	}
	o, err := h.Orders.Order(c.UserContext(), id)
	if err != nil {
		applog.Error(c, "orders.status.load.fail", err, map[string]any{"id": id})
		flashError(c, userMessage(err))
		return c.Redirect("/orders")
	}
	status := domain.OrderStatus(c.FormValue("status"))
	back := "/orders/" + o.ID
	if err := h.Orders.UpdateStatus(c.UserContext(), o.OrderID, status); err != nil {
		applog.Error(c, "orders.status.fail", err, map[string]any{"order_id": o.OrderID, "status": status})
		flashError(c, userMessage(err))
		return c.Redirect(back)
	}
	applog.Audit(c, "orders.status", map[string]any{"order_id": o.OrderID, "status": status})
	flashSuccess(c, "Order status updated to "+string(status))
	return c.Redirect(back)
}
