package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"storedash/internal/domain"
	applog "storedash/internal/log"
	"storedash/internal/services"
	"storedash/internal/validate"
)

type InventoryHandler struct {
	Inv *services.InventoryService
}

var stockFilters = []string{string(domain.InStock), string(domain.LowStock), string(domain.OutOfStock)}

// GET /inventory?q=&status=
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	v, data := listPage[domain.InventoryItem](c, "inventory.list.fail", h.Inv.Items, h.Inv.Reload)
	status := c.Query("status")
	if !validate.OneOf(status, stockFilters) {
		status = ""
	}
	data["Status"] = status
	data["StockFilters"] = stockFilters
	if data["State"] == "loaded" {
		items := services.FilterInventory(v.Items(), validate.Q(c.Query("q")), status)
		data["Items"] = items
		data["Shown"] = len(items)
		data["Summary"] = services.Summarize(v.Items())
	}
	if adj, err := h.Inv.RecentAdjustments(10); err == nil {
		data["Adjustments"] = adj
	}
	return render(c, "inventory", data)
}

func (h *InventoryHandler) adjustForm(c *fiber.Ctx, status int, p domain.Product, delta, reason string, err error) error {
	data := fiber.Map{"Product": p, "Delta": delta, "Reason": reason}
	if err != nil {
		data["Err"] = userMessage(err)
	}
	return renderStatus(c, status, "inventory_adjust", data)
}

// product loads the product named by :id. When it returns false the
// response has already been written.
func (h *InventoryHandler) product(c *fiber.Ctx) (domain.Product, bool, error) {
	id := c.Params("id")
	p, err := h.Inv.Catalog.Product(c.UserContext(), id)
	if errors.Is(err, services.ErrNotFound) {
		return p, false, notFound(c, "Product not found")
	}
	if err != nil {
		applog.Error(c, "inventory.load.fail", err, map[string]any{"product": id})
		flashError(c, userMessage(err))
		return p, false, c.Redirect("/inventory")
	}
	return p, true, nil
}

// GET /inventory/:id/adjust
func (h *InventoryHandler) AdjustForm(c *fiber.Ctx) error {
	p, ok, err := h.product(c)
	if !ok {
		return err
	}
	return h.adjustForm(c, fiber.StatusOK, p, "", "", nil)
}

// POST /inventory/:id/adjust
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	p, ok, err := h.product(c)
	if !ok {
		return err
	}
	rawDelta := c.FormValue("delta")
	reason := strings.TrimSpace(c.FormValue("reason"))
	delta, ok := validate.Delta(rawDelta)
	if !ok {
		return h.adjustForm(c, fiber.StatusUnprocessableEntity, p, rawDelta, reason,
			&validate.Error{Msg: "Enter a whole number other than zero"})
	}
	next, err := h.Inv.Adjust(c.UserContext(), p.ID, delta, reason)
	if err != nil {
		applog.Error(c, "inventory.adjust.fail", err, map[string]any{"product": p.ID, "delta": delta})
		return h.adjustForm(c, formStatus(err), p, rawDelta, reason, err)
	}
	applog.Audit(c, "inventory.adjust", map[string]any{"product": p.ID, "delta": delta, "qty": next, "reason": reason})
	flashSuccess(c, "Adjusted "+p.Name+" by "+signed(delta)+" units")
	return c.Redirect("/inventory")
}

// GET /api/v1/stock?productId=
func (h *InventoryHandler) Check(c *fiber.Ctx) error {
	productID, ok := validate.ID(c.Query("productId"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "missing productId",
		})
	}

	p, err := h.Inv.Catalog.Product(c.UserContext(), productID)
	if errors.Is(err, services.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "unknown product"})
	}
	if err != nil {
		applog.Error(c, "inventory.check.fail", err, map[string]any{"product": productID})
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": userMessage(err),
		})
	}
	return c.JSON(fiber.Map{
		"product_id": p.ID,
		"quantity":   p.Quantity,
		"status":     p.StockStatus(),
	})
}
