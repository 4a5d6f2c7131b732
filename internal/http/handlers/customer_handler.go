package handlers

import (
	"storedash/internal/domain"
	"storedash/internal/services"

	"github.com/gofiber/fiber/v2"
)

type CustomerHandler struct {
	Customers *services.CustomerService
}

// GET /customers
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	_, data := listPage[domain.Customer](c, "customers.list.fail", h.Customers.List, h.Customers.Reload)
	return render(c, "customers", data)
}
