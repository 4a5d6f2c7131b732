package handlers

import (
	"errors"

	"storedash/internal/domain"
	applog "storedash/internal/log"
	"storedash/internal/services"
	"storedash/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type TransactionHandler struct {
	Transactions *services.TransactionService
}

// GET /transactions?q=&date=yyyy-mm-dd
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	v, data := listPage[domain.Transaction](c, "transactions.list.fail", h.Transactions.List, h.Transactions.Reload)
	day, ok := validate.Day(c.Query("date"))
	if ok {
		data["Date"] = day.Format("2006-01-02")
	}
	if data["State"] == "loaded" {
		items := services.FilterTransactions(v.Items(), validate.Q(c.Query("q")), day)
		data["Items"] = items
		data["Shown"] = len(items)
	}
	return render(c, "transactions", data)
}

// GET /transactions/:id
func (h *TransactionHandler) Detail(c *fiber.Ctx) error {
	t, err := h.Transactions.Get(c.Params("id"))
	if errors.Is(err, services.ErrNotFound) {
		return notFound(c, "Transaction not found")
	}
	if err != nil {
		applog.Error(c, "transactions.detail.fail", err, nil)
		flashError(c, userMessage(err))
		return c.Redirect("/transactions")
	}
	return render(c, "transaction_detail", fiber.Map{"Txn": t})
}
