package handlers

import (
	"storedash/internal/listview"
	applog "storedash/internal/log"
	"storedash/internal/validate"

	"github.com/gofiber/fiber/v2"
)

// listPage loads a collection through the shared cache and filters it by ?q=.
// ?retry=1 drops the cached entry first. A failed load renders the page in
// its error state rather than failing the request.
func listPage[T listview.Searchable](c *fiber.Ctx, action string, fetch, reload listview.FetchFunc[T]) (*listview.View[T], fiber.Map) {
	if c.Query("retry") == "1" {
		fetch = reload
	}
	q := validate.Q(c.Query("q"))
	v := listview.NewView(fetch)
	data := fiber.Map{"Query": q, "State": "loaded"}
	if v.Load(c.UserContext()) == listview.Error {
		applog.Error(c, action, v.Err(), nil)
		data["State"] = "error"
		data["LoadErr"] = userMessage(v.Err())
		return v, data
	}
	items := v.Filtered(q)
	data["Items"] = items
	data["Total"] = len(v.Items())
	data["Shown"] = len(items)
	return v, data
}
