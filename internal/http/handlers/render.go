package handlers

import (
	"github.com/gofiber/fiber/v2"
)

func render(c *fiber.Ctx, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	if shop, ok := c.Locals("shop").(string); ok {
		data["ShopName"] = shop
	}
	data["Authenticated"] = c.Locals("token") != nil
	data["Path"] = c.Path()
	if f := takeFlash(c); f != nil {
		data["Flash"] = f
	}
	// Pick up the token the CSRF middleware put into Locals
	tok, _ := c.Locals("CSRFToken").(string)
	if tok == "" {
		// first request of a session: the cookie is set on this response
		tok = c.Cookies("csrf_")
	}
	if tok != "" {
		data["CSRFToken"] = tok
	}
	return c.Render(tmpl, data)
}

// renderStatus renders with a non-200 status, e.g. a form that failed.
func renderStatus(c *fiber.Ctx, status int, tmpl string, data fiber.Map) error {
	c.Status(status)
	return render(c, tmpl, data)
}

func notFound(c *fiber.Ctx, msg string) error {
	return renderStatus(c, fiber.StatusNotFound, "notfound", fiber.Map{"Message": msg})
}
