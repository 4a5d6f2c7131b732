package handlers

import (
	"storedash/internal/apiclient"
	applog "storedash/internal/log"

	"github.com/gofiber/fiber/v2"
)

// TokenSource is the session provider protected routes consult.
type TokenSource interface {
	CurrentToken(sid string) (string, bool)
}

// RequireToken redirects to /login unless the session carries an owner
// token. The token is not checked against the backend; a stale one fails on
// the first API call instead.
func RequireToken(src TokenSource) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tok, ok := src.CurrentToken(c.Cookies("sid"))
		if !ok {
			applog.Security(c, "access.redirect.login", nil)
			return c.Redirect("/login")
		}
		c.Locals("token", tok)
		c.SetUserContext(apiclient.WithToken(c.UserContext(), tok))
		return c.Next()
	}
}
