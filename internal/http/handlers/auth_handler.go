package handlers

import (
	"errors"
	"time"

	"storedash/internal/apiclient"
	"storedash/internal/log"
	"storedash/internal/services"
	"storedash/internal/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AuthHandler struct {
	Sessions *services.SessionService
}

func ensureSID(c *fiber.Ctx) string {
	sid := c.Cookies("sid")
	if sid == "" {
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     "sid",
			Value:    sid,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			Secure:   false,
		})
	}
	return sid
}

func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	if h.Sessions.IsAuthenticated(c.Cookies("sid")) {
		return c.Redirect("/dashboard")
	}
	return render(c, "login", fiber.Map{"Err": ""})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	sid := ensureSID(c)
	email := c.FormValue("email")
	pass := c.FormValue("password")
	if err := validate.Required(email, pass); err != nil {
		log.Security(c, "auth.login.fail", map[string]any{"reason": "missing_fields"})
		return renderStatus(c, fiber.StatusUnprocessableEntity, "login", fiber.Map{"Err": userMessage(err), "Email": email})
	}

	if err := h.Sessions.Login(c.UserContext(), sid, email, pass); err != nil {
		log.Security(c, "auth.login.fail", map[string]any{"email": email, "err": err.Error()})
		msg := userMessage(err)
		status := fiber.StatusUnauthorized
		var apiErr *apiclient.APIError
		if !errors.As(err, &apiErr) {
			status = fiber.StatusBadGateway
		} else if apiErr.Detail == "" {
			msg = "Login failed"
		}
		return renderStatus(c, status, "login", fiber.Map{"Err": msg, "Email": email})
	}

	log.Audit(c, "auth.login.success", map[string]any{"email": email})
	flashSuccess(c, "Logged in successfully")
	return c.Redirect("/dashboard")
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sid := ensureSID(c)
	_ = h.Sessions.Logout(sid)
	// Expire cookie
	c.Cookie(&fiber.Cookie{
		Name:     "sid",
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   false,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
	log.Audit(c, "auth.logout", nil)
	return c.Redirect("/login")
}
