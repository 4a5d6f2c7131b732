package handlers

import (
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

const flashCookie = "flash"

// Flash is a one-shot notification shown on the next rendered page.
type Flash struct {
	Kind    string // success | error
	Message string
}

func setFlash(c *fiber.Ctx, kind, msg string) {
	c.Cookie(&fiber.Cookie{
		Name:     flashCookie,
		Value:    url.QueryEscape(kind + "|" + msg),
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func flashSuccess(c *fiber.Ctx, msg string) { setFlash(c, "success", msg) }
func flashError(c *fiber.Ctx, msg string)   { setFlash(c, "error", msg) }

// takeFlash reads and clears the pending flash, if any.
func takeFlash(c *fiber.Ctx) *Flash {
	raw := c.Cookies(flashCookie)
	if raw == "" {
		return nil
	}
	c.Cookie(&fiber.Cookie{
		Name:     flashCookie,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().Add(-time.Hour),
	})
	v, err := url.QueryUnescape(raw)
	if err != nil {
		return nil
	}
	kind, msg, ok := strings.Cut(v, "|")
	if !ok || msg == "" {
		return nil
	}
	if kind != "success" {
		kind = "error"
	}
	return &Flash{Kind: kind, Message: msg}
}
