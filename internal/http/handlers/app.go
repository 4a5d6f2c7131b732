package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/template/html/v2"

	applog "storedash/internal/log"
	"storedash/internal/metrics"
)

// BodyLimit caps request bodies; product image uploads are the largest.
const BodyLimit = 8 << 20

type AppOptions struct {
	// RateLimit is requests per minute per client outside /static.
	RateLimit int
	// LoginLimit is login attempts per 10 minutes per client.
	LoginLimit int
}

func DefaultAppOptions() AppOptions { return AppOptions{RateLimit: 120, LoginLimit: 5} }

// ErrorHandler renders a friendly page for any error a handler returns
// without leaking its text.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "Something went wrong. Please try again."
	if fe, ok := err.(*fiber.Error); ok && fe.Code == fiber.StatusRequestEntityTooLarge {
		code, msg = fe.Code, "That upload is too large."
	}
	applog.Error(c, "server.error", err, nil)
	if rerr := c.Status(code).Render("notfound", fiber.Map{"Message": msg}); rerr != nil {
		return c.Status(code).SendString(msg)
	}
	return nil
}

// NewApp builds the dashboard: middleware, public routes, and the protected
// screens behind RequireToken.
func NewApp(d *Deps, engine *html.Engine, opts AppOptions) *fiber.App {
	app := fiber.New(fiber.Config{
		Views:        engine,
		BodyLimit:    BodyLimit,
		ErrorHandler: ErrorHandler,
	})

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{Output: applog.Writer()}))
	// product images are served from the API host
	app.Use(helmet.New(helmet.Config{CrossOriginEmbedderPolicy: "unsafe-none"}))
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("shop", d.ShopName)
		c.Locals("start", time.Now())
		return c.Next()
	})
	app.Use(limiter.New(limiter.Config{
		Max:        opts.RateLimit,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			p := string(c.Request().URI().Path())
			return strings.HasPrefix(p, "/static/") || p == "/metrics" || p == "/healthz"
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.global.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).SendString("Too many requests")
		},
	}))
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		ContextKey:     "csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		CookieSecure:   false, // set true behind HTTPS
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Security(c, "csrf.fail", nil)
			return c.Status(fiber.StatusForbidden).Render("notfound", fiber.Map{"Message": "Security check failed. Please refresh and try again."})
		},
	}))
	app.Use(func(c *fiber.Ctx) error {
		if tok, ok := c.Locals("csrf").(string); ok {
			c.Locals("CSRFToken", tok)
		}
		return c.Next()
	})

	app.Static("/static", "./web/static")

	// ---------- Public ----------
	authH := d.AuthHandler
	app.Get("/login", authH.LoginForm)
	app.Post("/login", limiter.New(limiter.Config{
		Max:        opts.LoginLimit,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).Render("login", fiber.Map{"Err": "Too many attempts. Please try again later."})
		},
	}), authH.Login)
	app.Post("/logout", authH.Logout)
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	// ---------- Protected ----------
	p := app.Group("", RequireToken(d.Sessions))
	p.Get("/", func(c *fiber.Ctx) error { return c.Redirect("/dashboard") })
	p.Get("/dashboard", d.DashboardHandler.Show)
	p.Get("/analytics", d.DashboardHandler.ShowAnalytics)
	p.Get("/reports", d.DashboardHandler.ShowReports)

	prod := d.ProductHandler
	p.Get("/products", prod.List)
	p.Get("/products/new", prod.New)
	p.Post("/products", prod.Create)
	p.Get("/products/:id/edit", prod.Edit)
	p.Get("/products/:id/delete", prod.ConfirmDelete)
	p.Post("/products/:id/delete", prod.Delete)
	p.Post("/products/:id", prod.Update)

	cat := d.CategoryHandler
	p.Get("/categories", cat.List)
	p.Get("/categories/new", cat.New)
	p.Post("/categories", cat.Create)
	p.Get("/categories/:id/edit", cat.Edit)
	p.Get("/categories/:id/delete", cat.ConfirmDelete)
	p.Post("/categories/:id/delete", cat.Delete)
	p.Post("/categories/:id", cat.Update)

	p.Get("/orders", d.OrderHandler.List)
	p.Get("/orders/:id", d.OrderHandler.Detail)
	p.Post("/orders/:id/status", d.OrderHandler.UpdateStatus)

	p.Get("/customers", d.CustomerHandler.List)

	usr := d.UserHandler
	p.Get("/users", usr.List)
	p.Get("/users/new", usr.New)
	p.Post("/users", usr.Create)
	p.Get("/users/:id/edit", usr.Edit)
	p.Get("/users/:id/delete", usr.ConfirmDelete)
	p.Post("/users/:id/delete", usr.Delete)
	p.Post("/users/:id", usr.Update)

	inv := d.InventoryHandler
	p.Get("/inventory", inv.List)
	p.Get("/inventory/:id/adjust", inv.AdjustForm)
	p.Post("/inventory/:id/adjust", inv.Adjust)

	p.Get("/transactions", d.TransactionHandler.List)
	p.Get("/transactions/:id", d.TransactionHandler.Detail)

	stockLimiter := limiter.New(limiter.Config{
		Max:        15,
		Expiration: 30 * time.Second,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP() + "|stock"
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.stock.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "rate limit exceeded, retry soon"})
		},
	})
	p.Get("/api/v1/stock", stockLimiter, inv.Check)

	// 404
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Page not found"})
	})
	return app
}
