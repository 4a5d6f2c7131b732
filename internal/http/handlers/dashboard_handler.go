package handlers

import (
	"storedash/internal/services"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	Analytics *services.AnalyticsService
}

// GET /dashboard?period=daily|weekly|monthly
func (h *DashboardHandler) Show(c *fiber.Ctx) error {
	ov := h.Analytics.Overview(c.UserContext(), c.Query("period"))
	data := fiber.Map{"Overview": ov, "Periods": services.Periods}
	if ov.RecentErr != nil {
		data["RecentErr"] = userMessage(ov.RecentErr)
	}
	return render(c, "dashboard", data)
}

// GET /analytics?tab=sales|products|customers&period=
func (h *DashboardHandler) ShowAnalytics(c *fiber.Ctx) error {
	a := h.Analytics.Analytics(c.Query("tab"), c.Query("period"))
	return render(c, "analytics", fiber.Map{
		"Title":     "Analytics",
		"Analytics": a,
		"Tabs":      services.AnalyticsTabs,
		"Periods":   services.Periods,
	})
}

// GET /reports?tab=&type=&period=
func (h *DashboardHandler) ShowReports(c *fiber.Ctx) error {
	r := h.Analytics.Reports(c.Query("tab"), c.Query("type"), c.Query("period"))
	return render(c, "reports", fiber.Map{
		"Title":   "Reports",
		"Reports": r,
		"Tabs":    services.ReportTabs,
		"Types":   services.ReportTypes,
		"Periods": services.Periods,
	})
}
