package handlers_test

import (
	"net/http"
	"strings"
	"testing"

	"storedash/internal/domain"
)

func TestDashboardOverview(t *testing.T) {
	api := &backend{orders: sampleOrders(), products: []domain.Product{hammer()}}
	h := newHarness(t, api, testOptions())
	h.signIn(t)

	resp := h.get(t, "/dashboard")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	b := body(t, resp)
	for _, want := range []string{"Test Hardware", "Total Revenue", "Sales Overview", "Dec", "ORD-2", "3 sold"} {
		if !strings.Contains(b, want) {
			t.Fatalf("dashboard missing %q", want)
		}
	}
	// newest order first
	if strings.Index(b, "ORD-2") > strings.Index(b, "ORD-1") {
		t.Fatal("recent orders not newest first")
	}
}

func TestDashboardPeriods(t *testing.T) {
	h := newHarness(t, &backend{}, testOptions())
	h.signIn(t)

	b := body(t, h.get(t, "/dashboard?period=daily"))
	if !strings.Contains(b, "Mon") || strings.Contains(b, ">Dec<") {
		t.Fatal("daily series not shown")
	}
	b = body(t, h.get(t, "/dashboard?period=hourly"))
	if !strings.Contains(b, ">Dec<") {
		t.Fatal("unknown period should fall back to monthly")
	}
}

func TestDashboardSurvivesOrdersOutage(t *testing.T) {
	h := newHarness(t, &backend{ordersDown: true}, testOptions())
	h.signIn(t)

	resp := h.get(t, "/dashboard")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	b := body(t, resp)
	if !strings.Contains(b, "orders offline") || !strings.Contains(b, "Total Revenue") {
		t.Fatal("dashboard should render with the orders section in error")
	}
}

func TestRootRedirectsToDashboard(t *testing.T) {
	h := newHarness(t, &backend{}, testOptions())
	h.signIn(t)
	expectRedirect(t, h.get(t, "/"), "/dashboard")
}
