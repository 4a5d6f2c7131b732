package handlers_test

import (
	"net/url"
	"testing"

	"storedash/internal/domain"
)

func TestLoginAttemptsAreLogged(t *testing.T) {
	h := newHarness(t, &backend{}, testOptions())
	h.token(t)

	entries := captureLogs(t, func() {
		_ = h.post(t, "/login", loginForm("owner@shop.test", "nope"))
	})
	e, ok := findLog(entries, "auth.login.fail")
	if !ok {
		t.Fatal("expected auth.login.fail log")
	}
	if e.Level != "warn" || e.Fields["email"] != "owner@shop.test" {
		t.Fatalf("unexpected entry %+v", e)
	}

	entries = captureLogs(t, func() {
		_ = h.post(t, "/login", loginForm("owner@shop.test", goodPass))
	})
	if e, ok := findLog(entries, "auth.login.success"); !ok || e.Level != "audit" {
		t.Fatal("expected auth.login.success audit log")
	}
	for _, e := range entries {
		for _, v := range e.Fields {
			if v == goodPass {
				t.Fatal("password written to the log")
			}
		}
	}
}

func TestMutationsAreAudited(t *testing.T) {
	h := newHarness(t, &backend{products: []domain.Product{hammer()}, orders: sampleOrders()}, testOptions())
	h.signIn(t)
	h.token(t)

	entries := captureLogs(t, func() {
		_ = h.post(t, "/inventory/1/adjust", url.Values{"delta": {"-2"}, "reason": {"damaged"}})
		_ = h.post(t, "/orders/a1/status", url.Values{"status": {"cancelled"}})
		_ = h.post(t, "/products", url.Values{"name": {"Saw"}, "price": {"20"}, "quantity": {"2"}})
	})

	adj, ok := findLog(entries, "inventory.adjust")
	if !ok {
		t.Fatal("expected inventory.adjust log")
	}
	// JSON numbers decode as float64
	if adj.Fields["delta"] != float64(-2) || adj.Fields["qty"] != float64(1) || adj.Fields["reason"] != "damaged" {
		t.Fatalf("unexpected adjust fields %+v", adj.Fields)
	}
	if st, ok := findLog(entries, "orders.status"); !ok || st.Fields["status"] != "cancelled" {
		t.Fatal("expected orders.status log")
	}
	if _, ok := findLog(entries, "products.create"); !ok {
		t.Fatal("expected products.create log")
	}
}

func TestFailedMutationIsLoggedAsError(t *testing.T) {
	h := newHarness(t, &backend{products: []domain.Product{hammer()}, failMutations: true}, testOptions())
	h.signIn(t)
	h.token(t)

	entries := captureLogs(t, func() {
		_ = h.post(t, "/products/1/delete", nil)
	})
	e, ok := findLog(entries, "products.delete.fail")
	if !ok || e.Level != "error" {
		t.Fatal("expected products.delete.fail error log")
	}
}
