package services_test

import (
	"context"
	"errors"
	"testing"

	"storedash/internal/domain"
	"storedash/internal/repos"
	"storedash/internal/services"
)

func TestStockStatusBoundaries(t *testing.T) {
	cases := []struct {
		qty  int
		want domain.StockStatus
	}{
		{15, domain.InStock},
		{11, domain.InStock},
		{10, domain.LowStock},
		{5, domain.LowStock},
		{1, domain.LowStock},
		{0, domain.OutOfStock},
		{-2, domain.OutOfStock},
	}
	for _, tc := range cases {
		if got := domain.StockStatusFor(tc.qty); got != tc.want {
			t.Errorf("qty %d: want %q, got %q", tc.qty, tc.want, got)
		}
	}
}

func TestInventorySummaryAndFilter(t *testing.T) {
	items := services.InventoryItems([]domain.Product{
		{ID: "1", Name: "Hammer", Price: 10, Quantity: 3, Category: "Hand Tools"},
		{ID: "2", Name: "Drill", Price: 50, Quantity: 0, Category: "Power Tools"},
		{ID: "3", Name: "Screws", Price: 1, Quantity: 40, Category: "Fasteners"},
	})
	sum := services.Summarize(items)
	if sum.Total != 3 || sum.Low != 1 || sum.Out != 1 || sum.Units != 43 || sum.Value != 70 {
		t.Fatalf("unexpected summary %+v", sum)
	}

	if got := services.FilterInventory(items, "tools", ""); len(got) != 2 {
		t.Fatalf("want 2 tools, got %d", len(got))
	}
	if got := services.FilterInventory(items, "tools", string(domain.OutOfStock)); len(got) != 1 || got[0].Name != "Drill" {
		t.Fatalf("want only Drill, got %+v", got)
	}
	if got := services.FilterInventory(items, "low stock", ""); len(got) != 1 || got[0].Name != "Hammer" {
		t.Fatalf("stock label should be searchable, got %+v", got)
	}
}

func newInventory(t *testing.T, products ...domain.Product) (*fakeAPI, *services.InventoryService) {
	t.Helper()
	api, client, cache := newFake(t, products...)
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return api, services.NewInventoryService(services.NewCatalogService(client, cache), repos.NewInventoryRepo(db))
}

func TestAdjustUpdatesProductAndLogs(t *testing.T) {
	api, inv := newInventory(t, hammer)
	ctx := context.Background()

	next, err := inv.Adjust(ctx, "1", 9, "restock")
	if err != nil {
		t.Fatal(err)
	}
	if next != 12 || api.products[0].Quantity != 12 {
		t.Fatalf("want 12, got %d / backend %d", next, api.products[0].Quantity)
	}
	items, err := inv.Items(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if items[0].Status != domain.InStock {
		t.Fatalf("adjusted item should read In Stock, got %q", items[0].Status)
	}
	log, err := inv.RecentAdjustments(10)
	if err != nil || len(log) != 1 || log[0].Delta != 9 || log[0].NewQty != 12 || log[0].Reason != "restock" {
		t.Fatalf("adjustment not logged: %+v %v", log, err)
	}
}

func TestAdjustBelowZeroRejected(t *testing.T) {
	api, inv := newInventory(t, hammer)
	_, err := inv.Adjust(context.Background(), "1", -4, "shrinkage")
	if !errors.Is(err, services.ErrNegativeStock) {
		t.Fatalf("want ErrNegativeStock, got %v", err)
	}
	if api.products[0].Quantity != 3 {
		t.Fatal("backend must not be touched")
	}
	if log, _ := inv.RecentAdjustments(10); len(log) != 0 {
		t.Fatal("nothing should be logged")
	}
}

func TestAdjustUnknownProduct(t *testing.T) {
	_, inv := newInventory(t, hammer)
	if _, err := inv.Adjust(context.Background(), "nope", 1, ""); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}
