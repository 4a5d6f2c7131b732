package services

import (
	"context"
	"strconv"

	"storedash/internal/domain"
	"storedash/internal/listview"
	"storedash/internal/repos"
	"storedash/internal/validate"
)

var ErrNegativeStock = &validate.Error{Msg: "Stock level cannot go below zero"}

// InventoryService is a stock-centric view over the product list. It shares
// the products cache key, so product edits and adjustments refresh both screens.
type InventoryService struct {
	Catalog *CatalogService
	Log     *repos.InventoryRepo
}

func NewInventoryService(catalog *CatalogService, log *repos.InventoryRepo) *InventoryService {
	return &InventoryService{Catalog: catalog, Log: log}
}

func InventoryItems(products []domain.Product) []domain.InventoryItem {
	out := make([]domain.InventoryItem, 0, len(products))
	for _, p := range products {
		out = append(out, domain.InventoryItem{Product: p, Status: p.StockStatus()})
	}
	return out
}

func (s *InventoryService) Items(ctx context.Context) ([]domain.InventoryItem, error) {
	products, err := s.Catalog.Products(ctx)
	if err != nil {
		return nil, err
	}
	return InventoryItems(products), nil
}

func (s *InventoryService) Reload(ctx context.Context) ([]domain.InventoryItem, error) {
	products, err := s.Catalog.ReloadProducts(ctx)
	if err != nil {
		return nil, err
	}
	return InventoryItems(products), nil
}

type InventorySummary struct {
	Total int
	Low   int
	Out   int
	Units int
	Value float64
}

func Summarize(items []domain.InventoryItem) InventorySummary {
	var s InventorySummary
	for _, it := range items {
		s.Total++
		s.Units += it.Quantity
		s.Value += it.Price * float64(it.Quantity)
		switch it.Status {
		case domain.LowStock:
			s.Low++
		case domain.OutOfStock:
			s.Out++
		}
	}
	return s
}

// FilterInventory narrows items by free text and, when status is set, by stock label.
func FilterInventory(items []domain.InventoryItem, q, status string) []domain.InventoryItem {
	out := listview.Filter(items, q)
	if status == "" {
		return out
	}
	kept := out[:0]
	for _, it := range out {
		if string(it.Status) == status {
			kept = append(kept, it)
		}
	}
	return kept
}

// Adjust moves a product's stock by delta through a product update and logs
// the change locally. Returns the new level.
func (s *InventoryService) Adjust(ctx context.Context, productID string, delta int, reason string) (int, error) {
	p, err := s.Catalog.Product(ctx, productID)
	if err != nil {
		return 0, err
	}
	next := p.Quantity + delta
	if next < 0 {
		return p.Quantity, ErrNegativeStock
	}
	form := ProductFormFrom(p)
	form.Quantity = strconv.Itoa(next)
	if err := s.Catalog.UpdateProduct(ctx, p.ID, form); err != nil {
		return p.Quantity, err
	}
	if err := s.Log.Record(repos.Adjustment{
		ProductID:   p.ID,
		ProductName: p.Name,
		Delta:       delta,
		Reason:      reason,
		NewQty:      next,
	}); err != nil {
		return next, err
	}
	return next, nil
}

func (s *InventoryService) RecentAdjustments(limit int) ([]repos.Adjustment, error) {
	return s.Log.Recent(limit)
}
