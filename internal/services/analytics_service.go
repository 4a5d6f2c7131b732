package services

import (
	"context"
	"math"
	"sort"
	"strconv"

	"storedash/internal/domain"
)

type StatCard struct {
	Title       string
	Value       string
	Description string
	Trend       float64
	Up          bool
	Variant     string
}

// Headline figures are fixed until the backend exposes a reporting endpoint.
var statCards = []StatCard{
	{Title: "Total Revenue", Value: "$45,231.89", Description: "Total revenue this month", Trend: 12.5, Up: true, Variant: "primary"},
	{Title: "Orders", Value: "356", Description: "Total orders this month", Trend: 8.2, Up: true, Variant: "info"},
	{Title: "Products", Value: "124", Description: "Active products", Trend: 2.1, Up: true, Variant: "success"},
	{Title: "Customers", Value: "832", Description: "Total customers", Trend: 5.4, Up: true, Variant: "warning"},
}

type SalesPoint struct {
	Name   string
	Sales  float64
	Orders int
	// Pct is the bar height relative to the period's best point.
	Pct int
}

const (
	PeriodDaily     = "daily"
	PeriodWeekly    = "weekly"
	PeriodMonthly   = "monthly"
	PeriodQuarterly = "quarterly"
)

var Periods = []string{PeriodDaily, PeriodWeekly, PeriodMonthly, PeriodQuarterly}

var salesSeries = map[string][]SalesPoint{
	PeriodDaily: {
		{Name: "Mon", Sales: 4000, Orders: 24},
		{Name: "Tue", Sales: 3000, Orders: 18},
		{Name: "Wed", Sales: 2000, Orders: 12},
		{Name: "Thu", Sales: 2780, Orders: 19},
		{Name: "Fri", Sales: 1890, Orders: 14},
		{Name: "Sat", Sales: 2390, Orders: 20},
		{Name: "Sun", Sales: 3490, Orders: 22},
	},
	PeriodWeekly: {
		{Name: "Week 1", Sales: 18000, Orders: 120},
		{Name: "Week 2", Sales: 16000, Orders: 100},
		{Name: "Week 3", Sales: 14000, Orders: 90},
		{Name: "Week 4", Sales: 22000, Orders: 140},
	},
	PeriodMonthly: {
		{Name: "Jan", Sales: 65000, Orders: 420},
		{Name: "Feb", Sales: 59000, Orders: 380},
		{Name: "Mar", Sales: 80000, Orders: 510},
		{Name: "Apr", Sales: 81000, Orders: 520},
		{Name: "May", Sales: 56000, Orders: 360},
		{Name: "Jun", Sales: 55000, Orders: 350},
		{Name: "Jul", Sales: 40000, Orders: 250},
		{Name: "Aug", Sales: 60000, Orders: 380},
		{Name: "Sep", Sales: 70000, Orders: 450},
		{Name: "Oct", Sales: 90000, Orders: 580},
		{Name: "Nov", Sales: 85000, Orders: 540},
		{Name: "Dec", Sales: 110000, Orders: 700},
	},
}

func init() {
	salesSeries[PeriodQuarterly] = quarters(salesSeries[PeriodMonthly])
}

// quarters folds a twelve-month series into Q1..Q4.
func quarters(months []SalesPoint) []SalesPoint {
	out := make([]SalesPoint, 0, 4)
	for i := 0; i+3 <= len(months); i += 3 {
		q := SalesPoint{Name: "Q" + strconv.Itoa(i/3+1)}
		for _, m := range months[i : i+3] {
			q.Sales += m.Sales
			q.Orders += m.Orders
		}
		out = append(out, q)
	}
	return out
}

type TopProduct struct {
	ID    string
	Name  string
	Price float64
	Sales int
	Pct   int
}

// Overview is everything the dashboard page renders. Sections fail
// independently.
type Overview struct {
	ShopName  string
	Stats     []StatCard
	Period    string
	Sales     []SalesPoint
	Top       []TopProduct
	TopErr    error
	Recent    []domain.Order
	RecentErr error
}

type AnalyticsService struct {
	Catalog  *CatalogService
	Orders   *OrderService
	ShopName string
}

func NewAnalyticsService(catalog *CatalogService, orders *OrderService, shop string) *AnalyticsService {
	return &AnalyticsService{Catalog: catalog, Orders: orders, ShopName: shop}
}

func (s *AnalyticsService) Overview(ctx context.Context, period string) Overview {
	p, series := Sales(period)
	ov := Overview{
		ShopName: s.ShopName,
		Stats:    append([]StatCard(nil), statCards...),
		Period:   p,
		Sales:    series,
	}

	orders, err := s.Orders.Orders(ctx)
	if err != nil {
		ov.RecentErr, ov.TopErr = err, err
		return ov
	}
	ov.Recent = NewestFirst(orders, 5)

	products, err := s.Catalog.Products(ctx)
	if err != nil {
		// product lookups only enrich names and prices
		products = nil
	}
	ov.Top = TopProducts(orders, products, 5)
	return ov
}

// Sales returns the series for period, defaulting to monthly.
func Sales(period string) (string, []SalesPoint) {
	series, ok := salesSeries[period]
	if !ok {
		period = PeriodMonthly
		series = salesSeries[period]
	}
	out := append([]SalesPoint(nil), series...)
	var best float64
	for _, p := range out {
		best = math.Max(best, p.Sales)
	}
	for i := range out {
		if best > 0 {
			out[i].Pct = int(math.Round(out[i].Sales / best * 100))
		}
	}
	return period, out
}

// TopProducts ranks products by units sold across orders, keeping the n best.
// Cancelled orders do not count.
func TopProducts(orders []domain.Order, products []domain.Product, n int) []TopProduct {
	byID := make(map[string]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	agg := map[string]*TopProduct{}
	for _, o := range orders {
		if domain.OrderStatus(o.Status) == domain.OrderCancelled {
			continue
		}
		for _, it := range o.Items {
			key := it.ProductID
			if key == "" {
				key = it.Name
			}
			tp, ok := agg[key]
			if !ok {
				tp = &TopProduct{ID: it.ProductID, Name: it.Name, Price: it.Price}
				if p, found := byID[it.ProductID]; found {
					tp.Name, tp.Price = p.Name, p.Price
				}
				agg[key] = tp
			}
			tp.Sales += it.Quantity
		}
	}

	out := make([]TopProduct, 0, len(agg))
	for _, tp := range agg {
		out = append(out, *tp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Sales != out[j].Sales {
			return out[i].Sales > out[j].Sales
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > n {
		out = out[:n]
	}
	if len(out) > 0 && out[0].Sales > 0 {
		best := float64(out[0].Sales)
		for i := range out {
			out[i].Pct = int(math.Round(float64(out[i].Sales) / best * 100))
		}
	}
	return out
}
