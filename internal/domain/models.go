package domain

import (
	"strconv"
	"time"
	"unicode"
)

type Category struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
}

func (c Category) SearchFields() []string { return []string{c.Name, c.Description} }

type Product struct {
	ID          string   `json:"_id"`
	Name        string   `json:"name"`
	Price       float64  `json:"price"`
	Quantity    int      `json:"quantity"`
	Description string   `json:"description,omitempty"`
	Category    string   `json:"category,omitempty"`
	Brand       string   `json:"brand,omitempty"`
	Images      []string `json:"images,omitempty"`
}

func (p Product) SearchFields() []string { return []string{p.Name, p.Brand, p.Category} }

func (p Product) StockStatus() StockStatus { return StockStatusFor(p.Quantity) }

// Thumbnail is the first image or "" when the product has none.
func (p Product) Thumbnail() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// StockStatus is derived from quantity on every fetch and never persisted.
type StockStatus string

const (
	InStock    StockStatus = "In Stock"
	LowStock   StockStatus = "Low Stock"
	OutOfStock StockStatus = "Out of Stock"
)

const (
	inStockAbove  = 10
	lowStockAbove = 0
)

func StockStatusFor(qty int) StockStatus {
	switch {
	case qty > inStockAbove:
		return InStock
	case qty > lowStockAbove:
		return LowStock
	default:
		return OutOfStock
	}
}

func (s StockStatus) Badge() string {
	switch s {
	case InStock:
		return "success"
	case LowStock:
		return "warning"
	default:
		return "destructive"
	}
}

type OrderItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

func (it OrderItem) Subtotal() float64 { return it.Price * float64(it.Quantity) }

type Order struct {
	ID         string      `json:"_id"`
	OrderID    string      `json:"order_id"`
	CustomerID string      `json:"customer_id"`
	Items      []OrderItem `json:"items"`
	TotalPrice float64     `json:"total_price"`
	Status     string      `json:"status"`
	CreatedAt  string      `json:"created_at"`
}

func (o Order) SearchFields() []string { return []string{o.OrderID, o.CustomerID, o.Status} }

func (o Order) Created() time.Time { return ParseTime(o.CreatedAt) }

func (o Order) StatusBadge() string { return OrderStatus(o.Status).Badge() }

// OrderStatus is freely settable; no transition rules are enforced.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderShipped   OrderStatus = "shipped"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

var OrderStatuses = []OrderStatus{OrderPending, OrderShipped, OrderDelivered, OrderCancelled}

func (s OrderStatus) Valid() bool {
	for _, v := range OrderStatuses {
		if v == s {
			return true
		}
	}
	return false
}

func (s OrderStatus) Badge() string {
	switch s {
	case OrderPending:
		return "warning"
	case OrderShipped:
		return "info"
	case OrderDelivered:
		return "success"
	case OrderCancelled:
		return "destructive"
	default:
		return "secondary"
	}
}

type Customer struct {
	ID         string  `db:"id"`
	Name       string  `db:"name"`
	Email      string  `db:"email"`
	Phone      string  `db:"phone"`
	Orders     int     `db:"orders"`
	TotalSpent float64 `db:"total_spent"`
	LastOrder  string  `db:"last_order"`
	CreatedAt  string  `db:"created_at"`
}

func (c Customer) SearchFields() []string { return []string{c.Name, c.Email, c.Phone} }

func (c Customer) Initials() string { return Initials(c.Name) }

type Transaction struct {
	ID            string  `db:"id"`
	OrderID       string  `db:"order_id"`
	Customer      string  `db:"customer"`
	Amount        float64 `db:"amount"`
	Status        string  `db:"status"`
	PaymentMethod string  `db:"payment_method"`
	Date          string  `db:"date"`
}

func (t Transaction) SearchFields() []string {
	return []string{t.OrderID, t.Customer, t.Status, t.PaymentMethod}
}

func (t Transaction) When() time.Time { return ParseTime(t.Date) }

func (t Transaction) StatusBadge() string {
	switch t.Status {
	case "Completed":
		return "success"
	case "Pending":
		return "warning"
	case "Failed":
		return "destructive"
	case "Refunded":
		return "secondary"
	default:
		return "outline"
	}
}

// InventoryItem is a product viewed through the inventory screen.
type InventoryItem struct {
	Product
	Status StockStatus
}

func (i InventoryItem) SearchFields() []string {
	return []string{i.Name, i.Category, string(i.Status)}
}

// Money formats an amount the way every table shows prices.
func Money(v float64) string { return "$" + strconv.FormatFloat(v, 'f', 2, 64) }

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTime accepts the timestamp shapes the backend and seed data use and
// returns the zero time for anything else.
func ParseTime(s string) time.Time {
	for _, l := range timeLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// Initials is the avatar fallback: the first letter of each word, uppercased.
func Initials(name string) string {
	out := []rune{}
	start := true
	for _, r := range name {
		if r == ' ' {
			start = true
			continue
		}
		if start {
			out = append(out, unicode.ToUpper(r))
			start = false
		}
	}
	return string(out)
}
