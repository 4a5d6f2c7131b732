package services

import (
	"context"
	"net/url"
	"sort"

	"storedash/internal/apiclient"
	"storedash/internal/domain"
	"storedash/internal/querycache"
	"storedash/internal/validate"
)

const ordersPath = "/orders/"

var ErrBadStatus = &validate.Error{Msg: "Unknown order status"}

// OrderService reads orders from the orders host, which may differ from the
// main API host.
type OrderService struct {
	API   *apiclient.Client
	Cache *querycache.Cache
}

func NewOrderService(api *apiclient.Client, cache *querycache.Cache) *OrderService {
	return &OrderService{API: api, Cache: cache}
}

func (s *OrderService) Orders(ctx context.Context) ([]domain.Order, error) {
	return querycache.Fetch(ctx, s.Cache, KeyOrders, func(ctx context.Context) ([]domain.Order, error) {
		var out []domain.Order
		if err := s.API.List(ctx, ordersPath, &out); err != nil {
			return nil, err
		}
		return out, nil
	})
}

func (s *OrderService) Reload(ctx context.Context) ([]domain.Order, error) {
	s.Cache.Invalidate(KeyOrders)
	return s.Orders(ctx)
}

// Order matches either the backend object id or the human order number.
func (s *OrderService) Order(ctx context.Context, id string) (domain.Order, error) {
	all, err := s.Orders(ctx)
	if err != nil {
		return domain.Order{}, err
	}
	for _, o := range all {
		if o.ID == id || o.OrderID == id {
			return o, nil
		}
	}
	return domain.Order{}, ErrNotFound
}

// Recent returns up to n orders, newest first. The cached slice is not reordered.
func (s *OrderService) Recent(ctx context.Context, n int) ([]domain.Order, error) {
	all, err := s.Orders(ctx)
	if err != nil {
		return nil, err
	}
	return NewestFirst(all, n), nil
}

func NewestFirst(orders []domain.Order, n int) []domain.Order {
	out := append([]domain.Order(nil), orders...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Created().After(out[j].Created()) })
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// UpdateStatus sets any known status; there are no transition rules.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID string, status domain.OrderStatus) error {
	if !status.Valid() {
		return ErrBadStatus
	}
	q := url.Values{"status": {string(status)}}
	if err := s.API.Patch(ctx, "/orders/"+url.PathEscape(orderID), q, nil); err != nil {
		return err
	}
	s.Cache.Invalidate(KeyOrders)
	return nil
}
