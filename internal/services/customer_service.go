package services

import (
	"context"

	"storedash/internal/domain"
	"storedash/internal/querycache"
	"storedash/internal/repos"
)

type CustomerService struct {
	Customers *repos.CustomerRepo
	Cache     *querycache.Cache
}

func NewCustomerService(customers *repos.CustomerRepo, cache *querycache.Cache) *CustomerService {
	return &CustomerService{Customers: customers, Cache: cache}
}

func (s *CustomerService) List(ctx context.Context) ([]domain.Customer, error) {
	return querycache.Fetch(ctx, s.Cache, KeyCustomers, func(context.Context) ([]domain.Customer, error) {
		return s.Customers.List()
	})
}

func (s *CustomerService) Reload(ctx context.Context) ([]domain.Customer, error) {
	s.Cache.Invalidate(KeyCustomers)
	return s.List(ctx)
}
