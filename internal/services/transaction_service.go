package services

import (
	"context"
	"time"

	"storedash/internal/domain"
	"storedash/internal/listview"
	"storedash/internal/querycache"
	"storedash/internal/repos"
)

type TransactionService struct {
	Transactions *repos.TransactionRepo
	Cache        *querycache.Cache
}

func NewTransactionService(txns *repos.TransactionRepo, cache *querycache.Cache) *TransactionService {
	return &TransactionService{Transactions: txns, Cache: cache}
}

func (s *TransactionService) List(ctx context.Context) ([]domain.Transaction, error) {
	return querycache.Fetch(ctx, s.Cache, KeyTransactions, func(context.Context) ([]domain.Transaction, error) {
		return s.Transactions.List()
	})
}

func (s *TransactionService) Reload(ctx context.Context) ([]domain.Transaction, error) {
	s.Cache.Invalidate(KeyTransactions)
	return s.List(ctx)
}

func (s *TransactionService) Get(id string) (domain.Transaction, error) {
	t, err := s.Transactions.ByID(id)
	if err != nil {
		return domain.Transaction{}, err
	}
	return *t, nil
}

// FilterTransactions applies the text query and, when day is non-zero, keeps
// only transactions on the same calendar day (UTC).
func FilterTransactions(items []domain.Transaction, q string, day time.Time) []domain.Transaction {
	out := listview.Filter(items, q)
	if day.IsZero() {
		return out
	}
	y, m, d := day.Date()
	var kept []domain.Transaction
	for _, t := range out {
		ty, tm, td := t.When().UTC().Date()
		if ty == y && tm == m && td == d {
			kept = append(kept, t)
		}
	}
	return kept
}
