package repos

import (
	"database/sql"
	"errors"

	"storedash/internal/domain"

	"github.com/jmoiron/sqlx"
)

type TransactionRepo struct{ db *sqlx.DB }

func NewTransactionRepo(db *sqlx.DB) *TransactionRepo { return &TransactionRepo{db: db} }

// List returns transactions newest first.
func (r *TransactionRepo) List() ([]domain.Transaction, error) {
	var out []domain.Transaction
	err := r.db.Select(&out, `
		SELECT id,order_id,customer,amount,status,payment_method,date
		FROM transactions ORDER BY date DESC`)
	return out, err
}

func (r *TransactionRepo) ByID(id string) (*domain.Transaction, error) {
	var t domain.Transaction
	err := r.db.Get(&t, `
		SELECT id,order_id,customer,amount,status,payment_method,date
		FROM transactions WHERE id=?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}
