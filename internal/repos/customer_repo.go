package repos

import (
	"storedash/internal/domain"

	"github.com/jmoiron/sqlx"
)

type CustomerRepo struct{ db *sqlx.DB }

func NewCustomerRepo(db *sqlx.DB) *CustomerRepo { return &CustomerRepo{db: db} }

func (r *CustomerRepo) List() ([]domain.Customer, error) {
	var out []domain.Customer
	err := r.db.Select(&out, `
		SELECT id,name,email,phone,orders,total_spent,last_order,created_at
		FROM customers ORDER BY id`)
	return out, err
}
