package repos

import (
	"github.com/jmoiron/sqlx"
)

type InventoryRepo struct{ db *sqlx.DB }

func NewInventoryRepo(db *sqlx.DB) *InventoryRepo { return &InventoryRepo{db: db} }

// Adjustment is one manual stock change made from the inventory screen.
type Adjustment struct {
	ID          int64  `db:"id"`
	ProductID   string `db:"product_id"`
	ProductName string `db:"product_name"`
	Delta       int    `db:"delta"`
	Reason      string `db:"reason"`
	NewQty      int    `db:"new_qty"`
	CreatedAt   string `db:"created_at"`
}

func (r *InventoryRepo) Record(a Adjustment) error {
	_, err := r.db.NamedExec(`
		INSERT INTO inventory_adjustments(product_id, product_name, delta, reason, new_qty)
		VALUES (:product_id, :product_name, :delta, :reason, :new_qty)
	`, a)
	return err
}

// Recent returns the latest adjustments, newest first.
func (r *InventoryRepo) Recent(limit int) ([]Adjustment, error) {
	var rows []Adjustment
	err := r.db.Select(&rows, `
		SELECT id, product_id, product_name, delta, reason, new_qty, created_at
		FROM inventory_adjustments
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	return rows, err
}

// ForProduct returns a product's adjustment history, newest first.
func (r *InventoryRepo) ForProduct(productID string) ([]Adjustment, error) {
	var rows []Adjustment
	err := r.db.Select(&rows, `
		SELECT id, product_id, product_name, delta, reason, new_qty, created_at
		FROM inventory_adjustments
		WHERE product_id = ?
		ORDER BY id DESC
	`, productID)
	return rows, err
}
