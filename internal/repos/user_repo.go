package repos

import (
	"database/sql"
	"errors"
	"time"

	"storedash/internal/domain"

	"github.com/jmoiron/sqlx"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrEmailTaken = errors.New("email already in use")
)

const userCols = `id,name,email,role,status,password_hash,last_login`

type UserRepo struct{ DB *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{DB: db} }

func (r *UserRepo) List() ([]domain.User, error) {
	var out []domain.User
	err := r.DB.Select(&out, `SELECT `+userCols+` FROM users ORDER BY created_at, id`)
	return out, err
}

func (r *UserRepo) ByID(id string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `SELECT `+userCols+` FROM users WHERE id=?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) ByEmail(email string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `SELECT `+userCols+` FROM users WHERE LOWER(email)=LOWER(?)`, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create stores u with its password hash already set.
func (r *UserRepo) Create(u domain.User) error {
	tx, err := r.DB.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := emailFree(tx, u.Email, ""); err != nil {
		return err
	}
	if u.LastLogin == "" {
		u.LastLogin = time.Now().UTC().Format(time.RFC3339)
	}
	if _, err := tx.NamedExec(`
		INSERT INTO users(id,name,email,role,status,password_hash,last_login)
		VALUES(:id,:name,:email,:role,:status,:password_hash,:last_login)`, u); err != nil {
		return err
	}
	return tx.Commit()
}

// Update changes name, email and role, and the hash when newHash is not
// empty. Status and last login are left alone.
func (r *UserRepo) Update(u domain.User, newHash string) error {
	tx, err := r.DB.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := emailFree(tx, u.Email, u.ID); err != nil {
		return err
	}
	res, err := tx.Exec(`
		UPDATE users SET name=?, email=?, role=?,
		  password_hash=CASE WHEN ?='' THEN password_hash ELSE ? END,
		  updated_at=CURRENT_TIMESTAMP
		WHERE id=?`, u.Name, u.Email, u.Role, newHash, newHash, u.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return tx.Commit()
}

func (r *UserRepo) Delete(id string) error {
	res, err := r.DB.Exec(`DELETE FROM users WHERE id=?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func emailFree(tx *sqlx.Tx, email, exceptID string) error {
	var n int
	if err := tx.Get(&n, `SELECT COUNT(*) FROM users WHERE LOWER(email)=LOWER(?) AND id<>?`, email, exceptID); err != nil {
		return err
	}
	if n > 0 {
		return ErrEmailTaken
	}
	return nil
}
