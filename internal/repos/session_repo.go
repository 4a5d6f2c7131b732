package repos

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

// SessionRepo maps the sid cookie to the backend bearer token.
type SessionRepo struct{ DB *sqlx.DB }

func NewSessionRepo(db *sqlx.DB) *SessionRepo { return &SessionRepo{DB: db} }

func (r *SessionRepo) Bind(sid, token string) error {
	_, err := r.DB.Exec(`INSERT INTO sessions(id,token,last_seen)
                          VALUES(?,?,CURRENT_TIMESTAMP)
                          ON CONFLICT(id) DO UPDATE SET token=excluded.token,last_seen=CURRENT_TIMESTAMP`, sid, token)
	return err
}

// Token returns "" when the session is unknown or logged out.
func (r *SessionRepo) Token(sid string) (string, error) {
	var tok sql.NullString
	err := r.DB.Get(&tok, `SELECT token FROM sessions WHERE id=?`, sid)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return tok.String, nil
}

func (r *SessionRepo) Unbind(sid string) error {
	_, err := r.DB.Exec(`UPDATE sessions SET token=NULL,last_seen=CURRENT_TIMESTAMP WHERE id=?`, sid)
	return err
}
