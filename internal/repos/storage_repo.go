package repos

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

// StorageRepo keeps visitor storage in SQLite.
type StorageRepo struct{ db *sqlx.DB }

func NewStorageRepo(db *sqlx.DB) *StorageRepo { return &StorageRepo{db: db} }

// For scopes the repo to one visitor.
func (r *StorageRepo) For(sid string) *SQLStorage { return &SQLStorage{db: r.db, sid: sid} }

type SQLStorage struct {
	db  *sqlx.DB
	sid string
}

func (s *SQLStorage) GetItem(ctx context.Context, key string) (string, bool, error) {
	var v string
	err := s.db.GetContext(ctx, &v, `SELECT value FROM client_storage WHERE sid=? AND key=?`, s.sid, key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (s *SQLStorage) SetItem(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO client_storage(sid,key,value,updated_at)
		VALUES(?,?,?,CURRENT_TIMESTAMP)
		ON CONFLICT(sid,key) DO UPDATE SET value=excluded.value, updated_at=CURRENT_TIMESTAMP`,
		s.sid, key, value)
	return err
}

func (s *SQLStorage) RemoveItem(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM client_storage WHERE sid=? AND key=?`, s.sid, key)
	return err
}
