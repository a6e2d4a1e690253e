package repository

import (
	"context"

	"riya-portal/internal/database"
	"riya-portal/internal/domain/application"
)

// PostgresResumeStore keeps resume bytes in the resume_blobs table. It is
// the default application.ResumeStore; swapping in an object store only
// changes this type, not the application record.
type PostgresResumeStore struct {
	db database.DB
}

func NewPostgresResumeStore(db database.DB) *PostgresResumeStore {
	return &PostgresResumeStore{db: db}
}

func (s *PostgresResumeStore) Put(ctx context.Context, key string, data []byte) error {
	_, err := s.db.Exec(ctx, `INSERT INTO resume_blobs (key, data) VALUES ($1, $2)`, key, data)
	return err
}

func (s *PostgresResumeStore) Get(ctx context.Context, key string) ([]byte, error) {
	var data []byte
	if err := s.db.QueryRow(ctx, `SELECT data FROM resume_blobs WHERE key = $1`, key).Scan(&data); err != nil {
		if database.IsNoRows(err) {
			return nil, application.ErrResumeNotFound
		}
		return nil, err
	}
	return data, nil
}

func (s *PostgresResumeStore) Delete(ctx context.Context, key string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM resume_blobs WHERE key = $1`, key)
	return err
}
