package repository

import (
	"context"

	"riya-portal/internal/database"
	"riya-portal/internal/domain/contact"

	"github.com/google/uuid"
)

type PostgresContactRepository struct {
	db database.DB
}

func NewPostgresContactRepository(db database.DB) *PostgresContactRepository {
	return &PostgresContactRepository{db: db}
}

func (r *PostgresContactRepository) Create(ctx context.Context, m contact.Message) (uuid.UUID, error) {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	var id uuid.UUID
	err := r.db.QueryRow(ctx,
		`INSERT INTO contact_messages (id, name, email, phone, subject, message)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		m.ID, m.Name, m.Email, m.Phone, m.Subject, m.Message,
	).Scan(&id)
	return id, err
}

func (r *PostgresContactRepository) List(ctx context.Context) ([]contact.Message, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, email, phone, subject, message, created_at
		 FROM contact_messages
		 ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]contact.Message, 0)
	for rows.Next() {
		var m contact.Message
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Phone, &m.Subject, &m.Message, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresContactRepository) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := r.db.Exec(ctx, `DELETE FROM contact_messages WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return contact.ErrNotFound
	}
	return nil
}
