package repository

import (
	"context"
	"time"

	"riya-portal/internal/database"
	"riya-portal/internal/domain/posting"

	"github.com/google/uuid"
)

const postingColumns = `id, title, description, required_skills, location, job_type, experience, ctc, show_ctc, last_date_to_apply, created_at`

type PostgresPostingRepository struct {
	db database.DB
}

func NewPostgresPostingRepository(db database.DB) *PostgresPostingRepository {
	return &PostgresPostingRepository{db: db}
}

func (r *PostgresPostingRepository) Create(ctx context.Context, p posting.Posting) (uuid.UUID, error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	var id uuid.UUID
	err := r.db.QueryRow(ctx,
		`INSERT INTO job_postings
		 (id, title, description, required_skills, location, job_type, experience, ctc, show_ctc, last_date_to_apply)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id`,
		p.ID, p.Title, p.Description, p.RequiredSkills, p.Location, string(p.JobType),
		p.Experience, p.CTC, p.ShowCTC, p.LastDateToApply,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func (r *PostgresPostingRepository) GetByID(ctx context.Context, id uuid.UUID) (posting.Posting, error) {
	p, err := scanPosting(r.db.QueryRow(ctx, `SELECT `+postingColumns+` FROM job_postings WHERE id = $1`, id))
	if database.IsNoRows(err) {
		return posting.Posting{}, posting.ErrNotFound
	}
	return p, err
}

func (r *PostgresPostingRepository) List(ctx context.Context) ([]posting.Posting, error) {
	return r.list(ctx, `SELECT `+postingColumns+` FROM job_postings ORDER BY created_at DESC`)
}

func (r *PostgresPostingRepository) ListOpen(ctx context.Context, now time.Time) ([]posting.Posting, error) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return r.list(ctx,
		`SELECT `+postingColumns+` FROM job_postings
		 WHERE last_date_to_apply >= $1
		 ORDER BY created_at DESC`,
		today,
	)
}

func (r *PostgresPostingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := r.db.Exec(ctx, `DELETE FROM job_postings WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return posting.ErrNotFound
	}
	return nil
}

func (r *PostgresPostingRepository) list(ctx context.Context, query string, args ...any) ([]posting.Posting, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]posting.Posting, 0)
	for rows.Next() {
		p, err := scanPosting(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanPosting(row database.Row) (posting.Posting, error) {
	var p posting.Posting
	var jobType string
	err := row.Scan(
		&p.ID,
		&p.Title,
		&p.Description,
		&p.RequiredSkills,
		&p.Location,
		&jobType,
		&p.Experience,
		&p.CTC,
		&p.ShowCTC,
		&p.LastDateToApply,
		&p.CreatedAt,
	)
	p.JobType = posting.JobType(jobType)
	return p, err
}
