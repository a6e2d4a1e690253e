package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"riya-portal/internal/database"
	"riya-portal/internal/domain/application"

	"github.com/google/uuid"
)

const applicationColumns = `id, job_id, job_title, applicant_name, applicant_email, applicant_phone,
	resume_key, resume_filename, resume_size, resume_content_type, status, interview, applied_at`

type PostgresApplicationRepository struct {
	db database.DB
}

func NewPostgresApplicationRepository(db database.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{db: db}
}

// Create inserts a in a single statement. The (job_id, applicant_email) and
// (job_id, applicant_phone) unique indexes make the database the arbiter of
// duplicates; a violation is reported as application.ErrDuplicate.
func (r *PostgresApplicationRepository) Create(ctx context.Context, a application.Application) (uuid.UUID, error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Status == "" {
		a.Status = application.StatusPending
	}

	var id uuid.UUID
	err := r.db.QueryRow(ctx,
		`INSERT INTO job_applications
		 (id, job_id, job_title, applicant_name, applicant_email, applicant_phone,
		  resume_key, resume_filename, resume_size, resume_content_type, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING id`,
		a.ID, a.JobID, a.JobTitle, a.ApplicantName, a.ApplicantEmail, a.ApplicantPhone,
		a.Resume.Key, a.Resume.Filename, a.Resume.Size, a.Resume.ContentType, string(a.Status),
	).Scan(&id)
	if err != nil {
		if _, ok := database.IsUniqueViolation(err); ok {
			return uuid.Nil, application.ErrDuplicate
		}
		return uuid.Nil, err
	}
	return id, nil
}

func (r *PostgresApplicationRepository) ExistsForIdentity(ctx context.Context, jobID uuid.UUID, email, phone string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(
			SELECT 1 FROM job_applications
			WHERE job_id = $1 AND (applicant_email = $2 OR applicant_phone = $3)
		)`,
		jobID, email, phone,
	).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresApplicationRepository) GetByID(ctx context.Context, id uuid.UUID) (application.Application, error) {
	a, err := scanApplication(r.db.QueryRow(ctx,
		`SELECT `+applicationColumns+` FROM job_applications WHERE id = $1`, id,
	))
	if database.IsNoRows(err) {
		return application.Application{}, application.ErrNotFound
	}
	return a, err
}

func (r *PostgresApplicationRepository) List(ctx context.Context) ([]application.Application, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+applicationColumns+` FROM job_applications ORDER BY applied_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]application.Application, 0)
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateStatus moves id from -> to. The from guard in the WHERE clause keeps
// two concurrent administrators from skipping a state.
func (r *PostgresApplicationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to application.Status) error {
	n, err := r.db.Exec(ctx,
		`UPDATE job_applications SET status = $3, updated_at = now() WHERE id = $1 AND status = $2`,
		id, string(from), string(to),
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return application.ErrStatusChanged
	}
	return nil
}

func (r *PostgresApplicationRepository) SetInterview(ctx context.Context, id uuid.UUID, iv application.Interview) error {
	b, err := json.Marshal(iv)
	if err != nil {
		return fmt.Errorf("encode interview: %w", err)
	}
	n, err := r.db.Exec(ctx,
		`UPDATE job_applications SET interview = $2::jsonb, updated_at = now() WHERE id = $1`,
		id, string(b),
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return application.ErrNotFound
	}
	return nil
}

func (r *PostgresApplicationRepository) Delete(ctx context.Context, id uuid.UUID) (application.Application, error) {
	a, err := scanApplication(r.db.QueryRow(ctx,
		`DELETE FROM job_applications WHERE id = $1 RETURNING `+applicationColumns, id,
	))
	if database.IsNoRows(err) {
		return application.Application{}, application.ErrNotFound
	}
	return a, err
}

func scanApplication(row database.Row) (application.Application, error) {
	var a application.Application
	var status string
	var interview []byte
	if err := row.Scan(
		&a.ID,
		&a.JobID,
		&a.JobTitle,
		&a.ApplicantName,
		&a.ApplicantEmail,
		&a.ApplicantPhone,
		&a.Resume.Key,
		&a.Resume.Filename,
		&a.Resume.Size,
		&a.Resume.ContentType,
		&status,
		&interview,
		&a.AppliedAt,
	); err != nil {
		return application.Application{}, err
	}
	a.Status = application.Status(status)
	if len(interview) > 0 {
		var iv application.Interview
		if err := json.Unmarshal(interview, &iv); err != nil {
			return application.Application{}, fmt.Errorf("decode interview: %w", err)
		}
		a.Interview = &iv
	}
	return a, nil
}
