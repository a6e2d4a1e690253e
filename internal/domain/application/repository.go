package application

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("job application not found")

	// ErrDuplicate is returned by Create when the storage layer rejects a
	// second application for the same job and email or phone.
	ErrDuplicate = errors.New("duplicate job application")

	// ErrStatusChanged is returned by UpdateStatus when the record is no
	// longer in the expected state.
	ErrStatusChanged = errors.New("job application status changed concurrently")
)

type Repository interface {
	Create(ctx context.Context, a Application) (uuid.UUID, error)
	// ExistsForIdentity reports whether jobID already has an application
	// whose email OR phone matches.
	ExistsForIdentity(ctx context.Context, jobID uuid.UUID, email, phone string) (bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (Application, error)
	List(ctx context.Context) ([]Application, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to Status) error
	SetInterview(ctx context.Context, id uuid.UUID, iv Interview) error
	// Delete removes the record and returns it so the caller can release
	// the resume blob.
	Delete(ctx context.Context, id uuid.UUID) (Application, error)
}

// ResumeStore keeps resume bytes under an opaque key. Whether the bytes sit
// next to the record or in an external object store is an implementation
// detail of the store.
type ResumeStore interface {
	Put(ctx context.Context, key string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

var ErrResumeNotFound = errors.New("resume not found")
