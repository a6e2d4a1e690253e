package seeder

import (
	"context"

	"riya-portal/internal/database"
)

// Seeder inserts reference data. Implementations must be idempotent; the
// runner is invoked on every migrate with -seed.
type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) error
}
