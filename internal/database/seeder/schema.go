package seeder

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"riya-portal/internal/database"
)

// EnsureTableColumns fails when table is missing any of columns, so a
// seeder run against an unmigrated database stops with a clear message.
func EnsureTableColumns(ctx context.Context, db database.DB, table string, columns ...string) error {
	if db == nil {
		return errors.New("seeder: nil db")
	}
	if table == "" || len(columns) == 0 {
		return errors.New("seeder: table and columns are required")
	}

	rows, err := db.Query(ctx,
		`SELECT column_name FROM information_schema.columns WHERE table_schema = current_schema() AND table_name = $1`,
		table,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	existing := map[string]struct{}{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return err
		}
		existing[c] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	var missing []string
	for _, col := range columns {
		if _, ok := existing[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("schema mismatch: %s is missing %s (run migrations first)", table, strings.Join(missing, ", "))
	}
	return nil
}
