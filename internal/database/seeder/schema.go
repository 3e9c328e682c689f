package seeder

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"careerlink/internal/database"
)

// RequireColumns fails when table lacks any of columns in the current schema.
// Seeders call it so a stale database fails with a readable message instead of
// a driver error halfway through.
func RequireColumns(ctx context.Context, q database.Querier, table string, columns ...string) error {
	if q == nil {
		return errors.New("nil db")
	}
	if table == "" || len(columns) == 0 {
		return errors.New("table and columns are required")
	}

	rows, err := q.Query(
		ctx,
		`SELECT c FROM unnest($2::text[]) AS c
		 WHERE c NOT IN (
			SELECT column_name FROM information_schema.columns
			WHERE table_schema = current_schema() AND table_name = $1
		 )`,
		table, columns,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	var missing []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return err
		}
		missing = append(missing, c)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if len(missing) > 0 {
		return fmt.Errorf("schema mismatch: %s is missing %s", table, strings.Join(missing, ", "))
	}
	return nil
}
