package seeder

import (
	"context"
	"fmt"
	"sort"

	"jobboard/internal/database"
)

// EnsureTableColumns fails when table lacks any of columns, so a seeder run
// against an unmigrated database stops before writing anything.
func EnsureTableColumns(ctx context.Context, db database.DB, table string, columns ...string) error {
	if db == nil {
		return errNilDB
	}
	if table == "" || len(columns) == 0 {
		return fmt.Errorf("seeder: table and columns are required")
	}

	rows, err := db.Query(
		ctx,
		`SELECT column_name FROM information_schema.columns
		 WHERE table_schema = 'public' AND table_name = $1 AND column_name = ANY($2)`,
		table, columns,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	found := make(map[string]bool, len(columns))
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return err
		}
		found[c] = true
	}
	if err := rows.Err(); err != nil {
		return err
	}

	var missing []string
	for _, c := range columns {
		if !found[c] {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("schema mismatch: %s is missing %v", table, missing)
	}
	return nil
}
