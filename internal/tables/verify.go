package tables

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/sovrium/sovrium/internal/schema"
)

// Verify compiles every table and applies the DDL to an in-memory SQLite
// database, catching problems static analysis of the statement text would
// miss (duplicate column names, malformed defaults).
func Verify(ctx context.Context, tables []schema.Table) error {
	stmts, err := DDLAll(tables)
	if err != nil {
		return err
	}
	if len(stmts) == 0 {
		return nil
	}

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return fmt.Errorf("open in-memory database: %w", err)
	}
	defer db.Close()

	for i, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("table %q: %w", tables[i].Name, err)
		}
	}
	return nil
}
