// Package tables compiles declared table schemas into SQLite DDL. The static
// generation pipeline never touches this; it backs the `sovrium validate`
// command so schema authors learn about malformed tables before deploying the
// server build.
package tables

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/sovrium/sovrium/internal/schema"
)

// columnTypes maps declared field types to SQLite column types. SQLite has no
// dedicated date or boolean storage classes; dates are ISO-8601 TEXT and
// booleans INTEGER 0/1.
var columnTypes = map[string]string{
	"text":     "TEXT",
	"longtext": "TEXT",
	"email":    "TEXT",
	"url":      "TEXT",
	"select":   "TEXT",
	"json":     "TEXT",
	"date":     "TEXT",
	"datetime": "TEXT",
	"number":   "REAL",
	"integer":  "INTEGER",
	"boolean":  "INTEGER",
	"relation": "INTEGER",
}

var identPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// DDL compiles one table declaration into a CREATE TABLE statement. Every
// table gets a synthetic integer primary key; relation fields become foreign
// key columns named after the field.
func DDL(t schema.Table) (string, error) {
	if !identPattern.MatchString(t.Name) {
		return "", fmt.Errorf("invalid table name %q", t.Name)
	}
	if len(t.Fields) == 0 {
		return "", fmt.Errorf("table %q declares no fields", t.Name)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE IF NOT EXISTS %q (\n", t.Name)
	b.WriteString("  id INTEGER PRIMARY KEY AUTOINCREMENT")

	for _, f := range t.Fields {
		if !identPattern.MatchString(f.Name) {
			return "", fmt.Errorf("table %q: invalid field name %q", t.Name, f.Name)
		}
		colType, ok := columnTypes[f.Type]
		if !ok {
			return "", fmt.Errorf("table %q field %q: unknown type %q", t.Name, f.Name, f.Type)
		}
		fmt.Fprintf(&b, ",\n  %q %s", f.Name, colType)
		if f.Required {
			b.WriteString(" NOT NULL")
		}
		if f.Unique {
			b.WriteString(" UNIQUE")
		}
		if f.Default != "" {
			fmt.Fprintf(&b, " DEFAULT %s", defaultLiteral(f))
		}
	}
	b.WriteString("\n)")
	return b.String(), nil
}

// DDLAll compiles every declared table, in declaration order.
func DDLAll(tables []schema.Table) ([]string, error) {
	stmts := make([]string, 0, len(tables))
	for _, t := range tables {
		stmt, err := DDL(t)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

// defaultLiteral renders a field default as a SQL literal. Numeric and
// boolean defaults pass through bare; everything else is quoted.
func defaultLiteral(f schema.Field) string {
	switch f.Type {
	case "number", "integer", "boolean", "relation":
		return f.Default
	default:
		return "'" + strings.ReplaceAll(f.Default, "'", "''") + "'"
	}
}
