// generate_schema rebuilds internal/database/sqlc/schema.sql by applying the
// embedded migrations to an in-memory database and dumping what they created.
//
// With -check it writes nothing and exits non-zero when the file on disk
// no longer matches the migrations.
package main

import (
	"bytes"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"sislog/internal/database"
	"sislog/internal/database/migrations"
)

const header = `-- This file is auto-generated from migration files.
-- DO NOT EDIT MANUALLY. Run 'go generate ./internal/database' to regenerate.
-- Source: internal/database/migrations/files/*.sql

`

func main() {
	out := flag.String("out", filepath.Join("internal", "database", "sqlc", "schema.sql"), "schema file to write")
	check := flag.Bool("check", false, "compare against the existing file instead of writing it")
	flag.Parse()

	if err := run(*out, *check); err != nil {
		fmt.Fprintf(os.Stderr, "generate_schema: %v\n", err)
		os.Exit(1)
	}
}

func run(out string, check bool) error {
	db, err := database.OpenConnection(":memory:")
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	st, err := migrations.Up(db)
	if err != nil {
		return err
	}

	schema, err := dumpSchema(db)
	if err != nil {
		return err
	}

	if check {
		current, err := os.ReadFile(out)
		if err != nil {
			return err
		}
		if !bytes.Equal(current, schema) {
			return fmt.Errorf("%s is stale; run 'go generate ./internal/database'", out)
		}
		fmt.Printf("%s matches migration %d\n", out, st.Latest)
		return nil
	}

	if err := os.WriteFile(out, schema, 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s (migration %d)\n", out, st.Latest)
	return nil
}

// dumpSchema returns the CREATE statements for every table and index,
// tables first, leaving out SQLite internals and the migration bookkeeping.
func dumpSchema(db *sql.DB) ([]byte, error) {
	rows, err := db.Query(`
		SELECT sql || ';'
		FROM sqlite_master
		WHERE type IN ('table', 'index')
		  AND sql IS NOT NULL
		  AND name NOT LIKE 'sqlite_%'
		  AND tbl_name != 'schema_migrations'
		ORDER BY CASE type WHEN 'table' THEN 1 ELSE 2 END, name
	`)
	if err != nil {
		return nil, fmt.Errorf("reading sqlite_master: %w", err)
	}
	defer rows.Close()

	var b strings.Builder
	b.WriteString(header)
	for rows.Next() {
		var stmt string
		if err := rows.Scan(&stmt); err != nil {
			return nil, err
		}
		b.WriteString(stmt)
		b.WriteString("\n\n")
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return []byte(b.String()), nil
}
