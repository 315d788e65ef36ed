package migration

import (
	"database/sql"
	"fmt"

	"sellsheet_api/pkg/dbconnect"
)

type MigrationInterface interface {
	UpMigration(*sql.DB) error
}

// Step is one named schema change tracked in schema_migrations.
type Step struct {
	Name       string
	Statements []string
}

const trackingTable = `CREATE TABLE IF NOT EXISTS schema_migrations (
	name TEXT PRIMARY KEY,
	applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

// Apply runs every step that was not applied yet, each in its own transaction.
func Apply(db *sql.DB, driver string, steps []Step) (applied int, err error) {
	if _, err := db.Exec(trackingTable); err != nil {
		return 0, fmt.Errorf("create schema_migrations: %w", err)
	}

	for _, step := range steps {
		done, err := isApplied(db, driver, step.Name)
		if err != nil {
			return applied, err
		}
		if done {
			continue
		}
		if err := executeAndMark(db, driver, step); err != nil {
			return applied, err
		}
		applied++
	}
	return applied, nil
}

func isApplied(db *sql.DB, driver, name string) (bool, error) {
	var count int
	query := dbconnect.Rebind(driver, "SELECT COUNT(*) FROM schema_migrations WHERE name = ?")
	if err := db.QueryRow(query, name).Scan(&count); err != nil {
		return false, fmt.Errorf("check migration %s: %w", name, err)
	}
	return count > 0, nil
}

func executeAndMark(db *sql.DB, driver string, step Step) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin migration %s: %w", step.Name, err)
	}
	defer tx.Rollback()

	for _, stmt := range step.Statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("migration %s failed: %w", step.Name, err)
		}
	}

	mark := dbconnect.Rebind(driver, "INSERT INTO schema_migrations (name) VALUES (?)")
	if _, err := tx.Exec(mark, step.Name); err != nil {
		return fmt.Errorf("mark migration %s: %w", step.Name, err)
	}
	return tx.Commit()
}
