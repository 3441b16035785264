package cache

import (
	"database/sql"
	"fmt"
	"log"

	"storefront_api/pkg/dbconnect/migration"
)

type MigrationsSchema struct{}

func (m *MigrationsSchema) UpMigration(db *sql.DB) error {
	_, err := db.Exec(`CREATE SCHEMA IF NOT EXISTS migrations;`)
	if err != nil {
		return fmt.Errorf("failed to create migrations schema: %w", err)
	}
	_, err = db.Exec(`
        CREATE TABLE IF NOT EXISTS migrations.migrations (
            id SERIAL PRIMARY KEY,
            time TIMESTAMP NOT NULL,
            name VARCHAR(255) UNIQUE NOT NULL
        );
    `)
	if err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}
	return nil
}

type StorefrontSchema struct{}

func (m *StorefrontSchema) UpMigration(db *sql.DB) error {
	_, err := db.Exec(`CREATE SCHEMA IF NOT EXISTS storefront;`)
	if err != nil {
		return fmt.Errorf("failed to create storefront schema: %w", err)
	}
	return nil
}

type CacheEntries struct{}

func (m *CacheEntries) UpMigration(db *sql.DB) error {
	var migrationExists bool
	err := db.QueryRow("SELECT EXISTS (SELECT 1 FROM migrations.migrations WHERE name = 'storefront.cache_entries')").Scan(&migrationExists)
	if err != nil {
		return fmt.Errorf("failed to check migration status: %w", err)
	}
	if migrationExists {
		log.Println("Migration 'storefront.cache_entries' already completed. Skipping.")
		return nil
	}

	query := `
		CREATE TABLE IF NOT EXISTS storefront.cache_entries (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL
		);
		CREATE INDEX IF NOT EXISTS cache_entries_key_pattern_idx
			ON storefront.cache_entries (key text_pattern_ops);
	`
	if _, err = db.Exec(query); err != nil {
		return fmt.Errorf("failed to create storefront.cache_entries table: %w", err)
	}
	_, err = db.Exec("INSERT INTO migrations.migrations (name, time) VALUES ('storefront.cache_entries', current_timestamp)")
	if err != nil {
		return fmt.Errorf("failed to mark storefront.cache_entries migration as complete: %w", err)
	}

	log.Println("Migration 'storefront.cache_entries' completed successfully.")
	return nil
}

// All returns the migrations of the postgres cache backend in apply order.
func All() []migration.MigrationInterface {
	return []migration.MigrationInterface{
		&MigrationsSchema{},
		&StorefrontSchema{},
		&CacheEntries{},
	}
}
