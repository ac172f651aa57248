package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the application
// expects. If the database cannot be migrated to this version, it's a fatal
// error.
const ExpectedSchemaVersion = 3

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS categories (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					name TEXT NOT NULL,
					icon_name TEXT NOT NULL DEFAULT '',
					type TEXT NOT NULL,
					is_default BOOLEAN NOT NULL DEFAULT 0,
					parent_id INTEGER,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					FOREIGN KEY (parent_id) REFERENCES categories(id) ON DELETE CASCADE
				)`,
				`CREATE INDEX idx_categories_parent ON categories(parent_id)`,
				`CREATE INDEX idx_categories_default ON categories(type, is_default)`,

				`CREATE TABLE IF NOT EXISTS payees (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					name TEXT UNIQUE NOT NULL,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,

				`CREATE TABLE IF NOT EXISTS transactions (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					amount REAL NOT NULL CHECK (amount > 0),
					description TEXT NOT NULL DEFAULT '',
					date DATETIME NOT NULL,
					created_at DATETIME NOT NULL,
					category_id INTEGER NOT NULL,
					payee_id INTEGER,
					FOREIGN KEY (category_id) REFERENCES categories(id) ON DELETE RESTRICT,
					FOREIGN KEY (payee_id) REFERENCES payees(id) ON DELETE SET NULL
				)`,
				`CREATE INDEX idx_transactions_date ON transactions(date)`,
				`CREATE INDEX idx_transactions_category ON transactions(category_id)`,
				`CREATE INDEX idx_transactions_payee ON transactions(payee_id)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     2,
		Description: "Add color to categories",
		Up: func(tx *sql.Tx) error {
			_, err := tx.Exec(`
				ALTER TABLE categories
				ADD COLUMN color_hex TEXT NOT NULL DEFAULT ''
			`)
			if err != nil {
				return fmt.Errorf("failed to add color_hex column: %w", err)
			}
			return nil
		},
	},
	{
		Version:     3,
		Description: "Add recurring flag to transactions",
		Up: func(tx *sql.Tx) error {
			_, err := tx.Exec(`
				ALTER TABLE transactions
				ADD COLUMN is_recurring BOOLEAN NOT NULL DEFAULT 0
			`)
			if err != nil {
				return fmt.Errorf("failed to add is_recurring column: %w", err)
			}
			return nil
		},
	},
}

// Migrate applies all pending database migrations.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	// Get current version
	var currentVersion int
	err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}

	// Apply migrations
	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, txErr := s.db.BeginTx(ctx, nil)
		if txErr != nil {
			return fmt.Errorf("failed to begin transaction: %w", txErr)
		}

		if upErr := migration.Up(tx); upErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, upErr)
		}

		// Update version
		if _, execErr := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); execErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to update schema version: %w", execErr)
		}

		if commitErr := tx.Commit(); commitErr != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, commitErr)
		}

		slog.Info("Applied migration",
			"version", migration.Version,
			"description", migration.Description)
	}

	// Verify we're at the expected schema version
	var finalVersion int
	err = s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&finalVersion)
	if err != nil {
		return fmt.Errorf("failed to verify final schema version: %w", err)
	}

	if finalVersion != ExpectedSchemaVersion {
		return fmt.Errorf("database schema version mismatch: expected %d, got %d", ExpectedSchemaVersion, finalVersion)
	}

	return nil
}
