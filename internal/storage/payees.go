package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/easeapp/ease/internal/common"
	"github.com/easeapp/ease/internal/model"
)

// GetPayee retrieves a payee by exact name, or nil when none exists.
func (s *SQLiteStorage) GetPayee(ctx context.Context, name string) (*model.Payee, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}

	// Check cache first
	if payee := s.getCachedPayee(name); payee != nil {
		return payee, nil
	}

	var payee model.Payee
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, created_at
		FROM payees
		WHERE name = ?
	`, name).Scan(&payee.ID, &payee.Name, &payee.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil // Not an error, just not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get payee: %w", err)
	}

	s.cachePayee(&payee)
	return &payee, nil
}

// GetOrCreatePayee returns the payee with the given name, creating it when
// absent. The unique constraint on name keeps concurrent callers from ever
// producing duplicates; on a conflicting insert the existing row is reused.
func (s *SQLiteStorage) GetOrCreatePayee(ctx context.Context, name string) (*model.Payee, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}

	if existing, err := s.GetPayee(ctx, name); err != nil {
		return nil, err
	} else if existing != nil {
		return existing, nil
	}

	now := time.Now()
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO payees (name, created_at)
		VALUES (?, ?)
		ON CONFLICT(name) DO NOTHING
	`, name, now)
	if err != nil {
		return nil, fmt.Errorf("failed to create payee: %w", err)
	}

	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		// Lost the race to another writer; fetch the winner.
		return s.GetPayee(ctx, name)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get payee ID: %w", err)
	}

	payee := &model.Payee{
		ID:        id,
		Name:      name,
		CreatedAt: now,
	}

	s.cachePayee(payee)
	slog.Info("created new payee", "name", name, "id", id)
	return payee, nil
}

// GetAllPayees returns every payee ordered by name.
func (s *SQLiteStorage) GetAllPayees(ctx context.Context) ([]model.Payee, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, created_at
		FROM payees
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query payees: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var payees []model.Payee
	for rows.Next() {
		var payee model.Payee
		if err := rows.Scan(&payee.ID, &payee.Name, &payee.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan payee: %w", err)
		}
		payees = append(payees, payee)
	}

	return payees, rows.Err()
}

// CountTransactionsByPayee returns how many transactions reference a payee.
func (s *SQLiteStorage) CountTransactionsByPayee(ctx context.Context, id int64) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM transactions WHERE payee_id = ?
	`, id).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count payee references: %w", err)
	}

	return count, nil
}

// DeletePayee removes a payee regardless of references. The schema's
// ON DELETE SET NULL clears payee_id on any transaction that still points at
// it, so the transactions survive without a payee.
func (s *SQLiteStorage) DeletePayee(ctx context.Context, id int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM payees WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete payee: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return common.ErrNotFound
	}

	s.evictCachedPayee(id)
	slog.Info("deleted payee", "id", id)
	return nil
}

// DeletePayeeIfOrphaned removes the payee when no transaction references it
// anymore. It must be called after the triggering save or delete has been
// committed, so the count observes the post-change state. Returns whether
// the payee was removed.
func (s *SQLiteStorage) DeletePayeeIfOrphaned(ctx context.Context, id int64) (bool, error) {
	if err := validateContext(ctx); err != nil {
		return false, err
	}

	result, err := s.db.ExecContext(ctx, `
		DELETE FROM payees
		WHERE id = ?
		  AND NOT EXISTS (SELECT 1 FROM transactions WHERE payee_id = ?)
	`, id, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete orphaned payee: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected > 0 {
		s.evictCachedPayee(id)
		slog.Debug("removed orphaned payee", "id", id)
	}
	return rowsAffected > 0, nil
}
