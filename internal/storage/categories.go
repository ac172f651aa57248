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

const categoryColumns = `id, name, icon_name, color_hex, type, is_default, parent_id, created_at`

func scanCategory(row interface{ Scan(...any) error }) (*model.Category, error) {
	var cat model.Category
	var parentID sql.NullInt64
	err := row.Scan(
		&cat.ID, &cat.Name, &cat.IconName, &cat.ColorHex,
		&cat.Type, &cat.IsDefault, &parentID, &cat.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if parentID.Valid {
		id := parentID.Int64
		cat.ParentID = &id
	}
	return &cat, nil
}

// GetCategories returns every category, parents and sub-categories alike,
// ordered by name.
func (s *SQLiteStorage) GetCategories(ctx context.Context) ([]model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		ORDER BY name`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var categories []model.Category
	for rows.Next() {
		cat, scanErr := scanCategory(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan category: %w", scanErr)
		}
		categories = append(categories, *cat)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	slog.Debug("retrieved categories", "count", len(categories))
	return categories, nil
}

// GetCategoryByID returns a category by its id, or common.ErrNotFound.
func (s *SQLiteStorage) GetCategoryByID(ctx context.Context, id int64) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE id = ?`

	cat, err := scanCategory(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query category: %w", err)
	}

	return cat, nil
}

// GetCategoryByName returns the first category with the given name, or nil
// when none exists. Names are unique by convention, not constraint: a parent
// and its default leaf may share a name (the seeded "Food" pair does), in
// which case sub-categories win.
func (s *SQLiteStorage) GetCategoryByName(ctx context.Context, name string) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}

	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE name = ?
		ORDER BY parent_id IS NULL
		LIMIT 1`

	cat, err := scanCategory(s.db.QueryRowContext(ctx, query, name))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil // Category not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query category: %w", err)
	}

	return cat, nil
}

// CreateCategory persists a new category. When the category is flagged as a
// default, any previous default of the same type is cleared in the same
// transaction so at most one default per type exists.
func (s *SQLiteStorage) CreateCategory(ctx context.Context, cat *model.Category) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateCategory(cat); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if cat.ParentID != nil {
		var parentExists bool
		err = tx.QueryRowContext(ctx, `
			SELECT EXISTS(SELECT 1 FROM categories WHERE id = ? AND parent_id IS NULL)
		`, *cat.ParentID).Scan(&parentExists)
		if err != nil {
			return nil, fmt.Errorf("failed to check parent category: %w", err)
		}
		// Two-level hierarchy only: the parent must itself be a parent
		if !parentExists {
			return nil, fmt.Errorf("%w: parent category %d", ErrInvalidCategory, *cat.ParentID)
		}
	}

	if cat.IsDefault {
		if _, err = tx.ExecContext(ctx, `
			UPDATE categories SET is_default = 0 WHERE type = ? AND is_default = 1
		`, cat.Type); err != nil {
			return nil, fmt.Errorf("failed to clear previous default: %w", err)
		}
	}

	now := time.Now()
	result, err := tx.ExecContext(ctx, `
		INSERT INTO categories (name, icon_name, color_hex, type, is_default, parent_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, cat.Name, cat.IconName, cat.ColorHex, cat.Type, cat.IsDefault, cat.ParentID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get category ID: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit category: %w", err)
	}

	created := *cat
	created.ID = id
	created.CreatedAt = now

	slog.Info("created new category", "name", created.Name, "id", id, "type", created.Type)
	return &created, nil
}

// DeleteCategory removes a category. Deleting a parent cascades to its
// sub-categories; deleting any category still referenced by transactions is
// denied with common.ErrCategoryInUse.
func (s *SQLiteStorage) DeleteCategory(ctx context.Context, id int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	// The RESTRICT foreign key would reject this too, but checking first
	// gives a typed error instead of a driver error string.
	var inUse int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM transactions
		WHERE category_id = ?
		   OR category_id IN (SELECT id FROM categories WHERE parent_id = ?)
	`, id, id).Scan(&inUse)
	if err != nil {
		return fmt.Errorf("failed to count category references: %w", err)
	}
	if inUse > 0 {
		return common.NewUserError(
			"Category In Use",
			fmt.Sprintf("This category still has %d transactions.", inUse),
			common.ErrCategoryInUse,
		)
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return common.ErrNotFound
	}

	return nil
}

// GetDefaultCategory returns the sub-category flagged as default for the
// given type. The caller decides whether a miss is fatal: transaction entry
// cannot proceed without one, while convenience pre-fills swallow it.
func (s *SQLiteStorage) GetDefaultCategory(ctx context.Context, t model.TransactionType) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateType(t); err != nil {
		return nil, err
	}

	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE is_default = 1 AND type = ?
		LIMIT 1`

	cat, err := scanCategory(s.db.QueryRowContext(ctx, query, t))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", common.ErrNoDefaultCategory, t)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query default category: %w", err)
	}

	return cat, nil
}

// SetDefaultCategory flags the given sub-category as the default for its
// type, clearing the previous default in the same transaction.
func (s *SQLiteStorage) SetDefaultCategory(ctx context.Context, id int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var catType model.TransactionType
	var parentID sql.NullInt64
	err = tx.QueryRowContext(ctx, `
		SELECT type, parent_id FROM categories WHERE id = ?
	`, id).Scan(&catType, &parentID)
	if errors.Is(err, sql.ErrNoRows) {
		return common.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to query category: %w", err)
	}

	// Only sub-categories can be transaction targets, so only they can be
	// defaults.
	if !parentID.Valid {
		return fmt.Errorf("%w: parent categories cannot be defaults", ErrInvalidCategory)
	}

	if _, err = tx.ExecContext(ctx, `
		UPDATE categories SET is_default = 0 WHERE type = ? AND is_default = 1
	`, catType); err != nil {
		return fmt.Errorf("failed to clear previous default: %w", err)
	}

	if _, err = tx.ExecContext(ctx, `
		UPDATE categories SET is_default = 1 WHERE id = ?
	`, id); err != nil {
		return fmt.Errorf("failed to set default category: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit default change: %w", err)
	}

	slog.Info("changed default category", "id", id, "type", catType)
	return nil
}

// GetCategoryUsage returns the count of transactions referencing each
// category id. Categories with no transactions are absent from the map.
func (s *SQLiteStorage) GetCategoryUsage(ctx context.Context) (map[int64]int, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT category_id, COUNT(*)
		FROM transactions
		GROUP BY category_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query category usage: %w", err)
	}
	defer func() { _ = rows.Close() }()

	usage := make(map[int64]int)
	for rows.Next() {
		var id int64
		var count int
		if err := rows.Scan(&id, &count); err != nil {
			return nil, fmt.Errorf("failed to scan category usage: %w", err)
		}
		usage[id] = count
	}

	return usage, rows.Err()
}
