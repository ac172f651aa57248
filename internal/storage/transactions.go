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

const transactionColumns = `id, amount, description, date, created_at, is_recurring, category_id, payee_id`

func scanTransaction(row interface{ Scan(...any) error }) (*model.Transaction, error) {
	var txn model.Transaction
	var payeeID sql.NullInt64
	err := row.Scan(
		&txn.ID, &txn.Amount, &txn.Desc, &txn.Date, &txn.CreatedAt,
		&txn.IsRecurring, &txn.CategoryID, &payeeID,
	)
	if err != nil {
		return nil, err
	}
	if payeeID.Valid {
		id := payeeID.Int64
		txn.PayeeID = &id
	}
	return &txn, nil
}

// CreateTransaction inserts a new transaction. CreatedAt is system-set here;
// the user-editable date travels on the record untouched.
func (s *SQLiteStorage) CreateTransaction(ctx context.Context, txn *model.Transaction) (*model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateTransaction(txn); err != nil {
		return nil, err
	}

	now := time.Now()
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO transactions (amount, description, date, created_at, is_recurring, category_id, payee_id)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, txn.Amount, txn.Desc, txn.Date, now, txn.IsRecurring, txn.CategoryID, txn.PayeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction ID: %w", err)
	}

	created := *txn
	created.ID = id
	created.CreatedAt = now

	slog.Debug("created transaction", "id", id, "amount", created.Amount)
	return &created, nil
}

// UpdateTransaction mutates an existing transaction's fields in place.
// CreatedAt is never touched; it anchors within-day ordering.
func (s *SQLiteStorage) UpdateTransaction(ctx context.Context, txn *model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateTransaction(txn); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE transactions
		SET amount = ?, description = ?, date = ?, is_recurring = ?, category_id = ?, payee_id = ?
		WHERE id = ?
	`, txn.Amount, txn.Desc, txn.Date, txn.IsRecurring, txn.CategoryID, txn.PayeeID, txn.ID)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
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

// DeleteTransaction removes a transaction by id.
func (s *SQLiteStorage) DeleteTransaction(ctx context.Context, id int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
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

// GetTransactionByID returns a transaction by id, or common.ErrNotFound.
func (s *SQLiteStorage) GetTransactionByID(ctx context.Context, id int64) (*model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE id = ?`

	txn, err := scanTransaction(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction: %w", err)
	}

	return txn, nil
}

// GetAllTransactions returns every transaction, newest date first.
func (s *SQLiteStorage) GetAllTransactions(ctx context.Context) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		ORDER BY date DESC, created_at DESC`

	return s.queryTransactions(ctx, query)
}

// GetTransactionsByMonth returns transactions whose date falls in the same
// calendar year and month as the given time, in the local calendar. The
// month boundary is the sole filtering surface; there is no pagination.
func (s *SQLiteStorage) GetTransactionsByMonth(ctx context.Context, month time.Time) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	start := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, month.Location())
	end := start.AddDate(0, 1, 0)

	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE date >= ? AND date < ?
		ORDER BY date DESC, created_at DESC`

	return s.queryTransactions(ctx, query, start, end)
}

func (s *SQLiteStorage) queryTransactions(ctx context.Context, query string, args ...any) ([]model.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var transactions []model.Transaction
	for rows.Next() {
		txn, scanErr := scanTransaction(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", scanErr)
		}
		transactions = append(transactions, *txn)
	}

	return transactions, rows.Err()
}

// GetDescriptionsByType returns the distinct non-empty descriptions of past
// transactions whose category matches the given type. This is the candidate
// pool for description autocompletion.
func (s *SQLiteStorage) GetDescriptionsByType(ctx context.Context, t model.TransactionType) ([]string, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateType(t); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT t.description
		FROM transactions t
		JOIN categories c ON t.category_id = c.id
		WHERE c.type = ? AND t.description != ''
		ORDER BY t.description
	`, t)
	if err != nil {
		return nil, fmt.Errorf("failed to query descriptions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var descs []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("failed to scan description: %w", err)
		}
		descs = append(descs, d)
	}

	return descs, rows.Err()
}

// GetTransactionCount returns the total number of transactions.
func (s *SQLiteStorage) GetTransactionCount(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	return count, nil
}
