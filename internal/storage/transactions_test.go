package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/easeapp/ease/internal/common"
	"github.com/easeapp/ease/internal/model"
)

func TestCreateTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("sets created_at and assigns an id", func(t *testing.T) {
		store, cleanup := createSeededStorage(t)
		defer cleanup()

		txn := newTestTransaction(t, store, model.TypeExpense, 42.50, time.Now())
		txn.Desc = "lunch"

		created, err := store.CreateTransaction(ctx, txn)
		require.NoError(t, err)
		assert.NotZero(t, created.ID)
		assert.False(t, created.CreatedAt.IsZero())

		fetched, err := store.GetTransactionByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, 42.50, fetched.Amount)
		assert.Equal(t, "lunch", fetched.Desc)
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		store, cleanup := createSeededStorage(t)
		defer cleanup()

		for _, amount := range []float64{0, -5} {
			txn := newTestTransaction(t, store, model.TypeExpense, 1, time.Now())
			txn.Amount = amount
			_, err := store.CreateTransaction(ctx, txn)
			assert.ErrorIs(t, err, ErrInvalidRecord)
		}

		count, err := store.GetTransactionCount(ctx)
		require.NoError(t, err)
		assert.Zero(t, count)
	})
}

func TestUpdateTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("mutates fields in place, preserving created_at", func(t *testing.T) {
		store, cleanup := createSeededStorage(t)
		defer cleanup()

		txn := newTestTransaction(t, store, model.TypeExpense, 10, time.Now())
		created, err := store.CreateTransaction(ctx, txn)
		require.NoError(t, err)

		created.Amount = 25
		created.Desc = "updated"
		created.Date = created.Date.AddDate(0, 0, -3)
		require.NoError(t, store.UpdateTransaction(ctx, created))

		fetched, err := store.GetTransactionByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, 25.0, fetched.Amount)
		assert.Equal(t, "updated", fetched.Desc)
		assert.Equal(t, created.CreatedAt.Unix(), fetched.CreatedAt.Unix())
	})

	t.Run("unknown id", func(t *testing.T) {
		store, cleanup := createSeededStorage(t)
		defer cleanup()

		txn := newTestTransaction(t, store, model.TypeExpense, 10, time.Now())
		txn.ID = 12345
		err := store.UpdateTransaction(ctx, txn)
		assert.ErrorIs(t, err, common.ErrNotFound)
	})
}

func TestDeleteTransaction(t *testing.T) {
	ctx := context.Background()
	store, cleanup := createSeededStorage(t)
	defer cleanup()

	txn := newTestTransaction(t, store, model.TypeExpense, 10, time.Now())
	created, err := store.CreateTransaction(ctx, txn)
	require.NoError(t, err)

	require.NoError(t, store.DeleteTransaction(ctx, created.ID))

	_, err = store.GetTransactionByID(ctx, created.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)

	err = store.DeleteTransaction(ctx, created.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestGetTransactionsByMonth(t *testing.T) {
	ctx := context.Background()
	store, cleanup := createSeededStorage(t)
	defer cleanup()

	january := time.Date(2026, time.January, 15, 12, 0, 0, 0, time.UTC)
	lastInstant := time.Date(2026, time.January, 31, 23, 59, 59, 0, time.UTC)
	february := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)

	txn := newTestTransaction(t, store, model.TypeExpense, 10, lastInstant)
	_, err := store.CreateTransaction(ctx, txn)
	require.NoError(t, err)

	early := newTestTransaction(t, store, model.TypeExpense, 5, february)
	_, err = store.CreateTransaction(ctx, early)
	require.NoError(t, err)

	t.Run("last instant of the month is included", func(t *testing.T) {
		txns, err := store.GetTransactionsByMonth(ctx, january)
		require.NoError(t, err)
		require.Len(t, txns, 1)
		assert.Equal(t, 10.0, txns[0].Amount)
	})

	t.Run("and excluded from the following month", func(t *testing.T) {
		txns, err := store.GetTransactionsByMonth(ctx, february)
		require.NoError(t, err)
		require.Len(t, txns, 1)
		assert.Equal(t, 5.0, txns[0].Amount)
	})
}

func TestGetDescriptionsByType(t *testing.T) {
	ctx := context.Background()
	store, cleanup := createSeededStorage(t)
	defer cleanup()

	expense := newTestTransaction(t, store, model.TypeExpense, 10, time.Now())
	expense.Desc = "coffee beans"
	_, err := store.CreateTransaction(ctx, expense)
	require.NoError(t, err)

	// Duplicate description should appear once
	_, err = store.CreateTransaction(ctx, expense)
	require.NoError(t, err)

	income := newTestTransaction(t, store, model.TypeIncome, 100, time.Now())
	income.Desc = "march invoice"
	_, err = store.CreateTransaction(ctx, income)
	require.NoError(t, err)

	blank := newTestTransaction(t, store, model.TypeExpense, 3, time.Now())
	_, err = store.CreateTransaction(ctx, blank)
	require.NoError(t, err)

	expenseDescs, err := store.GetDescriptionsByType(ctx, model.TypeExpense)
	require.NoError(t, err)
	assert.Equal(t, []string{"coffee beans"}, expenseDescs)

	incomeDescs, err := store.GetDescriptionsByType(ctx, model.TypeIncome)
	require.NoError(t, err)
	assert.Equal(t, []string{"march invoice"}, incomeDescs)
}
