package main

import (
	"context"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/easeapp/ease/internal/model"
	"github.com/easeapp/ease/internal/storage"
)

// openTestDB points the command config at a throwaway database and returns a
// migrated, seeded store for direct setup.
func openTestDB(t *testing.T) *storage.SQLiteStorage {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "ease.db")
	viper.Set("database.path", dbPath)
	t.Cleanup(func() { viper.Set("database.path", "") })

	store, err := storage.NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	ctx := context.Background()
	require.NoError(t, store.Migrate(ctx))
	require.NoError(t, store.SeedDefaultCategories(ctx))
	return store
}

func TestAddEditKeepsTransactionType(t *testing.T) {
	ctx := context.Background()
	store := openTestDB(t)

	salary, err := store.GetDefaultCategory(ctx, model.TypeIncome)
	require.NoError(t, err)

	created, err := store.CreateTransaction(ctx, &model.Transaction{
		Date:       time.Now(),
		CategoryID: salary.ID,
		Amount:     5000,
	})
	require.NoError(t, err)

	t.Run("amount-only edit leaves an income transaction on its category", func(t *testing.T) {
		cmd := addCmd()
		cmd.SetArgs([]string{"--edit", strconv.FormatInt(created.ID, 10), "--amount", "6000"})
		require.NoError(t, cmd.ExecuteContext(ctx))

		updated, err := store.GetTransactionByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, salary.ID, updated.CategoryID)
		assert.InDelta(t, 6000, updated.Amount, 0.001)
	})

	t.Run("explicit --type still applies on edit", func(t *testing.T) {
		food, err := store.GetDefaultCategory(ctx, model.TypeExpense)
		require.NoError(t, err)

		cmd := addCmd()
		cmd.SetArgs([]string{
			"--edit", strconv.FormatInt(created.ID, 10),
			"--type", "expense",
			"--category", food.Name,
		})
		require.NoError(t, cmd.ExecuteContext(ctx))

		updated, err := store.GetTransactionByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, food.ID, updated.CategoryID)
	})
}
