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

func TestCreateCategory(t *testing.T) {
	ctx := context.Background()

	t.Run("creates parent and sub-category", func(t *testing.T) {
		store, cleanup := createTestStorage(t)
		defer cleanup()

		parent, err := store.CreateCategory(ctx, &model.Category{
			Name: "Travel", IconName: "airplane", Type: model.TypeExpense,
		})
		require.NoError(t, err)
		assert.True(t, parent.IsParent())
		assert.NotZero(t, parent.ID)

		sub, err := store.CreateCategory(ctx, &model.Category{
			Name: "Flights", IconName: "airplane", Type: model.TypeExpense, ParentID: &parent.ID,
		})
		require.NoError(t, err)
		assert.True(t, sub.IsSubCategory())
		assert.Equal(t, parent.ID, *sub.ParentID)
	})

	t.Run("rejects sub-category under a sub-category", func(t *testing.T) {
		store, cleanup := createTestStorage(t)
		defer cleanup()

		parent, err := store.CreateCategory(ctx, &model.Category{
			Name: "Travel", IconName: "airplane", Type: model.TypeExpense,
		})
		require.NoError(t, err)
		sub, err := store.CreateCategory(ctx, &model.Category{
			Name: "Flights", IconName: "airplane", Type: model.TypeExpense, ParentID: &parent.ID,
		})
		require.NoError(t, err)

		_, err = store.CreateCategory(ctx, &model.Category{
			Name: "Budget Flights", IconName: "airplane", Type: model.TypeExpense, ParentID: &sub.ID,
		})
		assert.ErrorIs(t, err, ErrInvalidCategory)
	})

	t.Run("creating a default clears the previous default of the type", func(t *testing.T) {
		store, cleanup := createSeededStorage(t)
		defer cleanup()

		previous, err := store.GetDefaultCategory(ctx, model.TypeExpense)
		require.NoError(t, err)

		parent, err := store.GetCategoryByName(ctx, "Transport")
		require.NoError(t, err)
		require.NotNil(t, parent)

		created, err := store.CreateCategory(ctx, &model.Category{
			Name: "Fuel", IconName: "fuelpump", Type: model.TypeExpense,
			ParentID: &parent.ID, IsDefault: true,
		})
		require.NoError(t, err)

		current, err := store.GetDefaultCategory(ctx, model.TypeExpense)
		require.NoError(t, err)
		assert.Equal(t, created.ID, current.ID)

		old, err := store.GetCategoryByID(ctx, previous.ID)
		require.NoError(t, err)
		assert.False(t, old.IsDefault)
	})
}

func TestGetDefaultCategory(t *testing.T) {
	ctx := context.Background()

	t.Run("fails without a flagged category", func(t *testing.T) {
		store, cleanup := createTestStorage(t)
		defer cleanup()

		_, err := store.GetDefaultCategory(ctx, model.TypeExpense)
		assert.ErrorIs(t, err, common.ErrNoDefaultCategory)
	})

	t.Run("only matches the requested type", func(t *testing.T) {
		store, cleanup := createTestStorage(t)
		defer cleanup()

		parent, err := store.CreateCategory(ctx, &model.Category{
			Name: "Income", IconName: "dollarsign", Type: model.TypeIncome,
		})
		require.NoError(t, err)
		_, err = store.CreateCategory(ctx, &model.Category{
			Name: "Salary", IconName: "dollarsign.circle", Type: model.TypeIncome,
			ParentID: &parent.ID, IsDefault: true,
		})
		require.NoError(t, err)

		_, err = store.GetDefaultCategory(ctx, model.TypeExpense)
		assert.ErrorIs(t, err, common.ErrNoDefaultCategory)

		def, err := store.GetDefaultCategory(ctx, model.TypeIncome)
		require.NoError(t, err)
		assert.Equal(t, "Salary", def.Name)
	})
}

func TestSetDefaultCategory(t *testing.T) {
	ctx := context.Background()

	t.Run("moves the flag within a type", func(t *testing.T) {
		store, cleanup := createSeededStorage(t)
		defer cleanup()

		groceries, err := store.GetCategoryByName(ctx, "Groceries")
		require.NoError(t, err)
		require.NotNil(t, groceries)

		require.NoError(t, store.SetDefaultCategory(ctx, groceries.ID))

		def, err := store.GetDefaultCategory(ctx, model.TypeExpense)
		require.NoError(t, err)
		assert.Equal(t, groceries.ID, def.ID)

		// Income default is untouched
		income, err := store.GetDefaultCategory(ctx, model.TypeIncome)
		require.NoError(t, err)
		assert.Equal(t, "Salary", income.Name)
	})

	t.Run("rejects parent categories", func(t *testing.T) {
		store, cleanup := createSeededStorage(t)
		defer cleanup()

		housing, err := store.GetCategoryByName(ctx, "Housing")
		require.NoError(t, err)
		require.NotNil(t, housing)

		err = store.SetDefaultCategory(ctx, housing.ID)
		assert.ErrorIs(t, err, ErrInvalidCategory)
	})

	t.Run("unknown id", func(t *testing.T) {
		store, cleanup := createSeededStorage(t)
		defer cleanup()

		err := store.SetDefaultCategory(ctx, 99999)
		assert.ErrorIs(t, err, common.ErrNotFound)
	})
}

func TestDeleteCategory(t *testing.T) {
	ctx := context.Background()

	t.Run("deleting a parent cascades to sub-categories", func(t *testing.T) {
		store, cleanup := createSeededStorage(t)
		defer cleanup()

		housing, err := store.GetCategoryByName(ctx, "Housing")
		require.NoError(t, err)
		require.NotNil(t, housing)

		rent, err := store.GetCategoryByName(ctx, "Rent")
		require.NoError(t, err)
		require.NotNil(t, rent)

		require.NoError(t, store.DeleteCategory(ctx, housing.ID))

		_, err = store.GetCategoryByID(ctx, housing.ID)
		assert.ErrorIs(t, err, common.ErrNotFound)
		_, err = store.GetCategoryByID(ctx, rent.ID)
		assert.ErrorIs(t, err, common.ErrNotFound)
	})

	t.Run("denied while transactions reference a sub-category", func(t *testing.T) {
		store, cleanup := createSeededStorage(t)
		defer cleanup()

		txn := newTestTransaction(t, store, model.TypeExpense, 12.5, time.Now())
		_, err := store.CreateTransaction(ctx, txn)
		require.NoError(t, err)

		err = store.DeleteCategory(ctx, txn.CategoryID)
		assert.ErrorIs(t, err, common.ErrCategoryInUse)

		// The category survives
		_, err = store.GetCategoryByID(ctx, txn.CategoryID)
		assert.NoError(t, err)
	})

	t.Run("denied for a parent whose sub-category is referenced", func(t *testing.T) {
		store, cleanup := createSeededStorage(t)
		defer cleanup()

		txn := newTestTransaction(t, store, model.TypeExpense, 12.5, time.Now())
		_, err := store.CreateTransaction(ctx, txn)
		require.NoError(t, err)

		food, err := store.GetCategoryByID(ctx, txn.CategoryID)
		require.NoError(t, err)
		require.NotNil(t, food.ParentID)

		err = store.DeleteCategory(ctx, *food.ParentID)
		assert.ErrorIs(t, err, common.ErrCategoryInUse)
	})
}

func TestGetCategoryUsage(t *testing.T) {
	ctx := context.Background()
	store, cleanup := createSeededStorage(t)
	defer cleanup()

	txn := newTestTransaction(t, store, model.TypeExpense, 5, time.Now())
	_, err := store.CreateTransaction(ctx, txn)
	require.NoError(t, err)
	_, err = store.CreateTransaction(ctx, txn)
	require.NoError(t, err)

	usage, err := store.GetCategoryUsage(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, usage[txn.CategoryID])
	assert.Len(t, usage, 1)
}
