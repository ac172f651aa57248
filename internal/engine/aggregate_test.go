package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/easeapp/ease/internal/model"
)

func ptr(v int64) *int64 { return &v }

var testCategories = []model.Category{
	{ID: 1, Name: "Food", Type: model.TypeExpense},
	{ID: 2, Name: "Income", Type: model.TypeIncome},
	{ID: 10, Name: "Dine Out", Type: model.TypeExpense, ParentID: ptr(1)},
	{ID: 20, Name: "Salary", Type: model.TypeIncome, ParentID: ptr(2)},
}

func date(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, time.UTC)
}

func TestTransactionsByMonth(t *testing.T) {
	january := date(2026, time.January, 15, 12, 0)
	txns := []model.Transaction{
		{ID: 1, Amount: 10, CategoryID: 10, Date: date(2026, time.January, 1, 0, 0)},
		{ID: 2, Amount: 20, CategoryID: 10, Date: time.Date(2026, time.January, 31, 23, 59, 59, 999999999, time.UTC)},
		{ID: 3, Amount: 30, CategoryID: 10, Date: date(2026, time.February, 1, 0, 0)},
		{ID: 4, Amount: 40, CategoryID: 10, Date: date(2025, time.January, 10, 0, 0)},
	}

	t.Run("includes the month's last instant", func(t *testing.T) {
		got := TransactionsByMonth(txns, january)
		require.Len(t, got, 2)
		assert.Equal(t, int64(1), got[0].ID)
		assert.Equal(t, int64(2), got[1].ID)
	})

	t.Run("excludes it from the following month", func(t *testing.T) {
		got := TransactionsByMonth(txns, date(2026, time.February, 10, 0, 0))
		require.Len(t, got, 1)
		assert.Equal(t, int64(3), got[0].ID)
	})

	t.Run("same month of another year does not match", func(t *testing.T) {
		got := TransactionsByMonth(txns, date(2025, time.January, 1, 0, 0))
		require.Len(t, got, 1)
		assert.Equal(t, int64(4), got[0].ID)
	})
}

func TestSections(t *testing.T) {
	h := model.NewHierarchy(testCategories)

	morning := model.Transaction{
		ID: 1, Amount: 15, CategoryID: 10,
		Date:      date(2026, time.January, 15, 10, 0),
		CreatedAt: date(2026, time.January, 15, 10, 0),
	}
	evening := model.Transaction{
		ID: 2, Amount: 30, CategoryID: 10,
		Date:      date(2026, time.January, 15, 17, 30),
		CreatedAt: date(2026, time.January, 15, 17, 30),
	}
	earlier := model.Transaction{
		ID: 3, Amount: 100, CategoryID: 20,
		Date:      date(2026, time.January, 10, 9, 0),
		CreatedAt: date(2026, time.January, 10, 9, 0),
	}

	sections := Sections([]model.Transaction{morning, evening, earlier}, h)
	require.Len(t, sections, 2)

	t.Run("days are ordered most recent first", func(t *testing.T) {
		assert.Equal(t, date(2026, time.January, 15, 0, 0), sections[0].Date)
		assert.Equal(t, date(2026, time.January, 10, 0, 0), sections[1].Date)
	})

	t.Run("within a day, most recently created first", func(t *testing.T) {
		day := sections[0]
		require.Len(t, day.Transactions, 2)
		assert.Equal(t, int64(2), day.Transactions[0].ID)
		assert.Equal(t, int64(1), day.Transactions[1].ID)
	})

	t.Run("totals are signed by category type", func(t *testing.T) {
		assert.Equal(t, -45.0, sections[0].Total)
		assert.Equal(t, 100.0, sections[1].Total)
	})

	t.Run("within-day order follows creation time, not date", func(t *testing.T) {
		backdated := morning
		backdated.ID = 4
		// Dated earlier in the day but entered later
		backdated.Date = date(2026, time.January, 15, 8, 0)
		backdated.CreatedAt = date(2026, time.January, 15, 20, 0)

		got := Sections([]model.Transaction{morning, evening, backdated}, h)
		require.Len(t, got, 1)
		assert.Equal(t, int64(4), got[0].Transactions[0].ID)
	})
}

func TestSummarize(t *testing.T) {
	h := model.NewHierarchy(testCategories)

	txns := []model.Transaction{
		{ID: 1, Amount: 5000.00, CategoryID: 20},
		{ID: 2, Amount: 87.50, CategoryID: 10},
	}

	s := Summarize(txns, h)
	assert.Equal(t, 5000.00, s.Income)
	assert.Equal(t, 87.50, s.Expense)
	assert.Equal(t, 4912.50, s.Balance)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil, model.NewHierarchy(testCategories))
	assert.Zero(t, s.Income)
	assert.Zero(t, s.Expense)
	assert.Zero(t, s.Balance)
}
