// Package engine derives the monthly views of the transaction history:
// month filtering, day-grouped sections with signed totals, and summary
// figures. Every derivation is a pure function over (transactions,
// hierarchy, current date); nothing here mutates state or touches storage.
package engine

import (
	"sort"
	"time"

	"github.com/easeapp/ease/internal/model"
)

// Section is a day-grouped bucket of transactions with a derived signed
// total, used for list display. Not persisted.
type Section struct {
	Date         time.Time
	Transactions []model.Transaction
	Total        float64
}

// Summary holds the signed figures for one month of activity.
type Summary struct {
	Income  float64
	Expense float64
	Balance float64
}

// TransactionsByMonth filters to transactions whose date falls in the same
// calendar year and month as current, in current's location.
func TransactionsByMonth(txns []model.Transaction, current time.Time) []model.Transaction {
	var out []model.Transaction
	for _, txn := range txns {
		d := txn.Date.In(current.Location())
		if d.Year() == current.Year() && d.Month() == current.Month() {
			out = append(out, txn)
		}
	}
	return out
}

// Sections groups transactions by calendar day. Days are ordered most
// recent first; within a day, transactions are ordered by creation time
// descending, independent of the user-editable date field. Each section's
// total is signed by category type: expenses subtract, income adds.
func Sections(txns []model.Transaction, h *model.Hierarchy) []Section {
	byDay := make(map[time.Time][]model.Transaction)
	for _, txn := range txns {
		day := truncateToDay(txn.Date)
		byDay[day] = append(byDay[day], txn)
	}

	sections := make([]Section, 0, len(byDay))
	for day, group := range byDay {
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].CreatedAt.After(group[j].CreatedAt)
		})

		total := 0.0
		for i := range group {
			total += group[i].SignedAmount(h.ByID(group[i].CategoryID))
		}

		sections = append(sections, Section{
			Date:         day,
			Transactions: group,
			Total:        total,
		})
	}

	sort.Slice(sections, func(i, j int) bool {
		return sections[i].Date.After(sections[j].Date)
	})

	return sections
}

// Summarize computes the income, expense, and balance figures over a month's
// transactions. Income and expense are both reported as positive magnitudes;
// the balance is income minus expense.
func Summarize(txns []model.Transaction, h *model.Hierarchy) Summary {
	var s Summary
	for i := range txns {
		cat := h.ByID(txns[i].CategoryID)
		if cat != nil && cat.Type == model.TypeIncome {
			s.Income += txns[i].Amount
		} else {
			s.Expense += txns[i].Amount
		}
	}
	s.Balance = s.Income - s.Expense
	return s
}

// truncateToDay drops the time of day in the date's own location.
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
