package model

import "time"

// Transaction is a single monetary record. Amount is always stored positive;
// direction is derived from the referenced category's type.
type Transaction struct {
	Date        time.Time
	CreatedAt   time.Time
	Desc        string
	PayeeID     *int64
	ID          int64
	CategoryID  int64
	Amount      float64
	IsRecurring bool
}

// SignedAmount returns the amount with the sign implied by the category:
// negative for expenses, positive for income.
func (t *Transaction) SignedAmount(cat *Category) float64 {
	if cat != nil && cat.Type == TypeExpense {
		return -t.Amount
	}
	return t.Amount
}
