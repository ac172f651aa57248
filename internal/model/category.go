package model

import "time"

// TransactionType indicates whether a category classifies income or expense.
type TransactionType string

const (
	// TypeExpense represents money leaving the account.
	TypeExpense TransactionType = "expense"
	// TypeIncome represents money entering the account.
	TypeIncome TransactionType = "income"
)

// TransactionTypes lists every valid transaction type.
var TransactionTypes = []TransactionType{TypeExpense, TypeIncome}

// Valid reports whether the type is one of the known values.
func (t TransactionType) Valid() bool {
	return t == TypeExpense || t == TypeIncome
}

// Category is a node in the two-level category taxonomy. A category with no
// ParentID is a parent (grouping only); a category with a ParentID is a
// sub-category, the only kind a transaction may reference.
type Category struct {
	CreatedAt time.Time
	Name      string
	IconName  string
	ColorHex  string
	Type      TransactionType
	ParentID  *int64
	ID        int64
	IsDefault bool
}

// IsParent reports whether the category is a top-level taxonomy node.
func (c *Category) IsParent() bool {
	return c.ParentID == nil
}

// IsSubCategory reports whether the category is a leaf node.
func (c *Category) IsSubCategory() bool {
	return !c.IsParent()
}
