// Package form holds the mutable draft state for creating and editing
// transactions, validates it, and commits it to storage. Validation always
// completes before any store mutation, so a failed save leaves the stores
// untouched.
package form

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/easeapp/ease/internal/common"
	"github.com/easeapp/ease/internal/model"
	"github.com/easeapp/ease/internal/service"
	"github.com/easeapp/ease/internal/suggest"
)

// Mode is the draft state: creating a new transaction or editing a bound one.
type Mode int

const (
	// ModeCreate builds a new transaction on save.
	ModeCreate Mode = iota
	// ModeUpdate mutates the bound transaction in place on save.
	ModeUpdate
)

// Form is the draft for a single transaction entry flow.
type Form struct {
	Date        time.Time
	Amount      *float64
	editing     *model.Transaction
	lastSaved   *model.Transaction
	selected    map[model.TransactionType]*model.Category
	lastErr     error
	PayeeSugg   *suggest.Suggester
	DescSugg    *suggest.Suggester
	Desc        string
	PayeeName   string
	Type        model.TransactionType
	mode        Mode
	IsRecurring bool
}

// New returns a form in its default state: create mode, expense type,
// today's date, amount unset.
func New() *Form {
	f := &Form{
		PayeeSugg: suggest.New(),
		DescSugg:  suggest.New(),
	}
	f.Reset()
	return f
}

// Mode returns the current draft state.
func (f *Form) Mode() Mode {
	return f.mode
}

// Editing returns the transaction bound for update, or nil in create mode.
func (f *Form) Editing() *model.Transaction {
	return f.editing
}

// LastSaved returns the transaction written by the most recent successful
// Save, or nil. Unlike Editing it carries no binding: a create-mode form
// stays in create mode after saving.
func (f *Form) LastSaved() *model.Transaction {
	return f.lastSaved
}

// Err returns the error retained from the last failed save, for display.
func (f *Form) Err() error {
	return f.lastErr
}

// SetAmount sets the draft amount.
func (f *Form) SetAmount(v float64) {
	f.Amount = &v
}

// SelectCategory records the chosen category for its own transaction type.
// Selections are kept per type so switching between expense and income does
// not lose either choice.
func (f *Form) SelectCategory(cat *model.Category) {
	if cat == nil {
		return
	}
	f.selected[cat.Type] = cat
}

// SelectedCategory returns the category chosen for the active type, or nil.
func (f *Form) SelectedCategory() *model.Category {
	return f.selected[f.Type]
}

// Load resets the form and populates every draft field from an existing
// transaction. With forEditing the form enters update mode bound to the
// transaction; without it the values seed a duplicate in create mode.
func (f *Form) Load(ctx context.Context, store service.Storage, trsn *model.Transaction, forEditing bool) error {
	if trsn == nil {
		return fmt.Errorf("cannot load nil transaction")
	}

	cat, err := store.GetCategoryByID(ctx, trsn.CategoryID)
	if err != nil {
		return fmt.Errorf("failed to resolve category: %w", err)
	}

	var payeeName string
	if trsn.PayeeID != nil {
		payees, payeeErr := store.GetAllPayees(ctx)
		if payeeErr != nil {
			return fmt.Errorf("failed to resolve payee: %w", payeeErr)
		}
		for i := range payees {
			if payees[i].ID == *trsn.PayeeID {
				payeeName = payees[i].Name
				break
			}
		}
	}

	f.Reset()
	amount := trsn.Amount
	f.Amount = &amount
	f.Desc = trsn.Desc
	f.PayeeName = payeeName
	f.Date = trsn.Date
	f.IsRecurring = trsn.IsRecurring
	f.Type = cat.Type
	f.selected[cat.Type] = cat

	if forEditing {
		bound := *trsn
		f.editing = &bound
		f.mode = ModeUpdate
	}

	return nil
}

// Save validates the draft and commits it. Order matters: category first,
// then amount; the first failure is retained and returned, and nothing is
// written. On success in update mode, a repointed payee triggers orphan
// cleanup on the previous payee after the save is committed.
func (f *Form) Save(ctx context.Context, store service.Storage) error {
	cat := f.SelectedCategory()
	if cat == nil || cat.Type != f.Type {
		f.lastErr = common.ErrMissingCategory
		return f.lastErr
	}

	if f.Amount == nil || *f.Amount <= 0 {
		f.lastErr = common.ErrInvalidAmount
		return f.lastErr
	}

	var payeeID *int64
	payeeName := strings.TrimSpace(f.PayeeName)
	if payeeName != "" {
		payee, err := store.GetOrCreatePayee(ctx, payeeName)
		if err != nil {
			f.lastErr = err
			return err
		}
		payeeID = &payee.ID
	}

	switch f.mode {
	case ModeCreate:
		txn := &model.Transaction{
			Amount:      *f.Amount,
			Desc:        strings.TrimSpace(f.Desc),
			Date:        f.Date,
			IsRecurring: f.IsRecurring,
			CategoryID:  cat.ID,
			PayeeID:     payeeID,
		}
		created, err := store.CreateTransaction(ctx, txn)
		if err != nil {
			f.lastErr = err
			return err
		}
		f.lastSaved = created

	case ModeUpdate:
		prevPayeeID := f.editing.PayeeID

		f.editing.Amount = *f.Amount
		f.editing.Desc = strings.TrimSpace(f.Desc)
		f.editing.Date = f.Date
		f.editing.IsRecurring = f.IsRecurring
		f.editing.CategoryID = cat.ID
		f.editing.PayeeID = payeeID

		if err := store.UpdateTransaction(ctx, f.editing); err != nil {
			f.lastErr = err
			return err
		}

		// Cleanup runs after the update is committed so it observes the
		// post-change reference counts.
		if prevPayeeID != nil && !samePayee(prevPayeeID, payeeID) {
			if _, err := store.DeletePayeeIfOrphaned(ctx, *prevPayeeID); err != nil {
				f.lastErr = err
				return err
			}
		}
		f.lastSaved = f.editing
	}

	f.lastErr = nil
	return nil
}

// Reset clears every draft field, suggestion state, and edit binding back to
// defaults.
func (f *Form) Reset() {
	f.Amount = nil
	f.Desc = ""
	f.PayeeName = ""
	f.Date = time.Now()
	f.IsRecurring = false
	f.Type = model.TypeExpense
	f.selected = make(map[model.TransactionType]*model.Category)
	f.mode = ModeCreate
	f.editing = nil
	f.lastSaved = nil
	f.lastErr = nil
	f.PayeeSugg.Reset()
	f.DescSugg.Reset()
}

// SaveAndReset saves, then resets for rapid sequential entry: the draft date
// survives the reset so consecutive entries stay on the same day, and the
// default category for the active type is pre-selected again. The default
// lookup here is best-effort; a missing default leaves the selection empty
// rather than failing, since the next save will surface it.
func (f *Form) SaveAndReset(ctx context.Context, store service.Storage) error {
	if err := f.Save(ctx, store); err != nil {
		return err
	}

	keepDate := f.Date
	saved := f.lastSaved
	f.Reset()
	f.Date = keepDate
	f.lastSaved = saved

	if def, err := store.GetDefaultCategory(ctx, f.Type); err == nil {
		f.selected[f.Type] = def
	}

	return nil
}

// Delete removes a transaction and cleans up its payee if that was the last
// reference. The payee id is captured before the delete so cleanup targets
// the right record. When the deleted transaction is the one bound for
// editing, the form resets.
func (f *Form) Delete(ctx context.Context, store service.Storage, trsn *model.Transaction) error {
	if trsn == nil {
		return fmt.Errorf("cannot delete nil transaction")
	}

	prevPayeeID := trsn.PayeeID

	if err := store.DeleteTransaction(ctx, trsn.ID); err != nil {
		return err
	}

	if prevPayeeID != nil {
		if _, err := store.DeletePayeeIfOrphaned(ctx, *prevPayeeID); err != nil {
			return err
		}
	}

	if f.editing != nil && f.editing.ID == trsn.ID {
		f.Reset()
	}

	return nil
}

func samePayee(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
