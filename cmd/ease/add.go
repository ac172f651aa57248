package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/easeapp/ease/internal/cli"
	"github.com/easeapp/ease/internal/common"
	"github.com/easeapp/ease/internal/form"
	"github.com/easeapp/ease/internal/model"
	"github.com/spf13/cobra"
)

func addCmd() *cobra.Command {
	var (
		amount    float64
		txnType   string
		category  string
		payee     string
		desc      string
		date      string
		recurring bool
		another   bool
		editID    int64
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a transaction",
		Long: `Record an income or expense transaction. Without --category the default
sub-category for the transaction type is used. With --edit the identified
transaction is updated in place instead.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			f := form.New()

			if editID != 0 {
				existing, getErr := store.GetTransactionByID(ctx, editID)
				if getErr != nil {
					return fmt.Errorf("transaction %d: %w", editID, getErr)
				}
				if loadErr := f.Load(ctx, store, existing, true); loadErr != nil {
					return loadErr
				}
			}

			// An edit keeps the loaded transaction's type unless --type was
			// passed explicitly; the flag's default must not override it.
			if editID == 0 || cmd.Flags().Changed("type") {
				t := model.TransactionType(txnType)
				if !t.Valid() {
					return fmt.Errorf("invalid type %q (want expense or income)", txnType)
				}
				f.Type = t
			}

			if cmd.Flags().Changed("amount") {
				f.SetAmount(amount)
			}
			if cmd.Flags().Changed("payee") {
				f.PayeeName = payee
			}
			if cmd.Flags().Changed("desc") {
				f.Desc = desc
			}
			if cmd.Flags().Changed("recurring") {
				f.IsRecurring = recurring
			}
			if date != "" {
				d, parseErr := time.ParseInLocation("2006-01-02", date, time.Local)
				if parseErr != nil {
					return fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", date, parseErr)
				}
				f.Date = d
			}

			if category != "" {
				cat, catErr := store.GetCategoryByName(ctx, category)
				if catErr != nil {
					return catErr
				}
				if cat == nil {
					return fmt.Errorf("unknown category %q", category)
				}
				if cat.IsParent() {
					return fmt.Errorf("%q is a parent category; pick one of its sub-categories", category)
				}
				f.SelectCategory(cat)
			} else if f.SelectedCategory() == nil {
				// First-entry pre-fill: a missing default is a hard error
				// here because saving cannot proceed without a category.
				def, defErr := store.GetDefaultCategory(ctx, f.Type)
				if defErr != nil {
					return describeAndWrap(defErr)
				}
				f.SelectCategory(def)
			}

			var saveErr error
			if another {
				// Resets for the next entry, so the saved row is not
				// retrievable from the form afterwards.
				saveErr = f.SaveAndReset(ctx, store)
			} else {
				saveErr = f.Save(ctx, store)
			}
			if saveErr != nil {
				return describeAndWrap(saveErr)
			}

			verb := "Recorded"
			if editID != 0 {
				verb = "Updated"
			}
			if saved := f.LastSaved(); saved != nil {
				fmt.Println(cli.FormatSuccess(fmt.Sprintf("%s transaction #%d", verb, saved.ID)))
			} else {
				fmt.Println(cli.FormatSuccess(verb + " transaction"))
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&amount, "amount", 0, "transaction amount (must be > 0)")
	cmd.Flags().StringVar(&txnType, "type", string(model.TypeExpense), "transaction type (expense, income)")
	cmd.Flags().StringVar(&category, "category", "", "sub-category name (defaults to the type's default category)")
	cmd.Flags().StringVar(&payee, "payee", "", "payee name (created on first use)")
	cmd.Flags().StringVar(&desc, "desc", "", "free-text description")
	cmd.Flags().StringVar(&date, "date", "", "transaction date YYYY-MM-DD (default today)")
	cmd.Flags().BoolVar(&recurring, "recurring", false, "mark as recurring")
	cmd.Flags().BoolVar(&another, "another", false, "keep the date and default category for the next entry")
	cmd.Flags().Int64Var(&editID, "edit", 0, "update the transaction with this id instead of creating")

	return cmd
}

// describeAndWrap turns a domain error into the dismissable-alert shape:
// short title, one-sentence message.
func describeAndWrap(err error) error {
	title, message := common.DescribeError(err)
	return errors.New(cli.FormatError(title + ": " + message))
}
