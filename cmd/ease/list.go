package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/easeapp/ease/internal/cli"
	"github.com/easeapp/ease/internal/engine"
	"github.com/easeapp/ease/internal/model"
	"github.com/spf13/cobra"
)

func listCmd() *cobra.Command {
	var (
		month  string
		offset int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the month's transactions",
		Long:  `Display the selected month's transactions grouped by day, most recent first, with per-day signed totals.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			current, err := parseMonth(month)
			if err != nil {
				return err
			}
			current = shiftMonths(current, offset)

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			txns, err := store.GetTransactionsByMonth(ctx, current)
			if err != nil {
				return fmt.Errorf("failed to load transactions: %w", err)
			}

			if len(txns) == 0 {
				fmt.Println(cli.InfoStyle.Render("No transactions. Start tracking with 'ease add'."))
				return nil
			}

			categories, err := store.GetCategories(ctx)
			if err != nil {
				return fmt.Errorf("failed to load categories: %w", err)
			}
			hierarchy := model.NewHierarchy(categories)

			payees, err := store.GetAllPayees(ctx)
			if err != nil {
				return fmt.Errorf("failed to load payees: %w", err)
			}
			payeeNames := make(map[int64]string, len(payees))
			for i := range payees {
				payeeNames[payees[i].ID] = payees[i].Name
			}

			formatter, err := newFormatter()
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatTitle(current.Format("January 2006")))
			fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf("%d transactions", len(txns))))

			for _, section := range engine.Sections(txns, hierarchy) {
				header := fmt.Sprintf("%s  %s", relativeDay(section.Date), formatter.Signed(section.Total))
				fmt.Println()
				fmt.Println(cli.BoldStyle.Render(header))

				w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
				for i := range section.Transactions {
					txn := &section.Transactions[i]
					cat := hierarchy.ByID(txn.CategoryID)

					catName := "?"
					amountStr := formatter.Amount(txn.Amount)
					if cat != nil {
						catName = cat.Name
						if cat.Type == model.TypeExpense {
							amountStr = cli.ExpenseStyle.Render("-" + amountStr)
						} else {
							amountStr = cli.IncomeStyle.Render(amountStr)
						}
					}

					payeeName := ""
					if txn.PayeeID != nil {
						payeeName = payeeNames[*txn.PayeeID]
					}

					fmt.Fprintf(w, "  #%d\t%s\t%s\t%s\t%s\n",
						txn.ID, catName, payeeName, txn.Desc, amountStr)
				}
				_ = w.Flush()
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "month to list (YYYY-MM, default current)")
	cmd.Flags().IntVar(&offset, "offset", 0, "shift the month by this many calendar months (e.g. -1 for last month)")

	return cmd
}
