package main

import (
	"fmt"

	"github.com/easeapp/ease/internal/cli"
	"github.com/easeapp/ease/internal/engine"
	"github.com/easeapp/ease/internal/model"
	"github.com/spf13/cobra"
)

func summaryCmd() *cobra.Command {
	var (
		month  string
		offset int
	)

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show the month's income, expense, and balance",
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

			categories, err := store.GetCategories(ctx)
			if err != nil {
				return fmt.Errorf("failed to load categories: %w", err)
			}
			hierarchy := model.NewHierarchy(categories)

			formatter, err := newFormatter()
			if err != nil {
				return err
			}

			summary := engine.Summarize(txns, hierarchy)
			figures := formatter.SummaryFigures(summary)

			// Wide figures get a narrower label column, the same
			// overflow-responsive policy the summary card applies.
			labelWidth := 10
			if engine.IsCompactSummary(figures[0], figures[1], figures[2]) {
				labelWidth = 8
			}

			content := fmt.Sprintf("%-*s %s\n%-*s %s\n%-*s %s",
				labelWidth, "Income", cli.IncomeStyle.Render(figures[0]),
				labelWidth, "Expense", cli.ExpenseStyle.Render(figures[1]),
				labelWidth, "Balance", cli.BoldStyle.Render(figures[2]),
			)

			fmt.Println(cli.RenderBox(current.Format("January 2006"), content))
			return nil
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "month to summarize (YYYY-MM, default current)")
	cmd.Flags().IntVar(&offset, "offset", 0, "shift the month by this many calendar months (e.g. -1 for last month)")

	return cmd
}
