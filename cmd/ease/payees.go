package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/easeapp/ease/internal/cli"
	"github.com/easeapp/ease/internal/common"
	"github.com/spf13/cobra"
)

func payeesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "payees",
		Short: "Inspect known payees",
		Long:  `Payees are created automatically the first time a name is used on a transaction and removed when their last transaction goes away.`,
	}

	cmd.AddCommand(listPayeesCmd())
	cmd.AddCommand(deletePayeeCmd())

	return cmd
}

func listPayeesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all payees with their transaction counts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			payees, err := store.GetAllPayees(ctx)
			if err != nil {
				return fmt.Errorf("failed to get payees: %w", err)
			}

			if len(payees) == 0 {
				fmt.Println(cli.InfoStyle.Render("No payees yet."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			for i := range payees {
				count, countErr := store.CountTransactionsByPayee(ctx, payees[i].ID)
				if countErr != nil {
					return countErr
				}
				fmt.Fprintf(w, "%s\t%d\n", payees[i].Name, count)
			}

			return nil
		},
	}
}

func deletePayeeCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a payee if no transaction references it",
		Long: `Delete a payee. Without --force the payee must be unreferenced; with
--force it is removed anyway and its transactions keep no payee.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid payee id %q: %w", args[0], err)
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if force {
				if err := store.DeletePayee(ctx, id); err != nil {
					if errors.Is(err, common.ErrNotFound) {
						return fmt.Errorf("no payee with id %d", id)
					}
					return fmt.Errorf("failed to delete payee: %w", err)
				}
				fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deleted payee %d", id)))
				return nil
			}

			removed, err := store.DeletePayeeIfOrphaned(ctx, id)
			if err != nil {
				return fmt.Errorf("failed to delete payee: %w", err)
			}
			if !removed {
				count, countErr := store.CountTransactionsByPayee(ctx, id)
				if countErr != nil {
					return countErr
				}
				if count > 0 {
					return fmt.Errorf("payee %d still has %d transactions", id, count)
				}
				return fmt.Errorf("no payee with id %d", id)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deleted payee %d", id)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "delete even when transactions reference the payee")

	return cmd
}
