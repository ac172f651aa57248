package main

import (
	"fmt"

	"github.com/easeapp/ease/internal/cli"
	"github.com/easeapp/ease/internal/model"
	"github.com/easeapp/ease/internal/suggest"
	"github.com/spf13/cobra"
)

func suggestCmd() *cobra.Command {
	var txnType string

	cmd := &cobra.Command{
		Use:   "suggest <field> <text>",
		Short: "Autocomplete payee or description text",
		Long: `Match text against historical values: payee suggestions draw from all
known payees, description suggestions from past transactions of the given
type.`,
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"payee", "desc"},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			field, text := args[0], args[1]

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			var pool []string
			switch field {
			case "payee":
				payees, poolErr := store.GetAllPayees(ctx)
				if poolErr != nil {
					return poolErr
				}
				for i := range payees {
					pool = append(pool, payees[i].Name)
				}
			case "desc":
				t := model.TransactionType(txnType)
				if !t.Valid() {
					return fmt.Errorf("invalid type %q (want expense or income)", txnType)
				}
				descs, poolErr := store.GetDescriptionsByType(ctx, t)
				if poolErr != nil {
					return poolErr
				}
				pool = descs
			default:
				return fmt.Errorf("unknown field %q (want payee or desc)", field)
			}

			matches := suggest.New().Suggestions(text, pool)
			if len(matches) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No suggestions."))
				return nil
			}
			for _, m := range matches {
				fmt.Println(m)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&txnType, "type", string(model.TypeExpense), "transaction type for description pools")

	return cmd
}
