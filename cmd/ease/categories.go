package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/easeapp/ease/internal/cli"
	"github.com/easeapp/ease/internal/common"
	"github.com/easeapp/ease/internal/model"
	"github.com/spf13/cobra"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage the category taxonomy",
		Long:  `List, add, and delete categories, and choose the default sub-category per transaction type.`,
	}

	cmd.AddCommand(listCategoriesCmd())
	cmd.AddCommand(addCategoryCmd())
	cmd.AddCommand(defaultCategoryCmd())
	cmd.AddCommand(deleteCategoryCmd())
	cmd.AddCommand(topCategoriesCmd())

	return cmd
}

func listCategoriesCmd() *cobra.Command {
	var txnType string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all categories",
		Long:  `Display the taxonomy as parents with their sub-categories, marking defaults.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			categories, err := store.GetCategories(ctx)
			if err != nil {
				return fmt.Errorf("failed to get categories: %w", err)
			}
			hierarchy := model.NewHierarchy(categories)

			types := model.TransactionTypes
			if txnType != "" {
				t := model.TransactionType(txnType)
				if !t.Valid() {
					return fmt.Errorf("invalid type %q (want expense or income)", txnType)
				}
				types = []model.TransactionType{t}
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			for _, t := range types {
				for _, parent := range hierarchy.Parents(t) {
					fmt.Fprintf(w, "%s\t%s\t\n", cli.BoldStyle.Render(parent.Name), cli.SubtleStyle.Render(string(t)))
					for _, sub := range hierarchy.Children(parent.ID) {
						marker := ""
						if sub.IsDefault {
							marker = cli.SuccessStyle.Render("(default)")
						}
						fmt.Fprintf(w, "  %d %s\t%s\t\n", sub.ID, sub.Name, marker)
					}
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&txnType, "type", "", "filter by transaction type (expense, income)")

	return cmd
}

func addCategoryCmd() *cobra.Command {
	var (
		txnType   string
		parent    string
		iconName  string
		colorHex  string
		isDefault bool
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a category",
		Long: `Create a new category. With --parent the category is a sub-category of
that parent; without it, a new top-level parent. Marking a sub-category
--default clears the previous default for its type.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			name := args[0]

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			t := model.TransactionType(txnType)
			if !t.Valid() {
				return fmt.Errorf("invalid type %q (want expense or income)", txnType)
			}

			cat := &model.Category{
				Name:      name,
				IconName:  iconName,
				ColorHex:  colorHex,
				Type:      t,
				IsDefault: isDefault,
			}

			if parent != "" {
				p, parentErr := store.GetCategoryByName(ctx, parent)
				if parentErr != nil {
					return parentErr
				}
				if p == nil || !p.IsParent() {
					return fmt.Errorf("unknown parent category %q", parent)
				}
				cat.ParentID = &p.ID
			} else if isDefault {
				return fmt.Errorf("only sub-categories can be defaults; pass --parent")
			}

			created, err := store.CreateCategory(ctx, cat)
			if err != nil {
				return fmt.Errorf("failed to create category: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Created category %q (ID: %d)", created.Name, created.ID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&txnType, "type", string(model.TypeExpense), "transaction type (expense, income)")
	cmd.Flags().StringVar(&parent, "parent", "", "parent category name (omit to create a parent)")
	cmd.Flags().StringVar(&iconName, "icon", "", "icon token")
	cmd.Flags().StringVar(&colorHex, "color", "", "color hex")
	cmd.Flags().BoolVar(&isDefault, "default", false, "make this the default sub-category for its type")

	return cmd
}

func defaultCategoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "default <id>",
		Short: "Set the default sub-category for its type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid category id %q: %w", args[0], err)
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.SetDefaultCategory(ctx, id); err != nil {
				return fmt.Errorf("failed to set default category: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Category %d is now its type's default", id)))
			return nil
		},
	}
}

func deleteCategoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a category",
		Long:  `Delete a category. Deleting a parent removes its sub-categories; categories with transactions cannot be deleted.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid category id %q: %w", args[0], err)
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.DeleteCategory(ctx, id); err != nil {
				if errors.Is(err, common.ErrCategoryInUse) {
					return describeAndWrap(err)
				}
				return fmt.Errorf("failed to delete category: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deleted category %d", id)))
			return nil
		},
	}
}

func topCategoriesCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "top",
		Short: "Show the most used sub-categories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			categories, err := store.GetCategories(ctx)
			if err != nil {
				return fmt.Errorf("failed to get categories: %w", err)
			}
			usage, err := store.GetCategoryUsage(ctx)
			if err != nil {
				return fmt.Errorf("failed to get category usage: %w", err)
			}

			hierarchy := model.NewHierarchy(categories)
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			for _, cat := range hierarchy.MostFrequent(usage, limit) {
				fmt.Fprintf(w, "%s\t%d\n", cat.Name, usage[cat.ID])
			}

			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 8, "number of categories to show")

	return cmd
}
