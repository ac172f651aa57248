package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/easeapp/ease/internal/model"
)

type categorySeed struct {
	name      string
	iconName  string
	subs      []categorySeed
	catType   model.TransactionType
	isDefault bool
}

// defaultTaxonomy is the canonical first-run category set. Exactly one
// sub-category per transaction type is flagged default: "Food" for expenses
// and "Salary" for income.
var defaultTaxonomy = []categorySeed{
	{
		name: "Entertainment", iconName: "tv", catType: model.TypeExpense,
		subs: []categorySeed{
			{name: "Crafts", iconName: "pencil.and.scribble", catType: model.TypeExpense},
			{name: "Gaming", iconName: "formfitting.gamecontroller", catType: model.TypeExpense},
		},
	},
	{
		name: "Food", iconName: "fork.knife", catType: model.TypeExpense,
		subs: []categorySeed{
			{name: "Groceries", iconName: "carrot", catType: model.TypeExpense},
			{name: "Drinks", iconName: "cup.and.saucer", catType: model.TypeExpense},
			{name: "Food", iconName: "fork.knife", catType: model.TypeExpense, isDefault: true},
			{name: "Takeout", iconName: "takeoutbag.and.cup.and.straw", catType: model.TypeExpense},
			{name: "Snacks", iconName: "spoon.serving", catType: model.TypeExpense},
			{name: "Food Delivery", iconName: "motorcycle", catType: model.TypeExpense},
		},
	},
	{
		name: "Health and Fitness", iconName: "heart", catType: model.TypeExpense,
		subs: []categorySeed{
			{name: "Insurance", iconName: "dollarsign.circle", catType: model.TypeExpense},
			{name: "Medical Bills", iconName: "stethoscope", catType: model.TypeExpense},
			{name: "Medication", iconName: "pill", catType: model.TypeExpense},
			{name: "Wellness", iconName: "figure.run", catType: model.TypeExpense},
		},
	},
	{
		name: "Housing", iconName: "house", catType: model.TypeExpense,
		subs: []categorySeed{
			{name: "Rent", iconName: "dollarsign.square", catType: model.TypeExpense},
			{name: "Mortgage", iconName: "dollarsign.bank.building", catType: model.TypeExpense},
			{name: "Utilities", iconName: "bolt.house", catType: model.TypeExpense},
		},
	},
	{
		name: "Income", iconName: "dollarsign", catType: model.TypeIncome,
		subs: []categorySeed{
			{name: "Salary", iconName: "dollarsign.circle", catType: model.TypeIncome, isDefault: true},
			{name: "Freelance", iconName: "dollarsign.circle", catType: model.TypeIncome},
			{name: "Dividends", iconName: "dollarsign.circle", catType: model.TypeIncome},
		},
	},
	{
		name: "Personal Care", iconName: "person", catType: model.TypeExpense,
		subs: []categorySeed{
			{name: "Hair Care", iconName: "bubbles.and.sparkles", catType: model.TypeExpense},
			{name: "Body Care", iconName: "bubbles.and.sparkles", catType: model.TypeExpense},
			{name: "Skin Care", iconName: "bubbles.and.sparkles", catType: model.TypeExpense},
			{name: "Cosmetics", iconName: "paintbrush.pointed", catType: model.TypeExpense},
		},
	},
	{
		name: "Transport", iconName: "car", catType: model.TypeExpense,
		subs: []categorySeed{
			{name: "Public Transport", iconName: "bus", catType: model.TypeExpense},
			{name: "Private Hire", iconName: "car", catType: model.TypeExpense},
		},
	},
}

// SeedDefaultCategories inserts the default taxonomy on first run. It is a
// no-op when any category already exists, so user edits to the taxonomy are
// never overwritten.
func (s *SQLiteStorage) SeedDefaultCategories(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM categories`).Scan(&count); err != nil {
		return fmt.Errorf("failed to count categories: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO categories (name, icon_name, color_hex, type, is_default, parent_id, created_at)
		VALUES (?, ?, '', ?, ?, ?, CURRENT_TIMESTAMP)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare seed statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	seeded := 0
	for _, parent := range defaultTaxonomy {
		result, execErr := stmt.ExecContext(ctx, parent.name, parent.iconName, parent.catType, false, nil)
		if execErr != nil {
			return fmt.Errorf("failed to seed category %q: %w", parent.name, execErr)
		}
		parentID, idErr := result.LastInsertId()
		if idErr != nil {
			return fmt.Errorf("failed to get seed category ID: %w", idErr)
		}
		seeded++

		for _, sub := range parent.subs {
			if _, execErr := stmt.ExecContext(ctx, sub.name, sub.iconName, sub.catType, sub.isDefault, parentID); execErr != nil {
				return fmt.Errorf("failed to seed category %q: %w", sub.name, execErr)
			}
			seeded++
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed: %w", err)
	}

	slog.Info("seeded default categories", "count", seeded)
	return nil
}
