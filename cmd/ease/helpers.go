package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/easeapp/ease/internal/engine"
	"github.com/easeapp/ease/internal/storage"
	"github.com/spf13/viper"
)

// initStorage opens the database, applies pending migrations, and seeds the
// default category taxonomy on first run.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".local", "share", "ease", "ease.db")
	}

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	if err := store.SeedDefaultCategories(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to seed categories: %w", err)
	}

	return store, nil
}

// newFormatter builds the currency formatter from config.
func newFormatter() (*engine.Formatter, error) {
	return engine.NewFormatter(
		viper.GetString("currency.code"),
		viper.GetString("currency.locale"),
	)
}

// parseMonth interprets a --month flag value (YYYY-MM) in local time,
// defaulting to the current month when empty.
func parseMonth(value string) (time.Time, error) {
	if value == "" {
		return time.Now(), nil
	}
	t, err := time.ParseInLocation("2006-01", value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q (want YYYY-MM): %w", value, err)
	}
	return t, nil
}

// shiftMonths moves a date by whole calendar months, clamping the day to the
// target month's length.
func shiftMonths(t time.Time, offset int) time.Time {
	for ; offset > 0; offset-- {
		t = engine.NextMonth(t)
	}
	for ; offset < 0; offset++ {
		t = engine.PrevMonth(t)
	}
	return t
}

// relativeDay formats a section date the way the transaction list shows it.
func relativeDay(d time.Time) string {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch {
	case d.Equal(today):
		return "Today"
	case d.Equal(today.AddDate(0, 0, -1)):
		return "Yesterday"
	case d.Equal(today.AddDate(0, 0, 1)):
		return "Tomorrow"
	default:
		return d.Format("Monday, 2 January")
	}
}
