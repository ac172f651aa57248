// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/easeapp/ease/internal/model"
)

// Storage defines the contract for our persistence layer.
type Storage interface {
	// Category operations
	GetCategories(ctx context.Context) ([]model.Category, error)
	GetCategoryByID(ctx context.Context, id int64) (*model.Category, error)
	GetCategoryByName(ctx context.Context, name string) (*model.Category, error)
	CreateCategory(ctx context.Context, cat *model.Category) (*model.Category, error)
	DeleteCategory(ctx context.Context, id int64) error
	GetDefaultCategory(ctx context.Context, t model.TransactionType) (*model.Category, error)
	SetDefaultCategory(ctx context.Context, id int64) error
	GetCategoryUsage(ctx context.Context) (map[int64]int, error)
	SeedDefaultCategories(ctx context.Context) error

	// Payee operations
	GetPayee(ctx context.Context, name string) (*model.Payee, error)
	GetOrCreatePayee(ctx context.Context, name string) (*model.Payee, error)
	GetAllPayees(ctx context.Context) ([]model.Payee, error)
	DeletePayee(ctx context.Context, id int64) error
	DeletePayeeIfOrphaned(ctx context.Context, id int64) (bool, error)
	CountTransactionsByPayee(ctx context.Context, id int64) (int, error)

	// Transaction operations
	CreateTransaction(ctx context.Context, txn *model.Transaction) (*model.Transaction, error)
	UpdateTransaction(ctx context.Context, txn *model.Transaction) error
	DeleteTransaction(ctx context.Context, id int64) error
	GetTransactionByID(ctx context.Context, id int64) (*model.Transaction, error)
	GetAllTransactions(ctx context.Context) ([]model.Transaction, error)
	GetTransactionsByMonth(ctx context.Context, month time.Time) ([]model.Transaction, error)
	GetDescriptionsByType(ctx context.Context, t model.TransactionType) ([]string, error)
	GetTransactionCount(ctx context.Context) (int, error)

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}
