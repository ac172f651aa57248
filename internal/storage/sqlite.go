package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/easeapp/ease/internal/model"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteStorage implements the service.Storage interface using SQLite.
type SQLiteStorage struct {
	cacheExpiry time.Time
	db          *sql.DB
	payeeCache  map[string]*model.Payee
	dbPath      string
	cacheMutex  sync.RWMutex
}

// NewSQLiteStorage creates a new SQLite storage instance. Foreign keys are
// enabled so the schema's referential actions (cascade sub-category delete,
// deny category delete with transactions, nullify payee references) apply.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	if err := validateString(dbPath, "dbPath"); err != nil {
		return nil, err
	}

	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteStorage{
		db:         db,
		dbPath:     dbPath,
		payeeCache: make(map[string]*model.Payee),
	}, nil
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// getCachedPayee retrieves a payee from the cache.
func (s *SQLiteStorage) getCachedPayee(name string) *model.Payee {
	s.cacheMutex.RLock()

	if time.Now().After(s.cacheExpiry) {
		// Cache expired, needs to be cleared
		s.cacheMutex.RUnlock()
		s.cacheMutex.Lock()
		defer s.cacheMutex.Unlock()

		// Double-check after acquiring write lock
		if time.Now().After(s.cacheExpiry) {
			s.payeeCache = make(map[string]*model.Payee)
		}
		return nil
	}

	payee := s.payeeCache[name]
	s.cacheMutex.RUnlock()
	return payee
}

// cachePayee adds a payee to the cache.
func (s *SQLiteStorage) cachePayee(payee *model.Payee) {
	s.cacheMutex.Lock()
	defer s.cacheMutex.Unlock()

	if len(s.payeeCache) == 0 {
		// Set cache expiry on first entry
		s.cacheExpiry = time.Now().Add(5 * time.Minute)
	}
	s.payeeCache[payee.Name] = payee
}

// evictCachedPayee removes a payee from the cache by id.
func (s *SQLiteStorage) evictCachedPayee(id int64) {
	s.cacheMutex.Lock()
	defer s.cacheMutex.Unlock()

	for name, p := range s.payeeCache {
		if p.ID == id {
			delete(s.payeeCache, name)
		}
	}
}
