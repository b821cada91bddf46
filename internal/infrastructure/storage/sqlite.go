package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite" // pure-Go driver registered as "sqlite"

	"github.com/productadvisor/backend/internal/domain"
)

// kvEntry is one row of the key-value table
type kvEntry struct {
	Key       string `gorm:"primaryKey;type:text"`
	Value     []byte `gorm:"type:blob;not null"`
	UpdatedAt int64  `gorm:"not null"`
}

func (kvEntry) TableName() string { return "kv_entries" }

// SQLiteConfig holds sqlite store configuration
type SQLiteConfig struct {
	Path     string
	LogLevel logger.LogLevel
}

// SQLiteStore is a KeyValueStore on a single sqlite table
type SQLiteStore struct {
	db    *gorm.DB
	sqlDB *sql.DB
}

// NewSQLiteStore opens (or creates) the database, migrates the schema and enables WAL
func NewSQLiteStore(cfg SQLiteConfig) (*SQLiteStore, error) {
	if cfg.Path == "" {
		return nil, errors.New("sqlite store path is required")
	}
	if cfg.LogLevel == 0 {
		cfg.LogLevel = logger.Silent
	}

	sqlDB, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db, err := gorm.Open(sqlite.Dialector{
		DriverName: "sqlite",
		Conn:       sqlDB,
	}, &gorm.Config{
		Logger: logger.Default.LogMode(cfg.LogLevel),
	})
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("open gorm: %w", err)
	}

	// sqlite allows one writer; a single connection avoids SQLITE_BUSY between our own goroutines
	sqlDB.SetMaxOpenConns(1)

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := db.AutoMigrate(&kvEntry{}); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("migrate kv_entries: %w", err)
	}

	for _, pragma := range []string{"PRAGMA journal_mode=WAL", "PRAGMA synchronous=NORMAL", "PRAGMA busy_timeout=5000"} {
		if _, err := sqlDB.Exec(pragma); err != nil {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("%s: %w", pragma, err)
		}
	}

	return &SQLiteStore{db: db, sqlDB: sqlDB}, nil
}

// Get returns the value for key, or domain.ErrKeyNotFound
func (s *SQLiteStore) Get(ctx context.Context, key string) ([]byte, error) {
	var entry kvEntry
	err := s.db.WithContext(ctx).Where(&kvEntry{Key: key}).Take(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite store: get %q: %w", key, err)
	}
	return entry.Value, nil
}

// Set upserts the value for key in a single statement
func (s *SQLiteStore) Set(ctx context.Context, key string, value []byte) error {
	entry := kvEntry{Key: key, Value: value, UpdatedAt: time.Now().UnixMilli()}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("sqlite store: set %q: %w", key, err)
	}
	return nil
}

// Delete removes key
func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	if err := s.db.WithContext(ctx).Where(&kvEntry{Key: key}).Delete(&kvEntry{}).Error; err != nil {
		return fmt.Errorf("sqlite store: delete %q: %w", key, err)
	}
	return nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.sqlDB.Close()
}
