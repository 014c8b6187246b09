package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/hackerpeanutjohn/RainDigest/internal/domain/entity"
)

const DefaultDBFile = "raindigest.sqlite3"

type record struct {
	BookmarkID   int64  `gorm:"primaryKey"`
	Status       string `gorm:"index:idx_status"`
	Attempts     int
	MaxAttempts  int
	ErrorMessage string
	UpdatedAt    time.Time
}

// Store keeps per-bookmark processing records in a local sqlite file so
// runs stay idempotent across restarts.
type Store struct {
	gdb *gorm.DB
	db  *sql.DB
}

func NewStore(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	gdb, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	db, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB from gorm: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := gdb.AutoMigrate(&record{}); err != nil {
		db.Close()
		return nil, fmt.Errorf("auto migrate: %w", err)
	}

	return &Store{gdb: gdb, db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) Find(ctx context.Context, bookmarkID int64) (*entity.ProcessingRecord, error) {
	var rec record
	err := s.gdb.WithContext(ctx).First(&rec, "bookmark_id = ?", bookmarkID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find record %d: %w", bookmarkID, err)
	}

	return &entity.ProcessingRecord{
		BookmarkID:   rec.BookmarkID,
		Status:       entity.RecordStatus(rec.Status),
		Attempts:     rec.Attempts,
		MaxAttempts:  rec.MaxAttempts,
		ErrorMessage: rec.ErrorMessage,
		UpdatedAt:    rec.UpdatedAt,
	}, nil
}

func (s *Store) Save(ctx context.Context, pr *entity.ProcessingRecord) error {
	rec := record{
		BookmarkID:   pr.BookmarkID,
		Status:       string(pr.Status),
		Attempts:     pr.Attempts,
		MaxAttempts:  pr.MaxAttempts,
		ErrorMessage: pr.ErrorMessage,
		UpdatedAt:    pr.UpdatedAt,
	}

	err := s.gdb.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "bookmark_id"}},
			UpdateAll: true,
		}).
		Create(&rec).Error
	if err != nil {
		return fmt.Errorf("save record %d: %w", pr.BookmarkID, err)
	}
	return nil
}
