// Package store persists invoicing entities through gorm. Every mutation
// that touches more than one row runs inside a single transaction.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/diewo77/go-invoicing/internal/listing"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrNotFound is returned when a referenced row does not exist.
	ErrNotFound = errors.New("not_found")
	// ErrConflict is returned when a uniqueness constraint is violated.
	ErrConflict = errors.New("conflict")
)

// Store is the entity store. A Store obtained inside WithTx is bound to that
// transaction.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store { return &Store{db: db} }

// DB exposes the underlying handle for health checks.
func (s *Store) DB() *gorm.DB { return s.db }

// WithTx runs fn in a transaction. Any error rolls back every write made
// through the Store passed to fn.
func (s *Store) WithTx(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

// Ping checks the connection.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *Store) conn(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

func (s *Store) dialect() string {
	return s.db.Dialector.Name()
}

// translate maps driver errors onto the package sentinels.
func translate(err error, what string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolation(err) {
		return fmt.Errorf("%s: %w: %v", what, ErrConflict, err)
	}
	return fmt.Errorf("%s: %w", what, err)
}

func isUniqueViolation(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique constraint")
}

// applySearch narrows q by the query's search term on the resolved field.
func applySearch(q *gorm.DB, lq listing.Query, fields listing.Fields) *gorm.DB {
	f, arg, ok := lq.Filter(fields)
	if !ok {
		return q
	}
	if f.Numeric {
		return q.Where(f.Column+" = ?", arg)
	}
	return q.Where("LOWER("+f.Column+") LIKE ?", arg)
}

// page counts q then fetches one ordered page, running preload on the fetch
// only.
func page[T any](q *gorm.DB, lq listing.Query, order string, preload func(*gorm.DB) *gorm.DB) (listing.Page[T], error) {
	q = q.Session(&gorm.Session{})
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return listing.Page[T]{}, err
	}
	fetch := q.Order(order).Limit(lq.Limit()).Offset(lq.Offset())
	if preload != nil {
		fetch = preload(fetch)
	}
	var items []T
	if err := fetch.Find(&items).Error; err != nil {
		return listing.Page[T]{}, err
	}
	return listing.NewPage(items, total, lq), nil
}

// updateAll writes every column of model except the key and creation time.
func updateAll(db *gorm.DB, model any) (int64, error) {
	res := db.Model(model).Select("*").Omit("id", "created_at", clause.Associations).Updates(model)
	return res.RowsAffected, res.Error
}
