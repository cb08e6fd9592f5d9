// Package migration runs versioned schema migrations and records each one in
// the schema_migrations table.
//
// Migrations register themselves from init():
//
//	func init() {
//	    migration.Register("20240101000000_create_users_table", &CreateUsersTable{})
//	}
//
// Runner.Run applies every pending migration as one batch; Rollback undoes
// the most recent batch.
package migration

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shashiranjanraj/storefront/pkg/logger"
	"gorm.io/gorm"
)

// Migration is the interface every migration must implement. Up and the
// tracking row it produces commit in one transaction, as do Down and the
// row's removal. Up must still be safe to run against a database that
// already has its changes: MySQL commits DDL implicitly.
type Migration interface {
	Up(db *gorm.DB) error
	Down(db *gorm.DB) error
}

// Record is a row of the tracking table.
type Record struct {
	ID    uint      `gorm:"primaryKey;autoIncrement"`
	Name  string    `gorm:"uniqueIndex;size:255;not null"`
	Batch int       `gorm:"not null"`
	RunAt time.Time `gorm:"autoCreateTime"`
}

func (Record) TableName() string { return "schema_migrations" }

// Entry pairs a migration with its version name.
type Entry struct {
	Name      string
	Migration Migration
}

// Status describes one registered migration.
type Status struct {
	Name  string
	Ran   bool
	Batch int
}

// ErrNoMigrations is returned when Run is called but no migrations are registered.
var ErrNoMigrations = errors.New("no migrations registered")

// ------------------- Registry -------------------

var (
	regMu    sync.Mutex
	registry []Entry
)

// Register adds a migration to the global registry. name should be a
// timestamp-prefixed string; pending migrations run in name order.
func Register(name string, m Migration) {
	regMu.Lock()
	defer regMu.Unlock()
	registry = append(registry, Entry{Name: name, Migration: m})
}

// Registered returns a copy of the global registry.
func Registered() []Entry {
	regMu.Lock()
	defer regMu.Unlock()
	return append([]Entry(nil), registry...)
}

// ------------------- Runner -------------------

// Runner executes and tracks migrations.
type Runner struct {
	db      *gorm.DB
	entries []Entry
	mu      sync.Mutex
}

// New creates a Runner over the global registry.
func New(db *gorm.DB) *Runner {
	return NewWith(db, Registered()...)
}

// NewWith creates a Runner over an explicit migration list.
func NewWith(db *gorm.DB, entries ...Entry) *Runner {
	sorted := append([]Entry(nil), entries...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })
	return &Runner{db: db, entries: sorted}
}

// EnsureTable creates the tracking table if it does not exist.
func (r *Runner) EnsureTable(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(&Record{})
}

// Pending returns the migrations that have not yet been recorded.
func (r *Runner) Pending(ctx context.Context) ([]Entry, error) {
	var ran []Record
	if err := r.db.WithContext(ctx).Find(&ran).Error; err != nil {
		return nil, err
	}

	ranSet := make(map[string]bool, len(ran))
	for _, rec := range ran {
		ranSet[rec.Name] = true
	}

	var pending []Entry
	for _, e := range r.entries {
		if !ranSet[e.Name] {
			pending = append(pending, e)
		}
	}
	return pending, nil
}

// Run applies all pending migrations in a single batch and returns the
// names it applied. Concurrent calls on one Runner are serialised.
func (r *Runner) Run(ctx context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.entries) == 0 {
		return nil, ErrNoMigrations
	}
	if err := r.EnsureTable(ctx); err != nil {
		return nil, fmt.Errorf("migration: ensure table: %w", err)
	}

	pending, err := r.Pending(ctx)
	if err != nil {
		return nil, fmt.Errorf("migration: fetch pending: %w", err)
	}
	if len(pending) == 0 {
		logger.Debug("migration: nothing to migrate")
		return nil, nil
	}

	batch, err := r.nextBatch(ctx)
	if err != nil {
		return nil, fmt.Errorf("migration: next batch: %w", err)
	}

	db := r.db.WithContext(ctx)
	var applied []string
	for _, e := range pending {
		logger.Info("migration: running", "name", e.Name, "batch", batch)

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := e.Migration.Up(tx); err != nil {
				return fmt.Errorf("migration: %s up: %w", e.Name, err)
			}
			if err := tx.Create(&Record{Name: e.Name, Batch: batch}).Error; err != nil {
				return fmt.Errorf("migration: record %s: %w", e.Name, err)
			}
			return nil
		})
		if err != nil {
			return applied, err
		}
		applied = append(applied, e.Name)
	}

	logger.Info("migration: done", "ran", len(applied), "batch", batch)
	return applied, nil
}

// Rollback reverses all migrations from the most recent batch and returns
// the names it rolled back.
func (r *Runner) Rollback(ctx context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.EnsureTable(ctx); err != nil {
		return nil, fmt.Errorf("migration: ensure table: %w", err)
	}

	last, err := r.nextBatch(ctx)
	if err != nil {
		return nil, err
	}
	last--
	if last == 0 {
		return nil, nil
	}

	db := r.db.WithContext(ctx)
	var records []Record
	if err := db.Where("batch = ?", last).Order("id desc").Find(&records).Error; err != nil {
		return nil, err
	}

	byName := make(map[string]Migration, len(r.entries))
	for _, e := range r.entries {
		byName[e.Name] = e.Migration
	}

	var rolled []string
	for _, rec := range records {
		m, ok := byName[rec.Name]
		if !ok {
			return rolled, fmt.Errorf("migration: cannot rollback %s: not registered", rec.Name)
		}

		logger.Info("migration: rolling back", "name", rec.Name)
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := m.Down(tx); err != nil {
				return fmt.Errorf("migration: %s down: %w", rec.Name, err)
			}
			return tx.Delete(&Record{}, rec.ID).Error
		})
		if err != nil {
			return rolled, err
		}
		rolled = append(rolled, rec.Name)
	}
	return rolled, nil
}

// Status reports every registered migration and whether it has run.
func (r *Runner) Status(ctx context.Context) ([]Status, error) {
	if err := r.EnsureTable(ctx); err != nil {
		return nil, err
	}

	var ran []Record
	if err := r.db.WithContext(ctx).Find(&ran).Error; err != nil {
		return nil, err
	}

	ranMap := make(map[string]Record, len(ran))
	for _, rec := range ran {
		ranMap[rec.Name] = rec
	}

	out := make([]Status, 0, len(r.entries))
	for _, e := range r.entries {
		rec, ok := ranMap[e.Name]
		out = append(out, Status{Name: e.Name, Ran: ok, Batch: rec.Batch})
	}
	return out, nil
}

func (r *Runner) nextBatch(ctx context.Context) (int, error) {
	var maxBatch struct{ Max int }
	err := r.db.WithContext(ctx).Model(&Record{}).Select("COALESCE(MAX(batch), 0) AS max").Scan(&maxBatch).Error
	return maxBatch.Max + 1, err
}
