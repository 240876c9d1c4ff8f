// Package migration runs and tracks database migrations.
//
// Each migration file registers itself in an init():
//
//	func init() {
//	    migration.Register("20260101000000_create_users_table", &CreateUsersTable{})
//	}
//
// Run from the CLI:
//
//	bazaar migrate             // run all pending
//	bazaar migrate:rollback    // rollback the last batch
//	bazaar migrate:status      // show status
package migration

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/bazaar/pkg/logger"
)

// Migration is the interface every migration must implement.
type Migration interface {
	// Up applies the migration.
	Up(db *gorm.DB) error
	// Down reverses the migration.
	Down(db *gorm.DB) error
}

// migrationRecord tracks applied migrations.
type migrationRecord struct {
	ID    uint      `gorm:"primaryKey;autoIncrement"`
	Name  string    `gorm:"uniqueIndex;size:255;not null"`
	Batch int       `gorm:"not null"`
	RunAt time.Time `gorm:"autoCreateTime"`
}

func (migrationRecord) TableName() string { return "bazaar_migrations" }

type registeredMigration struct {
	name string
	m    Migration
}

var registry []registeredMigration

// Register adds a migration to the global registry. name should be a
// timestamp-prefixed string so registration order matches chronology.
func Register(name string, m Migration) {
	registry = append(registry, registeredMigration{name: name, m: m})
}

// Runner executes and tracks migrations.
type Runner struct {
	db *gorm.DB
}

// New creates a Runner backed by the provided gorm.DB.
func New(db *gorm.DB) *Runner {
	return &Runner{db: db}
}

// EnsureTable creates the tracking table if it does not exist.
func (r *Runner) EnsureTable() error {
	return r.db.AutoMigrate(&migrationRecord{})
}

func (r *Runner) applied() (map[string]migrationRecord, int, error) {
	var ran []migrationRecord
	if err := r.db.Find(&ran).Error; err != nil {
		return nil, 0, err
	}

	byName := make(map[string]migrationRecord, len(ran))
	lastBatch := 0
	for _, rec := range ran {
		byName[rec.Name] = rec
		if rec.Batch > lastBatch {
			lastBatch = rec.Batch
		}
	}
	return byName, lastBatch, nil
}

// Run applies every pending migration as one new batch.
func (r *Runner) Run() error {
	if err := r.EnsureTable(); err != nil {
		return err
	}

	ran, lastBatch, err := r.applied()
	if err != nil {
		return err
	}

	batch := lastBatch + 1
	applied := 0

	for _, reg := range registry {
		if _, ok := ran[reg.name]; ok {
			continue
		}

		if err := reg.m.Up(r.db); err != nil {
			return fmt.Errorf("migration %s: %w", reg.name, err)
		}

		rec := migrationRecord{Name: reg.name, Batch: batch}
		if err := r.db.Create(&rec).Error; err != nil {
			return fmt.Errorf("migration %s: record: %w", reg.name, err)
		}

		logger.Info("migrated", "name", reg.name, "batch", batch)
		applied++
	}

	if applied == 0 {
		logger.Info("nothing to migrate")
	}
	return nil
}

// Rollback reverses the most recent batch, newest first.
func (r *Runner) Rollback() error {
	if err := r.EnsureTable(); err != nil {
		return err
	}

	ran, lastBatch, err := r.applied()
	if err != nil {
		return err
	}
	if lastBatch == 0 {
		logger.Info("nothing to roll back")
		return nil
	}

	// Walk the registry backwards so Down() order mirrors Up() order.
	for i := len(registry) - 1; i >= 0; i-- {
		reg := registry[i]
		rec, ok := ran[reg.name]
		if !ok || rec.Batch != lastBatch {
			continue
		}

		if err := reg.m.Down(r.db); err != nil {
			return fmt.Errorf("rollback %s: %w", reg.name, err)
		}
		if err := r.db.Delete(&migrationRecord{}, "name = ?", reg.name).Error; err != nil {
			return fmt.Errorf("rollback %s: record: %w", reg.name, err)
		}

		logger.Info("rolled back", "name", reg.name)
	}

	return nil
}

// Status prints one line per registered migration.
func (r *Runner) Status() error {
	if err := r.EnsureTable(); err != nil {
		return err
	}

	ran, _, err := r.applied()
	if err != nil {
		return err
	}

	for _, reg := range registry {
		if rec, ok := ran[reg.name]; ok {
			fmt.Printf("  [x] %s (batch %d, %s)\n", reg.name, rec.Batch, rec.RunAt.Format(time.DateTime))
		} else {
			fmt.Printf("  [ ] %s\n", reg.name)
		}
	}
	return nil
}
