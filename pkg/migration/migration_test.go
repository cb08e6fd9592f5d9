package migration_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/pkg/database/dbtest"
	"github.com/shashiranjanraj/storefront/pkg/logger"
	"github.com/shashiranjanraj/storefront/pkg/migration"
)

func init() { logger.Discard() }

type createTable struct {
	name  string
	ups   int
	downs int
	fail  error
}

func (m *createTable) Up(db *gorm.DB) error {
	m.ups++
	if m.fail != nil {
		return m.fail
	}
	return db.Exec("CREATE TABLE IF NOT EXISTS " + m.name + " (id INTEGER PRIMARY KEY)").Error
}

func (m *createTable) Down(db *gorm.DB) error {
	m.downs++
	return db.Migrator().DropTable(m.name)
}

func TestRunAppliesInNameOrderOnce(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()
	second := &createTable{name: "second"}
	first := &createTable{name: "first"}

	r := migration.NewWith(db,
		migration.Entry{Name: "20240101000001_second", Migration: second},
		migration.Entry{Name: "20240101000000_first", Migration: first},
	)

	applied, err := r.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"20240101000000_first", "20240101000001_second"}, applied)

	applied, err = r.Run(ctx)
	require.NoError(t, err)
	assert.Empty(t, applied)
	assert.Equal(t, 1, first.ups)
	assert.Equal(t, 1, second.ups)

	assert.True(t, db.Migrator().HasTable("first"))
	assert.True(t, db.Migrator().HasTable("schema_migrations"))
}

func TestStatusAndRollbackLastBatch(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()
	a := &createTable{name: "a"}
	b := &createTable{name: "b"}

	_, err := migration.NewWith(db, migration.Entry{Name: "1_a", Migration: a}).Run(ctx)
	require.NoError(t, err)

	r := migration.NewWith(db,
		migration.Entry{Name: "1_a", Migration: a},
		migration.Entry{Name: "2_b", Migration: b},
	)
	_, err = r.Run(ctx)
	require.NoError(t, err)

	status, err := r.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, []migration.Status{
		{Name: "1_a", Ran: true, Batch: 1},
		{Name: "2_b", Ran: true, Batch: 2},
	}, status)

	rolled, err := r.Rollback(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"2_b"}, rolled)
	assert.Equal(t, 0, a.downs)
	assert.False(t, db.Migrator().HasTable("b"))
	assert.True(t, db.Migrator().HasTable("a"))
}

func TestRollbackWithNothingRan(t *testing.T) {
	db := dbtest.Open(t)
	r := migration.NewWith(db, migration.Entry{Name: "1_a", Migration: &createTable{name: "a"}})

	rolled, err := r.Rollback(context.Background())
	require.NoError(t, err)
	assert.Empty(t, rolled)
}

func TestFailedMigrationIsNotRecorded(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()
	broken := &createTable{name: "broken", fail: errors.New("syntax error")}

	r := migration.NewWith(db, migration.Entry{Name: "1_broken", Migration: broken})
	_, err := r.Run(ctx)
	require.ErrorContains(t, err, "1_broken up")

	pending, err := r.Pending(ctx)
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}

type halfDone struct{}

func (halfDone) Up(db *gorm.DB) error {
	if err := db.Exec("CREATE TABLE partial (id INTEGER PRIMARY KEY)").Error; err != nil {
		return err
	}
	return errors.New("second statement failed")
}

func (halfDone) Down(db *gorm.DB) error { return nil }

func TestFailedMigrationLeavesNoPartialChanges(t *testing.T) {
	db := dbtest.Open(t)
	r := migration.NewWith(db, migration.Entry{Name: "1_partial", Migration: halfDone{}})

	_, err := r.Run(context.Background())
	require.ErrorContains(t, err, "1_partial up")

	assert.False(t, db.Migrator().HasTable("partial"))
	status, err := r.Status(context.Background())
	require.NoError(t, err)
	assert.False(t, status[0].Ran)
}

func TestRunWithoutMigrations(t *testing.T) {
	_, err := migration.NewWith(dbtest.Open(t)).Run(context.Background())
	assert.ErrorIs(t, err, migration.ErrNoMigrations)
}
