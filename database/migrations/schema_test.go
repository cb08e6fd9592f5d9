package migrations_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/database/migrations"
	"github.com/shashiranjanraj/storefront/pkg/database/dbtest"
	"github.com/shashiranjanraj/storefront/pkg/migration"
)

func columnNames(t *testing.T, db *gorm.DB, table string) []string {
	t.Helper()
	types, err := db.Migrator().ColumnTypes(table)
	require.NoError(t, err)

	names := make([]string, 0, len(types))
	for _, ct := range types {
		names = append(names, ct.Name())
	}
	return names
}

func TestEnsureSchemaFreshDatabase(t *testing.T) {
	db := dbtest.Open(t)

	require.NoError(t, migrations.EnsureSchema(context.Background(), db))

	assert.True(t, db.Migrator().HasTable("users"))
	assert.True(t, db.Migrator().HasTable("orders"))
	assert.ElementsMatch(t,
		[]string{"id", "name", "phone", "items", "created_at", "comment"},
		columnNames(t, db, "orders"))
	assert.ElementsMatch(t,
		[]string{"id", "name", "email", "password"},
		columnNames(t, db, "users"))

	statuses, err := migration.New(db).Status(context.Background())
	require.NoError(t, err)
	for _, s := range statuses {
		assert.True(t, s.Ran, s.Name)
		assert.Equal(t, 1, s.Batch, s.Name)
	}
}

func TestEnsureSchemaIsIdempotent(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()

	require.NoError(t, migrations.EnsureSchema(ctx, db))
	before := columnNames(t, db, "orders")

	require.NoError(t, migrations.EnsureSchema(ctx, db))
	assert.Equal(t, before, columnNames(t, db, "orders"))

	var recorded int64
	require.NoError(t, db.Model(&migration.Record{}).Count(&recorded).Error)
	assert.EqualValues(t, len(migration.Registered()), recorded)
}

func TestEnsureSchemaRepairsLegacyOrdersTable(t *testing.T) {
	db := dbtest.Open(t)
	dbtest.Exec(t, db,
		`CREATE TABLE orders (id INTEGER PRIMARY KEY AUTOINCREMENT, name TEXT, phone TEXT, address TEXT, items TEXT)`,
		`INSERT INTO orders (name, phone, address, items) VALUES ('Ann', '555-1234', 'Main st', '[]')`,
	)

	require.NoError(t, migrations.EnsureSchema(context.Background(), db))

	cols := columnNames(t, db, "orders")
	assert.Contains(t, cols, "comment")
	assert.Contains(t, cols, "created_at")
	assert.NotContains(t, cols, "address")

	var name string
	require.NoError(t, db.Raw(`SELECT name FROM orders WHERE id = 1`).Scan(&name).Error)
	assert.Equal(t, "Ann", name, "existing rows survive the repair")

	var unstamped int64
	require.NoError(t, db.Raw(`SELECT COUNT(*) FROM orders WHERE created_at IS NULL`).Scan(&unstamped).Error)
	assert.Zero(t, unstamped)
}

func TestReconcileOrdersAddsCreatedAtAndDropsAddress(t *testing.T) {
	db := dbtest.Open(t)
	dbtest.Exec(t, db,
		`CREATE TABLE orders (id INTEGER PRIMARY KEY AUTOINCREMENT, name TEXT, phone TEXT, address TEXT,comment TEXT, items TEXT)`,
	)

	repair, err := migrations.ReconcileOrders(db)
	require.NoError(t, err)
	assert.Equal(t, migrations.Repair{AddedCreatedAt: true, DroppedAddress: true}, repair)
	assert.ElementsMatch(t,
		[]string{"id", "name", "phone", "comment", "items", "created_at"},
		columnNames(t, db, "orders"))

	repair, err = migrations.ReconcileOrders(db)
	require.NoError(t, err)
	assert.Equal(t, migrations.Repair{}, repair)
}

func TestEnsureSchemaConcurrentCalls(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()

	errs := make([]error, 4)
	var wg sync.WaitGroup
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = migrations.EnsureSchema(ctx, db)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
	var recorded int64
	require.NoError(t, db.Model(&migration.Record{}).Count(&recorded).Error)
	assert.EqualValues(t, len(migration.Registered()), recorded)
}

func TestEnsureSchemaRepairsDriftAfterMigrationsRan(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()

	require.NoError(t, migrations.EnsureSchema(ctx, db))
	dbtest.Exec(t, db, `ALTER TABLE orders DROP COLUMN comment`)
	require.NotContains(t, columnNames(t, db, "orders"), "comment")

	require.NoError(t, migrations.EnsureSchema(ctx, db))
	assert.Contains(t, columnNames(t, db, "orders"), "comment")
}

func TestReconcileOrdersWithoutTable(t *testing.T) {
	db := dbtest.Open(t)

	repair, err := migrations.ReconcileOrders(db)
	require.NoError(t, err)
	assert.Equal(t, migrations.Repair{}, repair)
}

func TestRollbackRemovesOrdersAndUsers(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()
	require.NoError(t, migrations.EnsureSchema(ctx, db))

	rolled, err := migration.New(db).Rollback(ctx)
	require.NoError(t, err)
	assert.Len(t, rolled, len(migration.Registered()))
	assert.False(t, db.Migrator().HasTable("orders"))
	assert.False(t, db.Migrator().HasTable("users"))
}
