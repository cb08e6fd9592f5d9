package repositories_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/repositories"
	"github.com/shashiranjanraj/storefront/database/migrations"
	"github.com/shashiranjanraj/storefront/pkg/apperror"
	"github.com/shashiranjanraj/storefront/pkg/database/dbtest"
)

func migrated(t *testing.T) *gorm.DB {
	t.Helper()
	db := dbtest.Open(t)
	require.NoError(t, migrations.EnsureSchema(context.Background(), db))
	return db
}

func TestUserCreateAndFind(t *testing.T) {
	repo := repositories.NewUserRepository(migrated(t))
	ctx := context.Background()

	u := models.User{Name: "Ann", Email: "ann@example.com", Password: "x"}
	require.NoError(t, repo.Create(ctx, &u))
	assert.NotZero(t, u.ID)

	found, err := repo.FindByEmail(ctx, "ann@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Ann", found.Name)

	_, err = repo.FindByEmail(ctx, "ANN@example.com")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestUserDuplicateEmailIsUniqueViolation(t *testing.T) {
	repo := repositories.NewUserRepository(migrated(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.User{Name: "A", Email: "a@x.io", Password: "1"}))
	err := repo.Create(ctx, &models.User{Name: "B", Email: "a@x.io", Password: "2"})

	require.Error(t, err)
	assert.True(t, apperror.IsUniqueViolation(err), err.Error())
}

func TestOrderInsertListCount(t *testing.T) {
	repo := repositories.NewOrderRepository(migrated(t))
	ctx := context.Background()

	for _, name := range []string{"first", "second", "third"} {
		o := models.Order{Name: name, Phone: "12345", Items: models.EmptyItems}
		stored, err := repo.Insert(ctx, &o)
		require.NoError(t, err)
		assert.True(t, stored)
		assert.NotZero(t, o.ID)
		assert.WithinDuration(t, time.Now(), o.CreatedAt, time.Minute)
	}

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)

	recent, err := repo.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "third", recent[0].Name)
	assert.Equal(t, "second", recent[1].Name)
}

func TestOrderListReadsNullCommentAsEmpty(t *testing.T) {
	db := migrated(t)
	dbtest.Exec(t, db, `INSERT INTO orders (name, phone, comment, items) VALUES ('Ann', '555-1234', NULL, '[]')`)

	recent, err := repositories.NewOrderRepository(db).ListRecent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "", recent[0].Comment)
}

func TestOrderInsertFallsBackWithoutCommentColumn(t *testing.T) {
	db := migrated(t)
	dbtest.Exec(t, db, `ALTER TABLE orders DROP COLUMN comment`)
	repo := repositories.NewOrderRepository(db)
	ctx := context.Background()

	o := models.Order{Name: "Ann", Phone: "555-1234", Comment: "ring twice", Items: "[]"}
	stored, err := repo.Insert(ctx, &o)
	require.NoError(t, err)
	assert.False(t, stored)
	assert.NotZero(t, o.ID)

	recent, err := repo.ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "", recent[0].Comment)
}

func TestOrderColumns(t *testing.T) {
	cols, err := repositories.NewOrderRepository(migrated(t)).Columns(context.Background())
	require.NoError(t, err)

	byName := make(map[string]models.Column, len(cols))
	for _, c := range cols {
		byName[c.ColumnName] = c
	}
	require.Contains(t, byName, "phone")
	assert.Equal(t, "NO", byName["phone"].IsNullable)
	assert.Equal(t, "YES", byName["comment"].IsNullable)
	assert.NotEmpty(t, byName["items"].DataType)
	assert.Equal(t, "id", cols[0].ColumnName)
}
