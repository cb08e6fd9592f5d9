package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/pkg/apperror"
	"github.com/shashiranjanraj/storefront/pkg/logger"
	"github.com/shashiranjanraj/storefront/pkg/metrics"
	"gorm.io/gorm"
)

const orderColumns = "id, name, phone, COALESCE(comment, '') AS comment, items, created_at"

// orderColumnsNoComment is used when the live table has lost its comment column.
const orderColumnsNoComment = "id, name, phone, '' AS comment, items, created_at"

// OrderRepository handles database operations for Order.
type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Insert stores order and fills in its ID and CreatedAt. When the orders
// table has no comment column the row is written once more without it and
// commentStored is false.
func (r *OrderRepository) Insert(ctx context.Context, order *models.Order) (commentStored bool, err error) {
	defer metrics.ObserveDBQuery("orders.insert", time.Now())

	db := r.db.WithContext(ctx)
	err = db.Create(order).Error
	if err == nil {
		return true, nil
	}
	if !apperror.IsMissingColumn(err, "comment") {
		return false, err
	}

	logger.WithCtx(ctx).Warn("orders.comment column missing, inserting without comment", "error", err)

	order.ID = 0
	if err := db.Omit("Comment").Create(order).Error; err != nil {
		return false, err
	}
	return false, nil
}

// ListRecent returns up to limit orders, newest id first. A NULL comment is
// read as "".
func (r *OrderRepository) ListRecent(ctx context.Context, limit int) ([]models.Order, error) {
	defer metrics.ObserveDBQuery("orders.list_recent", time.Now())

	orders, err := r.listRecent(ctx, orderColumns, limit)
	if err != nil && apperror.IsMissingColumn(err, "comment") {
		return r.listRecent(ctx, orderColumnsNoComment, limit)
	}
	return orders, err
}

func (r *OrderRepository) listRecent(ctx context.Context, columns string, limit int) ([]models.Order, error) {
	orders := make([]models.Order, 0, limit)
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Select(columns).
		Order("id DESC").
		Limit(limit).
		Find(&orders).Error
	return orders, err
}

// Count returns the number of rows in orders.
func (r *OrderRepository) Count(ctx context.Context) (int64, error) {
	defer metrics.ObserveDBQuery("orders.count", time.Now())

	var n int64
	err := r.db.WithContext(ctx).Model(&models.Order{}).Count(&n).Error
	return n, err
}

// Columns reads the live structure of orders from the store catalog, in
// table order.
func (r *OrderRepository) Columns(ctx context.Context) ([]models.Column, error) {
	defer metrics.ObserveDBQuery("orders.columns", time.Now())

	types, err := r.db.WithContext(ctx).Migrator().ColumnTypes(&models.Order{})
	if err != nil {
		return nil, fmt.Errorf("read orders columns: %w", err)
	}

	columns := make([]models.Column, 0, len(types))
	for _, ct := range types {
		nullable := "YES"
		if ok, known := ct.Nullable(); known && !ok {
			nullable = "NO"
		}
		columns = append(columns, models.Column{
			ColumnName: ct.Name(),
			DataType:   ct.DatabaseTypeName(),
			IsNullable: nullable,
		})
	}
	return columns, nil
}
