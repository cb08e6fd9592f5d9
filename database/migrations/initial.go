package migrations

import (
	"time"

	"github.com/shashiranjanraj/storefront/pkg/migration"
	"gorm.io/gorm"
)

func init() {
	migration.Register("20240101000000_create_users_table", &CreateUsersTable{})
	migration.Register("20240101000001_create_orders_table", &CreateOrdersTable{})
	migration.Register("20240101000002_reconcile_orders_columns", &ReconcileOrdersColumns{})
}

// Table snapshots are frozen here so later model changes never rewrite
// history.

type usersV1 struct {
	ID       uint   `gorm:"primaryKey"`
	Name     string `gorm:"type:text"`
	Email    string `gorm:"size:255;uniqueIndex"`
	Password string `gorm:"type:text"`
}

func (usersV1) TableName() string { return "users" }

type ordersV1 struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"type:text;not null"`
	Phone     string    `gorm:"type:text;not null"`
	Items     string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (ordersV1) TableName() string { return "orders" }

// -------- 0001: users --------

type CreateUsersTable struct{}

func (m *CreateUsersTable) Up(db *gorm.DB) error {
	if db.Migrator().HasTable(&usersV1{}) {
		return nil
	}
	return db.Migrator().CreateTable(&usersV1{})
}

func (m *CreateUsersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("users")
}

// -------- 0002: orders --------

type CreateOrdersTable struct{}

func (m *CreateOrdersTable) Up(db *gorm.DB) error {
	if db.Migrator().HasTable(&ordersV1{}) {
		return nil
	}
	return db.Migrator().CreateTable(&ordersV1{})
}

func (m *CreateOrdersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("orders")
}

// -------- 0003: orders comment/address --------

// ReconcileOrdersColumns adds comment and drops the legacy address column.
type ReconcileOrdersColumns struct{}

func (m *ReconcileOrdersColumns) Up(db *gorm.DB) error {
	_, err := ReconcileOrders(db)
	return err
}

func (m *ReconcileOrdersColumns) Down(db *gorm.DB) error {
	if db.Migrator().HasColumn(&orderComment{}, "comment") {
		return dropColumn(db, "orders", "comment")
	}
	return nil
}
