package models

import "time"

// EmptyItems is stored when an order arrives without a cart snapshot.
const EmptyItems = "[]"

// Order is a checkout submission. Items is the client's cart serialised as
// JSON text; the server stores it verbatim and never parses it.
type Order struct {
	ID        uint      `gorm:"primaryKey"                       json:"id"`
	Name      string    `gorm:"type:text;not null"               json:"name"`
	Phone     string    `gorm:"type:text;not null"               json:"phone"`
	Comment   string    `gorm:"type:text;default:''"             json:"comment"`
	Items     string    `gorm:"type:text"                        json:"items"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Order) TableName() string { return "orders" }

// Column is one column of a live table, as reported by the store catalog.
type Column struct {
	ColumnName string `json:"column_name"`
	DataType   string `json:"data_type"`
	IsNullable string `json:"is_nullable"`
}
