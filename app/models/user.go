package models

// User is a storefront customer account.
type User struct {
	ID       uint   `gorm:"primaryKey"                json:"id"`
	Name     string `gorm:"type:text"                 json:"name"`
	Email    string `gorm:"size:255;uniqueIndex"      json:"email"`
	Password string `gorm:"type:text"                 json:"-"` // bcrypt hash; legacy rows may hold plaintext
}

func (User) TableName() string { return "users" }
