package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/pkg/metrics"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("record not found")

// UserRepository handles database operations for User.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create persists a new user record. A duplicate email comes back as the
// driver's unique-violation error; see apperror.IsUniqueViolation.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	defer metrics.ObserveDBQuery("users.insert", time.Now())
	return r.db.WithContext(ctx).Create(user).Error
}

// FindByEmail looks up a user by their exact email address.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	defer metrics.ObserveDBQuery("users.find_by_email", time.Now())

	var user models.User
	err := r.db.WithContext(ctx).Where("email = ?", email).Limit(1).Find(&user).Error
	if err != nil {
		return user, err
	}
	if user.ID == 0 {
		return user, ErrNotFound
	}
	return user, nil
}
