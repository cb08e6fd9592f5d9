package apperror_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/pkg/apperror"
)

func TestStatusMapping(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, apperror.Status(apperror.NewValidation("name is required")))
	assert.Equal(t, http.StatusBadRequest, apperror.Status(apperror.NewConflict("email already in use")))
	assert.Equal(t, http.StatusUnauthorized, apperror.Status(apperror.NewAuth("invalid email or password")))
	assert.Equal(t, http.StatusInternalServerError, apperror.Status(apperror.NewInternal("boom", nil)))
	assert.Equal(t, http.StatusInternalServerError, apperror.Status(errors.New("plain")))
}

func TestKindSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("register: %w", apperror.NewConflict("email already in use"))
	assert.Equal(t, apperror.Conflict, apperror.KindOf(err))
	assert.Equal(t, "email already in use", apperror.Message(err))
}

func TestInternalCarriesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := apperror.NewInternal("could not save order", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "could not save order: connection refused", apperror.Message(err))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, apperror.IsUniqueViolation(gorm.ErrDuplicatedKey))
	assert.True(t, apperror.IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.True(t, apperror.IsUniqueViolation(&mysqldriver.MySQLError{Number: 1062}))
	assert.True(t, apperror.IsUniqueViolation(errors.New("UNIQUE constraint failed: users.email")))

	assert.False(t, apperror.IsUniqueViolation(nil))
	assert.False(t, apperror.IsUniqueViolation(&pgconn.PgError{Code: "23502"}))
	assert.False(t, apperror.IsUniqueViolation(errors.New("disk full")))
}

func TestIsMissingColumn(t *testing.T) {
	assert.True(t, apperror.IsMissingColumn(&pgconn.PgError{Code: "42703", Message: `column "comment" of relation "orders" does not exist`}, "comment"))
	assert.True(t, apperror.IsMissingColumn(&mysqldriver.MySQLError{Number: 1054, Message: "Unknown column 'comment' in 'field list'"}, "comment"))
	assert.True(t, apperror.IsMissingColumn(errors.New("table orders has no column named comment"), "comment"))

	assert.False(t, apperror.IsMissingColumn(&pgconn.PgError{Code: "42703", Message: `column "phone" does not exist`}, "comment"))
	assert.False(t, apperror.IsMissingColumn(errors.New("table orders has no column named phone"), "comment"))
	assert.False(t, apperror.IsMissingColumn(nil, "comment"))
}
