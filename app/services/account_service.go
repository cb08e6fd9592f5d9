package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/repositories"
	"github.com/shashiranjanraj/storefront/pkg/apperror"
	"github.com/shashiranjanraj/storefront/pkg/logger"
	"github.com/shashiranjanraj/storefront/pkg/metrics"
	"github.com/shashiranjanraj/storefront/pkg/validate"
	"golang.org/x/crypto/bcrypt"
)

const (
	MsgRegistered       = "Registration successful."
	MsgLoggedIn         = "Login successful."
	MsgEmailTaken       = "email already in use"
	MsgInvalidLogin     = "invalid email or password"
	msgRegisterFailed   = "could not register user"
	msgLoginFailed      = "could not verify credentials"
	msgPasswordHashFail = "could not hash password"
)

// RegisterInput is the body of POST /register.
type RegisterInput struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginInput is the body of POST /login.
type LoginInput struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AccountService registers users and checks their credentials. It keeps no
// session state.
type AccountService struct {
	users *repositories.UserRepository
	cost  int
}

func NewAccountService(users *repositories.UserRepository) *AccountService {
	return &AccountService{users: users, cost: bcrypt.DefaultCost}
}

// WithHashCost sets the bcrypt cost used for new passwords.
func (s *AccountService) WithHashCost(cost int) *AccountService {
	s.cost = cost
	return s
}

// Register creates a user. Name, email and password are stored as given
// apart from the password, which is hashed.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (string, error) {
	if msg := validate.First(in); msg != "" {
		metrics.AccountEvents.WithLabelValues("register", "invalid").Inc()
		return "", apperror.NewValidation(msg)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		metrics.AccountEvents.WithLabelValues("register", "error").Inc()
		return "", apperror.NewInternal(msgPasswordHashFail, err)
	}

	user := models.User{Name: in.Name, Email: in.Email, Password: string(hash)}
	if err := s.users.Create(ctx, &user); err != nil {
		if apperror.IsUniqueViolation(err) {
			metrics.AccountEvents.WithLabelValues("register", "conflict").Inc()
			return "", apperror.NewConflict(MsgEmailTaken)
		}
		metrics.AccountEvents.WithLabelValues("register", "error").Inc()
		logger.WithCtx(ctx).Error("register failed", "error", err)
		return "", apperror.NewInternal(msgRegisterFailed, err)
	}

	metrics.AccountEvents.WithLabelValues("register", "ok").Inc()
	logger.WithCtx(ctx).Info("user registered", "user_id", user.ID)
	return MsgRegistered, nil
}

// Login returns the display name of the user matching email and password.
func (s *AccountService) Login(ctx context.Context, in LoginInput) (string, error) {
	if msg := validate.First(in); msg != "" {
		metrics.AccountEvents.WithLabelValues("login", "invalid").Inc()
		return "", apperror.NewValidation(msg)
	}

	user, err := s.users.FindByEmail(ctx, in.Email)
	if errors.Is(err, repositories.ErrNotFound) {
		metrics.AccountEvents.WithLabelValues("login", "denied").Inc()
		return "", apperror.NewAuth(MsgInvalidLogin)
	}
	if err != nil {
		metrics.AccountEvents.WithLabelValues("login", "error").Inc()
		logger.WithCtx(ctx).Error("login lookup failed", "error", err)
		return "", apperror.NewInternal(msgLoginFailed, err)
	}

	if !passwordMatches(user.Password, in.Password) {
		metrics.AccountEvents.WithLabelValues("login", "denied").Inc()
		return "", apperror.NewAuth(MsgInvalidLogin)
	}

	metrics.AccountEvents.WithLabelValues("login", "ok").Inc()
	return user.Name, nil
}

// passwordMatches checks a bcrypt hash, or compares in constant time when
// the stored value predates hashing.
func passwordMatches(stored, given string) bool {
	if isBcryptHash(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(given)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(given)) == 1
}

func isBcryptHash(s string) bool {
	if len(s) != 60 || !strings.HasPrefix(s, "$2") {
		return false
	}
	_, err := bcrypt.Cost([]byte(s))
	return err == nil
}
