package bind_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/storefront/config"
	"github.com/shashiranjanraj/storefront/pkg/apperror"
	"github.com/shashiranjanraj/storefront/pkg/bind"
)

type loginBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func bindBody(body string) (loginBody, error) {
	var dest loginBody
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body))
	err := bind.JSON(httptest.NewRecorder(), req, &dest)
	return dest, err
}

func TestDecodes(t *testing.T) {
	got, err := bindBody(`{"email":"ann@example.com","password":"pw"}`)
	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", got.Email)
}

func TestMalformedIsValidation(t *testing.T) {
	_, err := bindBody(`{"email":`)
	assert.Equal(t, apperror.Validation, apperror.KindOf(err))
	assert.Equal(t, "invalid JSON body", apperror.Message(err))
}

func TestEmptyBody(t *testing.T) {
	_, err := bindBody(``)
	assert.Equal(t, "request body is required", apperror.Message(err))
}

func TestTooLarge(t *testing.T) {
	config.Set("MAX_BODY_BYTES", "16")
	defer config.Set("MAX_BODY_BYTES", "")

	_, err := bindBody(`{"email":"` + strings.Repeat("a", 64) + `"}`)
	assert.Equal(t, apperror.Validation, apperror.KindOf(err))
	assert.Contains(t, apperror.Message(err), "too large")
}
