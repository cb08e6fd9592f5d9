package response_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/storefront/pkg/apperror"
	"github.com/shashiranjanraj/storefront/pkg/response"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) response.Failure {
	t.Helper()
	var body response.Failure
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestFailUsesTaxonomy(t *testing.T) {
	cases := []struct {
		err    error
		status int
		msg    string
	}{
		{apperror.NewValidation("phone is too short"), http.StatusBadRequest, "phone is too short"},
		{apperror.NewConflict("email already in use"), http.StatusBadRequest, "email already in use"},
		{apperror.NewAuth("invalid email or password"), http.StatusUnauthorized, "invalid email or password"},
		{errors.New("socket closed"), http.StatusInternalServerError, "socket closed"},
	}

	for _, tc := range cases {
		rec := httptest.NewRecorder()
		response.Fail(rec, tc.err)

		assert.Equal(t, tc.status, rec.Code)
		assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
		body := decode(t, rec)
		assert.False(t, body.Success)
		assert.Equal(t, tc.msg, body.Message)
	}
}

func TestNotFound(t *testing.T) {
	rec := httptest.NewRecorder()
	response.NotFound(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Not found", decode(t, rec).Message)
}
