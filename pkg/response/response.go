package response

import (
	"encoding/json"
	"net/http"

	"github.com/shashiranjanraj/storefront/pkg/apperror"
)

// Failure is the body of every unsuccessful API response.
type Failure struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// JSON writes body with the given status.
func JSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body) //nolint:errcheck
}

// OK sends a 200 JSON response.
func OK(w http.ResponseWriter, body interface{}) {
	JSON(w, http.StatusOK, body)
}

// Error sends {success:false, message} with status.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, Failure{Success: false, Message: message})
}

// Fail maps err through the apperror taxonomy.
func Fail(w http.ResponseWriter, err error) {
	Error(w, apperror.Status(err), apperror.Message(err))
}

// NotFound sends a 404.
func NotFound(w http.ResponseWriter, _ *http.Request) {
	Error(w, http.StatusNotFound, "Not found")
}

// MethodNotAllowed sends a 405.
func MethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	Error(w, http.StatusMethodNotAllowed, "Method not allowed")
}
