// Package bind decodes HTTP request bodies into request models.
package bind

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/shashiranjanraj/storefront/config"
	"github.com/shashiranjanraj/storefront/pkg/apperror"
)

// JSON decodes r.Body into dest. The body is capped at MAX_BODY_BYTES.
// Every failure is an apperror Validation error, so controllers can hand it
// straight to response.Fail.
func JSON(w http.ResponseWriter, r *http.Request, dest interface{}) error {
	if r.Body == nil {
		return apperror.NewValidation("request body is required")
	}
	r.Body = http.MaxBytesReader(w, r.Body, config.MaxBodyBytes())

	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			return apperror.NewValidation(fmt.Sprintf("request body too large (max %d bytes)", maxErr.Limit))
		case errors.Is(err, io.EOF):
			return apperror.NewValidation("request body is required")
		default:
			return &apperror.Error{Kind: apperror.Validation, Message: "invalid JSON body", Err: err}
		}
	}
	return nil
}
