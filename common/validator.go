package common

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateAndDecode decodes the request body into payload and runs the
// struct validation tags. Malformed JSON is a 400, a schema violation is
// a 422; both come back as an *AppError for the error middleware.
func ValidateAndDecode(r *http.Request, payload interface{}) *AppError {
	if err := json.NewDecoder(r.Body).Decode(payload); err != nil {
		return NewAppError(http.StatusBadRequest, CodeBadRequest, "Request body must be valid JSON", err)
	}

	if err := validate.Struct(payload); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		return NewAppError(http.StatusUnprocessableEntity, CodeValidationError, validationErrors.Error(), nil)
	}

	return nil
}
