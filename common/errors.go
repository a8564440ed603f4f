package common

import (
	"encoding/json"
	"go-furniture-api/logger"
	"net/http"

	"github.com/sirupsen/logrus"
)

// Machine-readable error codes returned in the "error_code" field.
// Clients branch on these, never on the human-readable message.
const (
	CodeAuthorizationMissing = "AUTHORIZATION_MISSING"
	CodeInvalidToken         = "INVALID_TOKEN"
	CodeTokenExpired         = "TOKEN_EXPIRED"
	CodeTokenRevoked         = "TOKEN_REVOKED"
	CodeUserNotFound         = "USER_NOT_FOUND"
	CodeUnauthorized         = "UNAUTHORIZED"
	CodeForbidden            = "FORBIDDEN"
	CodeNotFound             = "NOT_FOUND"
	CodeConflict             = "CONFLICT"
	CodeValidationError      = "VALIDATION_ERROR"
	CodeBadRequest           = "BAD_REQUEST"
	CodeInternalError        = "INTERNAL_ERROR"
)

type AppError struct {
	Code      int    `json:"code"`
	ErrorCode string `json:"error_code"`
	Message   string `json:"message"`
	Err       error  `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func NewAppError(code int, errorCode, message string, err error) *AppError {
	return &AppError{
		Code:      code,
		ErrorCode: errorCode,
		Message:   message,
		Err:       err,
	}
}

// NewAuthError builds a 401 response carrying one of the authentication
// sub-codes. Every authentication failure goes through here so it always
// leaves the system as structured JSON.
func NewAuthError(errorCode, message string) *AppError {
	return NewAppError(http.StatusUnauthorized, errorCode, message, nil)
}

func (e *AppError) Send(w http.ResponseWriter) {
	if e.Err != nil {
		logger.Log.WithFields(logrus.Fields{
			"status_code":    e.Code,
			"error_code":     e.ErrorCode,
			"internal_error": e.Err.Error(),
		}).Error(e.Message)
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(e.Code)
	json.NewEncoder(w).Encode(e)
}
