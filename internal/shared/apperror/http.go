package apperror

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// HTTPError is the translated form of a failure, ready for the response envelope.
type HTTPError struct {
	Status  int
	Code    string
	Message string
}

// statusByCode is the single dispatch table from failure kind to HTTP status.
// Codes missing from the table are treated as unexpected.
var statusByCode = map[string]int{
	CodeInvalidInput:         http.StatusBadRequest,
	CodeValidation:           http.StatusBadRequest,
	CodeConstraintViolation:  http.StatusBadRequest,
	CodeConflict:             http.StatusConflict,
	CodeUnsupportedMediaType: http.StatusUnsupportedMediaType,
	CodeTooManyRequests:      http.StatusTooManyRequests,
	CodeInternalError:        http.StatusInternalServerError,
}

// ToHTTP classifies err and returns the status and message the client sees.
// Internal details of unexpected failures never leave this function.
func ToHTTP(err error) HTTPError {
	appErr := classify(err)

	status, ok := statusByCode[appErr.Code]
	if !ok || status >= http.StatusInternalServerError {
		return HTTPError{
			Status:  http.StatusInternalServerError,
			Code:    CodeInternalError,
			Message: MessageUnexpected,
		}
	}

	return HTTPError{
		Status:  status,
		Code:    appErr.Code,
		Message: appErr.Message,
	}
}

func classify(err error) *AppError {
	if err == nil {
		return ErrInternal
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		var mapped *AppError
		errors.As(MapValidationError(validationErrs), &mapped)
		return mapped
	}

	if isMalformedBody(err) {
		return Validation("Malformed request body", err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && IsIntegrityViolation(pgErr.Code) {
		return ConstraintViolation(pgErr.Message, err)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, gorm.ErrForeignKeyViolated) {
		return ConstraintViolation(err.Error(), err)
	}

	return Wrap(err, CodeInternalError, MessageUnexpected)
}

// IsIntegrityViolation reports whether a SQLSTATE belongs to class 23
// (integrity constraint violation).
func IsIntegrityViolation(sqlState string) bool {
	return strings.HasPrefix(sqlState, "23")
}

func isMalformedBody(err error) bool {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	return errors.As(err, &syntaxErr) ||
		errors.As(err, &typeErr) ||
		errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrUnexpectedEOF)
}
