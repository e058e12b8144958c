package apperror

const (
	// Client errors (4xx)
	CodeInvalidInput         = "INVALID_INPUT"
	CodeValidation           = "VALIDATION_ERROR"
	CodeConstraintViolation  = "CONSTRAINT_VIOLATION"
	CodeConflict             = "CONFLICT"
	CodeUnsupportedMediaType = "UNSUPPORTED_MEDIA_TYPE"
	CodeTooManyRequests      = "TOO_MANY_REQUESTS"

	// Server errors (5xx)
	CodeInternalError = "INTERNAL_ERROR"
)

// MessageSuccess is the envelope message of every successful response.
const MessageSuccess = "SUCCESS"

// MessageUnexpected replaces the detail of any failure that is not mapped
// to a client error.
const MessageUnexpected = "Unexpected error"
