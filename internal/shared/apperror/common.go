package apperror

import "fmt"

var (
	ErrInternal = New(
		CodeInternalError,
		MessageUnexpected,
	)

	ErrInvalidInput = New(
		CodeInvalidInput,
		"The provided input is invalid",
	)

	ErrTooManyRequests = New(
		CodeTooManyRequests,
		"Too many requests",
	)
)

// BadRequest reports a caller-invalid request: identity errors and missing
// records share this kind and always surface as 400.
func BadRequest(message string) *AppError {
	return New(CodeInvalidInput, message)
}

func RequiredField(field string) *AppError {
	return New(CodeValidation, fmt.Sprintf("%s is required", field))
}

func InvalidField(field string) *AppError {
	return New(CodeValidation, fmt.Sprintf("%s is invalid", field))
}

func Validation(message string, err error) *AppError {
	if err == nil {
		return New(CodeValidation, message)
	}
	return Wrap(err, CodeValidation, message)
}

func ConstraintViolation(message string, err error) *AppError {
	return Wrap(err, CodeConstraintViolation, message)
}
