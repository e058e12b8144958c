package employeeerrors

import "go-workforce/internal/shared/apperror"

// Missing records are reported as caller errors (400), like every other
// identity problem of this API.
var (
	ErrEmployeeNotFound = apperror.BadRequest("Not Found")
	ErrEntityNotFound   = apperror.BadRequest("Entity not found")
	ErrIDNotAllowed     = apperror.BadRequest("A new employee cannot already have an ID")
	ErrInvalidID        = apperror.BadRequest("Invalid id")

	ErrInvalidStatusFilter = apperror.New(
		apperror.CodeValidation,
		"status must be true or false",
	)
	ErrUnsupportedPatchMediaType = apperror.New(
		apperror.CodeUnsupportedMediaType,
		"Content type must be application/json or application/merge-patch+json",
	)
)
