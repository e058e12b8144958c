package employee

import (
	"errors"
	"strings"

	employeeerrors "go-workforce/internal/employee/errors"
	"go-workforce/internal/shared/apperror"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && apperror.IsIntegrityViolation(pgErr.Code) {
		return apperror.ConstraintViolation(pgErr.Message, err)
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperror.ConstraintViolation("Employee with the same email already exists", err)
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") || strings.Contains(errMsg, "violates") {
		return apperror.ConstraintViolation(err.Error(), err)
	}

	return err
}
