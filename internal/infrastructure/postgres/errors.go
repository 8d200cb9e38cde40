package postgres

import (
	"errors"

	"github.com/lib/pq"

	"pftracker/internal/shared/apperror"
)

// SQLSTATE codes for the constraints the schema declares.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
)

func pqCode(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

// constraintError maps a constraint violation to a tagged error. onUnique and
// onForeignKey override the generic conflict for callers that know which
// constraint can fire. Other errors come back unchanged.
func constraintError(err error, onUnique, onForeignKey error) error {
	switch pqCode(err) {
	case codeUniqueViolation:
		if onUnique != nil {
			return onUnique
		}
		return apperror.Wrap(apperror.KindConflict, "resource already exists", err)
	case codeForeignKeyViolation:
		if onForeignKey != nil {
			return onForeignKey
		}
		return apperror.Wrap(apperror.KindConflict, "resource is still referenced", err)
	case codeCheckViolation:
		return apperror.Wrap(apperror.KindValidation, "value violates a check constraint", err)
	}
	return err
}
