package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"stratum/internal/core/apperror"
)

// PostgreSQL error codes this layer translates into business errors.
const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
	pgCheckViolation      = "23514"
)

// TranslateError maps storage-level constraint failures to AppError kinds.
//
// A foreign-key violation on delete means dependents still reference the row
// and becomes CANNOT_DELETE_OBJECT. A check violation (archive_points
// capacity among others) becomes CONSTRAINT_VIOLATION. Anything unrecognised
// passes through unchanged.
func TranslateError(err error, entity string, entityID any) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgForeignKeyViolation:
		return apperror.NewDeleteProtected(entity, entityID).WithCause(err)
	case pgCheckViolation:
		return apperror.NewConstraint("storage constraint violated: " + pgErr.ConstraintName).
			WithDetail("entity", entity).
			WithDetail("constraint", pgErr.ConstraintName).
			WithCause(err)
	case pgUniqueViolation:
		return apperror.NewConflict("duplicate value for " + pgErr.ConstraintName).
			WithDetail("entity", entity).
			WithCause(err)
	}

	return err
}
