package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stratum/internal/core/apperror"
	"stratum/internal/core/id"
)

func pgError(code, constraint string) error {
	return &pgconn.PgError{Code: code, ConstraintName: constraint}
}

func TestTranslateError_Nil(t *testing.T) {
	assert.NoError(t, TranslateError(nil, "company", id.New()))
}

func TestTranslateError_ForeignKeyBecomesDeleteProtected(t *testing.T) {
	err := TranslateError(pgError("23503", "transactions_account_id_fkey"), "account", id.New())

	require.Error(t, err)
	assert.True(t, apperror.HasCode(err, apperror.CodeDeleteProtected))
}

func TestTranslateError_CheckBecomesConstraintViolation(t *testing.T) {
	err := TranslateError(pgError("23514", "accounts_archive_points_capacity"), "account", id.New())

	require.Error(t, err)
	assert.True(t, apperror.HasCode(err, apperror.CodeConstraint))

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, "accounts_archive_points_capacity", appErr.Details["constraint"])
}

func TestTranslateError_UniqueBecomesConflict(t *testing.T) {
	err := TranslateError(pgError("23505", "companies_code_key"), "company", id.New())

	require.Error(t, err)
	assert.True(t, apperror.HasCode(err, apperror.CodeConflict))
}

func TestTranslateError_WrappedPgError(t *testing.T) {
	wrapped := fmt.Errorf("exec failed: %w", pgError("23503", "fk"))
	err := TranslateError(wrapped, "company", id.New())

	assert.True(t, apperror.HasCode(err, apperror.CodeDeleteProtected))
}

func TestTranslateError_PassesThroughUnknown(t *testing.T) {
	plain := errors.New("connection reset")
	assert.Equal(t, plain, TranslateError(plain, "company", id.New()))
}
