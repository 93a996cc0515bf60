package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_ErrorString(t *testing.T) {
	err := NewValidation("name is required")
	assert.Equal(t, "VALIDATION_ERROR: name is required", err.Error())

	withCause := NewInternal(errors.New("boom"))
	assert.Contains(t, withCause.Error(), "caused by: boom")
}

func TestAppError_WithDetail(t *testing.T) {
	err := NewValidation("bad input").
		WithDetail("field", "email").
		WithDetail("entity", "user")

	assert.Equal(t, "email", err.Details["field"])
	assert.Equal(t, "user", err.Details["entity"])
}

func TestAppError_UnwrapSupportsErrorsIs(t *testing.T) {
	cause := errors.New("root cause")
	err := NewValidation("wrapper").WithCause(cause)

	assert.True(t, errors.Is(err, cause))
}

func TestLifecycleFactories(t *testing.T) {
	cases := []struct {
		err      *AppError
		wantCode string
		wantHTTP int
	}{
		{NewArchivedParent("user"), CodeArchivedParent, http.StatusBadRequest},
		{NewModifyArchived("user"), CodeModifyArchived, http.StatusBadRequest},
		{NewDeleteUnarchived("user"), CodeDeleteUnarchived, http.StatusBadRequest},
		{NewDeleteProtected("user", "x"), CodeDeleteProtected, http.StatusBadRequest},
		{NewCannotArchive("user"), CodeCannotArchive, http.StatusBadRequest},
		{NewConstraint("capacity"), CodeConstraint, http.StatusUnprocessableEntity},
		{NewConcurrentModification("user", "x"), CodeConcurrentModification, http.StatusConflict},
	}

	for _, tc := range cases {
		t.Run(tc.wantCode, func(t *testing.T) {
			assert.Equal(t, tc.wantCode, tc.err.Code)
			assert.Equal(t, tc.wantHTTP, tc.err.HTTPStatus)
		})
	}
}

func TestAsAppError_ThroughWrapping(t *testing.T) {
	inner := NewNotFound("company", "abc")
	wrapped := fmt.Errorf("load config: %w", inner)

	appErr, ok := AsAppError(wrapped)
	require.True(t, ok)
	assert.Equal(t, CodeNotFound, appErr.Code)
	assert.True(t, IsNotFound(wrapped))
}

func TestHasCode(t *testing.T) {
	err := NewModifyArchived("account")

	assert.True(t, HasCode(err, CodeModifyArchived))
	assert.False(t, HasCode(err, CodeArchivedParent))
	assert.False(t, HasCode(errors.New("plain"), CodeModifyArchived))
}

func TestGetHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, GetHTTPStatus(NewNotFound("user", "x")))
	assert.Equal(t, http.StatusInternalServerError, GetHTTPStatus(errors.New("plain")))
}
