package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestKindsMatchRegardlessOfMessage(t *testing.T) {
	err := NewConflictError("Project is already assigned")
	require.Equal(t, http.StatusBadRequest, err.StatusCode)
	require.True(t, IsConflict(err))
	require.False(t, IsNotFound(err))
	require.Equal(t, "Project is already assigned", err.Message())

	wrapped := fmt.Errorf("assign: %w", err)
	require.True(t, IsConflict(wrapped))
}

func TestNewNotFound(t *testing.T) {
	err := NewNotFound("Project")
	require.Equal(t, "Project not found", err.Error())
	require.Equal(t, http.StatusNotFound, err.StatusCode)
	require.True(t, IsNotFound(err))
}

func TestErrorIncludesDetails(t *testing.T) {
	err := NewMissingRequiredFieldError("title")
	require.Equal(t, "missing required field", err.Message())
	require.Equal(t, "missing required field: Missing required field: title", err.Error())
	require.Equal(t, "title", err.Field)
	require.True(t, IsValidation(err))
	require.True(t, IsMissingRequiredFieldError(err))
}

func TestTokenErrors(t *testing.T) {
	missing := NewMissingTokenError()
	require.True(t, IsMissingTokenError(missing))
	require.True(t, errors.Is(missing, ErrUnauthorized))

	invalid := NewInvalidTokenError(errors.New("signature is invalid"))
	require.True(t, IsInvalidTokenError(invalid))
	require.Equal(t, http.StatusUnauthorized, invalid.StatusCode)
}

func TestIsUniqueViolation(t *testing.T) {
	cases := map[string]struct {
		err  error
		want bool
	}{
		"pg 23505":        {&pgconn.PgError{Code: "23505"}, true},
		"wrapped pg":      {fmt.Errorf("insert bid: %w", &pgconn.PgError{Code: "23505"}), true},
		"gorm translated": {gorm.ErrDuplicatedKey, true},
		"store sentinel":  {NewUniqueConstraintViolationError("bids", "contractor_id", nil), true},
		"other pg code":   {&pgconn.PgError{Code: "23503"}, false},
		"plain":           {errors.New("boom"), false},
		"nil":             {nil, false},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			require.Equal(t, tc.want, IsUniqueViolation(tc.err))
		})
	}
}

func TestNewDatabaseError(t *testing.T) {
	notFound := NewDatabaseError("find", "project", gorm.ErrRecordNotFound)
	require.True(t, IsNotFound(notFound))

	duplicate := NewDatabaseError("update", "user", &pgconn.PgError{Code: "23505"})
	require.Equal(t, http.StatusBadRequest, duplicate.StatusCode)
	require.True(t, IsUniqueViolation(duplicate))

	foreignKey := NewDatabaseError("create", "bid", &pgconn.PgError{Code: "23503"})
	require.True(t, IsForeignKeyConstraintError(foreignKey))

	connection := NewDatabaseError("find", "project", errors.New("dial tcp: connection refused"))
	require.Equal(t, http.StatusServiceUnavailable, connection.StatusCode)

	generic := NewDatabaseError("list", "bids", errors.New("syntax error"))
	require.Equal(t, http.StatusInternalServerError, generic.StatusCode)
	require.True(t, errors.Is(generic, ErrDatabaseQuery))
}

func TestGetFullErrorFollowsCauses(t *testing.T) {
	inner := NewDatabaseError("delete", "bids", errors.New("disk full"))
	outer := NewTransactionFailedError("delete project", inner)

	require.True(t, IsTransactionFailedError(outer))
	require.Contains(t, outer.GetFullError(), "Transaction failed during delete project")
	require.Contains(t, outer.GetFullError(), "disk full")
}

func TestServiceErrors(t *testing.T) {
	require.True(t, IsServiceUnavailableError(NewServiceUnavailableError("file storage", nil)))
	require.True(t, IsConfigError(NewConfigError("DATABASE_URL", nil)))
}
