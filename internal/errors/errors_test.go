package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	assert.Equal(t, "nope", NotFound("nope").Error())

	wrapped := Wrap(errors.New("boom"), ErrCodeInternal, "operation failed")
	assert.Equal(t, "operation failed: boom", wrapped.Error())
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := Wrap(cause, ErrCodeConflict, "conflict")
	assert.ErrorIs(t, err, cause)
}

func TestCodePredicates(t *testing.T) {
	assert.True(t, IsNotFound(NotFoundf("module %s", "m1")))
	assert.True(t, IsConflict(Conflict("dup")))
	assert.True(t, IsValidation(Validationf("bad %s", "slug")))
	assert.True(t, IsUnauthorized(Unauthorized("no token")))
	assert.True(t, IsForbidden(Forbidden("admins only")))
	assert.True(t, IsInternal(Internalf("oops %d", 1)))
	assert.False(t, IsNotFound(errors.New("plain")))
}

func TestCodePredicates_WrappedChain(t *testing.T) {
	inner := NotFound("module not found")
	outer := fmt.Errorf("load catalog: %w", inner)
	assert.True(t, IsNotFound(outer))
	assert.Equal(t, ErrCodeNotFound, GetCode(outer))
}

func TestGetField(t *testing.T) {
	err := ValidationField("slug", "slug is required")
	assert.Equal(t, "slug", GetField(err))
	assert.Empty(t, GetField(errors.New("plain")))
}

func TestWrap_NilPassthrough(t *testing.T) {
	require.Nil(t, Wrap(nil, ErrCodeInternal, "ignored"))
	require.Nil(t, Wrapf(nil, ErrCodeInternal, "ignored %d", 1))
}

func TestMapDBError(t *testing.T) {
	assert.NoError(t, MapDBError(nil))

	assert.True(t, IsNotFound(MapDBError(pgx.ErrNoRows)))

	unique := &pgconn.PgError{
		Code:   pgerrcode.UniqueViolation,
		Detail: `Key (slug)=(algebra-1) already exists.`,
	}
	mapped := MapDBError(unique)
	assert.True(t, IsConflict(mapped))
	assert.Equal(t, "slug", GetField(mapped))

	fk := &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}
	assert.True(t, IsForeignKey(MapDBError(fk)))

	check := &pgconn.PgError{Code: pgerrcode.CheckViolation}
	assert.True(t, IsValidation(MapDBError(check)))

	plain := errors.New("not a pg error")
	assert.Equal(t, plain, MapDBError(plain))
}
