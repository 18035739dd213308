package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/smaikl/GLG-bot/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("order", int64(42))

		assert.Equal(t, "order", err.ParamName)
		assert.Equal(t, int64(42), err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: order 42", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("record not found")
		err := errs.NewObjectNotFoundErrorWithCause("user", int64(7), cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: user, ID is: 7 (cause: record not found)",
			err.Error())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("email")

		assert.Equal(t, "email", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: email", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("invalid format")
		err := errs.NewValueIsInvalidErrorWithCause("email", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is invalid: email (cause: invalid format)", err.Error())
	})
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("NewValueIsOutOfRangeError", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("page", 0, 1, 10)

		assert.Equal(t, "page", err.ParamName)
		assert.Equal(t, 0, err.Value)
		assert.Equal(t, "value is invalid: 0 is page, min value is 1, max value is 10", err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("NewValueIsOutOfRangeErrorWithCause", func(t *testing.T) {
		cause := errors.New("validation failed")
		err := errs.NewValueIsOutOfRangeErrorWithCause("score", -5, 0, 100, cause)

		assert.Equal(t,
			"value is invalid: -5 is score, min value is 0, max value is 100 (cause: validation failed)",
			err.Error())
	})

	t.Run("sanitizes newlines", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("text", "hello\nworld", 0, 10)
		assert.Contains(t, err.Error(), "hello world")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	err := errs.NewValueIsRequiredError("phone")

	assert.Equal(t, "value is required: phone", err.Error())
	assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())

	withCause := errs.NewValueIsRequiredErrorWithCause("phone", errors.New("empty"))
	assert.Equal(t, "value is required: phone (cause: empty)", withCause.Error())
}

func TestConflictError(t *testing.T) {
	err := errs.NewConflictError("order", int64(3))
	assert.Equal(t, "conflict: order 3", err.Error())
	require.ErrorIs(t, err, errs.ErrConflict)

	withCause := errs.NewConflictErrorWithCause("order", int64(3), errors.New("already accepted"))
	assert.Equal(t, "conflict: order 3 (cause: already accepted)", withCause.Error())
}

func TestForbiddenError(t *testing.T) {
	err := errs.NewForbiddenError("accept order")
	assert.Equal(t, "forbidden: accept order", err.Error())
	require.ErrorIs(t, err, errs.ErrForbidden)

	withCause := errs.NewForbiddenErrorWithCause("accept order", errors.New("sender role"))
	assert.Equal(t, "forbidden: accept order (cause: sender role)", withCause.Error())
}

func TestErrorsCanBeUnwrapped(t *testing.T) {
	wrapped := fmt.Errorf("accept: %w", errs.NewConflictError("order", 1))
	require.ErrorIs(t, wrapped, errs.ErrConflict)

	var conflict *errs.ConflictError
	require.ErrorAs(t, wrapped, &conflict)
	assert.Equal(t, "order", conflict.ParamName)

	joined := errors.Join(errs.NewValueIsRequiredError("name"), errs.NewValueIsInvalidError("phone"))
	require.ErrorIs(t, joined, errs.ErrValueIsRequired)
	require.ErrorIs(t, joined, errs.ErrValueIsInvalid)
}

func TestIsValidation(t *testing.T) {
	assert.True(t, errs.IsValidation(errs.NewValueIsInvalidError("weight")))
	assert.True(t, errs.IsValidation(errs.NewValueIsRequiredError("weight")))
	assert.True(t, errs.IsValidation(errs.NewValueIsOutOfRangeError("page", 0, 1, 2)))
	assert.False(t, errs.IsValidation(errs.NewConflictError("order", 1)))
	assert.False(t, errs.IsValidation(errors.New("boom")))
}

func TestErrUnsupportedFileType(t *testing.T) {
	wrapped := fmt.Errorf("attach: %w", errs.ErrUnsupportedFileType)

	require.ErrorIs(t, wrapped, errs.ErrUnsupportedFileType)
	assert.True(t, errs.IsValidation(wrapped))
	assert.Equal(t, "value is invalid: unsupported file type", errs.ErrUnsupportedFileType.Error())
}
