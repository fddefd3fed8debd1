package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFoundError_Creation(t *testing.T) {
	message := "order not found"
	err := NewNotFoundError(message)

	assert.NotNil(t, err)
	assert.Equal(t, message, err.Message)
	assert.Equal(t, message, err.Error())
}

func TestNotFoundError_IsNotFoundError(t *testing.T) {
	err := NewNotFoundError("test not found")

	notFoundErr, ok := IsNotFoundError(err)
	assert.True(t, ok)
	assert.NotNil(t, notFoundErr)
	assert.Equal(t, "test not found", notFoundErr.Message)
}

func TestNotFoundError_IsNotFoundError_WithOtherError(t *testing.T) {
	err := errors.New("some other error")

	notFoundErr, ok := IsNotFoundError(err)
	assert.False(t, ok)
	assert.Nil(t, notFoundErr)
}

func TestForbiddenError(t *testing.T) {
	err := NewForbiddenError("only admins can delete orders")

	fe, ok := IsForbiddenError(err)
	assert.True(t, ok)
	assert.Equal(t, "only admins can delete orders", fe.Error())

	_, ok = IsForbiddenError(errors.New("nope"))
	assert.False(t, ok)
}

func TestConflictError(t *testing.T) {
	err := NewConflictError("order was modified concurrently")

	ce, ok := IsConflictError(err)
	assert.True(t, ok)
	assert.Equal(t, "order was modified concurrently", ce.Error())

	_, ok = IsConflictError(NewNotFoundError("order not found"))
	assert.False(t, ok)
}

func TestValidationError_WithDetails(t *testing.T) {
	err := NewValidationError("validation failed",
		ValidationDetail{Field: "orderIds", Message: "orderIds must not be empty"},
		ValidationDetail{Field: "status", Message: "status is not a known value"},
	)

	ve, ok := IsValidationError(err)
	assert.True(t, ok)
	assert.Equal(t, "validation failed", ve.Error())
	assert.Len(t, ve.Details, 2)
	assert.Equal(t, "orderIds", ve.Details[0].Field)
}

func TestInternalError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewInternalError("updating order", cause)

	assert.Equal(t, "updating order: connection refused", err.Error())
	assert.True(t, errors.Is(err, cause))
}

func TestInternalError_NoCause(t *testing.T) {
	err := NewInternalError("unexpected state", nil)

	assert.Equal(t, "unexpected state", err.Error())
	assert.Nil(t, errors.Unwrap(err))
}
