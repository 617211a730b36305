package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Behavior(t *testing.T) {
	err := NewValidationError("invalid input").WithCode("VAL001").WithDetail("field", "name").WithComponent("test-component")
	assert.Equal(t, ErrorTypeValidation, err.Type)
	assert.Equal(t, "invalid input", err.Message)
	assert.Equal(t, "VAL001", err.Code)
	assert.Equal(t, "test-component", err.Component)
	assert.Equal(t, "name", err.Details["field"])
	assert.Equal(t, "invalid input", err.Error())
}

func TestAppError_WithCause_Unwrap(t *testing.T) {
	cause := ErrConnection
	err := NewConnectionError("connect").WithCause(cause)
	assert.Equal(t, cause, err.Unwrap())
	assert.Equal(t, "connect: database connection failed", err.Error())
}

func TestClassifiers(t *testing.T) {
	infra := NewInfrastructureError("fetch").WithCause(errors.New("socket closed"))
	assert.True(t, IsInfrastructure(infra))
	assert.False(t, IsValidation(infra))
	assert.False(t, IsConnection(infra))
	assert.True(t, IsInfrastructure(fmt.Errorf("export: %w", infra)))
	assert.False(t, IsInfrastructure(errors.New("plain")))

	assert.True(t, IsValidation(NewValidationError("bad")))
	assert.True(t, IsValidation(ErrInvalidCollectionName))
	assert.True(t, IsValidation(ErrInvalidDatabaseName))
	assert.True(t, IsValidation(ErrInvalidInput))
	assert.True(t, IsConnection(NewConnectionError("down")))
	assert.True(t, IsConnection(ErrConnection))
}

func TestInfrastructureError_SurvivesWrap(t *testing.T) {
	captureLogs(t)
	cause := errors.New("connection refused")
	err := Wrap(NewInfrastructureError("failed to fetch collection").WithCause(cause).WithDetail("collection", "widgets"))

	var appErr *AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, ErrorTypeInfrastructure, appErr.Type)
	assert.Equal(t, "widgets", appErr.Details["collection"])
	assert.True(t, IsInfrastructure(err))
	assert.ErrorIs(t, err, cause)
}
