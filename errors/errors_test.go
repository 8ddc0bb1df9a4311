package errors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	err := New(ValidationError, "Invalid task", "title is required")
	assert.Equal(t, "VALIDATION_ERROR: Invalid task (title is required)", err.Error())

	err = New(ServerError, "boom", "")
	assert.Equal(t, "SERVER_ERROR: boom", err.Error())
}

func TestWrap(t *testing.T) {
	raw := errors.New("connection refused")
	err := Wrap(raw, DatabaseError, "query failed")

	assert.Equal(t, DatabaseError, err.Type)
	assert.Equal(t, "connection refused", err.Detail)
	assert.True(t, errors.Is(err, raw))

	assert.Nil(t, Wrap(nil, DatabaseError, "no-op"))
}

func TestHTTPStatusMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		expected int
	}{
		{"validation maps to 400", ValidationFailed("bad", "detail"), http.StatusBadRequest},
		{"not found maps to 404", TaskNotFound("task-1"), http.StatusNotFound},
		{"auth maps to 401", AuthenticationFailed("no token"), http.StatusUnauthorized},
		{"forbidden maps to 403", Forbidden("nope", ""), http.StatusForbidden},
		{"access denied maps to 403", AccessDenied("role staff"), http.StatusForbidden},
		{"conflict maps to 409", NewConflictError("stale", "version mismatch"), http.StatusConflict},
		{"server maps to 500", InternalServerError("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.HTTPStatus)
		})
	}
}

func TestAccessDenied_MessageContract(t *testing.T) {
	// external clients match on this substring
	err := AccessDenied("user role not found")
	assert.Contains(t, err.Message, "insufficient permissions")
	assert.Equal(t, "Access denied: insufficient permissions", err.Message)
}
