package errs

import (
	"net/http"
	"testing"

	"github.com/mailru/easyjson"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	driverErr := errors.New("connection reset")

	tests := []struct {
		name   string
		err    error
		kind   Kind
		status int
	}{
		{"thread", NewThreadNotFoundError("thread not found"), ThreadNotFound, http.StatusNotFound},
		{"parent", NewParentConflictError("parent not found"), ParentConflict, http.StatusConflict},
		{"user", NewUserNotFoundError("user not found"), UserNotFound, http.StatusNotFound},
		{"format", NewInvalidFormatError("bad voice"), InvalidFormat, http.StatusUnprocessableEntity},
		{"allocation", NewAllocationError(driverErr), AllocationFailure, http.StatusInternalServerError},
		{"store", NewStoreError(driverErr, "insert post"), StoreFailure, http.StatusInternalServerError},
		{"foreign", driverErr, StoreFailure, http.StatusInternalServerError},
		{"wrapped kind", errors.Wrap(NewParentConflictError("x"), "batch"), ParentConflict, http.StatusConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, KindOf(tt.err))
			assert.True(t, Is(tt.err, tt.kind))
			assert.Equal(t, tt.status, HttpStatusOf(tt.err))
		})
	}
}

func TestIsNil(t *testing.T) {
	assert.False(t, Is(nil, StoreFailure))
}

func TestWrapKeepsCause(t *testing.T) {
	driverErr := errors.New("deadlock detected")

	err := Wrap(driverErr, "select parent path")
	require.Error(t, err)
	assert.Equal(t, StoreFailure, KindOf(err))
	assert.Equal(t, driverErr, errors.Cause(err))
	assert.True(t, errors.Is(err, driverErr))
	assert.Contains(t, err.Error(), "select parent path")
	assert.Contains(t, err.Error(), "deadlock detected")
}

func TestWrapPassesTypedErrors(t *testing.T) {
	conflict := NewParentConflictError("parent not found")
	assert.Same(t, conflict, Wrap(conflict, "ignored"))
	assert.Nil(t, Wrap(nil, "ignored"))
}

func TestMarshal(t *testing.T) {
	b, err := easyjson.Marshal(NewThreadNotFoundError("thread not found"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"message":"thread not found"}`, string(b))

	var decoded Error
	require.NoError(t, easyjson.Unmarshal(b, &decoded))
	assert.Equal(t, "thread not found", decoded.Message)
}
