package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	err := NotFound("asset not found")
	assert.Equal(t, "asset not found", err.Error())

	wrapped := Wrap(stderrors.New("connection refused"), ErrCodeUnavailable, "platform api")
	assert.Equal(t, "platform api: connection refused", wrapped.Error())
}

func TestAppError_Unwrap(t *testing.T) {
	cause := stderrors.New("boom")
	err := Wrap(cause, ErrCodeInternal, "wrapped")

	require.ErrorIs(t, err, cause)

	var appErr *AppError
	require.ErrorAs(t, fmt.Errorf("outer: %w", err), &appErr)
	assert.Equal(t, ErrCodeInternal, appErr.Code)
}

func TestWrap_NilCause(t *testing.T) {
	assert.Nil(t, Wrap(nil, ErrCodeInternal, "nothing"))
}

func TestPredicates(t *testing.T) {
	tests := []struct {
		name string
		err  error
		pred func(error) bool
	}{
		{"not found", NotFoundf("job %s", "j-1"), IsNotFound},
		{"conflict", Conflict("duplicate consent"), IsConflict},
		{"validation", ValidationField("progress", "out of range"), IsValidation},
		{"unavailable", Unavailable("upstream down"), IsUnavailable},
		{"internal", Internalf("bad state %d", 2), IsInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.pred(tt.err))
			assert.False(t, tt.pred(stderrors.New("plain")))
		})
	}
}

func TestGetCodeAndField(t *testing.T) {
	err := ValidationField("email", "invalid email")
	assert.Equal(t, ErrCodeValidation, GetCode(err))
	assert.Equal(t, "email", GetField(err))

	assert.Equal(t, ErrorCode(""), GetCode(stderrors.New("plain")))
	assert.Equal(t, "", GetField(stderrors.New("plain")))
}
