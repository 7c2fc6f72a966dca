package apperrors

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "с причиной",
			err:  NewAppError(ErrTransport, "POST /user/userLogin не выполнен", errors.New("connection refused")),
			want: "TRANSPORT.REQUEST_FAILED: POST /user/userLogin не выполнен (connection refused)",
		},
		{
			name: "без причины",
			err:  NewAppError(ErrEnvelopeNotSuccess, "success=false", nil),
			want: "ENVELOPE.NOT_SUCCESS: success=false",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("i/o timeout")
	err := NewAppError(ErrTransport, "запрос не выполнен", cause)

	assert.ErrorIs(t, err, cause)
}

func TestAppError_JSONOmitsCause(t *testing.T) {
	err := NewAppError(ErrFixtureMissing, "нет courseId", errors.New("secret details"))

	data, marshalErr := json.Marshal(err)
	require.NoError(t, marshalErr)
	assert.JSONEq(t, `{"code":"FIXTURE.MISSING","message":"нет courseId"}`, string(data))
}

func TestCodeOf(t *testing.T) {
	wrapped := fmt.Errorf("check create-discount: %w", NewAppError(ErrUnexpectedStatus, "500", nil))

	assert.Equal(t, ErrUnexpectedStatus, CodeOf(wrapped))
	assert.Equal(t, "", CodeOf(errors.New("plain")))
	assert.Equal(t, "", CodeOf(nil))
}

func TestMessageOf(t *testing.T) {
	assert.Equal(t, "нет токена", MessageOf(fmt.Errorf("login: %w", NewAppError(ErrLoginFailed, "нет токена", nil))))
	assert.Equal(t, "plain", MessageOf(errors.New("plain")))
	assert.Equal(t, "", MessageOf(nil))
}
