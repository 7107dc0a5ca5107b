package carrier

import (
	"context"
	"errors"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		status        int
		wantKind      ErrorKind
		wantRetryable bool
	}{
		{http.StatusUnauthorized, KindAuthenticationFailed, false},
		{http.StatusTooManyRequests, KindRateLimitExceeded, true},
		{http.StatusInternalServerError, KindServiceUnavailable, true},
		{http.StatusServiceUnavailable, KindServiceUnavailable, true},
		{http.StatusBadRequest, KindValidation, false},
		{http.StatusNotFound, KindValidation, false},
		{http.StatusOK, KindUnknown, false},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			err := ClassifyStatus(tt.status, "", nil)

			assert.Equal(t, tt.wantKind, err.Kind)
			assert.Equal(t, tt.status, err.StatusCode)
			assert.Equal(t, tt.wantRetryable, err.Retryable())
			assert.NotEmpty(t, err.Message, "empty message is filled from status text")
		})
	}
}

func TestClassifyTransport(t *testing.T) {
	t.Run("net errors become network kind", func(t *testing.T) {
		var netErr net.Error = &net.OpError{Op: "dial", Err: errors.New("connection refused")}

		cerr := ClassifyTransport(netErr)

		assert.Equal(t, KindNetwork, cerr.Kind)
		assert.True(t, cerr.Retryable())
	})

	t.Run("context deadline counts as network", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
		defer cancel()
		<-ctx.Done()

		cerr := ClassifyTransport(ctx.Err())

		assert.Equal(t, KindNetwork, cerr.Kind)
	})

	t.Run("already classified errors pass through", func(t *testing.T) {
		original := &Error{Kind: KindValidation, StatusCode: 400, Message: "bad postal code"}

		assert.Same(t, original, ClassifyTransport(original))
	})

	t.Run("wrapped classified errors are unwrapped", func(t *testing.T) {
		original := &Error{Kind: KindRateLimitExceeded, StatusCode: 429}

		assert.Same(t, original, ClassifyTransport(errors.Join(errors.New("rate call"), original)))
	})

	t.Run("nil maps to nil", func(t *testing.T) {
		assert.Nil(t, ClassifyTransport(nil))
	})

	t.Run("plain errors stay unknown and keep the cause", func(t *testing.T) {
		cause := errors.New("encode request")

		cerr := ClassifyTransport(cause)

		assert.Equal(t, KindUnknown, cerr.Kind)
		assert.False(t, cerr.Retryable())
		assert.ErrorIs(t, cerr, cause)
	})
}

func TestError_TokenExpired(t *testing.T) {
	assert.True(t, (&Error{Kind: KindAuthenticationFailed}).TokenExpired())
	assert.False(t, (&Error{Kind: KindValidation}).TokenExpired())
}

func TestError_Message(t *testing.T) {
	withStatus := &Error{Kind: KindValidation, StatusCode: 400, Message: "postal code missing"}
	require.Contains(t, withStatus.Error(), "HTTP 400")
	require.Contains(t, withStatus.Error(), "postal code missing")

	withoutStatus := &Error{Kind: KindNetwork, Message: "dial tcp: refused"}
	assert.Contains(t, withoutStatus.Error(), "network_error")
}
