package fedex

import (
	"context"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shipquote/rate-service/internal/carrier"
	"github.com/shipquote/rate-service/internal/domain/model"
)

func TestClient_ExpiredTokenRefreshedOnce(t *testing.T) {
	// The first rate call is rejected with 401; the client must refresh the
	// token exactly once and replay the request without consuming a retry.
	fc, ts := newFakeCarrier(t, func(w http.ResponseWriter, r *http.Request, req rateRequest) {
		if r.Header.Get("Authorization") == "Bearer tok-1" {
			w.WriteHeader(http.StatusUnauthorized)
			writeJSON(t, w, apiErrorResponse{Errors: []apiError{{Code: "NOT.AUTHORIZED.ERROR", Message: "access token expired"}}})
			return
		}
		writeJSON(t, w, rateReply(ratedDetail("INTERNATIONAL_ECONOMY", 88.00)))
	})

	client := NewClient(testClientConfig(ts.URL))
	packages := []model.Package{{WeightLbs: 5, LengthIn: 12, WidthIn: 10, HeightIn: 8}}

	rates, err := client.GetRates(context.Background(), testOrigin, testIntlDest, packages, carrier.RateOptions{})

	require.NoError(t, err)
	require.Len(t, rates, 1)
	assert.Equal(t, int32(2), atomic.LoadInt32(&fc.tokenFetches))
	assert.Equal(t, int32(2), atomic.LoadInt32(&fc.rateCalls))
}

func TestClient_ValidationErrorNotRetried(t *testing.T) {
	fc, ts := newFakeCarrier(t, func(w http.ResponseWriter, r *http.Request, req rateRequest) {
		w.WriteHeader(http.StatusBadRequest)
		writeJSON(t, w, apiErrorResponse{Errors: []apiError{{
			Code:    "POSTAL.CODE.INVALID",
			Message: "postal code is invalid",
			ParameterList: []apiErrorParameter{
				{Key: "recipient.postalCode", Value: "required"},
			},
		}}})
	})

	client := NewClient(testClientConfig(ts.URL))
	packages := []model.Package{{WeightLbs: 5, LengthIn: 12, WidthIn: 10, HeightIn: 8}}

	_, err := client.GetRates(context.Background(), testOrigin, testIntlDest, packages, carrier.RateOptions{})

	require.Error(t, err)
	assert.ErrorIs(t, err, carrier.ErrAllCategoriesFailed)

	var cerr *carrier.Error
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, carrier.KindValidation, cerr.Kind)
	assert.Equal(t, http.StatusBadRequest, cerr.StatusCode)
	assert.Equal(t, "required", cerr.Details["recipient.postalCode"])

	// One category, one attempt: 4xx failures never burn the retry budget.
	assert.Equal(t, int32(1), atomic.LoadInt32(&fc.rateCalls))
}

func TestClient_RetriesTransientFailures(t *testing.T) {
	var calls int32
	_, ts := newFakeCarrier(t, func(w http.ResponseWriter, r *http.Request, req rateRequest) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		writeJSON(t, w, rateReply(ratedDetail("INTERNATIONAL_ECONOMY", 88.00)))
	})

	client := NewClient(testClientConfig(ts.URL))
	packages := []model.Package{{WeightLbs: 5, LengthIn: 12, WidthIn: 10, HeightIn: 8}}

	rates, err := client.GetRates(context.Background(), testOrigin, testIntlDest, packages, carrier.RateOptions{})

	require.NoError(t, err)
	require.Len(t, rates, 1)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestReadAPIError(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantKind    carrier.ErrorKind
		wantMessage string
		wantDetails map[string]string
	}{
		{
			name:   "structured validation error with parameters",
			status: http.StatusBadRequest,
			body: `{"transactionId":"abc","errors":[{"code":"WEIGHT.EXCEEDS.MAX","message":"package too heavy",` +
				`"parameterList":[{"key":"weight","value":"max 150 lb"}]}]}`,
			wantKind:    carrier.KindValidation,
			wantMessage: "package too heavy",
			wantDetails: map[string]string{"WEIGHT.EXCEEDS.MAX": "package too heavy", "weight": "max 150 lb"},
		},
		{
			name:        "unauthorized",
			status:      http.StatusUnauthorized,
			body:        `{"errors":[{"code":"NOT.AUTHORIZED.ERROR","message":"token expired"}]}`,
			wantKind:    carrier.KindAuthenticationFailed,
			wantMessage: "token expired",
			wantDetails: map[string]string{"NOT.AUTHORIZED.ERROR": "token expired"},
		},
		{
			name:        "rate limited",
			status:      http.StatusTooManyRequests,
			body:        `{"errors":[{"message":"quota exhausted"}]}`,
			wantKind:    carrier.KindRateLimitExceeded,
			wantMessage: "quota exhausted",
		},
		{
			name:        "unparseable body falls back to status text",
			status:      http.StatusBadGateway,
			body:        "<html>bad gateway</html>",
			wantKind:    carrier.KindServiceUnavailable,
			wantMessage: http.StatusText(http.StatusBadGateway),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := &http.Response{
				StatusCode: tt.status,
				Body:       io.NopCloser(strings.NewReader(tt.body)),
			}

			cerr := readAPIError(resp)

			assert.Equal(t, tt.wantKind, cerr.Kind)
			assert.Equal(t, tt.status, cerr.StatusCode)
			assert.Equal(t, tt.wantMessage, cerr.Message)
			assert.Equal(t, tt.wantDetails, cerr.Details)
		})
	}
}

func TestConfig_Configured(t *testing.T) {
	assert.False(t, Config{}.Configured())
	assert.False(t, Config{ClientID: "id", ClientSecret: "secret"}.Configured())
	assert.True(t, Config{ClientID: "id", ClientSecret: "secret", AccountNumber: "123"}.Configured())
}

func TestNewClient_Defaults(t *testing.T) {
	client := NewClient(Config{ClientID: "id", ClientSecret: "secret", AccountNumber: "123"})

	assert.Equal(t, defaultBaseURL, client.cfg.BaseURL)
	assert.Equal(t, defaultRequestTimeout, client.cfg.RequestTimeout)
	assert.Equal(t, DefaultRetryPolicy(), client.cfg.Retry)
	assert.Equal(t, []string{"LIST", "ACCOUNT"}, client.cfg.RateTypes)
}

func TestClient_AuthenticateOfflineIsNoop(t *testing.T) {
	client := NewClient(Config{TestMode: true})

	require.NoError(t, client.Authenticate(context.Background()))
}

func TestClient_RateLimitedCallRespectsContext(t *testing.T) {
	_, ts := newFakeCarrier(t, func(w http.ResponseWriter, r *http.Request, req rateRequest) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	cfg := testClientConfig(ts.URL)
	cfg.Retry = RetryPolicy{MaxRetries: 10, BaseDelay: 50 * time.Millisecond, MaxDelay: 50 * time.Millisecond}
	client := NewClient(cfg)
	packages := []model.Package{{WeightLbs: 5, LengthIn: 12, WidthIn: 10, HeightIn: 8}}

	ctx, cancel := context.WithTimeout(context.Background(), 75*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := client.GetRates(ctx, testOrigin, testIntlDest, packages, carrier.RateOptions{})

	require.Error(t, err)
	assert.Less(t, time.Since(start), 2*time.Second, "cancelled context must cut retries short")
}
