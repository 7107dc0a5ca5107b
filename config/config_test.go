package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 100, cfg.Server.RateLimit)
	assert.Equal(t, time.Minute, cfg.Server.RateWindow)
	assert.Equal(t, 60*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, "info", cfg.Server.LogLevel)

	assert.Empty(t, cfg.Carrier.ClientID)
	assert.True(t, cfg.Carrier.UseIntelligentPacking)
	assert.True(t, cfg.Carrier.CustomBoxesEnabled)
	assert.InDelta(t, 2.0, cfg.Carrier.CustomBoxMarginIn, 1e-9)
	assert.InDelta(t, 1.0, cfg.Carrier.CustomBoxTareLbs, 1e-9)
	assert.Equal(t, 15*time.Second, cfg.Carrier.RequestTimeout)
	assert.Equal(t, 3, cfg.Carrier.RetryMaxAttempts)
	assert.Equal(t, time.Second, cfg.Carrier.RetryBaseDelay)
	assert.Equal(t, 10*time.Second, cfg.Carrier.RetryMaxDelay)
	assert.Equal(t, 5, cfg.Carrier.CircuitBreakerFailureThreshold)
	assert.Equal(t, 30*time.Second, cfg.Carrier.CircuitBreakerCoolDown)

	assert.False(t, cfg.Auth.Enabled)
	assert.False(t, cfg.Database.Enabled)
	assert.Equal(t, 30, cfg.Database.LogsTTLDays)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("RATE_LIMIT", "250")
	t.Setenv("FEDEX_CLIENT_ID", "client")
	t.Setenv("FEDEX_CLIENT_SECRET", "secret")
	t.Setenv("FEDEX_ACCOUNT_NUMBER", "123456789")
	t.Setenv("RATE_MARKUP_PERCENT", "12.5")
	t.Setenv("INTELLIGENT_PACKING", "false")
	t.Setenv("CUSTOM_BOXES_ENABLED", "false")
	t.Setenv("CUSTOM_BOX_MARGIN_IN", "3.5")
	t.Setenv("ENABLED_SERVICES", "FEDEX_GROUND, FEDEX_2_DAY")
	t.Setenv("SMARTPOST_HUBS", "ca=5531, NY=5552")
	t.Setenv("CARRIER_RETRY_BASE_DELAY", "500ms")
	t.Setenv("AUTH_ENABLED", "true")
	t.Setenv("API_KEYS", "key-a, key-b")
	t.Setenv("MONGODB_ENABLED", "true")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 250, cfg.Server.RateLimit)
	assert.Equal(t, "client", cfg.Carrier.ClientID)
	assert.InDelta(t, 12.5, cfg.Carrier.MarkupPercent, 1e-9)
	assert.False(t, cfg.Carrier.UseIntelligentPacking)
	assert.False(t, cfg.Carrier.CustomBoxesEnabled)
	assert.InDelta(t, 3.5, cfg.Carrier.CustomBoxMarginIn, 1e-9)
	assert.Equal(t, []string{"FEDEX_GROUND", "FEDEX_2_DAY"}, cfg.Carrier.EnabledServices)
	assert.Equal(t, map[string]string{"CA": "5531", "NY": "5552"}, cfg.Carrier.SmartPostHubs)
	assert.Equal(t, 500*time.Millisecond, cfg.Carrier.RetryBaseDelay)
	assert.True(t, cfg.Auth.Enabled)
	assert.Equal(t, map[string]bool{"key-a": true, "key-b": true}, cfg.Auth.APIKeys)
	assert.True(t, cfg.Database.Enabled)
}

func TestLoad_MalformedValuesFallBack(t *testing.T) {
	t.Setenv("RATE_LIMIT", "not-a-number")
	t.Setenv("RATE_MARKUP_PERCENT", "ten")
	t.Setenv("CARRIER_REQUEST_TIMEOUT", "soon")
	t.Setenv("AUTH_ENABLED", "yep")

	cfg := Load()

	assert.Equal(t, 100, cfg.Server.RateLimit)
	assert.Zero(t, cfg.Carrier.MarkupPercent)
	assert.Equal(t, 15*time.Second, cfg.Carrier.RequestTimeout)
	assert.False(t, cfg.Auth.Enabled)
}

func TestParseKeyValueMap(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  map[string]string
	}{
		{"empty", "", nil},
		{"single pair", "CA=5531", map[string]string{"CA": "5531"}},
		{"keys are upper-cased and trimmed", " ca = 5531 , ny=5552", map[string]string{"CA": "5531", "NY": "5552"}},
		{"pairs without separator are skipped", "CA=5531,garbage,NY=5552", map[string]string{"CA": "5531", "NY": "5552"}},
		{"empty values are skipped", "CA=,NY=5552", map[string]string{"NY": "5552"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseKeyValueMap(tt.input))
		})
	}
}

func TestParseCORSOrigins(t *testing.T) {
	defaults := parseCORSOrigins("")
	assert.Contains(t, defaults, "http://localhost:3000")

	withExtra := parseCORSOrigins("https://shop.example.com")
	assert.Contains(t, withExtra, "http://localhost:3000")
	assert.Contains(t, withExtra, "https://shop.example.com")
}

func TestParseStringSlice(t *testing.T) {
	assert.Nil(t, parseStringSlice(""))
	assert.Equal(t, []string{"a", "b"}, parseStringSlice("a, ,b,"))
}
