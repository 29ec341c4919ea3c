package ratelimit

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimiterAllowsWithinBurst(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled: true,
		EndpointConfigs: []EndpointConfig{
			{Path: "/tailor", Method: "POST", Limit: 60, Window: time.Minute, Burst: 3},
		},
		DefaultLimit:  1000,
		DefaultWindow: time.Minute,
	})
	defer limiter.Stop()

	for i := 0; i < 3; i++ {
		allowed, info := limiter.Allow("1.2.3.4", "/tailor", "POST")
		assert.True(t, allowed, "request %d should be allowed", i)
		assert.Equal(t, 60, info.Limit)
	}

	allowed, info := limiter.Allow("1.2.3.4", "/tailor", "POST")
	assert.False(t, allowed)
	assert.False(t, info.Allowed)
}

func TestLimiterSeparatesClients(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled: true,
		EndpointConfigs: []EndpointConfig{
			{Path: "/tailor", Method: "POST", Limit: 60, Window: time.Minute, Burst: 1},
		},
		DefaultLimit:  1000,
		DefaultWindow: time.Minute,
	})
	defer limiter.Stop()

	allowed, _ := limiter.Allow("1.2.3.4", "/tailor", "POST")
	require.True(t, allowed)
	allowed, _ = limiter.Allow("1.2.3.4", "/tailor", "POST")
	require.False(t, allowed)

	// A different client has its own bucket
	allowed, _ = limiter.Allow("5.6.7.8", "/tailor", "POST")
	assert.True(t, allowed)
}

func TestLimiterDisabled(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: false})
	defer limiter.Stop()

	for i := 0; i < 100; i++ {
		allowed, _ := limiter.Allow("1.2.3.4", "/tailor", "POST")
		assert.True(t, allowed)
	}
}

func TestHealthCheckUnlimited(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Hour,
	})
	defer limiter.Stop()

	for i := 0; i < 10; i++ {
		allowed, _ := limiter.Allow("1.2.3.4", "/health", "GET")
		assert.True(t, allowed)
	}
}

func TestMatchEndpoint(t *testing.T) {
	configs := DefaultEndpointConfigs()

	tests := []struct {
		path      string
		method    string
		wantMatch bool
	}{
		{"/tailor", "POST", true},
		{"/upload", "POST", true},
		{"/parse/cv", "POST", true},
		{"/parse/jd", "POST", true},
		{"/sessions", "POST", true},
		{"/sessions/abc", "PUT", true},
		{"/sessions/abc", "GET", false},
		{"/tailor", "GET", false},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s %s", tt.method, tt.path), func(t *testing.T) {
			match := MatchEndpoint(tt.path, tt.method, configs)
			if tt.wantMatch {
				assert.NotNil(t, match)
			} else {
				assert.Nil(t, match)
			}
		})
	}
}

func TestDefaultFallbackWhenNoEndpointMatch(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  2,
		DefaultWindow: time.Minute,
	})
	defer limiter.Stop()

	allowed, info := limiter.Allow("1.2.3.4", "/sessions/abc", "GET")
	assert.True(t, allowed)
	assert.Equal(t, 2, info.Limit)
}
