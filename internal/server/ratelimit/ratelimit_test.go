package ratelimit

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(limit int, window time.Duration, burst int) *Config {
	return &Config{
		Enabled:       true,
		DefaultLimit:  1000,
		DefaultWindow: time.Minute,
		Whitelist:     make(map[string]bool),
		Blacklist:     make(map[string]bool),
		EndpointConfigs: []EndpointConfig{
			{Path: "/api/v1/retrieve", Method: "POST", Limit: limit, Window: window, Burst: burst},
		},
	}
}

func TestLimiter_AllowsWithinBurst(t *testing.T) {
	limiter := NewLimiter(testConfig(60, time.Minute, 3))
	defer limiter.Stop()

	for i := 0; i < 3; i++ {
		allowed, info := limiter.Allow("1.2.3.4", "/api/v1/retrieve", "POST")
		assert.True(t, allowed, "request %d should be allowed", i+1)
		assert.Equal(t, 60, info.Limit)
	}
}

func TestLimiter_BlocksOverBurst(t *testing.T) {
	limiter := NewLimiter(testConfig(60, time.Minute, 2))
	defer limiter.Stop()

	limiter.Allow("1.2.3.4", "/api/v1/retrieve", "POST")
	limiter.Allow("1.2.3.4", "/api/v1/retrieve", "POST")

	allowed, info := limiter.Allow("1.2.3.4", "/api/v1/retrieve", "POST")
	assert.False(t, allowed)
	assert.Greater(t, info.RetryAfter, time.Duration(0))
}

func TestLimiter_ClientsAreIndependent(t *testing.T) {
	limiter := NewLimiter(testConfig(60, time.Minute, 1))
	defer limiter.Stop()

	allowed, _ := limiter.Allow("1.1.1.1", "/api/v1/retrieve", "POST")
	require.True(t, allowed)

	allowed, _ = limiter.Allow("2.2.2.2", "/api/v1/retrieve", "POST")
	assert.True(t, allowed, "a second client should have its own bucket")
}

func TestLimiter_Disabled(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: false})
	defer limiter.Stop()

	for i := 0; i < 100; i++ {
		allowed, _ := limiter.Allow("1.2.3.4", "/api/v1/retrieve", "POST")
		assert.True(t, allowed)
	}
}

func TestLimiter_Whitelist(t *testing.T) {
	cfg := testConfig(60, time.Minute, 1)
	cfg.Whitelist["9.9.9.9"] = true
	limiter := NewLimiter(cfg)
	defer limiter.Stop()

	for i := 0; i < 10; i++ {
		allowed, _ := limiter.Allow("9.9.9.9", "/api/v1/retrieve", "POST")
		assert.True(t, allowed)
	}
}

func TestLimiter_Blacklist(t *testing.T) {
	cfg := testConfig(60, time.Minute, 10)
	cfg.Blacklist["6.6.6.6"] = true
	limiter := NewLimiter(cfg)
	defer limiter.Stop()

	allowed, _ := limiter.Allow("6.6.6.6", "/api/v1/retrieve", "POST")
	assert.False(t, allowed)
}

func TestTokenBucket_Refills(t *testing.T) {
	bucket := newTokenBucket(1, 100) // 100 tokens/sec for a fast test

	require.True(t, bucket.allow())
	assert.False(t, bucket.allow())

	time.Sleep(20 * time.Millisecond)
	assert.True(t, bucket.allow(), "bucket should refill over time")
}

func TestMatchEndpoint(t *testing.T) {
	configs := []EndpointConfig{
		{Path: "/api/v1/retrieve", Method: "POST", Limit: 60, Window: time.Minute},
		{Path: "/api/v1/", Method: "GET", Limit: 100, Window: time.Minute},
	}

	tests := []struct {
		path      string
		method    string
		wantLimit int
		wantNil   bool
	}{
		{path: "/api/v1/retrieve", method: "POST", wantLimit: 60},
		{path: "/api/v1/parse", method: "GET", wantLimit: 100},
		{path: "/api/v1/parse", method: "POST", wantNil: true},
		{path: "/healthz", method: "GET", wantLimit: 0},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s %s", tt.method, tt.path), func(t *testing.T) {
			match := MatchEndpoint(tt.path, tt.method, configs)
			if tt.wantNil {
				assert.Nil(t, match)
				return
			}
			require.NotNil(t, match)
			assert.Equal(t, tt.wantLimit, match.Limit)
		})
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg := LoadConfig()
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 1000, cfg.DefaultLimit)
	assert.NotEmpty(t, cfg.EndpointConfigs)
}

func TestLoadConfig_Disabled(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	cfg := LoadConfig()
	assert.False(t, cfg.Enabled)
}

func TestParseIPList(t *testing.T) {
	list := parseIPList(" 1.1.1.1, 2.2.2.2 ,,3.3.3.3")
	assert.Equal(t, map[string]bool{"1.1.1.1": true, "2.2.2.2": true, "3.3.3.3": true}, list)
}
