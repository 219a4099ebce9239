package wikipedia

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olgasafonova/wikitranslate-mcp-server/internal/base"
)

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"WIKIPEDIA_ENDPOINT",
		"WIKIPEDIA_TIMEOUT",
		"WIKIPEDIA_MAX_CONCURRENCY",
		"WIKIPEDIA_USER_AGENT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearConfigEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, DefaultEndpoint, cfg.Endpoint)
	assert.Equal(t, base.DefaultUserAgent, cfg.UserAgent)
	assert.Equal(t, base.DefaultTimeout, cfg.Timeout)
	assert.Equal(t, base.MaxConcurrentRequests, cfg.MaxConcurrency)
}

func TestLoadConfig_FromEnv(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("WIKIPEDIA_ENDPOINT", "http://localhost:9000/%s/w/api.php")
	t.Setenv("WIKIPEDIA_TIMEOUT", "5s")
	t.Setenv("WIKIPEDIA_MAX_CONCURRENCY", "8")
	t.Setenv("WIKIPEDIA_USER_AGENT", "my-bot/1.0 (me@example.org)")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9000/%s/w/api.php", cfg.Endpoint)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, 8, cfg.MaxConcurrency)
	assert.Equal(t, "my-bot/1.0 (me@example.org)", cfg.UserAgent)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"endpoint without placeholder", "WIKIPEDIA_ENDPOINT", "https://en.wikipedia.org/w/api.php"},
		{"endpoint with two placeholders", "WIKIPEDIA_ENDPOINT", "https://%s.wikipedia.org/%s/api.php"},
		{"endpoint not http", "WIKIPEDIA_ENDPOINT", "ftp://%s.wikipedia.org/w/api.php"},
		{"endpoint with another verb", "WIKIPEDIA_ENDPOINT", "https://%s.wikipedia.org/w/%d/api.php"},
		{"endpoint with escaped slash", "WIKIPEDIA_ENDPOINT", "https://proxy.local/%s%2Fw/api.php"},
		{"endpoint with literal percent", "WIKIPEDIA_ENDPOINT", "https://proxy.local/100%%/%s/api.php"},
		{"timeout not a duration", "WIKIPEDIA_TIMEOUT", "thirty"},
		{"timeout negative", "WIKIPEDIA_TIMEOUT", "-1s"},
		{"concurrency zero", "WIKIPEDIA_MAX_CONCURRENCY", "0"},
		{"concurrency not a number", "WIKIPEDIA_MAX_CONCURRENCY", "many"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearConfigEnv(t)
			t.Setenv(tt.key, tt.value)

			cfg, err := LoadConfig()
			assert.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}
