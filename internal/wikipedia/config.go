package wikipedia

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/olgasafonova/wikitranslate-mcp-server/internal/base"
)

// DefaultEndpoint is the api.php URL template; %s is the language code
const DefaultEndpoint = "https://%s.wikipedia.org/w/api.php"

// Config holds Wikipedia client settings
type Config struct {
	// Endpoint is the api.php URL template with one %s for the language code
	Endpoint string

	// UserAgent identifies the client to Wikipedia
	UserAgent string

	// Timeout for a single API request
	Timeout time.Duration

	// MaxConcurrency bounds parallel API requests
	MaxConcurrency int
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	endpoint := os.Getenv("WIKIPEDIA_ENDPOINT")
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if err := validateEndpoint(endpoint); err != nil {
		return nil, err
	}

	timeout := base.DefaultTimeout
	if t := os.Getenv("WIKIPEDIA_TIMEOUT"); t != "" {
		d, err := time.ParseDuration(t)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("WIKIPEDIA_TIMEOUT must be a positive duration, got %q", t)
		}
		timeout = d
	}

	maxConcurrency := base.MaxConcurrentRequests
	if n := os.Getenv("WIKIPEDIA_MAX_CONCURRENCY"); n != "" {
		v, err := strconv.Atoi(n)
		if err != nil || v <= 0 {
			return nil, fmt.Errorf("WIKIPEDIA_MAX_CONCURRENCY must be a positive integer, got %q", n)
		}
		maxConcurrency = v
	}

	userAgent := os.Getenv("WIKIPEDIA_USER_AGENT")
	if userAgent == "" {
		userAgent = base.DefaultUserAgent
	}

	return &Config{
		Endpoint:       endpoint,
		UserAgent:      userAgent,
		Timeout:        timeout,
		MaxConcurrency: maxConcurrency,
	}, nil
}

func validateEndpoint(endpoint string) error {
	if strings.Count(endpoint, "%s") != 1 || strings.Contains(strings.Replace(endpoint, "%s", "", 1), "%") {
		return fmt.Errorf("WIKIPEDIA_ENDPOINT must contain exactly one %%s for the language code and no other %%, got %q", endpoint)
	}
	if !strings.HasPrefix(endpoint, "https://") && !strings.HasPrefix(endpoint, "http://") {
		return fmt.Errorf("WIKIPEDIA_ENDPOINT must be an http(s) URL, got %q", endpoint)
	}
	return nil
}
