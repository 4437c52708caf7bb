package waha

import (
	"strings"
	"time"
)

// DefaultBaseURL is where a locally started gateway listens.
const DefaultBaseURL = "http://localhost:3000"

// Config locates the gateway.
type Config struct {
	BaseURL string
	// APIKey is sent as X-Api-Key when set.
	APIKey string
	// Timeout applies only to transports created by the client itself.
	// Zero leaves the transport default in place.
	Timeout time.Duration
}

// DefaultConfig returns a Config pointing at DefaultBaseURL.
func DefaultConfig() Config {
	return Config{BaseURL: DefaultBaseURL}
}

func (c Config) baseURL() string {
	u := strings.TrimSpace(c.BaseURL)
	if u == "" {
		u = DefaultBaseURL
	}
	return strings.TrimRight(u, "/")
}
