// File: internal/services/lastfm/config.go
package lastfm

import (
	"fmt"
	"time"
)

type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("LASTFM_API_KEY is required")
	}
	if c.BaseURL == "" {
		return fmt.Errorf("LASTFM_BASE_URL is required")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	return nil
}

// DefaultConfig pins an explicit client timeout. The upstream API has no
// contract for slow responses, so the bound lives on our side.
func DefaultConfig() *Config {
	return &Config{
		BaseURL: "http://ws.audioscrobbler.com/2.0/",
		Timeout: 10 * time.Second,
	}
}
