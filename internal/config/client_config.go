package config

import "strings"

const DefaultBaseURL = "http://localhost:8080"

type ClientConfig interface {
	GetBaseURL() string
	GetRequestTimeout() Duration
}

type API struct {
	BaseURL string   `yaml:"base_url" env:"API_BASE_URL" env-default:"http://localhost:8080"`
	Timeout Duration `yaml:"timeout" env:"API_TIMEOUT" env-default:"0s"`
}

var _ ClientConfig = API{}

// GetBaseURL returns the backend root without a trailing slash, e.g. "https://shop.example.com"
func (a API) GetBaseURL() string {
	if a.BaseURL == "" {
		return DefaultBaseURL
	}
	return strings.TrimRight(a.BaseURL, "/")
}

// GetRequestTimeout is zero when requests should only be bounded by the caller's context.
func (a API) GetRequestTimeout() Duration {
	return a.Timeout
}
