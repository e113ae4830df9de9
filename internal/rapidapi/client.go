package rapidapi

import (
	"fmt"
	"net/http"
	"time"
)

const (
	// DefaultHost is the RapidAPI routing host for the subdomain scanner
	DefaultHost = "advanced-subdomain-scanner.p.rapidapi.com"
	// DefaultBaseURL is the root endpoint for the scanner API
	DefaultBaseURL = "https://" + DefaultHost + "/api/v1"
	// defaultRequestTimeout is the default timeout for a single scanner API request
	defaultRequestTimeout = 30 * time.Second

	headerHost = "X-RapidAPI-Host"
	headerKey  = "X-RapidAPI-Key"
)

// Client provides access to the RapidAPI subdomain scanner
type Client struct {
	apiKey     string
	host       string
	baseURL    string
	httpClient *http.Client
}

// Option configures the Client
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client for the scanner client
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the default scanner API base URL
func WithBaseURL(url string) Option {
	return func(c *Client) {
		if url != "" {
			c.baseURL = url
		}
	}
}

// WithHost overrides the X-RapidAPI-Host routing header
func WithHost(host string) Option {
	return func(c *Client) {
		if host != "" {
			c.host = host
		}
	}
}

// New creates a new scanner client authenticated with the given RapidAPI key
func New(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	client := &Client{
		apiKey:     apiKey,
		host:       DefaultHost,
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: defaultRequestTimeout},
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// apiURL constructs the full API URL for a given path
func (c *Client) apiURL(path string) string {
	return fmt.Sprintf("%s/%s", c.baseURL, path)
}
