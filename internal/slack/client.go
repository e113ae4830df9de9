package slack

import (
	"net/http"
	"time"
)

const (
	// defaultRequestTimeout is the default timeout for Slack webhook requests
	defaultRequestTimeout = 10 * time.Second
	// defaultMaxHosts is how many alive hosts a scan summary lists
	defaultMaxHosts = 10
)

// Client posts scan summaries to a Slack incoming webhook
type Client struct {
	webhookURL string
	httpClient *http.Client
	maxHosts   int
}

// Option configures the Client
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client for the Slack client
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithMaxHosts caps the number of alive hosts listed in a summary
func WithMaxHosts(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxHosts = n
		}
	}
}

// New creates a new Slack webhook client
func New(webhookURL string, opts ...Option) (*Client, error) {
	if webhookURL == "" {
		return nil, ErrMissingWebhookURL
	}

	client := &Client{
		webhookURL: webhookURL,
		httpClient: &http.Client{Timeout: defaultRequestTimeout},
		maxHosts:   defaultMaxHosts,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}
