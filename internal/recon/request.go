package recon

import (
	"strings"

	"github.com/theopenlane/rapidrecon/internal/rapidapi"
)

// Request is what the operator supplies for one scan
type Request struct {
	APIKey string `json:"-"`
	Domain string `json:"domain"`
}

// NewRequest trims both inputs
func NewRequest(apiKey, domain string) Request {
	return Request{
		APIKey: strings.TrimSpace(apiKey),
		Domain: strings.TrimSpace(domain),
	}
}

// Validate rejects a request with an empty key or domain; the domain syntax is not checked
func (r Request) Validate() error {
	if r.APIKey == "" || r.Domain == "" {
		return ErrMissingInput
	}

	return nil
}

// Outcome is the result of a scan that reached the fetched state
type Outcome struct {
	Domain string               `json:"domain"`
	JobID  string               `json:"jobId"`
	Status rapidapi.JobStatus   `json:"status"`
	Result *rapidapi.ScanResult `json:"result"`
}
