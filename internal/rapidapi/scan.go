package rapidapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/theopenlane/httpsling"
)

const (
	// scanPath is the API path for scan submission and retrieval
	scanPath = "scan"
	// maxErrorBody limits how much of a failed response body is kept for error messages
	maxErrorBody = 4096
)

// Submit creates a remote scan job for the domain and returns its handle
func (c *Client) Submit(ctx context.Context, domain string) (JobHandle, error) {
	if domain == "" {
		return JobHandle{}, ErrMissingDomain
	}

	status, body, err := c.send(ctx, http.MethodPost, scanPath, ScanRequest{Domain: domain})
	if err != nil {
		return JobHandle{}, err
	}

	switch status {
	case http.StatusOK, http.StatusAccepted:
	case http.StatusUnauthorized:
		return JobHandle{}, ErrUnauthorized
	default:
		return JobHandle{}, newStatusError(status, body)
	}

	var resp envelope[JobHandle]
	if err := json.Unmarshal(body, &resp); err != nil {
		return JobHandle{}, fmt.Errorf("%w: %v", ErrDecodeResponse, err)
	}

	if resp.Data.JobID == "" {
		return JobHandle{}, fmt.Errorf("%w: %w", ErrDecodeResponse, ErrMissingJobID)
	}

	return resp.Data, nil
}

// Status returns the current remote status of a scan job
func (c *Client) Status(ctx context.Context, jobID string) (JobStatus, error) {
	if jobID == "" {
		return "", ErrMissingJobID
	}

	status, body, err := c.send(ctx, http.MethodGet, jobPath(jobID, "status"), nil)
	if err != nil {
		return "", err
	}

	if status != http.StatusOK {
		return "", newStatusError(status, body)
	}

	var resp envelope[jobStatusData]
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecodeResponse, err)
	}

	return resp.Data.Status, nil
}

// Result fetches the full payload of a completed scan job
func (c *Client) Result(ctx context.Context, jobID string) (*ScanResult, error) {
	if jobID == "" {
		return nil, ErrMissingJobID
	}

	status, body, err := c.send(ctx, http.MethodGet, jobPath(jobID), nil)
	if err != nil {
		return nil, err
	}

	if status != http.StatusOK {
		return nil, newStatusError(status, body)
	}

	var resp envelope[ScanResult]
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecodeResponse, err)
	}

	return &resp.Data, nil
}

// send issues one request with the RapidAPI headers and returns the status code and raw body
func (c *Client) send(ctx context.Context, method, path string, body any) (int, []byte, error) {
	opts := []httpsling.Option{
		httpsling.URL(c.apiURL(path)),
		httpsling.Method(method),
		httpsling.Header("Content-Type", "application/json"),
		httpsling.Header(headerHost, c.host),
		httpsling.Header(headerKey, c.apiKey),
		httpsling.WithHTTPClient(c.httpClient),
	}

	if body != nil {
		opts = append(opts, httpsling.JSONBody(body))
	}

	requester := httpsling.MustNew(opts...)

	resp, err := requester.SendWithContext(ctx)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close() //nolint:errcheck // response body close error is non-critical

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("%w: reading body: %v", ErrRequestFailed, err)
	}

	return resp.StatusCode, data, nil
}

// jobPath builds scan/{jobID}[/suffix...] with the job ID escaped
func jobPath(jobID string, suffix ...string) string {
	parts := append([]string{scanPath, url.PathEscape(jobID)}, suffix...)

	return strings.Join(parts, "/")
}

func newStatusError(status int, body []byte) *StatusError {
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody]
	}

	return &StatusError{StatusCode: status, Body: strings.TrimSpace(string(body))}
}
