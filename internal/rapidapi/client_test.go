package rapidapi

import (
	"net/http"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	client, err := New("key-abc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if client.apiKey != "key-abc" {
		t.Errorf("expected API key key-abc, got %s", client.apiKey)
	}

	if client.host != DefaultHost {
		t.Errorf("expected host %s, got %s", DefaultHost, client.host)
	}

	if client.baseURL != DefaultBaseURL {
		t.Errorf("expected base URL %s, got %s", DefaultBaseURL, client.baseURL)
	}

	if client.httpClient == nil {
		t.Fatal("expected default HTTP client to be set")
	}
}

func TestNew_MissingAPIKey(t *testing.T) {
	_, err := New("")
	if err == nil {
		t.Fatal("expected error for missing API key")
	}

	if err != ErrMissingAPIKey {
		t.Errorf("expected ErrMissingAPIKey, got %v", err)
	}
}

func TestNew_WithHTTPClient(t *testing.T) {
	customClient := &http.Client{Timeout: 5 * time.Second}

	client, err := New("key-abc", WithHTTPClient(customClient))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if client.httpClient != customClient {
		t.Error("expected custom HTTP client to be set")
	}
}

func TestNew_WithNilHTTPClient(t *testing.T) {
	client, err := New("key-abc", WithHTTPClient(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if client.httpClient == nil {
		t.Fatal("expected default HTTP client to remain when nil is passed")
	}
}

func TestNew_WithHostAndBaseURL(t *testing.T) {
	client, err := New("key-abc", WithHost("scanner.example.com"), WithBaseURL("http://localhost:9999/api/v1"), WithHost(""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if client.host != "scanner.example.com" {
		t.Errorf("expected host scanner.example.com, got %s", client.host)
	}

	if got := client.apiURL("scan"); got != "http://localhost:9999/api/v1/scan" {
		t.Errorf("expected http://localhost:9999/api/v1/scan, got %s", got)
	}
}

func TestJobPath(t *testing.T) {
	if got := jobPath("abc-123", "status"); got != "scan/abc-123/status" {
		t.Errorf("expected scan/abc-123/status, got %s", got)
	}

	if got := jobPath("a/b"); got != "scan/a%2Fb" {
		t.Errorf("expected escaped job ID, got %s", got)
	}
}

func TestJobStatus(t *testing.T) {
	testCases := []struct {
		status     JobStatus
		inProgress bool
		completed  bool
	}{
		{StatusPending, true, false},
		{StatusRunning, true, false},
		{StatusCompleted, false, true},
		{StatusFailed, false, false},
		{JobStatus("ABORTED"), false, false},
		{JobStatus(""), false, false},
	}

	for _, tc := range testCases {
		t.Run(string(tc.status), func(t *testing.T) {
			if tc.status.InProgress() != tc.inProgress {
				t.Errorf("InProgress(%q): expected %v", tc.status, tc.inProgress)
			}

			if tc.status.Completed() != tc.completed {
				t.Errorf("Completed(%q): expected %v", tc.status, tc.completed)
			}
		})
	}
}
