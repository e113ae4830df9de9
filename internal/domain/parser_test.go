package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name      string
		input     string
		wantDom   string
		wantSub   string
		wantTLD   string
		wantSLD   string
		wantError bool
	}{
		{
			name:    "simple domain",
			input:   "example.com",
			wantDom: "example.com",
			wantTLD: "com",
			wantSLD: "example",
		},
		{
			name:    "subdomain",
			input:   "www.example.com",
			wantDom: "www.example.com",
			wantSub: "www",
			wantTLD: "com",
			wantSLD: "example",
		},
		{
			name:    "nested subdomain",
			input:   "api.staging.example.com",
			wantDom: "api.staging.example.com",
			wantSub: "api.staging",
			wantTLD: "com",
			wantSLD: "example",
		},
		{
			name:    "subdomain with co.uk",
			input:   "www.example.co.uk",
			wantDom: "www.example.co.uk",
			wantSub: "www",
			wantTLD: "co.uk",
			wantSLD: "example",
		},
		{
			name:    "uppercase with trailing dot and spaces",
			input:   "  Tesla.COM. ",
			wantDom: "tesla.com",
			wantTLD: "com",
			wantSLD: "tesla",
		},
		{
			name:    "hyphenated label",
			input:   "my-site.io",
			wantDom: "my-site.io",
			wantTLD: "io",
			wantSLD: "my-site",
		},
		{name: "empty", input: "", wantError: true},
		{name: "single label", input: "localhost", wantError: true},
		{name: "underscore", input: "exa_mple.com", wantError: true},
		{name: "leading hyphen", input: "-bad.com", wantError: true},
		{name: "url with scheme", input: "https://example.com", wantError: true},
		{name: "host with port", input: "example.com:443", wantError: true},
		{name: "bare public suffix", input: "co.uk", wantError: true},
		{name: "unknown tld", input: "example.notarealtld", wantError: true},
		{name: "empty label", input: "www..example.com", wantError: true},
		{name: "label too long", input: strings.Repeat("a", 64) + ".com", wantError: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			info, err := Parse(tc.input)
			if tc.wantError {
				if err == nil {
					t.Fatalf("expected error for %q, got %+v", tc.input, info)
				}

				if !errors.Is(err, ErrInvalidDomainFormat) {
					t.Errorf("expected ErrInvalidDomainFormat, got %v", err)
				}

				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if info.Domain != tc.wantDom {
				t.Errorf("domain: expected %q, got %q", tc.wantDom, info.Domain)
			}

			if info.Subdomain != tc.wantSub {
				t.Errorf("subdomain: expected %q, got %q", tc.wantSub, info.Subdomain)
			}

			if info.TLD != tc.wantTLD {
				t.Errorf("tld: expected %q, got %q", tc.wantTLD, info.TLD)
			}

			if info.SLD != tc.wantSLD {
				t.Errorf("sld: expected %q, got %q", tc.wantSLD, info.SLD)
			}
		})
	}
}

func TestApex(t *testing.T) {
	info, err := Parse("shop.example.co.uk")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := info.Apex(); got != "example.co.uk" {
		t.Errorf("expected apex example.co.uk, got %s", got)
	}
}
