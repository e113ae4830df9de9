package domain

import (
	"fmt"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// maxLabelLength is the DNS limit for a single label
const maxLabelLength = 63

// Info contains parsed domain information
type Info struct {
	Domain    string `json:"domain"`
	Subdomain string `json:"subdomain,omitempty"`
	TLD       string `json:"tld"`
	SLD       string `json:"sld"`
}

// Apex returns the registrable domain (sld.tld)
func (i *Info) Apex() string {
	return i.SLD + "." + i.TLD
}

// Parse validates a bare hostname and splits it on its public suffix
func Parse(input string) (*Info, error) {
	input = strings.TrimSuffix(strings.ToLower(strings.TrimSpace(input)), ".")

	if input == "" || !strings.Contains(input, ".") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDomainFormat, input)
	}

	for _, label := range strings.Split(input, ".") {
		if !validLabel(label) {
			return nil, fmt.Errorf("%w: bad label %q", ErrInvalidDomainFormat, label)
		}
	}

	etld1, err := publicsuffix.EffectiveTLDPlusOne(input)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDomainFormat, err)
	}

	tld, icann := publicsuffix.PublicSuffix(input)
	if !icann && !strings.Contains(tld, ".") {
		return nil, fmt.Errorf("%w: unknown suffix %q", ErrInvalidDomainFormat, tld)
	}

	subdomain := ""
	if etld1 != input {
		subdomain = strings.TrimSuffix(input, "."+etld1)
	}

	return &Info{
		Domain:    input,
		Subdomain: subdomain,
		TLD:       tld,
		SLD:       strings.TrimSuffix(etld1, "."+tld),
	}, nil
}

// validLabel checks letters, digits and inner hyphens within the DNS length limit
func validLabel(label string) bool {
	if label == "" || len(label) > maxLabelLength {
		return false
	}

	if label[0] == '-' || label[len(label)-1] == '-' {
		return false
	}

	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
		default:
			return false
		}
	}

	return true
}
