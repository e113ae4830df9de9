package render

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theopenlane/rapidrecon/internal/rapidapi"
	"github.com/theopenlane/rapidrecon/internal/recon"
)

func exampleRecord() rapidapi.SubdomainRecord {
	return rapidapi.SubdomainRecord{
		Subdomain:    lo.ToPtr("www.example.com"),
		Alive:        true,
		HTTPStatus:   lo.ToPtr(200),
		IPAddresses:  []string{"1.2.3.4"},
		OpenPorts:    []int{80, 443},
		Title:        lo.ToPtr("Example"),
		CNAME:        nil,
		IsCDN:        false,
		Technologies: []string{"nginx"},
	}
}

func TestNewRow_Example(t *testing.T) {
	row := NewRow(exampleRecord())

	assert.Equal(t, Row{
		Subdomain: "www.example.com",
		State:     "Alive",
		HTTP:      "200",
		IPs:       "1.2.3.4",
		Ports:     "80, 443",
		Title:     "Example",
		CNAME:     "-",
		Tech:      "nginx",
	}, row)
}

func TestNewRow_EmptyRecord(t *testing.T) {
	row := NewRow(rapidapi.SubdomainRecord{})

	assert.Equal(t, StateDead, row.State)

	for i, v := range row.Fields() {
		if i == stateColumn {
			continue
		}

		assert.Equal(t, Placeholder, v, Headers[i])
	}
}

func TestNewRow_EmptyStrings(t *testing.T) {
	row := NewRow(rapidapi.SubdomainRecord{
		Subdomain:    lo.ToPtr(""),
		Title:        lo.ToPtr(""),
		CNAME:        lo.ToPtr(""),
		IPAddresses:  []string{},
		OpenPorts:    []int{},
		Technologies: []string{},
	})

	assert.Equal(t, Placeholder, row.Subdomain)
	assert.Equal(t, Placeholder, row.Title)
	assert.Equal(t, Placeholder, row.CNAME)
	assert.Equal(t, Placeholder, row.IPs)
	assert.Equal(t, Placeholder, row.Ports)
	assert.Equal(t, Placeholder, row.Tech)
}

func TestNewRow_MultipleValues(t *testing.T) {
	row := NewRow(rapidapi.SubdomainRecord{
		IPAddresses: []string{"1.2.3.4", "5.6.7.8"},
		OpenPorts:   []int{443, 8080, 22},
		CNAME:       lo.ToPtr("edge.example.net"),
	})

	assert.Equal(t, "1.2.3.4, 5.6.7.8", row.IPs)
	assert.Equal(t, "443, 8080, 22", row.Ports)
	assert.Equal(t, "edge.example.net", row.CNAME)
}

func TestTechColumn(t *testing.T) {
	testCases := []struct {
		name     string
		rec      rapidapi.SubdomainRecord
		expected string
	}{
		{
			name: "cdn server and technologies",
			rec: rapidapi.SubdomainRecord{
				IsCDN:        true,
				CDNProvider:  lo.ToPtr("Cloudflare"),
				ServerHeader: lo.ToPtr("cloudflare"),
				Technologies: []string{"React", "HSTS"},
			},
			expected: "CDN: Cloudflare | Server: cloudflare | React | HSTS",
		},
		{
			name: "provider without cdn flag",
			rec: rapidapi.SubdomainRecord{
				IsCDN:       false,
				CDNProvider: lo.ToPtr("Fastly"),
			},
			expected: "-",
		},
		{
			name: "cdn flag without provider",
			rec: rapidapi.SubdomainRecord{
				IsCDN:        true,
				ServerHeader: lo.ToPtr("nginx"),
			},
			expected: "Server: nginx",
		},
		{
			name:     "technologies only",
			rec:      rapidapi.SubdomainRecord{Technologies: []string{"nginx"}},
			expected: "nginx",
		},
		{
			name:     "nothing",
			rec:      rapidapi.SubdomainRecord{},
			expected: "-",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, NewRow(tc.rec).Tech)
		})
	}
}

func TestRows_PreservesOrder(t *testing.T) {
	result := &rapidapi.ScanResult{
		Subdomains: []rapidapi.SubdomainRecord{
			{Subdomain: lo.ToPtr("z.example.com")},
			{Subdomain: lo.ToPtr("a.example.com"), Alive: true},
			{Subdomain: lo.ToPtr("m.example.com")},
		},
	}

	rows := Rows(result)
	require.Len(t, rows, 3)

	assert.Equal(t, "z.example.com", rows[0].Subdomain)
	assert.Equal(t, "a.example.com", rows[1].Subdomain)
	assert.Equal(t, "m.example.com", rows[2].Subdomain)
	assert.Equal(t, []string{StateDead, StateAlive, StateDead}, []string{rows[0].State, rows[1].State, rows[2].State})
}

func TestRows_Nil(t *testing.T) {
	assert.NotNil(t, Rows(nil))
	assert.Empty(t, Rows(nil))
}

func TestNewReport(t *testing.T) {
	report := NewReport(&recon.Outcome{
		Domain: "example.com",
		JobID:  "abc",
		Result: &rapidapi.ScanResult{
			ScanDurationMs: 41234,
			Summary:        rapidapi.Summary{TotalSubdomains: 4, AliveSubdomains: 1},
			Subdomains:     []rapidapi.SubdomainRecord{exampleRecord()},
		},
	})

	assert.Equal(t, "example.com", report.Domain)
	assert.Equal(t, "abc", report.JobID)
	assert.InDelta(t, 41.234, report.DurationSeconds, 0.0001)
	assert.Equal(t, 4, report.Total)
	assert.Equal(t, 1, report.Alive)
	assert.Len(t, report.Rows, 1)

	empty := NewReport(nil)
	assert.NotNil(t, empty.Rows)
}
