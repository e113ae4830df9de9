package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theopenlane/rapidrecon/config"
	"github.com/theopenlane/rapidrecon/internal/recon"
	"github.com/theopenlane/rapidrecon/internal/render"
)

// newScanFlags parses args into a fresh scan flag set and loads it into k the way the root command does
func newScanFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()

	flags := pflag.NewFlagSet("scan", pflag.ContinueOnError)
	registerScanFlags(flags)
	require.NoError(t, flags.Parse(args))

	k = koanf.New(".")
	require.NoError(t, k.Load(posflag.Provider(flags, k.Delim(), k), nil))

	return flags
}

// scannerAPI fakes the remote scanner, accepting only flag-key, and points the config at it
func scannerAPI(t *testing.T) *atomic.Int32 {
	t.Helper()

	var submits atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost:
			submits.Add(1)

			if r.Header.Get("X-RapidAPI-Key") != "flag-key" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			w.WriteHeader(http.StatusAccepted)
			_, _ = w.Write([]byte(`{"data":{"jobId":"job-1"}}`))
		case strings.HasSuffix(r.URL.Path, "/status"):
			_, _ = w.Write([]byte(`{"data":{"status":"COMPLETED"}}`))
		default:
			_, _ = w.Write([]byte(`{"data":{"scanDurationMs":900,"summary":{"totalSubdomains":1,"aliveSubdomains":1},
				"subdomains":[{"subdomain":"www.example.com","alive":true,"httpStatus":200,"openPorts":[443]}]}}`))
		}
	}))
	t.Cleanup(server.Close)

	t.Setenv("RAPIDRECON_RAPIDAPI_BASEURL", server.URL)
	t.Setenv("RAPIDRECON_RAPIDAPI_APIKEY", "")
	t.Setenv("RAPIDRECON_SLACK_WEBHOOKURL", "")

	return &submits
}

func missingConfig(t *testing.T) string {
	t.Helper()

	return "--config=" + filepath.Join(t.TempDir(), "missing.yaml")
}

func TestApplyScanFlags(t *testing.T) {
	base := func() *config.Config {
		return &config.Config{
			RapidAPI: config.RapidAPI{APIKey: "config-key"},
			Scan: config.Scan{
				PollInterval: 5 * time.Second,
				PollTimeout:  10 * time.Minute,
				Output:       "table",
				Strict:       true,
			},
		}
	}

	tests := []struct {
		name string
		args []string
		want func(cfg *config.Config)
	}{
		{
			name: "no flags keep config",
			want: func(*config.Config) {},
		},
		{
			name: "strings override",
			args: []string{"--api-key", "flag-key", "-o", "json", "--out-file", "out.json"},
			want: func(cfg *config.Config) {
				cfg.RapidAPI.APIKey = "flag-key"
				cfg.Scan.Output = "json"
				cfg.Scan.OutFile = "out.json"
			},
		},
		{
			name: "zero poll timeout disables the limit",
			args: []string{"--poll-timeout", "0"},
			want: func(cfg *config.Config) {
				cfg.Scan.PollTimeout = 0
			},
		},
		{
			name: "poll interval",
			args: []string{"--poll-interval", "250ms"},
			want: func(cfg *config.Config) {
				cfg.Scan.PollInterval = 250 * time.Millisecond
			},
		},
		{
			name: "strict can be turned off",
			args: []string{"--strict=false"},
			want: func(cfg *config.Config) {
				cfg.Scan.Strict = false
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			flags := newScanFlags(t, tc.args...)

			got := base()
			applyScanFlags(got, flags)

			want := base()
			tc.want(want)

			assert.Equal(t, want, got)
		})
	}
}

func TestScan_WritesResults(t *testing.T) {
	submits := scannerAPI(t)

	flags := newScanFlags(t, missingConfig(t), "--api-key", "flag-key", "--poll-interval", "1ms", "-o", "json")

	var out bytes.Buffer

	require.NoError(t, scan(context.Background(), &out, flags, []string{"example.com"}))
	assert.Equal(t, int32(1), submits.Load())

	var report render.Report

	require.NoError(t, json.Unmarshal(out.Bytes(), &report))
	assert.Equal(t, "example.com", report.Domain)
	assert.Equal(t, "job-1", report.JobID)
	require.Len(t, report.Rows, 1)
	assert.Equal(t, "www.example.com", report.Rows[0].Subdomain)
	assert.Equal(t, "443", report.Rows[0].Ports)
}

func TestScan_WritesOutFile(t *testing.T) {
	scannerAPI(t)

	path := filepath.Join(t.TempDir(), "results.csv")
	flags := newScanFlags(t, missingConfig(t), "--api-key", "flag-key", "--domain", "example.com",
		"--poll-interval", "1ms", "-o", "csv", "--out-file", path)

	var out bytes.Buffer

	require.NoError(t, scan(context.Background(), &out, flags, nil))
	assert.Empty(t, out.String())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "www.example.com,Alive,200")
}

func TestScan_Failures(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		wantMessage string
		wantSubmits int32
	}{
		{
			name:        "rejected key",
			args:        []string{"--api-key", "wrong-key", "--domain", "example.com"},
			wantMessage: recon.MsgUnauthorized,
			wantSubmits: 1,
		},
		{
			name:        "missing key",
			args:        []string{"--domain", "example.com"},
			wantMessage: recon.MsgMissingInput,
		},
		{
			name:        "missing domain",
			args:        []string{"--api-key", "flag-key"},
			wantMessage: recon.MsgMissingInput,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			submits := scannerAPI(t)

			flags := newScanFlags(t, append([]string{missingConfig(t)}, tc.args...)...)

			var out bytes.Buffer

			err := scan(context.Background(), &out, flags, nil)
			require.ErrorIs(t, err, ErrScanFailed)

			assert.Equal(t, tc.wantMessage+"\n", out.String())
			assert.Equal(t, tc.wantSubmits, submits.Load())
		})
	}
}

func TestScan_UnknownFormat(t *testing.T) {
	submits := scannerAPI(t)

	flags := newScanFlags(t, missingConfig(t), "--api-key", "flag-key", "-o", "xml", "example.com")

	err := scan(context.Background(), &bytes.Buffer{}, flags, flags.Args())
	require.ErrorIs(t, err, render.ErrUnknownFormat)
	assert.Zero(t, submits.Load())
}

func TestReportFailure(t *testing.T) {
	var out bytes.Buffer

	err := reportFailure(&out, recon.ErrMissingInput)
	require.ErrorIs(t, err, ErrScanFailed)
	assert.Equal(t, recon.MsgMissingInput+"\n", out.String())
}
