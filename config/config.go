package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/mcuadros/go-defaults"
)

const (
	// DefaultConfigFilePath is used when no config file is passed on the command line
	DefaultConfigFilePath = "./config/.config.yaml"
	// envPrefix is the prefix for all environment variable overrides
	envPrefix = "RAPIDRECON_"
	// delimiter separates nested koanf keys
	delimiter = "."
)

// Config holds the full rapidrecon configuration; config.example.yaml and .env.example are
// generated from it with `go run -tags generate ./jsonschema`
type Config struct {
	// RapidAPI holds settings for the remote subdomain scanner API
	RapidAPI RapidAPI `json:"rapidapi" koanf:"rapidapi"`
	// Scan holds settings for a single scan invocation
	Scan Scan `json:"scan" koanf:"scan"`
	// Server holds settings for the local API server
	Server Server `json:"server" koanf:"server"`
	// Slack holds settings for scan summary notifications
	Slack Slack `json:"slack" koanf:"slack"`
}

// RapidAPI configures the remote scanner client
type RapidAPI struct {
	// BaseURL is the root of the scanner API
	BaseURL string `json:"baseurl" koanf:"baseurl" default:"https://advanced-subdomain-scanner.p.rapidapi.com/api/v1"`
	// Host is sent as the X-RapidAPI-Host routing header
	Host string `json:"host" koanf:"host" default:"advanced-subdomain-scanner.p.rapidapi.com"`
	// APIKey is the RapidAPI subscription key
	APIKey string `json:"apikey" koanf:"apikey" sensitive:"true"`
	// RequestTimeout bounds each individual HTTP request
	RequestTimeout time.Duration `json:"requesttimeout" koanf:"requesttimeout" default:"30s"`
}

// Scan configures polling and output
type Scan struct {
	// PollInterval is the fixed delay between status polls
	PollInterval time.Duration `json:"pollinterval" koanf:"pollinterval" default:"5s"`
	// PollTimeout bounds the whole polling phase, zero disables the limit
	PollTimeout time.Duration `json:"polltimeout" koanf:"polltimeout" default:"10m"`
	// Output is the result format: table, json or csv
	Output string `json:"output" koanf:"output" default:"table"`
	// OutFile writes results to a file instead of stdout when set
	OutFile string `json:"outfile" koanf:"outfile"`
	// Strict enables local domain syntax validation before submitting
	Strict bool `json:"strict" koanf:"strict" default:"false"`
}

// Server configures the local API server
type Server struct {
	// Listen is the address the server binds to
	Listen string `json:"listen" koanf:"listen" default:":8080"`
	// ReadTimeout is the maximum duration for reading a request
	ReadTimeout time.Duration `json:"readtimeout" koanf:"readtimeout" default:"15s"`
	// WriteTimeout is the maximum duration for writing a response
	WriteTimeout time.Duration `json:"writetimeout" koanf:"writetimeout" default:"15s"`
	// ShutdownGracePeriod is how long in-flight requests get on shutdown
	ShutdownGracePeriod time.Duration `json:"shutdowngraceperiod" koanf:"shutdowngraceperiod" default:"10s"`
	// MaxBodySize limits request bodies in bytes
	MaxBodySize int64 `json:"maxbodysize" koanf:"maxbodysize" default:"1024"`
	// MaxConcurrent caps the number of scans running at once
	MaxConcurrent int `json:"maxconcurrent" koanf:"maxconcurrent" default:"2"`
	// JobTTL is how long finished jobs are kept before eviction
	JobTTL time.Duration `json:"jobttl" koanf:"jobttl" default:"1h"`
}

// Slack configures webhook notifications
type Slack struct {
	// WebhookURL is the incoming webhook URL, notifications are disabled when empty
	WebhookURL string `json:"webhookurl" koanf:"webhookurl" sensitive:"true"`
	// RequestTimeout bounds each webhook request
	RequestTimeout time.Duration `json:"requesttimeout" koanf:"requesttimeout" default:"10s"`
}

// Load builds the configuration from defaults, the optional YAML file and RAPIDRECON_ environment variables
func Load(cfgFile *string) (*Config, error) {
	k := koanf.New(delimiter)

	path := DefaultConfigFilePath
	if cfgFile != nil && *cfgFile != "" {
		path = *cfgFile
	}

	conf := &Config{}
	defaults.SetDefaults(conf)

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := k.Load(env.ProviderWithValue(envPrefix, delimiter, envKey), nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	if err := k.Unmarshal("", conf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigUnmarshal, err)
	}

	return conf, nil
}

// envKey maps RAPIDRECON_SCAN_POLLINTERVAL to scan.pollinterval
func envKey(key, value string) (string, any) {
	key = strings.ToLower(strings.TrimPrefix(key, envPrefix))

	return strings.ReplaceAll(key, "_", delimiter), value
}
