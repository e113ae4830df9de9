package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/theopenlane/rapidrecon/config"
	"github.com/theopenlane/rapidrecon/internal/rapidapi"
	"github.com/theopenlane/rapidrecon/internal/recon"
	"github.com/theopenlane/rapidrecon/internal/render"
	"github.com/theopenlane/rapidrecon/internal/slack"
	"github.com/theopenlane/rapidrecon/internal/tui"
)

// ErrScanFailed is returned after the failure message was shown to the operator
var ErrScanFailed = errors.New("scan failed")

// scanCmd is the cobra command that runs one scan and prints the results
var scanCmd = &cobra.Command{
	Use:   "scan [domain]",
	Short: "submit a domain to the subdomain scanner and print the results",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		err := scan(cmd.Context(), cmd.OutOrStdout(), cmd.Flags(), args)
		cobra.CheckErr(err)
	},
}

// init registers the scan command and its flags on the root command
func init() {
	rootCmd.AddCommand(scanCmd)
	registerScanFlags(scanCmd.Flags())
}

// registerScanFlags adds the scan flags to flags
func registerScanFlags(flags *pflag.FlagSet) {
	flags.String("config", config.DefaultConfigFilePath, "config file location")
	flags.String("api-key", "", "RapidAPI key, overrides config and environment")
	flags.String("domain", "", "target domain")
	flags.BoolP("interactive", "i", false, "prompt for missing input and show a cancellable progress view")
	flags.Bool("strict", false, "validate the domain syntax locally before submitting")
	flags.StringP("output", "o", "", "output format: table, json or csv")
	flags.String("out-file", "", "write results to a file instead of stdout")
	flags.Duration("poll-interval", 0, "delay between status polls")
	flags.Duration("poll-timeout", 0, "give up polling after this long, 0 disables the limit")
}

// scan collects input, runs the orchestrator and renders the outcome
func scan(ctx context.Context, out io.Writer, flags *pflag.FlagSet, args []string) error {
	cfgPath := k.String("config")

	cfg, err := config.Load(&cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	applyScanFlags(cfg, flags)

	format, err := render.ParseFormat(cfg.Scan.Output)
	if err != nil {
		return err
	}

	target := k.String("domain")
	if target == "" && len(args) > 0 {
		target = args[0]
	}

	req := recon.NewRequest(cfg.RapidAPI.APIKey, target)
	interactive := k.Bool("interactive")

	if interactive {
		req, err = tui.Collect(ctx, req)
		if errors.Is(err, tui.ErrInputCancelled) {
			fmt.Fprintln(out, recon.MsgCancelled)

			return nil
		}

		if err != nil {
			return err
		}
	}

	var outcome *recon.Outcome

	if interactive {
		runner, err := newRunner(cfg)
		if err != nil {
			return err
		}

		outcome, err = tui.Watch(ctx, runner, req)
		if err != nil {
			return reportFailure(out, err)
		}
	} else {
		runner, err := newRunner(cfg, recon.WithObserver(recon.LogObserver(log.Logger)))
		if err != nil {
			return err
		}

		outcome, err = runner.Run(ctx, req)
		if err != nil {
			return reportFailure(out, err)
		}
	}

	report := render.NewReport(outcome)

	if cfg.Scan.OutFile != "" {
		if err := render.WriteFile(cfg.Scan.OutFile, format, report); err != nil {
			return err
		}

		log.Info().Str("file", cfg.Scan.OutFile).Int("rows", len(report.Rows)).Msg("scan results written")
	} else if err := render.Write(out, format, report); err != nil {
		return err
	}

	recon.Notify(ctx, setupSlack(cfg), outcome)

	return nil
}

// applyScanFlags lets flags set on the command line override config and environment
func applyScanFlags(cfg *config.Config, flags *pflag.FlagSet) {
	if flags.Changed("api-key") {
		cfg.RapidAPI.APIKey = k.String("api-key")
	}

	if flags.Changed("output") {
		cfg.Scan.Output = k.String("output")
	}

	if flags.Changed("out-file") {
		cfg.Scan.OutFile = k.String("out-file")
	}

	if flags.Changed("poll-interval") {
		cfg.Scan.PollInterval = k.Duration("poll-interval")
	}

	if flags.Changed("poll-timeout") {
		cfg.Scan.PollTimeout = k.Duration("poll-timeout")
	}

	if flags.Changed("strict") {
		cfg.Scan.Strict = k.Bool("strict")
	}
}

// reportFailure shows the operator message and returns ErrScanFailed
func reportFailure(out io.Writer, err error) error {
	log.Debug().Err(err).Msg("scan did not complete")

	fmt.Fprintln(out, recon.Message(err))

	return ErrScanFailed
}

// newRunner builds the orchestrator from config
func newRunner(cfg *config.Config, opts ...recon.Option) (*recon.Runner, error) {
	clients := recon.RapidAPIClients(
		rapidapi.WithBaseURL(cfg.RapidAPI.BaseURL),
		rapidapi.WithHost(cfg.RapidAPI.Host),
		rapidapi.WithHTTPClient(&http.Client{Timeout: cfg.RapidAPI.RequestTimeout}),
	)

	opts = append([]recon.Option{
		recon.WithPollInterval(cfg.Scan.PollInterval),
		recon.WithPollTimeout(cfg.Scan.PollTimeout),
		recon.WithStrictDomain(cfg.Scan.Strict),
	}, opts...)

	return recon.NewRunner(clients, opts...)
}

// setupSlack initializes the Slack webhook client from config, returning nil when unconfigured
func setupSlack(cfg *config.Config) recon.Notifier {
	if cfg.Slack.WebhookURL == "" {
		log.Debug().Msg("slack notifications not configured, skipping")
		return nil
	}

	client, err := slack.New(
		cfg.Slack.WebhookURL,
		slack.WithHTTPClient(&http.Client{Timeout: cfg.Slack.RequestTimeout}),
	)
	if err != nil {
		log.Warn().Err(err).Msg("failed to initialize slack client")
		return nil
	}

	return client
}
