package recon

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/theopenlane/rapidrecon/internal/rapidapi"
	"github.com/theopenlane/rapidrecon/internal/slack"
)

// Notifier publishes a summary of a finished scan
type Notifier interface {
	NotifyScan(ctx context.Context, summary slack.ScanSummary) error
}

// Summary condenses an outcome for notification
func Summary(out *Outcome) slack.ScanSummary {
	summary := slack.ScanSummary{
		Domain: out.Domain,
		JobID:  out.JobID,
	}

	if out.Result == nil {
		return summary
	}

	summary.Duration = time.Duration(out.Result.ScanDurationMs * float64(time.Millisecond))
	summary.Total = out.Result.Summary.TotalSubdomains
	summary.Alive = out.Result.Summary.AliveSubdomains
	summary.AliveHosts = lo.FilterMap(out.Result.Subdomains, func(rec rapidapi.SubdomainRecord, _ int) (string, bool) {
		host := lo.FromPtr(rec.Subdomain)

		return host, rec.Alive && host != ""
	})

	return summary
}

// Notify sends the outcome summary; failures are logged and never returned
func Notify(ctx context.Context, n Notifier, out *Outcome) bool {
	if n == nil || out == nil {
		return false
	}

	if err := n.NotifyScan(ctx, Summary(out)); err != nil {
		log.Error().Err(err).Str("domain", out.Domain).Str("job_id", out.JobID).Msg("slack notification failed")

		return false
	}

	return true
}
