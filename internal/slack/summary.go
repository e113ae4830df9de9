package slack

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// ScanSummary is the subset of a finished scan posted to Slack
type ScanSummary struct {
	Domain     string
	JobID      string
	Duration   time.Duration
	Total      int
	Alive      int
	AliveHosts []string
}

// NotifyScan posts a Block Kit summary of a finished scan
func (c *Client) NotifyScan(ctx context.Context, summary ScanSummary) error {
	return c.Send(ctx, BuildScanMessage(summary, c.maxHosts))
}

// BuildScanMessage formats a scan summary, listing at most maxHosts alive hosts
func BuildScanMessage(summary ScanSummary, maxHosts int) Message {
	headerText := fmt.Sprintf("Subdomain scan: %s", summary.Domain)

	blocks := []Block{
		{
			Type: "header",
			Text: &TextObject{Type: "plain_text", Text: headerText},
		},
		{
			Type: "section",
			Fields: []TextObject{
				{Type: "mrkdwn", Text: fmt.Sprintf("*Discovered:*\n%d", summary.Total)},
				{Type: "mrkdwn", Text: fmt.Sprintf("*Alive:*\n%d", summary.Alive)},
				{Type: "mrkdwn", Text: fmt.Sprintf("*Duration:*\n%.1fs", summary.Duration.Seconds())},
				{Type: "mrkdwn", Text: fmt.Sprintf("*Job:*\n`%s`", summary.JobID)},
			},
		},
	}

	if len(summary.AliveHosts) > 0 {
		hosts := summary.AliveHosts
		more := 0

		if maxHosts > 0 && len(hosts) > maxHosts {
			more = len(hosts) - maxHosts
			hosts = hosts[:maxHosts]
		}

		text := "*Alive hosts:*\n• " + strings.Join(hosts, "\n• ")
		if more > 0 {
			text += fmt.Sprintf("\n_and %d more_", more)
		}

		blocks = append(blocks,
			Block{Type: "divider"},
			Block{Type: "section", Text: &TextObject{Type: "mrkdwn", Text: text}},
		)
	}

	return Message{
		Text:   fmt.Sprintf("%s: %d subdomains, %d alive", headerText, summary.Total, summary.Alive),
		Blocks: blocks,
	}
}
