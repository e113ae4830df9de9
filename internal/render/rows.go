package render

import (
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/theopenlane/rapidrecon/internal/rapidapi"
	"github.com/theopenlane/rapidrecon/internal/recon"
)

const (
	// Placeholder stands in for any absent or empty value
	Placeholder = "-"
	// StateAlive marks a record the scanner reported as reachable
	StateAlive = "Alive"
	// StateDead marks every other record
	StateDead = "Dead"
	// NoResultsMessage replaces the table when a scan found nothing
	NoResultsMessage = "no subdomains found for this target"

	listSeparator = ", "
	techSeparator = " | "
)

// Headers are the column titles in display order
var Headers = []string{"Subdomain", "State", "HTTP", "IP Addresses", "Ports", "Title", "CNAME Chain", "Tech & Server"}

// Row is one flattened subdomain record
type Row struct {
	Subdomain string `json:"subdomain"`
	State     string `json:"state"`
	HTTP      string `json:"http"`
	IPs       string `json:"ips"`
	Ports     string `json:"ports"`
	Title     string `json:"title"`
	CNAME     string `json:"cname"`
	Tech      string `json:"tech"`
}

// Fields returns the row values in Headers order
func (r Row) Fields() []string {
	return []string{r.Subdomain, r.State, r.HTTP, r.IPs, r.Ports, r.Title, r.CNAME, r.Tech}
}

// Report is a rendered scan: summary counters plus rows in server order
type Report struct {
	Domain          string  `json:"domain"`
	JobID           string  `json:"jobId"`
	DurationSeconds float64 `json:"scanDurationSeconds"`
	Total           int     `json:"totalSubdomains"`
	Alive           int     `json:"aliveSubdomains"`
	Rows            []Row   `json:"rows"`
}

// NewReport flattens an orchestrator outcome
func NewReport(out *recon.Outcome) Report {
	report := Report{Rows: []Row{}}

	if out == nil {
		return report
	}

	report.Domain = out.Domain
	report.JobID = out.JobID

	if out.Result != nil {
		report.DurationSeconds = out.Result.ScanDurationMs / 1000
		report.Total = out.Result.Summary.TotalSubdomains
		report.Alive = out.Result.Summary.AliveSubdomains
		report.Rows = Rows(out.Result)
	}

	return report
}

// Rows flattens every subdomain record, keeping the order the server returned
func Rows(result *rapidapi.ScanResult) []Row {
	if result == nil {
		return []Row{}
	}

	return lo.Map(result.Subdomains, func(rec rapidapi.SubdomainRecord, _ int) Row {
		return NewRow(rec)
	})
}

// NewRow flattens a single record; nil and empty values become Placeholder
func NewRow(rec rapidapi.SubdomainRecord) Row {
	state := StateDead
	if rec.Alive {
		state = StateAlive
	}

	httpStatus := Placeholder
	if rec.HTTPStatus != nil {
		httpStatus = strconv.Itoa(*rec.HTTPStatus)
	}

	return Row{
		Subdomain: text(rec.Subdomain),
		State:     state,
		HTTP:      httpStatus,
		IPs:       join(rec.IPAddresses, listSeparator),
		Ports:     join(lo.Map(rec.OpenPorts, func(p int, _ int) string { return strconv.Itoa(p) }), listSeparator),
		Title:     text(rec.Title),
		CNAME:     text(rec.CNAME),
		Tech:      join(techList(rec), techSeparator),
	}
}

// techList orders CDN provider, server header and detected technologies
func techList(rec rapidapi.SubdomainRecord) []string {
	var tech []string

	if provider := lo.FromPtr(rec.CDNProvider); rec.IsCDN && provider != "" {
		tech = append(tech, "CDN: "+provider)
	}

	if server := lo.FromPtr(rec.ServerHeader); server != "" {
		tech = append(tech, "Server: "+server)
	}

	return append(tech, rec.Technologies...)
}

func text(s *string) string {
	if v := lo.FromPtr(s); v != "" {
		return v
	}

	return Placeholder
}

func join(items []string, sep string) string {
	if len(items) == 0 {
		return Placeholder
	}

	return strings.Join(items, sep)
}
