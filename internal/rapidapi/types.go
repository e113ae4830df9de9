package rapidapi

// JobStatus is the remote state of a scan job
type JobStatus string

const (
	// StatusPending means the job is queued on the remote service
	StatusPending JobStatus = "PENDING"
	// StatusRunning means the job is being executed
	StatusRunning JobStatus = "RUNNING"
	// StatusCompleted means the results are ready to fetch
	StatusCompleted JobStatus = "COMPLETED"
	// StatusFailed is the failure status reported by the service; any unknown status is treated the same way
	StatusFailed JobStatus = "FAILED"
)

// InProgress reports whether polling should continue
func (s JobStatus) InProgress() bool {
	return s == StatusPending || s == StatusRunning
}

// Completed reports whether results can be fetched
func (s JobStatus) Completed() bool {
	return s == StatusCompleted
}

// ScanRequest is the body of a scan submission
type ScanRequest struct {
	Domain string `json:"domain"`
}

// JobHandle identifies a submitted scan job
type JobHandle struct {
	JobID string `json:"jobId"`
}

// jobStatusData is the data payload of the status endpoint
type jobStatusData struct {
	Status JobStatus `json:"status"`
}

// envelope is the {"data": ...} wrapper used by every scanner API response
type envelope[T any] struct {
	Data T `json:"data"`
}

// Summary holds the aggregate counters of a finished scan
type Summary struct {
	TotalSubdomains int `json:"totalSubdomains"`
	AliveSubdomains int `json:"aliveSubdomains"`
}

// ScanResult is the full payload of a completed scan
type ScanResult struct {
	// ScanDurationMs is the remote scan duration in milliseconds
	ScanDurationMs float64 `json:"scanDurationMs"`
	// Summary holds the discovered and alive counts
	Summary Summary `json:"summary"`
	// Subdomains holds one record per discovered host in server order
	Subdomains []SubdomainRecord `json:"subdomains"`
}

// SubdomainRecord describes one discovered host; every field may be absent
type SubdomainRecord struct {
	Subdomain    *string  `json:"subdomain,omitempty"`
	Alive        bool     `json:"alive,omitempty"`
	HTTPStatus   *int     `json:"httpStatus,omitempty"`
	IPAddresses  []string `json:"ipAddresses,omitempty"`
	OpenPorts    []int    `json:"openPorts,omitempty"`
	Title        *string  `json:"title,omitempty"`
	CNAME        *string  `json:"cname,omitempty"`
	IsCDN        bool     `json:"isCdn,omitempty"`
	CDNProvider  *string  `json:"cdnProvider,omitempty"`
	ServerHeader *string  `json:"serverHeader,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
}
