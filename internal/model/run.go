package model

import (
	"encoding/json"
	"time"
)

// Run is one scrape invocation.
// The pipeline steps fill it in order: the listing step sets Entries, the
// detail step appends Companies, the export step sets OutputPath and the
// archive step sets ArchiveID.
type Run struct {
	// ArchiveID is the database id once the run has been archived.
	ArchiveID int64 `json:"archive_id,omitempty"`

	// SourceURL is the listing page URL given on the command line.
	SourceURL string `json:"source_url"`

	// Industry labels the run and names the output file.
	Industry string `json:"industry"`

	// SnapshotPath is the local listing snapshot that was parsed.
	SnapshotPath string `json:"snapshot_path"`

	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at,omitzero"`

	// Entries are the listing anchors in document order.
	Entries []Entry `json:"-"`

	// Companies are the extracted records, one per entry, in entry order.
	Companies []Company `json:"companies"`

	// PageHashes maps a detail URL to the hash of the page it was parsed from.
	PageHashes map[string]string `json:"-"`

	// OutputPath is where the export was written.
	OutputPath string `json:"output_path,omitempty"`

	// PerformedSteps lists the pipeline steps that ran, in order.
	PerformedSteps []string `json:"performed_steps,omitempty"`

	// Err is the error that stopped the run, if any.
	Err error `json:"-"`
}

// NewRun creates a Run for the given listing and industry.
func NewRun(sourceURL, industry, snapshotPath string) *Run {
	return &Run{
		SourceURL:    sourceURL,
		Industry:     industry,
		SnapshotPath: snapshotPath,
		StartedAt:    time.Now(),
		Companies:    []Company{},
		PageHashes:   make(map[string]string),
	}
}

// AddCompany appends a record to the run.
func (r *Run) AddCompany(c Company) {
	r.Companies = append(r.Companies, c)
}

// CompanyCount returns the number of extracted records.
func (r *Run) CompanyCount() int {
	return len(r.Companies)
}

// Finish marks the run as finished now.
func (r *Run) Finish() {
	r.FinishedAt = time.Now()
}

// Duration returns how long the run took, or zero if it has not finished.
func (r *Run) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// CompanyByURL returns the record with the given detail URL.
func (r *Run) CompanyByURL(detailURL string) (Company, bool) {
	for _, c := range r.Companies {
		if c.DetailURL() == detailURL {
			return c, true
		}
	}
	return Company{}, false
}

// MarshalJSON adds the company count to the encoded run.
func (r *Run) MarshalJSON() ([]byte, error) {
	type alias Run
	return json.Marshal(struct {
		*alias
		CompanyCount int `json:"company_count"`
	}{
		alias:        (*alias)(r),
		CompanyCount: r.CompanyCount(),
	})
}
