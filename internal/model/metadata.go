package model

import (
	"encoding/json"
	"time"
)

// Metadata is the normalized registry snapshot for one package.
// Timestamps are UTC instants; a nil pointer means the field could not be
// derived from the upstream payload. Raw keeps the untouched upstream
// document for audit purposes; no evaluator reads it.
type Metadata struct {
	Name            string          `json:"name"`
	Ecosystem       Ecosystem       `json:"ecosystem"`
	LatestVersion   string          `json:"latest_version,omitempty"`
	LatestPublished *time.Time      `json:"latest_published,omitempty"`
	FirstPublished  *time.Time      `json:"first_published,omitempty"`
	Maintainers     []string        `json:"maintainers"`
	WeeklyDownloads *int            `json:"weekly_downloads,omitempty"`
	Homepage        string          `json:"homepage,omitempty"`
	RepositoryURL   string          `json:"repository_url,omitempty"`
	Raw             json.RawMessage `json:"raw,omitempty"`
}
