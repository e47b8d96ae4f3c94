// Package domain defines the types and interfaces for the catalog service
package domain

import "time"

// Row is the persisted catalog row: one aggregated entry per card name plus
// the deck column that deck tooling maintains out of band
type Row struct {
	Name     string `json:"name"`
	SetName  string `json:"set_name"`
	Rarity   string `json:"rarity"`
	Colors   string `json:"colors"`
	CMC      string `json:"cmc"`
	TypeLine string `json:"type_line"`
	Deck     string `json:"deck"`
}

// Run is one sync run's bookkeeping record
type Run struct {
	ID           string     `json:"id"`
	DataType     string     `json:"data_type"`
	SnapshotFile string     `json:"snapshot_file"`
	Prints       int        `json:"prints"`
	Cards        int        `json:"cards"`
	Status       string     `json:"status"` // running | ok | error
	Error        string     `json:"error,omitempty"`
	StartedAt    time.Time  `json:"started_at"`
	FinishedAt   *time.Time `json:"finished_at,omitempty"`
}

// Run statuses
const (
	RunStatusRunning = "running"
	RunStatusOK      = "ok"
	RunStatusError   = "error"
)

// SyncRequest describes one pipeline invocation
// When SnapshotPath is set the download is skipped and the file is reused,
// mirroring how a rerun on the same day picks up the dated snapshot
type SyncRequest struct {
	DataType     string
	SnapshotPath string
}

// Summary reports what one sync run did
type Summary struct {
	RunID        string
	SnapshotPath string
	Prints       int
	Cards        int
}
