// Package scryfall fetches bulk card snapshots from the Scryfall bulk-data api
//
// The exchange is two steps: GET the bulk-data index, pick the descriptor
// whose type tag matches the requested variant, then GET its download_uri.
// Reference https://scryfall.com/docs/api/bulk-data
package scryfall

import (
	"fmt"
	"time"

	perr "packrat/internal/platform/errors"
)

// BulkDataType restricts the snapshot variants that can be requested
type BulkDataType string

const (
	// Oracle is one card object per Oracle ID, the most recognizable printing
	Oracle BulkDataType = "oracle_cards"

	// UniqueArtwork is one card object per unique artwork
	UniqueArtwork BulkDataType = "unique_artwork"

	// DefaultCards is every card object in English or the printed language
	DefaultCards BulkDataType = "default_cards"

	// AllCards is every card object in every language
	AllCards BulkDataType = "all_cards"

	// Rulings is every ruling, keyed by oracle_id
	Rulings BulkDataType = "rulings"
)

// ParseBulkDataType validates a user supplied variant tag
func ParseBulkDataType(s string) (BulkDataType, error) {
	switch BulkDataType(s) {
	case Oracle, UniqueArtwork, DefaultCards, AllCards, Rulings:
		return BulkDataType(s), nil
	}
	return "", perr.InvalidArgf("unknown bulk data type %q", s)
}

// String returns the upstream type tag
func (t BulkDataType) String() string { return string(t) }

// BulkIndex is the metadata document listing the available bulk files
type BulkIndex struct {
	Data []BulkDescriptor `json:"data"`
}

// BulkDescriptor is one entry of the index; only the fields the pipeline
// needs are decoded
type BulkDescriptor struct {
	Type        string    `json:"type"`
	DownloadURI string    `json:"download_uri"`
	UpdatedAt   time.Time `json:"updated_at"`
	Size        int64     `json:"size"`
}

// SnapshotName builds the dated on-disk file name for a snapshot,
// <YYYYMMDD>_<data-type>_scryfall.json
func SnapshotName(t BulkDataType, day time.Time) string {
	return fmt.Sprintf("%s_%s_scryfall.json", day.Format("20060102"), t)
}
