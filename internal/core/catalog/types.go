// Package catalog holds the pure normalize and aggregate logic that turns raw
// print records into one canonical entry per card name
// No I/O happens here; storage and fetching live in adapters and services
package catalog

// Card is one raw print record from a bulk snapshot
// Only the columns the catalog keeps are decoded; every other key in the
// upstream object is ignored. Absent fields arrive as zero values, so a null
// colors list and a missing colors key look the same by the time they get here
type Card struct {
	Name     string     `json:"name"`
	SetName  string     `json:"set_name"`
	Rarity   string     `json:"rarity"`
	Colors   [][]string `json:"colors"`
	CMC      *float64   `json:"cmc"`
	TypeLine string     `json:"type_line"`
}

// Print is a Card with every column collapsed to a canonical scalar string
// Colors becomes a sorted deduplicated comma join and CMC becomes the decimal
// integer string, or "" when null
type Print struct {
	Name     string
	SetName  string
	Rarity   string
	Colors   string
	CMC      string
	TypeLine string
}

// Entry is the aggregated catalog row for one distinct card name
// Every non-name column is the sorted set union of the values the group's
// prints supplied, excluding empty contributions
type Entry struct {
	Name     string
	SetName  string
	Rarity   string
	Colors   string
	CMC      string
	TypeLine string
}
