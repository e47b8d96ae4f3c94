package catalog

import (
	"sort"
	"strconv"
	"strings"

	perr "packrat/internal/platform/errors"
)

// FlattenColors collapses the nested per-face color lists into one
// deduplicated, lexicographically sorted, comma-and-space joined string
//
//	[["R", "G"], ["R", "B"]] -> "B, G, R"
//
// A nil or empty outer list maps to "". Empty inner values are dropped
func FlattenColors(colors [][]string) string {
	if len(colors) == 0 {
		return ""
	}
	seen := make(map[string]struct{})
	for _, face := range colors {
		for _, c := range face {
			c = strings.TrimSpace(c)
			if c == "" {
				continue
			}
			seen[c] = struct{}{}
		}
	}
	if len(seen) == 0 {
		return ""
	}
	out := make([]string, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Strings(out)
	return strings.Join(out, ", ")
}

// FormatCMC renders a nullable mana value as its integer decimal string
// Upstream delivers the value as a float but it is always integral in
// practice, so the fraction is truncated. A null maps to ""
func FormatCMC(cmc *float64) string {
	if cmc == nil {
		return ""
	}
	return strconv.FormatInt(int64(*cmc), 10)
}

// Normalize converts one raw Card into its canonical Print
// A missing or blank name is a data validation error: the record cannot be
// grouped, and silently dropping it would hide upstream corruption
func Normalize(c Card) (Print, error) {
	if strings.TrimSpace(c.Name) == "" {
		return Print{}, perr.WithField(perr.Validationf("print record has no name"), "name")
	}
	return Print{
		Name:     c.Name,
		SetName:  c.SetName,
		Rarity:   c.Rarity,
		Colors:   FlattenColors(c.Colors),
		CMC:      FormatCMC(c.CMC),
		TypeLine: c.TypeLine,
	}, nil
}

// NormalizeAll normalizes a full snapshot, failing on the first bad record
func NormalizeAll(cards []Card) ([]Print, error) {
	out := make([]Print, 0, len(cards))
	for i, c := range cards {
		p, err := Normalize(c)
		if err != nil {
			return nil, perr.WithOp(err, "record "+strconv.Itoa(i))
		}
		out = append(out, p)
	}
	return out, nil
}
