package catalog

import (
	"sort"
	"strings"

	perr "packrat/internal/platform/errors"
)

// Aggregate reduces one snapshot of normalized prints to a single Entry per
// distinct name. Grouping is exact string equality on Name; every other
// column becomes the sorted set union of the group's values with empty
// contributions omitted, so one print's missing rarity does not pollute a
// group where a sibling supplies it
//
// Entries come back sorted by name so a run's output is deterministic
func Aggregate(prints []Print) ([]Entry, error) {
	groups := make(map[string]*columnSets)
	for _, p := range prints {
		if p.Name == "" {
			// normalized input should never carry an empty name; treat it as
			// corruption rather than folding the record into a junk group
			return nil, perr.WithField(perr.Validationf("print record has no name"), "name")
		}
		g := groups[p.Name]
		if g == nil {
			g = newColumnSets()
			groups[p.Name] = g
		}
		g.add(p)
	}

	out := make([]Entry, 0, len(groups))
	for name, g := range groups {
		out = append(out, g.entry(name))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// columnSets accumulates the distinct values seen per column for one name
type columnSets struct {
	setName  map[string]struct{}
	rarity   map[string]struct{}
	colors   map[string]struct{}
	cmc      map[string]struct{}
	typeLine map[string]struct{}
}

func newColumnSets() *columnSets {
	return &columnSets{
		setName:  make(map[string]struct{}),
		rarity:   make(map[string]struct{}),
		colors:   make(map[string]struct{}),
		cmc:      make(map[string]struct{}),
		typeLine: make(map[string]struct{}),
	}
}

func (g *columnSets) add(p Print) {
	g.setName[p.SetName] = struct{}{}
	g.rarity[p.Rarity] = struct{}{}
	g.colors[p.Colors] = struct{}{}
	g.cmc[p.CMC] = struct{}{}
	g.typeLine[p.TypeLine] = struct{}{}
}

func (g *columnSets) entry(name string) Entry {
	return Entry{
		Name:     name,
		SetName:  joinSet(g.setName),
		Rarity:   joinSet(g.rarity),
		Colors:   joinSet(g.colors),
		CMC:      joinSet(g.cmc),
		TypeLine: joinSet(g.typeLine),
	}
}

// joinSet renders a value set as a sorted comma-and-space join, skipping the
// empty string. A set whose every member is empty renders as ""
func joinSet(set map[string]struct{}) string {
	vals := make([]string, 0, len(set))
	for v := range set {
		if v == "" {
			continue
		}
		vals = append(vals, v)
	}
	sort.Strings(vals)
	return strings.Join(vals, ", ")
}
