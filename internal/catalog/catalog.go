// Package catalog holds the list of selectable locations.
package catalog

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// DefaultLocations is the built-in location list.
var DefaultLocations = []string{
	"Agra",
	"Ahmedabad",
	"Amritsar",
	"Bengaluru",
	"Bhopal",
	"Bhubaneswar",
	"Chandigarh",
	"Chennai",
	"Coimbatore",
	"Dehradun",
	"Guwahati",
	"Hyderabad",
	"Indore",
	"Jaipur",
	"Kanpur",
	"Kochi",
	"Kolkata",
	"Lucknow",
	"Madurai",
	"Mangaluru",
	"Mumbai",
	"Mysuru",
	"Nagpur",
	"New Delhi",
	"Patna",
	"Puducherry",
	"Pune",
	"Raipur",
	"Ranchi",
	"Shimla",
	"Srinagar",
	"Surat",
	"Thiruvananthapuram",
	"Udaipur",
	"Varanasi",
	"Visakhapatnam",
}

// Catalog is a read-only list of location names.
type Catalog struct {
	names []string
}

// New builds a catalog from names, dropping blanks and duplicates. An empty
// input falls back to DefaultLocations.
func New(names []string) *Catalog {
	if len(names) == 0 {
		names = DefaultLocations
	}
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, name)
	}
	return &Catalog{names: out}
}

// Names returns a copy of the location names in catalog order.
func (c *Catalog) Names() []string {
	return append([]string(nil), c.names...)
}

// Len returns the number of locations.
func (c *Catalog) Len() int {
	return len(c.names)
}

// Index returns the position of name, matched case-insensitively, or -1.
func (c *Catalog) Index(name string) int {
	for i, n := range c.names {
		if strings.EqualFold(n, name) {
			return i
		}
	}
	return -1
}

// Closest returns the catalog entry nearest to query by edit distance.
// Matches further than a third of the query length are rejected.
func (c *Catalog) Closest(query string) (string, bool) {
	query = strings.TrimSpace(query)
	if query == "" || len(c.names) == 0 {
		return "", false
	}
	if i := c.Index(query); i >= 0 {
		return c.names[i], true
	}
	lower := strings.ToLower(query)
	best := ""
	bestDist := -1
	for _, name := range c.names {
		dist := levenshtein.ComputeDistance(lower, strings.ToLower(name))
		if bestDist == -1 || dist < bestDist {
			best = name
			bestDist = dist
		}
	}
	limit := len([]rune(query)) / 3
	if limit < 1 {
		limit = 1
	}
	if bestDist > limit {
		return "", false
	}
	return best, true
}

// Resolve maps free text to a catalog entry when one is close enough and
// otherwise returns the trimmed input unchanged.
func (c *Catalog) Resolve(query string) string {
	if name, ok := c.Closest(query); ok {
		return name
	}
	return strings.TrimSpace(query)
}
