package clients

import (
	"strings"
	"time"
)

const (
	TypeAll         = "all"
	TypeResidential = "residential"
	TypeCommercial  = "commercial"
)

// Filter narrows the client list for a campaign. Zero values mean "no
// restriction" for every field.
type Filter struct {
	ClientType    string   `json:"clientType"`
	County        string   `json:"county"`
	Tags          []string `json:"tags"`
	CreatedAfter  string   `json:"createdAfter"`
	CreatedBefore string   `json:"createdBefore"`
}

// FilterClients applies every predicate as a logical AND, preserving input
// order. A client with an unparseable createdOn date is excluded whenever a
// date-range bound is active.
func FilterClients(list []Client, f Filter) []Client {
	matched := make([]Client, 0, len(list))
	for _, c := range list {
		if matches(c, f) {
			matched = append(matched, c)
		}
	}
	return matched
}

func matches(c Client, f Filter) bool {
	// Campaigns are delivered by email, so anyone without an address is out
	if strings.TrimSpace(c.Email) == "" {
		return false
	}

	switch f.ClientType {
	case TypeResidential:
		if !c.Tags.Has("Residential") {
			return false
		}
	case TypeCommercial:
		if !c.Tags.Has("Commercial") {
			return false
		}
	}

	if f.County != "" && f.County != TypeAll && c.County != f.County {
		return false
	}

	if len(f.Tags) > 0 {
		anyMatch := false
		for _, want := range f.Tags {
			if c.Tags.Has(strings.TrimSpace(want)) {
				anyMatch = true
				break
			}
		}
		if !anyMatch {
			return false
		}
	}

	if f.CreatedAfter != "" || f.CreatedBefore != "" {
		created, ok := c.CreatedAt()
		if !ok {
			return false
		}
		if f.CreatedAfter != "" {
			after, err := parseBound(f.CreatedAfter)
			if err != nil || created.Before(after) {
				return false
			}
		}
		if f.CreatedBefore != "" {
			before, err := parseBound(f.CreatedBefore)
			if err != nil || created.After(before) {
				return false
			}
		}
	}

	return true
}

func parseBound(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
