package clients

import (
	"encoding/json"
	"strings"
	"time"
)

// Client is one record from the business's client list. The list started
// life as a spreadsheet export, so fields are loosely typed: tags may be a
// comma-joined string or a proper array, and createdOn is whatever the
// exporting tool produced.
type Client struct {
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Email     string  `json:"email"`
	Phone     string  `json:"phone"`
	County    string  `json:"county"`
	Tags      TagList `json:"tags"`
	CreatedOn string  `json:"createdOn"`
}

// TagList accepts both "Residential, VIP" and ["Residential", "VIP"] on the
// wire and normalizes to a trimmed slice.
type TagList []string

func (t *TagList) UnmarshalJSON(data []byte) error {
	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		*t = trimAll(arr)
		return nil
	}

	var joined string
	if err := json.Unmarshal(data, &joined); err != nil {
		return err
	}
	if joined == "" {
		*t = nil
		return nil
	}
	*t = trimAll(strings.Split(joined, ","))
	return nil
}

func (t TagList) MarshalJSON() ([]byte, error) {
	return json.Marshal([]string(t))
}

// Has reports whether the tag set contains an exact (case-sensitive) match.
func (t TagList) Has(tag string) bool {
	for _, existing := range t {
		if existing == tag {
			return true
		}
	}
	return false
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if trimmed := strings.TrimSpace(s); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// CreatedAt parses the createdOn field. The export format drifted over the
// years, so several layouts are tried in order.
func (c Client) CreatedAt() (time.Time, bool) {
	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02",
		"01/02/2006",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, c.CreatedOn); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
