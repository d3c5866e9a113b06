package clients

import "strings"

// Stats summarizes the client list for the campaign dashboard.
type Stats struct {
	TotalClients int            `json:"total_clients"`
	WithEmail    int            `json:"with_email"`
	WithPhone    int            `json:"with_phone"`
	ByCounty     map[string]int `json:"by_county"`
	ByType       map[string]int `json:"by_type"`
}

func ComputeStats(list []Client) Stats {
	stats := Stats{
		TotalClients: len(list),
		ByCounty:     make(map[string]int),
		ByType:       make(map[string]int),
	}

	for _, c := range list {
		if strings.TrimSpace(c.Email) != "" {
			stats.WithEmail++
		}
		if strings.TrimSpace(c.Phone) != "" {
			stats.WithPhone++
		}
		if c.County != "" {
			stats.ByCounty[c.County]++
		}
		if c.Tags.Has("Residential") {
			stats.ByType[TypeResidential]++
		}
		if c.Tags.Has("Commercial") {
			stats.ByType[TypeCommercial]++
		}
	}

	return stats
}
