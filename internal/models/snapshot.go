package models

import "time"

// TeamRef identifies one team discovered on the club landing page.
// It lives only for the duration of a single crawl.
type TeamRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// MatchLocator pairs the opaque match identifier found in a statistics link
// with the derived stats API URL. The API is never called by this system.
type MatchLocator struct {
	MatchID string `json:"match_id"`
	APIURL  string `json:"api_url"`
}

// TeamSnapshot is the sealed per-team result of one crawl: the classified
// team profile plus every match URL attributed to the club, in discovery
// order with duplicates removed.
type TeamSnapshot struct {
	Name     string   `json:"name"`
	Icon     string   `json:"icon"`
	Keywords []string `json:"keywords"`
	URLs     []string `json:"urls"`
}

// ClubSnapshot is the unit that gets diffed and persisted: every team with
// at least one attributed match, keyed by the classifier's stable team key.
type ClubSnapshot struct {
	Teams        map[string]TeamSnapshot `json:"teams"`
	TotalTeams   int                     `json:"total_teams"`
	TotalMatches int                     `json:"total_matches"`
	Season       string                  `json:"season"`
	ClubID       string                  `json:"club_id"`
	ProducedAt   time.Time               `json:"produced_at"`
}

// RecomputeTotals derives TotalTeams and TotalMatches from the team map.
func (s *ClubSnapshot) RecomputeTotals() {
	s.TotalTeams = len(s.Teams)
	s.TotalMatches = 0
	for _, team := range s.Teams {
		s.TotalMatches += len(team.URLs)
	}
}

// Metadata describes the persisted state around a snapshot.
type Metadata struct {
	LastUpdate   *time.Time `json:"last_update"`
	LastCheck    *time.Time `json:"last_check"`
	TotalTeams   int        `json:"total_teams"`
	TotalMatches int        `json:"total_matches"`
	Season       string     `json:"season"`
	ClubID       string     `json:"club_id"`
}

// HistoryEntry is one record of a successful save. The store keeps a
// bounded window of these, oldest evicted first.
type HistoryEntry struct {
	Timestamp    time.Time `json:"timestamp"`
	TotalTeams   int       `json:"total_teams"`
	TotalMatches int       `json:"total_matches"`
	Season       string    `json:"season"`
}
