package models

import "time"

// ChangeKind distinguishes the modeled snapshot change types.
type ChangeKind string

const (
	// ChangeNewTeam means a team key appeared that the previous snapshot
	// did not contain.
	ChangeNewTeam ChangeKind = "new_team"
	// ChangeNewMatches means a known team gained match URLs.
	ChangeNewMatches ChangeKind = "new_matches"
)

// ChangeEntry describes one detected change for one team.
// Matches is only populated for ChangeNewMatches.
type ChangeEntry struct {
	Kind    ChangeKind `json:"type"`
	Team    string     `json:"team"`
	Count   int        `json:"count"`
	Matches []string   `json:"matches,omitempty"`
}

// ChangeReport is the result of diffing a freshly assembled snapshot
// against the previously persisted one. It is produced fresh on every
// diff and never persisted.
type ChangeReport struct {
	HasChanges bool          `json:"has_changes"`
	Changes    []ChangeEntry `json:"changes"`
}

// RunResult captures the outcome of one pipeline run. It is held in memory
// as "last result" for status reporting and does not survive a restart.
type RunResult struct {
	Success    bool          `json:"success"`
	HasChanges bool          `json:"has_changes"`
	Changes    []ChangeEntry `json:"changes,omitempty"`
	Error      string        `json:"error,omitempty"`
	Timestamp  time.Time     `json:"timestamp"`
}
