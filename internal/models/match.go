package models

import (
	"encoding/json"

	"gorm.io/datatypes"
)

// MatchStatus is the progress of a single fixture.
type MatchStatus string

const (
	MatchCompleted MatchStatus = "Completed"
	MatchOngoing   MatchStatus = "Ongoing"
	MatchUpcoming  MatchStatus = "Upcoming"
)

// Valid reports whether s is a known match status.
func (s MatchStatus) Valid() bool {
	switch s {
	case MatchCompleted, MatchOngoing, MatchUpcoming:
		return true
	}
	return false
}

// Chess results recorded in Match.Result.
const (
	ChessWhiteWins = "1-0"
	ChessBlackWins = "0-1"
	ChessDraw      = "½-½"
)

// Score holds a home/away pair, used for totals, quarters and sets.
type Score struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

// MatchTeams names the sides. Chess uses White and Black.
type MatchTeams struct {
	Home  string `json:"home"`
	Away  string `json:"away"`
	White string `json:"white,omitempty"`
	Black string `json:"black,omitempty"`
}

// PlayerStat is a per-player box score line.
type PlayerStat struct {
	Name    string `json:"name"`
	Goals   int    `json:"goals,omitempty"`
	Runs    int    `json:"runs,omitempty"`
	Wickets int    `json:"wickets,omitempty"`
	Points  int    `json:"points,omitempty"`
}

// MatchDetails carries player statistics for both sides.
type MatchDetails struct {
	HomePlayers []PlayerStat `json:"homePlayers"`
	AwayPlayers []PlayerStat `json:"awayPlayers"`
}

// Match is a fixture within a sport. (Sport, Slug) is unique.
type Match struct {
	BaseModel

	Sport string `gorm:"not null;uniqueIndex:idx_match_sport_slug,priority:1" json:"sport"`
	Name  string `gorm:"not null" json:"match"`
	Slug  string `gorm:"not null;uniqueIndex:idx_match_sport_slug,priority:2" json:"slug"`

	Teams    datatypes.JSONType[MatchTeams]   `json:"teams"`
	Scores   datatypes.JSONType[Score]        `json:"scores"`
	Quarters datatypes.JSONSlice[Score]       `json:"quarters"`
	Sets     datatypes.JSONSlice[Score]       `json:"sets"`
	Players  datatypes.JSONSlice[string]      `json:"players"`
	Details  datatypes.JSONType[MatchDetails] `json:"details"`

	Result string      `json:"result,omitempty"`
	Date   string      `gorm:"not null;index" json:"date"`
	Status MatchStatus `gorm:"type:varchar(16);not null;index" json:"status"`
	Moves  *int        `json:"moves,omitempty"`
}

// ScoreDelta is the home score minus the away score.
func (m *Match) ScoreDelta() int {
	s := m.Scores.Data()
	return s.Home - s.Away
}

// Winner names the winning side of a completed match, "Draw" for a drawn chess
// game, or "" when undecided.
func (m *Match) Winner() string {
	if m.Status != MatchCompleted {
		return ""
	}

	teams := m.Teams.Data()
	switch m.Result {
	case ChessWhiteWins:
		return teams.White
	case ChessBlackWins:
		return teams.Black
	case ChessDraw:
		return "Draw"
	}

	switch delta := m.ScoreDelta(); {
	case delta > 0:
		return teams.Home
	case delta < 0:
		return teams.Away
	}
	return ""
}

// ApplyScoreDelta adds the delta to the running score. Totals never drop
// below zero.
func (m *Match) ApplyScoreDelta(delta Score) Score {
	s := m.Scores.Data()
	s.Home = max(0, s.Home+delta.Home)
	s.Away = max(0, s.Away+delta.Away)
	m.Scores = datatypes.NewJSONType(s)
	return s
}

// MarshalJSON adds the derived winner and scoreDelta fields.
func (m Match) MarshalJSON() ([]byte, error) {
	type plain Match
	return json.Marshal(struct {
		plain
		Winner     string `json:"winner,omitempty"`
		ScoreDelta int    `json:"scoreDelta"`
	}{
		plain:      plain(m),
		Winner:     m.Winner(),
		ScoreDelta: m.ScoreDelta(),
	})
}
