package realtime

import (
	"strings"

	"github.com/charlesng35/kurukshetra/internal/models"
)

// StreamMatches carries every fixture change. Per-sport streams are named
// "matches.<sport>".
const StreamMatches = "matches"

const maxStreamsPerClient = 16

// Match events published to scoreboard viewers.
const (
	EventMatchCreated = "match.created"
	EventMatchUpdated = "match.updated"
	EventMatchDeleted = "match.deleted"
)

// SportStream names the stream for fixtures of sport.
func SportStream(sport string) string {
	sport = normalizeStream(sport)
	if sport == "" {
		return StreamMatches
	}
	return StreamMatches + "." + sport
}

// StreamsForSports maps a comma separated sport list to stream names. An empty
// list follows every match.
func StreamsForSports(sports string) []string {
	var streams []string
	for _, sport := range strings.Split(sports, ",") {
		if strings.TrimSpace(sport) != "" {
			streams = append(streams, SportStream(sport))
		}
	}
	if len(streams) == 0 {
		return []string{StreamMatches}
	}
	return streams
}

// PublishMatch broadcasts a match change on the global stream and on the
// stream of the match's sport.
func (h *Hub) PublishMatch(event string, match *models.Match) {
	if h == nil || match == nil {
		return
	}
	message := Message{Event: event, Data: match}
	h.Broadcast(StreamMatches, message)
	h.Broadcast(SportStream(match.Sport), message)
}
