package models

import (
	"regexp"
	"strings"
)

// SportType distinguishes regular fixtures from sign-up sports and events.
type SportType string

const (
	SportTypeJoin   SportType = "join_sport"
	SportTypeNormal SportType = "normal_sport"
	SportTypeEvent  SportType = "event"
)

// Valid reports whether t is a known sport type.
func (t SportType) Valid() bool {
	switch t {
	case SportTypeJoin, SportTypeNormal, SportTypeEvent:
		return true
	}
	return false
}

// SportCategory is the venue class of a sport.
type SportCategory string

const (
	CategoryIndoor  SportCategory = "Indoor"
	CategoryOutdoor SportCategory = "Outdoor"
)

// Valid reports whether c is a known category.
func (c SportCategory) Valid() bool {
	return c == CategoryIndoor || c == CategoryOutdoor
}

// EventType classifies sports listed as events.
type EventType string

const (
	EventTypeTournament  EventType = "tournament"
	EventTypeExhibition  EventType = "exhibition"
	EventTypeWorkshop    EventType = "workshop"
	EventTypeCompetition EventType = "competition"
	EventTypeOther       EventType = "other"
)

// Valid reports whether t is a known event type.
func (t EventType) Valid() bool {
	switch t {
	case EventTypeTournament, EventTypeExhibition, EventTypeWorkshop, EventTypeCompetition, EventTypeOther:
		return true
	}
	return false
}

// Status is the lifecycle state shared by sports and events.
type Status string

const (
	StatusUpcoming  Status = "upcoming"
	StatusOngoing   Status = "ongoing"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusUpcoming, StatusOngoing, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Sport is a listed sport, sign-up sport or sports event. It is also the unit
// of ownership for sport admins.
type Sport struct {
	BaseModel

	Name        string        `gorm:"not null;index" json:"name"`
	Title       string        `gorm:"not null" json:"title"`
	Slug        string        `gorm:"uniqueIndex;not null" json:"slug"`
	Type        SportType     `gorm:"type:varchar(32);not null;index" json:"type"`
	Category    SportCategory `gorm:"type:varchar(16);index" json:"category"`
	Description string        `json:"description"`
	Image       string        `json:"image"`
	Date        string        `gorm:"not null;index" json:"date"`
	Venue       string        `json:"venue"`

	RegisterLink    string `json:"registerLink"`
	MoreDetailsLink string `json:"moreDetailsLink"`
	MinPlayers      int    `json:"minPlayers"`
	MaxPlayers      *int   `json:"maxPlayers"`
	ArrivalTime     string `json:"arrivalTime"`
	Fixture         string `json:"fixture"`
	GameTiming      string `json:"gameTiming"`

	RegistrationDeadline *string `json:"registrationDeadline"`
	RegistrationFee      float64 `json:"registrationFee"`
	CurrentParticipants  int     `json:"currentParticipants"`

	EventType   EventType `gorm:"type:varchar(16)" json:"eventType"`
	Organizer   *string   `json:"organizer"`
	ContactInfo *string   `json:"contactInfo"`

	Status Status `gorm:"type:varchar(16);not null;index" json:"status"`
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// Slugify lowercases value and replaces whitespace runs with hyphens.
func Slugify(value string) string {
	return whitespaceRun.ReplaceAllString(strings.ToLower(strings.TrimSpace(value)), "-")
}
