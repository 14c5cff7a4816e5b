package models

import (
	"strings"
	"time"
)

// EventCategory groups campus events on the public listing.
type EventCategory string

const (
	EventCultural   EventCategory = "Cultural"
	EventTechnology EventCategory = "Technology"
	EventSports     EventCategory = "Sports"
	EventAcademic   EventCategory = "Academic"
)

// Valid reports whether c is a known event category.
func (c EventCategory) Valid() bool {
	switch c {
	case EventCultural, EventTechnology, EventSports, EventAcademic:
		return true
	}
	return false
}

// Event is a non-sport campus event.
type Event struct {
	BaseModel

	Title            string        `gorm:"not null" json:"title"`
	Date             string        `gorm:"not null;index" json:"date"`
	Venue            string        `json:"venue"`
	Description      string        `json:"description"`
	ImageURL         string        `json:"imageUrl"`
	RegistrationLink string        `json:"registrationLink"`
	Category         EventCategory `gorm:"type:varchar(16);index" json:"category"`
	Status           Status        `gorm:"type:varchar(16);not null;index" json:"status"`
}

// Timeline labels derived from an event date.
const (
	TimelineOngoing   = "Ongoing"
	TimelineCompleted = "Completed"
	TimelineUpcoming  = "Upcoming"
)

// Registration labels derived from an event date.
const (
	RegistrationClosed        = "Closed"
	RegistrationAboutToClose  = "About to Close"
	RegistrationOpen          = "Open"
	registrationClosingWindow = 3 * 24 * time.Hour
)

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"02/01/2006",
}

// ParseDate reads the date formats accepted by the admin panel. Dates without
// a zone are interpreted in loc.
func ParseDate(value string, loc *time.Location) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// TimelineStatus classifies date relative to now: the same calendar day is
// Ongoing, earlier is Completed, later is Upcoming. Unparseable dates are
// Upcoming.
func TimelineStatus(date string, now time.Time) string {
	t, ok := ParseDate(date, now.Location())
	if !ok {
		return TimelineUpcoming
	}
	ty, tm, td := t.Date()
	ny, nm, nd := now.Date()
	switch {
	case ty == ny && tm == nm && td == nd:
		return TimelineOngoing
	case t.Before(now):
		return TimelineCompleted
	default:
		return TimelineUpcoming
	}
}

// RegistrationStatus reports whether sign-ups are still open for date.
func RegistrationStatus(date string, now time.Time) string {
	t, ok := ParseDate(date, now.Location())
	if !ok {
		return RegistrationOpen
	}
	switch {
	case t.Before(now):
		return RegistrationClosed
	case t.Sub(now) <= registrationClosingWindow:
		return RegistrationAboutToClose
	default:
		return RegistrationOpen
	}
}

// StatusForDate maps a date onto the stored lifecycle status. Cancelled is
// never produced here and is left alone by callers.
func StatusForDate(date string, now time.Time) Status {
	switch TimelineStatus(date, now) {
	case TimelineOngoing:
		return StatusOngoing
	case TimelineCompleted:
		return StatusCompleted
	default:
		return StatusUpcoming
	}
}
