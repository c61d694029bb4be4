package entity

import "time"

// BusyInterval is a time range during which a participant is unavailable,
// as reported by their calendar. Invariant: Start <= End.
type BusyInterval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// TimeSlot is a candidate meeting slot. End - Start always equals the
// requested duration.
type TimeSlot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// SearchWindow bounds a slot search: the anchor instant, how many calendar
// days to scan, and the business-hours window [start, end) applied to each
// day. All day and hour math runs in Location.
type SearchWindow struct {
	Now                time.Time
	DaysToCheck        int
	BusinessHoursStart int
	BusinessHoursEnd   int
	Location           *time.Location
}

// Attendee is one participant on a calendar event.
type Attendee struct {
	Email          string `json:"email"`
	ResponseStatus string `json:"responseStatus,omitempty"`
}

// CalendarEvent is the subset of a provider event needed for teammate
// discovery.
type CalendarEvent struct {
	ID        string     `json:"id"`
	Summary   string     `json:"summary"`
	Attendees []Attendee `json:"attendees,omitempty"`
}
