package dto

import "team-scheduler-api/modules/availability/entity"

// FindAvailabilityRequest is the slot-search input. Zero values fall back to
// the defaults (30-minute meetings over the next 7 days).
type FindAvailabilityRequest struct {
	Participants    []string `json:"emails"`
	DurationMinutes int      `json:"duration"`
	DaysToCheck     int      `json:"daysToCheck"`
}

// FindAvailabilityResponse carries the mutually free slots plus colleagues
// worth inviting, mined from the requester's events in the search window.
type FindAvailabilityResponse struct {
	Slots              []entity.TimeSlot `json:"slots"`
	Participants       []string          `json:"participants"`
	DurationMinutes    int               `json:"duration"`
	DaysChecked        int               `json:"daysChecked"`
	SuggestedTeammates []string          `json:"suggestedTeammates"`
}
