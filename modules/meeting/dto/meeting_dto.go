package dto

import (
	"time"

	"team-scheduler-api/modules/meeting/entity"
)

// BookMeetingRequest commits one chosen slot as a real calendar event.
type BookMeetingRequest struct {
	Title        string    `json:"title"`
	Participants []string  `json:"participants"`
	StartTime    time.Time `json:"startTime"`
	EndTime      time.Time `json:"endTime"`
	Description  string    `json:"description,omitempty"`
}

// BookMeetingResponse returns the stored meeting including its reference and
// conferencing link.
type BookMeetingResponse struct {
	Meeting *entity.Meeting `json:"meeting"`
}
