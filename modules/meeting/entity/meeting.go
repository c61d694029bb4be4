package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	coreEntity "team-scheduler-api/core/entity"
)

// Meeting is a booked meeting. Reference is the human-facing handle derived
// from the slugified title plus a short random suffix.
type Meeting struct {
	coreEntity.BaseEntity
	Reference      string         `db:"reference" json:"reference"`
	OrganizerID    uuid.UUID      `db:"organizer_id" json:"organizerId"`
	OrganizerEmail string         `db:"organizer_email" json:"organizerEmail"`
	Title          string         `db:"title" json:"title"`
	Description    *string        `db:"description" json:"description,omitempty"`
	Participants   pq.StringArray `db:"participants" json:"participants"`
	StartTime      time.Time      `db:"start_time" json:"startTime"`
	EndTime        time.Time      `db:"end_time" json:"endTime"`
	GoogleEventID  string         `db:"google_event_id" json:"googleEventId"`
	MeetLink       *string        `db:"meet_link" json:"meetLink,omitempty"`
}

type PaginatedMeetingEntity = coreEntity.Pagination[Meeting]
