package tasks

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

// Task type names. Queued work is namespaced by concern.
const (
	TypeMeetingConfirmation    = "meeting:confirmation"
	TypeCredentialRefreshSweep = "credential:refresh-sweep"
)

// MeetingConfirmationPayload fans out in-app notifications to every meeting
// participant after a booking commits.
type MeetingConfirmationPayload struct {
	MeetingID      string   `json:"meeting_id"`
	Reference      string   `json:"reference"`
	Title          string   `json:"title"`
	OrganizerEmail string   `json:"organizer_email"`
	Participants   []string `json:"participants"`
	StartTime      string   `json:"start_time"`
	MeetLink       string   `json:"meet_link,omitempty"`
}

func NewMeetingConfirmationTask(payload MeetingConfirmationPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeMeetingConfirmation, data, asynq.MaxRetry(5)), nil
}

// NewCredentialRefreshSweepTask builds the periodic sweep task. It carries no
// payload; the handler scans the credential store itself.
func NewCredentialRefreshSweepTask() *asynq.Task {
	return asynq.NewTask(TypeCredentialRefreshSweep, nil, asynq.MaxRetry(1))
}
