package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"team-scheduler-api/core/constants"
	"team-scheduler-api/core/errors"
	"team-scheduler-api/core/logger"
	"team-scheduler-api/core/utils"
)

// EventCreator creates calendar events with conferencing attached. URL is a
// field so tests can point the creator at a local server.
type EventCreator struct {
	eventsURL string
	client    *http.Client
}

func NewEventCreator() *EventCreator {
	return &EventCreator{
		eventsURL: constants.GoogleEventsAPI,
		client:    &http.Client{Timeout: constants.ProviderCallTimeout},
	}
}

type eventTime struct {
	DateTime string `json:"dateTime"`
	TimeZone string `json:"timeZone,omitempty"`
}

type eventAttendee struct {
	Email string `json:"email"`
}

type conferenceSolutionKey struct {
	Type string `json:"type"`
}

type conferenceCreateRequest struct {
	RequestID             string                `json:"requestId"`
	ConferenceSolutionKey conferenceSolutionKey `json:"conferenceSolutionKey"`
}

type conferenceData struct {
	CreateRequest conferenceCreateRequest `json:"createRequest"`
}

type createEventRequest struct {
	Summary        string          `json:"summary"`
	Description    string          `json:"description,omitempty"`
	Start          eventTime       `json:"start"`
	End            eventTime       `json:"end"`
	Attendees      []eventAttendee `json:"attendees"`
	ConferenceData *conferenceData `json:"conferenceData,omitempty"`
}

type createEventResponse struct {
	ID          string `json:"id"`
	HangoutLink string `json:"hangoutLink"`
}

// CreatedEvent is the provider-side result of a booking.
type CreatedEvent struct {
	EventID  string
	MeetLink string
}

// CreateEvent books the event on the organizer's primary calendar, asking the
// provider to attach a Meet conference. The conference request id is random so
// retried bookings never collide.
func (e *EventCreator) CreateEvent(ctx context.Context, accessToken, title, description string, start, end time.Time, timezone string, participants []string) (*CreatedEvent, error) {
	attendees := make([]eventAttendee, 0, len(participants))
	for _, p := range participants {
		attendees = append(attendees, eventAttendee{Email: p})
	}

	payload := createEventRequest{
		Summary:     title,
		Description: description,
		Start:       eventTime{DateTime: start.Format(time.RFC3339), TimeZone: timezone},
		End:         eventTime{DateTime: end.Format(time.RFC3339), TimeZone: timezone},
		Attendees:   attendees,
		ConferenceData: &conferenceData{
			CreateRequest: conferenceCreateRequest{
				RequestID:             utils.GenerateRequestID(),
				ConferenceSolutionKey: conferenceSolutionKey{Type: "hangoutsMeet"},
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrProviderUnavailable, "failed to build event request", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", e.eventsURL+"?conferenceDataVersion=1&sendUpdates=all", bytes.NewReader(body))
	if err != nil {
		return nil, errors.NewAppError(errors.ErrProviderUnavailable, "failed to build event request", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		logger.Error("EventCreator:CreateEvent:DoRequest:Error", "error", err)
		return nil, errors.NewAppError(errors.ErrProviderUnavailable, "calendar provider unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Error("EventCreator:CreateEvent:BadStatus", "status", resp.StatusCode)
		return nil, errors.NewAppError(errors.ErrProviderUnavailable,
			fmt.Sprintf("calendar provider returned status %d", resp.StatusCode), nil)
	}

	var parsed createEventResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, errors.NewAppError(errors.ErrProviderUnavailable, "failed to parse event response", err)
	}

	return &CreatedEvent{EventID: parsed.ID, MeetLink: parsed.HangoutLink}, nil
}
