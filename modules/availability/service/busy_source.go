package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"team-scheduler-api/core/constants"
	"team-scheduler-api/core/errors"
	"team-scheduler-api/core/logger"
	"team-scheduler-api/modules/availability/entity"
)

// BusySource fetches calendar busy intervals and recent events from the
// provider. URLs are fields so tests can point the source at a local server.
type BusySource struct {
	freeBusyURL string
	eventsURL   string
	client      *http.Client
}

func NewBusySource() *BusySource {
	return &BusySource{
		freeBusyURL: constants.GoogleFreeBusyAPI,
		eventsURL:   constants.GoogleEventsAPI,
		client:      &http.Client{Timeout: constants.ProviderCallTimeout},
	}
}

type freeBusyRequest struct {
	TimeMin string             `json:"timeMin"`
	TimeMax string             `json:"timeMax"`
	Items   []freeBusyCalendar `json:"items"`
}

type freeBusyCalendar struct {
	ID string `json:"id"`
}

type freeBusyResponse struct {
	Calendars map[string]struct {
		Busy []struct {
			Start time.Time `json:"start"`
			End   time.Time `json:"end"`
		} `json:"busy"`
	} `json:"calendars"`
}

// GetBusy queries the provider free/busy endpoint for one participant's
// primary calendar over [timeMin, timeMax]. Any transport or non-200 failure
// surfaces as ErrProviderUnavailable — an unreadable calendar must never be
// mistaken for an empty one.
func (s *BusySource) GetBusy(ctx context.Context, accessToken, email string, timeMin, timeMax time.Time) ([]entity.BusyInterval, error) {
	payload := freeBusyRequest{
		TimeMin: timeMin.Format(time.RFC3339),
		TimeMax: timeMax.Format(time.RFC3339),
		Items:   []freeBusyCalendar{{ID: email}},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrProviderUnavailable, "failed to build free/busy request", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.freeBusyURL, bytes.NewReader(body))
	if err != nil {
		return nil, errors.NewAppError(errors.ErrProviderUnavailable, "failed to build free/busy request", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		logger.Error("BusySource:GetBusy:DoRequest:Error", "error", err, "email", email)
		return nil, errors.NewAppError(errors.ErrProviderUnavailable, "calendar provider unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Error("BusySource:GetBusy:BadStatus", "status", resp.StatusCode, "email", email)
		return nil, errors.NewAppError(errors.ErrProviderUnavailable,
			fmt.Sprintf("calendar provider returned status %d", resp.StatusCode), nil)
	}

	var parsed freeBusyResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		logger.Error("BusySource:GetBusy:Decode:Error", "error", err, "email", email)
		return nil, errors.NewAppError(errors.ErrProviderUnavailable, "failed to parse free/busy response", err)
	}

	cal, ok := parsed.Calendars[email]
	if !ok {
		// Provider keys the response by the requested calendar id; a missing
		// entry with a 200 means no busy data for that calendar.
		return []entity.BusyInterval{}, nil
	}

	intervals := make([]entity.BusyInterval, 0, len(cal.Busy))
	for _, b := range cal.Busy {
		intervals = append(intervals, entity.BusyInterval{Start: b.Start, End: b.End})
	}
	return intervals, nil
}

type eventsListResponse struct {
	Items []entity.CalendarEvent `json:"items"`
}

// ListEventsWithAttendees returns the requester's events in [timeMin, timeMax]
// that carry attendees. Used for teammate discovery; failures here are
// reported so the caller can degrade to an empty suggestion list.
func (s *BusySource) ListEventsWithAttendees(ctx context.Context, accessToken string, timeMin, timeMax time.Time) ([]entity.CalendarEvent, error) {
	q := url.Values{}
	q.Set("timeMin", timeMin.Format(time.RFC3339))
	q.Set("timeMax", timeMax.Format(time.RFC3339))
	q.Set("singleEvents", "true")
	q.Set("orderBy", "startTime")

	req, err := http.NewRequestWithContext(ctx, "GET", s.eventsURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build events request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("events request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("events request returned status %d", resp.StatusCode)
	}

	var parsed eventsListResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to parse events response: %w", err)
	}

	events := make([]entity.CalendarEvent, 0, len(parsed.Items))
	for _, ev := range parsed.Items {
		if len(ev.Attendees) > 0 {
			events = append(events, ev)
		}
	}
	return events, nil
}
