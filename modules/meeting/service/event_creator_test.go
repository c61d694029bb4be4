package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"team-scheduler-api/core/errors"
)

func TestCreateEventRequestsMeetConference(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("conferenceDataVersion"); got != "1" {
			t.Errorf("conferenceDataVersion = %q", got)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer token-1" {
			t.Errorf("Authorization = %q", got)
		}

		var req createEventRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatal(err)
		}
		if req.Summary != "Sync" {
			t.Errorf("summary = %q", req.Summary)
		}
		if len(req.Attendees) != 2 {
			t.Errorf("attendees = %v", req.Attendees)
		}
		if req.ConferenceData == nil {
			t.Fatal("conferenceData missing")
		}
		if got := req.ConferenceData.CreateRequest.ConferenceSolutionKey.Type; got != "hangoutsMeet" {
			t.Errorf("conference solution = %q", got)
		}
		if req.ConferenceData.CreateRequest.RequestID == "" {
			t.Error("conference request id must be set")
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": "evt-1", "hangoutLink": "https://meet.google.com/abc-defg-hij"}`))
	}))
	defer srv.Close()

	creator := NewEventCreator()
	creator.eventsURL = srv.URL

	start := time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)
	created, err := creator.CreateEvent(context.Background(), "token-1", "Sync", "",
		start, start.Add(time.Hour), "UTC", []string{"me@example.com", "a@example.com"})
	if err != nil {
		t.Fatal(err)
	}

	if created.EventID != "evt-1" {
		t.Errorf("event id = %q", created.EventID)
	}
	if created.MeetLink != "https://meet.google.com/abc-defg-hij" {
		t.Errorf("meet link = %q", created.MeetLink)
	}
}

func TestCreateEventConferenceRequestIDsAreUnique(t *testing.T) {
	var ids []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req createEventRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatal(err)
		}
		ids = append(ids, req.ConferenceData.CreateRequest.RequestID)
		w.Write([]byte(`{"id": "evt"}`))
	}))
	defer srv.Close()

	creator := NewEventCreator()
	creator.eventsURL = srv.URL

	start := time.Now()
	for i := 0; i < 3; i++ {
		if _, err := creator.CreateEvent(context.Background(), "t", "Sync", "", start, start.Add(time.Hour), "UTC", nil); err != nil {
			t.Fatal(err)
		}
	}

	seen := make(map[string]bool)
	for _, id := range ids {
		if seen[id] {
			t.Fatalf("duplicate conference request id %q", id)
		}
		seen[id] = true
	}
}

func TestCreateEventProviderFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	creator := NewEventCreator()
	creator.eventsURL = srv.URL

	start := time.Now()
	_, err := creator.CreateEvent(context.Background(), "t", "Sync", "", start, start.Add(time.Hour), "UTC", nil)
	appErr, ok := err.(*errors.AppError)
	if !ok || appErr.Code != errors.ErrProviderUnavailable {
		t.Fatalf("got %v, want PROVIDER_UNAVAILABLE", err)
	}
}
