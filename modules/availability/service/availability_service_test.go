package service

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"testing"
	"time"

	"team-scheduler-api/core/config"
	"team-scheduler-api/core/errors"
	authEntity "team-scheduler-api/modules/auth/entity"
	"team-scheduler-api/modules/availability/dto"
	"team-scheduler-api/modules/availability/entity"
)

type fakeResolver struct {
	ready      map[string]authEntity.GoogleCredential
	lastEmails []string
}

func (f *fakeResolver) Resolve(_ context.Context, emails []string) (*ResolveResult, error) {
	f.lastEmails = emails
	ready := make(map[string]authEntity.GoogleCredential)
	missing := make([]string, 0)
	for _, e := range emails {
		if cred, ok := f.ready[e]; ok {
			ready[e] = cred
		} else {
			missing = append(missing, e)
		}
	}
	return &ResolveResult{Ready: ready, Missing: missing}, nil
}

type fakeCalendarSource struct {
	busy      map[string][]entity.BusyInterval
	busyErr   map[string]error
	events    []entity.CalendarEvent
	eventsErr error

	eventsMin time.Time
	eventsMax time.Time
}

func (f *fakeCalendarSource) GetBusy(_ context.Context, _, email string, _, _ time.Time) ([]entity.BusyInterval, error) {
	if err, ok := f.busyErr[email]; ok {
		return nil, err
	}
	return f.busy[email], nil
}

func (f *fakeCalendarSource) ListEventsWithAttendees(_ context.Context, _ string, timeMin, timeMax time.Time) ([]entity.CalendarEvent, error) {
	f.eventsMin = timeMin
	f.eventsMax = timeMax
	if f.eventsErr != nil {
		return nil, f.eventsErr
	}
	return f.events, nil
}

func allReady(emails ...string) map[string]authEntity.GoogleCredential {
	ready := make(map[string]authEntity.GoogleCredential, len(emails))
	for _, e := range emails {
		ready[e] = authEntity.GoogleCredential{Email: e, AccessToken: "token-" + e}
	}
	return ready
}

func testSchedulerConfig(t *testing.T) {
	t.Helper()
	config.SetForTesting(&config.Config{
		Scheduler: config.SchedulerConfig{
			BusinessHoursStart: 9,
			BusinessHoursEnd:   17,
			SlotCap:            10,
			Timezone:           "UTC",
			CompanyDomain:      "example.com",
		},
	})
	t.Cleanup(func() { config.SetForTesting(nil) })
}

func newTestAvailabilityService(resolver CredentialResolver, source CalendarSource) *AvailabilityService {
	svc := NewAvailabilityService(resolver, source)
	svc.now = func() time.Time { return mondayMorning }
	return svc
}

func TestFindAvailabilityValidation(t *testing.T) {
	testSchedulerConfig(t)
	svc := newTestAvailabilityService(&fakeResolver{}, &fakeCalendarSource{})

	tests := []struct {
		name string
		req  dto.FindAvailabilityRequest
	}{
		{"duration too short", dto.FindAvailabilityRequest{DurationMinutes: 10}},
		{"duration too long", dto.FindAvailabilityRequest{DurationMinutes: 181}},
		{"negative days", dto.FindAvailabilityRequest{DaysToCheck: -1}},
		{"too many days", dto.FindAvailabilityRequest{DaysToCheck: 15}},
		{"participant without an at sign", dto.FindAvailabilityRequest{Participants: []string{"bob"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.FindAvailability(context.Background(), "me@example.com", &tt.req)
			appErr, ok := err.(*errors.AppError)
			if !ok || appErr.Code != errors.ErrInvalidInput {
				t.Errorf("got %v, want INVALID_INPUT", err)
			}
		})
	}
}

func TestFindAvailabilityIncludesRequesterAndDeduplicates(t *testing.T) {
	testSchedulerConfig(t)
	resolver := &fakeResolver{ready: allReady("me@example.com", "a@example.com")}
	svc := newTestAvailabilityService(resolver, &fakeCalendarSource{})

	_, err := svc.FindAvailability(context.Background(), "Me@Example.com", &dto.FindAvailabilityRequest{
		Participants: []string{"a@example.com", "ME@example.com", " a@example.com "},
	})
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"me@example.com", "a@example.com"}
	if !reflect.DeepEqual(resolver.lastEmails, want) {
		t.Errorf("resolved %v, want %v", resolver.lastEmails, want)
	}
}

func TestFindAvailabilityMissingCredentialFailsWholeRequest(t *testing.T) {
	testSchedulerConfig(t)
	resolver := &fakeResolver{ready: allReady("me@example.com")}
	svc := newTestAvailabilityService(resolver, &fakeCalendarSource{})

	_, err := svc.FindAvailability(context.Background(), "me@example.com", &dto.FindAvailabilityRequest{
		Participants: []string{"stranger@example.com"},
	})

	appErr, ok := err.(*errors.AppError)
	if !ok || appErr.Code != errors.ErrIncompleteParticipants {
		t.Fatalf("got %v, want INCOMPLETE_PARTICIPANTS", err)
	}

	details, ok := appErr.Details.(map[string]interface{})
	if !ok {
		t.Fatalf("details = %T, want a map carrying the missing emails", appErr.Details)
	}
	missing, _ := details["missingParticipants"].([]string)
	if !reflect.DeepEqual(missing, []string{"stranger@example.com"}) {
		t.Errorf("missingParticipants = %v", missing)
	}
}

func TestFindAvailabilityProviderFailureIsAllOrNothing(t *testing.T) {
	testSchedulerConfig(t)
	resolver := &fakeResolver{ready: allReady("me@example.com", "a@example.com")}
	source := &fakeCalendarSource{
		busy: map[string][]entity.BusyInterval{},
		busyErr: map[string]error{
			"a@example.com": errors.NewAppError(errors.ErrProviderUnavailable, "calendar provider returned status 500", nil),
		},
	}
	svc := newTestAvailabilityService(resolver, source)

	_, err := svc.FindAvailability(context.Background(), "me@example.com", &dto.FindAvailabilityRequest{
		Participants: []string{"a@example.com"},
	})

	appErr, ok := err.(*errors.AppError)
	if !ok || appErr.Code != errors.ErrProviderUnavailable {
		t.Fatalf("got %v, want PROVIDER_UNAVAILABLE: partial calendar data must not produce slots", err)
	}
}

func TestFindAvailabilityHappyPath(t *testing.T) {
	testSchedulerConfig(t)
	resolver := &fakeResolver{ready: allReady("me@example.com", "a@example.com")}
	source := &fakeCalendarSource{
		busy: map[string][]entity.BusyInterval{
			"me@example.com": {busy(9, 0, 12, 0)},
			"a@example.com":  {busy(13, 0, 17, 0)},
		},
		events: []entity.CalendarEvent{event("colleague@example.com", "client@other.com")},
	}
	svc := newTestAvailabilityService(resolver, source)

	resp, err := svc.FindAvailability(context.Background(), "me@example.com", &dto.FindAvailabilityRequest{
		Participants: []string{"a@example.com"},
		DaysToCheck:  1,
	})
	if err != nil {
		t.Fatal(err)
	}

	if resp.DurationMinutes != 30 {
		t.Errorf("default duration = %d, want 30", resp.DurationMinutes)
	}
	if resp.DaysChecked != 1 {
		t.Errorf("daysChecked = %d, want the effective days searched", resp.DaysChecked)
	}
	if len(resp.Slots) != 2 {
		t.Fatalf("got %d slots, want the two free half-hours over lunch", len(resp.Slots))
	}
	if got := resp.Slots[0].Start.Format("15:04"); got != "12:00" {
		t.Errorf("first slot %s, want 12:00", got)
	}
	if !sort.StringsAreSorted(resp.SuggestedTeammates) {
		t.Error("suggestions not sorted")
	}
	if !reflect.DeepEqual(resp.SuggestedTeammates, []string{"colleague@example.com"}) {
		t.Errorf("suggestions = %v", resp.SuggestedTeammates)
	}
}

func TestFindAvailabilityDiscoveryScansSearchWindow(t *testing.T) {
	testSchedulerConfig(t)
	resolver := &fakeResolver{ready: allReady("me@example.com")}
	source := &fakeCalendarSource{busy: map[string][]entity.BusyInterval{}}
	svc := newTestAvailabilityService(resolver, source)

	_, err := svc.FindAvailability(context.Background(), "me@example.com", &dto.FindAvailabilityRequest{DaysToCheck: 3})
	if err != nil {
		t.Fatal(err)
	}

	if !source.eventsMin.Equal(mondayMorning) {
		t.Errorf("events window starts %v, want %v", source.eventsMin, mondayMorning)
	}
	if want := mondayMorning.AddDate(0, 0, 3); !source.eventsMax.Equal(want) {
		t.Errorf("events window ends %v, want %v", source.eventsMax, want)
	}
}

func TestFindAvailabilityDiscoveryFailureDegradesToEmpty(t *testing.T) {
	testSchedulerConfig(t)
	resolver := &fakeResolver{ready: allReady("me@example.com")}
	source := &fakeCalendarSource{
		busy:      map[string][]entity.BusyInterval{},
		eventsErr: fmt.Errorf("events request returned status 500"),
	}
	svc := newTestAvailabilityService(resolver, source)

	resp, err := svc.FindAvailability(context.Background(), "me@example.com", &dto.FindAvailabilityRequest{DaysToCheck: 1})
	if err != nil {
		t.Fatalf("discovery failure must not fail the search: %v", err)
	}
	if len(resp.SuggestedTeammates) != 0 {
		t.Errorf("suggestions = %v, want empty on discovery failure", resp.SuggestedTeammates)
	}
	if len(resp.Slots) == 0 {
		t.Error("slots missing despite free calendars")
	}
}
