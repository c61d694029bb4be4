package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"team-scheduler-api/core/config"
	"team-scheduler-api/core/constants"
	"team-scheduler-api/core/errors"
	"team-scheduler-api/core/logger"
	authEntity "team-scheduler-api/modules/auth/entity"
	"team-scheduler-api/modules/availability/dto"
	"team-scheduler-api/modules/availability/entity"
)

// CredentialResolver yields per-participant calendar credentials.
type CredentialResolver interface {
	Resolve(ctx context.Context, emails []string) (*ResolveResult, error)
}

// CalendarSource is the provider surface the availability flow needs.
type CalendarSource interface {
	GetBusy(ctx context.Context, accessToken, email string, timeMin, timeMax time.Time) ([]entity.BusyInterval, error)
	ListEventsWithAttendees(ctx context.Context, accessToken string, timeMin, timeMax time.Time) ([]entity.CalendarEvent, error)
}

// AvailabilityServiceInterface defines the availability operations
type AvailabilityServiceInterface interface {
	FindAvailability(ctx context.Context, requesterEmail string, req *dto.FindAvailabilityRequest) (*dto.FindAvailabilityResponse, error)
}

// AvailabilityService orchestrates credential resolution, busy-interval
// fetches and slot search for a group of participants.
type AvailabilityService struct {
	broker CredentialResolver
	source CalendarSource
	finder *SlotFinder
	now    func() time.Time
}

func NewAvailabilityService(broker CredentialResolver, source CalendarSource) *AvailabilityService {
	return &AvailabilityService{
		broker: broker,
		source: source,
		finder: NewSlotFinder(),
		now:    time.Now,
	}
}

// FindAvailability finds up to the configured cap of meeting slots free for
// the requester and every listed participant. All participants must have a
// usable stored credential; a single missing one fails the whole request so
// a "free" answer is never built from partial calendar data.
func (s *AvailabilityService) FindAvailability(ctx context.Context, requesterEmail string, req *dto.FindAvailabilityRequest) (*dto.FindAvailabilityResponse, error) {
	duration := req.DurationMinutes
	if duration == 0 {
		duration = constants.DefaultDurationMinutes
	}
	if duration < constants.MinDurationMinutes || duration > constants.MaxDurationMinutes {
		return nil, errors.NewAppError(errors.ErrInvalidInput,
			"duration must be between 15 and 180", nil)
	}

	days := req.DaysToCheck
	if days == 0 {
		days = constants.DefaultDaysToCheck
	}
	if days < constants.MinDaysToCheck || days > constants.MaxDaysToCheck {
		return nil, errors.NewAppError(errors.ErrInvalidInput,
			"daysToCheck must be between 1 and 14", nil)
	}

	participants := normalizeParticipants(requesterEmail, req.Participants)
	if len(participants) == 0 {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "at least one participant is required", nil)
	}
	for _, p := range participants {
		if !strings.Contains(p, "@") {
			return nil, errors.NewAppError(errors.ErrInvalidInput,
				fmt.Sprintf("%q is not an email address", p), nil)
		}
	}

	resolved, err := s.broker.Resolve(ctx, participants)
	if err != nil {
		logger.Error("AvailabilityService:FindAvailability:Resolve:Error", "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to resolve participant credentials", err)
	}
	if len(resolved.Missing) > 0 {
		sort.Strings(resolved.Missing)
		return nil, errors.NewAppErrorWithDetails(errors.ErrIncompleteParticipants,
			"some participants have not connected their calendars",
			map[string]interface{}{"missingParticipants": resolved.Missing}, nil)
	}

	cfg := config.Get()
	loc, err := time.LoadLocation(cfg.Scheduler.Timezone)
	if err != nil {
		logger.Error("AvailabilityService:FindAvailability:LoadLocation:Error",
			"error", err, "timezone", cfg.Scheduler.Timezone)
		loc = time.UTC
	}

	now := s.now().In(loc)
	timeMax := now.AddDate(0, 0, days)

	busyByParticipant, err := s.fetchBusy(ctx, resolved.Ready, now, timeMax)
	if err != nil {
		return nil, err
	}

	window := entity.SearchWindow{
		Now:                now,
		DaysToCheck:        days,
		BusinessHoursStart: cfg.Scheduler.BusinessHoursStart,
		BusinessHoursEnd:   cfg.Scheduler.BusinessHoursEnd,
		Location:           loc,
	}
	slots := s.finder.FindSlots(busyByParticipant, duration, window, cfg.Scheduler.SlotCap)

	suggestions := s.discoverTeammates(ctx, requesterEmail, participants, resolved, now, timeMax, cfg.Scheduler.CompanyDomain)

	return &dto.FindAvailabilityResponse{
		Slots:              slots,
		Participants:       participants,
		DurationMinutes:    duration,
		DaysChecked:        days,
		SuggestedTeammates: suggestions,
	}, nil
}

// fetchBusy queries every participant's calendar concurrently. The join is
// all-or-nothing: one failed fetch cancels the rest and fails the request.
func (s *AvailabilityService) fetchBusy(ctx context.Context, ready map[string]authEntity.GoogleCredential, timeMin, timeMax time.Time) (map[string][]entity.BusyInterval, error) {
	g, gctx := errgroup.WithContext(ctx)

	type fetchResult struct {
		email     string
		intervals []entity.BusyInterval
	}
	results := make(chan fetchResult, len(ready))

	for email, cred := range ready {
		email, token := email, cred.AccessToken
		g.Go(func() error {
			intervals, err := s.source.GetBusy(gctx, token, email, timeMin, timeMax)
			if err != nil {
				logger.Error("AvailabilityService:fetchBusy:GetBusy:Error", "error", err, "email", email)
				return err
			}
			results <- fetchResult{email: email, intervals: intervals}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			return nil, appErr
		}
		return nil, errors.NewAppError(errors.ErrProviderUnavailable, "failed to fetch calendar data", err)
	}
	close(results)

	busy := make(map[string][]entity.BusyInterval, len(ready))
	for r := range results {
		busy[r.email] = r.intervals
	}
	return busy, nil
}

// discoverTeammates mines the requester's events inside the search window for
// company colleagues not already invited. Best effort: failures degrade to an
// empty list rather than failing the availability response.
func (s *AvailabilityService) discoverTeammates(ctx context.Context, requesterEmail string, participants []string, resolved *ResolveResult, timeMin, timeMax time.Time, companyDomain string) []string {
	cred, ok := resolved.Ready[strings.ToLower(requesterEmail)]
	if !ok {
		return []string{}
	}

	events, err := s.source.ListEventsWithAttendees(ctx, cred.AccessToken, timeMin, timeMax)
	if err != nil {
		logger.Warn("AvailabilityService:discoverTeammates:ListEvents:Error", "error", err)
		return []string{}
	}

	return SuggestTeammates(events, participants, companyDomain)
}

// normalizeParticipants lowercases, trims and deduplicates the participant
// list and guarantees the requester is part of it.
func normalizeParticipants(requesterEmail string, participants []string) []string {
	seen := make(map[string]struct{}, len(participants)+1)
	out := make([]string, 0, len(participants)+1)

	add := func(email string) {
		email = strings.ToLower(strings.TrimSpace(email))
		if email == "" {
			return
		}
		if _, ok := seen[email]; ok {
			return
		}
		seen[email] = struct{}{}
		out = append(out, email)
	}

	add(requesterEmail)
	for _, p := range participants {
		add(p)
	}
	return out
}
