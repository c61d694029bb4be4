package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/lib/pq"

	"team-scheduler-api/core/config"
	coreEntity "team-scheduler-api/core/entity"
	"team-scheduler-api/core/errors"
	"team-scheduler-api/core/logger"
	"team-scheduler-api/core/params"
	"team-scheduler-api/core/tasks"
	"team-scheduler-api/core/utils"
	availabilityService "team-scheduler-api/modules/availability/service"
	"team-scheduler-api/modules/meeting/dto"
	"team-scheduler-api/modules/meeting/entity"
)

// EventCreatorInterface abstracts the provider event call for tests.
type EventCreatorInterface interface {
	CreateEvent(ctx context.Context, accessToken, title, description string, start, end time.Time, timezone string, participants []string) (*CreatedEvent, error)
}

// MeetingRepositoryInterface is the persistence surface the booking flow needs.
type MeetingRepositoryInterface interface {
	CreateMeeting(ctx context.Context, m *entity.Meeting) error
	GetMeetingByReference(ctx context.Context, reference string) (*entity.Meeting, error)
	ListMeetingsForUser(ctx context.Context, organizerID uuid.UUID, email string, p params.QueryParams) (*entity.PaginatedMeetingEntity, error)
}

// MeetingServiceInterface defines the booking operations
type MeetingServiceInterface interface {
	BookMeeting(ctx context.Context, organizerID uuid.UUID, organizerEmail string, req *dto.BookMeetingRequest) (*dto.BookMeetingResponse, error)
	GetMeeting(ctx context.Context, userID uuid.UUID, email, reference string) (*entity.Meeting, error)
	ListMyMeetings(ctx context.Context, organizerID uuid.UUID, email string, p params.QueryParams) (*entity.PaginatedMeetingEntity, error)
}

// MeetingService books a chosen slot as a real provider event and records it.
type MeetingService struct {
	repo       MeetingRepositoryInterface
	broker     availabilityService.CredentialResolver
	creator    EventCreatorInterface
	taskClient tasks.TaskClient
}

func NewMeetingService(repo MeetingRepositoryInterface, broker availabilityService.CredentialResolver, creator EventCreatorInterface, taskClient tasks.TaskClient) *MeetingService {
	return &MeetingService{
		repo:       repo,
		broker:     broker,
		creator:    creator,
		taskClient: taskClient,
	}
}

// BookMeeting creates the provider event first, then persists the meeting
// row. If persistence fails after the event was created, the failure is
// surfaced as a booking-persistence error carrying the orphaned provider
// event id so an operator can reconcile it.
func (s *MeetingService) BookMeeting(ctx context.Context, organizerID uuid.UUID, organizerEmail string, req *dto.BookMeetingRequest) (*dto.BookMeetingResponse, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "title is required", nil)
	}
	if req.StartTime.IsZero() || req.EndTime.IsZero() || !req.StartTime.Before(req.EndTime) {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "startTime must be before endTime", nil)
	}

	participants := normalizeParticipants(organizerEmail, req.Participants)

	resolved, err := s.broker.Resolve(ctx, []string{organizerEmail})
	if err != nil {
		logger.Error("MeetingService:BookMeeting:Resolve:Error", "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to resolve organizer credential", err)
	}
	cred, ok := resolved.Ready[strings.ToLower(organizerEmail)]
	if !ok {
		return nil, errors.NewAppErrorWithDetails(errors.ErrIncompleteParticipants,
			"organizer has not connected their calendar",
			map[string]interface{}{"missingParticipants": []string{strings.ToLower(organizerEmail)}}, nil)
	}

	cfg := config.Get()
	created, appErr := s.creator.CreateEvent(ctx, cred.AccessToken,
		req.Title, req.Description, req.StartTime, req.EndTime, cfg.Scheduler.Timezone, participants)
	if appErr != nil {
		return nil, appErr
	}

	meeting := &entity.Meeting{
		BaseEntity:     coreEntity.BaseEntity{ID: uuid.New()},
		Reference:      buildReference(req.Title),
		OrganizerID:    organizerID,
		OrganizerEmail: strings.ToLower(organizerEmail),
		Title:          req.Title,
		Participants:   pq.StringArray(participants),
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		GoogleEventID:  created.EventID,
	}
	if desc := strings.TrimSpace(req.Description); desc != "" {
		meeting.Description = &desc
	}
	if created.MeetLink != "" {
		link := created.MeetLink
		meeting.MeetLink = &link
	}

	if err := s.repo.CreateMeeting(ctx, meeting); err != nil {
		// The provider event exists but our record of it does not.
		logger.Error("MeetingService:BookMeeting:CreateMeeting:Error",
			"error", err, "orphan_event_id", created.EventID, "reference", meeting.Reference)
		return nil, errors.NewAppErrorWithDetails(errors.ErrBookingPersistence,
			"meeting was created on the calendar but could not be recorded",
			map[string]interface{}{"eventId": created.EventID}, err)
	}

	s.enqueueConfirmation(ctx, meeting)

	return &dto.BookMeetingResponse{Meeting: meeting}, nil
}

// GetMeeting looks a meeting up by its reference. Only the organizer and
// invited participants may see it; anyone else gets the same not-found answer
// as a reference that does not exist.
func (s *MeetingService) GetMeeting(ctx context.Context, userID uuid.UUID, email, reference string) (*entity.Meeting, error) {
	meeting, err := s.repo.GetMeetingByReference(ctx, reference)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to load meeting", err)
	}
	if meeting == nil || !canSeeMeeting(meeting, userID, email) {
		return nil, errors.NewAppError(errors.ErrNotFound, "meeting not found", nil)
	}
	return meeting, nil
}

func canSeeMeeting(m *entity.Meeting, userID uuid.UUID, email string) bool {
	if m.OrganizerID == userID {
		return true
	}
	email = strings.ToLower(email)
	for _, p := range m.Participants {
		if p == email {
			return true
		}
	}
	return false
}

func (s *MeetingService) ListMyMeetings(ctx context.Context, organizerID uuid.UUID, email string, p params.QueryParams) (*entity.PaginatedMeetingEntity, error) {
	result, err := s.repo.ListMeetingsForUser(ctx, organizerID, strings.ToLower(email), p)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to list meetings", err)
	}
	return result, nil
}

// enqueueConfirmation hands notification fan-out to the background worker.
// Best effort: the booking already committed, so a queue failure only costs
// the in-app notification.
func (s *MeetingService) enqueueConfirmation(ctx context.Context, m *entity.Meeting) {
	if s.taskClient == nil {
		return
	}

	payload := tasks.MeetingConfirmationPayload{
		MeetingID:      m.ID.String(),
		Reference:      m.Reference,
		Title:          m.Title,
		OrganizerEmail: m.OrganizerEmail,
		Participants:   m.Participants,
		StartTime:      m.StartTime.Format(time.RFC3339),
	}
	if m.MeetLink != nil {
		payload.MeetLink = *m.MeetLink
	}

	if err := s.taskClient.EnqueueMeetingConfirmation(ctx, payload); err != nil {
		logger.Error("MeetingService:enqueueConfirmation:Error", "error", err, "meeting_id", m.ID)
	}
}

// buildReference derives a stable human-readable handle from the title plus a
// short random suffix to keep references unique.
func buildReference(title string) string {
	return slug.Make(title) + "-" + utils.GenerateID()
}

func normalizeParticipants(organizerEmail string, participants []string) []string {
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

	add(organizerEmail)
	for _, p := range participants {
		add(p)
	}
	return out
}
