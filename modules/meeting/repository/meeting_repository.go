package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"team-scheduler-api/core/database"
	"team-scheduler-api/core/logger"
	"team-scheduler-api/core/params"
	"team-scheduler-api/modules/meeting/entity"
)

// MeetingRepository handles meeting persistence.
type MeetingRepository struct {
	DB database.Database
}

func NewMeetingRepository(db database.Database) *MeetingRepository {
	return &MeetingRepository{DB: db}
}

func (r *MeetingRepository) CreateMeeting(ctx context.Context, m *entity.Meeting) error {
	query := `
		INSERT INTO meetings (id, reference, organizer_id, organizer_email, title, description,
			participants, start_time, end_time, google_event_id, meet_link, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
	`
	err := r.DB.ExecContext(ctx, query,
		m.ID, m.Reference, m.OrganizerID, m.OrganizerEmail, m.Title, m.Description,
		m.Participants, m.StartTime, m.EndTime, m.GoogleEventID, m.MeetLink)
	if err != nil {
		logger.Error("MeetingRepository:CreateMeeting:Error", "error", err, "reference", m.Reference)
		return err
	}
	return nil
}

func (r *MeetingRepository) GetMeetingByReference(ctx context.Context, reference string) (*entity.Meeting, error) {
	var m entity.Meeting
	query := `
		SELECT id, reference, organizer_id, organizer_email, title, description, participants,
			start_time, end_time, google_event_id, meet_link, created_at, updated_at
		FROM meetings
		WHERE reference = $1
	`
	err := r.DB.GetContext(ctx, &m, query, reference)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("MeetingRepository:GetMeetingByReference:Error", "error", err, "reference", reference)
		return nil, err
	}
	return &m, nil
}

// ListMeetingsForUser returns meetings the user organized or is invited to,
// newest first.
func (r *MeetingRepository) ListMeetingsForUser(ctx context.Context, organizerID uuid.UUID, email string, p params.QueryParams) (*entity.PaginatedMeetingEntity, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM meetings WHERE organizer_id = $1 OR $2 = ANY(participants)`
	if err := r.DB.GetContext(ctx, &total, countQuery, organizerID, email); err != nil {
		logger.Error("MeetingRepository:ListMeetingsForUser:Count:Error", "error", err)
		return nil, err
	}

	var meetings []entity.Meeting
	query := `
		SELECT id, reference, organizer_id, organizer_email, title, description, participants,
			start_time, end_time, google_event_id, meet_link, created_at, updated_at
		FROM meetings
		WHERE organizer_id = $1 OR $2 = ANY(participants)
		ORDER BY start_time DESC
		LIMIT $3 OFFSET $4
	`
	offset := (p.PageNumber - 1) * p.PageSize
	if err := r.DB.SelectContext(ctx, &meetings, query, organizerID, email, p.PageSize, offset); err != nil {
		logger.Error("MeetingRepository:ListMeetingsForUser:Select:Error", "error", err)
		return nil, err
	}

	return &entity.PaginatedMeetingEntity{
		Items:      meetings,
		TotalItems: total,
		PageNumber: p.PageNumber,
		PageSize:   p.PageSize,
	}, nil
}
