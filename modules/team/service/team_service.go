package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"team-scheduler-api/core/errors"
	"team-scheduler-api/core/logger"
	"team-scheduler-api/core/params"
	authEntity "team-scheduler-api/modules/auth/entity"
	"team-scheduler-api/modules/team/dto"
)

// DirectoryStore is the listing surface the team service needs.
type DirectoryStore interface {
	ListUsersByDomain(ctx context.Context, domain string, p params.QueryParams) (*authEntity.PaginatedUserEntity, error)
	HasCredential(ctx context.Context, email string) (bool, error)
}

// UserStore is the user persistence surface shared with the auth module.
type UserStore interface {
	GetUserByID(ctx context.Context, id uuid.UUID) (*authEntity.User, error)
	UpsertUser(ctx context.Context, user *authEntity.User) (*authEntity.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

// TeamServiceInterface defines the teammate directory operations
type TeamServiceInterface interface {
	ListTeammates(ctx context.Context, requesterEmail string, p params.QueryParams) (*dto.PaginatedTeammates, error)
	AddTeammate(ctx context.Context, requesterEmail string, req *dto.AddTeammateRequest) (*dto.TeammateResponse, error)
	RemoveTeammate(ctx context.Context, requesterEmail string, teammateID uuid.UUID) error
}

// TeamService exposes the per-domain teammate directory. A teammate's domain
// is always derived from the requester's email; one company cannot browse
// another's directory.
type TeamService struct {
	directory DirectoryStore
	users     UserStore
}

func NewTeamService(directory DirectoryStore, users UserStore) *TeamService {
	return &TeamService{directory: directory, users: users}
}

// ListTeammates returns the requester's domain directory with each entry's
// calendar-connection status.
func (s *TeamService) ListTeammates(ctx context.Context, requesterEmail string, p params.QueryParams) (*dto.PaginatedTeammates, error) {
	domain, appErr := domainOf(requesterEmail)
	if appErr != nil {
		return nil, appErr
	}

	page, err := s.directory.ListUsersByDomain(ctx, domain, p)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to list teammates", err)
	}

	items := make([]dto.TeammateResponse, 0, len(page.Items))
	for _, u := range page.Items {
		connected, err := s.directory.HasCredential(ctx, u.Email)
		if err != nil {
			logger.Warn("TeamService:ListTeammates:HasCredential:Error", "error", err, "email", u.Email)
		}
		items = append(items, dto.TeammateResponse{
			ID:        u.ID.String(),
			Email:     u.Email,
			Name:      u.Name,
			Connected: connected,
		})
	}

	return &dto.PaginatedTeammates{
		Items:      items,
		TotalItems: page.TotalItems,
		PageNumber: page.PageNumber,
		PageSize:   page.PageSize,
	}, nil
}

// AddTeammate pre-provisions a directory entry. The teammate must share the
// requester's domain; availability searches including them will still fail
// until they sign in and authorize calendar access.
func (s *TeamService) AddTeammate(ctx context.Context, requesterEmail string, req *dto.AddTeammateRequest) (*dto.TeammateResponse, error) {
	domain, appErr := domainOf(requesterEmail)
	if appErr != nil {
		return nil, appErr
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "a valid email is required", nil)
	}
	if !strings.HasSuffix(email, "@"+domain) {
		return nil, errors.NewAppError(errors.ErrForbidden, "teammate must be on your company domain", nil)
	}

	user := &authEntity.User{Email: email, Domain: &domain}
	if name := strings.TrimSpace(req.Name); name != "" {
		user.Name = &name
	}

	stored, err := s.users.UpsertUser(ctx, user)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to add teammate", err)
	}

	connected, err := s.directory.HasCredential(ctx, stored.Email)
	if err != nil {
		logger.Warn("TeamService:AddTeammate:HasCredential:Error", "error", err, "email", stored.Email)
	}

	return &dto.TeammateResponse{
		ID:        stored.ID.String(),
		Email:     stored.Email,
		Name:      stored.Name,
		Connected: connected,
	}, nil
}

// RemoveTeammate deletes a directory entry. The target must be on the
// requester's domain.
func (s *TeamService) RemoveTeammate(ctx context.Context, requesterEmail string, teammateID uuid.UUID) error {
	domain, appErr := domainOf(requesterEmail)
	if appErr != nil {
		return appErr
	}

	target, err := s.users.GetUserByID(ctx, teammateID)
	if err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "failed to look up teammate", err)
	}
	if target == nil {
		return errors.NewAppError(errors.ErrNotFound, "teammate not found", nil)
	}
	if !strings.HasSuffix(strings.ToLower(target.Email), "@"+domain) {
		return errors.NewAppError(errors.ErrForbidden, "teammate is not on your company domain", nil)
	}

	if err := s.users.DeleteUser(ctx, teammateID); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "failed to remove teammate", err)
	}
	return nil
}

func domainOf(email string) (string, *errors.AppError) {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return "", errors.NewAppError(errors.ErrInvalidInput, "requester email has no domain", nil)
	}
	return strings.ToLower(email[at+1:]), nil
}
