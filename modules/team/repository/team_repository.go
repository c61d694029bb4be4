package repository

import (
	"context"
	"strings"

	"team-scheduler-api/core/database"
	"team-scheduler-api/core/logger"
	"team-scheduler-api/core/params"
	"team-scheduler-api/modules/auth/entity"
)

// TeamRepository reads the user directory by company domain.
type TeamRepository struct {
	DB database.Database
}

func NewTeamRepository(db database.Database) *TeamRepository {
	return &TeamRepository{DB: db}
}

// ListUsersByDomain returns users on the given email domain, alphabetically.
func (r *TeamRepository) ListUsersByDomain(ctx context.Context, domain string, p params.QueryParams) (*entity.PaginatedUserEntity, error) {
	domain = strings.ToLower(domain)

	var total int
	countQuery := `SELECT COUNT(*) FROM users WHERE domain = $1`
	if err := r.DB.GetContext(ctx, &total, countQuery, domain); err != nil {
		logger.Error("TeamRepository:ListUsersByDomain:Count:Error", "error", err, "domain", domain)
		return nil, err
	}

	var users []entity.User
	query := `
		SELECT id, email, name, domain, image_url, created_at, updated_at
		FROM users
		WHERE domain = $1
		ORDER BY email
		LIMIT $2 OFFSET $3
	`
	offset := (p.PageNumber - 1) * p.PageSize
	if err := r.DB.SelectContext(ctx, &users, query, domain, p.PageSize, offset); err != nil {
		logger.Error("TeamRepository:ListUsersByDomain:Select:Error", "error", err, "domain", domain)
		return nil, err
	}

	return &entity.PaginatedUserEntity{
		Items:      users,
		TotalItems: total,
		PageNumber: p.PageNumber,
		PageSize:   p.PageSize,
	}, nil
}

// HasCredential reports whether a user email has a stored calendar credential.
func (r *TeamRepository) HasCredential(ctx context.Context, email string) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM google_credentials WHERE email = $1`
	if err := r.DB.GetContext(ctx, &count, query, strings.ToLower(email)); err != nil {
		logger.Error("TeamRepository:HasCredential:Error", "error", err, "email", email)
		return false, err
	}
	return count > 0, nil
}
