package repository

import (
	"context"
	"database/sql"
	"strings"

	"team-scheduler-api/core/logger"
	"team-scheduler-api/modules/auth/entity"

	"github.com/google/uuid"
)

func (r *AuthRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var user entity.User
	query := `SELECT id, email, name, domain, image_url, created_at, updated_at FROM users WHERE id = $1`
	err := r.DB.GetContext(ctx, &user, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("AuthRepository:GetUserByID:Error", "error", err, "user_id", id)
		return nil, err
	}
	return &user, nil
}

func (r *AuthRepository) GetUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	query := `SELECT id, email, name, domain, image_url, created_at, updated_at FROM users WHERE email = $1`
	err := r.DB.GetContext(ctx, &user, query, strings.ToLower(email))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("AuthRepository:GetUserByEmail:Error", "error", err, "email", email)
		return nil, err
	}
	return &user, nil
}

// UpsertUser inserts or updates a user keyed by email and returns the stored
// row. Pre-provisioned rows (no name/image yet) are filled in on first login.
func (r *AuthRepository) UpsertUser(ctx context.Context, user *entity.User) (*entity.User, error) {
	query := `
		INSERT INTO users (id, email, name, domain, image_url, created_at, updated_at)
		VALUES (COALESCE(NULLIF($1, '00000000-0000-0000-0000-000000000000')::uuid, gen_random_uuid()), $2, $3, $4, $5, NOW(), NOW())
		ON CONFLICT (email)
		DO UPDATE SET
			name = COALESCE(EXCLUDED.name, users.name),
			domain = COALESCE(EXCLUDED.domain, users.domain),
			image_url = COALESCE(EXCLUDED.image_url, users.image_url),
			updated_at = NOW()
		RETURNING id, email, name, domain, image_url, created_at, updated_at
	`

	var stored entity.User
	err := r.DB.GetContext(ctx, &stored, query,
		user.ID, strings.ToLower(user.Email), user.Name, user.Domain, user.ImageURL)
	if err != nil {
		logger.Error("AuthRepository:UpsertUser:Error", "error", err, "email", user.Email)
		return nil, err
	}
	return &stored, nil
}

func (r *AuthRepository) DeleteUser(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM users WHERE id = $1`
	err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		logger.Error("AuthRepository:DeleteUser:Error", "error", err, "user_id", id)
		return err
	}
	return nil
}
