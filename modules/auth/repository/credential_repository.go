package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"team-scheduler-api/core/logger"
	"team-scheduler-api/modules/auth/entity"
)

func (r *AuthRepository) GetCredentialByEmail(ctx context.Context, email string) (*entity.GoogleCredential, error) {
	var cred entity.GoogleCredential
	query := `
		SELECT id, user_id, email, access_token, refresh_token, expires_at, scope, created_at, updated_at
		FROM google_credentials
		WHERE email = $1
	`
	err := r.DB.GetContext(ctx, &cred, query, strings.ToLower(email))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("AuthRepository:GetCredentialByEmail:Error", "error", err, "email", email)
		return nil, err
	}
	return &cred, nil
}

// UpsertCredential stores a credential keyed by email. Concurrent refreshes
// for the same email resolve to last-write-wins, which is safe because the
// provider keeps older access tokens valid until their natural expiry.
func (r *AuthRepository) UpsertCredential(ctx context.Context, cred *entity.GoogleCredential) error {
	query := `
		INSERT INTO google_credentials (id, user_id, email, access_token, refresh_token, expires_at, scope, created_at, updated_at)
		VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6, NOW(), NOW())
		ON CONFLICT (email)
		DO UPDATE SET
			user_id = EXCLUDED.user_id,
			access_token = EXCLUDED.access_token,
			refresh_token = COALESCE(EXCLUDED.refresh_token, google_credentials.refresh_token),
			expires_at = EXCLUDED.expires_at,
			scope = EXCLUDED.scope,
			updated_at = NOW()
	`
	err := r.DB.ExecContext(ctx, query,
		cred.UserID, strings.ToLower(cred.Email), cred.AccessToken, cred.RefreshToken, cred.ExpiresAt, cred.Scope)
	if err != nil {
		logger.Error("AuthRepository:UpsertCredential:Error", "error", err, "email", cred.Email)
		return err
	}
	return nil
}

// DeleteCredentialByEmail removes a credential whose refresh grant the
// provider reported as permanently invalid. The owner must re-authorize.
func (r *AuthRepository) DeleteCredentialByEmail(ctx context.Context, email string) error {
	query := `DELETE FROM google_credentials WHERE email = $1`
	err := r.DB.ExecContext(ctx, query, strings.ToLower(email))
	if err != nil {
		logger.Error("AuthRepository:DeleteCredentialByEmail:Error", "error", err, "email", email)
		return err
	}
	return nil
}

// ListExpiringCredentials returns credentials whose expiry falls before the
// cutoff and that still hold a refresh token. Used by the background sweep.
func (r *AuthRepository) ListExpiringCredentials(ctx context.Context, cutoff time.Time) ([]entity.GoogleCredential, error) {
	var creds []entity.GoogleCredential
	query := `
		SELECT id, user_id, email, access_token, refresh_token, expires_at, scope, created_at, updated_at
		FROM google_credentials
		WHERE expires_at IS NOT NULL AND expires_at < $1 AND refresh_token IS NOT NULL
		ORDER BY expires_at
	`
	err := r.DB.SelectContext(ctx, &creds, query, cutoff)
	if err != nil {
		logger.Error("AuthRepository:ListExpiringCredentials:Error", "error", err)
		return nil, err
	}
	return creds, nil
}
