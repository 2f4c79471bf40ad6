package rest

import (
	"context"
	"fmt"
	"time"

	"github.com/bchege/wellspring_api/internal/model"
)

func (api *API) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	stmt := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`

	err := api.DB.QueryRow(ctx, stmt, email).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (api *API) CreateNewUserRepo(ctx context.Context, user model.User) (model.User, error) {
	stmt := `
        INSERT INTO users (
            id, email, password_hash, first_name, last_name, display_name,
            consent_given, consent_date, data_processing_consent,
            notification_preference, is_active
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 'MINIMAL', $10)
        RETURNING id, email, first_name, last_name, display_name, created_at, updated_at
    `
	var created model.User
	err := api.DB.QueryRow(ctx, stmt,
		user.ID, user.Email, user.PasswordHash, user.FirstName, user.LastName,
		user.DisplayName, user.ConsentGiven, user.ConsentDate,
		user.DataProcessingConsent, user.IsActive,
	).Scan(
		&created.ID, &created.Email, &created.FirstName, &created.LastName,
		&created.DisplayName, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return model.User{}, err
	}
	created.IsActive = user.IsActive
	return created, nil
}

func (api *API) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	var user model.User
	stmt := `-- name: get-user-by-email
		SELECT id, email, password_hash, first_name, last_name, display_name, is_active, created_at
		FROM users WHERE email = $1`

	err := api.DB.QueryRow(ctx, stmt, email).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.FirstName,
		&user.LastName,
		&user.DisplayName,
		&user.IsActive,
		&user.CreatedAt,
	)
	if err != nil {
		return model.User{}, err
	}
	return user, nil
}

func (api *API) GetUserByID(ctx context.Context, userID string) (model.User, error) {
	var user model.User
	stmt := `
		SELECT id, email, first_name, last_name, display_name, bio, avatar,
		       notification_preference, consent_given, consent_date,
		       data_processing_consent, marketing_consent, is_verified, is_active,
		       deletion_requested, last_login_at, created_at, updated_at
		FROM users WHERE id = $1`

	err := api.DB.QueryRow(ctx, stmt, userID).Scan(
		&user.ID,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.DisplayName,
		&user.Bio,
		&user.Avatar,
		&user.NotificationPreference,
		&user.ConsentGiven,
		&user.ConsentDate,
		&user.DataProcessingConsent,
		&user.MarketingConsent,
		&user.IsVerified,
		&user.IsActive,
		&user.DeletionRequested,
		&user.LastLoginAt,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return model.User{}, err
	}
	return user, nil
}

func (api *API) UpdateLastLogin(ctx context.Context, userID string) error {
	stmt := `UPDATE users SET last_login_at = NOW() WHERE id = $1`

	_, err := api.DB.Exec(ctx, stmt, userID)
	return err
}

// StoreRefreshToken stores the refresh token in the database
func (api *API) StoreRefreshToken(ctx context.Context, userID, token string, expiresAt time.Time) error {
	stmt := `
        INSERT INTO auth_tokens (user_id, token_type, token_value, expires_at, created_at)
        VALUES ($1, 'refresh', $2, $3, NOW())
    `
	_, err := api.DB.Exec(ctx, stmt, userID, token, expiresAt)
	if err != nil {
		return fmt.Errorf("failed to store refresh token: %w", err)
	}
	return nil
}

func (api *API) GetRefreshToken(ctx context.Context, token string) (model.RefreshToken, error) {
	stmt := `
        SELECT id, user_id, token_value, expires_at, is_revoked, created_at
        FROM auth_tokens
        WHERE token_value = $1 AND token_type = 'refresh'
    `
	var rt model.RefreshToken
	err := api.DB.QueryRow(ctx, stmt, token).Scan(
		&rt.ID, &rt.UserID, &rt.Token, &rt.ExpiresAt, &rt.IsRevoked, &rt.CreatedAt,
	)
	if err != nil {
		return model.RefreshToken{}, fmt.Errorf("refresh token lookup: %w", err)
	}
	return rt, nil
}

func (api *API) RevokeRefreshToken(ctx context.Context, token string) error {
	stmt := `
        UPDATE auth_tokens
        SET is_revoked = TRUE
        WHERE token_value = $1
    `
	_, err := api.DB.Exec(ctx, stmt, token)
	if err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return nil
}
