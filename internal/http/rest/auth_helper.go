package rest

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bchege/wellspring_api/internal/model"
	"github.com/bchege/wellspring_api/util"
	"github.com/bchege/wellspring_api/util/values"
	"github.com/golang-jwt/jwt"
	"github.com/jackc/pgx/v5"
)

// authLookupStatus classifies a credential-store lookup failure: a
// missing row stays a uniform 401, anything else (connection loss,
// query failure) surfaces as a 500 instead of masquerading as bad
// credentials. Lookups may wrap pgx.ErrNoRows, hence errors.Is.
func authLookupStatus(err error) string {
	if errors.Is(err, pgx.ErrNoRows) {
		return values.NotAuthorised
	}
	return values.Error
}

type TokenClaims struct {
	UserID string `json:"sub"`
	Email  string `json:"email"`
	Type   string `json:"typ"`
	Exp    int64  `json:"exp"`
}

// createToken issues a short-lived self-contained access token carrying
// the subject id and email.
func (api *API) createToken(id, email string) (string, time.Time, error) {
	expTime, err := time.ParseDuration(api.Config.JwtExpires)
	if err != nil {
		return "", time.Time{}, err
	}
	expiresAt := time.Now().Add(expTime)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   id,
		"email": email,
		"exp":   expiresAt.Unix(),
		"iat":   time.Now().Unix(),
		"typ":   "access",
	})

	tokenString, err := token.SignedString([]byte(api.Config.JwtSecret))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

func (api *API) createRefreshToken(id string) (string, time.Time, error) {
	expTime, err := time.ParseDuration(api.Config.RefreshExpiry)
	if err != nil {
		return "", time.Time{}, err
	}
	expiresAt := time.Now().Add(expTime)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": id,
		"exp": expiresAt.Unix(),
		"iat": time.Now().Unix(),
		"typ": "refresh",
	})

	tokenString, err := token.SignedString([]byte(api.Config.RefreshSecret))
	if err != nil {
		return "", time.Time{}, err
	}

	return tokenString, expiresAt, nil
}

// issueTokenPair creates the access/refresh pair and persists the
// refresh token so it can be revoked individually.
func (api *API) issueTokenPair(ctx context.Context, user model.User) (string, string, error) {
	accessToken, _, err := api.createToken(user.ID.String(), user.Email)
	if err != nil {
		return "", "", err
	}

	refreshToken, expiresAt, err := api.createRefreshToken(user.ID.String())
	if err != nil {
		return "", "", err
	}

	if err = api.StoreRefreshToken(ctx, user.ID.String(), refreshToken, expiresAt); err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

func (api *API) CreateNewUser(ctx context.Context, req model.RegisterRequest) (model.AuthResponse, string, string, error) {
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	if err := util.ValidateStruct(req); err != nil {
		// required consent flags fail validation when false
		return model.AuthResponse{}, values.BadRequestBody, "Consent and all required fields must be provided", err
	}

	exists, err := api.EmailExists(ctx, req.Email)
	if err != nil {
		return model.AuthResponse{}, values.Error, "Error checking email", err
	}
	if exists {
		return model.AuthResponse{}, values.Conflict, "User already exists with this email", errValue("email already registered")
	}

	passwordHash, err := util.HashPassword(req.Password)
	if err != nil {
		return model.AuthResponse{}, values.Error, "Error processing credentials", err
	}

	displayName := req.DisplayName
	if displayName == nil {
		name := util.DisplayName(req.FirstName, req.LastName)
		displayName = &name
	}

	now := time.Now()
	user := model.User{
		ID:                    util.GenerateUUID(),
		Email:                 req.Email,
		PasswordHash:          passwordHash,
		FirstName:             req.FirstName,
		LastName:              req.LastName,
		DisplayName:           displayName,
		ConsentGiven:          req.ConsentGiven,
		ConsentDate:           &now,
		DataProcessingConsent: req.DataProcessingConsent,
		IsActive:              true,
	}

	created, err := api.CreateNewUserRepo(ctx, user)
	if err != nil {
		return model.AuthResponse{}, values.Error, "Error creating new user", err
	}

	accessToken, refreshToken, err := api.issueTokenPair(ctx, created)
	if err != nil {
		return model.AuthResponse{}, values.Error, "Error creating session", err
	}

	resp := model.AuthResponse{
		User: model.AuthUserResponse{
			ID:          created.ID,
			Email:       created.Email,
			FirstName:   created.FirstName,
			LastName:    created.LastName,
			DisplayName: created.DisplayName,
			CreatedAt:   created.CreatedAt,
		},
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}

	return resp, values.Created, "User created successfully", nil
}

func (api *API) LoginUser(ctx context.Context, req model.LoginRequest) (model.AuthResponse, string, string, error) {
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	if err := util.ValidateStruct(req); err != nil {
		return model.AuthResponse{}, values.BadRequestBody, "Email and password are required", err
	}

	// One uniform failure for unknown account, disabled account and bad
	// password so responses never leak which emails exist.
	const failedLogin = "Invalid email or password"

	user, err := api.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if authLookupStatus(err) == values.Error {
			return model.AuthResponse{}, values.Error, "Error fetching user", err
		}
		return model.AuthResponse{}, values.NotAuthorised, failedLogin, errValue("unknown email")
	}

	if !user.IsActive {
		return model.AuthResponse{}, values.NotAuthorised, failedLogin, errValue("account inactive")
	}

	if !util.VerifyPassword(user.PasswordHash, req.Password) {
		return model.AuthResponse{}, values.NotAuthorised, failedLogin, errValue("password mismatch")
	}

	if err = api.UpdateLastLogin(ctx, user.ID.String()); err != nil {
		return model.AuthResponse{}, values.Error, "Error updating login record", err
	}

	accessToken, refreshToken, err := api.issueTokenPair(ctx, user)
	if err != nil {
		return model.AuthResponse{}, values.Error, "Error creating session", err
	}

	resp := model.AuthResponse{
		User: model.AuthUserResponse{
			ID:          user.ID,
			Email:       user.Email,
			FirstName:   user.FirstName,
			LastName:    user.LastName,
			DisplayName: user.DisplayName,
			CreatedAt:   user.CreatedAt,
		},
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}

	return resp, values.Success, "Login successful", nil
}

func (api *API) RefreshAccessToken(ctx context.Context, refreshToken string) (model.RefreshResponse, string, string, error) {
	const invalidToken = "Invalid or expired refresh token"

	claims, err := api.verifyToken(refreshToken, true)
	if err != nil {
		return model.RefreshResponse{}, values.NotAuthorised, invalidToken, err
	}

	stored, err := api.GetRefreshToken(ctx, refreshToken)
	if err != nil {
		if authLookupStatus(err) == values.Error {
			return model.RefreshResponse{}, values.Error, "Error fetching token", err
		}
		return model.RefreshResponse{}, values.NotAuthorised, invalidToken, err
	}

	if stored.IsRevoked || stored.ExpiresAt.Before(time.Now()) {
		return model.RefreshResponse{}, values.NotAuthorised, invalidToken, errValue("token revoked or expired")
	}

	user, err := api.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if authLookupStatus(err) == values.Error {
			return model.RefreshResponse{}, values.Error, "Error fetching user", err
		}
		return model.RefreshResponse{}, values.NotAuthorised, invalidToken, err
	}
	if !user.IsActive {
		return model.RefreshResponse{}, values.NotAuthorised, invalidToken, errValue("account inactive")
	}

	accessToken, _, err := api.createToken(user.ID.String(), user.Email)
	if err != nil {
		return model.RefreshResponse{}, values.Error, "Error creating token", err
	}

	return model.RefreshResponse{AccessToken: accessToken}, values.Success, "Token refreshed", nil
}

// LogoutUser revokes the refresh token. Revoking an already revoked or
// unknown token is not an error.
func (api *API) LogoutUser(ctx context.Context, refreshToken string) (string, string, error) {
	if err := api.RevokeRefreshToken(ctx, refreshToken); err != nil {
		return values.Error, "Error revoking token", err
	}
	return values.Success, "Logged out", nil
}
