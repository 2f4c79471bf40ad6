package rest

import (
	"errors"
	"fmt"
	"testing"

	"github.com/bchege/wellspring_api/config"
	"github.com/bchege/wellspring_api/util/values"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAPI() *API {
	return &API{
		Config: &config.Config{
			JwtSecret:     "access-secret-for-tests",
			JwtExpires:    "15m",
			RefreshSecret: "refresh-secret-for-tests",
			RefreshExpiry: "720h",
		},
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	api := testAPI()

	token, expiresAt, err := api.createToken("2f9b9c51-4c6a-4f4e-9f48-2f1a89a1a111", "member@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.False(t, expiresAt.IsZero())

	claims, err := api.verifyToken(token, false)
	require.NoError(t, err)
	assert.Equal(t, "2f9b9c51-4c6a-4f4e-9f48-2f1a89a1a111", claims.UserID)
	assert.Equal(t, "member@example.com", claims.Email)
	assert.Equal(t, "access", claims.Type)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	api := testAPI()

	token, _, err := api.createRefreshToken("2f9b9c51-4c6a-4f4e-9f48-2f1a89a1a111")
	require.NoError(t, err)

	claims, err := api.verifyToken(token, true)
	require.NoError(t, err)
	assert.Equal(t, "2f9b9c51-4c6a-4f4e-9f48-2f1a89a1a111", claims.UserID)
	assert.Equal(t, "refresh", claims.Type)
}

func TestAccessTokenRejectedAsRefresh(t *testing.T) {
	api := testAPI()

	token, _, err := api.createToken("2f9b9c51-4c6a-4f4e-9f48-2f1a89a1a111", "member@example.com")
	require.NoError(t, err)

	// Signed with the access secret, so verification under the refresh
	// secret must fail outright.
	_, err = api.verifyToken(token, true)
	assert.Error(t, err)
}

func TestRefreshTokenRejectedAsAccess(t *testing.T) {
	api := testAPI()

	token, _, err := api.createRefreshToken("2f9b9c51-4c6a-4f4e-9f48-2f1a89a1a111")
	require.NoError(t, err)

	_, err = api.verifyToken(token, false)
	assert.Error(t, err)
}

func TestExpiredTokenReported(t *testing.T) {
	api := testAPI()
	api.Config.JwtExpires = "-1m"

	token, _, err := api.createToken("2f9b9c51-4c6a-4f4e-9f48-2f1a89a1a111", "member@example.com")
	require.NoError(t, err)

	_, err = api.verifyToken(token, false)
	require.Error(t, err)
	assert.Equal(t, "token expired", err.Error())
}

func TestTamperedTokenRejected(t *testing.T) {
	api := testAPI()

	token, _, err := api.createToken("2f9b9c51-4c6a-4f4e-9f48-2f1a89a1a111", "member@example.com")
	require.NoError(t, err)

	_, err = api.verifyToken(token+"x", false)
	assert.Error(t, err)

	_, err = api.verifyToken("not-a-token", false)
	assert.Error(t, err)
}

func TestAuthLookupStatus(t *testing.T) {
	// A missing row keeps the uniform credentials failure.
	assert.Equal(t, values.NotAuthorised, authLookupStatus(pgx.ErrNoRows))
	assert.Equal(t, values.NotAuthorised, authLookupStatus(fmt.Errorf("refresh token lookup: %w", pgx.ErrNoRows)))

	// Infrastructure failures must not look like bad credentials.
	assert.Equal(t, values.Error, authLookupStatus(errors.New("connection refused")))
	assert.Equal(t, values.Error, authLookupStatus(fmt.Errorf("query: %w", errors.New("timeout"))))
}

func TestWrongSecretRejected(t *testing.T) {
	api := testAPI()

	token, _, err := api.createToken("2f9b9c51-4c6a-4f4e-9f48-2f1a89a1a111", "member@example.com")
	require.NoError(t, err)

	other := testAPI()
	other.Config.JwtSecret = "a-different-secret"

	_, err = other.verifyToken(token, false)
	assert.Error(t, err)
}
