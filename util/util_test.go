package util

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/bchege/wellspring_api/util/values"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusCode(t *testing.T) {
	cases := []struct {
		status string
		want   int
	}{
		{values.Success, http.StatusOK},
		{values.Created, http.StatusCreated},
		{values.Error, http.StatusInternalServerError},
		{values.BadRequestBody, http.StatusBadRequest},
		{values.Failed, http.StatusBadRequest},
		{values.Capacity, http.StatusBadRequest},
		{values.Unprocessable, http.StatusUnprocessableEntity},
		{values.NotAllowed, http.StatusForbidden},
		{values.Invariant, http.StatusForbidden},
		{values.Conflict, http.StatusConflict},
		{values.NotFound, http.StatusNotFound},
		{values.NotAuthorised, http.StatusUnauthorized},
		{values.TokenExpired, http.StatusUnauthorized},
		{"anything-else", http.StatusOK},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, StatusCode(c.status), "status %q", c.status)
	}
}

func TestNotBlank(t *testing.T) {
	assert.True(t, NotBlank("hello"))
	assert.False(t, NotBlank(""))
	assert.False(t, NotBlank("   "))
	assert.False(t, NotBlank("\t\n"))
}

func TestIsEmail(t *testing.T) {
	assert.True(t, IsEmail("member@example.com"))
	assert.True(t, IsEmail("first.last+tag@sub.example.co"))
	assert.False(t, IsEmail("not-an-email"))
	assert.False(t, IsEmail("missing@tld@example.com"))
	assert.False(t, IsEmail(""))
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.True(t, VerifyPassword(hash, "correct horse battery staple"))
	assert.False(t, VerifyPassword(hash, "wrong password"))
	assert.False(t, VerifyPassword("not-a-hash", "correct horse battery staple"))
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Ada Lovelace", DisplayName("Ada", "Lovelace"))
	assert.Equal(t, "Ada", DisplayName("Ada", ""))
	assert.Equal(t, "Lovelace", DisplayName("", "Lovelace"))
	assert.Equal(t, "", DisplayName("", ""))
}

func TestFormatTime(t *testing.T) {
	ts := time.Date(2025, time.March, 14, 9, 26, 0, 0, time.UTC)
	assert.Equal(t, "14 March 2025", FormatTime("2 January 2006", ts))
}

func TestGetUserIDFromContext(t *testing.T) {
	id := uuid.New()
	ctx := context.WithValue(context.Background(), values.ContextUserIDKey, id.String())

	got, err := GetUserIDFromContext(ctx)
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = GetUserIDFromContext(context.Background())
	assert.Error(t, err)

	badCtx := context.WithValue(context.Background(), values.ContextUserIDKey, "not-a-uuid")
	_, err = GetUserIDFromContext(badCtx)
	assert.Error(t, err)
}

func TestValidateStructGroupCapacity(t *testing.T) {
	type capped struct {
		MaxMembers int `validate:"omitempty,group_capacity"`
	}

	assert.NoError(t, ValidateStruct(capped{MaxMembers: 8}))
	assert.NoError(t, ValidateStruct(capped{MaxMembers: 4}))
	assert.NoError(t, ValidateStruct(capped{MaxMembers: 12}))
	assert.NoError(t, ValidateStruct(capped{}))
	assert.Error(t, ValidateStruct(capped{MaxMembers: 3}))
	assert.Error(t, ValidateStruct(capped{MaxMembers: 13}))
}

func TestValidateStructRSVPStatus(t *testing.T) {
	type response struct {
		Status string `validate:"required,rsvp_status"`
	}

	assert.NoError(t, ValidateStruct(response{Status: "GOING"}))
	assert.NoError(t, ValidateStruct(response{Status: "MAYBE"}))
	assert.NoError(t, ValidateStruct(response{Status: "NOT_GOING"}))
	assert.Error(t, ValidateStruct(response{Status: "going"}))
	assert.Error(t, ValidateStruct(response{Status: "DECLINED"}))
	assert.Error(t, ValidateStruct(response{}))
}
