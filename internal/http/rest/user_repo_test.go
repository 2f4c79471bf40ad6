package rest

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingQuerier captures the statement and args handed to Exec so
// repo write paths can be checked without a live database.
type recordingQuerier struct {
	stmt string
	args []any
}

func (r *recordingQuerier) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	r.stmt = sql
	r.args = args
	return pgconn.CommandTag{}, nil
}

func (r *recordingQuerier) Query(_ context.Context, _ string, _ ...any) (pgx.Rows, error) {
	return nil, nil
}

func (r *recordingQuerier) QueryRow(_ context.Context, _ string, _ ...any) pgx.Row {
	return nil
}

func TestMarkDeletionRequestedDisablesAccount(t *testing.T) {
	api := &API{}
	q := &recordingQuerier{}
	userID := uuid.New()

	err := api.MarkDeletionRequested(context.Background(), q, userID)
	require.NoError(t, err)

	// The request must flag the row for removal and disable it in the
	// same statement, so login and token refresh reject the user
	// immediately.
	assert.True(t, strings.Contains(q.stmt, "deletion_requested = TRUE"))
	assert.True(t, strings.Contains(q.stmt, "deletion_request_date = NOW()"))
	assert.True(t, strings.Contains(q.stmt, "is_active = FALSE"))
	require.Len(t, q.args, 1)
	assert.Equal(t, userID, q.args[0])
}
