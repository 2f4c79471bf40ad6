package rest

import (
	"context"

	"github.com/bchege/wellspring_api/internal/model"
	"github.com/google/uuid"
)

func (api *API) UpdateUserProfile(ctx context.Context, user model.User) (model.User, error) {
	stmt := `
		UPDATE users
		SET first_name = $2, last_name = $3, display_name = $4, bio = $5,
		    avatar = $6, notification_preference = $7, updated_at = NOW()
		WHERE id = $1 AND is_active = TRUE
		RETURNING updated_at`

	err := api.DB.QueryRow(ctx, stmt,
		user.ID, user.FirstName, user.LastName, user.DisplayName,
		user.Bio, user.Avatar, user.NotificationPreference,
	).Scan(&user.UpdatedAt)
	if err != nil {
		return model.User{}, err
	}
	return user, nil
}

func (api *API) UpdateUserConsent(ctx context.Context, userID uuid.UUID, dataProcessing, marketing bool) (model.ConsentResponse, error) {
	var c model.ConsentResponse
	stmt := `
		UPDATE users
		SET data_processing_consent = $2, marketing_consent = $3,
		    consent_date = NOW(), updated_at = NOW()
		WHERE id = $1 AND is_active = TRUE
		RETURNING id, consent_given, data_processing_consent, marketing_consent, consent_date`

	err := api.DB.QueryRow(ctx, stmt, userID, dataProcessing, marketing).Scan(
		&c.ID, &c.ConsentGiven, &c.DataProcessingConsent, &c.MarketingConsent, &c.ConsentDate,
	)
	if err != nil {
		return model.ConsentResponse{}, err
	}
	return c, nil
}

// MarkDeletionRequested flags the account for removal and disables it
// in the same statement, so login and token refresh reject the user
// from the moment the request lands.
func (api *API) MarkDeletionRequested(ctx context.Context, q querier, userID uuid.UUID) error {
	stmt := `
		UPDATE users
		SET deletion_requested = TRUE, deletion_request_date = NOW(),
		    is_active = FALSE, updated_at = NOW()
		WHERE id = $1 AND is_active = TRUE`

	_, err := q.Exec(ctx, stmt, userID)
	return err
}

func (api *API) ExportMemberships(ctx context.Context, userID uuid.UUID) ([]model.MembershipExport, error) {
	stmt := `
		SELECT g.id, g.name, g.description, m.role, m.status, m.joined_at
		FROM group_memberships m
		JOIN groups g ON g.id = m.group_id
		WHERE m.user_id = $1
		ORDER BY m.created_at ASC`

	rows, err := api.DB.Query(ctx, stmt, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	memberships := []model.MembershipExport{}
	for rows.Next() {
		var m model.MembershipExport
		err = rows.Scan(&m.GroupID, &m.GroupName, &m.Description, &m.Role, &m.Status, &m.JoinedAt)
		if err != nil {
			return nil, err
		}
		memberships = append(memberships, m)
	}
	return memberships, rows.Err()
}

func (api *API) ExportPosts(ctx context.Context, userID uuid.UUID) ([]model.PostExport, error) {
	stmt := `
		SELECT id, group_id, content, created_at
		FROM posts
		WHERE author_id = $1 AND is_deleted = FALSE
		ORDER BY created_at ASC`

	rows, err := api.DB.Query(ctx, stmt, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []model.PostExport{}
	for rows.Next() {
		var p model.PostExport
		err = rows.Scan(&p.ID, &p.GroupID, &p.Content, &p.CreatedAt)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func (api *API) ExportComments(ctx context.Context, userID uuid.UUID) ([]model.CommentExport, error) {
	stmt := `
		SELECT id, post_id, content, created_at
		FROM comments
		WHERE author_id = $1 AND is_deleted = FALSE
		ORDER BY created_at ASC`

	rows, err := api.DB.Query(ctx, stmt, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []model.CommentExport{}
	for rows.Next() {
		var c model.CommentExport
		err = rows.Scan(&c.ID, &c.PostID, &c.Content, &c.CreatedAt)
		if err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

func (api *API) ExportParticipations(ctx context.Context, userID uuid.UUID) ([]model.ParticipantExport, error) {
	stmt := `
		SELECT e.id, e.title, e.start_time, p.status, p.responded_at
		FROM event_participants p
		JOIN events e ON e.id = p.event_id
		WHERE p.user_id = $1
		ORDER BY p.responded_at ASC`

	rows, err := api.DB.Query(ctx, stmt, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	participations := []model.ParticipantExport{}
	for rows.Next() {
		var p model.ParticipantExport
		err = rows.Scan(&p.EventID, &p.EventTitle, &p.StartTime, &p.Status, &p.RespondedAt)
		if err != nil {
			return nil, err
		}
		participations = append(participations, p)
	}
	return participations, rows.Err()
}
