package rest

import (
	"context"

	"github.com/bchege/wellspring_api/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

func (api *API) InsertEvent(ctx context.Context, event model.Event) (model.Event, error) {
	stmt := `
		INSERT INTO events (id, group_id, title, description, location, location_details,
		                    start_time, end_time, max_participants, is_online, meeting_link)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at`

	err := api.DB.QueryRow(ctx, stmt,
		event.ID, event.GroupID, event.Title, event.Description,
		event.Location, event.LocationDetails, event.StartTime, event.EndTime,
		event.MaxParticipants, event.IsOnline, event.MeetingLink,
	).Scan(&event.CreatedAt, &event.UpdatedAt)
	if err != nil {
		return model.Event{}, err
	}
	return event, nil
}

func (api *API) GetEventByID(ctx context.Context, eventID uuid.UUID) (model.Event, error) {
	var event model.Event
	stmt := `
		SELECT id, group_id, title, description, location, location_details,
		       start_time, end_time, max_participants, is_online, meeting_link,
		       is_cancelled, created_at, updated_at
		FROM events
		WHERE id = $1`

	err := api.DB.QueryRow(ctx, stmt, eventID).Scan(
		&event.ID, &event.GroupID, &event.Title, &event.Description,
		&event.Location, &event.LocationDetails, &event.StartTime, &event.EndTime,
		&event.MaxParticipants, &event.IsOnline, &event.MeetingLink,
		&event.IsCancelled, &event.CreatedAt, &event.UpdatedAt,
	)
	if err != nil {
		return model.Event{}, err
	}
	return event, nil
}

// lockEvent reads the event row FOR UPDATE so the GOING count stays
// stable until the surrounding transaction commits.
func (api *API) lockEvent(ctx context.Context, tx pgx.Tx, eventID uuid.UUID) (model.Event, error) {
	var event model.Event
	stmt := `
		SELECT id, group_id, title, description, location, location_details,
		       start_time, end_time, max_participants, is_online, meeting_link,
		       is_cancelled, created_at, updated_at
		FROM events
		WHERE id = $1
		FOR UPDATE`

	err := tx.QueryRow(ctx, stmt, eventID).Scan(
		&event.ID, &event.GroupID, &event.Title, &event.Description,
		&event.Location, &event.LocationDetails, &event.StartTime, &event.EndTime,
		&event.MaxParticipants, &event.IsOnline, &event.MeetingLink,
		&event.IsCancelled, &event.CreatedAt, &event.UpdatedAt,
	)
	if err != nil {
		return model.Event{}, err
	}
	return event, nil
}

func (api *API) GetEventDetail(ctx context.Context, eventID uuid.UUID) (model.EventDetailResponse, error) {
	var e model.EventDetailResponse
	stmt := `
		SELECT e.id, e.group_id, e.title, e.description, e.location, e.location_details,
		       e.start_time, e.end_time, e.max_participants, e.is_online, e.meeting_link,
		       e.is_cancelled, e.created_at, e.updated_at, g.name
		FROM events e
		JOIN groups g ON g.id = e.group_id
		WHERE e.id = $1`

	err := api.DB.QueryRow(ctx, stmt, eventID).Scan(
		&e.ID, &e.GroupID, &e.Title, &e.Description,
		&e.Location, &e.LocationDetails, &e.StartTime, &e.EndTime,
		&e.MaxParticipants, &e.IsOnline, &e.MeetingLink,
		&e.IsCancelled, &e.CreatedAt, &e.UpdatedAt, &e.GroupName,
	)
	if err != nil {
		return model.EventDetailResponse{}, err
	}
	return e, nil
}

func (api *API) ListGroupEvents(ctx context.Context, groupID, userID uuid.UUID, upcoming bool) ([]model.EventResponse, error) {
	stmt := `
		SELECT e.id, e.group_id, e.title, e.description, e.location, e.location_details,
		       e.start_time, e.end_time, e.max_participants, e.is_online, e.meeting_link,
		       e.is_cancelled, e.created_at, e.updated_at,
		       (SELECT COUNT(*) FROM event_participants gp
		        WHERE gp.event_id = e.id AND gp.status = $3) AS going_count,
		       (SELECT up.status FROM event_participants up
		        WHERE up.event_id = e.id AND up.user_id = $2) AS user_status
		FROM events e
		WHERE e.group_id = $1 AND e.is_cancelled = FALSE
		  AND ($4 = FALSE OR e.start_time >= NOW())
		ORDER BY e.start_time ASC`

	rows, err := api.DB.Query(ctx, stmt, groupID, userID, model.ParticipationGoing, upcoming)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []model.EventResponse{}
	for rows.Next() {
		var e model.EventResponse
		err = rows.Scan(
			&e.ID, &e.GroupID, &e.Title, &e.Description,
			&e.Location, &e.LocationDetails, &e.StartTime, &e.EndTime,
			&e.MaxParticipants, &e.IsOnline, &e.MeetingLink,
			&e.IsCancelled, &e.CreatedAt, &e.UpdatedAt,
			&e.GoingCount, &e.UserStatus,
		)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (api *API) UpdateEventRepo(ctx context.Context, event model.Event) (model.Event, error) {
	stmt := `
		UPDATE events
		SET title = $2, description = $3, location = $4, location_details = $5,
		    start_time = $6, end_time = $7, max_participants = $8,
		    is_online = $9, meeting_link = $10, updated_at = NOW()
		WHERE id = $1 AND is_cancelled = FALSE
		RETURNING updated_at`

	err := api.DB.QueryRow(ctx, stmt,
		event.ID, event.Title, event.Description, event.Location,
		event.LocationDetails, event.StartTime, event.EndTime,
		event.MaxParticipants, event.IsOnline, event.MeetingLink,
	).Scan(&event.UpdatedAt)
	if err != nil {
		return model.Event{}, err
	}
	return event, nil
}

func (api *API) CancelEventRepo(ctx context.Context, eventID uuid.UUID) error {
	stmt := `
		UPDATE events
		SET is_cancelled = TRUE, updated_at = NOW()
		WHERE id = $1 AND is_cancelled = FALSE`

	tag, err := api.DB.Exec(ctx, stmt, eventID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (api *API) CountGoingExcluding(ctx context.Context, q querier, eventID, excludeUserID uuid.UUID) (int, error) {
	var count int
	stmt := `
		SELECT COUNT(*)
		FROM event_participants
		WHERE event_id = $1 AND user_id <> $2 AND status = $3`

	err := q.QueryRow(ctx, stmt, eventID, excludeUserID, model.ParticipationGoing).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (api *API) UpsertParticipant(ctx context.Context, q querier, eventID, userID uuid.UUID, status model.ParticipationStatus) (model.EventParticipant, error) {
	var p model.EventParticipant
	stmt := `
		INSERT INTO event_participants (event_id, user_id, status, responded_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (event_id, user_id)
		DO UPDATE SET status = EXCLUDED.status, responded_at = NOW()
		RETURNING event_id, user_id, status, responded_at`

	err := q.QueryRow(ctx, stmt, eventID, userID, status).Scan(
		&p.EventID, &p.UserID, &p.Status, &p.RespondedAt,
	)
	if err != nil {
		return model.EventParticipant{}, err
	}
	return p, nil
}

func (api *API) ListEventParticipants(ctx context.Context, eventID uuid.UUID) ([]model.ParticipantResponse, error) {
	stmt := `
		SELECT u.id, u.first_name, u.last_name, u.display_name, u.avatar, p.status, p.responded_at
		FROM event_participants p
		JOIN users u ON u.id = p.user_id
		WHERE p.event_id = $1
		ORDER BY p.responded_at ASC`

	rows, err := api.DB.Query(ctx, stmt, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	participants := []model.ParticipantResponse{}
	for rows.Next() {
		var p model.ParticipantResponse
		err = rows.Scan(&p.ID, &p.FirstName, &p.LastName, &p.DisplayName, &p.Avatar, &p.Status, &p.RespondedAt)
		if err != nil {
			return nil, err
		}
		participants = append(participants, p)
	}
	return participants, rows.Err()
}
