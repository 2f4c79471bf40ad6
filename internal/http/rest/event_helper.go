package rest

import (
	"context"

	"github.com/bchege/wellspring_api/internal/model"
	"github.com/bchege/wellspring_api/internal/policy"
	"github.com/bchege/wellspring_api/util"
	"github.com/bchege/wellspring_api/util/values"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateEventHelper only requires active membership; update and cancel
// require the facilitator role.
func (api *API) CreateEventHelper(ctx context.Context, groupID, userID uuid.UUID, req model.CreateEventRequest) (model.Event, string, string, error) {
	if err := util.ValidateStruct(req); err != nil {
		return model.Event{}, values.BadRequestBody, "Title and start time are required", err
	}

	membership, err := api.GetMembership(ctx, api.DB, userID, groupID)
	if err != nil {
		return model.Event{}, values.Error, "Failed to check membership", err
	}
	if !policy.IsActiveMember(membership) {
		return model.Event{}, values.NotAllowed, "Access denied: Not a member of this group", errValue("not an active member")
	}

	if req.EndTime != nil && !req.EndTime.After(req.StartTime) {
		return model.Event{}, values.BadRequestBody, "End time must be after start time", errValue("end_time before start_time")
	}

	event := model.Event{
		ID:              util.GenerateUUID(),
		GroupID:         groupID,
		Title:           req.Title,
		Description:     req.Description,
		Location:        req.Location,
		LocationDetails: req.LocationDetails,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		MaxParticipants: req.MaxParticipants,
		IsOnline:        req.IsOnline,
		MeetingLink:     req.MeetingLink,
	}

	created, err := api.InsertEvent(ctx, event)
	if err != nil {
		return model.Event{}, values.Error, "Failed to create event", err
	}

	return created, values.Created, "Event created successfully", nil
}

func (api *API) ListGroupEventsHelper(ctx context.Context, groupID, userID uuid.UUID, upcoming bool) ([]model.EventResponse, string, string, error) {
	membership, err := api.GetMembership(ctx, api.DB, userID, groupID)
	if err != nil {
		return nil, values.Error, "Failed to check membership", err
	}
	if !policy.IsActiveMember(membership) {
		return nil, values.NotAllowed, "Access denied: Not a member of this group", errValue("not an active member")
	}

	events, err := api.ListGroupEvents(ctx, groupID, userID, upcoming)
	if err != nil {
		return nil, values.Error, "Failed to list events", err
	}

	return events, values.Success, "Events retrieved", nil
}

func (api *API) GetEventHelper(ctx context.Context, eventID, userID uuid.UUID) (model.EventDetailResponse, string, string, error) {
	event, err := api.GetEventDetail(ctx, eventID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return model.EventDetailResponse{}, values.NotFound, "Event not found", err
		}
		return model.EventDetailResponse{}, values.Error, "Failed to get event", err
	}

	membership, err := api.GetMembership(ctx, api.DB, userID, event.GroupID)
	if err != nil {
		return model.EventDetailResponse{}, values.Error, "Failed to check membership", err
	}
	if !policy.IsActiveMember(membership) {
		return model.EventDetailResponse{}, values.NotAllowed, "Access denied: Not a member of this group", errValue("not an active member")
	}

	participants, err := api.ListEventParticipants(ctx, eventID)
	if err != nil {
		return model.EventDetailResponse{}, values.Error, "Failed to list participants", err
	}
	event.Participants = participants

	return event, values.Success, "Event retrieved", nil
}

func (api *API) UpdateEventHelper(ctx context.Context, eventID, userID uuid.UUID, req model.UpdateEventRequest) (model.Event, string, string, error) {
	if err := util.ValidateStruct(req); err != nil {
		return model.Event{}, values.BadRequestBody, "Invalid event fields", err
	}

	event, err := api.GetEventByID(ctx, eventID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return model.Event{}, values.NotFound, "Event not found", err
		}
		return model.Event{}, values.Error, "Failed to get event", err
	}

	membership, err := api.GetMembership(ctx, api.DB, userID, event.GroupID)
	if err != nil {
		return model.Event{}, values.Error, "Failed to check membership", err
	}
	if !policy.CanManageEvent(membership) {
		return model.Event{}, values.NotAllowed, "Access denied: Facilitator role required", errValue("facilitator role required")
	}

	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.Description != nil {
		event.Description = req.Description
	}
	if req.Location != nil {
		event.Location = req.Location
	}
	if req.LocationDetails != nil {
		event.LocationDetails = req.LocationDetails
	}
	if req.StartTime != nil {
		event.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		event.EndTime = req.EndTime
	}
	if req.MaxParticipants != nil {
		event.MaxParticipants = req.MaxParticipants
	}
	if req.IsOnline != nil {
		event.IsOnline = *req.IsOnline
	}
	if req.MeetingLink != nil {
		event.MeetingLink = req.MeetingLink
	}

	if event.EndTime != nil && !event.EndTime.After(event.StartTime) {
		return model.Event{}, values.BadRequestBody, "End time must be after start time", errValue("end_time before start_time")
	}

	updated, err := api.UpdateEventRepo(ctx, event)
	if err != nil {
		return model.Event{}, values.Error, "Failed to update event", err
	}

	return updated, values.Success, "Event updated successfully", nil
}

func (api *API) CancelEventHelper(ctx context.Context, eventID, userID uuid.UUID) (string, string, error) {
	event, err := api.GetEventByID(ctx, eventID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return values.NotFound, "Event not found", err
		}
		return values.Error, "Failed to get event", err
	}

	membership, err := api.GetMembership(ctx, api.DB, userID, event.GroupID)
	if err != nil {
		return values.Error, "Failed to check membership", err
	}
	if !policy.CanManageEvent(membership) {
		return values.NotAllowed, "Access denied: Facilitator role required", errValue("facilitator role required")
	}

	if err = api.CancelEventRepo(ctx, eventID); err != nil {
		return values.Error, "Failed to cancel event", err
	}

	return values.Success, "Event cancelled successfully", nil
}

// RespondToEventHelper upserts the caller's RSVP. The GOING capacity
// check and the upsert share a transaction holding the event row lock,
// so the cap cannot be oversubscribed by concurrent responses.
func (api *API) RespondToEventHelper(ctx context.Context, eventID, userID uuid.UUID, req model.RespondToEventRequest) (model.EventParticipant, string, string, error) {
	if err := util.ValidateStruct(req); err != nil {
		return model.EventParticipant{}, values.BadRequestBody, "Status must be GOING, MAYBE or NOT_GOING", err
	}

	var participant model.EventParticipant
	status, message := values.Success, "Response recorded"

	err := api.Deps.DB.RunInTx(ctx, func(tx pgx.Tx) error {
		event, err := api.lockEvent(ctx, tx, eventID)
		if err != nil {
			if err == pgx.ErrNoRows {
				status, message = values.NotFound, "Event not found"
			} else {
				status, message = values.Error, "Failed to get event"
			}
			return err
		}
		if event.IsCancelled {
			status, message = values.BadRequestBody, "Cannot respond to a cancelled event"
			return errValue("event cancelled")
		}

		membership, err := api.GetMembership(ctx, tx, userID, event.GroupID)
		if err != nil {
			status, message = values.Error, "Failed to check membership"
			return err
		}
		if !policy.IsActiveMember(membership) {
			status, message = values.NotAllowed, "Access denied: Not a member of this group"
			return errValue("not an active member")
		}

		if req.Status == model.ParticipationGoing {
			// The caller's own existing GOING row must not count
			// against them when re-submitting GOING.
			goingCount, err := api.CountGoingExcluding(ctx, tx, eventID, userID)
			if err != nil {
				status, message = values.Error, "Failed to count participants"
				return err
			}
			if !policy.WithinEventCapacity(req.Status, goingCount, event.MaxParticipants) {
				status, message = values.Capacity, "Event is at maximum capacity"
				return errValue("event at capacity")
			}
		}

		participant, err = api.UpsertParticipant(ctx, tx, eventID, userID, req.Status)
		return err
	})
	if err != nil {
		return model.EventParticipant{}, status, message, err
	}

	return participant, status, message, nil
}

func (api *API) GetEventParticipantsHelper(ctx context.Context, eventID, userID uuid.UUID) ([]model.ParticipantResponse, string, string, error) {
	event, err := api.GetEventByID(ctx, eventID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, values.NotFound, "Event not found", err
		}
		return nil, values.Error, "Failed to get event", err
	}

	membership, err := api.GetMembership(ctx, api.DB, userID, event.GroupID)
	if err != nil {
		return nil, values.Error, "Failed to check membership", err
	}
	if !policy.IsActiveMember(membership) {
		return nil, values.NotAllowed, "Access denied: Not a member of this group", errValue("not an active member")
	}

	participants, err := api.ListEventParticipants(ctx, eventID)
	if err != nil {
		return nil, values.Error, "Failed to list participants", err
	}

	return participants, values.Success, "Participants retrieved", nil
}
