package model

import (
	"time"

	"github.com/google/uuid"
)

type Event struct {
	ID              uuid.UUID  `json:"id"`
	GroupID         uuid.UUID  `json:"group_id"`
	Title           string     `json:"title"`
	Description     *string    `json:"description,omitempty"`
	Location        *string    `json:"location,omitempty"`
	LocationDetails *string    `json:"location_details,omitempty"`
	StartTime       time.Time  `json:"start_time"`
	EndTime         *time.Time `json:"end_time,omitempty"`
	MaxParticipants *int       `json:"max_participants,omitempty"`
	IsOnline        bool       `json:"is_online"`
	MeetingLink     *string    `json:"meeting_link,omitempty"`
	IsCancelled     bool       `json:"is_cancelled"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type ParticipationStatus string

// RSVP states move freely among each other; entering GOING is capacity
// gated, leaving GOING is unconditional.
const (
	ParticipationGoing    ParticipationStatus = "GOING"
	ParticipationMaybe    ParticipationStatus = "MAYBE"
	ParticipationNotGoing ParticipationStatus = "NOT_GOING"
)

// EventParticipant is keyed by (EventID, UserID) and upserted on each
// response.
type EventParticipant struct {
	EventID     uuid.UUID           `json:"event_id"`
	UserID      uuid.UUID           `json:"user_id"`
	Status      ParticipationStatus `json:"status"`
	RespondedAt time.Time           `json:"responded_at"`
}

type CreateEventRequest struct {
	Title           string     `json:"title" validate:"required"`
	Description     *string    `json:"description,omitempty"`
	Location        *string    `json:"location,omitempty"`
	LocationDetails *string    `json:"location_details,omitempty"`
	StartTime       time.Time  `json:"start_time" validate:"required"`
	EndTime         *time.Time `json:"end_time,omitempty"`
	MaxParticipants *int       `json:"max_participants,omitempty" validate:"omitempty,min=1"`
	IsOnline        bool       `json:"is_online,omitempty"`
	MeetingLink     *string    `json:"meeting_link,omitempty"`
}

type UpdateEventRequest struct {
	Title           *string    `json:"title,omitempty" validate:"omitempty,min=1"`
	Description     *string    `json:"description,omitempty"`
	Location        *string    `json:"location,omitempty"`
	LocationDetails *string    `json:"location_details,omitempty"`
	StartTime       *time.Time `json:"start_time,omitempty"`
	EndTime         *time.Time `json:"end_time,omitempty"`
	MaxParticipants *int       `json:"max_participants,omitempty" validate:"omitempty,min=1"`
	IsOnline        *bool      `json:"is_online,omitempty"`
	MeetingLink     *string    `json:"meeting_link,omitempty"`
}

type RespondToEventRequest struct {
	Status ParticipationStatus `json:"status" validate:"required,rsvp_status"`
}

type EventResponse struct {
	Event
	GoingCount int                  `json:"going_count"`
	UserStatus *ParticipationStatus `json:"user_status,omitempty"`
}

type EventDetailResponse struct {
	Event
	GroupName    string                `json:"group_name"`
	Participants []ParticipantResponse `json:"participants"`
}

type ParticipantResponse struct {
	UserSummary
	Status      ParticipationStatus `json:"status"`
	RespondedAt time.Time           `json:"responded_at"`
}
