package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID                     uuid.UUID  `json:"id"`
	Email                  string     `json:"email"`
	PasswordHash           string     `json:"-"`
	FirstName              string     `json:"first_name"`
	LastName               string     `json:"last_name"`
	DisplayName            *string    `json:"display_name,omitempty"`
	Bio                    *string    `json:"bio,omitempty"`
	Avatar                 *string    `json:"avatar,omitempty"`
	NotificationPreference string     `json:"notification_preference,omitempty"`
	ConsentGiven           bool       `json:"consent_given"`
	ConsentDate            *time.Time `json:"consent_date,omitempty"`
	DataProcessingConsent  bool       `json:"data_processing_consent"`
	MarketingConsent       bool       `json:"marketing_consent"`
	IsVerified             bool       `json:"is_verified"`
	IsActive               bool       `json:"is_active"`
	DeletionRequested      bool       `json:"deletion_requested"`
	DeletionRequestDate    *time.Time `json:"deletion_request_date,omitempty"`
	LastLoginAt            *time.Time `json:"last_login_at,omitempty"`
	CreatedAt              time.Time  `json:"created_at"`
	UpdatedAt              time.Time  `json:"updated_at"`
}

// UserSummary is the public slice of a user embedded in posts, comments,
// member lists and participant lists.
type UserSummary struct {
	ID          uuid.UUID `json:"id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	DisplayName *string   `json:"display_name,omitempty"`
	Avatar      *string   `json:"avatar,omitempty"`
}

type UpdateProfileRequest struct {
	FirstName              *string `json:"first_name,omitempty" validate:"omitempty,min=1"`
	LastName               *string `json:"last_name,omitempty" validate:"omitempty,min=1"`
	DisplayName            *string `json:"display_name,omitempty"`
	Bio                    *string `json:"bio,omitempty"`
	Avatar                 *string `json:"avatar,omitempty"`
	NotificationPreference *string `json:"notification_preference,omitempty" validate:"omitempty,oneof=NONE MINIMAL ALL"`
}

type UpdateConsentRequest struct {
	DataProcessingConsent *bool `json:"data_processing_consent,omitempty"`
	MarketingConsent      *bool `json:"marketing_consent,omitempty"`
}

type ConsentResponse struct {
	ID                    uuid.UUID  `json:"id"`
	ConsentGiven          bool       `json:"consent_given"`
	DataProcessingConsent bool       `json:"data_processing_consent"`
	MarketingConsent      bool       `json:"marketing_consent"`
	ConsentDate           *time.Time `json:"consent_date,omitempty"`
}

type DeletionResponse struct {
	Message      string    `json:"message"`
	DeletionDate time.Time `json:"deletion_date"`
}

// UserExport is the GDPR portability bundle. The password hash is never
// included.
type UserExport struct {
	User           User                `json:"user"`
	Memberships    []MembershipExport  `json:"memberships"`
	Posts          []PostExport        `json:"posts"`
	Comments       []CommentExport     `json:"comments"`
	Participations []ParticipantExport `json:"event_participations"`
}

type MembershipExport struct {
	GroupID     uuid.UUID        `json:"group_id"`
	GroupName   string           `json:"group_name"`
	Description *string          `json:"group_description,omitempty"`
	Role        MemberRole       `json:"role"`
	Status      MembershipStatus `json:"status"`
	JoinedAt    *time.Time       `json:"joined_at,omitempty"`
}

type PostExport struct {
	ID        uuid.UUID `json:"id"`
	GroupID   uuid.UUID `json:"group_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type CommentExport struct {
	ID        uuid.UUID `json:"id"`
	PostID    uuid.UUID `json:"post_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type ParticipantExport struct {
	EventID     uuid.UUID           `json:"event_id"`
	EventTitle  string              `json:"event_title"`
	StartTime   time.Time           `json:"start_time"`
	Status      ParticipationStatus `json:"status"`
	RespondedAt time.Time           `json:"responded_at"`
}
