package model

import (
	"time"

	"github.com/google/uuid"
)

type MemberRole string

const (
	RoleMember      MemberRole = "MEMBER"
	RoleFacilitator MemberRole = "FACILITATOR"
	RoleAdmin       MemberRole = "ADMIN"
)

type MembershipStatus string

// Membership lifecycle: PENDING -> ACTIVE -> {LEFT, INACTIVE}. ACTIVE is
// reached directly at group creation for the owner. LEFT and INACTIVE are
// terminal; rows are never physically deleted.
const (
	StatusPending  MembershipStatus = "PENDING"
	StatusActive   MembershipStatus = "ACTIVE"
	StatusLeft     MembershipStatus = "LEFT"
	StatusInactive MembershipStatus = "INACTIVE"
)

// Membership is keyed by (UserID, GroupID); at most one row per pair.
type Membership struct {
	UserID    uuid.UUID        `json:"user_id"`
	GroupID   uuid.UUID        `json:"group_id"`
	Role      MemberRole       `json:"role"`
	Status    MembershipStatus `json:"status"`
	JoinedAt  *time.Time       `json:"joined_at,omitempty"`
	LeftAt    *time.Time       `json:"left_at,omitempty"`
	InvitedBy *uuid.UUID       `json:"invited_by,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

type InviteMemberRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type MemberResponse struct {
	UserSummary
	Role     MemberRole `json:"role"`
	JoinedAt *time.Time `json:"joined_at,omitempty"`
}
