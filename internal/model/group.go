package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	MinGroupMembers     = 4
	MaxGroupMembers     = 12
	DefaultGroupMembers = 8
)

type Group struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Description     *string   `json:"description,omitempty"`
	Purpose         *string   `json:"purpose,omitempty"`
	MaxMembers      int       `json:"max_members"`
	IsPrivate       bool      `json:"is_private"`
	RequireApproval bool      `json:"require_approval"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type CreateGroupRequest struct {
	Name            string  `json:"name" validate:"required"`
	Description     *string `json:"description,omitempty"`
	Purpose         *string `json:"purpose,omitempty"`
	MaxMembers      int     `json:"max_members,omitempty" validate:"omitempty,group_capacity"`
	IsPrivate       bool    `json:"is_private,omitempty"`
	RequireApproval bool    `json:"require_approval,omitempty"`
}

type UpdateGroupRequest struct {
	Name            *string `json:"name,omitempty" validate:"omitempty,min=1"`
	Description     *string `json:"description,omitempty"`
	Purpose         *string `json:"purpose,omitempty"`
	MaxMembers      *int    `json:"max_members,omitempty" validate:"omitempty,group_capacity"`
	IsPrivate       *bool   `json:"is_private,omitempty"`
	RequireApproval *bool   `json:"require_approval,omitempty"`
}

// GroupResponse is a group plus the caller's relation to it.
type GroupResponse struct {
	Group
	MemberCount int        `json:"member_count"`
	UserRole    MemberRole `json:"user_role,omitempty"`
}

// GroupSummary is the slice of a group embedded in membership listings
// and data exports.
type GroupSummary struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	MaxMembers  int       `json:"max_members"`
	MemberCount int       `json:"member_count"`
	CreatedAt   time.Time `json:"created_at"`
}

type UserGroupResponse struct {
	GroupSummary
	Role     MemberRole `json:"role"`
	JoinedAt *time.Time `json:"joined_at,omitempty"`
}
