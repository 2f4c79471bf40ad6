package model

import (
	"time"

	"github.com/google/uuid"
)

type Post struct {
	ID          uuid.UUID  `json:"id"`
	GroupID     uuid.UUID  `json:"group_id"`
	AuthorID    uuid.UUID  `json:"author_id"`
	Content     string     `json:"content"`
	Attachments []string   `json:"attachments"`
	IsDeleted   bool       `json:"is_deleted"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type CreatePostRequest struct {
	Content     string   `json:"content" validate:"required"`
	Attachments []string `json:"attachments,omitempty"`
}

type UpdatePostRequest struct {
	Content string `json:"content" validate:"required"`
}

type PostResponse struct {
	Post
	Author        UserSummary `json:"author"`
	CommentsCount int         `json:"comments_count"`
}

type PostDetailResponse struct {
	Post
	Author   UserSummary       `json:"author"`
	Comments []CommentResponse `json:"comments"`
}
