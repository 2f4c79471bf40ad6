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

func (api *API) CreatePostHelper(ctx context.Context, groupID, userID uuid.UUID, req model.CreatePostRequest) (model.PostResponse, string, string, error) {
	if err := util.ValidateStruct(req); err != nil {
		return model.PostResponse{}, values.BadRequestBody, "Content is required", err
	}

	membership, err := api.GetMembership(ctx, api.DB, userID, groupID)
	if err != nil {
		return model.PostResponse{}, values.Error, "Failed to check membership", err
	}
	if !policy.IsActiveMember(membership) {
		return model.PostResponse{}, values.NotAllowed, "Access denied: Not a member of this group", errValue("not an active member")
	}

	post := model.Post{
		ID:          util.GenerateUUID(),
		GroupID:     groupID,
		AuthorID:    userID,
		Content:     req.Content,
		Attachments: req.Attachments,
	}
	if post.Attachments == nil {
		post.Attachments = []string{}
	}

	created, err := api.InsertPost(ctx, post)
	if err != nil {
		return model.PostResponse{}, values.Error, "Failed to create post", err
	}

	author, err := api.GetUserSummary(ctx, userID)
	if err != nil {
		return model.PostResponse{}, values.Error, "Failed to load author", err
	}

	resp := model.PostResponse{Post: created, Author: author, CommentsCount: 0}
	return resp, values.Created, "Post created successfully", nil
}

func (api *API) ListGroupPostsHelper(ctx context.Context, groupID, userID uuid.UUID, limit, offset int) ([]model.PostResponse, string, string, error) {
	membership, err := api.GetMembership(ctx, api.DB, userID, groupID)
	if err != nil {
		return nil, values.Error, "Failed to check membership", err
	}
	if !policy.IsActiveMember(membership) {
		return nil, values.NotAllowed, "Access denied: Not a member of this group", errValue("not an active member")
	}

	posts, err := api.ListGroupPosts(ctx, groupID, limit, offset)
	if err != nil {
		return nil, values.Error, "Failed to list posts", err
	}

	return posts, values.Success, "Posts retrieved", nil
}

func (api *API) GetPostHelper(ctx context.Context, postID, userID uuid.UUID) (model.PostDetailResponse, string, string, error) {
	post, err := api.GetPostDetail(ctx, postID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return model.PostDetailResponse{}, values.NotFound, "Post not found", err
		}
		return model.PostDetailResponse{}, values.Error, "Failed to get post", err
	}

	membership, err := api.GetMembership(ctx, api.DB, userID, post.GroupID)
	if err != nil {
		return model.PostDetailResponse{}, values.Error, "Failed to check membership", err
	}
	if !policy.IsActiveMember(membership) {
		return model.PostDetailResponse{}, values.NotAllowed, "Access denied: Not a member of this group", errValue("not an active member")
	}

	comments, err := api.ListPostComments(ctx, postID)
	if err != nil {
		return model.PostDetailResponse{}, values.Error, "Failed to list comments", err
	}
	post.Comments = comments

	return post, values.Success, "Post retrieved", nil
}

// UpdatePostHelper is author-only; facilitators cannot edit other
// members' posts, they can only delete them.
func (api *API) UpdatePostHelper(ctx context.Context, postID, userID uuid.UUID, req model.UpdatePostRequest) (model.Post, string, string, error) {
	if err := util.ValidateStruct(req); err != nil {
		return model.Post{}, values.BadRequestBody, "Content is required", err
	}

	post, err := api.GetPostByID(ctx, postID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return model.Post{}, values.NotFound, "Post not found", err
		}
		return model.Post{}, values.Error, "Failed to get post", err
	}
	if post.IsDeleted {
		return model.Post{}, values.BadRequestBody, "Cannot edit a deleted post", errValue("post deleted")
	}

	if !policy.CanEditPost(&post, userID) {
		return model.Post{}, values.NotAllowed, "Access denied: Only the author can edit this post", errValue("not the author")
	}

	updated, err := api.UpdatePostContent(ctx, postID, req.Content)
	if err != nil {
		return model.Post{}, values.Error, "Failed to update post", err
	}

	return updated, values.Success, "Post updated successfully", nil
}

func (api *API) DeletePostHelper(ctx context.Context, postID, userID uuid.UUID) (string, string, error) {
	post, err := api.GetPostByID(ctx, postID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return values.NotFound, "Post not found", err
		}
		return values.Error, "Failed to get post", err
	}
	if post.IsDeleted {
		return values.NotFound, "Post not found", errValue("post deleted")
	}

	membership, err := api.GetMembership(ctx, api.DB, userID, post.GroupID)
	if err != nil {
		return values.Error, "Failed to check membership", err
	}
	if !policy.CanDeletePost(&post, userID, membership) {
		return values.NotAllowed, "Access denied: Only the author or a facilitator can delete this post", errValue("not author or facilitator")
	}

	if err = api.SoftDeletePost(ctx, postID); err != nil {
		return values.Error, "Failed to delete post", err
	}

	return values.Success, "Post deleted successfully", nil
}

func (api *API) CreateCommentHelper(ctx context.Context, postID, userID uuid.UUID, req model.CreateCommentRequest) (model.CommentResponse, string, string, error) {
	if err := util.ValidateStruct(req); err != nil {
		return model.CommentResponse{}, values.BadRequestBody, "Content is required", err
	}

	post, err := api.GetPostByID(ctx, postID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return model.CommentResponse{}, values.NotFound, "Post not found", err
		}
		return model.CommentResponse{}, values.Error, "Failed to get post", err
	}
	if post.IsDeleted {
		return model.CommentResponse{}, values.NotFound, "Post not found", errValue("post deleted")
	}

	membership, err := api.GetMembership(ctx, api.DB, userID, post.GroupID)
	if err != nil {
		return model.CommentResponse{}, values.Error, "Failed to check membership", err
	}
	if !policy.IsActiveMember(membership) {
		return model.CommentResponse{}, values.NotAllowed, "Access denied: Not a member of this group", errValue("not an active member")
	}

	comment := model.Comment{
		ID:       util.GenerateUUID(),
		PostID:   postID,
		AuthorID: userID,
		Content:  req.Content,
	}

	created, err := api.InsertComment(ctx, comment)
	if err != nil {
		return model.CommentResponse{}, values.Error, "Failed to create comment", err
	}

	author, err := api.GetUserSummary(ctx, userID)
	if err != nil {
		return model.CommentResponse{}, values.Error, "Failed to load author", err
	}

	return model.CommentResponse{Comment: created, Author: author}, values.Created, "Comment created successfully", nil
}

func (api *API) DeleteCommentHelper(ctx context.Context, commentID, userID uuid.UUID) (string, string, error) {
	comment, groupID, err := api.GetCommentWithGroup(ctx, commentID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return values.NotFound, "Comment not found", err
		}
		return values.Error, "Failed to get comment", err
	}

	membership, err := api.GetMembership(ctx, api.DB, userID, groupID)
	if err != nil {
		return values.Error, "Failed to check membership", err
	}
	if !policy.CanDeleteComment(&comment, userID, membership) {
		return values.NotAllowed, "Access denied: Only the author or a facilitator can delete this comment", errValue("not author or facilitator")
	}

	if err = api.SoftDeleteComment(ctx, commentID); err != nil {
		return values.Error, "Failed to delete comment", err
	}

	return values.Success, "Comment deleted successfully", nil
}
