package rest

import (
	"context"

	"github.com/bchege/wellspring_api/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

func (api *API) InsertPost(ctx context.Context, post model.Post) (model.Post, error) {
	stmt := `
		INSERT INTO posts (id, group_id, author_id, content, attachments)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`

	err := api.DB.QueryRow(ctx, stmt,
		post.ID, post.GroupID, post.AuthorID, post.Content, post.Attachments,
	).Scan(&post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		return model.Post{}, err
	}
	return post, nil
}

// GetPostByID also returns soft-deleted rows; callers decide whether a
// deleted post is a 404 or an invalid-operation case.
func (api *API) GetPostByID(ctx context.Context, postID uuid.UUID) (model.Post, error) {
	var post model.Post
	stmt := `
		SELECT id, group_id, author_id, content, attachments, is_deleted, deleted_at, created_at, updated_at
		FROM posts
		WHERE id = $1`

	err := api.DB.QueryRow(ctx, stmt, postID).Scan(
		&post.ID, &post.GroupID, &post.AuthorID, &post.Content,
		&post.Attachments, &post.IsDeleted, &post.DeletedAt,
		&post.CreatedAt, &post.UpdatedAt,
	)
	if err != nil {
		return model.Post{}, err
	}
	return post, nil
}

func (api *API) GetPostDetail(ctx context.Context, postID uuid.UUID) (model.PostDetailResponse, error) {
	var p model.PostDetailResponse
	stmt := `
		SELECT p.id, p.group_id, p.author_id, p.content, p.attachments, p.created_at, p.updated_at,
		       u.id, u.first_name, u.last_name, u.display_name, u.avatar
		FROM posts p
		JOIN users u ON u.id = p.author_id
		WHERE p.id = $1 AND p.is_deleted = FALSE`

	err := api.DB.QueryRow(ctx, stmt, postID).Scan(
		&p.ID, &p.GroupID, &p.AuthorID, &p.Content, &p.Attachments,
		&p.CreatedAt, &p.UpdatedAt,
		&p.Author.ID, &p.Author.FirstName, &p.Author.LastName,
		&p.Author.DisplayName, &p.Author.Avatar,
	)
	if err != nil {
		return model.PostDetailResponse{}, err
	}
	return p, nil
}

func (api *API) ListGroupPosts(ctx context.Context, groupID uuid.UUID, limit, offset int) ([]model.PostResponse, error) {
	stmt := `
		SELECT p.id, p.group_id, p.author_id, p.content, p.attachments, p.created_at, p.updated_at,
		       u.id, u.first_name, u.last_name, u.display_name, u.avatar,
		       (SELECT COUNT(*) FROM comments c
		        WHERE c.post_id = p.id AND c.is_deleted = FALSE) AS comments_count
		FROM posts p
		JOIN users u ON u.id = p.author_id
		WHERE p.group_id = $1 AND p.is_deleted = FALSE
		ORDER BY p.created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := api.DB.Query(ctx, stmt, groupID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []model.PostResponse{}
	for rows.Next() {
		var p model.PostResponse
		err = rows.Scan(
			&p.ID, &p.GroupID, &p.AuthorID, &p.Content, &p.Attachments,
			&p.CreatedAt, &p.UpdatedAt,
			&p.Author.ID, &p.Author.FirstName, &p.Author.LastName,
			&p.Author.DisplayName, &p.Author.Avatar,
			&p.CommentsCount,
		)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func (api *API) UpdatePostContent(ctx context.Context, postID uuid.UUID, content string) (model.Post, error) {
	var post model.Post
	stmt := `
		UPDATE posts
		SET content = $2, updated_at = NOW()
		WHERE id = $1 AND is_deleted = FALSE
		RETURNING id, group_id, author_id, content, attachments, created_at, updated_at`

	err := api.DB.QueryRow(ctx, stmt, postID, content).Scan(
		&post.ID, &post.GroupID, &post.AuthorID, &post.Content,
		&post.Attachments, &post.CreatedAt, &post.UpdatedAt,
	)
	if err != nil {
		return model.Post{}, err
	}
	return post, nil
}

func (api *API) SoftDeletePost(ctx context.Context, postID uuid.UUID) error {
	stmt := `
		UPDATE posts
		SET is_deleted = TRUE, deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND is_deleted = FALSE`

	tag, err := api.DB.Exec(ctx, stmt, postID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (api *API) InsertComment(ctx context.Context, comment model.Comment) (model.Comment, error) {
	stmt := `
		INSERT INTO comments (id, post_id, author_id, content)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at`

	err := api.DB.QueryRow(ctx, stmt,
		comment.ID, comment.PostID, comment.AuthorID, comment.Content,
	).Scan(&comment.CreatedAt, &comment.UpdatedAt)
	if err != nil {
		return model.Comment{}, err
	}
	return comment, nil
}

func (api *API) ListPostComments(ctx context.Context, postID uuid.UUID) ([]model.CommentResponse, error) {
	stmt := `
		SELECT c.id, c.post_id, c.author_id, c.content, c.created_at, c.updated_at,
		       u.id, u.first_name, u.last_name, u.display_name, u.avatar
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.post_id = $1 AND c.is_deleted = FALSE
		ORDER BY c.created_at ASC`

	rows, err := api.DB.Query(ctx, stmt, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []model.CommentResponse{}
	for rows.Next() {
		var c model.CommentResponse
		err = rows.Scan(
			&c.ID, &c.PostID, &c.AuthorID, &c.Content, &c.CreatedAt, &c.UpdatedAt,
			&c.Author.ID, &c.Author.FirstName, &c.Author.LastName,
			&c.Author.DisplayName, &c.Author.Avatar,
		)
		if err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

// GetCommentWithGroup also resolves the owning group through the post,
// which the delete policy check needs.
func (api *API) GetCommentWithGroup(ctx context.Context, commentID uuid.UUID) (model.Comment, uuid.UUID, error) {
	var c model.Comment
	var groupID uuid.UUID
	stmt := `
		SELECT c.id, c.post_id, c.author_id, c.content, c.created_at, c.updated_at, p.group_id
		FROM comments c
		JOIN posts p ON p.id = c.post_id
		WHERE c.id = $1 AND c.is_deleted = FALSE`

	err := api.DB.QueryRow(ctx, stmt, commentID).Scan(
		&c.ID, &c.PostID, &c.AuthorID, &c.Content, &c.CreatedAt, &c.UpdatedAt, &groupID,
	)
	if err != nil {
		return model.Comment{}, uuid.Nil, err
	}
	return c, groupID, nil
}

func (api *API) SoftDeleteComment(ctx context.Context, commentID uuid.UUID) error {
	stmt := `
		UPDATE comments
		SET is_deleted = TRUE, deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND is_deleted = FALSE`

	tag, err := api.DB.Exec(ctx, stmt, commentID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (api *API) GetUserSummary(ctx context.Context, userID uuid.UUID) (model.UserSummary, error) {
	var u model.UserSummary
	stmt := `
		SELECT id, first_name, last_name, display_name, avatar
		FROM users
		WHERE id = $1`

	err := api.DB.QueryRow(ctx, stmt, userID).Scan(
		&u.ID, &u.FirstName, &u.LastName, &u.DisplayName, &u.Avatar,
	)
	if err != nil {
		return model.UserSummary{}, err
	}
	return u, nil
}
