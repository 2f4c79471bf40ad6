package rest

import (
	"net/http"
	"strconv"

	"github.com/bchege/wellspring_api/internal/model"
	"github.com/bchege/wellspring_api/util"
	"github.com/bchege/wellspring_api/util/tracing"
	"github.com/bchege/wellspring_api/util/values"
	"github.com/go-chi/chi/v5"
)

func (api *API) PostRoutes() chi.Router {
	mux := chi.NewRouter()

	mux.Group(func(r chi.Router) {
		r.Use(api.RequireLogin)

		r.Method(http.MethodGet, "/{postID}", Handler(api.GetPostHandler))
		r.Method(http.MethodPut, "/{postID}", api.Audited("POST_UPDATE", "Post", Handler(api.UpdatePostHandler)))
		r.Method(http.MethodDelete, "/{postID}", api.Audited("POST_DELETE", "Post", Handler(api.DeletePostHandler)))
		r.Method(http.MethodPost, "/{postID}/comments", api.Audited("COMMENT_CREATE", "Comment", Handler(api.CreateCommentHandler)))
	})

	return mux
}

func (api *API) CommentRoutes() chi.Router {
	mux := chi.NewRouter()

	mux.Group(func(r chi.Router) {
		r.Use(api.RequireLogin)

		r.Method(http.MethodDelete, "/{commentID}", api.Audited("COMMENT_DELETE", "Comment", Handler(api.DeleteCommentHandler)))
	})

	return mux
}

func (api *API) CreatePostHandler(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	groupID, err := util.StringToUUID(chi.URLParam(r, "groupID"))
	if err != nil {
		return respondWithError(err, "invalid group ID", values.BadRequestBody, &tc)
	}
	userID, err := util.GetUserIDFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get user ID from context", values.NotAuthorised, &tc)
	}

	var req model.CreatePostRequest
	if decodeErr := util.DecodeJSONBody(&tc, r.Body, &req); decodeErr != nil {
		return respondWithError(decodeErr, "unable to decode request", values.BadRequestBody, &tc)
	}

	post, status, message, err := api.CreatePostHelper(r.Context(), groupID, userID, req)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}

	return &ServerResponse{
		Message:    message,
		Status:     values.Success,
		StatusCode: util.StatusCode(status),
		Data:       post,
		EntityID:   post.ID.String(),
	}
}

func (api *API) ListGroupPostsHandler(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	groupID, err := util.StringToUUID(chi.URLParam(r, "groupID"))
	if err != nil {
		return respondWithError(err, "invalid group ID", values.BadRequestBody, &tc)
	}
	userID, err := util.GetUserIDFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get user ID from context", values.NotAuthorised, &tc)
	}

	limit, offset := pageParams(r)

	posts, status, message, err := api.ListGroupPostsHelper(r.Context(), groupID, userID, limit, offset)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}

	return &ServerResponse{
		Message:    message,
		Status:     values.Success,
		StatusCode: util.StatusCode(status),
		Data:       posts,
	}
}

func (api *API) GetPostHandler(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	postID, err := util.StringToUUID(chi.URLParam(r, "postID"))
	if err != nil {
		return respondWithError(err, "invalid post ID", values.BadRequestBody, &tc)
	}
	userID, err := util.GetUserIDFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get user ID from context", values.NotAuthorised, &tc)
	}

	post, status, message, err := api.GetPostHelper(r.Context(), postID, userID)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}

	return &ServerResponse{
		Message:    message,
		Status:     values.Success,
		StatusCode: util.StatusCode(status),
		Data:       post,
	}
}

func (api *API) UpdatePostHandler(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	postID, err := util.StringToUUID(chi.URLParam(r, "postID"))
	if err != nil {
		return respondWithError(err, "invalid post ID", values.BadRequestBody, &tc)
	}
	userID, err := util.GetUserIDFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get user ID from context", values.NotAuthorised, &tc)
	}

	var req model.UpdatePostRequest
	if decodeErr := util.DecodeJSONBody(&tc, r.Body, &req); decodeErr != nil {
		return respondWithError(decodeErr, "unable to decode request", values.BadRequestBody, &tc)
	}

	post, status, message, err := api.UpdatePostHelper(r.Context(), postID, userID, req)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}

	return &ServerResponse{
		Message:    message,
		Status:     values.Success,
		StatusCode: util.StatusCode(status),
		Data:       post,
	}
}

func (api *API) DeletePostHandler(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	postID, err := util.StringToUUID(chi.URLParam(r, "postID"))
	if err != nil {
		return respondWithError(err, "invalid post ID", values.BadRequestBody, &tc)
	}
	userID, err := util.GetUserIDFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get user ID from context", values.NotAuthorised, &tc)
	}

	status, message, err := api.DeletePostHelper(r.Context(), postID, userID)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}

	return &ServerResponse{
		Message:    message,
		Status:     values.Success,
		StatusCode: util.StatusCode(status),
	}
}

func (api *API) CreateCommentHandler(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	postID, err := util.StringToUUID(chi.URLParam(r, "postID"))
	if err != nil {
		return respondWithError(err, "invalid post ID", values.BadRequestBody, &tc)
	}
	userID, err := util.GetUserIDFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get user ID from context", values.NotAuthorised, &tc)
	}

	var req model.CreateCommentRequest
	if decodeErr := util.DecodeJSONBody(&tc, r.Body, &req); decodeErr != nil {
		return respondWithError(decodeErr, "unable to decode request", values.BadRequestBody, &tc)
	}

	comment, status, message, err := api.CreateCommentHelper(r.Context(), postID, userID, req)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}

	return &ServerResponse{
		Message:    message,
		Status:     values.Success,
		StatusCode: util.StatusCode(status),
		Data:       comment,
		EntityID:   comment.ID.String(),
	}
}

func (api *API) DeleteCommentHandler(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	commentID, err := util.StringToUUID(chi.URLParam(r, "commentID"))
	if err != nil {
		return respondWithError(err, "invalid comment ID", values.BadRequestBody, &tc)
	}
	userID, err := util.GetUserIDFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get user ID from context", values.NotAuthorised, &tc)
	}

	status, message, err := api.DeleteCommentHelper(r.Context(), commentID, userID)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}

	return &ServerResponse{
		Message:    message,
		Status:     values.Success,
		StatusCode: util.StatusCode(status),
	}
}

// pageParams reads limit/offset query params with sane bounds.
func pageParams(r *http.Request) (int, int) {
	limit := 20
	offset := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}
	return limit, offset
}
