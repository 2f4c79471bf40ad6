package rest

import (
	"net/http"

	"github.com/bchege/wellspring_api/internal/model"
	"github.com/bchege/wellspring_api/util"
	"github.com/bchege/wellspring_api/util/tracing"
	"github.com/bchege/wellspring_api/util/values"
	"github.com/go-chi/chi/v5"
)

func (api *API) GroupRoutes() chi.Router {
	mux := chi.NewRouter()

	mux.Group(func(r chi.Router) {
		r.Use(api.RequireLogin)

		r.Method(http.MethodPost, "/", api.Audited("GROUP_CREATE", "Group", Handler(api.CreateGroupHandler)))
		r.Method(http.MethodGet, "/{groupID}", Handler(api.GetGroupHandler))
		r.Method(http.MethodPut, "/{groupID}", api.Audited("GROUP_UPDATE", "Group", Handler(api.UpdateGroupHandler)))
		r.Method(http.MethodDelete, "/{groupID}", api.Audited("GROUP_DELETE", "Group", Handler(api.DeleteGroupHandler)))
		r.Method(http.MethodGet, "/{groupID}/members", Handler(api.GetGroupMembersHandler))
		r.Method(http.MethodPost, "/{groupID}/invite", api.Audited("GROUP_INVITE_MEMBER", "Membership", Handler(api.InviteMemberHandler)))
		r.Method(http.MethodPost, "/{groupID}/accept", api.Audited("GROUP_ACCEPT_INVITATION", "Membership", Handler(api.AcceptInvitationHandler)))
		r.Method(http.MethodPost, "/{groupID}/leave", api.Audited("GROUP_LEAVE", "Membership", Handler(api.LeaveGroupHandler)))
		r.Method(http.MethodDelete, "/{groupID}/members/{memberID}", api.Audited("GROUP_REMOVE_MEMBER", "Membership", Handler(api.RemoveMemberHandler)))

		r.Method(http.MethodPost, "/{groupID}/posts", api.Audited("POST_CREATE", "Post", Handler(api.CreatePostHandler)))
		r.Method(http.MethodGet, "/{groupID}/posts", Handler(api.ListGroupPostsHandler))
		r.Method(http.MethodPost, "/{groupID}/events", api.Audited("EVENT_CREATE", "Event", Handler(api.CreateEventHandler)))
		r.Method(http.MethodGet, "/{groupID}/events", Handler(api.ListGroupEventsHandler))
	})

	return mux
}

func (api *API) CreateGroupHandler(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	var req model.CreateGroupRequest
	if decodeErr := util.DecodeJSONBody(&tc, r.Body, &req); decodeErr != nil {
		return respondWithError(decodeErr, "unable to decode request", values.BadRequestBody, &tc)
	}

	userID, err := util.GetUserIDFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get user ID from context", values.NotAuthorised, &tc)
	}

	group, status, message, err := api.CreateGroupHelper(r.Context(), userID, req)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}

	return &ServerResponse{
		Message:    message,
		Status:     values.Success,
		StatusCode: util.StatusCode(status),
		Data:       group,
		EntityID:   group.ID.String(),
	}
}

func (api *API) GetGroupHandler(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	groupID, err := util.StringToUUID(chi.URLParam(r, "groupID"))
	if err != nil {
		return respondWithError(err, "invalid group ID", values.BadRequestBody, &tc)
	}
	userID, err := util.GetUserIDFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get user ID from context", values.NotAuthorised, &tc)
	}

	group, status, message, err := api.GetGroupHelper(r.Context(), groupID, userID)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}

	return &ServerResponse{
		Message:    message,
		Status:     values.Success,
		StatusCode: util.StatusCode(status),
		Data:       group,
	}
}

func (api *API) UpdateGroupHandler(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	groupID, err := util.StringToUUID(chi.URLParam(r, "groupID"))
	if err != nil {
		return respondWithError(err, "invalid group ID", values.BadRequestBody, &tc)
	}
	userID, err := util.GetUserIDFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get user ID from context", values.NotAuthorised, &tc)
	}

	var req model.UpdateGroupRequest
	if decodeErr := util.DecodeJSONBody(&tc, r.Body, &req); decodeErr != nil {
		return respondWithError(decodeErr, "unable to decode request", values.BadRequestBody, &tc)
	}

	group, status, message, err := api.UpdateGroupHelper(r.Context(), groupID, userID, req)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}

	return &ServerResponse{
		Message:    message,
		Status:     values.Success,
		StatusCode: util.StatusCode(status),
		Data:       group,
	}
}

func (api *API) DeleteGroupHandler(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	groupID, err := util.StringToUUID(chi.URLParam(r, "groupID"))
	if err != nil {
		return respondWithError(err, "invalid group ID", values.BadRequestBody, &tc)
	}
	userID, err := util.GetUserIDFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get user ID from context", values.NotAuthorised, &tc)
	}

	status, message, err := api.DeleteGroupHelper(r.Context(), groupID, userID)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}

	return &ServerResponse{
		Message:    message,
		Status:     values.Success,
		StatusCode: util.StatusCode(status),
	}
}

func (api *API) GetGroupMembersHandler(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	groupID, err := util.StringToUUID(chi.URLParam(r, "groupID"))
	if err != nil {
		return respondWithError(err, "invalid group ID", values.BadRequestBody, &tc)
	}
	userID, err := util.GetUserIDFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get user ID from context", values.NotAuthorised, &tc)
	}

	members, status, message, err := api.GetGroupMembersHelper(r.Context(), groupID, userID)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}

	return &ServerResponse{
		Message:    message,
		Status:     values.Success,
		StatusCode: util.StatusCode(status),
		Data:       members,
	}
}

func (api *API) InviteMemberHandler(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	groupID, err := util.StringToUUID(chi.URLParam(r, "groupID"))
	if err != nil {
		return respondWithError(err, "invalid group ID", values.BadRequestBody, &tc)
	}
	userID, err := util.GetUserIDFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get user ID from context", values.NotAuthorised, &tc)
	}

	var req model.InviteMemberRequest
	if decodeErr := util.DecodeJSONBody(&tc, r.Body, &req); decodeErr != nil {
		return respondWithError(decodeErr, "unable to decode request", values.BadRequestBody, &tc)
	}

	membership, status, message, err := api.InviteMemberHelper(r.Context(), groupID, userID, req.Email)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}

	return &ServerResponse{
		Message:    message,
		Status:     values.Success,
		StatusCode: util.StatusCode(status),
		Data:       membership,
		EntityID:   membership.UserID.String(),
	}
}

func (api *API) AcceptInvitationHandler(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	groupID, err := util.StringToUUID(chi.URLParam(r, "groupID"))
	if err != nil {
		return respondWithError(err, "invalid group ID", values.BadRequestBody, &tc)
	}
	userID, err := util.GetUserIDFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get user ID from context", values.NotAuthorised, &tc)
	}

	membership, status, message, err := api.AcceptInvitationHelper(r.Context(), groupID, userID)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}

	return &ServerResponse{
		Message:    message,
		Status:     values.Success,
		StatusCode: util.StatusCode(status),
		Data:       membership,
	}
}

func (api *API) LeaveGroupHandler(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	groupID, err := util.StringToUUID(chi.URLParam(r, "groupID"))
	if err != nil {
		return respondWithError(err, "invalid group ID", values.BadRequestBody, &tc)
	}
	userID, err := util.GetUserIDFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get user ID from context", values.NotAuthorised, &tc)
	}

	status, message, err := api.LeaveGroupHelper(r.Context(), groupID, userID)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}

	return &ServerResponse{
		Message:    message,
		Status:     values.Success,
		StatusCode: util.StatusCode(status),
	}
}

func (api *API) RemoveMemberHandler(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	groupID, err := util.StringToUUID(chi.URLParam(r, "groupID"))
	if err != nil {
		return respondWithError(err, "invalid group ID", values.BadRequestBody, &tc)
	}
	memberID, err := util.StringToUUID(chi.URLParam(r, "memberID"))
	if err != nil {
		return respondWithError(err, "invalid member ID", values.BadRequestBody, &tc)
	}
	userID, err := util.GetUserIDFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get user ID from context", values.NotAuthorised, &tc)
	}

	status, message, err := api.RemoveMemberHelper(r.Context(), groupID, userID, memberID)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}

	return &ServerResponse{
		Message:    message,
		Status:     values.Success,
		StatusCode: util.StatusCode(status),
		EntityID:   memberID.String(),
	}
}
