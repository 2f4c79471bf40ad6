package rest

import (
	"net/http"

	"github.com/bchege/wellspring_api/internal/model"
	"github.com/bchege/wellspring_api/util"
	"github.com/bchege/wellspring_api/util/tracing"
	"github.com/bchege/wellspring_api/util/values"
	"github.com/go-chi/chi/v5"
)

func (api *API) UserRoutes() chi.Router {
	mux := chi.NewRouter()

	mux.Group(func(r chi.Router) {
		r.Use(api.RequireLogin)

		r.Method(http.MethodGet, "/me", Handler(api.GetProfileHandler))
		r.Method(http.MethodPut, "/me", api.Audited("USER_UPDATE", "User", Handler(api.UpdateProfileHandler)))
		r.Method(http.MethodPut, "/me/consent", api.Audited("USER_CONSENT_UPDATE", "User", Handler(api.UpdateConsentHandler)))
		r.Method(http.MethodPost, "/me/delete", api.Audited("USER_DELETE_REQUEST", "User", Handler(api.RequestDeletionHandler)))
		r.Method(http.MethodGet, "/me/export", api.Audited("USER_DATA_EXPORT", "User", Handler(api.ExportDataHandler)))
		r.Method(http.MethodGet, "/me/groups", Handler(api.GetUserGroupsHandler))
	})

	return mux
}

func (api *API) GetProfileHandler(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	userID, err := util.GetUserIDFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get user ID from context", values.NotAuthorised, &tc)
	}

	user, status, message, err := api.GetProfileHelper(r.Context(), userID)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}

	return &ServerResponse{
		Message:    message,
		Status:     values.Success,
		StatusCode: util.StatusCode(status),
		Data:       user,
	}
}

func (api *API) UpdateProfileHandler(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	userID, err := util.GetUserIDFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get user ID from context", values.NotAuthorised, &tc)
	}

	var req model.UpdateProfileRequest
	if decodeErr := util.DecodeJSONBody(&tc, r.Body, &req); decodeErr != nil {
		return respondWithError(decodeErr, "unable to decode request", values.BadRequestBody, &tc)
	}

	user, status, message, err := api.UpdateProfileHelper(r.Context(), userID, req)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}

	return &ServerResponse{
		Message:    message,
		Status:     values.Success,
		StatusCode: util.StatusCode(status),
		Data:       user,
		EntityID:   user.ID.String(),
	}
}

func (api *API) UpdateConsentHandler(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	userID, err := util.GetUserIDFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get user ID from context", values.NotAuthorised, &tc)
	}

	var req model.UpdateConsentRequest
	if decodeErr := util.DecodeJSONBody(&tc, r.Body, &req); decodeErr != nil {
		return respondWithError(decodeErr, "unable to decode request", values.BadRequestBody, &tc)
	}

	consent, status, message, err := api.UpdateConsentHelper(r.Context(), userID, req)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}

	return &ServerResponse{
		Message:    message,
		Status:     values.Success,
		StatusCode: util.StatusCode(status),
		Data:       consent,
		EntityID:   consent.ID.String(),
	}
}

func (api *API) RequestDeletionHandler(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	userID, err := util.GetUserIDFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get user ID from context", values.NotAuthorised, &tc)
	}

	resp, status, message, err := api.RequestDeletionHelper(r.Context(), userID)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}

	return &ServerResponse{
		Message:    message,
		Status:     values.Success,
		StatusCode: util.StatusCode(status),
		Data:       resp,
		EntityID:   userID.String(),
	}
}

func (api *API) ExportDataHandler(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	userID, err := util.GetUserIDFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get user ID from context", values.NotAuthorised, &tc)
	}

	export, status, message, err := api.ExportDataHelper(r.Context(), userID)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}

	return &ServerResponse{
		Message:    message,
		Status:     values.Success,
		StatusCode: util.StatusCode(status),
		Data:       export,
		EntityID:   userID.String(),
	}
}

func (api *API) GetUserGroupsHandler(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	userID, err := util.GetUserIDFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get user ID from context", values.NotAuthorised, &tc)
	}

	groups, err := api.ListUserGroups(r.Context(), userID)
	if err != nil {
		return respondWithError(err, "Failed to list groups", values.Error, &tc)
	}

	return &ServerResponse{
		Message:    "Groups retrieved",
		Status:     values.Success,
		StatusCode: util.StatusCode(values.Success),
		Data:       groups,
	}
}
