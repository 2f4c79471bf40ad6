package rest

import (
	"net/http"

	"github.com/bchege/wellspring_api/internal/model"
	"github.com/bchege/wellspring_api/util"
	"github.com/bchege/wellspring_api/util/tracing"
	"github.com/bchege/wellspring_api/util/values"
	"github.com/go-chi/chi/v5"
)

func (api *API) EventRoutes() chi.Router {
	mux := chi.NewRouter()

	mux.Group(func(r chi.Router) {
		r.Use(api.RequireLogin)

		r.Method(http.MethodGet, "/{eventID}", Handler(api.GetEventHandler))
		r.Method(http.MethodPut, "/{eventID}", api.Audited("EVENT_UPDATE", "Event", Handler(api.UpdateEventHandler)))
		r.Method(http.MethodPost, "/{eventID}/cancel", api.Audited("EVENT_CANCEL", "Event", Handler(api.CancelEventHandler)))
		r.Method(http.MethodPost, "/{eventID}/respond", api.Audited("EVENT_RESPOND", "EventParticipant", Handler(api.RespondToEventHandler)))
		r.Method(http.MethodGet, "/{eventID}/participants", Handler(api.GetEventParticipantsHandler))
	})

	return mux
}

func (api *API) CreateEventHandler(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	groupID, err := util.StringToUUID(chi.URLParam(r, "groupID"))
	if err != nil {
		return respondWithError(err, "invalid group ID", values.BadRequestBody, &tc)
	}
	userID, err := util.GetUserIDFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get user ID from context", values.NotAuthorised, &tc)
	}

	var req model.CreateEventRequest
	if decodeErr := util.DecodeJSONBody(&tc, r.Body, &req); decodeErr != nil {
		return respondWithError(decodeErr, "unable to decode request", values.BadRequestBody, &tc)
	}

	event, status, message, err := api.CreateEventHelper(r.Context(), groupID, userID, req)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}

	return &ServerResponse{
		Message:    message,
		Status:     values.Success,
		StatusCode: util.StatusCode(status),
		Data:       event,
		EntityID:   event.ID.String(),
	}
}

func (api *API) ListGroupEventsHandler(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	groupID, err := util.StringToUUID(chi.URLParam(r, "groupID"))
	if err != nil {
		return respondWithError(err, "invalid group ID", values.BadRequestBody, &tc)
	}
	userID, err := util.GetUserIDFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get user ID from context", values.NotAuthorised, &tc)
	}

	upcoming := r.URL.Query().Get("upcoming") == "true"

	events, status, message, err := api.ListGroupEventsHelper(r.Context(), groupID, userID, upcoming)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}

	return &ServerResponse{
		Message:    message,
		Status:     values.Success,
		StatusCode: util.StatusCode(status),
		Data:       events,
	}
}

func (api *API) GetEventHandler(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	eventID, err := util.StringToUUID(chi.URLParam(r, "eventID"))
	if err != nil {
		return respondWithError(err, "invalid event ID", values.BadRequestBody, &tc)
	}
	userID, err := util.GetUserIDFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get user ID from context", values.NotAuthorised, &tc)
	}

	event, status, message, err := api.GetEventHelper(r.Context(), eventID, userID)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}

	return &ServerResponse{
		Message:    message,
		Status:     values.Success,
		StatusCode: util.StatusCode(status),
		Data:       event,
	}
}

func (api *API) UpdateEventHandler(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	eventID, err := util.StringToUUID(chi.URLParam(r, "eventID"))
	if err != nil {
		return respondWithError(err, "invalid event ID", values.BadRequestBody, &tc)
	}
	userID, err := util.GetUserIDFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get user ID from context", values.NotAuthorised, &tc)
	}

	var req model.UpdateEventRequest
	if decodeErr := util.DecodeJSONBody(&tc, r.Body, &req); decodeErr != nil {
		return respondWithError(decodeErr, "unable to decode request", values.BadRequestBody, &tc)
	}

	event, status, message, err := api.UpdateEventHelper(r.Context(), eventID, userID, req)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}

	return &ServerResponse{
		Message:    message,
		Status:     values.Success,
		StatusCode: util.StatusCode(status),
		Data:       event,
	}
}

func (api *API) CancelEventHandler(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	eventID, err := util.StringToUUID(chi.URLParam(r, "eventID"))
	if err != nil {
		return respondWithError(err, "invalid event ID", values.BadRequestBody, &tc)
	}
	userID, err := util.GetUserIDFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get user ID from context", values.NotAuthorised, &tc)
	}

	status, message, err := api.CancelEventHelper(r.Context(), eventID, userID)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}

	return &ServerResponse{
		Message:    message,
		Status:     values.Success,
		StatusCode: util.StatusCode(status),
	}
}

func (api *API) RespondToEventHandler(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	eventID, err := util.StringToUUID(chi.URLParam(r, "eventID"))
	if err != nil {
		return respondWithError(err, "invalid event ID", values.BadRequestBody, &tc)
	}
	userID, err := util.GetUserIDFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get user ID from context", values.NotAuthorised, &tc)
	}

	var req model.RespondToEventRequest
	if decodeErr := util.DecodeJSONBody(&tc, r.Body, &req); decodeErr != nil {
		return respondWithError(decodeErr, "unable to decode request", values.BadRequestBody, &tc)
	}

	participant, status, message, err := api.RespondToEventHelper(r.Context(), eventID, userID, req)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}

	return &ServerResponse{
		Message:    message,
		Status:     values.Success,
		StatusCode: util.StatusCode(status),
		Data:       participant,
	}
}

func (api *API) GetEventParticipantsHandler(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	eventID, err := util.StringToUUID(chi.URLParam(r, "eventID"))
	if err != nil {
		return respondWithError(err, "invalid event ID", values.BadRequestBody, &tc)
	}
	userID, err := util.GetUserIDFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get user ID from context", values.NotAuthorised, &tc)
	}

	participants, status, message, err := api.GetEventParticipantsHelper(r.Context(), eventID, userID)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}

	return &ServerResponse{
		Message:    message,
		Status:     values.Success,
		StatusCode: util.StatusCode(status),
		Data:       participants,
	}
}
