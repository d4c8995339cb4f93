package api

import (
	"net/http"

	"github.com/rpupo63/contractor-marketplace-backend/marketplace"
	"github.com/rs/zerolog/log"
)

type jobRequestHandler struct {
	responder Responder
	requests  *marketplace.JobRequestChannel
}

func newJobRequestHandler(requests *marketplace.JobRequestChannel) jobRequestHandler {
	logger := log.With().Str("handlerName", "jobRequestHandler").Logger()
	return jobRequestHandler{
		responder: NewResponder(logger),
		requests:  requests,
	}
}

// @Router /job-request/send [post]
func (h jobRequestHandler) sendProjectRequest() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal, err := ctxGetPrincipal(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var in marketplace.ProjectJobRequestInput
		if err := decodeJSON(r, "job request", &in); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		request, err := h.requests.SendProjectJobRequest(r.Context(), principal, in)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteCreated(w, request)
	}
}

// @Router /job-request/direct-send [post]
func (h jobRequestHandler) sendDirectRequest() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal, err := ctxGetPrincipal(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var in marketplace.DirectJobRequestInput
		if err := decodeJSON(r, "job request", &in); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		request, err := h.requests.SendDirectJobRequest(r.Context(), principal, in)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteCreated(w, request)
	}
}

// @Router /job-request/my-requests [get]
func (h jobRequestHandler) listMyRequests() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal, err := ctxGetPrincipal(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		requests, err := h.requests.ListForContractor(r.Context(), principal)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, requests)
	}
}

// @Router /job-request/{requestId}/respond [patch]
func (h jobRequestHandler) respond() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal, err := ctxGetPrincipal(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		requestID, err := uuidParam(r, "requestId")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req RespondRequest
		if err := decodeJSON(r, "response", &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		request, err := h.requests.RespondToJobRequest(r.Context(), requestID, principal, req.Action)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, request)
	}
}
