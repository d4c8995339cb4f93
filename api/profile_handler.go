package api

import (
	"net/http"

	"github.com/rpupo63/contractor-marketplace-backend/marketplace"
	"github.com/rpupo63/contractor-marketplace-backend/models"
	"github.com/rs/zerolog/log"
)

type profileHandler struct {
	responder Responder
	profiles  *marketplace.ProfileDirectory
}

func newProfileHandler(profiles *marketplace.ProfileDirectory) profileHandler {
	logger := log.With().Str("handlerName", "profileHandler").Logger()
	return profileHandler{
		responder: NewResponder(logger),
		profiles:  profiles,
	}
}

func (h profileHandler) upsertProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal, err := ctxGetPrincipal(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var patch models.ContractorProfilePatch
		if err := decodeJSON(r, "contractor profile", &patch); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		profile, err := h.profiles.UpsertProfile(r.Context(), principal, patch)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, profile)
	}
}

func (h profileHandler) listContractors() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		contractors, err := h.profiles.ListContractors(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, contractors)
	}
}

func (h profileHandler) updateUserInfo() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal, err := ctxGetPrincipal(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var patch models.UserPatch
		if err := decodeJSON(r, "user", &patch); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		user, err := h.profiles.UpdateUserInfo(r.Context(), principal, patch)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, user)
	}
}
