package api

import (
	"net/http"

	"github.com/rpupo63/contractor-marketplace-backend/marketplace"
	"github.com/rs/zerolog/log"
)

type bidHandler struct {
	responder Responder
	bids      *marketplace.BidLedger
}

func newBidHandler(bids *marketplace.BidLedger) bidHandler {
	logger := log.With().Str("handlerName", "bidHandler").Logger()
	return bidHandler{
		responder: NewResponder(logger),
		bids:      bids,
	}
}

// bidRequest reads the principal, the project id and the bid body shared by
// submit and update.
func (h bidHandler) bidRequest(w http.ResponseWriter, r *http.Request) (marketplace.Principal, marketplace.BidInput, bool) {
	var in marketplace.BidInput
	principal, err := ctxGetPrincipal(r.Context())
	if err != nil {
		h.responder.WriteError(w, err)
		return principal, in, false
	}
	if err := decodeJSON(r, "bid", &in); err != nil {
		h.responder.WriteError(w, err)
		return principal, in, false
	}
	return principal, in, true
}

// @Router /projects/{projectId}/bids/submit [post]
func (h bidHandler) submitBid() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := uuidParam(r, "projectId")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		principal, in, ok := h.bidRequest(w, r)
		if !ok {
			return
		}

		bid, err := h.bids.SubmitBid(r.Context(), projectID, principal, in)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteCreated(w, bid)
	}
}

// @Router /projects/{projectId}/bids/update [post]
func (h bidHandler) updateBid() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := uuidParam(r, "projectId")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		principal, in, ok := h.bidRequest(w, r)
		if !ok {
			return
		}

		bid, err := h.bids.UpdateBid(r.Context(), projectID, principal, in)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, bid)
	}
}

// @Router /projects/{projectId}/bids/delete [delete]
func (h bidHandler) deleteBid() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal, err := ctxGetPrincipal(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		projectID, err := uuidParam(r, "projectId")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.bids.DeleteBid(r.Context(), projectID, principal); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, MessageResponse{Message: "Bid deleted successfully"})
	}
}

// listProjectBids is owner-only and joins each bid with its contractor.
func (h bidHandler) listProjectBids() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal, err := ctxGetPrincipal(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		projectID, err := uuidParam(r, "projectId")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		bids, err := h.bids.ListBidsForProject(r.Context(), projectID, principal)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, bids)
	}
}

func (h bidHandler) listMyBids() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal, err := ctxGetPrincipal(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		bids, err := h.bids.ListMyBids(r.Context(), principal)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, bids)
	}
}
