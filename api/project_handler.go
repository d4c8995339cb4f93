package api

import (
	"net/http"

	"github.com/rpupo63/contractor-marketplace-backend/marketplace"
	"github.com/rpupo63/contractor-marketplace-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type projectHandler struct {
	responder   Responder
	logger      zerolog.Logger
	projects    *marketplace.LifecycleManager
	assignments *marketplace.AssignmentEngine
}

func newProjectHandler(projects *marketplace.LifecycleManager, assignments *marketplace.AssignmentEngine) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		projects:    projects,
		assignments: assignments,
	}
}

// createProject posts a new project for the calling customer
// @Summary Create project
// @Tags Projects
// @Accept json
// @Produce json
// @Param project body marketplace.ProjectInput true "Project data"
// @Success 201 {object} models.Project "Created project"
// @Failure 400 {object} ErrorResponse "Missing or invalid field"
// @Failure 403 {object} ErrorResponse "Caller is not a customer"
// @Router /project/post [post]
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal, err := ctxGetPrincipal(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var in marketplace.ProjectInput
		if err := decodeJSON(r, "project", &in); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := h.projects.CreateProject(r.Context(), principal, in)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteCreated(w, project)
	}
}

// getProject returns a single project
// @Summary Get project
// @Tags Projects
// @Produce json
// @Param projectId path string true "Project ID" format(uuid)
// @Success 200 {object} models.Project
// @Failure 404 {object} ErrorResponse "Project not found"
// @Router /project/{projectId} [get]
func (h projectHandler) getProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := uuidParam(r, "projectId")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := h.projects.GetProject(r.Context(), projectID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, project)
	}
}

// listProjects returns every project, newest first
// @Summary List projects
// @Tags Projects
// @Produce json
// @Success 200 {array} models.Project
// @Router /project/getAll [get]
func (h projectHandler) listProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := h.projects.ListProjects(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, projects)
	}
}

// listCustomerProjects returns the projects posted by one customer
// @Summary List a customer's projects
// @Tags Projects
// @Produce json
// @Param customerId path string true "Customer ID" format(uuid)
// @Success 200 {array} models.Project
// @Router /project/getcustProject/{customerId} [get]
func (h projectHandler) listCustomerProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		customerID, err := uuidParam(r, "customerId")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		projects, err := h.projects.ListCustomerProjects(r.Context(), customerID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, projects)
	}
}

// updateProject applies a sparse patch; absent fields keep their value
// @Summary Update project
// @Tags Projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID" format(uuid)
// @Param patch body models.ProjectPatch true "Fields to change"
// @Success 200 {object} models.Project
// @Failure 400 {object} ErrorResponse "No fields to update or invalid field"
// @Failure 403 {object} ErrorResponse "Caller does not own the project"
// @Failure 404 {object} ErrorResponse "Project not found"
// @Router /project/update-project/{id} [patch]
func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal, err := ctxGetPrincipal(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		projectID, err := uuidParam(r, "id")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var patch models.ProjectPatch
		if err := decodeJSON(r, "project", &patch); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := h.projects.UpdateProject(r.Context(), projectID, principal, patch)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, project)
	}
}

// deleteProject removes a project together with its bids and job requests
// @Summary Delete project
// @Tags Projects
// @Produce json
// @Param id path string true "Project ID" format(uuid)
// @Success 200 {object} MessageResponse
// @Failure 403 {object} ErrorResponse "Unauthorized to delete this project"
// @Failure 404 {object} ErrorResponse "Project not found"
// @Router /project/delete-project/{id} [delete]
func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal, err := ctxGetPrincipal(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		projectID, err := uuidParam(r, "id")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.projects.DeleteProject(r.Context(), projectID, principal); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, MessageResponse{Message: "Project deleted successfully"})
	}
}

// toggleBidding flips the manual bidding-closed flag
// @Summary Toggle bidding
// @Tags Bids
// @Produce json
// @Param projectId path string true "Project ID" format(uuid)
// @Success 200 {object} BiddingStateResponse
// @Failure 403 {object} ErrorResponse "You are not the owner of this project"
// @Router /projects/{projectId}/bids/close-bidding [patch]
func (h projectHandler) toggleBidding() http.HandlerFunc {
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

		closed, err := h.projects.ToggleBidding(r.Context(), projectID, principal)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		message := "Bidding opened"
		if closed {
			message = "Bidding closed"
		}
		h.responder.WriteJSON(w, BiddingStateResponse{Message: message, BiddingClosed: closed})
	}
}

// assignContractor awards the project to the bid's contractor
// @Summary Assign contractor
// @Tags Projects
// @Produce json
// @Param projectId path string true "Project ID" format(uuid)
// @Param bidId path string true "Bid ID" format(uuid)
// @Success 200 {object} models.Project
// @Failure 400 {object} ErrorResponse "Project is already assigned"
// @Failure 403 {object} ErrorResponse "Caller does not own the project"
// @Failure 404 {object} ErrorResponse "Bid not found for this project"
// @Router /project/{projectId}/assign/{bidId} [put]
func (h projectHandler) assignContractor() http.HandlerFunc {
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
		bidID, err := uuidParam(r, "bidId")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := h.assignments.AssignContractor(r.Context(), projectID, bidID, principal)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, project)
	}
}

// presignUpload hands the owner a short-lived S3 PUT URL for a plan file
// @Summary Presign plan upload
// @Tags Projects
// @Accept json
// @Produce json
// @Param projectId path string true "Project ID" format(uuid)
// @Param request body PresignRequest true "File to upload"
// @Success 200 {object} marketplace.PresignedUpload
// @Failure 503 {object} ErrorResponse "File storage not configured"
// @Router /project/{projectId}/files/presign [post]
func (h projectHandler) presignUpload() http.HandlerFunc {
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

		var req PresignRequest
		if err := decodeJSON(r, "presign", &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		upload, err := h.projects.PresignUpload(r.Context(), projectID, principal, req.FileName, req.ContentType)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, upload)
	}
}
