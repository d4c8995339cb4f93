package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes mounts every authenticated endpoint
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Group(func(r chi.Router) {
		r.Use(requestLogger)
		r.Use(authMiddleware.authenticate)

		r.Route("/projects/{projectId}/bids", func(r chi.Router) {
			r.Post("/submit", handlers.bidHandler.submitBid())
			r.Post("/update", handlers.bidHandler.updateBid())
			r.Delete("/delete", handlers.bidHandler.deleteBid())
			r.Get("/projectBids", handlers.bidHandler.listProjectBids())
			r.Patch("/close-bidding", handlers.projectHandler.toggleBidding())
		})
		r.Get("/bids/my", handlers.bidHandler.listMyBids())

		r.Route("/project", func(r chi.Router) {
			r.Post("/post", handlers.projectHandler.createProject())
			r.Get("/getAll", handlers.projectHandler.listProjects())
			r.Get("/getcustProject/{customerId}", handlers.projectHandler.listCustomerProjects())
			r.Patch("/update-project/{id}", handlers.projectHandler.updateProject())
			r.Delete("/delete-project/{id}", handlers.projectHandler.deleteProject())
			r.Get("/{projectId}", handlers.projectHandler.getProject())
			r.Put("/{projectId}/assign/{bidId}", handlers.projectHandler.assignContractor())
			r.Post("/{projectId}/files/presign", handlers.projectHandler.presignUpload())
		})

		r.Route("/job-request", func(r chi.Router) {
			r.Post("/send", handlers.jobRequestHandler.sendProjectRequest())
			r.Post("/direct-send", handlers.jobRequestHandler.sendDirectRequest())
			r.Get("/my-requests", handlers.jobRequestHandler.listMyRequests())
			r.Patch("/{requestId}/respond", handlers.jobRequestHandler.respond())
		})

		r.Patch("/contractor-profile/update", handlers.profileHandler.upsertProfile())
		r.Get("/contractor-profile/", handlers.profileHandler.listContractors())
		r.Patch("/user-profile/update", handlers.profileHandler.updateUserInfo())
	})
}
