package api

import (
	"github.com/rpupo63/contractor-marketplace-backend/marketplace"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(market *marketplace.Marketplace) *routeHandlers {
	return &routeHandlers{
		projectHandler:    newProjectHandler(market.Projects, market.Assignments),
		bidHandler:        newBidHandler(market.Bids),
		jobRequestHandler: newJobRequestHandler(market.JobRequests),
		profileHandler:    newProfileHandler(market.Profiles),
	}
}
