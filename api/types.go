package api

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	projectHandler    projectHandler
	bidHandler        bidHandler
	jobRequestHandler jobRequestHandler
	profileHandler    profileHandler
}

// ErrorResponse represents an error response from the API
// @Description Error response structure
type ErrorResponse struct {
	Error   string `json:"error" example:"Bidding is closed for this project"`
	Status  string `json:"status" example:"error"`
	Field   string `json:"field,omitempty" example:"budget"`
	Details string `json:"details,omitempty" example:"Additional error details"`
}

// MessageResponse is returned by endpoints with nothing else to say.
type MessageResponse struct {
	Message string `json:"message" example:"Project deleted successfully"`
}

// BiddingStateResponse reports the bidding flag after a toggle.
type BiddingStateResponse struct {
	Message       string `json:"message"`
	BiddingClosed bool   `json:"biddingClosed"`
}

// PresignRequest asks for an upload URL for one plan file.
type PresignRequest struct {
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
}

// RespondRequest carries a contractor's answer to a job request.
type RespondRequest struct {
	Action string `json:"action" example:"accept"`
}

// PingResponse is the liveness payload.
type PingResponse struct {
	Status string `json:"status"`
	Uptime string `json:"uptime"`
}
