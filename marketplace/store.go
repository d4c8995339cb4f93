package marketplace

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/contractor-marketplace-backend/models"
)

// Store lookups return an *errs.ApiErr that satisfies errs.IsNotFound when the
// record is absent, and an error satisfying errs.IsUniqueViolation when an
// insert collides with a unique key.

type ProjectStore interface {
	CreateProject(ctx context.Context, project *models.Project) error
	FindProject(ctx context.Context, id uuid.UUID) (*models.Project, error)
	ListProjects(ctx context.Context) ([]models.Project, error)
	ListProjectsByCustomer(ctx context.Context, customerID uuid.UUID) ([]models.Project, error)
	ApplyProjectPatch(ctx context.Context, id uuid.UUID, patch models.ProjectPatch) error
	SetBiddingClosed(ctx context.Context, id uuid.UUID, closed bool) error
	// AssignContractor moves an open project to assigned in one conditional
	// write. It reports false when the project was no longer open.
	AssignContractor(ctx context.Context, projectID, contractorID uuid.UUID) (bool, error)
	// DeleteProjectCascade removes the project with its bids and
	// project-linked job requests atomically.
	DeleteProjectCascade(ctx context.Context, id uuid.UUID) error
}

type BidStore interface {
	CreateBid(ctx context.Context, bid *models.Bid) error
	FindBid(ctx context.Context, id uuid.UUID) (*models.Bid, error)
	FindBidByProjectAndContractor(ctx context.Context, projectID, contractorID uuid.UUID) (*models.Bid, error)
	UpdateBidContent(ctx context.Context, id uuid.UUID, budget float64, message string) (*models.Bid, error)
	DeleteBid(ctx context.Context, id uuid.UUID) error
	// ListBidsByProject returns bids in insertion order.
	ListBidsByProject(ctx context.Context, projectID uuid.UUID) ([]models.Bid, error)
	ListBidsByContractor(ctx context.Context, contractorID uuid.UUID) ([]models.Bid, error)
}

type JobRequestStore interface {
	CreateJobRequest(ctx context.Context, request *models.JobRequest) error
	FindJobRequest(ctx context.Context, id uuid.UUID) (*models.JobRequest, error)
	ProjectJobRequestExists(ctx context.Context, contractorID, projectID uuid.UUID) (bool, error)
	DirectJobRequestExists(ctx context.Context, key models.DirectJobRequestKey) (bool, error)
	SetJobRequestStatus(ctx context.Context, id uuid.UUID, status models.JobRequestStatus) error
	ListJobRequestsByContractor(ctx context.Context, contractorID uuid.UUID) ([]models.JobRequest, error)
}

type UserStore interface {
	FindUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdateUser(ctx context.Context, id uuid.UUID, patch models.UserPatch) (*models.User, error)
}

// ProfileStore is the contractor profile collaborator.
type ProfileStore interface {
	FindProfileByUser(ctx context.Context, userID uuid.UUID) (*models.ContractorProfile, error)
	SaveProfile(ctx context.Context, profile *models.ContractorProfile) error
	LookupIdentities(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID]models.ContractorIdentity, error)
	ListContractors(ctx context.Context) ([]models.ContractorIdentity, error)
}

// Stores groups the persistence dependencies of the core.
type Stores struct {
	Projects    ProjectStore
	Bids        BidStore
	JobRequests JobRequestStore
	Users       UserStore
	Profiles    ProfileStore
}

// Notification is a best-effort message to a single user.
type Notification struct {
	UserID  uuid.UUID
	Subject string
	Body    string
}

type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

type noopNotifier struct{}

func (noopNotifier) Notify(context.Context, Notification) error { return nil }

// Clock supplies the current time for bidding-window checks.
type Clock func() time.Time
