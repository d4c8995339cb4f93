package marketplace_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/contractor-marketplace-backend/database/memstore"
	"github.com/rpupo63/contractor-marketplace-backend/errs"
	"github.com/rpupo63/contractor-marketplace-backend/marketplace"
	"github.com/rpupo63/contractor-marketplace-backend/models"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	mu   sync.Mutex
	sent []marketplace.Notification
}

func (n *recordingNotifier) Notify(_ context.Context, notification marketplace.Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, notification)
	return nil
}

func (n *recordingNotifier) recipients() []uuid.UUID {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]uuid.UUID, 0, len(n.sent))
	for _, s := range n.sent {
		out = append(out, s.UserID)
	}
	return out
}

type fixture struct {
	ctx        context.Context
	store      *memstore.Store
	market     *marketplace.Marketplace
	notifier   *recordingNotifier
	now        time.Time
	customer   marketplace.Principal
	contractor marketplace.Principal
	rival      marketplace.Principal
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		ctx:      context.Background(),
		store:    memstore.New(),
		notifier: &recordingNotifier{},
		now:      time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	f.customer = f.addUser("Casey Customer", "casey@example.com", models.RoleCustomer)
	f.contractor = f.addUser("Riley Builder", "riley@example.com", models.RoleContractor)
	f.rival = f.addUser("Morgan Roofing", "morgan@example.com", models.RoleContractor)
	f.market = marketplace.New(f.store.Stores(),
		marketplace.WithClock(func() time.Time { return f.now }),
		marketplace.WithNotifier(f.notifier),
	)
	return f
}

func (f *fixture) addUser(name, email string, role models.Role) marketplace.Principal {
	user := f.store.AddUser(models.User{Name: name, Email: email, Role: role})
	return marketplace.Principal{ID: user.ID, Role: role}
}

func (f *fixture) postProject(t *testing.T) *models.Project {
	t.Helper()
	budget := 12000.0
	bidding := f.now.Add(72 * time.Hour)
	deadline := f.now.Add(30 * 24 * time.Hour)
	project, err := f.market.Projects.CreateProject(f.ctx, f.customer, marketplace.ProjectInput{
		Title:           "Kitchen remodel",
		Description:     "Replace cabinets and countertops",
		Location:        "Austin, TX",
		Budget:          &budget,
		BiddingDeadline: &bidding,
		ProjectDeadline: &deadline,
	})
	require.NoError(t, err)
	return project
}

func (f *fixture) bid(t *testing.T, projectID uuid.UUID, who marketplace.Principal, budget float64) *models.Bid {
	t.Helper()
	bid, err := f.market.Bids.SubmitBid(f.ctx, projectID, who, marketplace.BidInput{Budget: budget, Message: "ok"})
	require.NoError(t, err)
	return bid
}

func TestCreateProject(t *testing.T) {
	f := newFixture(t)
	project := f.postProject(t)

	require.Equal(t, models.ProjectStatusOpen, project.Status)
	require.False(t, project.BiddingClosed)
	require.Nil(t, project.AssignedContractorID)
	require.Equal(t, f.customer.ID, project.CustomerID)

	t.Run("contractors cannot post", func(t *testing.T) {
		_, err := f.market.Projects.CreateProject(f.ctx, f.contractor, marketplace.ProjectInput{})
		require.True(t, errs.IsForbidden(err))
	})

	t.Run("missing fields", func(t *testing.T) {
		budget := 10.0
		_, err := f.market.Projects.CreateProject(f.ctx, f.customer, marketplace.ProjectInput{
			Title:       "Fence",
			Description: "Cedar fence",
			Location:    "Denver",
			Budget:      &budget,
		})
		require.True(t, errs.IsValidation(err))
		require.True(t, errs.IsMissingRequiredFieldError(err))
	})

	t.Run("non-positive budget", func(t *testing.T) {
		budget := 0.0
		deadline := f.now.Add(time.Hour)
		_, err := f.market.Projects.CreateProject(f.ctx, f.customer, marketplace.ProjectInput{
			Title: "Fence", Description: "Cedar fence", Location: "Denver",
			Budget: &budget, BiddingDeadline: &deadline, ProjectDeadline: &deadline,
		})
		require.True(t, errs.IsValidation(err))
	})

	t.Run("bidding deadline after project deadline", func(t *testing.T) {
		budget := 10.0
		bidding := f.now.Add(48 * time.Hour)
		deadline := f.now.Add(24 * time.Hour)
		_, err := f.market.Projects.CreateProject(f.ctx, f.customer, marketplace.ProjectInput{
			Title: "Fence", Description: "Cedar fence", Location: "Denver",
			Budget: &budget, BiddingDeadline: &bidding, ProjectDeadline: &deadline,
		})
		require.True(t, errs.IsValidation(err))
	})
}

func TestIsBiddingOpen(t *testing.T) {
	f := newFixture(t)
	open := models.Project{
		Status:          models.ProjectStatusOpen,
		BiddingDeadline: f.now.Add(time.Minute),
	}
	require.True(t, f.market.Projects.IsBiddingOpen(&open))

	atDeadline := open
	atDeadline.BiddingDeadline = f.now
	require.True(t, f.market.Projects.IsBiddingOpen(&atDeadline))

	for _, status := range []models.ProjectStatus{
		models.ProjectStatusAssigned,
		models.ProjectStatusInProgress,
		models.ProjectStatusCompleted,
		models.ProjectStatusCancelled,
	} {
		p := open
		p.Status = status
		require.False(t, f.market.Projects.IsBiddingOpen(&p), status)
	}

	closed := open
	closed.BiddingClosed = true
	require.False(t, f.market.Projects.IsBiddingOpen(&closed))

	expired := open
	expired.BiddingDeadline = f.now.Add(-time.Second)
	require.False(t, f.market.Projects.IsBiddingOpen(&expired))
}

func TestUpdateProjectIsSparse(t *testing.T) {
	f := newFixture(t)
	project := f.postProject(t)

	budget := 15000.0
	updated, err := f.market.Projects.UpdateProject(f.ctx, project.ID, f.customer, models.ProjectPatch{Budget: &budget})
	require.NoError(t, err)
	require.Equal(t, 15000.0, updated.Budget)
	require.Equal(t, project.Title, updated.Title)
	require.Equal(t, project.Description, updated.Description)
	require.Equal(t, project.Location, updated.Location)
	require.True(t, project.BiddingDeadline.Equal(updated.BiddingDeadline))

	t.Run("non-owner", func(t *testing.T) {
		_, err := f.market.Projects.UpdateProject(f.ctx, project.ID, f.contractor, models.ProjectPatch{Budget: &budget})
		require.True(t, errs.IsForbidden(err))
	})

	t.Run("missing project", func(t *testing.T) {
		_, err := f.market.Projects.UpdateProject(f.ctx, uuid.New(), f.customer, models.ProjectPatch{Budget: &budget})
		require.True(t, errs.IsNotFound(err))
	})

	t.Run("blank title", func(t *testing.T) {
		blank := "  "
		_, err := f.market.Projects.UpdateProject(f.ctx, project.ID, f.customer, models.ProjectPatch{Title: &blank})
		require.True(t, errs.IsValidation(err))
	})

	t.Run("deadlines stay ordered", func(t *testing.T) {
		late := project.ProjectDeadline.Add(time.Hour)
		_, err := f.market.Projects.UpdateProject(f.ctx, project.ID, f.customer, models.ProjectPatch{BiddingDeadline: &late})
		require.True(t, errs.IsValidation(err))
	})
}

func TestDeleteProjectCascades(t *testing.T) {
	f := newFixture(t)
	project := f.postProject(t)
	f.bid(t, project.ID, f.contractor, 500)
	_, err := f.market.JobRequests.SendProjectJobRequest(f.ctx, f.customer, marketplace.ProjectJobRequestInput{
		ContractorID: f.rival.ID,
		ProjectID:    project.ID,
	})
	require.NoError(t, err)

	err = f.market.Projects.DeleteProject(f.ctx, project.ID, f.contractor)
	require.True(t, errs.IsForbidden(err))

	require.NoError(t, f.market.Projects.DeleteProject(f.ctx, project.ID, f.customer))

	_, err = f.market.Projects.GetProject(f.ctx, project.ID)
	require.True(t, errs.IsNotFound(err))
	bids, err := f.market.Bids.ListMyBids(f.ctx, f.contractor)
	require.NoError(t, err)
	require.Empty(t, bids)
	requests, err := f.market.JobRequests.ListForContractor(f.ctx, f.rival)
	require.NoError(t, err)
	require.Empty(t, requests)

	err = f.market.Projects.DeleteProject(f.ctx, project.ID, f.customer)
	require.True(t, errs.IsNotFound(err))
}

func TestToggleBidding(t *testing.T) {
	f := newFixture(t)
	project := f.postProject(t)

	_, err := f.market.Projects.ToggleBidding(f.ctx, project.ID, f.contractor)
	require.True(t, errs.IsForbidden(err))
	stored, err := f.market.Projects.GetProject(f.ctx, project.ID)
	require.NoError(t, err)
	require.False(t, stored.BiddingClosed)

	closed, err := f.market.Projects.ToggleBidding(f.ctx, project.ID, f.customer)
	require.NoError(t, err)
	require.True(t, closed)

	_, err = f.market.Bids.SubmitBid(f.ctx, project.ID, f.contractor, marketplace.BidInput{Budget: 500, Message: "ok"})
	require.True(t, errs.IsConflict(err))

	// reopening past the deadline is allowed
	f.now = project.BiddingDeadline.Add(time.Hour)
	closed, err = f.market.Projects.ToggleBidding(f.ctx, project.ID, f.customer)
	require.NoError(t, err)
	require.False(t, closed)
}

func TestSubmitBid(t *testing.T) {
	f := newFixture(t)
	project := f.postProject(t)

	bid := f.bid(t, project.ID, f.contractor, 500)
	require.Equal(t, project.ID, bid.ProjectID)
	require.Equal(t, f.contractor.ID, bid.ContractorID)

	_, err := f.market.Bids.SubmitBid(f.ctx, project.ID, f.contractor, marketplace.BidInput{Budget: 450, Message: "again"})
	require.True(t, errs.IsConflict(err))
	require.Equal(t, "You have already placed a bid on this project", err.Error())

	t.Run("customers cannot bid", func(t *testing.T) {
		_, err := f.market.Bids.SubmitBid(f.ctx, project.ID, f.customer, marketplace.BidInput{Budget: 1, Message: "x"})
		require.True(t, errs.IsForbidden(err))
	})

	t.Run("owner cannot bid even with contractor role", func(t *testing.T) {
		spoofed := marketplace.Principal{ID: f.customer.ID, Role: models.RoleContractor}
		_, err := f.market.Bids.SubmitBid(f.ctx, project.ID, spoofed, marketplace.BidInput{Budget: 1, Message: "x"})
		require.True(t, errs.IsForbidden(err))
	})

	t.Run("invalid content", func(t *testing.T) {
		_, err := f.market.Bids.SubmitBid(f.ctx, project.ID, f.rival, marketplace.BidInput{Budget: 0, Message: "x"})
		require.True(t, errs.IsValidation(err))
		_, err = f.market.Bids.SubmitBid(f.ctx, project.ID, f.rival, marketplace.BidInput{Budget: 10, Message: "   "})
		require.True(t, errs.IsValidation(err))
	})

	t.Run("missing project", func(t *testing.T) {
		_, err := f.market.Bids.SubmitBid(f.ctx, uuid.New(), f.rival, marketplace.BidInput{Budget: 10, Message: "x"})
		require.True(t, errs.IsNotFound(err))
	})
}

func TestSubmitBidAfterDeadline(t *testing.T) {
	f := newFixture(t)
	project := f.postProject(t)
	f.now = project.BiddingDeadline.Add(time.Second)

	_, err := f.market.Bids.SubmitBid(f.ctx, project.ID, f.contractor, marketplace.BidInput{Budget: 500, Message: "ok"})
	require.True(t, errs.IsConflict(err))
	require.Equal(t, "Bidding is closed for this project", err.Error())
}

func TestConcurrentSubmitYieldsOneBid(t *testing.T) {
	f := newFixture(t)
	project := f.postProject(t)

	const attempts = 8
	var wg sync.WaitGroup
	results := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.market.Bids.SubmitBid(f.ctx, project.ID, f.contractor, marketplace.BidInput{Budget: 500, Message: "ok"})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var succeeded, conflicts int
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		case errs.IsConflict(err):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	require.Equal(t, 1, succeeded)
	require.Equal(t, attempts-1, conflicts)

	bids, err := f.market.Bids.ListBidsForProject(f.ctx, project.ID, f.customer)
	require.NoError(t, err)
	require.Len(t, bids, 1)
}

func TestUpdateAndDeleteBid(t *testing.T) {
	f := newFixture(t)
	project := f.postProject(t)

	_, err := f.market.Bids.UpdateBid(f.ctx, project.ID, f.contractor, marketplace.BidInput{Budget: 400, Message: "revised"})
	require.True(t, errs.IsNotFound(err))
	require.Equal(t, "No existing bid to update", err.Error())

	original := f.bid(t, project.ID, f.contractor, 500)
	updated, err := f.market.Bids.UpdateBid(f.ctx, project.ID, f.contractor, marketplace.BidInput{Budget: 400, Message: "revised"})
	require.NoError(t, err)
	require.Equal(t, original.ID, updated.ID)
	require.Equal(t, 400.0, updated.Budget)
	require.Equal(t, "revised", updated.Message)
	require.True(t, original.CreatedAt.Equal(updated.CreatedAt))

	require.NoError(t, f.market.Bids.DeleteBid(f.ctx, project.ID, f.contractor))
	err = f.market.Bids.DeleteBid(f.ctx, project.ID, f.contractor)
	require.True(t, errs.IsNotFound(err))

	t.Run("window closed", func(t *testing.T) {
		f.bid(t, project.ID, f.rival, 900)
		_, err := f.market.Projects.ToggleBidding(f.ctx, project.ID, f.customer)
		require.NoError(t, err)

		_, err = f.market.Bids.UpdateBid(f.ctx, project.ID, f.rival, marketplace.BidInput{Budget: 800, Message: "lower"})
		require.True(t, errs.IsConflict(err))
		err = f.market.Bids.DeleteBid(f.ctx, project.ID, f.rival)
		require.True(t, errs.IsConflict(err))
	})
}

func TestListBidsForProject(t *testing.T) {
	f := newFixture(t)
	project := f.postProject(t)
	skills := []string{"cabinetry", "tile"}
	_, err := f.market.Profiles.UpsertProfile(f.ctx, f.contractor, models.ContractorProfilePatch{Skills: &skills})
	require.NoError(t, err)

	f.bid(t, project.ID, f.contractor, 500)
	f.bid(t, project.ID, f.rival, 300)

	bids, err := f.market.Bids.ListBidsForProject(f.ctx, project.ID, f.customer)
	require.NoError(t, err)
	require.Len(t, bids, 2)
	require.Equal(t, f.contractor.ID, bids[0].Bid.ContractorID)
	require.Equal(t, "Riley Builder", bids[0].Contractor.Name)
	require.Equal(t, "riley@example.com", bids[0].Contractor.Email)
	require.Equal(t, skills, bids[0].Contractor.Skills)
	require.Equal(t, f.rival.ID, bids[1].Bid.ContractorID)
	require.Empty(t, bids[1].Contractor.Skills)

	_, err = f.market.Bids.ListBidsForProject(f.ctx, project.ID, f.contractor)
	require.True(t, errs.IsForbidden(err))
}

func TestAssignContractor(t *testing.T) {
	f := newFixture(t)
	project := f.postProject(t)
	winning := f.bid(t, project.ID, f.contractor, 500)
	losing := f.bid(t, project.ID, f.rival, 700)

	_, err := f.market.Assignments.AssignContractor(f.ctx, project.ID, winning.ID, f.contractor)
	require.True(t, errs.IsForbidden(err))

	assigned, err := f.market.Assignments.AssignContractor(f.ctx, project.ID, winning.ID, f.customer)
	require.NoError(t, err)
	require.Equal(t, models.ProjectStatusAssigned, assigned.Status)
	require.True(t, assigned.BiddingClosed)
	require.NotNil(t, assigned.AssignedContractorID)
	require.Equal(t, f.contractor.ID, *assigned.AssignedContractorID)
	require.Contains(t, f.notifier.recipients(), f.contractor.ID)

	_, err = f.market.Assignments.AssignContractor(f.ctx, project.ID, losing.ID, f.customer)
	require.True(t, errs.IsConflict(err))
	stored, err := f.market.Projects.GetProject(f.ctx, project.ID)
	require.NoError(t, err)
	require.Equal(t, f.contractor.ID, *stored.AssignedContractorID)

	// losing bids are kept as history
	bids, err := f.market.Bids.ListBidsForProject(f.ctx, project.ID, f.customer)
	require.NoError(t, err)
	require.Len(t, bids, 2)

	// the window stays shut even if the owner flips the override back
	_, err = f.market.Projects.ToggleBidding(f.ctx, project.ID, f.customer)
	require.NoError(t, err)
	_, err = f.market.Bids.UpdateBid(f.ctx, project.ID, f.rival, marketplace.BidInput{Budget: 1, Message: "please"})
	require.True(t, errs.IsConflict(err))
}

func TestAssignContractorWithForeignBid(t *testing.T) {
	f := newFixture(t)
	project := f.postProject(t)
	other := f.postProject(t)
	foreign := f.bid(t, other.ID, f.contractor, 500)

	_, err := f.market.Assignments.AssignContractor(f.ctx, project.ID, foreign.ID, f.customer)
	require.True(t, errs.IsNotFound(err))

	_, err = f.market.Assignments.AssignContractor(f.ctx, project.ID, uuid.New(), f.customer)
	require.True(t, errs.IsNotFound(err))

	_, err = f.market.Assignments.AssignContractor(f.ctx, uuid.New(), foreign.ID, f.customer)
	require.True(t, errs.IsNotFound(err))
}

func TestConcurrentAssignHasOneWinner(t *testing.T) {
	f := newFixture(t)
	project := f.postProject(t)
	bids := []*models.Bid{
		f.bid(t, project.ID, f.contractor, 500),
		f.bid(t, project.ID, f.rival, 600),
	}

	var wg sync.WaitGroup
	results := make([]error, len(bids))
	for i, bid := range bids {
		wg.Add(1)
		go func(i int, bidID uuid.UUID) {
			defer wg.Done()
			_, results[i] = f.market.Assignments.AssignContractor(f.ctx, project.ID, bidID, f.customer)
		}(i, bid.ID)
	}
	wg.Wait()

	var winner uuid.UUID
	succeeded := 0
	for i, err := range results {
		if err == nil {
			succeeded++
			winner = bids[i].ContractorID
			continue
		}
		require.True(t, errs.IsConflict(err), err)
	}
	require.Equal(t, 1, succeeded)

	stored, err := f.market.Projects.GetProject(f.ctx, project.ID)
	require.NoError(t, err)
	require.Equal(t, winner, *stored.AssignedContractorID)
}

func TestProjectJobRequests(t *testing.T) {
	f := newFixture(t)
	project := f.postProject(t)
	input := marketplace.ProjectJobRequestInput{ContractorID: f.contractor.ID, ProjectID: project.ID}

	request, err := f.market.JobRequests.SendProjectJobRequest(f.ctx, f.customer, input)
	require.NoError(t, err)
	require.Equal(t, models.JobRequestPending, request.Status)
	require.False(t, request.IsDirect())
	require.Contains(t, f.notifier.recipients(), f.contractor.ID)

	_, err = f.market.JobRequests.SendProjectJobRequest(f.ctx, f.customer, input)
	require.True(t, errs.IsConflict(err))

	_, err = f.market.JobRequests.SendProjectJobRequest(f.ctx, f.contractor, input)
	require.True(t, errs.IsForbidden(err))

	other := f.addUser("Jordan Owner", "jordan@example.com", models.RoleCustomer)
	_, err = f.market.JobRequests.SendProjectJobRequest(f.ctx, other, marketplace.ProjectJobRequestInput{
		ContractorID: f.rival.ID,
		ProjectID:    project.ID,
	})
	require.True(t, errs.IsForbidden(err))

	// job requests leave bidding untouched
	stored, err := f.market.Projects.GetProject(f.ctx, project.ID)
	require.NoError(t, err)
	require.Equal(t, models.ProjectStatusOpen, stored.Status)
	require.False(t, stored.BiddingClosed)
}

func TestDirectJobRequests(t *testing.T) {
	f := newFixture(t)
	input := marketplace.DirectJobRequestInput{
		ContractorID: f.contractor.ID,
		Requirements: "Patch drywall in two rooms",
		Budget:       800,
	}

	request, err := f.market.JobRequests.SendDirectJobRequest(f.ctx, f.customer, input)
	require.NoError(t, err)
	require.True(t, request.IsDirect())
	require.Equal(t, "Patch drywall in two rooms", *request.Requirements)

	_, err = f.market.JobRequests.SendDirectJobRequest(f.ctx, f.customer, input)
	require.True(t, errs.IsConflict(err))

	// a different budget is a different request
	input.Budget = 900
	_, err = f.market.JobRequests.SendDirectJobRequest(f.ctx, f.customer, input)
	require.NoError(t, err)

	_, err = f.market.JobRequests.SendDirectJobRequest(f.ctx, f.customer, marketplace.DirectJobRequestInput{
		ContractorID: f.contractor.ID,
		Budget:       100,
	})
	require.True(t, errs.IsValidation(err))

	_, err = f.market.JobRequests.SendDirectJobRequest(f.ctx, f.customer, marketplace.DirectJobRequestInput{
		ContractorID: f.customer.ID,
		Requirements: "Paint",
		Budget:       100,
	})
	require.True(t, errs.IsValidation(err))

	requests, err := f.market.JobRequests.ListForContractor(f.ctx, f.contractor)
	require.NoError(t, err)
	require.Len(t, requests, 2)
}

func TestRespondToJobRequest(t *testing.T) {
	f := newFixture(t)
	request, err := f.market.JobRequests.SendDirectJobRequest(f.ctx, f.customer, marketplace.DirectJobRequestInput{
		ContractorID: f.contractor.ID,
		Requirements: "Install a ceiling fan",
		Budget:       250,
	})
	require.NoError(t, err)

	_, err = f.market.JobRequests.RespondToJobRequest(f.ctx, request.ID, f.contractor, "maybe")
	require.True(t, errs.IsValidation(err))

	_, err = f.market.JobRequests.RespondToJobRequest(f.ctx, request.ID, f.rival, "accept")
	require.True(t, errs.IsNotFound(err))

	_, err = f.market.JobRequests.RespondToJobRequest(f.ctx, uuid.New(), f.contractor, "accept")
	require.True(t, errs.IsNotFound(err))

	answered, err := f.market.JobRequests.RespondToJobRequest(f.ctx, request.ID, f.contractor, "accept")
	require.NoError(t, err)
	require.Equal(t, models.JobRequestAccepted, answered.Status)
	require.Contains(t, f.notifier.recipients(), f.customer.ID)

	answered, err = f.market.JobRequests.RespondToJobRequest(f.ctx, request.ID, f.contractor, "reject")
	require.NoError(t, err)
	require.Equal(t, models.JobRequestRejected, answered.Status)
}

func TestProfiles(t *testing.T) {
	f := newFixture(t)
	skills := []string{"roofing"}
	experience := 7

	_, err := f.market.Profiles.UpsertProfile(f.ctx, f.customer, models.ContractorProfilePatch{Skills: &skills})
	require.True(t, errs.IsForbidden(err))

	profile, err := f.market.Profiles.UpsertProfile(f.ctx, f.rival, models.ContractorProfilePatch{Skills: &skills})
	require.NoError(t, err)
	require.Equal(t, []string{"roofing"}, []string(profile.Skills))
	require.Empty(t, profile.Certifications)

	profile, err = f.market.Profiles.UpsertProfile(f.ctx, f.rival, models.ContractorProfilePatch{Experience: &experience})
	require.NoError(t, err)
	require.Equal(t, 7, profile.Experience)
	require.Equal(t, []string{"roofing"}, []string(profile.Skills))

	negative := -1
	_, err = f.market.Profiles.UpsertProfile(f.ctx, f.rival, models.ContractorProfilePatch{Experience: &negative})
	require.True(t, errs.IsValidation(err))

	contractors, err := f.market.Profiles.ListContractors(f.ctx)
	require.NoError(t, err)
	require.Len(t, contractors, 1)
	require.Equal(t, "Morgan Roofing", contractors[0].Name)
	require.Equal(t, 7, contractors[0].Experience)
}

func TestUpdateUserInfo(t *testing.T) {
	f := newFixture(t)
	name := "Casey C."
	user, err := f.market.Profiles.UpdateUserInfo(f.ctx, f.customer, models.UserPatch{Name: &name})
	require.NoError(t, err)
	require.Equal(t, "Casey C.", user.Name)
	require.Equal(t, "casey@example.com", user.Email)

	taken := "riley@example.com"
	_, err = f.market.Profiles.UpdateUserInfo(f.ctx, f.customer, models.UserPatch{Email: &taken})
	require.True(t, errs.IsConflict(err))

	bad := "not-an-email"
	_, err = f.market.Profiles.UpdateUserInfo(f.ctx, f.customer, models.UserPatch{Email: &bad})
	require.True(t, errs.IsValidation(err))

	_, err = f.market.Profiles.UpdateUserInfo(f.ctx, marketplace.Principal{ID: uuid.New(), Role: models.RoleCustomer}, models.UserPatch{Name: &name})
	require.True(t, errs.IsNotFound(err))
}
