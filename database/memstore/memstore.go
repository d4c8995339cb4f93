// Package memstore is an in-memory implementation of the marketplace stores.
// It enforces the same unique keys and conditional assignment as the
// Postgres schema and backs tests and DB_TYPE=memory runs.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/contractor-marketplace-backend/errs"
	"github.com/rpupo63/contractor-marketplace-backend/marketplace"
	"github.com/rpupo63/contractor-marketplace-backend/models"
)

type Store struct {
	mu  sync.RWMutex
	seq int64

	users       map[uuid.UUID]models.User
	profiles    map[uuid.UUID]models.ContractorProfile // by user id
	projects    map[uuid.UUID]row[models.Project]
	bids        map[uuid.UUID]row[models.Bid]
	jobRequests map[uuid.UUID]row[models.JobRequest]
}

// row remembers insertion order.
type row[T any] struct {
	seq   int64
	value T
}

func New() *Store {
	return &Store{
		users:       make(map[uuid.UUID]models.User),
		profiles:    make(map[uuid.UUID]models.ContractorProfile),
		projects:    make(map[uuid.UUID]row[models.Project]),
		bids:        make(map[uuid.UUID]row[models.Bid]),
		jobRequests: make(map[uuid.UUID]row[models.JobRequest]),
	}
}

// Stores exposes s through every store interface of the core.
func (s *Store) Stores() marketplace.Stores {
	return marketplace.Stores{
		Projects:    s,
		Bids:        s,
		JobRequests: s,
		Users:       s,
		Profiles:    s,
	}
}

func (s *Store) next() int64 {
	s.seq++
	return s.seq
}

func uniqueViolation(constraint string) error {
	return errs.NewUniqueConstraintViolationError(constraint, constraint, fmt.Errorf("duplicate key value violates unique constraint %q", constraint))
}

func sortedValues[T any](rows map[uuid.UUID]row[T], keep func(T) bool) []T {
	matched := make([]row[T], 0, len(rows))
	for _, r := range rows {
		if keep(r.value) {
			matched = append(matched, r)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].seq < matched[j].seq })
	out := make([]T, 0, len(matched))
	for _, r := range matched {
		out = append(out, r.value)
	}
	return out
}

// Users

// AddUser seeds an identity record. Accounts are created by the auth
// service in production.
func (s *Store) AddUser(user models.User) models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := time.Now()
	user.CreatedAt, user.UpdatedAt = now, now
	s.users[user.ID] = user
	return user
}

func (s *Store) FindUser(_ context.Context, id uuid.UUID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, errs.NewNotFound("User")
	}
	return &user, nil
}

func (s *Store) UpdateUser(_ context.Context, id uuid.UUID, patch models.UserPatch) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return nil, errs.NewNotFound("User")
	}
	if patch.Email != nil {
		for otherID, other := range s.users {
			if otherID != id && other.Email == *patch.Email {
				return nil, uniqueViolation("idx_users_email")
			}
		}
		user.Email = *patch.Email
	}
	if patch.Name != nil {
		user.Name = *patch.Name
	}
	if patch.Phone != nil {
		phone := *patch.Phone
		user.Phone = &phone
	}
	user.UpdatedAt = time.Now()
	s.users[id] = user
	return &user, nil
}

// Profiles

func (s *Store) FindProfileByUser(_ context.Context, userID uuid.UUID) (*models.ContractorProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	profile, ok := s.profiles[userID]
	if !ok {
		return nil, errs.NewNotFound("Contractor profile")
	}
	return copyProfile(profile), nil
}

func (s *Store) SaveProfile(_ context.Context, profile *models.ContractorProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[profile.UserID]; !ok {
		return errs.NewDatabaseError("save", "contractor profile", fmt.Errorf("violates foreign key constraint on user_id"))
	}
	now := time.Now()
	if existing, ok := s.profiles[profile.UserID]; ok {
		profile.ID = existing.ID
		profile.CreatedAt = existing.CreatedAt
	} else {
		if profile.ID == uuid.Nil {
			profile.ID = uuid.New()
		}
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now
	s.profiles[profile.UserID] = *copyProfile(*profile)
	return nil
}

func (s *Store) LookupIdentities(_ context.Context, userIDs []uuid.UUID) (map[uuid.UUID]models.ContractorIdentity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[uuid.UUID]models.ContractorIdentity, len(userIDs))
	for _, id := range userIDs {
		if user, ok := s.users[id]; ok {
			out[id] = s.identity(user)
		}
	}
	return out, nil
}

func (s *Store) ListContractors(_ context.Context) ([]models.ContractorIdentity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.ContractorIdentity, 0, len(s.profiles))
	for userID := range s.profiles {
		if user, ok := s.users[userID]; ok {
			out = append(out, s.identity(user))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) identity(user models.User) models.ContractorIdentity {
	identity := models.ContractorIdentity{
		ID:             user.ID,
		Name:           user.Name,
		Email:          user.Email,
		Phone:          user.Phone,
		Skills:         []string{},
		Certifications: []string{},
	}
	if profile, ok := s.profiles[user.ID]; ok {
		identity.Skills = append(identity.Skills, profile.Skills...)
		identity.Experience = profile.Experience
		identity.Certifications = append(identity.Certifications, profile.Certifications...)
	}
	return identity
}

func copyProfile(p models.ContractorProfile) *models.ContractorProfile {
	p.Skills = append([]string{}, p.Skills...)
	p.Certifications = append([]string{}, p.Certifications...)
	return &p
}
