package memory

import (
	"context"
	"sort"
	"sync"

	"voyager/internal/domain/profile"
	"voyager/pkg/errors"
)

// Compile-time check that we implement the interface
var _ profile.Store = (*ProfileStore)(nil)

// ProfileStore is a process-local profile store. It backs local development
// and serves as the fallback target when the document database is
// unreachable. All data is lost on restart.
type ProfileStore struct {
	mu       sync.RWMutex
	profiles map[string]*profile.UserProfile
}

// NewProfileStore creates an empty in-memory store.
func NewProfileStore() *ProfileStore {
	return &ProfileStore{profiles: make(map[string]*profile.UserProfile)}
}

func (s *ProfileStore) Name() string { return "memory" }

// Create stores a new profile, rejecting duplicate user IDs.
func (s *ProfileStore) Create(_ context.Context, p *profile.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.profiles[p.UserID]; ok {
		return errors.Wrapf(errors.ErrAlreadyExists, "profile %s", p.UserID)
	}
	s.profiles[p.UserID] = p.Clone()
	return nil
}

// Get returns a copy of the stored profile.
func (s *ProfileStore) Get(_ context.Context, userID string) (*profile.UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.profiles[userID]
	if !ok {
		return nil, errors.Wrapf(errors.ErrProfileNotFound, "profile %s", userID)
	}
	return p.Clone(), nil
}

// Update replaces the stored profile.
func (s *ProfileStore) Update(_ context.Context, p *profile.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.profiles[p.UserID]; !ok {
		return errors.Wrapf(errors.ErrProfileNotFound, "profile %s", p.UserID)
	}
	s.profiles[p.UserID] = p.Clone()
	return nil
}

// Delete removes a profile and reports whether it existed.
func (s *ProfileStore) Delete(_ context.Context, userID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.profiles[userID]; !ok {
		return false, nil
	}
	delete(s.profiles, userID)
	return true, nil
}

// List returns profiles ordered by creation time, oldest first, with the
// user ID breaking ties so pagination windows are stable.
func (s *ProfileStore) List(_ context.Context, limit, offset int) ([]*profile.UserProfile, error) {
	s.mu.RLock()
	all := make([]*profile.UserProfile, 0, len(s.profiles))
	for _, p := range s.profiles {
		all = append(all, p)
	}
	s.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].UserID < all[j].UserID
		}
		return all[i].CreatedAt.Before(all[j].CreatedAt)
	})

	if offset >= len(all) {
		return []*profile.UserProfile{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}

	page := make([]*profile.UserProfile, 0, end-offset)
	for _, p := range all[offset:end] {
		page = append(page, p.Clone())
	}
	return page, nil
}

// Count returns the number of stored profiles.
func (s *ProfileStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.profiles), nil
}
