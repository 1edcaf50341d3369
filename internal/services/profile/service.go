package profile

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"voyager/internal/domain/profile"
	"voyager/internal/metrics"
	"voyager/pkg/errors"
	"voyager/pkg/logger"
)

const (
	// DefaultListLimit applies when a caller does not specify a page size.
	DefaultListLimit = 50
	// MaxListLimit caps a single page.
	MaxListLimit = 100
)

// Service owns the profile lifecycle. It fronts a primary store (usually
// Firestore) with an in-memory fallback: the first operational failure of
// the primary flips the service to the fallback for the remainder of the
// process. The switch is one-way; callers observe it only through
// Degraded() and the health endpoint.
type Service struct {
	primary  profile.Store
	fallback profile.Store

	mu       sync.RWMutex
	degraded bool

	log *logger.Logger
}

// NewService wires the primary store with its in-memory fallback. When
// primary is nil the service starts directly on the fallback and reports
// degraded mode from the outset.
func NewService(primary, fallback profile.Store) *Service {
	s := &Service{
		primary:  primary,
		fallback: fallback,
		log:      logger.Get().With("service", "profile"),
	}
	if primary == nil {
		s.degraded = true
		s.log.Warnw("No durable profile store configured, running on in-memory storage")
	}
	return s
}

// Degraded reports whether the service has fallen back to in-memory storage.
func (s *Service) Degraded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.degraded
}

// StoreName reports which backend currently serves requests.
func (s *Service) StoreName() string {
	return s.store().Name()
}

func (s *Service) store() profile.Store {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.degraded {
		return s.fallback
	}
	return s.primary
}

// failover flips to the fallback store permanently. Returns the fallback
// so the failed operation can be retried against it.
func (s *Service) failover(op string, cause error) profile.Store {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.degraded {
		s.degraded = true
		metrics.StoreFailovers.Inc()
		s.log.Errorw("Profile store failed, switching to in-memory fallback",
			"operation", op,
			"error", cause,
		)
	}
	return s.fallback
}

// record tracks one store round trip for the operations metric.
func record(st profile.Store, op string, err error) {
	metrics.RecordStoreOperation(st.Name(), op, err)
}

// upsert writes a profile into a store regardless of whether it already
// holds the document. Used when retrying writes against the fallback,
// which starts empty at the moment of failover.
func upsert(ctx context.Context, st profile.Store, p *profile.UserProfile) error {
	err := st.Update(ctx, p)
	if errors.Is(err, errors.ErrProfileNotFound) {
		return st.Create(ctx, p)
	}
	return err
}

// domainErr reports whether the error is an expected domain outcome rather
// than a backend fault. Domain outcomes never trigger failover.
func domainErr(err error) bool {
	return errors.Is(err, errors.ErrProfileNotFound) ||
		errors.Is(err, errors.ErrNotFound) ||
		errors.Is(err, errors.ErrAlreadyExists) ||
		errors.Is(err, errors.ErrInvalidInput)
}

// Create validates and persists a new profile. A user ID is generated when
// the caller does not supply one.
func (s *Service) Create(ctx context.Context, req profile.CreateRequest) (*profile.UserProfile, error) {
	if strings.TrimSpace(req.Basic.Name) == "" {
		return nil, &errors.ValidationError{Field: "basic_info.name", Message: "name is required"}
	}
	if strings.TrimSpace(req.Basic.Email) == "" {
		return nil, &errors.ValidationError{Field: "basic_info.email", Message: "email is required"}
	}
	if !strings.Contains(req.Basic.Email, "@") {
		return nil, &errors.ValidationError{Field: "basic_info.email", Message: "invalid email address", Value: req.Basic.Email}
	}

	userID := req.UserID
	if userID == "" {
		userID = uuid.NewString()
	}

	now := time.Now().UTC()
	p := &profile.UserProfile{
		UserID:       userID,
		Basic:        req.Basic,
		CreatedAt:    now,
		UpdatedAt:    now,
		LastActiveAt: now,
	}
	if req.Interests != nil {
		p.Interests = *req.Interests
	}
	if req.Accessibility != nil {
		p.Accessibility = *req.Accessibility
	}
	if req.Prefs != nil {
		p.Prefs = *req.Prefs
	}
	p.Normalize()

	st := s.store()
	err := st.Create(ctx, p)
	if err != nil && !domainErr(err) {
		st = s.failover("create", err)
		err = st.Create(ctx, p)
	}
	record(st, "create", err)
	if err != nil {
		return nil, err
	}

	metrics.ProfilesCreated.Inc()
	s.log.Infow("Profile created",
		"user_id", p.UserID,
		"complete", p.IsComplete(),
		"store", s.StoreName(),
	)
	return p.Clone(), nil
}

// Get fetches a profile by user ID.
func (s *Service) Get(ctx context.Context, userID string) (*profile.UserProfile, error) {
	if userID == "" {
		return nil, &errors.ValidationError{Field: "user_id", Message: "user id is required"}
	}

	st := s.store()
	p, err := st.Get(ctx, userID)
	if err != nil && !domainErr(err) {
		st = s.failover("get", err)
		p, err = st.Get(ctx, userID)
	}
	record(st, "get", err)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Update applies a partial section update to an existing profile.
func (s *Service) Update(ctx context.Context, userID string, req profile.UpdateRequest) (*profile.UserProfile, error) {
	if req.Empty() {
		return nil, &errors.ValidationError{Field: "body", Message: "no profile sections provided"}
	}

	p, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	req.Apply(p)
	p.Normalize()
	p.UpdatedAt = time.Now().UTC()

	st := s.store()
	if err := st.Update(ctx, p); err != nil {
		if domainErr(err) {
			record(st, "update", err)
			return nil, err
		}
		st = s.failover("update", err)
		if err = upsert(ctx, st, p); err != nil {
			record(st, "update", err)
			return nil, err
		}
	}
	record(st, "update", nil)

	metrics.ProfilesUpdated.Inc()
	return p.Clone(), nil
}

// Delete removes a profile. Deleting a missing profile succeeds and reports
// deleted=false.
func (s *Service) Delete(ctx context.Context, userID string) (bool, error) {
	if userID == "" {
		return false, &errors.ValidationError{Field: "user_id", Message: "user id is required"}
	}

	st := s.store()
	deleted, err := st.Delete(ctx, userID)
	if err != nil && !domainErr(err) {
		st = s.failover("delete", err)
		deleted, err = st.Delete(ctx, userID)
	}
	record(st, "delete", err)
	if err != nil {
		return false, err
	}

	if deleted {
		s.log.Infow("Profile deleted", "user_id", userID)
	}
	return deleted, nil
}

// List returns a page of profiles plus the total count. Limit is clamped to
// [1, MaxListLimit]; zero means the default page size.
func (s *Service) List(ctx context.Context, limit, offset int) ([]*profile.UserProfile, int, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	st := s.store()
	page, err := st.List(ctx, limit, offset)
	if err != nil && !domainErr(err) {
		st = s.failover("list", err)
		page, err = st.List(ctx, limit, offset)
	}
	record(st, "list", err)
	if err != nil {
		return nil, 0, err
	}

	total, err := st.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return page, total, nil
}

// Summary builds the condensed profile view.
func (s *Service) Summary(ctx context.Context, userID string) (*profile.Summary, error) {
	p, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	sum := profile.SummaryOf(p)
	return &sum, nil
}

// TouchLastActive bumps the activity timestamp and reports whether it was
// recorded. Failures are logged but not surfaced as errors; activity
// tracking must never break a chat turn.
func (s *Service) TouchLastActive(ctx context.Context, userID string) bool {
	p, err := s.Get(ctx, userID)
	if err != nil {
		return false
	}

	p.LastActiveAt = time.Now().UTC()
	if err := s.store().Update(ctx, p); err != nil {
		s.log.Warnw("Failed to record profile activity", "user_id", userID, "error", err)
		return false
	}
	return true
}

// SetOnboardingCompleted marks the profile as having finished onboarding.
func (s *Service) SetOnboardingCompleted(ctx context.Context, userID string) (*profile.UserProfile, error) {
	p, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	p.OnboardingCompleted = true
	p.UpdatedAt = time.Now().UTC()

	if err := s.store().Update(ctx, p); err != nil {
		if domainErr(err) {
			return nil, err
		}
		if err = upsert(ctx, s.failover("onboarding", err), p); err != nil {
			return nil, err
		}
	}
	return p.Clone(), nil
}

// UpdateLearnedPreferences merges facts the agents learned during a
// conversation into the profile's preference map.
func (s *Service) UpdateLearnedPreferences(ctx context.Context, userID string, learned map[string]string) error {
	if len(learned) == 0 {
		return nil
	}

	p, err := s.Get(ctx, userID)
	if err != nil {
		return err
	}

	if p.Prefs.LearnedPreferences == nil {
		p.Prefs.LearnedPreferences = make(map[string]string, len(learned))
	}
	for k, v := range learned {
		p.Prefs.LearnedPreferences[k] = v
	}
	p.UpdatedAt = time.Now().UTC()

	if err := s.store().Update(ctx, p); err != nil {
		if domainErr(err) {
			return err
		}
		if err = upsert(ctx, s.failover("learned_preferences", err), p); err != nil {
			return err
		}
	}
	return nil
}
