package profile

import (
	"context"
)

// Store defines the persistence interface for user profiles.
// Implementations live in internal/repository/firestore and
// internal/repository/memory.
type Store interface {
	Create(ctx context.Context, p *UserProfile) error
	Get(ctx context.Context, userID string) (*UserProfile, error)
	Update(ctx context.Context, p *UserProfile) error
	// Delete removes a profile. Deleting a missing profile is not an
	// error; the bool reports whether anything was removed.
	Delete(ctx context.Context, userID string) (bool, error)
	// List returns profiles ordered by creation time (user ID as a
	// tie-break) within the [offset, offset+limit) window.
	List(ctx context.Context, limit, offset int) ([]*UserProfile, error)
	Count(ctx context.Context) (int, error)
	Name() string
}
