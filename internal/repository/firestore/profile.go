package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"voyager/internal/domain/profile"
	"voyager/pkg/errors"
)

// Compile-time check that we implement the interface
var _ profile.Store = (*ProfileStore)(nil)

// ProfileStore implements profile.Store on top of a Firestore collection.
// Documents are keyed by user ID.
type ProfileStore struct {
	client     *firestore.Client
	collection string
}

// NewProfileStore creates a Firestore-backed profile store.
func NewProfileStore(client *firestore.Client, collection string) *ProfileStore {
	if collection == "" {
		collection = "user_profiles"
	}
	return &ProfileStore{client: client, collection: collection}
}

func (s *ProfileStore) Name() string { return "firestore" }

func (s *ProfileStore) doc(userID string) *firestore.DocumentRef {
	return s.client.Collection(s.collection).Doc(userID)
}

// Create writes a new profile document, failing when one already exists.
func (s *ProfileStore) Create(ctx context.Context, p *profile.UserProfile) error {
	_, err := s.doc(p.UserID).Create(ctx, p)
	if status.Code(err) == codes.AlreadyExists {
		return errors.Wrapf(errors.ErrAlreadyExists, "profile %s", p.UserID)
	}
	if err != nil {
		return errors.Wrap(err, "firestore create profile")
	}
	return nil
}

// Get fetches a profile document by user ID.
func (s *ProfileStore) Get(ctx context.Context, userID string) (*profile.UserProfile, error) {
	snap, err := s.doc(userID).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, errors.Wrapf(errors.ErrProfileNotFound, "profile %s", userID)
	}
	if err != nil {
		return nil, errors.Wrap(err, "firestore get profile")
	}

	var p profile.UserProfile
	if err := snap.DataTo(&p); err != nil {
		return nil, errors.Wrap(err, "firestore decode profile")
	}
	return &p, nil
}

// Update overwrites an existing profile document.
func (s *ProfileStore) Update(ctx context.Context, p *profile.UserProfile) error {
	// Existence check first: Set would silently create the document.
	if _, err := s.Get(ctx, p.UserID); err != nil {
		return err
	}

	if _, err := s.doc(p.UserID).Set(ctx, p); err != nil {
		return errors.Wrap(err, "firestore update profile")
	}
	return nil
}

// Delete removes a profile document and reports whether it existed.
func (s *ProfileStore) Delete(ctx context.Context, userID string) (bool, error) {
	_, err := s.doc(userID).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrap(err, "firestore check profile")
	}

	if _, err := s.doc(userID).Delete(ctx); err != nil {
		return false, errors.Wrap(err, "firestore delete profile")
	}
	return true, nil
}

// List pages through profiles ordered by creation time, then document ID.
func (s *ProfileStore) List(ctx context.Context, limit, offset int) ([]*profile.UserProfile, error) {
	query := s.client.Collection(s.collection).
		OrderBy("created_at", firestore.Asc).
		OrderBy(firestore.DocumentID, firestore.Asc).
		Offset(offset).
		Limit(limit)

	iter := query.Documents(ctx)
	defer iter.Stop()

	profiles := make([]*profile.UserProfile, 0, limit)
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "firestore list profiles")
		}

		var p profile.UserProfile
		if err := snap.DataTo(&p); err != nil {
			return nil, errors.Wrap(err, "firestore decode profile")
		}
		profiles = append(profiles, &p)
	}
	return profiles, nil
}

// Count returns the total number of profile documents.
func (s *ProfileStore) Count(ctx context.Context) (int, error) {
	docs, err := s.client.Collection(s.collection).Select().Documents(ctx).GetAll()
	if err != nil {
		return 0, errors.Wrap(err, "firestore count profiles")
	}
	return len(docs), nil
}
