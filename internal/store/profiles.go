package store

import (
	"context"

	"github.com/sadopc/mindease/internal/profile"
)

const profileCollection = "profile"

// LoadProfile reports false when no profile was saved.
func (s *Store) LoadProfile(ctx context.Context, userID string) (profile.Profile, bool, error) {
	var p profile.Profile
	ok, err := s.getJSON(ctx, userID, profileCollection, mainDoc, &p)
	return p, ok, err
}

func (s *Store) SaveProfile(ctx context.Context, userID string, p profile.Profile) error {
	return s.PutDocument(ctx, userID, profileCollection, mainDoc, p)
}
