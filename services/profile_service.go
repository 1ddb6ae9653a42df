package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"resonate_server/models"
)

// ProfileService handles user profile storage. The engine itself never
// mutates profiles except through the photo refresh; this service exists for
// the surrounding application's create/read surface.
type ProfileService struct {
	Dynamo DynamoAPI
	Clock  func() time.Time
}

func (ps *ProfileService) now() time.Time {
	if ps.Clock != nil {
		return ps.Clock()
	}
	return time.Now().UTC()
}

// UpsertProfile stores a profile. A brand-new profile starts its echo clock
// now; an existing profile keeps its refresh timestamp and match links.
func (ps *ProfileService) UpsertProfile(ctx context.Context, profile models.Profile) (models.Profile, error) {
	if profile.UserID == "" {
		return models.Profile{}, errors.New("userId is required")
	}

	existing, err := getProfile(ctx, ps.Dynamo, profile.UserID)
	switch {
	case errors.Is(err, ErrItemNotFound):
		profile.LastRefreshedAt = ps.now()
	case err != nil:
		return models.Profile{}, fmt.Errorf("failed to fetch profile for %s: %w", profile.UserID, err)
	default:
		profile.LastRefreshedAt = existing.LastRefreshedAt
		profile.MatchIDs = existing.MatchIDs
	}

	if err := ps.Dynamo.PutItem(ctx, models.ProfilesTable, profile); err != nil {
		return models.Profile{}, fmt.Errorf("failed to store profile for %s: %w", profile.UserID, err)
	}
	return profile, nil
}

// GetProfile fetches a profile by id.
func (ps *ProfileService) GetProfile(ctx context.Context, userID string) (models.Profile, error) {
	return getProfile(ctx, ps.Dynamo, userID)
}
