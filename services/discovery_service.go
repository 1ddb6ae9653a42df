package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"resonate_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
)

// DiscoveryFilters narrows the candidate feed.
type DiscoveryFilters struct {
	MinAge        int     `json:"minAge,omitempty"`
	MaxAge        int     `json:"maxAge,omitempty"`
	MaxDistanceKm float64 `json:"maxDistanceKm,omitempty"`
	VerifiedOnly  bool    `json:"verifiedOnly,omitempty"`
	Limit         int     `json:"limit,omitempty"`
}

// Candidate is one feed entry: the profile plus the derived display values.
type Candidate struct {
	models.Profile
	EchoStatus          string  `json:"echoStatus"`
	DaysUntilExpiration int     `json:"daysUntilExpiration"`
	DistanceKm          float64 `json:"distanceKm"`
}

// DiscoveryService builds the ordered candidate feed: silent profiles and
// already-swiped candidates are excluded, filters applied, distances derived
// from the seeker's own profile coordinates.
type DiscoveryService struct {
	Dynamo DynamoAPI
	Echo   *EchoService
	Clock  func() time.Time
}

func (ds *DiscoveryService) now() time.Time {
	if ds.Clock != nil {
		return ds.Clock()
	}
	return time.Now().UTC()
}

// Candidates returns the feed for userID, paged by filters.Limit.
func (ds *DiscoveryService) Candidates(ctx context.Context, userID string, filters DiscoveryFilters) ([]Candidate, error) {
	seeker, err := getProfile(ctx, ds.Dynamo, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch seeker profile: %w", err)
	}

	items, err := ds.Dynamo.ScanItems(ctx, models.ProfilesTable, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to scan profiles: %w", err)
	}

	var profiles []models.Profile
	if err := attributevalue.UnmarshalListOfMaps(items, &profiles); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profiles: %w", err)
	}

	now := ds.now()
	candidates := make([]Candidate, 0, len(profiles))
	for _, p := range profiles {
		if p.UserID == userID {
			continue
		}
		if !ds.Echo.IsDiscoverable(p.LastRefreshedAt, now) {
			continue
		}
		if filters.MinAge > 0 && p.Age < filters.MinAge {
			continue
		}
		if filters.MaxAge > 0 && p.Age > filters.MaxAge {
			continue
		}
		if filters.VerifiedOnly && !p.Verified {
			continue
		}

		distance := DistanceKm(seeker.Latitude, seeker.Longitude, p.Latitude, p.Longitude)
		if filters.MaxDistanceKm > 0 && distance > filters.MaxDistanceKm {
			continue
		}

		swiped, err := ds.alreadySwiped(ctx, userID, p.UserID)
		if err != nil {
			return nil, err
		}
		if swiped {
			continue
		}

		candidates = append(candidates, Candidate{
			Profile:             p,
			EchoStatus:          ds.Echo.Status(p.LastRefreshedAt, now),
			DaysUntilExpiration: ds.Echo.DaysUntilExpiration(p.LastRefreshedAt, now),
			DistanceKm:          distance,
		})
		if filters.Limit > 0 && len(candidates) >= filters.Limit {
			break
		}
	}
	return candidates, nil
}

// alreadySwiped reports whether userID has a recorded decision on targetID.
func (ds *DiscoveryService) alreadySwiped(ctx context.Context, userID, targetID string) (bool, error) {
	_, err := ds.Dynamo.GetItem(ctx, models.SwipesTable, swipeKey(targetID, userID))
	if errors.Is(err, ErrItemNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check swipe record: %w", err)
	}
	return true, nil
}
