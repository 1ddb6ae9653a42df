package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"resonate_server/models"
	"resonate_server/utils"

	"github.com/google/uuid"
)

// NewMatch builds a fresh match between two users. The expiry is fixed here
// and never mutated afterward; whether the match has expired is always a
// wall-clock comparison against it.
func NewMatch(userID, counterpartyID string, isSuperLike bool, now time.Time) models.Match {
	return models.Match{
		MatchID:     uuid.NewString(),
		Users:       []string{userID, counterpartyID},
		Status:      models.MatchStatusMatched,
		IsSuperLike: isSuperLike,
		CreatedAt:   now,
		ExpiresAt:   now.Add(models.MatchTTL),
	}
}

// IsExpired reports whether the match has run out. Resonance overrides
// expiry permanently.
func IsExpired(m models.Match, now time.Time) bool {
	return m.Status != models.MatchStatusResonance && !now.Before(m.ExpiresAt)
}

// ClassifyMatch buckets a match for display. Read-only projection, never a
// stored field.
func ClassifyMatch(m models.Match, now time.Time) string {
	switch {
	case m.Status == models.MatchStatusResonance:
		return models.MatchViewResonance
	case IsExpired(m, now):
		return models.MatchViewExpired
	default:
		return models.MatchViewActive
	}
}

// MatchService owns the match collection: creation, the 48-hour countdown,
// resonance promotion, and per-user listings.
type MatchService struct {
	Dynamo DynamoAPI
	Clock  func() time.Time
}

func (ms *MatchService) now() time.Time {
	if ms.Clock != nil {
		return ms.Clock()
	}
	return time.Now().UTC()
}

// CreateMatch stores a new match and links it into both users' profiles.
func (ms *MatchService) CreateMatch(ctx context.Context, userID, counterpartyID string, isSuperLike bool) (*models.Match, error) {
	match := NewMatch(userID, counterpartyID, isSuperLike, ms.now())

	if err := ms.Dynamo.PutItem(ctx, models.MatchesTable, match); err != nil {
		return nil, fmt.Errorf("failed to store match: %w", err)
	}
	for _, uid := range match.Users {
		if err := ms.linkMatch(ctx, uid, match.MatchID); err != nil {
			return nil, fmt.Errorf("failed to link match for %s: %w", uid, err)
		}
	}
	return &match, nil
}

// linkMatch appends a match id to a user's profile list.
func (ms *MatchService) linkMatch(ctx context.Context, userID, matchID string) error {
	profile, err := getProfile(ctx, ms.Dynamo, userID)
	if err != nil {
		return err
	}
	profile.MatchIDs = append(profile.MatchIDs, matchID)
	return ms.Dynamo.PutItem(ctx, models.ProfilesTable, profile)
}

// GetMatch fetches a match by id.
func (ms *MatchService) GetMatch(ctx context.Context, matchID string) (models.Match, error) {
	item, err := ms.Dynamo.GetItem(ctx, models.MatchesTable, stringKey("matchId", matchID))
	if err != nil {
		return models.Match{}, fmt.Errorf("failed to fetch match %s: %w", matchID, err)
	}
	var match models.Match
	if err := unmarshalItem(item, &match); err != nil {
		return models.Match{}, fmt.Errorf("failed to unmarshal match: %w", err)
	}
	return match, nil
}

// PromoteToResonance makes a match permanent. Idempotent: promoting an
// already-resonant match returns it unchanged.
func (ms *MatchService) PromoteToResonance(ctx context.Context, matchID string) (models.Match, error) {
	match, err := ms.GetMatch(ctx, matchID)
	if err != nil {
		return models.Match{}, err
	}
	if match.Status == models.MatchStatusResonance {
		return match, nil
	}

	match.Status = models.MatchStatusResonance
	if err := ms.Dynamo.PutItem(ctx, models.MatchesTable, match); err != nil {
		return models.Match{}, fmt.Errorf("failed to persist resonance for match %s: %w", matchID, err)
	}
	log.Printf("Match %s promoted to resonance", matchID)
	return match, nil
}

// TouchLastMessage records chat activity on a match.
func (ms *MatchService) TouchLastMessage(ctx context.Context, matchID string) error {
	match, err := ms.GetMatch(ctx, matchID)
	if err != nil {
		return err
	}
	now := ms.now()
	match.LastMessageAt = &now
	if err := ms.Dynamo.PutItem(ctx, models.MatchesTable, match); err != nil {
		return fmt.Errorf("failed to persist lastMessageAt for match %s: %w", matchID, err)
	}
	return nil
}

// MatchSummary is one match enriched with counterparty display details.
type MatchSummary struct {
	models.Match
	CounterpartyID    string `json:"counterpartyId"`
	CounterpartyName  string `json:"counterpartyName,omitempty"`
	CounterpartyPhoto string `json:"counterpartyPhoto,omitempty"`
	View              string `json:"view"`
}

// ListMatches returns the user's matches partitioned into active, resonance
// and expired views. Expired matches are kept, not deleted.
func (ms *MatchService) ListMatches(ctx context.Context, userID string) (map[string][]MatchSummary, error) {
	profile, err := getProfile(ctx, ms.Dynamo, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile for %s: %w", userID, err)
	}

	now := ms.now()
	views := map[string][]MatchSummary{
		models.MatchViewActive:    {},
		models.MatchViewResonance: {},
		models.MatchViewExpired:   {},
	}

	for _, matchID := range profile.MatchIDs {
		match, err := ms.GetMatch(ctx, matchID)
		if err != nil {
			log.Printf("Skipping match %s for %s: %v", matchID, userID, err)
			continue
		}

		summary := MatchSummary{
			Match:          match,
			CounterpartyID: match.Counterparty(userID),
			View:           ClassifyMatch(match, now),
		}

		// Enrich with the counterparty's display details; a missing
		// counterparty profile still lists the match.
		if item, err := ms.Dynamo.GetItem(ctx, models.ProfilesTable, stringKey("userId", summary.CounterpartyID)); err == nil {
			summary.CounterpartyName = utils.ExtractString(item, "name")
			summary.CounterpartyPhoto = utils.ExtractString(item, "photoKey")
		}

		views[summary.View] = append(views[summary.View], summary)
	}
	return views, nil
}
