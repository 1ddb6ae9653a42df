package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"resonate_server/models"
	"resonate_server/utils"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Blocked reasons reported in a SwipeOutcome.
const (
	BlockReasonDailyLimit = "daily_limit"
	BlockReasonSuperLimit = "super_limit"
)

// SwipeOutcome reports one processed swipe. A blocked outcome is a policy
// rejection, not an error: the cursor has not advanced and nothing was
// consumed, so the caller can surface an upgrade prompt with the next reset.
type SwipeOutcome struct {
	Blocked      bool          `json:"blocked"`
	BlockReason  string        `json:"blockReason,omitempty"`
	NextResetAt  *time.Time    `json:"nextResetAt,omitempty"`
	CandidateID  string        `json:"candidateId,omitempty"`
	CurrentIndex int           `json:"currentIndex"`
	Matched      bool          `json:"matched"`
	Match        *models.Match `json:"match,omitempty"`
}

// MatchPolicy decides whether an accepted swipe forms a match.
type MatchPolicy interface {
	Decide(ctx context.Context, actorID, targetID, action string) (bool, error)
}

// RandomMatchPolicy rolls a match with fixed per-action chances. Demo and
// test use only; production runs ReciprocityMatchPolicy.
type RandomMatchPolicy struct {
	Rand *rand.Rand
}

func (p *RandomMatchPolicy) Decide(_ context.Context, _, _, action string) (bool, error) {
	switch action {
	case models.SwipeActionLike:
		return p.Rand.Float64() < models.LikeMatchChance, nil
	case models.SwipeActionSuperLike:
		return p.Rand.Float64() < models.SuperLikeMatchChance, nil
	default:
		return false, nil
	}
}

// ReciprocityMatchPolicy forms a match only when the swiped-on user has
// already liked the actor, checked against the recorded swipe of
// counterparty-on-actor.
type ReciprocityMatchPolicy struct {
	Dynamo DynamoAPI
}

func (p *ReciprocityMatchPolicy) Decide(ctx context.Context, actorID, targetID, action string) (bool, error) {
	if action == models.SwipeActionNope {
		return false, nil
	}

	item, err := p.Dynamo.GetItem(ctx, models.SwipesTable, swipeKey(actorID, targetID))
	if errors.Is(err, ErrItemNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to look up reciprocal swipe: %w", err)
	}

	recorded := utils.ExtractString(item, "action")
	return recorded == models.SwipeActionLike || recorded == models.SwipeActionSuperLike, nil
}

// swipeKey keys the Swipes table: the swipe recorded by senderID on
// receiverID.
func swipeKey(receiverID, senderID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"receiverId": &types.AttributeValueMemberS{Value: receiverID},
		"senderId":   &types.AttributeValueMemberS{Value: senderID},
	}
}

// SwipeService processes swipe decisions against the per-user candidate
// queue: quota gating, cursor advancement, history, match formation.
type SwipeService struct {
	Dynamo  DynamoAPI
	Matches *MatchService
	Policy  MatchPolicy
	Clock   func() time.Time
}

func (ss *SwipeService) now() time.Time {
	if ss.Clock != nil {
		return ss.Clock()
	}
	return time.Now().UTC()
}

// applySwipe is the pure decision step: resets, quota gate, consumption,
// history append and cursor advance, all on a copied state. A blocked or
// queue-exhausted outcome leaves cursor and history untouched.
func applySwipe(state models.SwipeState, action string, premium bool, now time.Time) (models.SwipeState, SwipeOutcome) {
	state.Limits = ApplyResets(state.Limits, now)
	outcome := SwipeOutcome{CurrentIndex: state.CurrentIndex}

	if state.CurrentIndex >= len(state.Queue) {
		// Past the end of the queue: nothing to decide on.
		return state, outcome
	}

	if action == models.SwipeActionSuperLike {
		if !CanSuperLike(state.Limits, premium) {
			outcome.Blocked = true
			outcome.BlockReason = BlockReasonSuperLimit
			reset := state.Limits.WeeklyResetAt
			outcome.NextResetAt = &reset
			return state, outcome
		}
		state.Limits = ConsumeSuperLike(state.Limits)
	} else {
		if !CanSwipe(state.Limits, premium) {
			outcome.Blocked = true
			outcome.BlockReason = BlockReasonDailyLimit
			reset := state.Limits.DailyResetAt
			outcome.NextResetAt = &reset
			return state, outcome
		}
		state.Limits = ConsumeSwipe(state.Limits)
	}

	candidateID := state.Queue[state.CurrentIndex]
	state.History = appendHistory(state.History, models.SwipeHistoryEntry{
		CandidateID: candidateID,
		Action:      action,
		Timestamp:   now,
	})
	state.CurrentIndex++

	outcome.CandidateID = candidateID
	outcome.CurrentIndex = state.CurrentIndex
	return state, outcome
}

// appendHistory appends one entry, dropping the oldest past the cap.
func appendHistory(history []models.SwipeHistoryEntry, entry models.SwipeHistoryEntry) []models.SwipeHistoryEntry {
	history = append(history, entry)
	if len(history) > models.SwipeHistoryCap {
		history = history[len(history)-models.SwipeHistoryCap:]
	}
	return history
}

// applyRewind undoes the last swipe's cursor advance and history entry.
// Premium only; a rewind with no history or at the head of the queue is a
// rejected no-op. A match already formed from the undone swipe stays.
func applyRewind(state models.SwipeState, premium bool) (models.SwipeState, bool) {
	if !premium || len(state.History) == 0 || state.CurrentIndex == 0 {
		return state, false
	}
	state.CurrentIndex--
	state.History = state.History[:len(state.History)-1]
	return state, true
}

// Swipe processes one swipe action for userID. Side effects (quota spend,
// history, swipe record, match creation) are computed first and persisted
// afterward; a blocked outcome persists only rolled-forward resets.
func (ss *SwipeService) Swipe(ctx context.Context, userID, action string) (*SwipeOutcome, error) {
	switch action {
	case models.SwipeActionLike, models.SwipeActionNope, models.SwipeActionSuperLike:
	default:
		return nil, fmt.Errorf("invalid swipe action %q", action)
	}

	now := ss.now()
	profile, err := getProfile(ctx, ss.Dynamo, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile for %s: %w", userID, err)
	}

	state, err := loadSwipeState(ctx, ss.Dynamo, userID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to load swipe state for %s: %w", userID, err)
	}

	newState, outcome := applySwipe(state, action, profile.Premium, now)

	if !outcome.Blocked && outcome.CandidateID != "" {
		// Record the decision for reciprocity lookups before rolling the
		// match, so a simultaneous counterparty swipe can see it.
		swipe := models.Swipe{
			ReceiverID: outcome.CandidateID,
			SenderID:   userID,
			Action:     action,
			CreatedAt:  now,
		}
		if err := ss.Dynamo.PutItem(ctx, models.SwipesTable, swipe); err != nil {
			return nil, fmt.Errorf("failed to record swipe: %w", err)
		}

		matched, err := ss.Policy.Decide(ctx, userID, outcome.CandidateID, action)
		if err != nil {
			return nil, fmt.Errorf("match decision failed: %w", err)
		}
		if matched {
			match, err := ss.Matches.CreateMatch(ctx, userID, outcome.CandidateID, action == models.SwipeActionSuperLike)
			if err != nil {
				return nil, fmt.Errorf("failed to create match: %w", err)
			}
			outcome.Matched = true
			outcome.Match = match
			log.Printf("Match %s formed between %s and %s", match.MatchID, userID, outcome.CandidateID)
		}
	}

	if err := ss.Dynamo.PutItem(ctx, models.SwipeStatesTable, newState); err != nil {
		return nil, fmt.Errorf("failed to persist swipe state for %s: %w", userID, err)
	}
	return &outcome, nil
}

// Rewind undoes the last swipe for a premium user. The rejection is a result,
// not an error.
func (ss *SwipeService) Rewind(ctx context.Context, userID string) (rewound bool, undone *models.SwipeHistoryEntry, err error) {
	profile, err := getProfile(ctx, ss.Dynamo, userID)
	if err != nil {
		return false, nil, fmt.Errorf("failed to fetch profile for %s: %w", userID, err)
	}

	state, err := loadSwipeState(ctx, ss.Dynamo, userID, ss.now())
	if err != nil {
		return false, nil, fmt.Errorf("failed to load swipe state for %s: %w", userID, err)
	}

	last := len(state.History) - 1
	newState, ok := applyRewind(state, profile.Premium)
	if !ok {
		return false, nil, nil
	}

	entry := state.History[last]
	if err := ss.Dynamo.PutItem(ctx, models.SwipeStatesTable, newState); err != nil {
		return false, nil, fmt.Errorf("failed to persist swipe state for %s: %w", userID, err)
	}
	return true, &entry, nil
}

// SetQueue replaces the user's candidate queue and resets the cursor. The
// rewind history is cleared with it: entries refer to queue positions.
func (ss *SwipeService) SetQueue(ctx context.Context, userID string, candidateIDs []string) (models.SwipeState, error) {
	now := ss.now()
	state, err := loadSwipeState(ctx, ss.Dynamo, userID, now)
	if err != nil {
		return models.SwipeState{}, fmt.Errorf("failed to load swipe state for %s: %w", userID, err)
	}

	state.Queue = candidateIDs
	state.CurrentIndex = 0
	state.History = nil
	if err := ss.Dynamo.PutItem(ctx, models.SwipeStatesTable, state); err != nil {
		return models.SwipeState{}, fmt.Errorf("failed to persist swipe state for %s: %w", userID, err)
	}
	return state, nil
}

// getProfile fetches a user profile by id.
func getProfile(ctx context.Context, dynamo DynamoAPI, userID string) (models.Profile, error) {
	item, err := dynamo.GetItem(ctx, models.ProfilesTable, stringKey("userId", userID))
	if err != nil {
		return models.Profile{}, err
	}
	var profile models.Profile
	if err := unmarshalItem(item, &profile); err != nil {
		return models.Profile{}, fmt.Errorf("failed to unmarshal profile: %w", err)
	}
	return profile, nil
}
