package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"resonate_server/models"
)

// NewSwipeLimits returns the free-tier quota state anchored at now. Premium
// accounts bypass the counters entirely, so everyone stores the same shape.
func NewSwipeLimits(now time.Time) models.SwipeLimits {
	return models.SwipeLimits{
		DailyQuota:       models.FreeDailySwipeQuota,
		WeeklySuperQuota: models.FreeWeeklySuperQuota,
		DailyResetAt:     NextMidnight(now),
		WeeklyResetAt:    NextMonday(now),
	}
}

// NextMidnight returns the first midnight strictly after now, in now's
// location.
func NextMidnight(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
}

// NextMonday returns the first Monday 00:00 strictly after now, in now's
// location.
func NextMonday(now time.Time) time.Time {
	y, m, d := now.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	days := (int(time.Monday) - int(now.Weekday()) + 7) % 7
	if days == 0 {
		days = 7
	}
	return midnight.AddDate(0, 0, days)
}

// ApplyResets rolls the counters forward across any reset boundary that has
// passed. The daily and weekly resets are independent; both are checked on
// every quota query because the process may stay resident across a boundary.
// Idempotent for a fixed now.
func ApplyResets(limits models.SwipeLimits, now time.Time) models.SwipeLimits {
	if !now.Before(limits.DailyResetAt) {
		limits.SwipesUsed = 0
		limits.DailyResetAt = NextMidnight(now)
	}
	if !now.Before(limits.WeeklyResetAt) {
		limits.SuperUsed = 0
		limits.WeeklyResetAt = NextMonday(now)
	}
	return limits
}

// CanSwipe reports whether a regular swipe is allowed. Callers must have
// applied resets first.
func CanSwipe(limits models.SwipeLimits, unlimited bool) bool {
	return unlimited || limits.SwipesUsed < limits.DailyQuota
}

// CanSuperLike reports whether a super like is allowed. The free tier's
// weekly quota is zero, so without the unlimited entitlement this is false.
func CanSuperLike(limits models.SwipeLimits, unlimitedSuper bool) bool {
	return unlimitedSuper || limits.SuperUsed < limits.WeeklySuperQuota
}

// ConsumeSwipe spends one daily swipe. The caller must have verified CanSwipe.
func ConsumeSwipe(limits models.SwipeLimits) models.SwipeLimits {
	limits.SwipesUsed++
	return limits
}

// ConsumeSuperLike spends one weekly super like.
func ConsumeSuperLike(limits models.SwipeLimits) models.SwipeLimits {
	limits.SuperUsed++
	return limits
}

// LimitService reads and rolls forward a user's persisted quota state, for
// the limits surface shown alongside upgrade prompts.
type LimitService struct {
	Dynamo DynamoAPI
	Clock  func() time.Time
}

func (ls *LimitService) now() time.Time {
	if ls.Clock != nil {
		return ls.Clock()
	}
	return time.Now().UTC()
}

// GetLimits returns the user's current quota state with resets applied,
// persisting the rolled-forward state when a boundary has passed.
func (ls *LimitService) GetLimits(ctx context.Context, userID string) (models.SwipeLimits, error) {
	now := ls.now()
	state, err := loadSwipeState(ctx, ls.Dynamo, userID, now)
	if err != nil {
		return models.SwipeLimits{}, fmt.Errorf("failed to load swipe state for %s: %w", userID, err)
	}

	updated := ApplyResets(state.Limits, now)
	if updated != state.Limits {
		state.Limits = updated
		if err := ls.Dynamo.PutItem(ctx, models.SwipeStatesTable, state); err != nil {
			return models.SwipeLimits{}, fmt.Errorf("failed to persist reset limits for %s: %w", userID, err)
		}
	}
	return updated, nil
}

// loadSwipeState fetches the per-user session document, creating the initial
// state on first use.
func loadSwipeState(ctx context.Context, dynamo DynamoAPI, userID string, now time.Time) (models.SwipeState, error) {
	item, err := dynamo.GetItem(ctx, models.SwipeStatesTable, stringKey("userId", userID))
	if errors.Is(err, ErrItemNotFound) {
		return models.SwipeState{UserID: userID, Limits: NewSwipeLimits(now)}, nil
	}
	if err != nil {
		return models.SwipeState{}, err
	}

	var state models.SwipeState
	if err := unmarshalItem(item, &state); err != nil {
		return models.SwipeState{}, fmt.Errorf("failed to unmarshal swipe state: %w", err)
	}
	return state, nil
}
