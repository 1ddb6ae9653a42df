package services

import (
	"context"
	"testing"
	"time"

	"resonate_server/models"
)

// 2025-06-02 is a Monday.
var limitMonday = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

// TestNextMidnight ensures the boundary is strictly after now.
func TestNextMidnight(t *testing.T) {
	afternoon := limitMonday.Add(15 * time.Hour)
	want := limitMonday.AddDate(0, 0, 1)
	if got := NextMidnight(afternoon); !got.Equal(want) {
		t.Fatalf("NextMidnight(%v) = %v, want %v", afternoon, got, want)
	}
	// Exactly at midnight the next boundary is tomorrow, not now.
	if got := NextMidnight(limitMonday); !got.Equal(want) {
		t.Fatalf("NextMidnight(midnight) = %v, want %v", got, want)
	}
}

// TestNextMonday ensures the boundary is the next Monday 00:00 strictly
// after now.
func TestNextMonday(t *testing.T) {
	nextWeek := limitMonday.AddDate(0, 0, 7)

	if got := NextMonday(limitMonday); !got.Equal(nextWeek) {
		t.Fatalf("NextMonday(Monday 00:00) = %v, want %v", got, nextWeek)
	}
	if got := NextMonday(limitMonday.Add(10 * time.Hour)); !got.Equal(nextWeek) {
		t.Fatalf("NextMonday(Monday morning) = %v, want %v", got, nextWeek)
	}
	sunday := limitMonday.AddDate(0, 0, 6).Add(10 * time.Hour)
	if got := NextMonday(sunday); !got.Equal(nextWeek) {
		t.Fatalf("NextMonday(Sunday) = %v, want %v", got, nextWeek)
	}
}

// TestCanSwipeQuota ensures the daily quota gates non-premium accounts only.
func TestCanSwipeQuota(t *testing.T) {
	limits := NewSwipeLimits(limitMonday)
	limits.SwipesUsed = limits.DailyQuota

	if CanSwipe(limits, false) {
		t.Fatal("CanSwipe should be false at quota")
	}
	if !CanSwipe(limits, true) {
		t.Fatal("CanSwipe should be true for unlimited accounts")
	}
}

// TestCanSuperLikeFreeTier ensures free accounts can never super like: the
// weekly quota is zero by policy.
func TestCanSuperLikeFreeTier(t *testing.T) {
	limits := NewSwipeLimits(limitMonday)
	if CanSuperLike(limits, false) {
		t.Fatal("CanSuperLike should be false on the free tier")
	}
	if !CanSuperLike(limits, true) {
		t.Fatal("CanSuperLike should be true for unlimited-super accounts")
	}
}

// TestQuotaInvariant ensures gated consumption never exceeds the quota.
func TestQuotaInvariant(t *testing.T) {
	limits := NewSwipeLimits(limitMonday)
	for i := 0; i < limits.DailyQuota*2; i++ {
		if !CanSwipe(limits, false) {
			break
		}
		limits = ConsumeSwipe(limits)
		if limits.SwipesUsed > limits.DailyQuota {
			t.Fatalf("swipesUsed %d exceeded quota %d", limits.SwipesUsed, limits.DailyQuota)
		}
	}
	if limits.SwipesUsed != limits.DailyQuota {
		t.Fatalf("swipesUsed = %d, want %d", limits.SwipesUsed, limits.DailyQuota)
	}
}

// TestApplyResetsDaily ensures crossing the daily boundary zeroes the counter
// and rolls the boundary forward. End-to-end scenario: a maxed-out free
// account can swipe again after midnight.
func TestApplyResetsDaily(t *testing.T) {
	limits := NewSwipeLimits(limitMonday.Add(15 * time.Hour))
	limits.SwipesUsed = limits.DailyQuota

	if CanSwipe(limits, false) {
		t.Fatal("CanSwipe should be false before the reset")
	}

	nextDay := limitMonday.AddDate(0, 0, 1).Add(8 * time.Hour)
	reset := ApplyResets(limits, nextDay)
	if reset.SwipesUsed != 0 {
		t.Fatalf("swipesUsed after reset = %d, want 0", reset.SwipesUsed)
	}
	if !CanSwipe(reset, false) {
		t.Fatal("CanSwipe should be true after the reset")
	}
	want := limitMonday.AddDate(0, 0, 2)
	if !reset.DailyResetAt.Equal(want) {
		t.Fatalf("dailyResetAt = %v, want %v", reset.DailyResetAt, want)
	}
}

// TestApplyResetsWeekly ensures the weekly boundary is independent of the
// daily one.
func TestApplyResetsWeekly(t *testing.T) {
	limits := NewSwipeLimits(limitMonday.Add(15 * time.Hour))
	limits.SuperUsed = 3
	limits.SwipesUsed = 5

	nextMonday := limitMonday.AddDate(0, 0, 7).Add(time.Hour)
	reset := ApplyResets(limits, nextMonday)
	if reset.SuperUsed != 0 {
		t.Fatalf("superUsed after weekly reset = %d, want 0", reset.SuperUsed)
	}
	if reset.SwipesUsed != 0 {
		t.Fatal("daily counter should also reset, its boundary passed too")
	}
	want := limitMonday.AddDate(0, 0, 14)
	if !reset.WeeklyResetAt.Equal(want) {
		t.Fatalf("weeklyResetAt = %v, want %v", reset.WeeklyResetAt, want)
	}
}

// TestApplyResetsIdempotent ensures a second application at the same now is a
// no-op.
func TestApplyResetsIdempotent(t *testing.T) {
	limits := NewSwipeLimits(limitMonday)
	limits.SwipesUsed = 9

	now := limitMonday.AddDate(0, 0, 3).Add(4 * time.Hour)
	once := ApplyResets(limits, now)
	twice := ApplyResets(once, now)
	if once != twice {
		t.Fatalf("ApplyResets not idempotent: %+v vs %+v", once, twice)
	}
}

// TestGetLimitsPersistsRolledForwardState ensures the limits surface applies
// and stores resets.
func TestGetLimitsPersistsRolledForwardState(t *testing.T) {
	fake := newFakeDynamo()
	start := limitMonday.Add(10 * time.Hour)

	state := models.SwipeState{UserID: "alice", Limits: NewSwipeLimits(start)}
	state.Limits.SwipesUsed = 20
	if err := fake.PutItem(context.Background(), models.SwipeStatesTable, state); err != nil {
		t.Fatalf("seed state: %v", err)
	}

	later := limitMonday.AddDate(0, 0, 1).Add(9 * time.Hour)
	ls := &LimitService{Dynamo: fake, Clock: func() time.Time { return later }}

	limits, err := ls.GetLimits(context.Background(), "alice")
	if err != nil {
		t.Fatalf("GetLimits returned error: %v", err)
	}
	if limits.SwipesUsed != 0 {
		t.Fatalf("swipesUsed = %d, want 0 after reset", limits.SwipesUsed)
	}

	reloaded, err := loadSwipeState(context.Background(), fake, "alice", later)
	if err != nil {
		t.Fatalf("reload state: %v", err)
	}
	if reloaded.Limits.SwipesUsed != 0 {
		t.Fatal("reset state was not persisted")
	}
}
