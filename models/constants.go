package models

import "time"

// Swipe actions
const (
	SwipeActionLike      = "like"
	SwipeActionNope      = "nope"
	SwipeActionSuperLike = "superlike"
)

// Match statuses
const (
	MatchStatusMatched   = "matched"
	MatchStatusExpired   = "expired"
	MatchStatusResonance = "resonance"
)

// Match view buckets (derived, never stored)
const (
	MatchViewActive    = "active"
	MatchViewExpired   = "expired"
	MatchViewResonance = "resonance"
)

// Echo statuses
const (
	EchoStatusActive   = "active"
	EchoStatusExpiring = "expiring"
	EchoStatusSilence  = "silence"
)

// Echo decay window: a profile stays discoverable for EchoActiveDays after
// its last photo refresh and starts warning EchoWarningDays before the end.
const (
	EchoActiveDays  = 7
	EchoWarningDays = 1
)

// Quotas. Free accounts get a daily swipe allowance and no super likes at
// all; the zero weekly quota is product policy, not a placeholder.
const (
	FreeDailySwipeQuota  = 20
	FreeWeeklySuperQuota = 0
)

// SwipeHistoryCap bounds the rewind history ring buffer.
const SwipeHistoryCap = 100

// MatchTTL is how long a match stays actionable before it expires,
// unless promoted to resonance first.
const MatchTTL = 48 * time.Hour

// Match chances used by the random (demo) match policy.
const (
	LikeMatchChance      = 0.30
	SuperLikeMatchChance = 0.60
)

// Resonance geometry
const (
	EarthRadiusKm    = 6371.0
	ResonanceRangeKm = 0.2
)

// Check-in states
const (
	CheckInStateIdle     = "idle"
	CheckInStateChecking = "checking"
	CheckInStateSuccess  = "success"
	CheckInStateTooFar   = "too_far"
)

// Check-in outcomes
const (
	CheckInOutcomeSuccess     = "success"
	CheckInOutcomeTooFar      = "too_far"
	CheckInOutcomeUnavailable = "unavailable"
)

// Geolocation permission states
const (
	PermissionPrompt  = "prompt"
	PermissionGranted = "granted"
	PermissionDenied  = "denied"
)

// Location freshness windows: a check-in needs a forced-fresh fix, while the
// counterparty side may be served from a short-lived cache.
const (
	CheckInFetchTimeout    = 5 * time.Second
	PermissionFetchTimeout = 10 * time.Second
	LocationMaxAge         = 60 * time.Second
)
