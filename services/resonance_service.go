package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	"resonate_server/models"
)

// ErrCheckInSuperseded is returned when a newer check-in for the same match
// started while this one was in flight; its result must be discarded.
var ErrCheckInSuperseded = errors.New("check-in superseded")

// LocationProvider is the geolocation collaborator: permission state and the
// freshest known position for a user. Current fails when no fix newer than
// maxAge exists.
type LocationProvider interface {
	Permission(ctx context.Context, userID string) (string, error)
	Current(ctx context.Context, userID string, maxAge time.Duration) (models.LiveLocation, error)
}

// DistanceKm returns the haversine great-circle distance in kilometers,
// rounded to two decimals. The rounding stabilizes equality comparisons and
// display.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	const degToRad = math.Pi / 180
	dLat := (lat2 - lat1) * degToRad
	dLon := (lon2 - lon1) * degToRad

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*degToRad)*math.Cos(lat2*degToRad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	d := 2 * models.EarthRadiusKm * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return math.Round(d*100) / 100
}

// CheckInResult is the terminal state of one check-in attempt.
type CheckInResult struct {
	MatchID    string        `json:"matchId"`
	Outcome    string        `json:"outcome"`
	DistanceKm float64       `json:"distanceKm,omitempty"`
	Match      *models.Match `json:"match,omitempty"`
}

// ResonanceService runs the check-in state machine: idle → checking →
// success | too_far, re-enterable from any terminal state. In-flight
// attempts are keyed by matchId so a superseded attempt's result is
// discarded instead of landing on the wrong attempt.
type ResonanceService struct {
	Matches   *MatchService
	Locations LocationProvider

	mu       sync.Mutex
	attempts map[string]uint64
	states   map[string]string
	nextID   uint64
}

// State returns the current check-in state for a match.
func (rs *ResonanceService) State(matchID string) string {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	if s, ok := rs.states[matchID]; ok {
		return s
	}
	return models.CheckInStateIdle
}

// beginAttempt moves the match to checking and returns the attempt token.
func (rs *ResonanceService) beginAttempt(matchID string) uint64 {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	if rs.attempts == nil {
		rs.attempts = make(map[string]uint64)
		rs.states = make(map[string]string)
	}
	rs.nextID++
	rs.attempts[matchID] = rs.nextID
	rs.states[matchID] = models.CheckInStateChecking
	return rs.nextID
}

// settle records the terminal state for an attempt, unless a newer attempt
// has taken over the match.
func (rs *ResonanceService) settle(matchID string, attempt uint64, state string) bool {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	if rs.attempts[matchID] != attempt {
		return false
	}
	rs.states[matchID] = state
	return true
}

// PerformCheckIn attempts to promote a match to resonance by comparing both
// parties' live positions. Unavailable locations and denied permissions are
// terminal outcomes, never errors; the machine never stays in checking.
func (rs *ResonanceService) PerformCheckIn(ctx context.Context, matchID, userID string) (*CheckInResult, error) {
	match, err := rs.Matches.GetMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if !match.Involves(userID) {
		return nil, fmt.Errorf("user %s is not part of match %s", userID, matchID)
	}

	attempt := rs.beginAttempt(matchID)

	// A denied permission short-circuits before any location fetch.
	permCtx, cancelPerm := context.WithTimeout(ctx, models.PermissionFetchTimeout)
	perm, err := rs.Locations.Permission(permCtx, userID)
	cancelPerm()
	if err != nil || perm == models.PermissionDenied {
		return rs.unavailable(matchID, attempt)
	}

	fetchCtx, cancelFetch := context.WithTimeout(ctx, models.CheckInFetchTimeout)
	self, err := rs.Locations.Current(fetchCtx, userID, models.CheckInFetchTimeout)
	cancelFetch()
	if err != nil {
		return rs.unavailable(matchID, attempt)
	}

	counterparty, err := rs.Locations.Current(ctx, match.Counterparty(userID), models.LocationMaxAge)
	if err != nil {
		return rs.unavailable(matchID, attempt)
	}

	distance := DistanceKm(self.Latitude, self.Longitude, counterparty.Latitude, counterparty.Longitude)
	result := &CheckInResult{MatchID: matchID, DistanceKm: distance}

	if distance <= models.ResonanceRangeKm {
		if !rs.settle(matchID, attempt, models.CheckInStateSuccess) {
			return nil, ErrCheckInSuperseded
		}
		promoted, err := rs.Matches.PromoteToResonance(ctx, matchID)
		if err != nil {
			return nil, err
		}
		result.Outcome = models.CheckInOutcomeSuccess
		result.Match = &promoted
		log.Printf("Check-in success for match %s at %.2f km", matchID, distance)
		return result, nil
	}

	if !rs.settle(matchID, attempt, models.CheckInStateTooFar) {
		return nil, ErrCheckInSuperseded
	}
	result.Outcome = models.CheckInOutcomeTooFar
	return result, nil
}

func (rs *ResonanceService) unavailable(matchID string, attempt uint64) (*CheckInResult, error) {
	if !rs.settle(matchID, attempt, models.CheckInStateIdle) {
		return nil, ErrCheckInSuperseded
	}
	return &CheckInResult{MatchID: matchID, Outcome: models.CheckInOutcomeUnavailable}, nil
}
