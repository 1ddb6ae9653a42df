package services

import (
	"testing"
	"time"

	"resonate_server/models"
)

var echoBase = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

// TestEchoStatusTransitions ensures status only moves forward in severity as
// time elapses.
func TestEchoStatusTransitions(t *testing.T) {
	es := &EchoService{}

	tcs := []struct {
		elapsed time.Duration
		want    string
	}{
		{0, models.EchoStatusActive},
		{3 * 24 * time.Hour, models.EchoStatusActive},
		{5*24*time.Hour + 23*time.Hour, models.EchoStatusActive},
		{6 * 24 * time.Hour, models.EchoStatusExpiring},
		{6*24*time.Hour + 23*time.Hour, models.EchoStatusExpiring},
		{7 * 24 * time.Hour, models.EchoStatusSilence},
		{100 * 24 * time.Hour, models.EchoStatusSilence},
	}
	for _, tc := range tcs {
		got := es.Status(echoBase, echoBase.Add(tc.elapsed))
		if got != tc.want {
			t.Fatalf("Status after %v = %q, want %q", tc.elapsed, got, tc.want)
		}
	}
}

// TestEchoStatusStable ensures the same inputs always classify the same way.
func TestEchoStatusStable(t *testing.T) {
	es := &EchoService{}
	now := echoBase.Add(6 * 24 * time.Hour)
	first := es.Status(echoBase, now)
	second := es.Status(echoBase, now)
	if first != second {
		t.Fatalf("Status not stable: %q then %q", first, second)
	}
}

// TestEchoStatusResetsOnRefresh ensures bumping lastRefreshedAt restores
// ACTIVE immediately.
func TestEchoStatusResetsOnRefresh(t *testing.T) {
	es := &EchoService{}
	now := echoBase.Add(10 * 24 * time.Hour)
	if got := es.Status(echoBase, now); got != models.EchoStatusSilence {
		t.Fatalf("Status before refresh = %q, want %q", got, models.EchoStatusSilence)
	}
	if got := es.Status(now, now); got != models.EchoStatusActive {
		t.Fatalf("Status after refresh = %q, want %q", got, models.EchoStatusActive)
	}
}

// TestDaysUntilExpiration ensures the countdown decreases by one per day and
// floors at zero.
func TestDaysUntilExpiration(t *testing.T) {
	es := &EchoService{}

	tcs := []struct {
		elapsed time.Duration
		want    int
	}{
		{0, 7},
		{24 * time.Hour, 6},
		{2 * 24 * time.Hour, 5},
		{6*24*time.Hour + 12*time.Hour, 1},
		{7 * 24 * time.Hour, 0},
		{9 * 24 * time.Hour, 0},
	}
	for _, tc := range tcs {
		got := es.DaysUntilExpiration(echoBase, echoBase.Add(tc.elapsed))
		if got != tc.want {
			t.Fatalf("DaysUntilExpiration after %v = %d, want %d", tc.elapsed, got, tc.want)
		}
	}
}

// TestIsDiscoverable ensures only silent profiles are filtered out.
func TestIsDiscoverable(t *testing.T) {
	es := &EchoService{}
	if !es.IsDiscoverable(echoBase, echoBase.Add(6*24*time.Hour+23*time.Hour)) {
		t.Fatal("expiring profile should still be discoverable")
	}
	if es.IsDiscoverable(echoBase, echoBase.Add(7*24*time.Hour)) {
		t.Fatal("silent profile should not be discoverable")
	}
}
