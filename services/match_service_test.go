package services

import (
	"context"
	"testing"
	"time"

	"resonate_server/models"
)

var matchNow = time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)

// TestNewMatchFields ensures the countdown is fixed at creation.
func TestNewMatchFields(t *testing.T) {
	m := NewMatch("alice", "bob", true, matchNow)
	if m.Status != models.MatchStatusMatched {
		t.Fatalf("status = %q, want %q", m.Status, models.MatchStatusMatched)
	}
	if !m.ExpiresAt.Equal(matchNow.Add(48 * time.Hour)) {
		t.Fatalf("expiresAt = %v, want createdAt+48h", m.ExpiresAt)
	}
	if !m.IsSuperLike {
		t.Fatal("isSuperLike not carried")
	}
	if m.Counterparty("alice") != "bob" || m.Counterparty("bob") != "alice" {
		t.Fatalf("counterparty lookup broken: %+v", m.Users)
	}
}

// TestIsExpiredBoundary checks the 48-hour window edges.
func TestIsExpiredBoundary(t *testing.T) {
	m := NewMatch("alice", "bob", false, matchNow)

	if IsExpired(m, matchNow.Add(47*time.Hour+59*time.Minute)) {
		t.Fatal("match expired before 48h")
	}
	if !IsExpired(m, matchNow.Add(48*time.Hour)) {
		t.Fatal("match not expired exactly at 48h")
	}
	if !IsExpired(m, matchNow.Add(48*time.Hour+time.Minute)) {
		t.Fatal("match not expired after 48h")
	}
}

// TestResonanceOverridesExpiry ensures a resonant match never expires.
func TestResonanceOverridesExpiry(t *testing.T) {
	m := NewMatch("alice", "bob", false, matchNow)
	m.Status = models.MatchStatusResonance

	if IsExpired(m, matchNow.Add(1000*time.Hour)) {
		t.Fatal("resonant match reported expired")
	}
	if got := ClassifyMatch(m, matchNow.Add(1000*time.Hour)); got != models.MatchViewResonance {
		t.Fatalf("ClassifyMatch = %q, want %q", got, models.MatchViewResonance)
	}
}

// TestClassifyMatch covers the three display buckets.
func TestClassifyMatch(t *testing.T) {
	m := NewMatch("alice", "bob", false, matchNow)

	if got := ClassifyMatch(m, matchNow.Add(time.Hour)); got != models.MatchViewActive {
		t.Fatalf("ClassifyMatch fresh = %q, want %q", got, models.MatchViewActive)
	}
	if got := ClassifyMatch(m, matchNow.Add(49*time.Hour)); got != models.MatchViewExpired {
		t.Fatalf("ClassifyMatch stale = %q, want %q", got, models.MatchViewExpired)
	}
}

func seedMatchPair(t *testing.T, fake *fakeDynamo) {
	t.Helper()
	ctx := context.Background()
	for _, p := range []models.Profile{
		{UserID: "alice", Name: "Alice", PhotoKey: "profile-pics/alice/1", LastRefreshedAt: matchNow},
		{UserID: "bob", Name: "Bob", PhotoKey: "profile-pics/bob/1", LastRefreshedAt: matchNow},
	} {
		if err := fake.PutItem(ctx, models.ProfilesTable, p); err != nil {
			t.Fatalf("seed profile: %v", err)
		}
	}
}

// TestCreateMatchLinksProfiles ensures both users' profiles list the new
// match.
func TestCreateMatchLinksProfiles(t *testing.T) {
	fake := newFakeDynamo()
	seedMatchPair(t, fake)
	ms := &MatchService{Dynamo: fake, Clock: func() time.Time { return matchNow }}
	ctx := context.Background()

	match, err := ms.CreateMatch(ctx, "alice", "bob", false)
	if err != nil {
		t.Fatalf("CreateMatch returned error: %v", err)
	}

	for _, uid := range []string{"alice", "bob"} {
		profile, err := getProfile(ctx, fake, uid)
		if err != nil {
			t.Fatalf("reload profile %s: %v", uid, err)
		}
		if len(profile.MatchIDs) != 1 || profile.MatchIDs[0] != match.MatchID {
			t.Fatalf("profile %s matchIds = %v, want [%s]", uid, profile.MatchIDs, match.MatchID)
		}
	}
}

// TestPromoteToResonanceIdempotent ensures promotion is permanent and a
// repeat is a no-op.
func TestPromoteToResonanceIdempotent(t *testing.T) {
	fake := newFakeDynamo()
	seedMatchPair(t, fake)
	ms := &MatchService{Dynamo: fake, Clock: func() time.Time { return matchNow }}
	ctx := context.Background()

	match, err := ms.CreateMatch(ctx, "alice", "bob", false)
	if err != nil {
		t.Fatalf("CreateMatch returned error: %v", err)
	}

	promoted, err := ms.PromoteToResonance(ctx, match.MatchID)
	if err != nil {
		t.Fatalf("PromoteToResonance returned error: %v", err)
	}
	if promoted.Status != models.MatchStatusResonance {
		t.Fatalf("status = %q, want %q", promoted.Status, models.MatchStatusResonance)
	}

	again, err := ms.PromoteToResonance(ctx, match.MatchID)
	if err != nil {
		t.Fatalf("repeat PromoteToResonance returned error: %v", err)
	}
	if again.Status != models.MatchStatusResonance {
		t.Fatal("repeat promotion changed status")
	}
}

// TestListMatchesPartitions ensures the per-user listing buckets matches by
// classification and keeps expired ones.
func TestListMatchesPartitions(t *testing.T) {
	fake := newFakeDynamo()
	seedMatchPair(t, fake)
	if err := fake.PutItem(context.Background(), models.ProfilesTable, models.Profile{UserID: "carol", Name: "Carol", LastRefreshedAt: matchNow}); err != nil {
		t.Fatalf("seed profile: %v", err)
	}

	now := matchNow
	ms := &MatchService{Dynamo: fake, Clock: func() time.Time { return now }}
	ctx := context.Background()

	fresh, err := ms.CreateMatch(ctx, "alice", "bob", false)
	if err != nil {
		t.Fatalf("CreateMatch returned error: %v", err)
	}
	stale, err := ms.CreateMatch(ctx, "alice", "carol", false)
	if err != nil {
		t.Fatalf("CreateMatch returned error: %v", err)
	}
	if _, err := ms.PromoteToResonance(ctx, fresh.MatchID); err != nil {
		t.Fatalf("PromoteToResonance returned error: %v", err)
	}

	// Move past the countdown: the resonant match survives, the other
	// expires into its own view.
	now = matchNow.Add(72 * time.Hour)
	views, err := ms.ListMatches(ctx, "alice")
	if err != nil {
		t.Fatalf("ListMatches returned error: %v", err)
	}

	if len(views[models.MatchViewResonance]) != 1 || views[models.MatchViewResonance][0].MatchID != fresh.MatchID {
		t.Fatalf("resonance view = %+v, want [%s]", views[models.MatchViewResonance], fresh.MatchID)
	}
	if len(views[models.MatchViewExpired]) != 1 || views[models.MatchViewExpired][0].MatchID != stale.MatchID {
		t.Fatalf("expired view = %+v, want [%s]", views[models.MatchViewExpired], stale.MatchID)
	}
	if len(views[models.MatchViewActive]) != 0 {
		t.Fatalf("active view = %+v, want empty", views[models.MatchViewActive])
	}
	if got := views[models.MatchViewResonance][0].CounterpartyName; got != "Bob" {
		t.Fatalf("counterparty name = %q, want Bob", got)
	}
}
