package models

import "time"

// SwipeLimits tracks the two independent quotas: daily swipes and weekly
// super likes. Resets roll the counters forward; the record is created once
// on first use and never deleted.
type SwipeLimits struct {
	DailyQuota       int       `dynamodbav:"dailyQuota" json:"dailyQuota"`
	WeeklySuperQuota int       `dynamodbav:"weeklySuperQuota" json:"weeklySuperQuota"`
	SwipesUsed       int       `dynamodbav:"swipesUsed" json:"swipesUsed"`
	SuperUsed        int       `dynamodbav:"superUsed" json:"superUsed"`
	DailyResetAt     time.Time `dynamodbav:"dailyResetAt" json:"dailyResetAt"`
	WeeklyResetAt    time.Time `dynamodbav:"weeklyResetAt" json:"weeklyResetAt"`
}

// SwipeHistoryEntry is one recorded decision, consumed only by rewind.
type SwipeHistoryEntry struct {
	CandidateID string    `dynamodbav:"candidateId" json:"candidateId"`
	Action      string    `dynamodbav:"action" json:"action"`
	Timestamp   time.Time `dynamodbav:"timestamp" json:"timestamp"`
}

// SwipeState is the per-user swipe session document: quota counters, the
// candidate queue with its cursor, and the rewind history. Persisted as a
// single item and replaced atomically on every mutation.
type SwipeState struct {
	UserID       string              `dynamodbav:"userId" json:"userId"`
	Limits       SwipeLimits         `dynamodbav:"limits" json:"limits"`
	Queue        []string            `dynamodbav:"queue,omitempty" json:"queue,omitempty"`
	CurrentIndex int                 `dynamodbav:"currentIndex" json:"currentIndex"`
	History      []SwipeHistoryEntry `dynamodbav:"history,omitempty" json:"history,omitempty"`
}

// SwipeStatesTable is the DynamoDB table name for swipe session state
const SwipeStatesTable = "SwipeStates"

// Swipe is one recorded swipe keyed for reciprocity lookups: receiverId is
// the swiped-on user, senderId the actor.
type Swipe struct {
	ReceiverID string    `dynamodbav:"receiverId" json:"receiverId"`
	SenderID   string    `dynamodbav:"senderId" json:"senderId"`
	Action     string    `dynamodbav:"action" json:"action"`
	CreatedAt  time.Time `dynamodbav:"createdAt" json:"createdAt"`
}

// SwipesTable is the DynamoDB table name for recorded swipes
const SwipesTable = "Swipes"
