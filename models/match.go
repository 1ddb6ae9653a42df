package models

import "time"

// Match pairs two users. ExpiresAt is fixed at creation; expiry itself is a
// wall-clock comparison, never a stored mutation. A match promoted to
// resonance stops expiring permanently.
type Match struct {
	MatchID       string     `dynamodbav:"matchId" json:"matchId"`
	Users         []string   `dynamodbav:"users" json:"users"`
	Status        string     `dynamodbav:"status" json:"status"`
	IsSuperLike   bool       `dynamodbav:"isSuperLike" json:"isSuperLike"`
	CreatedAt     time.Time  `dynamodbav:"createdAt" json:"createdAt"`
	ExpiresAt     time.Time  `dynamodbav:"expiresAt" json:"expiresAt"`
	LastMessageAt *time.Time `dynamodbav:"lastMessageAt,omitempty" json:"lastMessageAt,omitempty"`
}

// Counterparty returns the other user in the match, or "" when userID is not
// a participant.
func (m Match) Counterparty(userID string) string {
	for _, u := range m.Users {
		if u != userID {
			return u
		}
	}
	return ""
}

// Involves reports whether userID participates in the match.
func (m Match) Involves(userID string) bool {
	for _, u := range m.Users {
		if u == userID {
			return true
		}
	}
	return false
}

// MatchesTable is the DynamoDB table name for matches
const MatchesTable = "Matches"
