package models

import "time"

// Profile defines the structure for user profiles
type Profile struct {
	UserID          string    `dynamodbav:"userId" json:"userId"`
	Name            string    `dynamodbav:"name,omitempty" json:"name,omitempty"`
	Age             int       `dynamodbav:"age,omitempty" json:"age,omitempty"`
	Bio             string    `dynamodbav:"bio,omitempty" json:"bio,omitempty"`
	Interests       []string  `dynamodbav:"interests,omitempty" json:"interests,omitempty"`
	PhotoKey        string    `dynamodbav:"photoKey,omitempty" json:"photoKey,omitempty"`
	Latitude        float64   `dynamodbav:"latitude,omitempty" json:"latitude,omitempty"`
	Longitude       float64   `dynamodbav:"longitude,omitempty" json:"longitude,omitempty"`
	Verified        bool      `dynamodbav:"verified,omitempty" json:"verified,omitempty"`
	Premium         bool      `dynamodbav:"premium,omitempty" json:"premium,omitempty"`
	LastRefreshedAt time.Time `dynamodbav:"lastRefreshedAt" json:"lastRefreshedAt"`
	MatchIDs        []string  `dynamodbav:"matchIds,omitempty" json:"matchIds,omitempty"`
}

// ProfilesTable is the DynamoDB table name for user profiles
const ProfilesTable = "EchoProfiles"
