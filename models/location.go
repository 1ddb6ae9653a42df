package models

import "time"

// LiveLocation is one device position fix.
type LiveLocation struct {
	Latitude  float64   `dynamodbav:"latitude" json:"latitude"`
	Longitude float64   `dynamodbav:"longitude" json:"longitude"`
	Accuracy  float64   `dynamodbav:"accuracy,omitempty" json:"accuracy,omitempty"`
	Timestamp time.Time `dynamodbav:"timestamp" json:"timestamp"`
}

// DeviceLocation is the last reported position for a user together with the
// geolocation permission state the device reported alongside it.
type DeviceLocation struct {
	UserID     string       `dynamodbav:"userId" json:"userId"`
	Permission string       `dynamodbav:"permission" json:"permission"`
	Location   LiveLocation `dynamodbav:"location" json:"location"`
}

// LocationsTable is the DynamoDB table name for reported device locations
const LocationsTable = "Locations"
