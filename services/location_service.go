package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"resonate_server/models"
)

// ErrLocationUnavailable is returned when a user has no usable position fix.
var ErrLocationUnavailable = errors.New("location unavailable")

// LocationService is the Dynamo-backed LocationProvider: devices report
// position fixes and their permission state, and check-ins read them back
// within a freshness window.
type LocationService struct {
	Dynamo DynamoAPI
	Clock  func() time.Time
}

func (ls *LocationService) now() time.Time {
	if ls.Clock != nil {
		return ls.Clock()
	}
	return time.Now().UTC()
}

// Report stores a user's latest position fix and permission state. A device
// that reports a denied permission may omit the fix.
func (ls *LocationService) Report(ctx context.Context, userID, permission string, loc models.LiveLocation) error {
	switch permission {
	case models.PermissionPrompt, models.PermissionGranted, models.PermissionDenied:
	default:
		return fmt.Errorf("invalid permission state %q", permission)
	}

	record := models.DeviceLocation{
		UserID:     userID,
		Permission: permission,
		Location:   loc,
	}
	if record.Location.Timestamp.IsZero() {
		record.Location.Timestamp = ls.now()
	}
	if err := ls.Dynamo.PutItem(ctx, models.LocationsTable, record); err != nil {
		return fmt.Errorf("failed to store location for %s: %w", userID, err)
	}
	return nil
}

// Permission returns the user's last reported permission state; a user who
// has never reported is still at prompt.
func (ls *LocationService) Permission(ctx context.Context, userID string) (string, error) {
	record, err := ls.get(ctx, userID)
	if errors.Is(err, ErrItemNotFound) {
		return models.PermissionPrompt, nil
	}
	if err != nil {
		return "", err
	}
	return record.Permission, nil
}

// Current returns the user's position if a fix newer than maxAge exists.
func (ls *LocationService) Current(ctx context.Context, userID string, maxAge time.Duration) (models.LiveLocation, error) {
	record, err := ls.get(ctx, userID)
	if errors.Is(err, ErrItemNotFound) {
		return models.LiveLocation{}, ErrLocationUnavailable
	}
	if err != nil {
		return models.LiveLocation{}, err
	}
	if record.Permission == models.PermissionDenied {
		return models.LiveLocation{}, ErrLocationUnavailable
	}
	if maxAge > 0 && ls.now().Sub(record.Location.Timestamp) > maxAge {
		return models.LiveLocation{}, ErrLocationUnavailable
	}
	return record.Location, nil
}

func (ls *LocationService) get(ctx context.Context, userID string) (models.DeviceLocation, error) {
	item, err := ls.Dynamo.GetItem(ctx, models.LocationsTable, stringKey("userId", userID))
	if err != nil {
		return models.DeviceLocation{}, err
	}
	var record models.DeviceLocation
	if err := unmarshalItem(item, &record); err != nil {
		return models.DeviceLocation{}, fmt.Errorf("failed to unmarshal location: %w", err)
	}
	return record, nil
}
