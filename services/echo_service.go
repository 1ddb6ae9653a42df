package services

import (
	"time"

	"resonate_server/models"
)

// EchoService derives a profile's liveness from the time since its last photo
// refresh. Status is pure arithmetic over (lastRefreshedAt, now) and is never
// persisted: a profile is ACTIVE for six days, EXPIRING for the seventh, and
// SILENCE after that until the owner refreshes a photo.
type EchoService struct{}

const echoDay = 24 * time.Hour

// Status classifies a profile's echo given the moment of observation.
func (es *EchoService) Status(lastRefreshedAt, now time.Time) string {
	age := now.Sub(lastRefreshedAt)
	switch {
	case age < (models.EchoActiveDays-models.EchoWarningDays)*echoDay:
		return models.EchoStatusActive
	case age < models.EchoActiveDays*echoDay:
		return models.EchoStatusExpiring
	default:
		return models.EchoStatusSilence
	}
}

// DaysUntilExpiration returns how many whole days remain before the profile
// falls silent, floored at zero.
func (es *EchoService) DaysUntilExpiration(lastRefreshedAt, now time.Time) int {
	remaining := lastRefreshedAt.Add(models.EchoActiveDays * echoDay).Sub(now)
	if remaining <= 0 {
		return 0
	}
	days := int(remaining / echoDay)
	if remaining%echoDay != 0 {
		days++
	}
	return days
}

// IsDiscoverable reports whether the profile may still appear in the feed.
func (es *EchoService) IsDiscoverable(lastRefreshedAt, now time.Time) bool {
	return es.Status(lastRefreshedAt, now) != models.EchoStatusSilence
}
