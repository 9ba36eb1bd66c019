package repository

import (
	"context"
	"time"

	"github.com/maxviazov/federation-analytics/internal/model"
)

// Pinger represents a minimal readiness probe capability.
// I use it to decouple health checks from storage implementation details.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Entity names a record set the fetcher can read.
type Entity string

const (
	EntityUsers              Entity = "users"
	EntityCompetitions       Entity = "competitions"
	EntityRegistrations      Entity = "registrations"
	EntityClubs              Entity = "clubs"
	EntityAthleteMemberships Entity = "athlete_memberships"
)

// Filter narrows a fetch. Zero values mean "no constraint".
// CreatedFrom is inclusive and CreatedTo exclusive, matching AnalyticsPeriod.
type Filter struct {
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	ClubID      *int64
	Limit       int
}

// CreatedIn returns a filter restricted to the given period.
func CreatedIn(p model.AnalyticsPeriod) Filter {
	start, end := p.Start, p.End
	return Filter{CreatedFrom: &start, CreatedTo: &end}
}

// RecordFetcher is the read-only view of the membership portal's storage.
// Implementations return an empty slice and nil error when nothing matches,
// and a *FetchError when the read itself fails.
type RecordFetcher interface {
	Users(ctx context.Context, f Filter) ([]model.UserRecord, error)
	Competitions(ctx context.Context, f Filter) ([]model.CompetitionRecord, error)
	Registrations(ctx context.Context, f Filter) ([]model.RegistrationRecord, error)
	Clubs(ctx context.Context, f Filter) ([]model.ClubRecord, error)
	// AthleteMemberships honours ClubID, which the club size join relies on.
	AthleteMemberships(ctx context.Context, f Filter) ([]model.AthleteMembershipRecord, error)
}
