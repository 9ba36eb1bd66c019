// Package contract holds storage-agnostic test suites every RecordFetcher
// implementation must pass. Implementations wire them up with a factory.
package contract

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/maxviazov/federation-analytics/internal/model"
	"github.com/maxviazov/federation-analytics/internal/repository"
)

// Seeder inserts fixture rows into the backing store.
type Seeder interface {
	User(ctx context.Context, role model.Role, createdAt time.Time, lastActivity *time.Time) (int64, error)
	Competition(ctx context.Context, status model.CompetitionStatus, fee decimal.Decimal, createdAt time.Time) (int64, error)
	Registration(ctx context.Context, competitionID int64, category string, status model.PaymentStatus, createdAt time.Time) (int64, error)
	Club(ctx context.Context, city string, createdAt time.Time) (int64, error)
	Membership(ctx context.Context, clubID int64) (int64, error)
}

type FetcherFactory func(t *testing.T) (repository.RecordFetcher, Seeder, func())

type PingerFactory func(t *testing.T) (repository.Pinger, func())

func RunRecordFetcherContract(t *testing.T, makeFetcher FetcherFactory) {
	t.Helper()

	t.Run("empty_is_not_error", func(t *testing.T) {
		f, _, cleanup := makeFetcher(t)
		t.Cleanup(cleanup)
		ctx := context.Background()

		users, err := f.Users(ctx, repository.Filter{})
		if err != nil {
			t.Fatalf("users: %v", err)
		}
		if users == nil || len(users) != 0 {
			t.Fatalf("expected empty non-nil slice, got %#v", users)
		}
		regs, err := f.Registrations(ctx, repository.Filter{})
		if err != nil || len(regs) != 0 {
			t.Fatalf("registrations: len=%d err=%v", len(regs), err)
		}
		clubs, err := f.Clubs(ctx, repository.Filter{})
		if err != nil || len(clubs) != 0 {
			t.Fatalf("clubs: len=%d err=%v", len(clubs), err)
		}
	})

	t.Run("users_created_range_and_limit", func(t *testing.T) {
		f, seed, cleanup := makeFetcher(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		base := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
		active := base.Add(48 * time.Hour)
		for i, role := range []model.Role{model.RoleAthlete, model.RoleCoach, model.RoleJudge} {
			if _, err := seed.User(ctx, role, base.AddDate(0, 0, i*10), &active); err != nil {
				t.Fatalf("seed user: %v", err)
			}
		}

		from, to := base, base.AddDate(0, 0, 10)
		got, err := f.Users(ctx, repository.Filter{CreatedFrom: &from, CreatedTo: &to})
		if err != nil {
			t.Fatalf("users: %v", err)
		}
		if len(got) != 1 || got[0].Role != model.RoleAthlete {
			t.Fatalf("expected only the athlete inside [from,to), got %+v", got)
		}
		if got[0].LastActivityAt == nil || !got[0].LastActivityAt.Equal(active) {
			t.Fatalf("last activity not read back: %+v", got[0].LastActivityAt)
		}

		one, err := f.Users(ctx, repository.Filter{Limit: 1})
		if err != nil || len(one) != 1 {
			t.Fatalf("limit: len=%d err=%v", len(one), err)
		}
	})

	t.Run("registration_inherits_fee", func(t *testing.T) {
		f, seed, cleanup := makeFetcher(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		now := time.Now().UTC().Truncate(time.Second)
		cid, err := seed.Competition(ctx, model.CompetitionRegistrationOpen, decimal.RequireFromString("125.50"), now)
		if err != nil {
			t.Fatalf("seed competition: %v", err)
		}
		if _, err := seed.Registration(ctx, cid, "kata", model.PaymentPaid, now); err != nil {
			t.Fatalf("seed registration: %v", err)
		}

		regs, err := f.Registrations(ctx, repository.Filter{})
		if err != nil {
			t.Fatalf("registrations: %v", err)
		}
		if len(regs) != 1 {
			t.Fatalf("expected 1 registration, got %d", len(regs))
		}
		r := regs[0]
		if r.CompetitionID != cid || r.Category != "kata" || r.PaymentStatus != model.PaymentPaid {
			t.Fatalf("unexpected registration: %+v", r)
		}
		if !r.Fee.Equal(decimal.RequireFromString("125.5")) {
			t.Fatalf("fee not inherited: %s", r.Fee)
		}

		comps, err := f.Competitions(ctx, repository.Filter{})
		if err != nil || len(comps) != 1 || comps[0].Status != model.CompetitionRegistrationOpen {
			t.Fatalf("competitions: %+v err=%v", comps, err)
		}
	})

	t.Run("memberships_by_club", func(t *testing.T) {
		f, seed, cleanup := makeFetcher(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		now := time.Now().UTC()
		a, err := seed.Club(ctx, "Plovdiv", now)
		if err != nil {
			t.Fatalf("seed club: %v", err)
		}
		b, err := seed.Club(ctx, "", now)
		if err != nil {
			t.Fatalf("seed club: %v", err)
		}
		for _, club := range []int64{a, a, b} {
			if _, err := seed.Membership(ctx, club); err != nil {
				t.Fatalf("seed membership: %v", err)
			}
		}

		all, err := f.AthleteMemberships(ctx, repository.Filter{})
		if err != nil || len(all) != 3 {
			t.Fatalf("all memberships: len=%d err=%v", len(all), err)
		}
		onlyA, err := f.AthleteMemberships(ctx, repository.Filter{ClubID: &a})
		if err != nil || len(onlyA) != 2 {
			t.Fatalf("club %d memberships: len=%d err=%v", a, len(onlyA), err)
		}
		clubs, err := f.Clubs(ctx, repository.Filter{})
		if err != nil || len(clubs) != 2 {
			t.Fatalf("clubs: len=%d err=%v", len(clubs), err)
		}
		if clubs[1].City != "" {
			t.Fatalf("null city should read as empty, got %q", clubs[1].City)
		}
	})

	t.Run("canceled_context_is_fetch_error", func(t *testing.T) {
		f, _, cleanup := makeFetcher(t)
		t.Cleanup(cleanup)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := f.Users(ctx, repository.Filter{})
		if err == nil {
			t.Fatalf("expected error on canceled context")
		}
		if !errors.Is(err, repository.ErrFetch) {
			t.Fatalf("expected ErrFetch, got %v", err)
		}
	})
}

func RunPingerContract(t *testing.T, makePinger PingerFactory) {
	t.Helper()
	t.Run("ping_ok", func(t *testing.T) {
		p, cleanup := makePinger(t)
		t.Cleanup(cleanup)
		if err := p.Ping(context.Background()); err != nil {
			t.Fatalf("expected ping ok, got %v", err)
		}
	})
}
