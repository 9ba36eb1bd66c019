package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/maxviazov/federation-analytics/internal/model"
	"github.com/maxviazov/federation-analytics/internal/repository"
)

type recordFetcher struct{ pool *pgxpool.Pool }

// NewRecordFetcher reads portal records through pool. It never writes.
func NewRecordFetcher(pool *pgxpool.Pool) repository.RecordFetcher {
	return &recordFetcher{pool: pool}
}

func (r *recordFetcher) Users(ctx context.Context, f repository.Filter) ([]model.UserRecord, error) {
	q, args := newSelect(`SELECT id, role, created_at, last_activity_at FROM users`).
		createdIn("created_at", f).
		orderBy("id").
		limit(f.Limit).
		build()
	return collect(ctx, r.pool, repository.EntityUsers, q, args, func(row pgx.Rows) (model.UserRecord, error) {
		var u model.UserRecord
		err := row.Scan(&u.ID, &u.Role, &u.CreatedAt, &u.LastActivityAt)
		return u, err
	})
}

func (r *recordFetcher) Competitions(ctx context.Context, f repository.Filter) ([]model.CompetitionRecord, error) {
	q, args := newSelect(`SELECT id, status, created_at FROM competitions`).
		createdIn("created_at", f).
		orderBy("id").
		limit(f.Limit).
		build()
	return collect(ctx, r.pool, repository.EntityCompetitions, q, args, func(row pgx.Rows) (model.CompetitionRecord, error) {
		var c model.CompetitionRecord
		err := row.Scan(&c.ID, &c.Status, &c.CreatedAt)
		return c, err
	})
}

// Registrations inherits the fee from the owning competition; a missing fee
// reads as zero.
func (r *recordFetcher) Registrations(ctx context.Context, f repository.Filter) ([]model.RegistrationRecord, error) {
	q, args := newSelect(`
		SELECT r.id, r.competition_id, r.category, r.payment_status,
		       COALESCE(c.registration_fee, 0)::TEXT, r.created_at
		FROM registrations r
		LEFT JOIN competitions c ON c.id = r.competition_id`).
		createdIn("r.created_at", f).
		orderBy("r.id").
		limit(f.Limit).
		build()
	return collect(ctx, r.pool, repository.EntityRegistrations, q, args, func(row pgx.Rows) (model.RegistrationRecord, error) {
		var (
			reg model.RegistrationRecord
			fee string
		)
		if err := row.Scan(&reg.ID, &reg.CompetitionID, &reg.Category, &reg.PaymentStatus, &fee, &reg.CreatedAt); err != nil {
			return reg, err
		}
		d, err := decimal.NewFromString(fee)
		if err != nil {
			return reg, fmt.Errorf("registration %d fee %q: %w", reg.ID, fee, err)
		}
		reg.Fee = d
		return reg, nil
	})
}

func (r *recordFetcher) Clubs(ctx context.Context, f repository.Filter) ([]model.ClubRecord, error) {
	q, args := newSelect(`SELECT id, COALESCE(city, ''), created_at FROM clubs`).
		createdIn("created_at", f).
		orderBy("id").
		limit(f.Limit).
		build()
	return collect(ctx, r.pool, repository.EntityClubs, q, args, func(row pgx.Rows) (model.ClubRecord, error) {
		var c model.ClubRecord
		err := row.Scan(&c.ID, &c.City, &c.CreatedAt)
		return c, err
	})
}

func (r *recordFetcher) AthleteMemberships(ctx context.Context, f repository.Filter) ([]model.AthleteMembershipRecord, error) {
	b := newSelect(`SELECT id, club_id FROM athlete_memberships`)
	if f.ClubID != nil {
		b.where("club_id = $%d", *f.ClubID)
	}
	q, args := b.orderBy("id").limit(f.Limit).build()
	return collect(ctx, r.pool, repository.EntityAthleteMemberships, q, args, func(row pgx.Rows) (model.AthleteMembershipRecord, error) {
		var m model.AthleteMembershipRecord
		err := row.Scan(&m.ID, &m.ClubID)
		return m, err
	})
}

// collect runs q and scans every row with scan. The result is never nil on
// success so "no rows" stays distinct from a failed read.
func collect[T any](ctx context.Context, pool *pgxpool.Pool, entity repository.Entity, q string, args []any, scan func(pgx.Rows) (T, error)) ([]T, error) {
	if err := ensurePool(pool); err != nil {
		return nil, repository.NewFetchError(entity, err)
	}
	rows, err := pool.Query(ctx, q, args...)
	if err != nil {
		return nil, repository.NewFetchError(entity, err)
	}
	defer rows.Close()

	res := make([]T, 0, 64)
	for rows.Next() {
		it, err := scan(rows)
		if err != nil {
			return nil, repository.NewFetchError(entity, err)
		}
		res = append(res, it)
	}
	if err := rows.Err(); err != nil {
		return nil, repository.NewFetchError(entity, err)
	}
	return res, nil
}

var _ repository.RecordFetcher = (*recordFetcher)(nil)
