package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/maxviazov/federation-analytics/internal/repository"
)

// selectBuilder appends WHERE conditions with positional args.
type selectBuilder struct {
	base  string
	conds []string
	args  []any
	tail  string
}

func newSelect(base string) *selectBuilder { return &selectBuilder{base: base} }

func (b *selectBuilder) where(cond string, arg any) *selectBuilder {
	b.args = append(b.args, arg)
	b.conds = append(b.conds, fmt.Sprintf(cond, len(b.args)))
	return b
}

// createdIn applies the half-open creation range of f to column.
func (b *selectBuilder) createdIn(column string, f repository.Filter) *selectBuilder {
	if f.CreatedFrom != nil {
		b.where(column+" >= $%d", *f.CreatedFrom)
	}
	if f.CreatedTo != nil {
		b.where(column+" < $%d", *f.CreatedTo)
	}
	return b
}

func (b *selectBuilder) orderBy(expr string) *selectBuilder {
	b.tail = " ORDER BY " + expr
	return b
}

func (b *selectBuilder) limit(n int) *selectBuilder {
	if n > 0 {
		b.args = append(b.args, n)
		b.tail += fmt.Sprintf(" LIMIT $%d", len(b.args))
	}
	return b
}

func (b *selectBuilder) build() (string, []any) {
	var sb strings.Builder
	sb.WriteString(b.base)
	if len(b.conds) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(b.conds, " AND "))
	}
	sb.WriteString(b.tail)
	return sb.String(), b.args
}

// helper to assert we didn't accidentally nil the pool
func ensurePool(pool *pgxpool.Pool) error {
	if pool == nil {
		return errors.New("pgx pool is nil")
	}
	return nil
}
