package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"portfolio-backend/internal/domain"
)

// PostgreSQL error codes
const (
	pgUniqueViolation = "23505"
)

// Pool yields the shared connection pool, opening it on first use.
// *database.Connector[*pgxpool.Pool] satisfies it.
type Pool interface {
	Get(ctx context.Context) (*pgxpool.Pool, error)
}

// translateError maps driver errors onto the domain sentinels.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return fmt.Errorf("%w: %s", domain.ErrDuplicate, pgErr.ConstraintName)
	}
	return err
}

// orderClause resolves a JSON sort key through the entity's column map.
// Unknown keys fall back to created_at.
func orderClause(columns map[string]string, q domain.ListQuery) string {
	col, ok := columns[q.Sort]
	if !ok {
		col = "created_at"
	}
	dir := "DESC"
	if !q.Desc() {
		dir = "ASC"
	}
	return fmt.Sprintf(" ORDER BY %s %s, id %s", col, dir, dir)
}

// pageClause is empty when q has no limit.
func pageClause(q domain.ListQuery) string {
	if q.Limit <= 0 {
		return ""
	}
	return fmt.Sprintf(" LIMIT %d OFFSET %d", q.Limit, q.Offset())
}

func textArray(items []string) interface{} {
	if items == nil {
		items = []string{}
	}
	return pq.Array(items)
}
