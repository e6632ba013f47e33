package postgres

import (
	"context"
	"fmt"
	"strings"

	"portfolio-backend/internal/domain"
)

// table describes how one content entity maps onto its table. Data columns
// exclude id, created_at and updated_at, which every table shares.
type table[T any] struct {
	name    string
	columns []string
	sort    map[string]string
	base    func(*T) *domain.Base
	values  func(*T) []interface{}
	dest    func(*T) []interface{}
}

type contentRepo[T any] struct {
	db Pool
	t  table[T]
}

func newContentRepo[T any](db Pool, t table[T]) *contentRepo[T] {
	return &contentRepo[T]{db: db, t: t}
}

func (r *contentRepo[T]) selectColumns() string {
	return "id, created_at, updated_at, " + strings.Join(r.t.columns, ", ")
}

func (r *contentRepo[T]) scanTargets(e *T) []interface{} {
	b := r.t.base(e)
	return append([]interface{}{&b.ID, &b.CreatedAt, &b.UpdatedAt}, r.t.dest(e)...)
}

func (r *contentRepo[T]) List(ctx context.Context, q domain.ListQuery) ([]T, error) {
	pool, err := r.db.Get(ctx)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf("SELECT %s FROM %s", r.selectColumns(), r.t.name) +
		orderClause(r.t.sort, q) + pageClause(q)

	rows, err := pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []T{}
	for rows.Next() {
		var e T
		if err := rows.Scan(r.scanTargets(&e)...); err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	return items, rows.Err()
}

func (r *contentRepo[T]) GetByID(ctx context.Context, id string) (*T, error) {
	pool, err := r.db.Get(ctx)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", r.selectColumns(), r.t.name)
	var e T
	if err := pool.QueryRow(ctx, query, id).Scan(r.scanTargets(&e)...); err != nil {
		return nil, translateError(err)
	}
	return &e, nil
}

func (r *contentRepo[T]) Create(ctx context.Context, e *T) error {
	pool, err := r.db.Get(ctx)
	if err != nil {
		return err
	}

	n := len(r.t.columns) + 3
	placeholders := make([]string, n)
	for i := range placeholders {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		r.t.name, r.selectColumns(), strings.Join(placeholders, ", "))

	b := r.t.base(e)
	args := append([]interface{}{b.ID, b.CreatedAt, b.UpdatedAt}, r.t.values(e)...)
	_, err = pool.Exec(ctx, query, args...)
	return translateError(err)
}

func (r *contentRepo[T]) Update(ctx context.Context, e *T) error {
	pool, err := r.db.Get(ctx)
	if err != nil {
		return err
	}

	sets := make([]string, len(r.t.columns))
	for i, col := range r.t.columns {
		sets[i] = fmt.Sprintf("%s = $%d", col, i+3)
	}
	query := fmt.Sprintf("UPDATE %s SET updated_at = $2, %s WHERE id = $1",
		r.t.name, strings.Join(sets, ", "))

	b := r.t.base(e)
	args := append([]interface{}{b.ID, b.UpdatedAt}, r.t.values(e)...)
	tag, err := pool.Exec(ctx, query, args...)
	if err != nil {
		return translateError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *contentRepo[T]) Delete(ctx context.Context, id string) error {
	pool, err := r.db.Get(ctx)
	if err != nil {
		return err
	}

	tag, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", r.t.name), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
