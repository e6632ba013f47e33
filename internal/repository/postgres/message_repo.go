package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"

	"portfolio-backend/internal/domain"
)

const messageColumns = `id, name, email, subject, content, read, created_at`

var messageSortColumns = map[string]string{
	"createdAt": "created_at",
	"name":      "name",
	"email":     "email",
	"subject":   "subject",
}

type messageRepo struct {
	db Pool
}

func NewMessageRepository(db Pool) domain.MessageRepository {
	return &messageRepo{db: db}
}

func scanMessages(rows pgx.Rows) ([]domain.Message, error) {
	defer rows.Close()

	messages := []domain.Message{}
	for rows.Next() {
		var m domain.Message
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Content, &m.Read, &m.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

func (r *messageRepo) Create(ctx context.Context, m *domain.Message) error {
	pool, err := r.db.Get(ctx)
	if err != nil {
		return err
	}

	query := `INSERT INTO messages (` + messageColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err = pool.Exec(ctx, query, m.ID, m.Name, m.Email, m.Subject, m.Content, m.Read, m.CreatedAt)
	return translateError(err)
}

func (r *messageRepo) GetByID(ctx context.Context, id string) (*domain.Message, error) {
	pool, err := r.db.Get(ctx)
	if err != nil {
		return nil, err
	}

	var m domain.Message
	err = pool.QueryRow(ctx, `SELECT `+messageColumns+` FROM messages WHERE id = $1`, id).
		Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Content, &m.Read, &m.CreatedAt)
	if err != nil {
		return nil, translateError(err)
	}
	return &m, nil
}

// messageFilter builds the WHERE clause shared by List and its count.
func messageFilter(q domain.MessageQuery) (string, []interface{}) {
	var (
		conds []string
		args  []interface{}
	)
	if q.Unread {
		conds = append(conds, "read = FALSE")
	}
	if q.Search != "" {
		args = append(args, "%"+escapeLike(q.Search)+"%")
		conds = append(conds, fmt.Sprintf(
			"(name ILIKE $%[1]d OR email ILIKE $%[1]d OR subject ILIKE $%[1]d OR content ILIKE $%[1]d)", len(args)))
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func (r *messageRepo) List(ctx context.Context, q domain.MessageQuery) ([]domain.Message, int64, error) {
	pool, err := r.db.Get(ctx)
	if err != nil {
		return nil, 0, err
	}

	where, args := messageFilter(q)

	var total int64
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM messages`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + messageColumns + ` FROM messages` + where +
		orderClause(messageSortColumns, q.ListQuery) + pageClause(q.ListQuery)
	rows, err := pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	messages, err := scanMessages(rows)
	if err != nil {
		return nil, 0, err
	}
	return messages, total, nil
}

func (r *messageRepo) CountUnread(ctx context.Context) (int64, error) {
	pool, err := r.db.Get(ctx)
	if err != nil {
		return 0, err
	}

	var n int64
	err = pool.QueryRow(ctx, `SELECT COUNT(*) FROM messages WHERE read = FALSE`).Scan(&n)
	return n, err
}

func (r *messageRepo) LatestUnread(ctx context.Context, limit int) ([]domain.Message, error) {
	pool, err := r.db.Get(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := pool.Query(ctx,
		`SELECT `+messageColumns+` FROM messages WHERE read = FALSE ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	return scanMessages(rows)
}

// MarkRead only touches unread rows, so the count reflects actual changes.
func (r *messageRepo) MarkRead(ctx context.Context, ids []string) (int64, error) {
	pool, err := r.db.Get(ctx)
	if err != nil {
		return 0, err
	}

	tag, err := pool.Exec(ctx,
		`UPDATE messages SET read = TRUE WHERE id = ANY($1::uuid[]) AND read = FALSE`, pq.Array(ids))
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *messageRepo) MarkAllRead(ctx context.Context) (int64, error) {
	pool, err := r.db.Get(ctx)
	if err != nil {
		return 0, err
	}

	tag, err := pool.Exec(ctx, `UPDATE messages SET read = TRUE WHERE read = FALSE`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *messageRepo) Delete(ctx context.Context, id string) error {
	pool, err := r.db.Get(ctx)
	if err != nil {
		return err
	}

	tag, err := pool.Exec(ctx, `DELETE FROM messages WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
