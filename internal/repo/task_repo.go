package repo

import (
	"context"
	"errors"

	dom "github.com/Sharufkhanniazi/Task-Management-System/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrEmptyPatch guards Update against a patch with no fields. Callers are
// expected to reject empty patches before reaching the store.
var ErrEmptyPatch = errors.New("empty patch")

const taskColumns = `id, title, description, status, priority, due_date, user_id, created_at, updated_at`

type TaskRepo interface {
	Create(ctx context.Context, t dom.Task) (dom.Task, error)
	GetByID(ctx context.Context, userID, id uuid.UUID) (dom.Task, error)
	Exists(ctx context.Context, userID, id uuid.UUID) (bool, error)
	List(ctx context.Context, userID uuid.UUID, f dom.TaskFilter) ([]dom.Task, error)
	Update(ctx context.Context, userID, id uuid.UUID, patch dom.TaskPatch) (dom.Task, error)
	Delete(ctx context.Context, userID, id uuid.UUID) (bool, error)
}

type PGTaskRepo struct {
	db *pgxpool.Pool
}

func NewPGTaskRepo(db *pgxpool.Pool) *PGTaskRepo {
	return &PGTaskRepo{db: db}
}

func (r *PGTaskRepo) Create(ctx context.Context, t dom.Task) (dom.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	query := `
		INSERT INTO tasks (title, description, status, priority, due_date, user_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + taskColumns
	var out dom.Task
	err := r.db.QueryRow(ctx, query,
		t.Title, t.Description, t.Status, t.Priority, t.DueDate, t.UserID,
	).Scan(
		&out.ID, &out.Title, &out.Description, &out.Status, &out.Priority,
		&out.DueDate, &out.UserID, &out.CreatedAt, &out.UpdatedAt,
	)
	return out, err
}

func (r *PGTaskRepo) GetByID(ctx context.Context, userID, id uuid.UUID) (dom.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1 AND user_id = $2`
	var t dom.Task
	err := r.db.QueryRow(ctx, query, id, userID).Scan(
		&t.ID, &t.Title, &t.Description, &t.Status, &t.Priority,
		&t.DueDate, &t.UserID, &t.CreatedAt, &t.UpdatedAt,
	)
	return t, err
}

func (r *PGTaskRepo) Exists(ctx context.Context, userID, id uuid.UUID) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	var count int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM tasks WHERE id = $1 AND user_id = $2`,
		id, userID,
	).Scan(&count)
	return count > 0, err
}

// List returns the owner's tasks matching the filter, newest first. The base
// predicate always scopes by owner; status and priority predicates are
// appended only when present, each binding through the builder so placeholder
// numbering holds for every subset.
func (r *PGTaskRepo) List(ctx context.Context, userID uuid.UUID, f dom.TaskFilter) ([]dom.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	qb := buildListQuery(userID, f)
	rows, err := r.db.Query(ctx, qb.SQL(), qb.Args()...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.Task
	for rows.Next() {
		var t dom.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Status, &t.Priority,
			&t.DueDate, &t.UserID, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// Update applies a sparse patch and returns the updated row. The SET clause
// carries only the supplied fields; the WHERE clause re-applies the
// owner-and-id scope. A zero-row match surfaces as pgx.ErrNoRows.
func (r *PGTaskRepo) Update(ctx context.Context, userID, id uuid.UUID, patch dom.TaskPatch) (dom.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	qb, err := buildUpdateQuery(userID, id, patch)
	if err != nil {
		return dom.Task{}, err
	}

	var t dom.Task
	err = r.db.QueryRow(ctx, qb.SQL(), qb.Args()...).Scan(
		&t.ID, &t.Title, &t.Description, &t.Status, &t.Priority,
		&t.DueDate, &t.UserID, &t.CreatedAt, &t.UpdatedAt,
	)
	return t, err
}

// buildListQuery assembles the filtered listing statement. The owner
// predicate always comes first; status and priority predicates are appended
// only when present, each binding through the builder so the positional
// indices hold for every subset.
func buildListQuery(userID uuid.UUID, f dom.TaskFilter) *QueryBuilder {
	qb := NewQueryBuilder(`SELECT ` + taskColumns + ` FROM tasks WHERE user_id = `)
	qb.PushBind(userID)
	if f.Status != nil {
		qb.Push(` AND status = `).PushBind(*f.Status)
	}
	if f.Priority != nil {
		qb.Push(` AND priority = `).PushBind(*f.Priority)
	}
	qb.Push(` ORDER BY created_at DESC LIMIT `).PushBind(f.PerPage)
	qb.Push(` OFFSET `).PushBind((f.Page - 1) * f.PerPage)
	return qb
}

// buildUpdateQuery assembles the sparse update statement: one SET clause
// with only the supplied fields, comma-separated, plus updated_at.
func buildUpdateQuery(userID, id uuid.UUID, patch dom.TaskPatch) (*QueryBuilder, error) {
	qb := NewQueryBuilder(`UPDATE tasks SET `)
	first := true
	set := func(column string, value any) {
		if !first {
			qb.Push(`, `)
		}
		qb.Push(column + ` = `).PushBind(value)
		first = false
	}
	if patch.Title != nil {
		set("title", *patch.Title)
	}
	if patch.Description != nil {
		set("description", *patch.Description)
	}
	if patch.Status != nil {
		set("status", *patch.Status)
	}
	if patch.Priority != nil {
		set("priority", *patch.Priority)
	}
	if patch.DueDate != nil {
		set("due_date", *patch.DueDate)
	}
	if first {
		return nil, ErrEmptyPatch
	}
	qb.Push(`, updated_at = NOW()`)
	qb.Push(` WHERE id = `).PushBind(id)
	qb.Push(` AND user_id = `).PushBind(userID)
	qb.Push(` RETURNING ` + taskColumns)
	return qb, nil
}

// Delete removes the owner's task. Returns false when no row matched.
func (r *PGTaskRepo) Delete(ctx context.Context, userID, id uuid.UUID) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	tag, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
