package repo

import (
	"testing"
	"time"

	dom "github.com/Sharufkhanniazi/Task-Management-System/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestQueryBuilder_PlaceholdersFollowBindOrder(t *testing.T) {
	t.Parallel()

	qb := NewQueryBuilder("SELECT * FROM t WHERE a = ")
	qb.PushBind(1).Push(" AND b = ").PushBind("x").Push(" AND c = ").PushBind(true)

	require.Equal(t, "SELECT * FROM t WHERE a = $1 AND b = $2 AND c = $3", qb.SQL())
	require.Equal(t, []any{1, "x", true}, qb.Args())
}

func TestBuildListQuery_AllFilterCombinations(t *testing.T) {
	t.Parallel()

	owner := uuid.New()
	status := dom.StatusPending
	priority := dom.PriorityHigh
	base := `SELECT ` + taskColumns + ` FROM tasks WHERE user_id = $1`

	tests := []struct {
		name     string
		filter   dom.TaskFilter
		wantSQL  string
		wantArgs []any
	}{
		{
			name:     "no filters",
			filter:   dom.TaskFilter{Page: 1, PerPage: 10},
			wantSQL:  base + ` ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
			wantArgs: []any{owner, 10, 0},
		},
		{
			name:     "status only",
			filter:   dom.TaskFilter{Status: &status, Page: 1, PerPage: 10},
			wantSQL:  base + ` AND status = $2 ORDER BY created_at DESC LIMIT $3 OFFSET $4`,
			wantArgs: []any{owner, status, 10, 0},
		},
		{
			name:     "priority only",
			filter:   dom.TaskFilter{Priority: &priority, Page: 1, PerPage: 10},
			wantSQL:  base + ` AND priority = $2 ORDER BY created_at DESC LIMIT $3 OFFSET $4`,
			wantArgs: []any{owner, priority, 10, 0},
		},
		{
			name:     "status and priority",
			filter:   dom.TaskFilter{Status: &status, Priority: &priority, Page: 3, PerPage: 20},
			wantSQL:  base + ` AND status = $2 AND priority = $3 ORDER BY created_at DESC LIMIT $4 OFFSET $5`,
			wantArgs: []any{owner, status, priority, 20, 40},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			qb := buildListQuery(owner, tc.filter)
			require.Equal(t, tc.wantSQL, qb.SQL())
			require.Equal(t, tc.wantArgs, qb.Args())
		})
	}
}

func TestBuildUpdateQuery_FieldSubsets(t *testing.T) {
	t.Parallel()

	owner := uuid.New()
	id := uuid.New()
	title := "new title"
	desc := "new description"
	status := dom.StatusCompleted
	priority := dom.PriorityUrgent
	due := time.Date(2026, 2, 19, 0, 0, 0, 0, time.UTC)

	t.Run("single field", func(t *testing.T) {
		t.Parallel()
		qb, err := buildUpdateQuery(owner, id, dom.TaskPatch{Status: &status})
		require.NoError(t, err)
		require.Equal(t,
			`UPDATE tasks SET status = $1, updated_at = NOW() WHERE id = $2 AND user_id = $3 RETURNING `+taskColumns,
			qb.SQL())
		require.Equal(t, []any{status, id, owner}, qb.Args())
	})

	t.Run("two fields", func(t *testing.T) {
		t.Parallel()
		qb, err := buildUpdateQuery(owner, id, dom.TaskPatch{Title: &title, Priority: &priority})
		require.NoError(t, err)
		require.Equal(t,
			`UPDATE tasks SET title = $1, priority = $2, updated_at = NOW() WHERE id = $3 AND user_id = $4 RETURNING `+taskColumns,
			qb.SQL())
		require.Equal(t, []any{title, priority, id, owner}, qb.Args())
	})

	t.Run("all fields", func(t *testing.T) {
		t.Parallel()
		qb, err := buildUpdateQuery(owner, id, dom.TaskPatch{
			Title: &title, Description: &desc, Status: &status, Priority: &priority, DueDate: &due,
		})
		require.NoError(t, err)
		require.Equal(t,
			`UPDATE tasks SET title = $1, description = $2, status = $3, priority = $4, due_date = $5, updated_at = NOW() WHERE id = $6 AND user_id = $7 RETURNING `+taskColumns,
			qb.SQL())
		require.Equal(t, []any{title, desc, status, priority, due, id, owner}, qb.Args())
	})

	t.Run("empty patch", func(t *testing.T) {
		t.Parallel()
		_, err := buildUpdateQuery(owner, id, dom.TaskPatch{})
		require.ErrorIs(t, err, ErrEmptyPatch)
	})
}
