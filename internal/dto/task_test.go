package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDueAt_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	t.Run("date only becomes start of day UTC", func(t *testing.T) {
		t.Parallel()
		var req CreateTaskRequest
		require.NoError(t, json.Unmarshal([]byte(`{"title":"x","due_date":"2026-02-19"}`), &req))
		require.NotNil(t, req.DueDate.Ptr())
		require.Equal(t, time.Date(2026, 2, 19, 0, 0, 0, 0, time.UTC), *req.DueDate.Ptr())
	})

	t.Run("rfc3339", func(t *testing.T) {
		t.Parallel()
		var req CreateTaskRequest
		require.NoError(t, json.Unmarshal([]byte(`{"title":"x","due_date":"2026-02-19T10:30:00Z"}`), &req))
		require.NotNil(t, req.DueDate.Ptr())
		require.Equal(t, time.Date(2026, 2, 19, 10, 30, 0, 0, time.UTC), req.DueDate.Ptr().UTC())
	})

	t.Run("null and empty mean absent", func(t *testing.T) {
		t.Parallel()
		var req CreateTaskRequest
		require.NoError(t, json.Unmarshal([]byte(`{"title":"x","due_date":null}`), &req))
		require.Nil(t, req.DueDate.Ptr())
		require.NoError(t, json.Unmarshal([]byte(`{"title":"x","due_date":""}`), &req))
		require.Nil(t, req.DueDate.Ptr())
	})

	t.Run("garbage rejected", func(t *testing.T) {
		t.Parallel()
		var req CreateTaskRequest
		require.Error(t, json.Unmarshal([]byte(`{"title":"x","due_date":"next tuesday"}`), &req))
	})
}
