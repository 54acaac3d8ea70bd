package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Sharufkhanniazi/Task-Management-System/internal/cache"
	dom "github.com/Sharufkhanniazi/Task-Management-System/internal/domain"
	"github.com/Sharufkhanniazi/Task-Management-System/internal/repo"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/singleflight"
)

const (
	maxTitleLen       = 255
	maxDescriptionLen = 1000

	defaultPage    = 1
	defaultPerPage = 10
	// maxPerPage caps a single page so a caller cannot request an unbounded
	// result set.
	maxPerPage = 100
)

// TaskService handles ownership-scoped task CRUD.
type TaskService struct {
	repo  repo.TaskRepo
	cache *cache.TaskCache
	sf    singleflight.Group
}

// NewTaskService creates a TaskService. If c is nil, caching is disabled.
func NewTaskService(r repo.TaskRepo, c *cache.TaskCache) *TaskService {
	return &TaskService{repo: r, cache: c}
}

// Create validates and stores a new task for userID. Status defaults to
// Pending and priority to Medium.
func (s *TaskService) Create(ctx context.Context, userID uuid.UUID, title string, description *string, status *dom.TaskStatus, priority *dom.TaskPriority, dueDate *time.Time) (dom.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" || len(title) > maxTitleLen {
		return dom.Task{}, fmt.Errorf("%w: title must be 1-%d characters", ErrInvalidInput, maxTitleLen)
	}
	if description != nil && len(*description) > maxDescriptionLen {
		return dom.Task{}, fmt.Errorf("%w: description must be at most %d characters", ErrInvalidInput, maxDescriptionLen)
	}

	t := dom.Task{
		Title:       title,
		Description: description,
		Status:      dom.StatusPending,
		Priority:    dom.PriorityMedium,
		DueDate:     dueDate,
		UserID:      userID,
	}
	if status != nil {
		if !status.Valid() {
			return dom.Task{}, fmt.Errorf("%w: unknown status", ErrInvalidInput)
		}
		t.Status = *status
	}
	if priority != nil {
		if !priority.Valid() {
			return dom.Task{}, fmt.Errorf("%w: unknown priority", ErrInvalidInput)
		}
		t.Priority = *priority
	}

	out, err := s.repo.Create(ctx, t)
	if err != nil {
		return dom.Task{}, fmt.Errorf("create task: %w", err)
	}
	s.invalidateCache(ctx, userID)
	return out, nil
}

// List returns userID's tasks matching the filter, newest first. Page and
// per_page are normalized here so the repo always sees sane bounds.
func (s *TaskService) List(ctx context.Context, userID uuid.UUID, f dom.TaskFilter) ([]dom.Task, error) {
	if f.Status != nil && !f.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status", ErrInvalidInput)
	}
	if f.Priority != nil && !f.Priority.Valid() {
		return nil, fmt.Errorf("%w: unknown priority", ErrInvalidInput)
	}
	if f.Page < 1 {
		f.Page = defaultPage
	}
	if f.PerPage < 1 {
		f.PerPage = defaultPerPage
	}
	if f.PerPage > maxPerPage {
		f.PerPage = maxPerPage
	}

	if s.cache != nil {
		key := cache.ListKey(userID, f)
		v, err, _ := s.sf.Do(key, func() (interface{}, error) {
			if list, err := s.cache.GetList(ctx, userID, f); err == nil && list != nil {
				return list, nil
			}
			list, err := s.repo.List(ctx, userID, f)
			if err != nil {
				return nil, err
			}
			_ = s.cache.SetList(ctx, userID, f, list)
			return list, nil
		})
		if err != nil {
			return nil, fmt.Errorf("list tasks: %w", err)
		}
		return v.([]dom.Task), nil
	}
	list, err := s.repo.List(ctx, userID, f)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return list, nil
}

// GetByID returns the task if it exists and belongs to userID.
func (s *TaskService) GetByID(ctx context.Context, userID, id uuid.UUID) (dom.Task, error) {
	t, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Task{}, ErrNotFound
		}
		return dom.Task{}, fmt.Errorf("get task: %w", err)
	}
	return t, nil
}

// Update applies a sparse patch to userID's task. An empty patch is a
// validation error and never reaches the store. A task that is absent or
// owned by someone else is not found either way.
func (s *TaskService) Update(ctx context.Context, userID, id uuid.UUID, patch dom.TaskPatch) (dom.Task, error) {
	if patch.Empty() {
		return dom.Task{}, fmt.Errorf("%w: no fields to update", ErrInvalidInput)
	}
	if patch.Title != nil {
		trimmed := strings.TrimSpace(*patch.Title)
		if trimmed == "" || len(trimmed) > maxTitleLen {
			return dom.Task{}, fmt.Errorf("%w: title must be 1-%d characters", ErrInvalidInput, maxTitleLen)
		}
		patch.Title = &trimmed
	}
	if patch.Description != nil && len(*patch.Description) > maxDescriptionLen {
		return dom.Task{}, fmt.Errorf("%w: description must be at most %d characters", ErrInvalidInput, maxDescriptionLen)
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return dom.Task{}, fmt.Errorf("%w: unknown status", ErrInvalidInput)
	}
	if patch.Priority != nil && !patch.Priority.Valid() {
		return dom.Task{}, fmt.Errorf("%w: unknown priority", ErrInvalidInput)
	}

	exists, err := s.repo.Exists(ctx, userID, id)
	if err != nil {
		return dom.Task{}, fmt.Errorf("check task: %w", err)
	}
	if !exists {
		return dom.Task{}, ErrNotFound
	}

	t, err := s.repo.Update(ctx, userID, id, patch)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Task{}, ErrNotFound
		}
		return dom.Task{}, fmt.Errorf("update task: %w", err)
	}
	s.invalidateCache(ctx, userID)
	return t, nil
}

// Delete removes userID's task. Absent or non-owned tasks are not found.
func (s *TaskService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	deleted, err := s.repo.Delete(ctx, userID, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if !deleted {
		return ErrNotFound
	}
	s.invalidateCache(ctx, userID)
	return nil
}

func (s *TaskService) invalidateCache(ctx context.Context, userID uuid.UUID) {
	if s.cache != nil {
		_ = s.cache.InvalidateUser(ctx, userID)
	}
}
