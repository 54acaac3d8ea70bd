package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TaskStatus is a closed set of task states. Stored as varchar.
type TaskStatus string

const (
	StatusPending    TaskStatus = "Pending"
	StatusInProgress TaskStatus = "InProgress"
	StatusCompleted  TaskStatus = "Completed"
	StatusArchived   TaskStatus = "Archived"
)

// ParseTaskStatus validates s against the known variants.
func ParseTaskStatus(s string) (TaskStatus, error) {
	switch TaskStatus(s) {
	case StatusPending, StatusInProgress, StatusCompleted, StatusArchived:
		return TaskStatus(s), nil
	}
	return "", fmt.Errorf("unknown task status %q", s)
}

// Valid reports whether the status is one of the known variants.
func (s TaskStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusArchived:
		return true
	}
	return false
}

// TaskPriority is a closed set of priorities. Stored as varchar.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "Low"
	PriorityMedium TaskPriority = "Medium"
	PriorityHigh   TaskPriority = "High"
	PriorityUrgent TaskPriority = "Urgent"
)

// ParseTaskPriority validates s against the known variants.
func ParseTaskPriority(s string) (TaskPriority, error) {
	switch TaskPriority(s) {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return TaskPriority(s), nil
	}
	return "", fmt.Errorf("unknown task priority %q", s)
}

// Valid reports whether the priority is one of the known variants.
func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Task is the domain entity for a task. Every task belongs to exactly one
// user; all reads and writes are scoped by UserID.
type Task struct {
	ID          uuid.UUID
	Title       string
	Description *string
	Status      TaskStatus
	Priority    TaskPriority
	DueDate     *time.Time
	UserID      uuid.UUID

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TaskFilter narrows a listing. Nil status/priority means "any".
type TaskFilter struct {
	Status   *TaskStatus
	Priority *TaskPriority
	Page     int
	PerPage  int
}

// TaskPatch is a sparse update: nil fields are left untouched.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *TaskStatus
	Priority    *TaskPriority
	DueDate     *time.Time
}

// Empty reports whether the patch changes nothing.
func (p TaskPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil &&
		p.Priority == nil && p.DueDate == nil
}
