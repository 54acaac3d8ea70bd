package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Sharufkhanniazi/Task-Management-System/internal/auth"
	dom "github.com/Sharufkhanniazi/Task-Management-System/internal/domain"
	"github.com/Sharufkhanniazi/Task-Management-System/internal/dto"
	"github.com/Sharufkhanniazi/Task-Management-System/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TaskHandler struct {
	svc *service.TaskService
}

func NewTaskHandler(svc *service.TaskService) *TaskHandler {
	return &TaskHandler{svc: svc}
}

// Create godoc
// @Summary      Create a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.CreateTaskRequest  true  "Task body"
// @Success      201   {object}  dto.TaskResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	ident, ok := requireIdentity(c)
	if !ok {
		return
	}
	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	status, ok := parseStatusParam(c, req.Status)
	if !ok {
		return
	}
	priority, ok := parsePriorityParam(c, req.Priority)
	if !ok {
		return
	}

	t, err := h.svc.Create(c.Request.Context(), ident.ID, req.Title, req.Description, status, priority, req.DueDate.Ptr())
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusCreated, taskToResponse(t))
}

// List godoc
// @Summary      List tasks
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        status    query  string  false  "Filter by status"
// @Param        priority  query  string  false  "Filter by priority"
// @Param        page      query  int     false  "Page number (default 1)"
// @Param        per_page  query  int     false  "Page size (default 10, max 100)"
// @Success      200  {object}  dto.ListTasksResponse
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /tasks [get]
func (h *TaskHandler) List(c *gin.Context) {
	ident, ok := requireIdentity(c)
	if !ok {
		return
	}
	var f dom.TaskFilter
	if raw, present := c.GetQuery("status"); present {
		status, err := dom.ParseTaskStatus(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		f.Status = &status
	}
	if raw, present := c.GetQuery("priority"); present {
		priority, err := dom.ParseTaskPriority(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		f.Priority = &priority
	}
	f.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	f.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "10"))

	list, err := h.svc.List(c.Request.Context(), ident.ID, f)
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, dto.ListTasksResponse{Items: tasksToResponses(list)})
}

// GetByID godoc
// @Summary      Get a task by ID
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Task ID"
// @Success      200  {object}  dto.TaskResponse
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /tasks/{id} [get]
func (h *TaskHandler) GetByID(c *gin.Context) {
	ident, ok := requireIdentity(c)
	if !ok {
		return
	}
	id, ok := parseTaskID(c)
	if !ok {
		return
	}
	t, err := h.svc.GetByID(c.Request.Context(), ident.ID, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "get failed"})
		return
	}
	c.JSON(http.StatusOK, taskToResponse(t))
}

// Update godoc
// @Summary      Update a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string  true  "Task ID"
// @Param        body  body      dto.UpdateTaskRequest  true  "Partial update"
// @Success      200   {object}  dto.TaskResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /tasks/{id} [patch]
func (h *TaskHandler) Update(c *gin.Context) {
	ident, ok := requireIdentity(c)
	if !ok {
		return
	}
	id, ok := parseTaskID(c)
	if !ok {
		return
	}
	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	status, ok := parseStatusParam(c, req.Status)
	if !ok {
		return
	}
	priority, ok := parsePriorityParam(c, req.Priority)
	if !ok {
		return
	}
	patch := dom.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		Status:      status,
		Priority:    priority,
	}
	if req.DueDate != nil {
		patch.DueDate = req.DueDate.Ptr()
	}

	t, err := h.svc.Update(c.Request.Context(), ident.ID, id, patch)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		}
		return
	}
	c.JSON(http.StatusOK, taskToResponse(t))
}

// Delete godoc
// @Summary      Delete a task
// @Tags         tasks
// @Security     BearerAuth
// @Param        id   path  string  true  "Task ID"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /tasks/{id} [delete]
func (h *TaskHandler) Delete(c *gin.Context) {
	ident, ok := requireIdentity(c)
	if !ok {
		return
	}
	id, ok := parseTaskID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), ident.ID, id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	c.Status(http.StatusNoContent)
}

func requireIdentity(c *gin.Context) (auth.Identity, bool) {
	ident, ok := auth.IdentityFromContext(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
		return auth.Identity{}, false
	}
	return ident, true
}

func parseTaskID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task id"})
		return uuid.Nil, false
	}
	return id, true
}

func parseStatusParam(c *gin.Context, raw *string) (*dom.TaskStatus, bool) {
	if raw == nil {
		return nil, true
	}
	status, err := dom.ParseTaskStatus(*raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	return &status, true
}

func parsePriorityParam(c *gin.Context, raw *string) (*dom.TaskPriority, bool) {
	if raw == nil {
		return nil, true
	}
	priority, err := dom.ParseTaskPriority(*raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	return &priority, true
}

func taskToResponse(t dom.Task) dto.TaskResponse {
	return dto.TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		DueDate:     t.DueDate,
		UserID:      t.UserID,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func tasksToResponses(list []dom.Task) []dto.TaskResponse {
	out := make([]dto.TaskResponse, len(list))
	for i := range list {
		out[i] = taskToResponse(list[i])
	}
	return out
}
