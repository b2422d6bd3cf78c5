package handlers

import (
	"net/http"

	"jobtracker/internal/app"
	"jobtracker/internal/common"
	"jobtracker/internal/domain/task"
	"jobtracker/internal/http/response"
)

type TaskHandler struct {
	tasks *app.TaskService
	clock app.Clock
}

func NewTaskHandler(tasks *app.TaskService, clock app.Clock) *TaskHandler {
	return &TaskHandler{tasks: tasks, clock: clock}
}

type taskFields struct {
	Title     string `json:"title"`
	Notes     string `json:"notes"`
	DueDate   string `json:"due_date"`
	Completed *bool  `json:"completed"`
}

type taskRequest struct {
	Task taskFields `json:"task"`
}

// Create handles both POST /tasks and POST /jobs/{id}/tasks.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	var jobID *int64
	if r.PathValue("id") != "" {
		id, err := idFromPath(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}
		jobID = &id
	}
	var req taskRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	var v common.Validation
	item := task.Task{
		Title:     req.Task.Title,
		Notes:     req.Task.Notes,
		DueDate:   parseDate(&v, "due_date", req.Task.DueDate),
		Completed: req.Task.Completed != nil && *req.Task.Completed,
	}
	if err := v.Err(); err != nil {
		response.Error(w, err)
		return
	}
	created, err := h.tasks.Create(r.Context(), userID, jobID, item)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, newTaskView(*created, h.clock.Today()))
}

// UpdateFromCalendar sets completion from the calendar view.
func (h *TaskHandler) UpdateFromCalendar(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	id, err := idFromPath(r, "id")
	if err != nil {
		response.Error(w, err)
		return
	}
	var req taskRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	if req.Task.Completed == nil {
		response.JSON(w, http.StatusUnprocessableEntity, map[string]any{
			"success": false,
			"errors":  []string{common.FullMessage("completed", common.MsgBlank)},
		})
		return
	}
	updated, err := h.tasks.SetCompleted(r.Context(), userID, id, *req.Task.Completed)
	if err != nil {
		if common.Is(err, common.CodeValidation) {
			response.JSON(w, http.StatusUnprocessableEntity, map[string]any{"success": false, "errors": response.Messages(err)})
			return
		}
		response.Error(w, err)
		return
	}
	status := updated.Status(h.clock.Today())
	response.JSON(w, http.StatusOK, map[string]any{
		"success": true,
		"task": map[string]any{
			"id":        updated.ID,
			"completed": updated.Completed,
			"status":    status.Display(),
		},
	})
}
