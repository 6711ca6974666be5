package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"task-management-api/helper"
	"task-management-api/models"
	"task-management-api/services"

	"github.com/gin-gonic/gin"
)

type TaskHandler struct {
	taskService services.TaskService
	Helper      *helper.HTTPHelper
}

func NewTaskHandler(taskService services.TaskService, httpHelper *helper.HTTPHelper) *TaskHandler {
	return &TaskHandler{taskService: taskService, Helper: httpHelper}
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req models.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendValidationError(c, err)
		return
	}

	if !dueDateIsCurrent(req.DueDate) {
		h.Helper.SendFieldError(c, "due_date", "due_date must not be in the past.")
		return
	}

	req.Tags = models.NormalizeTagNames(req.Tags)

	task, err := h.taskService.CreateTask(req)
	if err != nil {
		h.Helper.SendDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.NewTaskResponse(task))
}

func (h *TaskHandler) GetTasks(c *gin.Context) {
	var params models.TaskListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.Helper.SendValidationError(c, err)
		return
	}

	params.TagNames = models.NormalizeTagNames(strings.Split(params.Tags, ","))

	tasks, total, err := h.taskService.ListTasks(params)
	if err != nil {
		h.Helper.SendDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.NewPaginatedTasksResponse(tasks, total, params.Limit, params.Offset))
}

func (h *TaskHandler) GetTask(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.Helper.SendBadRequest(c, "Invalid task ID")
		return
	}

	task, err := h.taskService.GetTask(uint(id))
	if err != nil {
		h.Helper.SendDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.NewTaskResponse(task))
}

func (h *TaskHandler) UpdateTask(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.Helper.SendBadRequest(c, "Invalid task ID")
		return
	}

	var req models.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendValidationError(c, err)
		return
	}

	if req.DueDate != nil && !dueDateIsCurrent(*req.DueDate) {
		h.Helper.SendFieldError(c, "due_date", "due_date must not be in the past.")
		return
	}

	if req.Tags != nil {
		normalized := models.NormalizeTagNames(*req.Tags)
		req.Tags = &normalized
	}

	task, err := h.taskService.UpdateTask(uint(id), req)
	if err != nil {
		h.Helper.SendDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.NewTaskResponse(task))
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.Helper.SendBadRequest(c, "Invalid task ID")
		return
	}

	if err := h.taskService.DeleteTask(uint(id)); err != nil {
		h.Helper.SendDomainError(c, err)
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// dueDateIsCurrent reports whether the already format-validated date is
// today or later.
func dueDateIsCurrent(value string) bool {
	dueDate, err := time.Parse(models.DateLayout, value)
	if err != nil {
		return false
	}
	today, _ := time.Parse(models.DateLayout, time.Now().Format(models.DateLayout))
	return !dueDate.Before(today)
}
