package models

import (
	"encoding/json"
	"strings"
	"time"
)

// DateLayout is the wire format for due dates.
const DateLayout = "2006-01-02"

type CreateTaskRequest struct {
	Title       string   `json:"title" binding:"required,min=1,max=200"`
	Description *string  `json:"description"`
	Priority    int      `json:"priority" binding:"required,min=1,max=5"`
	DueDate     string   `json:"due_date" binding:"required,datetime=2006-01-02"`
	Tags        []string `json:"tags"`
}

// NullableString distinguishes an absent JSON key from an explicit null.
// Set is true whenever the key was present; Value is nil for null.
type NullableString struct {
	Set   bool
	Value *string
}

func (n *NullableString) UnmarshalJSON(data []byte) error {
	n.Set = true
	if string(data) == "null" {
		n.Value = nil
		return nil
	}
	return json.Unmarshal(data, &n.Value)
}

// UpdateTaskRequest carries a partial update. Nil fields are left untouched.
// Tags is a pointer so that an omitted key (or an explicit null, treated the
// same) means "keep the current tag set" while an empty list clears it.
// Description goes one step further: an explicit null clears the stored
// value, only an omitted key is a no-op.
type UpdateTaskRequest struct {
	Title       *string        `json:"title" binding:"omitempty,min=1,max=200"`
	Description NullableString `json:"description"`
	Priority    *int           `json:"priority" binding:"omitempty,min=1,max=5"`
	DueDate     *string        `json:"due_date" binding:"omitempty,datetime=2006-01-02"`
	Completed   *bool          `json:"completed"`
	Tags        *[]string      `json:"tags"`
}

type TaskListParams struct {
	Completed *bool  `form:"completed"`
	Priority  *int   `form:"priority" binding:"omitempty,min=1,max=5"`
	Tags      string `form:"tags"`
	// The form default fills an absent limit before validation runs, so
	// min=1 rejects only an explicit out-of-range value.
	Limit  int `form:"limit,default=20" binding:"min=1,max=100"`
	Offset int `form:"offset,default=0" binding:"omitempty,min=0"`

	// TagNames holds the normalized names parsed from the Tags CSV value.
	TagNames []string `form:"-"`
}

type TagResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type TaskResponse struct {
	ID          uint          `json:"id"`
	Title       string        `json:"title"`
	Description *string       `json:"description"`
	Priority    int           `json:"priority"`
	DueDate     string        `json:"due_date"`
	Completed   bool          `json:"completed"`
	IsDeleted   bool          `json:"is_deleted"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
	Tags        []TagResponse `json:"tags"`
}

type PaginatedTasksResponse struct {
	Total  int64          `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
	Tasks  []TaskResponse `json:"tasks"`
}

// NewTaskResponse maps a hydrated Task to its API shape. Pure transformation,
// no business rules beyond renaming and date formatting.
func NewTaskResponse(task *Task) TaskResponse {
	tags := make([]TagResponse, 0, len(task.Tags))
	for _, tag := range task.Tags {
		tags = append(tags, TagResponse{ID: tag.ID, Name: tag.Name})
	}

	return TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Priority:    task.Priority,
		DueDate:     task.DueDate.Format(DateLayout),
		Completed:   task.Completed,
		IsDeleted:   task.IsDeleted,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
		Tags:        tags,
	}
}

func NewPaginatedTasksResponse(tasks []Task, total int64, limit, offset int) PaginatedTasksResponse {
	items := make([]TaskResponse, 0, len(tasks))
	for i := range tasks {
		items = append(items, NewTaskResponse(&tasks[i]))
	}

	return PaginatedTasksResponse{
		Total:  total,
		Limit:  limit,
		Offset: offset,
		Tasks:  items,
	}
}

// NormalizeTagNames trims, lowercases and de-duplicates tag names, dropping
// entries that are blank after trimming. Order of first occurrence is kept.
func NormalizeTagNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	normalized := make([]string, 0, len(names))

	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		normalized = append(normalized, name)
	}

	return normalized
}
