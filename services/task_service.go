package services

import (
	"time"

	"task-management-api/models"
	"task-management-api/repositories"

	"gorm.io/gorm"
)

type TaskService interface {
	CreateTask(req models.CreateTaskRequest) (*models.Task, error)
	GetTask(id uint) (*models.Task, error)
	ListTasks(params models.TaskListParams) ([]models.Task, int64, error)
	UpdateTask(id uint, req models.UpdateTaskRequest) (*models.Task, error)
	DeleteTask(id uint) error
}

type taskService struct {
	db       *gorm.DB
	taskRepo repositories.TaskRepository
	tagRepo  repositories.TagRepository
}

func NewTaskService(db *gorm.DB, taskRepo repositories.TaskRepository, tagRepo repositories.TagRepository) TaskService {
	return &taskService{
		db:       db,
		taskRepo: taskRepo,
		tagRepo:  tagRepo,
	}
}

// CreateTask persists a new task and its tag associations in one
// transaction. Tag names are expected to be normalized already.
func (s *taskService) CreateTask(req models.CreateTaskRequest) (*models.Task, error) {
	dueDate, err := time.Parse(models.DateLayout, req.DueDate)
	if err != nil {
		return nil, err
	}

	var taskID uint
	err = s.db.Transaction(func(tx *gorm.DB) error {
		task := models.Task{
			Title:       req.Title,
			Description: req.Description,
			Priority:    req.Priority,
			DueDate:     dueDate,
		}

		if len(req.Tags) > 0 {
			tags, err := s.tagRepo.GetOrCreate(tx, req.Tags)
			if err != nil {
				return err
			}
			task.Tags = tags
		}

		if err := s.taskRepo.Create(tx, &task); err != nil {
			return err
		}

		taskID = task.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.taskRepo.GetByID(s.db, taskID)
}

func (s *taskService) GetTask(id uint) (*models.Task, error) {
	return s.taskRepo.GetByID(s.db, id)
}

func (s *taskService) ListTasks(params models.TaskListParams) ([]models.Task, int64, error) {
	return s.taskRepo.GetList(s.db, params)
}

// UpdateTask applies a partial update. Nil request fields keep their current
// values; a non-nil Tags slice replaces the entire tag set (empty clears it);
// a present-but-null Description stores NULL. updated_at advances on every
// successful call, tag-only changes included.
func (s *taskService) UpdateTask(id uint, req models.UpdateTaskRequest) (*models.Task, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		task, err := s.taskRepo.GetByID(tx, id)
		if err != nil {
			return err
		}

		fields := map[string]interface{}{
			"updated_at": time.Now().UTC(),
		}
		if req.Title != nil {
			fields["title"] = *req.Title
		}
		if req.Description.Set {
			fields["description"] = req.Description.Value
		}
		if req.Priority != nil {
			fields["priority"] = *req.Priority
		}
		if req.DueDate != nil {
			dueDate, err := time.Parse(models.DateLayout, *req.DueDate)
			if err != nil {
				return err
			}
			fields["due_date"] = dueDate
		}
		if req.Completed != nil {
			fields["completed"] = *req.Completed
		}

		if err := s.taskRepo.Update(tx, task, fields); err != nil {
			return err
		}

		if req.Tags != nil {
			tags, err := s.tagRepo.GetOrCreate(tx, *req.Tags)
			if err != nil {
				return err
			}
			if err := s.taskRepo.ReplaceTags(tx, task, tags); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.taskRepo.GetByID(s.db, id)
}

func (s *taskService) DeleteTask(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return s.taskRepo.SoftDelete(tx, id)
	})
}
