package repositories

import (
	"errors"
	"time"

	"task-management-api/models"

	"gorm.io/gorm"
)

// TaskRepository owns task persistence and the filtered list query.
// Soft-deleted rows are invisible to every method here; only the raw
// database handle can still see them.
type TaskRepository interface {
	Create(db *gorm.DB, task *models.Task) error
	GetByID(db *gorm.DB, id uint) (*models.Task, error)
	GetList(db *gorm.DB, params models.TaskListParams) ([]models.Task, int64, error)
	Update(db *gorm.DB, task *models.Task, fields map[string]interface{}) error
	ReplaceTags(db *gorm.DB, task *models.Task, tags []models.Tag) error
	SoftDelete(db *gorm.DB, id uint) error
}

type taskRepository struct{}

func NewTaskRepository() TaskRepository {
	return &taskRepository{}
}

func (r *taskRepository) Create(db *gorm.DB, task *models.Task) error {
	return db.Create(task).Error
}

func (r *taskRepository) GetByID(db *gorm.DB, id uint) (*models.Task, error) {
	var task models.Task
	err := db.Preload("Tags").
		Where("id = ? AND is_deleted = ?", id, false).
		First(&task).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrTaskNotFound
	}
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskRepository) GetList(db *gorm.DB, params models.TaskListParams) ([]models.Task, int64, error) {
	var tasks []models.Task
	var total int64

	query := db.Model(&models.Task{}).Where("tasks.is_deleted = ?", false)

	if params.Completed != nil {
		query = query.Where("tasks.completed = ?", *params.Completed)
	}

	if params.Priority != nil {
		query = query.Where("tasks.priority = ?", *params.Priority)
	}

	// A task matches when its tag set intersects the requested names. The
	// subquery keeps matching at the task level, so a task carrying several
	// requested tags still appears once.
	if len(params.TagNames) > 0 {
		tagged := db.Table("task_tags").
			Select("task_tags.task_id").
			Joins("JOIN tags ON tags.id = task_tags.tag_id").
			Where("tags.name IN ?", params.TagNames)
		query = query.Where("tasks.id IN (?)", tagged)
	}

	// Count before pagination so total reflects the whole filtered set.
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Tags").
		Order("tasks.created_at desc").
		Order("tasks.id desc").
		Limit(params.Limit).
		Offset(params.Offset).
		Find(&tasks).Error

	return tasks, total, err
}

// Update applies the given column values to a fetched task. The caller is
// responsible for including updated_at.
func (r *taskRepository) Update(db *gorm.DB, task *models.Task, fields map[string]interface{}) error {
	return db.Model(task).Updates(fields).Error
}

// ReplaceTags swaps the task's entire tag set for the given one. An empty
// slice clears all associations.
func (r *taskRepository) ReplaceTags(db *gorm.DB, task *models.Task, tags []models.Tag) error {
	if len(tags) == 0 {
		return db.Model(task).Association("Tags").Clear()
	}
	return db.Model(task).Association("Tags").Replace(&tags)
}

// SoftDelete marks a live task deleted. Deleting an already-deleted or
// unknown id reports ErrTaskNotFound; delete is not idempotent.
func (r *taskRepository) SoftDelete(db *gorm.DB, id uint) error {
	now := time.Now().UTC()
	result := db.Model(&models.Task{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Updates(map[string]interface{}{
			"is_deleted": true,
			"deleted_at": now,
			"updated_at": now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return models.ErrTaskNotFound
	}
	return nil
}
