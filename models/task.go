package models

import (
	"time"
)

type Task struct {
	ID          uint       `json:"id" gorm:"primarykey"`
	Title       string     `json:"title" gorm:"size:200;not null"`
	Description *string    `json:"description" gorm:"type:text"`
	Priority    int        `json:"priority" gorm:"not null;default:1;index:ix_task_priority;index:ix_task_composite_filter,priority:3"`
	DueDate     time.Time  `json:"due_date" gorm:"type:date;not null"`
	Completed   bool       `json:"completed" gorm:"not null;default:false;index:ix_task_completed;index:ix_task_composite_filter,priority:2"`
	IsDeleted   bool       `json:"is_deleted" gorm:"not null;default:false;index:ix_task_is_deleted;index:ix_task_composite_filter,priority:1"`
	DeletedAt   *time.Time `json:"-"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Tags        []Tag      `json:"tags" gorm:"many2many:task_tags;"`
}
