package models

// TaskTag is the join model for the Task<->Tag many-to-many relation,
// registered with SetupJoinTable so the table gets a composite primary key
// and cascading foreign keys.
type TaskTag struct {
	TaskID uint `json:"task_id" gorm:"primaryKey"`
	TagID  uint `json:"tag_id" gorm:"primaryKey"`
}
